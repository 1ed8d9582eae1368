package access

import (
	"testing"

	"yatube/internal/models"
)

func TestCanModifyPost(t *testing.T) {
	author := &models.User{ID: 1}
	other := &models.User{ID: 2}
	post := &models.Post{ID: 10, AuthorID: 1}

	if !CanModifyPost(author, post) {
		t.Error("author should be allowed to modify their post")
	}
	if CanModifyPost(other, post) {
		t.Error("non-author should not modify the post")
	}
	if CanModifyPost(nil, post) {
		t.Error("anonymous should not modify the post")
	}
}

func TestCanDeleteComment(t *testing.T) {
	postAuthor := &models.User{ID: 1}
	commenter := &models.User{ID: 2}
	stranger := &models.User{ID: 3}
	post := &models.Post{ID: 10, AuthorID: 1}
	comment := &models.Comment{ID: 20, PostID: 10, AuthorID: 2}

	if !CanDeleteComment(commenter, comment, post) {
		t.Error("comment author should delete their comment")
	}
	if !CanDeleteComment(postAuthor, comment, post) {
		t.Error("post author should moderate comments on their post")
	}
	if CanDeleteComment(stranger, comment, post) {
		t.Error("stranger should not delete the comment")
	}
	if CanDeleteComment(nil, comment, post) {
		t.Error("anonymous should not delete the comment")
	}
}
