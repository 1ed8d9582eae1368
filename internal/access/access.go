// Package access holds the per-request permission rules. Authentication
// itself is the middleware's job; these functions only decide ownership.
package access

import (
	"yatube/internal/models"
)

// CanModifyPost allows edit and delete for the post's author only.
func CanModifyPost(user *models.User, post *models.Post) bool {
	return user != nil && user.ID == post.AuthorID
}

// CanDeleteComment allows the comment's author, or the author of the post
// it belongs to (moderation).
func CanDeleteComment(user *models.User, comment *models.Comment, post *models.Post) bool {
	if user == nil {
		return false
	}
	return user.ID == comment.AuthorID || user.ID == post.AuthorID
}
