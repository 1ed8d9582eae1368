// Package store owns every mutation of the content entities. Cascade
// behavior lives here as explicit statements instead of ORM constraint
// tags: deleting a group orphans its posts, deleting a post removes its
// comments.
package store

import (
	"yatube/internal/models"

	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreatePost(post *models.Post) error {
	return s.db.Create(post).Error
}

func (s *Store) UpdatePost(post *models.Post) error {
	return s.db.Save(post).Error
}

// DeletePost removes a post and its comments.
func (s *Store) DeletePost(post *models.Post) error {
	if err := s.db.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
		return err
	}
	return s.db.Delete(post).Error
}

// DeleteGroup removes a group. Its posts survive with no group reference.
func (s *Store) DeleteGroup(group *models.Group) error {
	err := s.db.Model(&models.Post{}).
		Where("group_id = ?", group.ID).
		Update("group_id", nil).Error
	if err != nil {
		return err
	}
	return s.db.Delete(group).Error
}

func (s *Store) CreateComment(comment *models.Comment) error {
	return s.db.Create(comment).Error
}

func (s *Store) DeleteComment(comment *models.Comment) error {
	return s.db.Delete(comment).Error
}

// Follow records that user wants author's posts in their follow feed.
// Following yourself is a silent no-op, and a repeated follow leaves the
// existing row untouched.
func (s *Store) Follow(userID, authorID uint) error {
	if userID == authorID {
		return nil
	}
	follow := models.Follow{UserID: userID, AuthorID: authorID}
	return s.db.Where("user_id = ? AND author_id = ?", userID, authorID).
		FirstOrCreate(&follow).Error
}

// Unfollow removes the follow relation towards the named author, if any.
func (s *Store) Unfollow(userID uint, authorUsername string) error {
	var author models.User
	if err := s.db.Where("username = ?", authorUsername).First(&author).Error; err != nil {
		return err
	}
	return s.db.Where("user_id = ? AND author_id = ?", userID, author.ID).
		Delete(&models.Follow{}).Error
}

// LogIP appends a client address to the request log.
func (s *Store) LogIP(ip string) error {
	return s.db.Create(&models.UserIp{IP: ip}).Error
}
