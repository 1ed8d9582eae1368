package models

import (
	"time"
)

// Follow means UserID receives AuthorID's posts in their follow feed.
// The pair is unique; store.Follow additionally uses FirstOrCreate so a
// repeated follow is a no-op instead of a constraint error.
type Follow struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_follow_user_author" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	AuthorID  uint      `gorm:"not null;index;uniqueIndex:idx_follow_user_author" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"author"`
	CreatedAt time.Time `json:"created_at"`
}
