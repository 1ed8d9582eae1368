package models

import (
	"time"
)

type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Text     string `gorm:"type:text;not null" json:"text"`
	AuthorID uint   `gorm:"not null;index" json:"author_id"`
	Author   User   `gorm:"foreignKey:AuthorID" json:"author"`
	// GroupID is nullable: deleting a group orphans its posts instead of
	// deleting them. The set-null happens in store.DeleteGroup, not in a
	// constraint tag, so every dialect behaves the same.
	GroupID   *uint     `gorm:"index" json:"group_id"`
	Group     *Group    `gorm:"foreignKey:GroupID" json:"group"`
	Image     string    `json:"image"` // Optional, path under /media
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Filled by queries, not a column
	CommentCount int `gorm:"-" json:"comment_count"`
}
