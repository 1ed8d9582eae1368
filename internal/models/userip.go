package models

import (
	"time"
)

// UserIp is an append-only log of client addresses. No update or delete path.
type UserIp struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	IP        string    `gorm:"size:50;not null" json:"ip"`
	CreatedAt time.Time `json:"created_at"`
}
