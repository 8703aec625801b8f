package model

import (
	"time"
)

type UserBlock struct {
	UserID    uint64    `gorm:"primaryKey" json:"user_id"`
	BlockedID uint64    `gorm:"primaryKey" json:"blocked_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (UserBlock) TableName() string {
	return "user_blocks"
}
