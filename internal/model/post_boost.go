package model

import (
	"time"
)

// PostBoost (user, post) 唯一, 靠主键约束保证幂等而不是应用层判重
type PostBoost struct {
	UserID    uint64    `gorm:"primaryKey" json:"user_id"`
	PostID    uint64    `gorm:"primaryKey;index:idx_post_id" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (PostBoost) TableName() string {
	return "post_boosts"
}
