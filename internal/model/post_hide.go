package model

import (
	"time"
)

// PostHide 请求方级别的隐藏, 不影响其他用户的可见性
type PostHide struct {
	UserID    uint64    `gorm:"primaryKey" json:"user_id"`
	PostID    uint64    `gorm:"primaryKey;index:idx_post_id" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (PostHide) TableName() string {
	return "post_hides"
}
