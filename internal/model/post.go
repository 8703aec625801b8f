package model

import (
	"time"
)

type Post struct {
	ID       uint64 `gorm:"primaryKey"`
	UserID   uint64 `gorm:"not null;index:idx_user_id" json:"user_id"`
	Title    string `gorm:"type:varchar(255)" json:"title"`
	Analysis string `gorm:"type:text" json:"analysis"`

	// 内容标签: 运动项目 / 玩法类型
	Sport   string `gorm:"type:varchar(64);not null;index:idx_sport" json:"sport"`
	BetType string `gorm:"type:varchar(64);not null" json:"bet_type"`

	// 结构化预测字段
	MatchHome        string  `gorm:"type:varchar(128)" json:"match_home"`
	MatchAway        string  `gorm:"type:varchar(128)" json:"match_away"`
	PredictedOutcome string  `gorm:"type:varchar(128)" json:"predicted_outcome"`
	Odds             float64 `gorm:"not null;default:0" json:"odds"`

	HasMedia bool `gorm:"type:tinyint(1);not null;default:0" json:"has_media"`

	LikesCount    int `gorm:"not null;default:0" json:"likes_count"`
	CommentsCount int `gorm:"not null;default:0" json:"comments_count"`
	SharesCount   int `gorm:"not null;default:0" json:"shares_count"`
	ViewsCount    int `gorm:"not null;default:0" json:"views_count"`

	IsHidden  bool      `gorm:"type:tinyint(1);not null;default:0" json:"is_hidden"`
	IsDeleted bool      `gorm:"type:tinyint(1);not null;default:0" json:"is_deleted"`
	CreatedAt time.Time `gorm:"index:idx_created_at" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 关联关系
	User  User       `gorm:"foreignKey:UserID;references:ID"`
	Score *PostScore `gorm:"foreignKey:PostID;references:ID"`
}

func (Post) TableName() string {
	return "posts"
}
