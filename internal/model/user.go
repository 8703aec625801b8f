package model

import (
	"time"
)

// User 作者侧信息, 帐号体系由外部身份服务维护
type User struct {
	ID        uint64 `gorm:"primaryKey"`
	Nickname  string `gorm:"type:varchar(64);not null" json:"nickname"`
	AvatarURL string `gorm:"type:varchar(512)" json:"avatar_url"`

	// 作者可靠度, 后台任务根据举报历史周期性重算
	ReliabilityScore float64 `gorm:"not null;default:50" json:"reliability_score"`
	TotalPosts       int     `gorm:"not null;default:0" json:"total_posts"`
	ReportedPosts    int     `gorm:"not null;default:0" json:"reported_posts"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
