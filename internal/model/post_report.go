package model

import (
	"time"
)

const (
	ReportStatusOpen      int8 = 0
	ReportStatusReviewed  int8 = 1
	ReportStatusDismissed int8 = 2
)

// ReportReason 举报原因闭集
var ReportReasons = map[string]struct{}{
	"spam":              {},
	"inappropriate":     {},
	"false_information": {},
	"harassment":        {},
	"duplicate":         {},
	"other":             {},
}

// PostReport (user, post) 唯一, 同一用户重复举报不生效
type PostReport struct {
	UserID      uint64    `gorm:"primaryKey" json:"user_id"`
	PostID      uint64    `gorm:"primaryKey;index:idx_post_id" json:"post_id"`
	Reason      string    `gorm:"type:varchar(32);not null" json:"reason"`
	Description string    `gorm:"type:varchar(512)" json:"description"`
	Status      int8      `gorm:"not null;default:0" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func (PostReport) TableName() string {
	return "post_reports"
}
