package model

import (
	"time"
)

// PostScore 与 Post 一对一, 排序的唯一事实来源
// visibility_score 只能由 scoring.Composite 推导, 禁止直接改写
type PostScore struct {
	PostID           uint64  `gorm:"primaryKey" json:"post_id"`
	EngagementScore  float64 `gorm:"not null;default:0" json:"engagement_score"`
	FreshnessScore   float64 `gorm:"not null;default:100" json:"freshness_score"`
	ReliabilityScore float64 `gorm:"not null;default:50" json:"reliability_score"`
	QualityScore     float64 `gorm:"not null;default:0" json:"quality_score"`
	ReportPenalty    float64 `gorm:"not null;default:0" json:"report_penalty"`
	VisibilityScore  float64 `gorm:"not null;default:0;index:idx_visibility" json:"visibility_score"`

	BoostCount     int        `gorm:"not null;default:0" json:"boost_count"`
	LastReportedAt *time.Time `json:"last_reported_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (PostScore) TableName() string {
	return "post_scores"
}
