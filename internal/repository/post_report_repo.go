package repository

import (
	"Tipside/internal/model"
	"context"

	"gorm.io/gorm"
)

type PostReportRepo interface {
	CreateReport(ctx context.Context, report *model.PostReport) error
	CheckReportExists(ctx context.Context, userID, postID uint64) (bool, error)
	CountByPostID(ctx context.Context, postID uint64) (int64, error)
	UpdateReportStatus(ctx context.Context, userID, postID uint64, status int8) error
}

type PostReportRepoImpl struct {
	db *gorm.DB
}

func NewPostReportRepo(db *gorm.DB) PostReportRepo {
	return &PostReportRepoImpl{db}
}

// CreateReport 直接插入, 重复举报由 (user, post) 主键约束拦截
func (s *PostReportRepoImpl) CreateReport(ctx context.Context, report *model.PostReport) error {
	return s.db.WithContext(ctx).Create(report).Error
}

func (s *PostReportRepoImpl) CheckReportExists(ctx context.Context, userID, postID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.PostReport{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

func (s *PostReportRepoImpl) CountByPostID(ctx context.Context, postID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.PostReport{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

func (s *PostReportRepoImpl) UpdateReportStatus(ctx context.Context, userID, postID uint64, status int8) error {
	return s.db.WithContext(ctx).Model(&model.PostReport{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Update("status", status).Error
}
