package repository

import (
	"Tipside/internal/model"
	"context"

	"gorm.io/gorm"
)

type UserRelationRepo interface {
	CreateBlock(ctx context.Context, block *model.UserBlock) error
	DeleteBlock(ctx context.Context, userID, blockedID uint64) error
	GetBlockedIDs(ctx context.Context, userID uint64) ([]uint64, error)

	CreateHide(ctx context.Context, hide *model.PostHide) error
	GetHiddenPostIDs(ctx context.Context, userID uint64) ([]uint64, error)

	GetUser(ctx context.Context, id uint64) (*model.User, error)
	UpdateUserReliability(ctx context.Context, userID uint64, score float64, total, reported int) error
}

type UserRelationRepoImpl struct {
	db *gorm.DB
}

func NewUserRelationRepo(db *gorm.DB) UserRelationRepo {
	return &UserRelationRepoImpl{db}
}

func (s *UserRelationRepoImpl) CreateBlock(ctx context.Context, block *model.UserBlock) error {
	return s.db.WithContext(ctx).Create(block).Error
}

func (s *UserRelationRepoImpl) DeleteBlock(ctx context.Context, userID, blockedID uint64) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND blocked_id = ?", userID, blockedID).
		Delete(&model.UserBlock{}).Error
}

func (s *UserRelationRepoImpl) GetBlockedIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	var ids []uint64
	err := s.db.WithContext(ctx).Model(&model.UserBlock{}).
		Where("user_id = ?", userID).
		Pluck("blocked_id", &ids).Error
	return ids, err
}

func (s *UserRelationRepoImpl) CreateHide(ctx context.Context, hide *model.PostHide) error {
	return s.db.WithContext(ctx).Create(hide).Error
}

func (s *UserRelationRepoImpl) GetHiddenPostIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	var ids []uint64
	err := s.db.WithContext(ctx).Model(&model.PostHide{}).
		Where("user_id = ?", userID).
		Pluck("post_id", &ids).Error
	return ids, err
}

func (s *UserRelationRepoImpl) GetUser(ctx context.Context, id uint64) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserRelationRepoImpl) UpdateUserReliability(ctx context.Context, userID uint64, score float64, total, reported int) error {
	return s.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"reliability_score": score,
			"total_posts":       total,
			"reported_posts":    reported,
		}).Error
}
