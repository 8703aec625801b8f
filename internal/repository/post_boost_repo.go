package repository

import (
	"Tipside/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

type PostBoostRepo interface {
	CreateBoost(ctx context.Context, boost *model.PostBoost) error
	DeleteBoost(ctx context.Context, userID, postID uint64) (bool, error)
	CountByPostID(ctx context.Context, postID uint64) (int64, error)
	DeleteExpired(ctx context.Context, before time.Time) ([]uint64, error)
}

type PostBoostRepoImpl struct {
	db *gorm.DB
}

func NewPostBoostRepo(db *gorm.DB) PostBoostRepo {
	return &PostBoostRepoImpl{db}
}

// CreateBoost 直接插入, (user, post) 重复时由主键约束报错, 上层识别处理
func (s *PostBoostRepoImpl) CreateBoost(ctx context.Context, boost *model.PostBoost) error {
	return s.db.WithContext(ctx).Create(boost).Error
}

// DeleteBoost 返回是否真的删除了记录, 不存在时为 no-op
func (s *PostBoostRepoImpl) DeleteBoost(ctx context.Context, userID, postID uint64) (bool, error) {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&model.PostBoost{})
	return res.RowsAffected > 0, res.Error
}

func (s *PostBoostRepoImpl) CountByPostID(ctx context.Context, postID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.PostBoost{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

// DeleteExpired 清理过期助推, 返回受影响的帖子 ID 供重算计数
func (s *PostBoostRepoImpl) DeleteExpired(ctx context.Context, before time.Time) ([]uint64, error) {
	var postIDs []uint64
	err := s.db.WithContext(ctx).Model(&model.PostBoost{}).
		Where("created_at < ?", before).
		Distinct().
		Pluck("post_id", &postIDs).Error
	if err != nil {
		return nil, err
	}
	if len(postIDs) == 0 {
		return nil, nil
	}

	err = s.db.WithContext(ctx).
		Where("created_at < ?", before).
		Delete(&model.PostBoost{}).Error
	return postIDs, err
}
