package repository

import (
	"Tipside/internal/model"
	"context"

	"gorm.io/gorm"
)

type PostLikeRepo interface {
	CreateLike(ctx context.Context, like *model.PostLike) error
	DeleteLike(ctx context.Context, userID, postID uint64) (bool, error)
}

type PostLikeRepoImpl struct {
	db *gorm.DB
}

func NewPostLikeRepo(db *gorm.DB) PostLikeRepo {
	return &PostLikeRepoImpl{db}
}

// CreateLike 直接插入, (user, post) 重复时由主键约束报错, 上层识别处理
func (s *PostLikeRepoImpl) CreateLike(ctx context.Context, like *model.PostLike) error {
	return s.db.WithContext(ctx).Create(like).Error
}

// DeleteLike 返回是否真的删除了记录, 不存在时为 no-op
func (s *PostLikeRepoImpl) DeleteLike(ctx context.Context, userID, postID uint64) (bool, error) {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&model.PostLike{})
	return res.RowsAffected > 0, res.Error
}
