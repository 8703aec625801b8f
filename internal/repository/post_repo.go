package repository

import (
	"Tipside/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

// FeedCandidateQuery 信息流候选集筛选条件
type FeedCandidateQuery struct {
	AsOf             time.Time
	Since            *time.Time // 社区流的时间窗口下界, nil 表示不限
	ExcludeAuthorIDs []uint64
	ExcludePostIDs   []uint64
	PenaltyCap       float64 // 达到上限的帖子视为影子移除
	OrderByCreated   bool
	Limit            int
}

type PostRepo interface {
	CreatePost(ctx context.Context, post *model.Post, score *model.PostScore) error
	GetPost(ctx context.Context, id uint64) (*model.Post, error)
	GetPostByIds(ctx context.Context, ids []uint64) ([]*model.Post, error)
	UpdatePost(ctx context.Context, post *model.Post) error
	SetPostHidden(ctx context.Context, id uint64, hidden bool) error
	DeletePost(ctx context.Context, id uint64) error
	IncrCounter(ctx context.Context, id uint64, column string, delta int64) error
	ListFeedCandidates(ctx context.Context, q FeedCandidateQuery) ([]*model.Post, error)
	CountByAuthor(ctx context.Context, userID uint64) (total int64, reported int64, err error)
	GetPostIDsByAuthor(ctx context.Context, userID uint64) ([]uint64, error)
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepo {
	return &PostRepoImpl{
		db: db,
	}
}

func (s *PostRepoImpl) CreatePost(ctx context.Context, post *model.Post, score *model.PostScore) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		score.PostID = post.ID
		return tx.Create(score).Error
	})
}

func (s *PostRepoImpl) GetPost(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := s.db.WithContext(ctx).Preload("User").Preload("Score").First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *PostRepoImpl) GetPostByIds(ctx context.Context, ids []uint64) ([]*model.Post, error) {
	var posts []*model.Post
	err := s.db.WithContext(ctx).Preload("User").Preload("Score").Where("id IN ?", ids).Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *PostRepoImpl) UpdatePost(ctx context.Context, post *model.Post) error {
	return s.db.WithContext(ctx).Updates(post).Error
}

func (s *PostRepoImpl) SetPostHidden(ctx context.Context, id uint64, hidden bool) error {
	return s.db.WithContext(ctx).Model(&model.Post{}).Where("id = ?", id).Update("is_hidden", hidden).Error
}

func (s *PostRepoImpl) DeletePost(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Model(&model.Post{}).Where("id = ?", id).Update("is_deleted", true).Error
}

// IncrCounter 计数列原子增减, 不走读改写, 负增量收敛到 0
func (s *PostRepoImpl) IncrCounter(ctx context.Context, id uint64, column string, delta int64) error {
	return s.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", id).
		Update(column, gorm.Expr("GREATEST(CAST("+column+" AS SIGNED) + ?, 0)", delta)).Error
}

// ListFeedCandidates 拉取信息流候选集
// 统一排除: 已删除 / 作者隐藏 / 惩罚到顶(影子移除) / 快照时间之后发布的帖子
func (s *PostRepoImpl) ListFeedCandidates(ctx context.Context, q FeedCandidateQuery) ([]*model.Post, error) {
	tx := s.db.WithContext(ctx).Model(&model.Post{}).
		Joins("JOIN post_scores ON post_scores.post_id = posts.id").
		Preload("User").Preload("Score").
		Where("posts.is_deleted = ? AND posts.is_hidden = ?", false, false).
		Where("posts.created_at <= ?", q.AsOf).
		Where("post_scores.report_penalty < ?", q.PenaltyCap)

	if q.Since != nil {
		tx = tx.Where("posts.created_at >= ?", *q.Since)
	}
	if len(q.ExcludeAuthorIDs) > 0 {
		tx = tx.Where("posts.user_id NOT IN ?", q.ExcludeAuthorIDs)
	}
	if len(q.ExcludePostIDs) > 0 {
		tx = tx.Where("posts.id NOT IN ?", q.ExcludePostIDs)
	}

	if q.OrderByCreated {
		tx = tx.Order("posts.created_at DESC, posts.id DESC")
	} else {
		tx = tx.Order("post_scores.visibility_score DESC, posts.created_at DESC, posts.id DESC")
	}

	var posts []*model.Post
	err := tx.Limit(q.Limit).Find(&posts).Error
	return posts, err
}

func (s *PostRepoImpl) CountByAuthor(ctx context.Context, userID uint64) (int64, int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&model.Post{}).
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Count(&total).Error
	if err != nil {
		return 0, 0, err
	}

	var reported int64
	err = s.db.WithContext(ctx).Model(&model.Post{}).
		Joins("JOIN post_scores ON post_scores.post_id = posts.id").
		Where("posts.user_id = ? AND posts.is_deleted = ? AND post_scores.report_penalty > 0", userID, false).
		Count(&reported).Error
	return total, reported, err
}

func (s *PostRepoImpl) GetPostIDsByAuthor(ctx context.Context, userID uint64) ([]uint64, error) {
	var ids []uint64
	err := s.db.WithContext(ctx).Model(&model.Post{}).
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Pluck("id", &ids).Error
	return ids, err
}
