package service

import (
	"Tipside/internal/model"
	"Tipside/internal/pkg/consts"
	"Tipside/internal/pkg/redis"
	"Tipside/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"time"

	"gorm.io/gorm"
)

// PostActionService 互动动作写路径: 原子计数 + 同步重算互动分
// 点赞走 (user, post) 唯一记录, 重试和重复提交的终态一致
type PostActionService interface {
	LikePost(ctx context.Context, userID, postID uint64) error
	CancelLikePost(ctx context.Context, userID, postID uint64) error
	SharePost(ctx context.Context, userID, postID uint64) error
	TrackPostView(ctx context.Context, userID, postID uint64) error
}

type postActionServiceImpl struct {
	postRepo repository.PostRepo
	likeRepo repository.PostLikeRepo
	scoreSvc ScoreService
}

func NewPostActionService(postRepo repository.PostRepo, likeRepo repository.PostLikeRepo, scoreSvc ScoreService) PostActionService {
	return &postActionServiceImpl{
		postRepo: postRepo,
		likeRepo: likeRepo,
		scoreSvc: scoreSvc,
	}
}

func (s *postActionServiceImpl) LikePost(ctx context.Context, userID, postID uint64) error {
	if err := s.checkPost(ctx, postID); err != nil {
		return err
	}

	err := s.likeRepo.CreateLike(ctx, &model.PostLike{
		UserID:    userID,
		PostID:    postID,
		CreatedAt: time.Now(),
	})
	if err != nil {
		// 已点过赞, 计数不再累加
		if isDuplicateError(err) {
			return nil
		}
		return err
	}
	return s.bumpCounter(ctx, postID, "likes_count", 1)
}

func (s *postActionServiceImpl) CancelLikePost(ctx context.Context, userID, postID uint64) error {
	if err := s.checkPost(ctx, postID); err != nil {
		return err
	}

	removed, err := s.likeRepo.DeleteLike(ctx, userID, postID)
	if err != nil {
		return err
	}
	// 没点过赞的取消是 no-op, 不能扣掉别人的计数
	if !removed {
		return nil
	}
	return s.bumpCounter(ctx, postID, "likes_count", -1)
}

func (s *postActionServiceImpl) SharePost(ctx context.Context, userID, postID uint64) error {
	if err := s.checkPost(ctx, postID); err != nil {
		return err
	}
	return s.bumpCounter(ctx, postID, "shares_count", 1)
}

func (s *postActionServiceImpl) TrackPostView(ctx context.Context, userID, postID uint64) error {
	if err := s.checkPost(ctx, postID); err != nil {
		return err
	}
	return s.bumpCounter(ctx, postID, "views_count", 1)
}

func (s *postActionServiceImpl) checkPost(ctx context.Context, postID uint64) error {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	if post.IsDeleted {
		return ErrPostNotFound
	}
	return nil
}

// bumpCounter 计数列原子增减后整行重算分数
func (s *postActionServiceImpl) bumpCounter(ctx context.Context, postID uint64, column string, delta int64) error {
	if err := s.postRepo.IncrCounter(ctx, postID, column, delta); err != nil {
		return err
	}

	if err := s.scoreSvc.RecomputeVisibility(ctx, postID); err != nil {
		// 分数落后一拍可以接受, 由脏集兜底, 不让请求失败
		log.ErrorContext(ctx, "recompute after engagement failed", "postID", postID, "err", err)
		_ = redis.SAdd(ctx, consts.PostDirtyKey, postID)
	}
	return nil
}
