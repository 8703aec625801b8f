package service

import (
	"Tipside/internal/api/dto"
	"Tipside/internal/model"
	"Tipside/internal/repository"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// BoostService 助推开关, 重试幂等: 连点两次和点一次的终态一致
// 写路径不重算可见性分数, 加成在信息流读取时叠加
type BoostService interface {
	Boost(ctx context.Context, userID, postID uint64) (*dto.BoostStateDTO, error)
	Unboost(ctx context.Context, userID, postID uint64) (*dto.BoostStateDTO, error)
}

type boostServiceImpl struct {
	boostRepo repository.PostBoostRepo
	scoreRepo repository.PostScoreRepo
	postRepo  repository.PostRepo
}

func NewBoostService(
	boostRepo repository.PostBoostRepo,
	scoreRepo repository.PostScoreRepo,
	postRepo repository.PostRepo,
) BoostService {
	return &boostServiceImpl{
		boostRepo: boostRepo,
		scoreRepo: scoreRepo,
		postRepo:  postRepo,
	}
}

func (s *boostServiceImpl) Boost(ctx context.Context, userID, postID uint64) (*dto.BoostStateDTO, error) {
	if err := s.checkPost(ctx, postID); err != nil {
		return nil, err
	}

	err := s.boostRepo.CreateBoost(ctx, &model.PostBoost{
		UserID:    userID,
		PostID:    postID,
		CreatedAt: time.Now(),
	})
	if err != nil {
		// 重复助推: 期望的终态已达成, 按成功返回
		if !isDuplicateError(err) {
			return nil, err
		}
	} else {
		if err = s.scoreRepo.AdjustBoostCount(ctx, postID, 1); err != nil {
			return nil, err
		}
	}

	return s.boostState(ctx, postID, true)
}

func (s *boostServiceImpl) Unboost(ctx context.Context, userID, postID uint64) (*dto.BoostStateDTO, error) {
	if err := s.checkPost(ctx, postID); err != nil {
		return nil, err
	}

	removed, err := s.boostRepo.DeleteBoost(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if removed {
		if err = s.scoreRepo.AdjustBoostCount(ctx, postID, -1); err != nil {
			return nil, err
		}
	}

	return s.boostState(ctx, postID, false)
}

func (s *boostServiceImpl) boostState(ctx context.Context, postID uint64, boosted bool) (*dto.BoostStateDTO, error) {
	score, err := s.scoreRepo.GetScore(ctx, postID)
	if err != nil {
		return nil, err
	}
	return &dto.BoostStateDTO{
		Boosted:    boosted,
		BoostCount: score.BoostCount,
	}, nil
}

func (s *boostServiceImpl) checkPost(ctx context.Context, postID uint64) error {
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
