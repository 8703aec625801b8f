package service

import (
	"Tipside/internal/api/dto"
	"Tipside/internal/model"
	"Tipside/internal/pkg/consts"
	"Tipside/internal/pkg/redis"
	"Tipside/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"time"

	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

type PostService interface {
	CreatePost(ctx context.Context, userID uint64, req *dto.PostBaseDTO) (*dto.PostDTO, error)
	UpdatePost(ctx context.Context, userID, postID uint64, req *dto.PostBaseDTO) error
	HidePost(ctx context.Context, userID, postID uint64, hidden bool) error
	DeletePost(ctx context.Context, userID, postID uint64) error
	GetPost(ctx context.Context, viewerID, postID uint64) (*dto.PostDTO, error)
}

type postServiceImpl struct {
	postRepo     repository.PostRepo
	scoreRepo    repository.PostScoreRepo
	relationRepo repository.UserRelationRepo
	scoreSvc     ScoreService
	penaltyCap   float64
}

func NewPostService(
	postRepo repository.PostRepo,
	scoreRepo repository.PostScoreRepo,
	relationRepo repository.UserRelationRepo,
	scoreSvc ScoreService,
	penaltyCap float64,
) PostService {
	return &postServiceImpl{
		postRepo:     postRepo,
		scoreRepo:    scoreRepo,
		relationRepo: relationRepo,
		scoreSvc:     scoreSvc,
		penaltyCap:   penaltyCap,
	}
}

// CreatePost 发帖同时生成分数行, 质量分一次性评估
func (s *postServiceImpl) CreatePost(ctx context.Context, userID uint64, req *dto.PostBaseDTO) (*dto.PostDTO, error) {
	now := time.Now()
	post := &model.Post{
		UserID:           userID,
		Title:            req.Title,
		Analysis:         req.Analysis,
		Sport:            req.Sport,
		BetType:          req.BetType,
		MatchHome:        req.MatchHome,
		MatchAway:        req.MatchAway,
		PredictedOutcome: req.PredictedOutcome,
		Odds:             req.Odds,
		HasMedia:         req.HasMedia,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	reliability := 50.0
	author, err := s.relationRepo.GetUser(ctx, userID)
	if err == nil && author != nil {
		reliability = author.ReliabilityScore
	}

	score := s.scoreSvc.SeedScore(post, reliability, now)
	if err = s.postRepo.CreatePost(ctx, post, score); err != nil {
		return nil, err
	}

	_ = redis.SAdd(ctx, consts.AuthorDirtyKey, userID)

	return s.toPostDTO(post, score, true), nil
}

// UpdatePost 编辑后重评质量分并重算可见性
func (s *postServiceImpl) UpdatePost(ctx context.Context, userID, postID uint64, req *dto.PostBaseDTO) error {
	post, err := s.getOwnedPost(ctx, userID, postID)
	if err != nil {
		return err
	}

	post.Title = req.Title
	post.Analysis = req.Analysis
	post.Sport = req.Sport
	post.BetType = req.BetType
	post.MatchHome = req.MatchHome
	post.MatchAway = req.MatchAway
	post.PredictedOutcome = req.PredictedOutcome
	post.Odds = req.Odds
	post.HasMedia = req.HasMedia
	post.UpdatedAt = time.Now()

	if err = s.postRepo.UpdatePost(ctx, post); err != nil {
		return err
	}

	score, err := s.scoreRepo.GetScore(ctx, postID)
	if err != nil {
		return err
	}
	score.QualityScore = s.scoreSvc.EvaluateQuality(post)
	s.scoreSvc.Refresh(post, score, time.Now())
	return s.scoreRepo.SaveScore(ctx, score)
}

func (s *postServiceImpl) HidePost(ctx context.Context, userID, postID uint64, hidden bool) error {
	if _, err := s.getOwnedPost(ctx, userID, postID); err != nil {
		return err
	}
	return s.postRepo.SetPostHidden(ctx, postID, hidden)
}

// DeletePost 软删除, 分数行保留以维持历史一致
func (s *postServiceImpl) DeletePost(ctx context.Context, userID, postID uint64) error {
	if _, err := s.getOwnedPost(ctx, userID, postID); err != nil {
		return err
	}
	if err := s.postRepo.DeletePost(ctx, postID); err != nil {
		return err
	}
	_ = redis.SAdd(ctx, consts.AuthorDirtyKey, userID)
	return nil
}

// GetPost 直达详情
// 影子移除和作者隐藏的帖子只有作者本人能看到; 分数拆解仅作者可见
func (s *postServiceImpl) GetPost(ctx context.Context, viewerID, postID uint64) (*dto.PostDTO, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if post.IsDeleted {
		return nil, ErrPostNotFound
	}

	isAuthor := viewerID != 0 && viewerID == post.UserID

	if post.IsHidden && !isAuthor {
		return nil, ErrPostNotFound
	}
	if post.Score != nil && post.Score.ReportPenalty >= s.penaltyCap && !isAuthor {
		return nil, ErrPostNotFound
	}

	// 浏览计入互动信号, 异步不阻塞读
	if !isAuthor {
		go func() {
			bgCtx := context.Background()
			if err := s.postRepo.IncrCounter(bgCtx, postID, "views_count", 1); err != nil {
				log.Error("track post view failed", "postID", postID, "err", err)
				return
			}
			_ = redis.SAdd(bgCtx, consts.PostDirtyKey, postID)
		}()
	}

	return s.toPostDTO(post, post.Score, isAuthor), nil
}

func (s *postServiceImpl) getOwnedPost(ctx context.Context, userID, postID uint64) (*model.Post, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if post.IsDeleted {
		return nil, ErrPostNotFound
	}
	if post.UserID != userID {
		return nil, UnauthorizedError
	}
	return post, nil
}

func (s *postServiceImpl) toPostDTO(post *model.Post, score *model.PostScore, withBreakdown bool) *dto.PostDTO {
	item := &dto.PostDTO{}
	_ = copier.Copy(item, post)
	if post.User.ID > 0 {
		item.UserID = post.User.ID
		item.Nickname = post.User.Nickname
		item.AvatarURL = post.User.AvatarURL
	}
	item.CreatedAt = post.CreatedAt.Format("2006-01-02 15:04:05")
	item.UpdatedAt = post.UpdatedAt.Format("2006-01-02 15:04:05")

	if withBreakdown && score != nil {
		item.Breakdown = &dto.ScoreBreakdownDTO{
			EngagementScore:  score.EngagementScore,
			FreshnessScore:   score.FreshnessScore,
			ReliabilityScore: score.ReliabilityScore,
			QualityScore:     score.QualityScore,
			ReportPenalty:    score.ReportPenalty,
			VisibilityScore:  score.VisibilityScore,
		}
	}
	return item
}
