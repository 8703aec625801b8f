package service

import (
	"Tipside/internal/api/config"
	"Tipside/internal/model"
	"Tipside/internal/pkg/scoring"
	"context"
	log "log/slog"
	"time"
)

// ScoreService 子分数聚合与可见性分数维护
// 所有写路径(互动/举报/后台任务)都经由这里重算, 保证公式只有一处
type ScoreService interface {
	SeedScore(post *model.Post, reliability float64, now time.Time) *model.PostScore
	EvaluateQuality(post *model.Post) float64
	Refresh(post *model.Post, score *model.PostScore, now time.Time)
	RecomputeVisibility(ctx context.Context, postID uint64) error
	Weights() scoring.Weights
	HalfLife() time.Duration
}

type scoreServiceImpl struct {
	postRepo  repositoryPostReader
	scoreRepo repositoryScoreStore
	cfg       config.ScoringConfig
}

// 评分服务只需要仓储的一小部分能力, 窄接口方便测试替身
type repositoryPostReader interface {
	GetPost(ctx context.Context, id uint64) (*model.Post, error)
}

type repositoryScoreStore interface {
	GetScore(ctx context.Context, postID uint64) (*model.PostScore, error)
	SaveScore(ctx context.Context, score *model.PostScore) error
}

func NewScoreService(postRepo repositoryPostReader, scoreRepo repositoryScoreStore, cfg config.ScoringConfig) ScoreService {
	return &scoreServiceImpl{
		postRepo:  postRepo,
		scoreRepo: scoreRepo,
		cfg:       cfg,
	}
}

func (s *scoreServiceImpl) Weights() scoring.Weights {
	return scoring.Weights{
		Engagement:  s.cfg.EngagementWeight,
		Freshness:   s.cfg.FreshnessWeight,
		Reliability: s.cfg.ReliabilityWeight,
		Quality:     s.cfg.QualityWeight,
	}
}

func (s *scoreServiceImpl) HalfLife() time.Duration {
	return time.Duration(s.cfg.FreshnessHalfLifeHours * float64(time.Hour))
}

// SeedScore 发帖时生成初始分数行: 中性默认值 + 一次性质量评估
func (s *scoreServiceImpl) SeedScore(post *model.Post, reliability float64, now time.Time) *model.PostScore {
	score := &model.PostScore{
		PostID:           post.ID,
		EngagementScore:  0,
		FreshnessScore:   scoring.Freshness(post.CreatedAt, now, s.HalfLife()),
		ReliabilityScore: scoring.Clamp(reliability, 0, 100),
		QualityScore:     s.EvaluateQuality(post),
		ReportPenalty:    0,
		UpdatedAt:        now,
	}
	score.VisibilityScore = scoring.Composite(
		score.EngagementScore, score.FreshnessScore,
		score.ReliabilityScore, score.QualityScore,
		score.ReportPenalty, s.Weights())
	return score
}

// EvaluateQuality 发布/编辑时的结构完整度评估
func (s *scoreServiceImpl) EvaluateQuality(post *model.Post) float64 {
	hasPrediction := post.MatchHome != "" && post.MatchAway != "" && post.PredictedOutcome != ""
	return scoring.ContentQuality(len([]rune(post.Analysis)), post.HasMedia, hasPrediction, post.Odds > 0)
}

// Refresh 就地重算互动分/新鲜度/可见性, 不落库
func (s *scoreServiceImpl) Refresh(post *model.Post, score *model.PostScore, now time.Time) {
	if post.LikesCount < 0 || post.CommentsCount < 0 || post.SharesCount < 0 || post.ViewsCount < 0 {
		log.Warn("negative counter clamped during score refresh", "postID", post.ID)
	}
	score.EngagementScore = scoring.Engagement(
		int64(post.LikesCount), int64(post.CommentsCount),
		int64(post.SharesCount), int64(post.ViewsCount),
		now.Sub(post.CreatedAt), s.cfg.EngagementSaturation)
	score.FreshnessScore = scoring.Freshness(post.CreatedAt, now, s.HalfLife())
	score.VisibilityScore = scoring.Composite(
		score.EngagementScore, score.FreshnessScore,
		score.ReliabilityScore, score.QualityScore,
		score.ReportPenalty, s.Weights())
	score.UpdatedAt = now
}

// RecomputeVisibility 读取当前行重算并整行回写
func (s *scoreServiceImpl) RecomputeVisibility(ctx context.Context, postID uint64) error {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	score, err := s.scoreRepo.GetScore(ctx, postID)
	if err != nil {
		return err
	}
	s.Refresh(post, score, time.Now())
	return s.scoreRepo.SaveScore(ctx, score)
}
