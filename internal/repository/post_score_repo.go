package repository

import (
	"Tipside/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

type PostScoreRepo interface {
	GetScore(ctx context.Context, postID uint64) (*model.PostScore, error)
	GetScoresByPostIDs(ctx context.Context, postIDs []uint64) (map[uint64]*model.PostScore, error)
	GetScoresByAuthor(ctx context.Context, userID uint64) ([]*model.PostScore, error)
	SaveScore(ctx context.Context, score *model.PostScore) error
	ApplyReportPenalty(ctx context.Context, postID uint64, step, cap float64) error
	AdjustBoostCount(ctx context.Context, postID uint64, delta int) error
	SetBoostCount(ctx context.Context, postID uint64, count int) error
	ListPenalized(ctx context.Context, lastReportedBefore time.Time) ([]*model.PostScore, error)
}

type PostScoreRepoImpl struct {
	db *gorm.DB
}

func NewPostScoreRepo(db *gorm.DB) PostScoreRepo {
	return &PostScoreRepoImpl{db}
}

func (s *PostScoreRepoImpl) GetScore(ctx context.Context, postID uint64) (*model.PostScore, error) {
	var score model.PostScore
	err := s.db.WithContext(ctx).First(&score, "post_id = ?", postID).Error
	if err != nil {
		return nil, err
	}
	return &score, nil
}

func (s *PostScoreRepoImpl) GetScoresByPostIDs(ctx context.Context, postIDs []uint64) (map[uint64]*model.PostScore, error) {
	var scores []*model.PostScore
	err := s.db.WithContext(ctx).Where("post_id IN ?", postIDs).Find(&scores).Error
	if err != nil {
		return nil, err
	}
	res := make(map[uint64]*model.PostScore, len(scores))
	for _, sc := range scores {
		res[sc.PostID] = sc
	}
	return res, nil
}

func (s *PostScoreRepoImpl) GetScoresByAuthor(ctx context.Context, userID uint64) ([]*model.PostScore, error) {
	var scores []*model.PostScore
	err := s.db.WithContext(ctx).
		Joins("JOIN posts ON posts.id = post_scores.post_id").
		Where("posts.user_id = ? AND posts.is_deleted = ?", userID, false).
		Find(&scores).Error
	return scores, err
}

// SaveScore 整行落库, 五个分量和可见性分数一次性原子写入
func (s *PostScoreRepoImpl) SaveScore(ctx context.Context, score *model.PostScore) error {
	return s.db.WithContext(ctx).Model(&model.PostScore{}).
		Where("post_id = ?", score.PostID).
		Updates(map[string]interface{}{
			"engagement_score":  score.EngagementScore,
			"freshness_score":   score.FreshnessScore,
			"reliability_score": score.ReliabilityScore,
			"quality_score":     score.QualityScore,
			"report_penalty":    score.ReportPenalty,
			"visibility_score":  score.VisibilityScore,
			"updated_at":        time.Now(),
		}).Error
}

// ApplyReportPenalty 惩罚值原子累加并封顶, 同时刷新最近举报时间
func (s *PostScoreRepoImpl) ApplyReportPenalty(ctx context.Context, postID uint64, step, cap float64) error {
	return s.db.WithContext(ctx).Model(&model.PostScore{}).
		Where("post_id = ?", postID).
		Updates(map[string]interface{}{
			"report_penalty":   gorm.Expr("LEAST(report_penalty + ?, ?)", step, cap),
			"last_reported_at": time.Now(),
		}).Error
}

// AdjustBoostCount 助推计数原子增减, 不允许为负
func (s *PostScoreRepoImpl) AdjustBoostCount(ctx context.Context, postID uint64, delta int) error {
	return s.db.WithContext(ctx).Model(&model.PostScore{}).
		Where("post_id = ?", postID).
		Update("boost_count", gorm.Expr("GREATEST(CAST(boost_count AS SIGNED) + ?, 0)", delta)).Error
}

func (s *PostScoreRepoImpl) SetBoostCount(ctx context.Context, postID uint64, count int) error {
	return s.db.WithContext(ctx).Model(&model.PostScore{}).
		Where("post_id = ?", postID).
		Update("boost_count", count).Error
}

// ListPenalized 拉取静默窗口外仍带惩罚的分数行, 供衰减任务处理
func (s *PostScoreRepoImpl) ListPenalized(ctx context.Context, lastReportedBefore time.Time) ([]*model.PostScore, error) {
	var scores []*model.PostScore
	err := s.db.WithContext(ctx).
		Where("report_penalty > 0 AND last_reported_at IS NOT NULL AND last_reported_at < ?", lastReportedBefore).
		Find(&scores).Error
	return scores, err
}
