package job

import (
	"Tipside/internal/api/config"
	"Tipside/internal/pkg/logger"
	"Tipside/internal/repository"
	"Tipside/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// PenaltyDecayJob 每小时执行一次: 惩罚静默期后逐步衰减, 同时清理过期助推
type PenaltyDecayJob struct {
	postRepo  repository.PostRepo
	scoreRepo repository.PostScoreRepo
	boostRepo repository.PostBoostRepo
	scoreSvc  service.ScoreService
	cfg       config.ScoringConfig
}

func NewPenaltyDecayJob(
	postRepo repository.PostRepo,
	scoreRepo repository.PostScoreRepo,
	boostRepo repository.PostBoostRepo,
	scoreSvc service.ScoreService,
	cfg config.ScoringConfig,
) *PenaltyDecayJob {
	return &PenaltyDecayJob{
		postRepo:  postRepo,
		scoreRepo: scoreRepo,
		boostRepo: boostRepo,
		scoreSvc:  scoreSvc,
		cfg:       cfg,
	}
}

func (s *PenaltyDecayJob) Run() {
	traceID := "job-penalty-decay-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	s.decayPenalties(ctx)
	s.expireBoosts(ctx)
}

// decayPenalties 静默期内没有新举报的帖子, 每轮扣减固定衰减量直到归零
func (s *PenaltyDecayJob) decayPenalties(ctx context.Context) {
	now := time.Now()
	quietBefore := now.Add(-time.Duration(s.cfg.PenaltyQuietHours) * time.Hour)

	scores, err := s.scoreRepo.ListPenalized(ctx, quietBefore)
	if err != nil {
		log.ErrorContext(ctx, "list penalized scores error", "err", err)
		return
	}

	decayed := 0
	for _, sc := range scores {
		post, err := s.postRepo.GetPost(ctx, sc.PostID)
		if err != nil {
			log.WarnContext(ctx, "load post for penalty decay error", "pid", sc.PostID, "err", err)
			continue
		}

		sc.ReportPenalty -= s.cfg.PenaltyDecayPerHour
		if sc.ReportPenalty < 0 {
			sc.ReportPenalty = 0
		}

		s.scoreSvc.Refresh(post, sc, now)
		if err = s.scoreRepo.SaveScore(ctx, sc); err != nil {
			log.ErrorContext(ctx, "save score after penalty decay error", "pid", sc.PostID, "err", err)
			continue
		}
		decayed++
	}

	log.InfoContext(ctx, "penalty decay finished", "candidate_count", len(scores), "decayed", decayed)
}

// expireBoosts 删除超出助推窗口的记录并按真实存量回写计数
func (s *PenaltyDecayJob) expireBoosts(ctx context.Context) {
	before := time.Now().Add(-time.Duration(s.cfg.BoostWindowHours) * time.Hour)

	postIDs, err := s.boostRepo.DeleteExpired(ctx, before)
	if err != nil {
		log.ErrorContext(ctx, "delete expired boosts error", "err", err)
		return
	}

	for _, pid := range postIDs {
		count, err := s.boostRepo.CountByPostID(ctx, pid)
		if err != nil {
			log.ErrorContext(ctx, "count boosts error", "pid", pid, "err", err)
			continue
		}
		if err = s.scoreRepo.SetBoostCount(ctx, pid, int(count)); err != nil {
			log.ErrorContext(ctx, "set boost count error", "pid", pid, "err", err)
		}
	}

	if len(postIDs) > 0 {
		log.InfoContext(ctx, "expired boosts cleaned", "post_count", len(postIDs))
	}
}
