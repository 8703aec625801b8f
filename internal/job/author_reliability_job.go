package job

import (
	"Tipside/internal/pkg/consts"
	"Tipside/internal/pkg/logger"
	"Tipside/internal/pkg/redis"
	"Tipside/internal/pkg/scoring"
	"Tipside/internal/pkg/util"
	"Tipside/internal/repository"
	"Tipside/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// AuthorReliabilityJob 重算脏作者的可信度, 并扩散到作者全部帖子的分数行
// 作者在发帖或被举报后进入脏集
type AuthorReliabilityJob struct {
	postRepo     repository.PostRepo
	scoreRepo    repository.PostScoreRepo
	relationRepo repository.UserRelationRepo
	scoreSvc     service.ScoreService
}

func NewAuthorReliabilityJob(
	postRepo repository.PostRepo,
	scoreRepo repository.PostScoreRepo,
	relationRepo repository.UserRelationRepo,
	scoreSvc service.ScoreService,
) *AuthorReliabilityJob {
	return &AuthorReliabilityJob{
		postRepo:     postRepo,
		scoreRepo:    scoreRepo,
		relationRepo: relationRepo,
		scoreSvc:     scoreSvc,
	}
}

func (s *AuthorReliabilityJob) Run() {
	traceID := "job-author-reliability-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	processingKey := consts.AuthorDirtyKey + ":processing"
	err := redis.Rename(ctx, consts.AuthorDirtyKey, processingKey)
	if err != nil {
		return
	}

	tempSet, err := redis.GetSet(ctx, processingKey)
	if err != nil {
		log.ErrorContext(ctx, "get author dirty set error", "err", err)
		return
	}

	authorIDs, err := util.StrSliceToUInt64Slice(tempSet)
	if err != nil {
		log.ErrorContext(ctx, "convert author set to int slice error", "err", err)
		return
	}

	for _, uid := range authorIDs {
		if err = s.recalcAuthor(ctx, uid); err != nil {
			log.ErrorContext(ctx, "recalc author reliability error", "uid", uid, "err", err)
		}
	}

	err = redis.DeleteKey(ctx, processingKey)
	if err != nil {
		log.ErrorContext(ctx, "delete author processing set error", "err", err)
	}

	log.InfoContext(ctx, "sync author reliability success", "author_count", len(authorIDs))
}

func (s *AuthorReliabilityJob) recalcAuthor(ctx context.Context, userID uint64) error {
	total, reported, err := s.postRepo.CountByAuthor(ctx, userID)
	if err != nil {
		return err
	}

	// 预测准确率由赛果结算服务回填, 这里只看举报占比
	reliability := scoring.AuthorReliability(total, reported, nil)
	if err = s.relationRepo.UpdateUserReliability(ctx, userID, reliability, int(total), int(reported)); err != nil {
		return err
	}

	scores, err := s.scoreRepo.GetScoresByAuthor(ctx, userID)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, sc := range scores {
		post, err := s.postRepo.GetPost(ctx, sc.PostID)
		if err != nil {
			log.WarnContext(ctx, "load post for reliability refresh error", "pid", sc.PostID, "err", err)
			continue
		}
		sc.ReliabilityScore = reliability
		s.scoreSvc.Refresh(post, sc, now)
		if err = s.scoreRepo.SaveScore(ctx, sc); err != nil {
			log.ErrorContext(ctx, "save score after reliability refresh error", "pid", sc.PostID, "err", err)
		}
	}
	return nil
}
