package job

import (
	"Tipside/internal/pkg/consts"
	"Tipside/internal/pkg/logger"
	"Tipside/internal/pkg/redis"
	"Tipside/internal/pkg/util"
	"Tipside/internal/repository"
	"Tipside/internal/service"
	"context"
	log "log/slog"

	"github.com/google/uuid"
)

// counterColumns Redis 增量键前缀 -> posts 表计数列
var counterColumns = []struct {
	keyPrefix string
	column    string
}{
	{consts.PostLikeKey, "likes_count"},
	{consts.PostCommentKey, "comments_count"},
	{consts.PostShareKey, "shares_count"},
	{consts.PostViewKey, "views_count"},
}

// ScoreSyncJob 把 Kafka 消费累积的 Redis 计数增量刷回 MySQL 并重算可见性
type ScoreSyncJob struct {
	postRepo repository.PostRepo
	scoreSvc service.ScoreService
}

func NewScoreSyncJob(postRepo repository.PostRepo, scoreSvc service.ScoreService) *ScoreSyncJob {
	return &ScoreSyncJob{
		postRepo: postRepo,
		scoreSvc: scoreSvc,
	}
}

func (s *ScoreSyncJob) Run() {
	traceID := "job-score-sync-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	processingKey := consts.PostDirtyKey + ":processing"
	err := redis.Rename(ctx, consts.PostDirtyKey, processingKey)
	if err != nil {
		// 脏集为空属于常态
		return
	}

	tempSet, err := redis.GetSet(ctx, processingKey)
	if err != nil {
		log.ErrorContext(ctx, "get post dirty set error", "err", err)
		return
	}

	postIDs, err := util.StrSliceToUInt64Slice(tempSet)
	if err != nil {
		log.ErrorContext(ctx, "convert post set to int slice error", "err", err)
		return
	}

	synced := 0
	for _, pid := range postIDs {
		if err = s.syncOne(ctx, pid); err != nil {
			log.ErrorContext(ctx, "sync post score error", "pid", pid, "err", err)
			continue
		}
		synced++
	}

	err = redis.DeleteKey(ctx, processingKey)
	if err != nil {
		log.ErrorContext(ctx, "delete post processing set error", "err", err)
	}

	log.InfoContext(ctx, "sync post scores success", "post_count", len(postIDs), "synced", synced)
}

// syncOne 取走一个帖子的全部计数增量, 原子落库后重算可见性
func (s *ScoreSyncJob) syncOne(ctx context.Context, postID uint64) error {
	for _, cc := range counterColumns {
		delta, err := redis.TakeInt64(ctx, redis.BuildKey(cc.keyPrefix, postID))
		if err != nil {
			return err
		}
		if delta == 0 {
			continue
		}
		if err = s.postRepo.IncrCounter(ctx, postID, cc.column, delta); err != nil {
			return err
		}
	}
	return s.scoreSvc.RecomputeVisibility(ctx, postID)
}
