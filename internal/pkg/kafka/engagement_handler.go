package kafka

import (
	"Tipside/internal/pkg/consts"
	"Tipside/internal/pkg/redis"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// EngagementHandler 消费上游互动事件, 把计数增量累积到 Redis
// 增量由 score-sync 定时任务统一刷回 MySQL 并触发重算
type EngagementHandler struct{}

func NewEngagementHandler() *EngagementHandler {
	return &EngagementHandler{}
}

func (s *EngagementHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("engagement consumer setup")
	return nil
}

func (s *EngagementHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("engagement consumer cleanup")
	return nil
}

func (s *EngagementHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-engagement consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-engagement process batch error", "err", err)
		return err
	}
	return nil
}

// 事件类型 -> 计数键前缀与增量方向
var eventDeltas = map[string]struct {
	keyPrefix string
	delta     int64
}{
	EventLike:      {consts.PostLikeKey, 1},
	EventUnlike:    {consts.PostLikeKey, -1},
	EventComment:   {consts.PostCommentKey, 1},
	EventUncomment: {consts.PostCommentKey, -1},
	EventShare:     {consts.PostShareKey, 1},
	EventView:      {consts.PostViewKey, 1},
}

func (s *EngagementHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	event, err := ToEngagementEvent(msg)
	if err != nil {
		// 脏消息跳过, 重试也不会变好
		log.ErrorContext(ctx, "skip malformed engagement event", "err", err)
		return nil
	}

	action, ok := eventDeltas[event.Type]
	if !ok {
		log.WarnContext(ctx, "unknown engagement event type", "type", event.Type, "postID", event.PostID)
		return nil
	}

	key := redis.BuildKey(action.keyPrefix, event.PostID)
	if _, err = redis.IncrBy(ctx, key, action.delta); err != nil {
		return err
	}
	if err = redis.SAdd(ctx, consts.PostDirtyKey, event.PostID); err != nil {
		return err
	}

	log.InfoContext(ctx, "engagement event applied", "type", event.Type, "postID", event.PostID)
	return nil
}
