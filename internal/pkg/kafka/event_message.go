package kafka

// 互动事件类型, 由点赞/评论/分享等上游服务投递
const (
	EventLike      = "like"
	EventUnlike    = "unlike"
	EventComment   = "comment"
	EventUncomment = "uncomment"
	EventShare     = "share"
	EventView      = "view"
)

// EngagementEvent 上游互动服务推送到 Kafka 的事件结构
type EngagementEvent struct {
	Type   string `json:"type"`
	PostID uint64 `json:"post_id"`
	UserID uint64 `json:"user_id"`
	TS     int64  `json:"ts"` // Unix 毫秒
}
