package consts

// FeedType 信息流类型
const (
	FeedTypePersonalized = "personalized"
	FeedTypeCommunity    = "community"
	FeedTypeNew          = "new"
)
