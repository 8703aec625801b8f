package dto

// FeedItemDTO 信息流单项
type FeedItemDTO struct {
	ID               uint64  `json:"id"`
	Title            string  `json:"title"`
	Analysis         string  `json:"analysis"`
	Sport            string  `json:"sport"`
	BetType          string  `json:"bet_type"`
	MatchHome        string  `json:"match_home"`
	MatchAway        string  `json:"match_away"`
	PredictedOutcome string  `json:"predicted_outcome"`
	Odds             float64 `json:"odds"`
	CreatedAt        string  `json:"created_at"`

	LikesCount    int `json:"likes_count"`
	CommentsCount int `json:"comments_count"`
	SharesCount   int `json:"shares_count"`
	ViewsCount    int `json:"views_count"`
	BoostCount    int `json:"boost_count"`

	// 作者
	UserID    uint64 `json:"user_id"`
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatar_url"`

	// 调试用分数拆解, debug=1 时返回
	Breakdown *ScoreBreakdownDTO `json:"breakdown,omitempty"`
}

// ScoreBreakdownDTO 分数拆解
type ScoreBreakdownDTO struct {
	EngagementScore  float64 `json:"engagement_score"`
	FreshnessScore   float64 `json:"freshness_score"`
	ReliabilityScore float64 `json:"reliability_score"`
	QualityScore     float64 `json:"quality_score"`
	ReportPenalty    float64 `json:"report_penalty"`
	VisibilityScore  float64 `json:"visibility_score"`
	BoostBonus       float64 `json:"boost_bonus"`
	PreferenceBonus  float64 `json:"preference_bonus"`
	EffectiveScore   float64 `json:"effective_score"`
}

// FeedPageDTO 信息流分页结果
type FeedPageDTO struct {
	List       []*FeedItemDTO `json:"list"`
	NextCursor string         `json:"next_cursor"`
	HasMore    bool           `json:"has_more"`
}
