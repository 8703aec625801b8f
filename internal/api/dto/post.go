package dto

// PostBaseDTO 帖子 - 新增或修改
type PostBaseDTO struct {
	Title            string  `json:"title" binding:"required,min=1,max=255"`
	Analysis         string  `json:"analysis" binding:"max=10000"`
	Sport            string  `json:"sport" binding:"required,min=1,max=64"`
	BetType          string  `json:"bet_type" binding:"required,min=1,max=64"`
	MatchHome        string  `json:"match_home" binding:"max=128"`
	MatchAway        string  `json:"match_away" binding:"max=128"`
	PredictedOutcome string  `json:"predicted_outcome" binding:"max=128"`
	Odds             float64 `json:"odds" binding:"min=0"`
	HasMedia         bool    `json:"has_media"`
}

// PostDTO 帖子详情
type PostDTO struct {
	ID               uint64  `json:"id"`
	Title            string  `json:"title"`
	Analysis         string  `json:"analysis"`
	Sport            string  `json:"sport"`
	BetType          string  `json:"bet_type"`
	MatchHome        string  `json:"match_home"`
	MatchAway        string  `json:"match_away"`
	PredictedOutcome string  `json:"predicted_outcome"`
	Odds             float64 `json:"odds"`
	HasMedia         bool    `json:"has_media"`
	IsHidden         bool    `json:"is_hidden"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`

	LikesCount    int `json:"likes_count"`
	CommentsCount int `json:"comments_count"`
	SharesCount   int `json:"shares_count"`
	ViewsCount    int `json:"views_count"`

	UserID    uint64 `json:"user_id"`
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatar_url"`

	// 仅作者本人可见的分数拆解
	Breakdown *ScoreBreakdownDTO `json:"breakdown,omitempty"`
}

// PostHideReq 作者隐藏/取消隐藏
type PostHideReq struct {
	Hidden bool `json:"hidden"`
}
