package service

import (
	"Tipside/internal/api/config"
	"Tipside/internal/api/dto"
	"Tipside/internal/model"
	"Tipside/internal/pkg/consts"
	"Tipside/internal/pkg/scoring"
	"Tipside/internal/pkg/util"
	"Tipside/internal/repository"
	"context"
	"sort"
	"time"
)

// FeedService 信息流装配
// 三种流共用同一条流水线: 候选集 -> 有效分 -> 排序 -> 翻页
// 区别只体现在策略表的少数开关上, 不允许为某个流单开分支
type FeedService interface {
	GetFeed(ctx context.Context, userID uint64, feedType, cursor string, pageSize int, debug bool) (*dto.FeedPageDTO, error)
}

// feedStrategy 信息流策略: 流类型 -> 过滤/排序差异
type feedStrategy struct {
	requireAuth    bool // 个性化流必须登录
	windowed       bool // 社区流只看最近一段时间
	orderByCreated bool // 最新流按发布时间排, 分数只做准入
	usePreference  bool // 是否叠加个性化加成
}

var feedStrategies = map[string]feedStrategy{
	consts.FeedTypePersonalized: {requireAuth: true, usePreference: true},
	consts.FeedTypeCommunity:    {windowed: true},
	consts.FeedTypeNew:          {orderByCreated: true},
}

type feedServiceImpl struct {
	postRepo     repository.PostRepo
	prefRepo     repository.UserPreferenceRepo
	relationRepo repository.UserRelationRepo
	scoreService ScoreService
	scoringCfg   config.ScoringConfig
	feedCfg      config.FeedConfig
}

func NewFeedService(
	postRepo repository.PostRepo,
	prefRepo repository.UserPreferenceRepo,
	relationRepo repository.UserRelationRepo,
	scoreService ScoreService,
	scoringCfg config.ScoringConfig,
	feedCfg config.FeedConfig,
) FeedService {
	return &feedServiceImpl{
		postRepo:     postRepo,
		prefRepo:     prefRepo,
		relationRepo: relationRepo,
		scoreService: scoreService,
		scoringCfg:   scoringCfg,
		feedCfg:      feedCfg,
	}
}

// rankedItem 候选帖及其在快照时刻的有效分
type rankedItem struct {
	post      *model.Post
	breakdown dto.ScoreBreakdownDTO
}

func (s *feedServiceImpl) GetFeed(ctx context.Context, userID uint64, feedType, cursor string, pageSize int, debug bool) (*dto.FeedPageDTO, error) {
	strategy, ok := feedStrategies[feedType]
	if !ok {
		return nil, ErrFeedTypeInvalid
	}
	if strategy.requireAuth && userID == 0 {
		return nil, ErrAuthRequired
	}

	c, err := util.DecodeCursor(cursor)
	if err != nil {
		return nil, ErrCursorInvalid
	}
	// 游标必须和本次请求的流类型一致, 不允许跨流续页
	if c != nil && c.FeedType != feedType {
		return nil, ErrCursorInvalid
	}

	// asOf 是整条流水线的时钟: 候选集截断 / 新鲜度 / 互动速率都以它为准
	// 同一游标序列内重放请求会得到逐字节一致的排序
	asOf := time.Now()
	offset := 0
	if c != nil {
		asOf = c.AsOfTime()
		offset = c.Offset
	}

	pageSize = s.normalizePageSize(pageSize)

	candidates, err := s.loadCandidates(ctx, userID, strategy, asOf)
	if err != nil {
		return nil, err
	}

	ranked, err := s.rank(ctx, userID, strategy, candidates, asOf)
	if err != nil {
		return nil, err
	}

	return s.page(ranked, feedType, asOf, offset, pageSize, debug), nil
}

func (s *feedServiceImpl) normalizePageSize(pageSize int) int {
	if pageSize <= 0 {
		return s.feedCfg.DefaultPageSize
	}
	if pageSize > s.feedCfg.MaxPageSize {
		return s.feedCfg.MaxPageSize
	}
	return pageSize
}

// loadCandidates 拉取候选集, 登录用户额外排除拉黑作者和手动隐藏的帖子
func (s *feedServiceImpl) loadCandidates(ctx context.Context, userID uint64, strategy feedStrategy, asOf time.Time) ([]*model.Post, error) {
	q := repository.FeedCandidateQuery{
		AsOf:           asOf,
		PenaltyCap:     s.scoringCfg.PenaltyCap,
		OrderByCreated: strategy.orderByCreated,
		Limit:          s.scoringCfg.CandidateLimit,
	}
	if strategy.windowed {
		since := asOf.Add(-time.Duration(s.scoringCfg.CommunityWindowHours) * time.Hour)
		q.Since = &since
	}

	if userID > 0 {
		blocked, err := s.relationRepo.GetBlockedIDs(ctx, userID)
		if err != nil {
			return nil, err
		}
		hidden, err := s.relationRepo.GetHiddenPostIDs(ctx, userID)
		if err != nil {
			return nil, err
		}
		q.ExcludeAuthorIDs = blocked
		q.ExcludePostIDs = hidden
	}

	return s.postRepo.ListFeedCandidates(ctx, q)
}

// rank 以 asOf 为时钟计算有效分并排序
// 最新流保持仓储层的发布时间序, 分数只用于拆解展示
func (s *feedServiceImpl) rank(ctx context.Context, userID uint64, strategy feedStrategy, candidates []*model.Post, asOf time.Time) ([]rankedItem, error) {
	var pref *model.UserPreference
	if strategy.usePreference {
		var err error
		pref, err = s.prefRepo.GetPreference(ctx, userID)
		if err != nil {
			return nil, err
		}
		// 没有偏好就按零加成走, 个性化流自然退化成社区流的口径
	}

	ranked := make([]rankedItem, 0, len(candidates))
	for _, post := range candidates {
		if post.Score == nil {
			// 分数行缺失说明发帖事务被破坏过, 保守起见不进流
			continue
		}
		ranked = append(ranked, rankedItem{
			post:      post,
			breakdown: s.breakdownAt(post, pref, asOf),
		})
	}

	if !strategy.orderByCreated {
		sort.SliceStable(ranked, func(i, j int) bool {
			a, b := ranked[i], ranked[j]
			if a.breakdown.EffectiveScore != b.breakdown.EffectiveScore {
				return a.breakdown.EffectiveScore > b.breakdown.EffectiveScore
			}
			if !a.post.CreatedAt.Equal(b.post.CreatedAt) {
				return a.post.CreatedAt.After(b.post.CreatedAt)
			}
			return a.post.ID > b.post.ID
		})
	}
	return ranked, nil
}

// breakdownAt 在快照时刻重推有效分
// 互动/新鲜度用 asOf 现算, 其余子分数沿用存量, 合成公式仍是唯一入口
func (s *feedServiceImpl) breakdownAt(post *model.Post, pref *model.UserPreference, asOf time.Time) dto.ScoreBreakdownDTO {
	score := post.Score
	b := dto.ScoreBreakdownDTO{
		EngagementScore: scoring.Engagement(
			int64(post.LikesCount), int64(post.CommentsCount),
			int64(post.SharesCount), int64(post.ViewsCount),
			asOf.Sub(post.CreatedAt), s.scoringCfg.EngagementSaturation),
		FreshnessScore:   scoring.Freshness(post.CreatedAt, asOf, s.scoreService.HalfLife()),
		ReliabilityScore: score.ReliabilityScore,
		QualityScore:     score.QualityScore,
		ReportPenalty:    score.ReportPenalty,
	}
	b.VisibilityScore = scoring.Composite(
		b.EngagementScore, b.FreshnessScore,
		b.ReliabilityScore, b.QualityScore,
		b.ReportPenalty, s.scoreService.Weights())
	b.BoostBonus = scoring.BoostBonus(score.BoostCount, s.scoringCfg.BoostUnit)
	if pref != nil {
		b.PreferenceBonus = scoring.PreferenceBonus(
			post.Sport, post.BetType,
			pref.FavoriteSports, pref.FavoriteBetTypes,
			s.scoringCfg.PreferenceUnit)
	}
	b.EffectiveScore = b.VisibilityScore + b.BoostBonus + b.PreferenceBonus
	return b
}

// page 对排好序的候选集做偏移翻页, 下一页游标沿用同一快照
func (s *feedServiceImpl) page(ranked []rankedItem, feedType string, asOf time.Time, offset, pageSize int, debug bool) *dto.FeedPageDTO {
	page := &dto.FeedPageDTO{List: []*dto.FeedItemDTO{}}
	if offset >= len(ranked) {
		return page
	}

	end := offset + pageSize
	if end > len(ranked) {
		end = len(ranked)
	}
	for _, item := range ranked[offset:end] {
		page.List = append(page.List, toFeedItemDTO(item, debug))
	}

	if end < len(ranked) {
		page.HasMore = true
		page.NextCursor = util.EncodeCursor(util.FeedCursor{
			Offset:   end,
			FeedType: feedType,
			AsOf:     asOf.Unix(),
		})
	}
	return page
}

func toFeedItemDTO(item rankedItem, debug bool) *dto.FeedItemDTO {
	post := item.post
	out := &dto.FeedItemDTO{
		ID:               post.ID,
		Title:            post.Title,
		Analysis:         post.Analysis,
		Sport:            post.Sport,
		BetType:          post.BetType,
		MatchHome:        post.MatchHome,
		MatchAway:        post.MatchAway,
		PredictedOutcome: post.PredictedOutcome,
		Odds:             post.Odds,
		CreatedAt:        post.CreatedAt.Format("2006-01-02 15:04:05"),
		LikesCount:       post.LikesCount,
		CommentsCount:    post.CommentsCount,
		SharesCount:      post.SharesCount,
		ViewsCount:       post.ViewsCount,
		BoostCount:       post.Score.BoostCount,
		UserID:           post.UserID,
		Nickname:         post.User.Nickname,
		AvatarURL:        post.User.AvatarURL,
	}
	if debug {
		breakdown := item.breakdown
		out.Breakdown = &breakdown
	}
	return out
}
