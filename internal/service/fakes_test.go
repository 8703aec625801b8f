package service

import (
	"Tipside/internal/api/config"
	"Tipside/internal/model"
	"Tipside/internal/repository"
	"context"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// 仓储测试替身, 只实现被测路径真正用到的行为

var errDuplicate = &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}

func testScoringConfig() config.ScoringConfig {
	return config.ScoringConfig{
		EngagementWeight:  0.35,
		FreshnessWeight:   0.30,
		ReliabilityWeight: 0.20,
		QualityWeight:     0.15,

		FreshnessHalfLifeHours: 48,
		EngagementSaturation:   50,

		PenaltyStep:         8,
		PenaltyCap:          40,
		PenaltyQuietHours:   72,
		PenaltyDecayPerHour: 2,

		BoostUnit:        2,
		BoostWindowHours: 72,

		PreferenceUnit: 3,

		CommunityWindowHours: 24,
		CandidateLimit:       500,
	}
}

func testFeedConfig() config.FeedConfig {
	return config.FeedConfig{
		DefaultPageSize: 20,
		MaxPageSize:     50,
	}
}

type incrCall struct {
	postID uint64
	column string
	delta  int64
}

type fakePostRepo struct {
	posts      map[uint64]*model.Post
	candidates []*model.Post
	lastQuery  repository.FeedCandidateQuery
	incrCalls  []incrCall
	nextID     uint64
	getErr     error          // 非 nil 时 GetPost 模拟存储故障
	scoreRepo  *fakeScoreRepo // 非 nil 时 CreatePost 同步写入分数行, 模拟真实仓储的同事务插入
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{
		posts:  make(map[uint64]*model.Post),
		nextID: 1,
	}
}

func (f *fakePostRepo) CreatePost(_ context.Context, post *model.Post, score *model.PostScore) error {
	post.ID = f.nextID
	f.nextID++
	score.PostID = post.ID
	post.Score = score
	f.posts[post.ID] = post
	if f.scoreRepo != nil {
		f.scoreRepo.scores[score.PostID] = score
	}
	return nil
}

func (f *fakePostRepo) GetPost(_ context.Context, id uint64) (*model.Post, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	post, ok := f.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return post, nil
}

func (f *fakePostRepo) GetPostByIds(_ context.Context, ids []uint64) ([]*model.Post, error) {
	var res []*model.Post
	for _, id := range ids {
		if post, ok := f.posts[id]; ok {
			res = append(res, post)
		}
	}
	return res, nil
}

func (f *fakePostRepo) UpdatePost(_ context.Context, post *model.Post) error {
	f.posts[post.ID] = post
	return nil
}

func (f *fakePostRepo) SetPostHidden(_ context.Context, id uint64, hidden bool) error {
	if post, ok := f.posts[id]; ok {
		post.IsHidden = hidden
	}
	return nil
}

func (f *fakePostRepo) DeletePost(_ context.Context, id uint64) error {
	if post, ok := f.posts[id]; ok {
		post.IsDeleted = true
	}
	return nil
}

func (f *fakePostRepo) IncrCounter(_ context.Context, id uint64, column string, delta int64) error {
	f.incrCalls = append(f.incrCalls, incrCall{postID: id, column: column, delta: delta})
	post, ok := f.posts[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	apply := func(v int) int {
		v += int(delta)
		if v < 0 {
			v = 0
		}
		return v
	}
	switch column {
	case "likes_count":
		post.LikesCount = apply(post.LikesCount)
	case "comments_count":
		post.CommentsCount = apply(post.CommentsCount)
	case "shares_count":
		post.SharesCount = apply(post.SharesCount)
	case "views_count":
		post.ViewsCount = apply(post.ViewsCount)
	}
	return nil
}

func (f *fakePostRepo) ListFeedCandidates(_ context.Context, q repository.FeedCandidateQuery) ([]*model.Post, error) {
	f.lastQuery = q
	return f.candidates, nil
}

func (f *fakePostRepo) CountByAuthor(_ context.Context, userID uint64) (int64, int64, error) {
	var total, reported int64
	for _, post := range f.posts {
		if post.UserID != userID || post.IsDeleted {
			continue
		}
		total++
		if post.Score != nil && post.Score.ReportPenalty > 0 {
			reported++
		}
	}
	return total, reported, nil
}

func (f *fakePostRepo) GetPostIDsByAuthor(_ context.Context, userID uint64) ([]uint64, error) {
	var ids []uint64
	for id, post := range f.posts {
		if post.UserID == userID && !post.IsDeleted {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

type fakeScoreRepo struct {
	scores map[uint64]*model.PostScore
}

func newFakeScoreRepo() *fakeScoreRepo {
	return &fakeScoreRepo{scores: make(map[uint64]*model.PostScore)}
}

func (f *fakeScoreRepo) GetScore(_ context.Context, postID uint64) (*model.PostScore, error) {
	score, ok := f.scores[postID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return score, nil
}

func (f *fakeScoreRepo) GetScoresByPostIDs(_ context.Context, postIDs []uint64) (map[uint64]*model.PostScore, error) {
	res := make(map[uint64]*model.PostScore)
	for _, id := range postIDs {
		if score, ok := f.scores[id]; ok {
			res[id] = score
		}
	}
	return res, nil
}

func (f *fakeScoreRepo) GetScoresByAuthor(_ context.Context, _ uint64) ([]*model.PostScore, error) {
	var res []*model.PostScore
	for _, score := range f.scores {
		res = append(res, score)
	}
	return res, nil
}

func (f *fakeScoreRepo) SaveScore(_ context.Context, score *model.PostScore) error {
	f.scores[score.PostID] = score
	return nil
}

func (f *fakeScoreRepo) ApplyReportPenalty(_ context.Context, postID uint64, step, cap float64) error {
	score, ok := f.scores[postID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	score.ReportPenalty += step
	if score.ReportPenalty > cap {
		score.ReportPenalty = cap
	}
	now := time.Now()
	score.LastReportedAt = &now
	return nil
}

func (f *fakeScoreRepo) AdjustBoostCount(_ context.Context, postID uint64, delta int) error {
	score, ok := f.scores[postID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	score.BoostCount += delta
	if score.BoostCount < 0 {
		score.BoostCount = 0
	}
	return nil
}

func (f *fakeScoreRepo) SetBoostCount(_ context.Context, postID uint64, count int) error {
	if score, ok := f.scores[postID]; ok {
		score.BoostCount = count
	}
	return nil
}

func (f *fakeScoreRepo) ListPenalized(_ context.Context, lastReportedBefore time.Time) ([]*model.PostScore, error) {
	var res []*model.PostScore
	for _, score := range f.scores {
		if score.ReportPenalty > 0 && score.LastReportedAt != nil && score.LastReportedAt.Before(lastReportedBefore) {
			res = append(res, score)
		}
	}
	return res, nil
}

type fakeLikeRepo struct {
	likes map[[2]uint64]time.Time
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{likes: make(map[[2]uint64]time.Time)}
}

func (f *fakeLikeRepo) CreateLike(_ context.Context, like *model.PostLike) error {
	key := [2]uint64{like.UserID, like.PostID}
	if _, ok := f.likes[key]; ok {
		return errDuplicate
	}
	f.likes[key] = like.CreatedAt
	return nil
}

func (f *fakeLikeRepo) DeleteLike(_ context.Context, userID, postID uint64) (bool, error) {
	key := [2]uint64{userID, postID}
	if _, ok := f.likes[key]; !ok {
		return false, nil
	}
	delete(f.likes, key)
	return true, nil
}

type fakeBoostRepo struct {
	boosts map[[2]uint64]time.Time
}

func newFakeBoostRepo() *fakeBoostRepo {
	return &fakeBoostRepo{boosts: make(map[[2]uint64]time.Time)}
}

func (f *fakeBoostRepo) CreateBoost(_ context.Context, boost *model.PostBoost) error {
	key := [2]uint64{boost.UserID, boost.PostID}
	if _, ok := f.boosts[key]; ok {
		return errDuplicate
	}
	f.boosts[key] = boost.CreatedAt
	return nil
}

func (f *fakeBoostRepo) DeleteBoost(_ context.Context, userID, postID uint64) (bool, error) {
	key := [2]uint64{userID, postID}
	if _, ok := f.boosts[key]; !ok {
		return false, nil
	}
	delete(f.boosts, key)
	return true, nil
}

func (f *fakeBoostRepo) CountByPostID(_ context.Context, postID uint64) (int64, error) {
	var count int64
	for key := range f.boosts {
		if key[1] == postID {
			count++
		}
	}
	return count, nil
}

func (f *fakeBoostRepo) DeleteExpired(_ context.Context, before time.Time) ([]uint64, error) {
	var postIDs []uint64
	for key, createdAt := range f.boosts {
		if createdAt.Before(before) {
			postIDs = append(postIDs, key[1])
			delete(f.boosts, key)
		}
	}
	return postIDs, nil
}

type fakeReportRepo struct {
	reports  map[[2]uint64]*model.PostReport
	failNext error // 非 nil 时下一次插入返回这个错误, 用完即清
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: make(map[[2]uint64]*model.PostReport)}
}

func (f *fakeReportRepo) CreateReport(_ context.Context, report *model.PostReport) error {
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return err
	}
	key := [2]uint64{report.UserID, report.PostID}
	if _, ok := f.reports[key]; ok {
		return errDuplicate
	}
	f.reports[key] = report
	return nil
}

func (f *fakeReportRepo) CheckReportExists(_ context.Context, userID, postID uint64) (bool, error) {
	_, ok := f.reports[[2]uint64{userID, postID}]
	return ok, nil
}

func (f *fakeReportRepo) CountByPostID(_ context.Context, postID uint64) (int64, error) {
	var count int64
	for key := range f.reports {
		if key[1] == postID {
			count++
		}
	}
	return count, nil
}

func (f *fakeReportRepo) UpdateReportStatus(_ context.Context, userID, postID uint64, status int8) error {
	if report, ok := f.reports[[2]uint64{userID, postID}]; ok {
		report.Status = status
	}
	return nil
}

type fakePreferenceRepo struct {
	prefs map[uint64]*model.UserPreference
}

func newFakePreferenceRepo() *fakePreferenceRepo {
	return &fakePreferenceRepo{prefs: make(map[uint64]*model.UserPreference)}
}

func (f *fakePreferenceRepo) SavePreference(_ context.Context, pref *model.UserPreference) error {
	f.prefs[pref.UserID] = pref
	return nil
}

func (f *fakePreferenceRepo) GetPreference(_ context.Context, userID uint64) (*model.UserPreference, error) {
	return f.prefs[userID], nil
}

type fakeRelationRepo struct {
	blocked map[uint64][]uint64
	hidden  map[uint64][]uint64
	users   map[uint64]*model.User
}

func newFakeRelationRepo() *fakeRelationRepo {
	return &fakeRelationRepo{
		blocked: make(map[uint64][]uint64),
		hidden:  make(map[uint64][]uint64),
		users:   make(map[uint64]*model.User),
	}
}

func (f *fakeRelationRepo) CreateBlock(_ context.Context, block *model.UserBlock) error {
	for _, id := range f.blocked[block.UserID] {
		if id == block.BlockedID {
			return errDuplicate
		}
	}
	f.blocked[block.UserID] = append(f.blocked[block.UserID], block.BlockedID)
	return nil
}

func (f *fakeRelationRepo) DeleteBlock(_ context.Context, userID, blockedID uint64) error {
	ids := f.blocked[userID]
	for i, id := range ids {
		if id == blockedID {
			f.blocked[userID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeRelationRepo) GetBlockedIDs(_ context.Context, userID uint64) ([]uint64, error) {
	return f.blocked[userID], nil
}

func (f *fakeRelationRepo) CreateHide(_ context.Context, hide *model.PostHide) error {
	for _, id := range f.hidden[hide.UserID] {
		if id == hide.PostID {
			return errDuplicate
		}
	}
	f.hidden[hide.UserID] = append(f.hidden[hide.UserID], hide.PostID)
	return nil
}

func (f *fakeRelationRepo) GetHiddenPostIDs(_ context.Context, userID uint64) ([]uint64, error) {
	return f.hidden[userID], nil
}

func (f *fakeRelationRepo) GetUser(_ context.Context, id uint64) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeRelationRepo) UpdateUserReliability(_ context.Context, userID uint64, score float64, total, reported int) error {
	if user, ok := f.users[userID]; ok {
		user.ReliabilityScore = score
		user.TotalPosts = total
		user.ReportedPosts = reported
	}
	return nil
}
