package service

import (
	"Tipside/internal/model"
	"Tipside/internal/pkg/consts"
	"Tipside/internal/pkg/util"
	"context"
	"errors"
	"testing"
	"time"
)

type feedFixture struct {
	postRepo     *fakePostRepo
	prefRepo     *fakePreferenceRepo
	relationRepo *fakeRelationRepo
	feedSvc      FeedService
}

func newFeedFixture() *feedFixture {
	postRepo := newFakePostRepo()
	scoreRepo := newFakeScoreRepo()
	prefRepo := newFakePreferenceRepo()
	relationRepo := newFakeRelationRepo()
	scoreSvc := NewScoreService(postRepo, scoreRepo, testScoringConfig())
	return &feedFixture{
		postRepo:     postRepo,
		prefRepo:     prefRepo,
		relationRepo: relationRepo,
		feedSvc:      NewFeedService(postRepo, prefRepo, relationRepo, scoreSvc, testScoringConfig(), testFeedConfig()),
	}
}

func feedPost(id, authorID uint64, sport, betType string, createdAt time.Time, likes, boostCount int) *model.Post {
	return &model.Post{
		ID:         id,
		UserID:     authorID,
		Title:      "post",
		Sport:      sport,
		BetType:    betType,
		LikesCount: likes,
		CreatedAt:  createdAt,
		User:       model.User{ID: authorID, Nickname: "author"},
		Score: &model.PostScore{
			PostID:           id,
			ReliabilityScore: 50,
			QualityScore:     60,
			BoostCount:       boostCount,
		},
	}
}

func pageIDs(t *testing.T, f *feedFixture, userID uint64, feedType, cursor string, limit int) []uint64 {
	t.Helper()
	page, err := f.feedSvc.GetFeed(context.Background(), userID, feedType, cursor, limit, false)
	if err != nil {
		t.Fatalf("GetFeed returned error: %v", err)
	}
	ids := make([]uint64, 0, len(page.List))
	for _, item := range page.List {
		ids = append(ids, item.ID)
	}
	return ids
}

func TestGetFeedInvalidType(t *testing.T) {
	f := newFeedFixture()
	_, err := f.feedSvc.GetFeed(context.Background(), 1, "trending", "", 10, false)
	if !errors.Is(err, ErrFeedTypeInvalid) {
		t.Fatalf("expected ErrFeedTypeInvalid, got %v", err)
	}
}

func TestGetFeedPersonalizedRequiresAuth(t *testing.T) {
	f := newFeedFixture()
	_, err := f.feedSvc.GetFeed(context.Background(), 0, consts.FeedTypePersonalized, "", 10, false)
	if !errors.Is(err, ErrAuthRequired) {
		t.Fatalf("expected ErrAuthRequired, got %v", err)
	}
}

func TestGetFeedInvalidCursor(t *testing.T) {
	f := newFeedFixture()

	_, err := f.feedSvc.GetFeed(context.Background(), 1, consts.FeedTypeCommunity, "garbage!!!", 10, false)
	if !errors.Is(err, ErrCursorInvalid) {
		t.Fatalf("expected ErrCursorInvalid for malformed cursor, got %v", err)
	}

	// 不允许拿最新流的游标翻社区流
	newCursor := util.EncodeCursor(util.FeedCursor{Offset: 10, FeedType: consts.FeedTypeNew, AsOf: time.Now().Unix()})
	_, err = f.feedSvc.GetFeed(context.Background(), 1, consts.FeedTypeCommunity, newCursor, 10, false)
	if !errors.Is(err, ErrCursorInvalid) {
		t.Fatalf("expected ErrCursorInvalid for cross-feed cursor, got %v", err)
	}
}

func TestGetFeedCommunityOrdering(t *testing.T) {
	f := newFeedFixture()
	createdAt := time.Now().Add(-2 * time.Hour)
	f.postRepo.candidates = []*model.Post{
		feedPost(1, 10, "soccer", "spread", createdAt, 10, 0),
		feedPost(2, 11, "soccer", "spread", createdAt, 100, 0),
		feedPost(3, 12, "soccer", "spread", createdAt, 40, 0),
	}

	ids := pageIDs(t, f, 0, consts.FeedTypeCommunity, "", 10)
	want := []uint64{2, 3, 1}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, ids)
		}
	}
}

func TestGetFeedBoostLifts(t *testing.T) {
	f := newFeedFixture()
	createdAt := time.Now().Add(-2 * time.Hour)
	f.postRepo.candidates = []*model.Post{
		feedPost(1, 10, "soccer", "spread", createdAt, 50, 0),
		feedPost(2, 11, "soccer", "spread", createdAt, 50, 9),
	}

	page, err := f.feedSvc.GetFeed(context.Background(), 0, consts.FeedTypeCommunity, "", 10, true)
	if err != nil {
		t.Fatalf("GetFeed returned error: %v", err)
	}
	if page.List[0].ID != 2 {
		t.Fatalf("boosted post should rank first, got %v", page.List[0].ID)
	}
	// unit=2, count=9 -> sqrt 衰减后 +6
	if b := page.List[0].Breakdown; b == nil || b.BoostBonus != 6 {
		t.Fatalf("expected boost bonus 6 in breakdown, got %+v", b)
	}
}

func TestGetFeedPagination(t *testing.T) {
	f := newFeedFixture()
	createdAt := time.Now().Add(-2 * time.Hour)
	f.postRepo.candidates = []*model.Post{
		feedPost(1, 10, "soccer", "spread", createdAt, 100, 0),
		feedPost(2, 11, "soccer", "spread", createdAt, 50, 0),
		feedPost(3, 12, "soccer", "spread", createdAt, 10, 0),
	}

	page, err := f.feedSvc.GetFeed(context.Background(), 0, consts.FeedTypeCommunity, "", 2, false)
	if err != nil {
		t.Fatalf("GetFeed returned error: %v", err)
	}
	if len(page.List) != 2 || !page.HasMore || page.NextCursor == "" {
		t.Fatalf("expected partial page with next cursor, got %+v", page)
	}

	c, err := util.DecodeCursor(page.NextCursor)
	if err != nil {
		t.Fatalf("next cursor must decode: %v", err)
	}
	if c.Offset != 2 || c.FeedType != consts.FeedTypeCommunity {
		t.Fatalf("unexpected next cursor: %+v", c)
	}

	rest, err := f.feedSvc.GetFeed(context.Background(), 0, consts.FeedTypeCommunity, page.NextCursor, 2, false)
	if err != nil {
		t.Fatalf("GetFeed with cursor returned error: %v", err)
	}
	if len(rest.List) != 1 || rest.HasMore || rest.NextCursor != "" {
		t.Fatalf("expected final page, got %+v", rest)
	}
	if rest.List[0].ID != 3 {
		t.Fatalf("expected post 3 on final page, got %v", rest.List[0].ID)
	}
}

func TestGetFeedCursorReplayDeterministic(t *testing.T) {
	f := newFeedFixture()
	createdAt := time.Now().Add(-3 * time.Hour)
	f.postRepo.candidates = []*model.Post{
		feedPost(1, 10, "soccer", "spread", createdAt, 100, 0),
		feedPost(2, 11, "soccer", "spread", createdAt, 50, 0),
		feedPost(3, 12, "soccer", "spread", createdAt, 10, 0),
	}

	cursor := util.EncodeCursor(util.FeedCursor{Offset: 0, FeedType: consts.FeedTypeCommunity, AsOf: time.Now().Unix()})

	first := pageIDs(t, f, 0, consts.FeedTypeCommunity, cursor, 2)
	time.Sleep(5 * time.Millisecond)
	second := pageIDs(t, f, 0, consts.FeedTypeCommunity, cursor, 2)

	if len(first) != len(second) {
		t.Fatalf("replay page length mismatch: %v vs %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("replaying a pinned cursor must give identical order: %v vs %v", first, second)
		}
	}
}

func TestGetFeedNewKeepsCreatedOrder(t *testing.T) {
	f := newFeedFixture()
	now := time.Now()
	// 仓储按发布时间降序返回, 最老的帖子互动最高
	f.postRepo.candidates = []*model.Post{
		feedPost(3, 12, "soccer", "spread", now.Add(-1*time.Hour), 0, 0),
		feedPost(2, 11, "soccer", "spread", now.Add(-2*time.Hour), 10, 0),
		feedPost(1, 10, "soccer", "spread", now.Add(-3*time.Hour), 500, 0),
	}

	ids := pageIDs(t, f, 0, consts.FeedTypeNew, "", 10)
	want := []uint64{3, 2, 1}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("new feed must keep created order, expected %v got %v", want, ids)
		}
	}
	if !f.postRepo.lastQuery.OrderByCreated {
		t.Fatal("new feed should request created ordering from the repository")
	}
}

func TestGetFeedPersonalizedPreferenceBonus(t *testing.T) {
	f := newFeedFixture()
	createdAt := time.Now().Add(-2 * time.Hour)
	candidates := []*model.Post{
		feedPost(1, 10, "soccer", "spread", createdAt, 100, 0),
		feedPost(2, 11, "tennis", "moneyline", createdAt, 80, 0),
	}
	f.postRepo.candidates = candidates

	// 无偏好: 个性化流退化为纯分数排序
	ids := pageIDs(t, f, 7, consts.FeedTypePersonalized, "", 10)
	if ids[0] != 1 {
		t.Fatalf("without preferences higher engagement should win, got %v", ids)
	}

	f.prefRepo.prefs[7] = &model.UserPreference{
		UserID:           7,
		FavoriteSports:   model.StringList{"tennis"},
		FavoriteBetTypes: model.StringList{"moneyline"},
	}
	ids = pageIDs(t, f, 7, consts.FeedTypePersonalized, "", 10)
	if ids[0] != 2 {
		t.Fatalf("preference bonus should lift the matching post, got %v", ids)
	}

	// 偏好只影响本人: 社区流排序不变
	ids = pageIDs(t, f, 7, consts.FeedTypeCommunity, "", 10)
	if ids[0] != 1 {
		t.Fatalf("community feed must ignore preferences, got %v", ids)
	}
}

func TestGetFeedQueryFilters(t *testing.T) {
	f := newFeedFixture()
	f.relationRepo.blocked[7] = []uint64{42}
	f.relationRepo.hidden[7] = []uint64{99}

	if _, err := f.feedSvc.GetFeed(context.Background(), 7, consts.FeedTypeCommunity, "", 10, false); err != nil {
		t.Fatalf("GetFeed returned error: %v", err)
	}

	q := f.postRepo.lastQuery
	if q.Since == nil {
		t.Fatal("community feed must carry a time window")
	}
	if got := q.AsOf.Sub(*q.Since); got != 24*time.Hour {
		t.Fatalf("expected 24h window, got %v", got)
	}
	if q.PenaltyCap != 40 {
		t.Fatalf("expected penalty cap 40 for shadow removal, got %v", q.PenaltyCap)
	}
	if len(q.ExcludeAuthorIDs) != 1 || q.ExcludeAuthorIDs[0] != 42 {
		t.Fatalf("blocked authors must be excluded, got %v", q.ExcludeAuthorIDs)
	}
	if len(q.ExcludePostIDs) != 1 || q.ExcludePostIDs[0] != 99 {
		t.Fatalf("hidden posts must be excluded, got %v", q.ExcludePostIDs)
	}

	// 游客不查关系表, 不带排除条件
	if _, err := f.feedSvc.GetFeed(context.Background(), 0, consts.FeedTypeCommunity, "", 10, false); err != nil {
		t.Fatalf("GetFeed returned error: %v", err)
	}
	q = f.postRepo.lastQuery
	if len(q.ExcludeAuthorIDs) != 0 || len(q.ExcludePostIDs) != 0 {
		t.Fatalf("guest query should carry no exclusions, got %+v", q)
	}
}
