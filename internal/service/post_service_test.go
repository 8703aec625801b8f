package service

import (
	"Tipside/internal/api/dto"
	"Tipside/internal/model"
	"Tipside/internal/pkg/consts"
	redispkg "Tipside/internal/pkg/redis"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

type postFixture struct {
	postRepo     *fakePostRepo
	scoreRepo    *fakeScoreRepo
	relationRepo *fakeRelationRepo
	postSvc      PostService
}

func newPostFixture(t *testing.T) *postFixture {
	t.Helper()

	mr := miniredis.RunT(t)
	redispkg.Rdb = goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	postRepo := newFakePostRepo()
	scoreRepo := newFakeScoreRepo()
	postRepo.scoreRepo = scoreRepo
	relationRepo := newFakeRelationRepo()
	cfg := testScoringConfig()
	scoreSvc := NewScoreService(postRepo, scoreRepo, cfg)

	return &postFixture{
		postRepo:     postRepo,
		scoreRepo:    scoreRepo,
		relationRepo: relationRepo,
		postSvc:      NewPostService(postRepo, scoreRepo, relationRepo, scoreSvc, cfg.PenaltyCap),
	}
}

func validPostReq() *dto.PostBaseDTO {
	return &dto.PostBaseDTO{
		Title:            "利物浦 vs 曼城",
		Analysis:         "主队近期状态稳定, 客场防守存在明显漏洞",
		Sport:            "soccer",
		BetType:          "spread",
		MatchHome:        "Liverpool",
		MatchAway:        "Man City",
		PredictedOutcome: "home",
		Odds:             1.85,
	}
}

func TestCreatePostSeedsScore(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	post, err := f.postSvc.CreatePost(ctx, 10, validPostReq())
	if err != nil {
		t.Fatalf("create post returned error: %v", err)
	}
	if post.ID == 0 {
		t.Fatal("expected post id to be assigned")
	}
	if post.Breakdown == nil {
		t.Fatal("author should receive the score breakdown")
	}
	if post.Breakdown.QualityScore <= 0 {
		t.Fatalf("structured post should have positive quality, got %v", post.Breakdown.QualityScore)
	}
	if post.Breakdown.FreshnessScore != 100 {
		t.Fatalf("fresh post should start at 100 freshness, got %v", post.Breakdown.FreshnessScore)
	}
	if post.Breakdown.VisibilityScore <= 0 {
		t.Fatalf("seeded visibility must be positive, got %v", post.Breakdown.VisibilityScore)
	}

	authors, err := redispkg.GetSet(ctx, consts.AuthorDirtyKey)
	if err != nil || len(authors) != 1 {
		t.Fatalf("author should be marked dirty after posting, got %v (err %v)", authors, err)
	}
}

func TestCreatePostUsesAuthorReliability(t *testing.T) {
	f := newPostFixture(t)
	f.relationRepo.users[10] = &model.User{ID: 10, ReliabilityScore: 90}

	post, err := f.postSvc.CreatePost(context.Background(), 10, validPostReq())
	if err != nil {
		t.Fatalf("create post returned error: %v", err)
	}
	if post.Breakdown.ReliabilityScore != 90 {
		t.Fatalf("seed should inherit author reliability, got %v", post.Breakdown.ReliabilityScore)
	}
}

func TestGetPostShadowRemoved(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	f.postRepo.posts[1] = &model.Post{
		ID:        1,
		UserID:    10,
		CreatedAt: time.Now(),
		Score:     &model.PostScore{PostID: 1, ReportPenalty: 40},
	}

	// 惩罚封顶: 其他用户直达也看不到
	if _, err := f.postSvc.GetPost(ctx, 7, 1); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound for shadow-removed post, got %v", err)
	}
	if _, err := f.postSvc.GetPost(ctx, 0, 1); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound for guest, got %v", err)
	}

	// 作者本人仍可见, 且能看到分数拆解
	post, err := f.postSvc.GetPost(ctx, 10, 1)
	if err != nil {
		t.Fatalf("author access returned error: %v", err)
	}
	if post.Breakdown == nil || post.Breakdown.ReportPenalty != 40 {
		t.Fatalf("author should see the penalty in breakdown, got %+v", post.Breakdown)
	}
}

func TestGetPostAuthorHidden(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	f.postRepo.posts[1] = &model.Post{
		ID:        1,
		UserID:    10,
		IsHidden:  true,
		CreatedAt: time.Now(),
		Score:     &model.PostScore{PostID: 1},
	}

	if _, err := f.postSvc.GetPost(ctx, 7, 1); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound for hidden post, got %v", err)
	}
	if _, err := f.postSvc.GetPost(ctx, 10, 1); err != nil {
		t.Fatalf("author should still see the hidden post, got %v", err)
	}
}

func TestUpdatePostOwnership(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	post, err := f.postSvc.CreatePost(ctx, 10, validPostReq())
	if err != nil {
		t.Fatalf("create post returned error: %v", err)
	}

	if err = f.postSvc.UpdatePost(ctx, 11, post.ID, validPostReq()); !errors.Is(err, UnauthorizedError) {
		t.Fatalf("expected UnauthorizedError for non-owner, got %v", err)
	}
	if err = f.postSvc.UpdatePost(ctx, 10, post.ID, validPostReq()); err != nil {
		t.Fatalf("owner update returned error: %v", err)
	}
}

func TestUpdatePostStorageErrorPropagates(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	post, err := f.postSvc.CreatePost(ctx, 10, validPostReq())
	if err != nil {
		t.Fatalf("create post returned error: %v", err)
	}

	// 存储故障不能伪装成 404
	boom := errors.New("invalid connection")
	f.postRepo.getErr = boom
	if err = f.postSvc.UpdatePost(ctx, 10, post.ID, validPostReq()); !errors.Is(err, boom) {
		t.Fatalf("expected storage error to surface, got %v", err)
	}
}

func TestUpdatePostReevaluatesQuality(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	post, err := f.postSvc.CreatePost(ctx, 10, validPostReq())
	if err != nil {
		t.Fatalf("create post returned error: %v", err)
	}
	qualityBefore := f.scoreRepo.scores[post.ID].QualityScore

	// 清空结构化字段, 质量分应下降
	req := validPostReq()
	req.Analysis = ""
	req.MatchHome = ""
	req.MatchAway = ""
	req.PredictedOutcome = ""
	req.Odds = 0
	if err = f.postSvc.UpdatePost(ctx, 10, post.ID, req); err != nil {
		t.Fatalf("update returned error: %v", err)
	}

	qualityAfter := f.scoreRepo.scores[post.ID].QualityScore
	if qualityAfter >= qualityBefore {
		t.Fatalf("stripped post should lose quality: before=%v after=%v", qualityBefore, qualityAfter)
	}
}

func TestDeletePostSoft(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	post, err := f.postSvc.CreatePost(ctx, 10, validPostReq())
	if err != nil {
		t.Fatalf("create post returned error: %v", err)
	}

	if err = f.postSvc.DeletePost(ctx, 10, post.ID); err != nil {
		t.Fatalf("delete returned error: %v", err)
	}

	// 删除后作者也看不到
	if _, err = f.postSvc.GetPost(ctx, 10, post.ID); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound after delete, got %v", err)
	}
	// 分数行保留
	if _, ok := f.scoreRepo.scores[post.ID]; !ok {
		t.Fatal("score row must survive a soft delete")
	}
}
