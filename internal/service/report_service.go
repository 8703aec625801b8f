package service

import (
	"Tipside/internal/api/config"
	"Tipside/internal/api/dto"
	"Tipside/internal/model"
	"Tipside/internal/pkg/consts"
	"Tipside/internal/pkg/redis"
	"Tipside/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"strconv"
	"time"

	"gorm.io/gorm"
)

// ReportService 举报接收与惩罚累计
// 每个独立举报用户固定加一档惩罚直至封顶; 同一用户重复举报不生效
type ReportService interface {
	Report(ctx context.Context, userID, postID uint64, req *dto.ReportCreateDTO) (*dto.ReportResultDTO, error)
}

type reportServiceImpl struct {
	reportRepo repository.PostReportRepo
	scoreRepo  repository.PostScoreRepo
	postRepo   repository.PostRepo
	scoreSvc   ScoreService
	cfg        config.ScoringConfig
}

func NewReportService(
	reportRepo repository.PostReportRepo,
	scoreRepo repository.PostScoreRepo,
	postRepo repository.PostRepo,
	scoreSvc ScoreService,
	cfg config.ScoringConfig,
) ReportService {
	return &reportServiceImpl{
		reportRepo: reportRepo,
		scoreRepo:  scoreRepo,
		postRepo:   postRepo,
		scoreSvc:   scoreSvc,
		cfg:        cfg,
	}
}

func (s *reportServiceImpl) Report(ctx context.Context, userID, postID uint64, req *dto.ReportCreateDTO) (*dto.ReportResultDTO, error) {
	if _, ok := model.ReportReasons[req.Reason]; !ok {
		return nil, ErrReasonInvalid
	}

	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if post.IsDeleted {
		return nil, ErrPostNotFound
	}

	// Redis 挡掉同一用户的短时重复提交, 最终一致由唯一键兜底
	lockKey := consts.ReportLock + strconv.FormatUint(userID, 10) + ":" + strconv.FormatUint(postID, 10)
	set, err := redis.TryLock(ctx, lockKey, "1", 24*time.Hour, 0)
	if err == nil && !set {
		return &dto.ReportResultDTO{Accepted: true}, nil
	}

	err = s.reportRepo.CreateReport(ctx, &model.PostReport{
		UserID:      userID,
		PostID:      postID,
		Reason:      req.Reason,
		Description: req.Description,
		Status:      model.ReportStatusOpen,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		if isDuplicateError(err) {
			// 已举报过, 不再叠加惩罚
			return &dto.ReportResultDTO{Accepted: true}, nil
		}
		// 插入失败必须放掉锁, 不然重试会被当成重复提交吞掉
		_ = redis.DeleteKey(ctx, lockKey)
		return nil, err
	}

	// 惩罚原子累加封顶, 然后整行重算可见性
	if err = s.scoreRepo.ApplyReportPenalty(ctx, postID, s.cfg.PenaltyStep, s.cfg.PenaltyCap); err != nil {
		return nil, err
	}
	if err = s.scoreSvc.RecomputeVisibility(ctx, postID); err != nil {
		log.ErrorContext(ctx, "recompute visibility after report failed", "postID", postID, "err", err)
	}

	// 作者可靠度慢变量, 交给后台任务批量重算
	_ = redis.SAdd(ctx, consts.AuthorDirtyKey, post.UserID)

	return &dto.ReportResultDTO{Accepted: true}, nil
}
