package wire

import (
	"Tipside/internal/api"
	"Tipside/internal/api/config"
	"Tipside/internal/api/handler"
	"Tipside/internal/job"
	"Tipside/internal/pkg/cron"
	"Tipside/internal/pkg/kafka"
	"Tipside/internal/repository"
	"Tipside/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	KafkaManager *kafka.ConsumerManager
	CronManager  *cron.Manager
}

func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	postRepo := repository.NewPostRepository(db)
	scoreRepo := repository.NewPostScoreRepo(db)
	likeRepo := repository.NewPostLikeRepo(db)
	boostRepo := repository.NewPostBoostRepo(db)
	reportRepo := repository.NewPostReportRepo(db)
	prefRepo := repository.NewUserPreferenceRepo(db)
	relationRepo := repository.NewUserRelationRepo(db)

	scoreService := service.NewScoreService(postRepo, scoreRepo, cfg.Scoring)
	feedService := service.NewFeedService(postRepo, prefRepo, relationRepo, scoreService, cfg.Scoring, cfg.Feed)
	postService := service.NewPostService(postRepo, scoreRepo, relationRepo, scoreService, cfg.Scoring.PenaltyCap)
	actionService := service.NewPostActionService(postRepo, likeRepo, scoreService)
	boostService := service.NewBoostService(boostRepo, scoreRepo, postRepo)
	reportService := service.NewReportService(reportRepo, scoreRepo, postRepo, scoreService, cfg.Scoring)
	preferenceService := service.NewPreferenceService(prefRepo, relationRepo, postRepo)

	handlers := &api.HandlersGroup{
		FeedHandler:       handler.NewFeedHandler(feedService),
		PostHandler:       handler.NewPostHandler(postService),
		PostActionHandler: handler.NewPostActionHandler(actionService, boostService, reportService),
		PreferenceHandler: handler.NewPreferenceHandler(preferenceService),
	}

	router := api.SetupRouter(handlers)

	kafkaMgr, err := kafka.NewConsumerManager(cfg)
	if err != nil {
		return nil, err
	}

	cronMgr := cron.NewCronManager(
		job.NewScoreSyncJob(postRepo, scoreService),
		job.NewAuthorReliabilityJob(postRepo, scoreRepo, relationRepo, scoreService),
		job.NewPenaltyDecayJob(postRepo, scoreRepo, boostRepo, scoreService, cfg.Scoring),
	)

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		KafkaManager: kafkaMgr,
		CronManager:  cronMgr,
	}, nil
}
