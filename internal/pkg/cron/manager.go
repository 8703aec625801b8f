package cron

import (
	"Tipside/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine               *cron.Cron
	scoreSyncJob         *job.ScoreSyncJob
	authorReliabilityJob *job.AuthorReliabilityJob
	penaltyDecayJob      *job.PenaltyDecayJob
}

func NewCronManager(
	scoreSyncJob *job.ScoreSyncJob,
	authorReliabilityJob *job.AuthorReliabilityJob,
	penaltyDecayJob *job.PenaltyDecayJob,
) *Manager {
	return &Manager{
		engine:               cron.New(cron.WithSeconds()),
		scoreSyncJob:         scoreSyncJob,
		authorReliabilityJob: authorReliabilityJob,
		penaltyDecayJob:      penaltyDecayJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	// 计数增量回刷要快, 五分钟一轮
	if _, err := s.engine.AddJob("0 */5 * * * *", s.scoreSyncJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob("@daily", s.authorReliabilityJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob("@hourly", s.penaltyDecayJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	s.engine.Stop()
}
