package transform

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"go-transformer/internal/config"
)

// BatchScheduler runs the full transform on a cron schedule when
// BATCH_CRON is set; without it batches are manual only.
type BatchScheduler struct {
	Service   TransformService
	Config    *config.Config
	Logger    *zap.Logger
	scheduler *cron.Cron
}

func NewBatchScheduler(service TransformService, cfg *config.Config, logger *zap.Logger) *BatchScheduler {
	return &BatchScheduler{
		Service: service,
		Config:  cfg,
		Logger:  logger,
	}
}

func (s *BatchScheduler) Start() error {
	if s.Config.BatchCron == "" {
		s.Logger.Info("batch scheduler disabled, BATCH_CRON not set",
			zap.String("feature", "transform"))
		return nil
	}

	s.scheduler = cron.New()
	_, err := s.scheduler.AddFunc(s.Config.BatchCron, func() {
		if _, err := s.Service.RunBatch(context.Background(), nil); err != nil {
			s.Logger.Error("scheduled batch transform failed",
				zap.String("feature", "transform"),
				zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.Start()
	s.Logger.Info("batch scheduler started",
		zap.String("feature", "transform"),
		zap.String("schedule", s.Config.BatchCron))
	return nil
}

func (s *BatchScheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
