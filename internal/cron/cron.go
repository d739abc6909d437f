package cron

import (
	"context"
	"time"

	"pantry/internal/service"
	"pantry/internal/service/models"

	"github.com/google/wire"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var ProviderSet = wire.NewSet(NewCron)

type Cron struct {
	logger        *zap.Logger
	server        *cron.Cron
	modelsService models.Service
	healthService *service.HealthService
}

// NewCron .
func NewCron(
	logger *zap.Logger,
	modelsService models.Service,
	healthService *service.HealthService,
) *Cron {
	server := cron.New(
		cron.WithSeconds(),
	)

	return &Cron{
		logger:        logger,
		server:        server,
		modelsService: modelsService,
		healthService: healthService,
	}
}

func (c *Cron) Run() error {
	// 定期探測上游，決定 readiness
	if _, err := c.server.AddFunc("*/30 * * * * *", c.probeUpstream); err != nil {
		return err
	}

	c.server.Start()
	// 啟動後立即探測一次，避免等第一個排程點才 ready
	go c.probeUpstream()
	return nil
}

// probeUpstream 呼叫上游 models 清單當作連通性檢查，結果反映到 readiness。
func (c *Cron) probeUpstream() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	wasReady := c.healthService.IsReady()
	_, err := c.modelsService.List(ctx)
	ready := err == nil

	if err != nil {
		c.logger.Warn("[Cron] upstream probe failed", zap.Error(err))
	} else if !wasReady {
		c.logger.Info("[Cron] upstream reachable, service marked ready")
	}
	c.healthService.SetReady(ready)
}

func (c *Cron) Stop(ctx context.Context) error {
	c.server.Stop()
	return nil
}
