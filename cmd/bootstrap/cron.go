package bootstrap

import (
	"context"
	"log/slog"

	"github.com/coastalprograms/swms-engine/internal/pkg/config"
	"github.com/coastalprograms/swms-engine/internal/usecase/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
)

// CronModule runs the scheduler on an in-process timer when SCHEDULER_CRON is
// set. Deployments that trigger through POST /api/scheduler/run leave it
// empty; running both is safe because every claim is conditional.
var CronModule = fx.Module("cron",
	fx.Invoke(startCron),
)

func startCron(lc fx.Lifecycle, cfg config.Config, scheduler commands.SchedulerCommands, logger *slog.Logger) error {
	if cfg.Scheduler.CronSpec == "" {
		return nil
	}

	c := cron.New()
	_, err := c.AddFunc(cfg.Scheduler.CronSpec, func() {
		result, runErr := scheduler.Run(context.Background())
		if runErr != nil {
			logger.Error("cron scheduler run failed", "error", runErr)
			return
		}
		logger.Info("cron scheduler run completed",
			"processed", result.CampaignsProcessed,
			"executed", result.CampaignsExecuted,
			"failed", result.CampaignsFailed)
	})
	if err != nil {
		return err
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			logger.Info("starting in-process scheduler", "spec", cfg.Scheduler.CronSpec)
			c.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			stopped := c.Stop()
			select {
			case <-stopped.Done():
			case <-ctx.Done():
			}
			return nil
		},
	})
	return nil
}
