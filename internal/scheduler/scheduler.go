// Package scheduler owns the process-wide cron runner and registers the
// recurring jobs: the notification sweep and the nightly HR employee sync.
package scheduler

import (
	"context"

	"go-crm-admin/internal/features/employee"
	"go-crm-admin/internal/features/notification"

	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	sweepSchedule = "@every 30s"
	syncSchedule  = "0 2 * * *"
)

type Scheduler struct {
	cron    *cron.Cron
	sweeper *notification.Sweeper
	hrSync  *employee.SyncService
	log     *zap.Logger
}

func NewScheduler(lc fx.Lifecycle, sweeper *notification.Sweeper, hrSync *employee.SyncService, log *zap.Logger) *Scheduler {
	s := &Scheduler{
		cron:    cron.New(),
		sweeper: sweeper,
		hrSync:  hrSync,
		log:     log,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return s.start()
		},
		OnStop: func(ctx context.Context) error {
			s.cron.Stop()
			return nil
		},
	})

	return s
}

func (s *Scheduler) start() error {
	if _, err := s.cron.AddFunc(sweepSchedule, func() {
		if err := s.sweeper.Sweep(context.Background()); err != nil {
			s.log.Error("notification sweep failed", zap.Error(err))
		}
	}); err != nil {
		return err
	}

	if s.hrSync.Enabled() {
		if _, err := s.cron.AddFunc(syncSchedule, func() {
			if _, err := s.hrSync.Run(context.Background()); err != nil {
				s.log.Error("hr sync failed", zap.Error(err))
			}
		}); err != nil {
			return err
		}
	} else {
		s.log.Info("hr sync disabled, no source database configured")
	}

	s.cron.Start()
	s.log.Info("scheduler started")
	return nil
}
