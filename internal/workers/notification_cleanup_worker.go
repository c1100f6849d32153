package workers

import (
	"context"
	"time"

	"actiowatch/internal/clock"
	"actiowatch/internal/domain"
	"actiowatch/internal/logger"
)

type NotificationCleanupWorker struct {
	repo      domain.NotificationRepository
	retention time.Duration
	clock     clock.Clock
	log       logger.Logger
}

func NewNotificationCleanupWorker(repo domain.NotificationRepository, retention time.Duration, clk clock.Clock, log logger.Logger) Worker {
	return &NotificationCleanupWorker{
		repo:      repo,
		retention: retention,
		clock:     clk,
		log:       log,
	}
}

func (w *NotificationCleanupWorker) Name() string {
	return "notification_cleanup"
}

func (w *NotificationCleanupWorker) Run(ctx context.Context) error {
	removed, err := w.repo.Prune(ctx, w.clock.Now().Add(-w.retention))
	if err != nil {
		return err
	}
	if removed > 0 {
		w.log.Info("worker: pruned notification history", "removed", removed)
	}
	return nil
}
