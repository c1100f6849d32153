// Package workers runs housekeeping jobs on a fixed period.
package workers

import (
	"context"
	"time"

	"actiowatch/internal/clock"
	"actiowatch/internal/logger"
)

type Worker interface {
	Name() string
	Run(ctx context.Context) error
}

type Scheduler struct {
	clock clock.Clock
	log   logger.Logger
}

func NewScheduler(clk clock.Clock, log logger.Logger) *Scheduler {
	return &Scheduler{clock: clk, log: log}
}

// RunByDuration runs worker every dur until ctx is cancelled. Failures are
// logged and the schedule continues.
func (s *Scheduler) RunByDuration(ctx context.Context, dur time.Duration, worker Worker) error {
	ticker := s.clock.NewTicker(dur)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			start := s.clock.Now()

			if err := worker.Run(ctx); err != nil {
				s.log.Error("worker failed", "name", worker.Name(), "error", err)
			}

			s.log.Debug("worker finished", "name", worker.Name(), "time", s.clock.Now().Sub(start))
		}
	}
}
