package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"actiowatch/internal/clock"
	"actiowatch/internal/config"
	"actiowatch/internal/domain"
	"actiowatch/internal/event"
	"actiowatch/internal/logger"
	"actiowatch/internal/settings"
	"actiowatch/internal/stream"
)

// runStream writes every snapshot to stdout until interrupted.
func runStream(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	enc, err := stream.NewEncoder(os.Stdout, cfg.StreamFormat)
	if err != nil {
		return err
	}

	bus := event.New(log)
	bus.Subscribe(domain.WsEventStatsUpdate, func(e any) {
		snap, ok := e.(domain.SystemSnapshot)
		if !ok {
			return
		}
		if err := enc.Encode(snap); err != nil {
			log.Error("stream: encode failed", "error", err)
		}
	})

	state := settings.NewState(nil, log, cfg.NotificationsEnabled)
	mon := newMonitor(cfg, log, clock.Real(), bus, notifiers(cfg, log), state)

	return mon.Run(ctx)
}

// runSnapshot prints a single snapshot. Two samples are taken one
// interval apart because CPU and network figures are deltas.
func runSnapshot(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	enc, err := stream.NewEncoder(os.Stdout, cfg.StreamFormat)
	if err != nil {
		return err
	}

	state := settings.NewState(nil, log, false)
	mon := newMonitor(cfg, log, clock.Real(), event.New(log), notifiers(cfg, log), state)

	mon.Sample(ctx)

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(cfg.Interval):
	}

	if err := enc.Encode(mon.Sample(ctx)); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}
