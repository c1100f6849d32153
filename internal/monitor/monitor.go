// Package monitor runs the sampling loop: refresh, build the process
// forest, compose the snapshot, publish it and evaluate alerts.
package monitor

import (
	"context"
	"runtime/debug"
	"time"

	"actiowatch/internal/clock"
	"actiowatch/internal/domain"
	"actiowatch/internal/event"
	"actiowatch/internal/logger"
	"actiowatch/internal/metrics"
	"actiowatch/internal/proctree"
	"actiowatch/internal/watchdog"
)

const DefaultInterval = time.Second

// Toggles is read once per tick.
type Toggles interface {
	NotificationsEnabled() bool
}

type Options struct {
	Interval    time.Duration
	Aggregation proctree.Aggregation
}

type Monitor struct {
	source   metrics.Source
	bus      *event.Bus
	watchdog *watchdog.Watchdog
	toggles  Toggles
	clock    clock.Clock
	log      logger.Logger
	opts     Options

	state *watchdog.State
}

func New(source metrics.Source, bus *event.Bus, wd *watchdog.Watchdog, toggles Toggles, clk clock.Clock, log logger.Logger, opts Options) *Monitor {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	return &Monitor{
		source:   source,
		bus:      bus,
		watchdog: wd,
		toggles:  toggles,
		clock:    clk,
		log:      log,
		opts:     opts,
		state:    watchdog.NewState(),
	}
}

// Run ticks until ctx is cancelled. The first tick runs immediately. Ticks
// never overlap; a tick that overruns the interval delays the next one.
func (m *Monitor) Run(ctx context.Context) error {
	ticker := m.clock.NewTicker(m.opts.Interval)
	defer ticker.Stop()

	m.log.Info("monitor started", "interval", m.opts.Interval, "aggregation", m.opts.Aggregation)

	m.Tick(ctx)

	for {
		select {
		case <-ticker.C:
			m.Tick(ctx)
		case <-ctx.Done():
			m.log.Info("monitor stopped")
			return ctx.Err()
		}
	}
}

// Tick performs one full iteration. A panic anywhere in the tick is logged
// and swallowed.
func (m *Monitor) Tick(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			m.log.Error("monitor: tick panicked", "panic", r, "stack", string(debug.Stack()))
		}
	}()

	snap := m.Sample(ctx)
	m.bus.Publish(domain.WsEventStatsUpdate, snap)
	m.watchdog.Evaluate(ctx, m.state, snap, m.toggles.NotificationsEnabled())
}

// Sample reads the source once and returns the composed snapshot without
// publishing it.
func (m *Monitor) Sample(ctx context.Context) domain.SystemSnapshot {
	reading := m.source.Refresh(ctx)
	forest := proctree.Build(reading.Processes, proctree.Options{
		CoreCount:   reading.CoreCount,
		Aggregation: m.opts.Aggregation,
	})
	return metrics.Compose(reading, forest, m.clock.Now())
}
