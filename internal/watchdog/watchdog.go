// Package watchdog turns sustained CPU and memory pressure into debounced
// notifications.
package watchdog

import (
	"context"
	"fmt"
	"time"

	"actiowatch/internal/clock"
	"actiowatch/internal/domain"
	"actiowatch/internal/logger"
	"actiowatch/internal/proctree"

	"github.com/google/uuid"
)

const (
	CPUThreshold    = 90.0
	CPUStreak       = 5
	MemoryThreshold = 90.0
	MemoryStreak    = 3
	Cooldown        = 60 * time.Second

	// ProcessMemoryDivisor: a process holding more than total/4 bytes of
	// resident memory is reported.
	ProcessMemoryDivisor = 4

	// EvictAfter is how many consecutive ticks a reported process must be
	// absent before it is forgotten.
	EvictAfter = 3
)

const gib = 1 << 30

type Watchdog struct {
	notifier domain.Notifier
	clock    clock.Clock
	log      logger.Logger
	icon     string
}

func New(notifier domain.Notifier, clk clock.Clock, log logger.Logger, icon string) *Watchdog {
	return &Watchdog{
		notifier: notifier,
		clock:    clk,
		log:      log,
		icon:     icon,
	}
}

// Evaluate runs one tick of the alert policy against snap. When enabled is
// false the state still advances but nothing is delivered.
func (w *Watchdog) Evaluate(ctx context.Context, st *State, snap domain.SystemSnapshot, enabled bool) {
	now := w.clock.Now()

	if st.cpu.observe(snap.CPUPercent > CPUThreshold, CPUStreak, now) {
		w.send(ctx, enabled, domain.Notification{
			Kind:  domain.AlertHighCPU,
			Title: "High CPU Alert",
			Body:  fmt.Sprintf("System CPU usage is critically high (> %.0f%%)", CPUThreshold),
		})
	}

	w.checkProcesses(ctx, st, snap, enabled)

	memBreach := snap.MemoryTotal > 0 && float64(snap.MemoryUsed) > float64(snap.MemoryTotal)*MemoryThreshold/100
	if st.memory.observe(memBreach, MemoryStreak, now) {
		w.send(ctx, enabled, domain.Notification{
			Kind:  domain.AlertHighMemory,
			Title: "Memory Alert",
			Body:  fmt.Sprintf("System memory usage is critically high (%.1f%%)", snap.MemoryPercent()),
		})
	}
}

func (w *Watchdog) checkProcesses(ctx context.Context, st *State, snap domain.SystemSnapshot, enabled bool) {
	limit := snap.MemoryTotal / ProcessMemoryDivisor
	seen := make(map[domain.ProcessIdentity]struct{}, snap.ProcessCount)

	proctree.Walk(snap.Processes, func(n *domain.ProcessNode, _ int) {
		id := n.Identity()
		seen[id] = struct{}{}

		if limit == 0 || n.MemoryBytes <= limit {
			return
		}
		if _, done := st.notified[id]; done {
			return
		}
		st.notified[id] = 0

		w.send(ctx, enabled, domain.Notification{
			Kind:  domain.AlertProcessMemory,
			Title: "High Memory Usage",
			Body:  fmt.Sprintf("Process %s is using %.2f GB RAM", n.Name, float64(n.MemoryBytes)/gib),
		})
	})

	// An empty forest means enumeration failed this tick.
	if len(seen) == 0 {
		return
	}
	for id, missed := range st.notified {
		if _, ok := seen[id]; ok {
			st.notified[id] = 0
			continue
		}
		if missed+1 >= EvictAfter {
			delete(st.notified, id)
			continue
		}
		st.notified[id] = missed + 1
	}
}

func (w *Watchdog) send(ctx context.Context, enabled bool, n domain.Notification) {
	if !enabled {
		w.log.Debug("watchdog: notification suppressed", "kind", n.Kind)
		return
	}

	n.ID = uuid.New()
	n.Icon = w.icon
	n.CreatedAt = w.clock.Now()

	if err := w.notifier.Notify(ctx, n); err != nil {
		w.log.Warn("watchdog: notification delivery failed", "kind", n.Kind, "error", err)
	}
}
