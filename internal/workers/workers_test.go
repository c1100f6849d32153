package workers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"actiowatch/internal/clock"
	"actiowatch/internal/domain"
	"actiowatch/internal/logger"
)

type pruneRepo struct {
	mu      sync.Mutex
	cutoffs []time.Time
	err     error
}

func (r *pruneRepo) Save(context.Context, domain.Notification) error { return nil }

func (r *pruneRepo) Recent(context.Context, int) ([]domain.Notification, error) { return nil, nil }

func (r *pruneRepo) Prune(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cutoffs = append(r.cutoffs, cutoff)
	return 3, r.err
}

func (r *pruneRepo) calls() []time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]time.Time(nil), r.cutoffs...)
}

func TestCleanupUsesRetention(t *testing.T) {
	now := time.Date(2026, 9, 10, 3, 0, 0, 0, time.UTC)
	repo := &pruneRepo{}
	w := NewNotificationCleanupWorker(repo, 48*time.Hour, clock.Fake(now), logger.Nop())

	if err := w.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got := repo.calls()
	if len(got) != 1 || !got[0].Equal(now.Add(-48*time.Hour)) {
		t.Errorf("cutoffs = %v", got)
	}
}

func TestSchedulerKeepsRunningAfterFailure(t *testing.T) {
	clk := clock.Fake(time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC))
	repo := &pruneRepo{err: errors.New("database is locked")}
	s := NewScheduler(clk, logger.Nop())
	w := NewNotificationCleanupWorker(repo, time.Hour, clk, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- s.RunByDuration(ctx, time.Minute, w) }()

	clk.WaitForTickers(1)
	for i := 1; i <= 3; i++ {
		clk.Advance(time.Minute)
		waitFor(t, func() bool { return len(repo.calls()) == i })
	}

	cancel()
	if err := <-errc; !errors.Is(err, context.Canceled) {
		t.Fatalf("RunByDuration returned %v", err)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(time.Millisecond)
	}
}
