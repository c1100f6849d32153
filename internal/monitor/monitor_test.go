package monitor

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"actiowatch/internal/clock"
	"actiowatch/internal/domain"
	"actiowatch/internal/event"
	"actiowatch/internal/logger"
	"actiowatch/internal/proctree"
	"actiowatch/internal/watchdog"
)

type fakeSource struct {
	mu      sync.Mutex
	calls   int
	reading func(call int) domain.Reading
}

func (f *fakeSource) Refresh(context.Context) domain.Reading {
	f.mu.Lock()
	f.calls++
	call := f.calls
	f.mu.Unlock()
	return f.reading(call)
}

type toggle struct{ on atomic.Bool }

func (t *toggle) NotificationsEnabled() bool { return t.on.Load() }

type recorder struct {
	mu  sync.Mutex
	got []domain.Notification
}

func (r *recorder) Notify(_ context.Context, n domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, n)
	return nil
}

func (r *recorder) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.got)
}

func ppid(p int32) *int32 { return &p }

func busyReading(int) domain.Reading {
	return domain.Reading{
		GlobalCPUPercent: 97,
		MemoryUsed:       1 << 30,
		MemoryTotal:      8 << 30,
		CoreCount:        2,
		Processes: []domain.ProcessSample{
			{PID: 1, StartTime: 10, Name: "init", CPUPercent: 20},
			{PID: 2, ParentPID: ppid(1), StartTime: 20, Name: "worker", CPUPercent: 160},
		},
	}
}

type fixture struct {
	clock   *clock.FakeClock
	source  *fakeSource
	bus     *event.Bus
	rec     *recorder
	toggles *toggle
	mon     *Monitor
}

func newFixture(reading func(int) domain.Reading) *fixture {
	clk := clock.Fake(time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC))
	f := &fixture{
		clock:   clk,
		source:  &fakeSource{reading: reading},
		bus:     event.New(logger.Nop()),
		rec:     &recorder{},
		toggles: &toggle{},
	}
	f.toggles.on.Store(true)
	wd := watchdog.New(f.rec, clk, logger.Nop(), "")
	f.mon = New(f.source, f.bus, wd, f.toggles, clk, logger.Nop(), Options{Interval: time.Second})
	return f
}

func TestTickPublishesSnapshot(t *testing.T) {
	f := newFixture(busyReading)

	var got []domain.SystemSnapshot
	f.bus.Subscribe(domain.WsEventStatsUpdate, func(e any) {
		got = append(got, e.(domain.SystemSnapshot))
	})

	f.mon.Tick(context.Background())

	if len(got) != 1 {
		t.Fatalf("published %d snapshots, want 1", len(got))
	}
	snap := got[0]
	if snap.ProcessCount != 2 || proctree.Count(snap.Processes) != 2 {
		t.Errorf("process count = %d, forest = %d", snap.ProcessCount, proctree.Count(snap.Processes))
	}
	if len(snap.Processes) != 1 || snap.Processes[0].Children[0].CPUPercent != 80 {
		t.Errorf("unexpected forest %+v", snap.Processes)
	}
	if !snap.RecordedAt.Equal(f.clock.Now()) {
		t.Errorf("RecordedAt = %v", snap.RecordedAt)
	}
}

func TestTickSurvivesSubscriberPanic(t *testing.T) {
	f := newFixture(busyReading)
	f.bus.Subscribe(domain.WsEventStatsUpdate, func(any) { panic("slow consumer") })

	for range 5 {
		f.mon.Tick(context.Background())
	}

	if f.rec.len() != 1 {
		t.Fatalf("watchdog saw %d notifications, want 1", f.rec.len())
	}
}

func TestTickSurvivesSourcePanic(t *testing.T) {
	f := newFixture(func(call int) domain.Reading {
		if call == 1 {
			panic("sysfs vanished")
		}
		return busyReading(call)
	})

	f.mon.Tick(context.Background())
	f.mon.Tick(context.Background())

	if f.source.calls != 2 {
		t.Fatalf("source called %d times, want 2", f.source.calls)
	}
}

func TestToggleReadEachTick(t *testing.T) {
	f := newFixture(busyReading)
	f.toggles.on.Store(false)

	for range 4 {
		f.mon.Tick(context.Background())
	}
	f.toggles.on.Store(true)
	f.mon.Tick(context.Background())

	if f.rec.len() != 1 {
		t.Fatalf("got %d notifications, want 1 after re-enabling mid-streak", f.rec.len())
	}
}

func TestRunTicksOnClockAndStops(t *testing.T) {
	f := newFixture(busyReading)

	var mu sync.Mutex
	published := 0
	done := make(chan struct{}, 16)
	f.bus.Subscribe(domain.WsEventStatsUpdate, func(any) {
		mu.Lock()
		published++
		mu.Unlock()
		done <- struct{}{}
	})

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- f.mon.Run(ctx) }()

	f.clock.WaitForTickers(1)
	<-done // immediate first tick

	for range 3 {
		f.clock.Advance(time.Second)
		<-done
	}

	cancel()
	if err := <-errc; !errors.Is(err, context.Canceled) {
		t.Fatalf("Run returned %v, want context.Canceled", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if published != 4 {
		t.Errorf("published %d snapshots, want 4", published)
	}
}
