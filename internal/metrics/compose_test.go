package metrics

import (
	"errors"
	"testing"
	"time"

	"actiowatch/internal/domain"
	"actiowatch/internal/proctree"
)

func ppid(p int32) *int32 { return &p }

func TestCompose(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	reading := domain.Reading{
		GlobalCPUPercent: 42.5,
		MemoryUsed:       6 << 30,
		MemoryTotal:      16 << 30,
		CoreCount:        2,
		NetworkUp:        1200,
		NetworkDown:      3400,
		Processes: []domain.ProcessSample{
			{PID: 1, StartTime: 100, DiskReadBytes: 10, DiskWriteBytes: 1},
			{PID: 2, ParentPID: ppid(1), StartTime: 200, DiskReadBytes: 5, DiskWriteBytes: 2},
			{PID: 3, StartTime: 300, DiskReadBytes: 7, DiskWriteBytes: 3},
		},
	}

	tests := []struct {
		name      string
		agg       proctree.Aggregation
		wantRead  uint64
		wantWrite uint64
	}{
		{"self only counts roots", proctree.AggregateSelf, 17, 4},
		{"subtree counts everything", proctree.AggregateSubtree, 22, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forest := proctree.Build(reading.Processes, proctree.Options{CoreCount: reading.CoreCount, Aggregation: tt.agg})
			snap := Compose(reading, forest, now)

			if snap.DiskRead != tt.wantRead || snap.DiskWrite != tt.wantWrite {
				t.Errorf("disk = %d/%d, want %d/%d", snap.DiskRead, snap.DiskWrite, tt.wantRead, tt.wantWrite)
			}
			if snap.ProcessCount != 3 {
				t.Errorf("ProcessCount = %d, want 3", snap.ProcessCount)
			}
			if snap.CPUPercent != 42.5 || snap.NetworkUp != 1200 || snap.NetworkDown != 3400 {
				t.Errorf("pass-through fields changed: %+v", snap)
			}
			if !snap.RecordedAt.Equal(now) {
				t.Errorf("RecordedAt = %v, want %v", snap.RecordedAt, now)
			}
			if len(snap.Processes) != 2 {
				t.Errorf("got %d roots, want 2", len(snap.Processes))
			}
		})
	}
}

func TestComposeCountsForestNotSamples(t *testing.T) {
	reading := domain.Reading{
		CoreCount: 1,
		Processes: []domain.ProcessSample{
			{PID: 5, StartTime: 10},
			{PID: 5, StartTime: 10},
			{PID: 6, ParentPID: ppid(5), StartTime: 20},
		},
	}
	forest := proctree.Build(reading.Processes, proctree.Options{CoreCount: 1})

	snap := Compose(reading, forest, time.Time{})
	if snap.ProcessCount != 2 {
		t.Errorf("ProcessCount = %d, want 2 after dropping the duplicate pid", snap.ProcessCount)
	}
}

func TestComposeEmptyReading(t *testing.T) {
	snap := Compose(domain.Reading{}, nil, time.Time{})

	if snap.Components == nil || snap.Processes == nil {
		t.Error("empty snapshot should carry empty slices, not nil")
	}
	if snap.MemoryPercent() != 0 {
		t.Errorf("MemoryPercent with unknown total = %f, want 0", snap.MemoryPercent())
	}
}

func TestSnapshotStore(t *testing.T) {
	s := NewSnapshotStore()

	if _, err := s.Latest(); !errors.Is(err, domain.ErrSnapshotNotReady) {
		t.Fatalf("Latest before Set: err = %v, want ErrSnapshotNotReady", err)
	}

	s.Set(domain.SystemSnapshot{CPUPercent: 12})
	got, err := s.Latest()
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if got.CPUPercent != 12 {
		t.Errorf("CPUPercent = %f, want 12", got.CPUPercent)
	}
}
