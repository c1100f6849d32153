package memory

import (
	"context"
	"testing"

	"github.com/shirou/gopsutil/v4/mem"
)

func TestCollect(t *testing.T) {
	c := &Collector{
		virtual: func(context.Context) (*mem.VirtualMemoryStat, error) {
			return &mem.VirtualMemoryStat{Total: 16 << 30, Used: 4 << 30, Available: 12 << 30}, nil
		},
	}

	m, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if m.Total != 16<<30 || m.Used != 4<<30 || m.Available != 12<<30 {
		t.Errorf("unexpected metric %+v", m)
	}
}

func TestCollectNilReading(t *testing.T) {
	c := &Collector{
		virtual: func(context.Context) (*mem.VirtualMemoryStat, error) { return nil, nil },
	}

	if _, err := c.Collect(context.Background()); err == nil {
		t.Fatal("expected error for nil reading")
	}
}
