package network

import (
	"context"
	"testing"

	"actiowatch/internal/logger"

	"github.com/shirou/gopsutil/v4/net"
)

type fakeNet struct {
	counters   []net.IOCountersStat
	interfaces net.InterfaceStatList
	rescans    int
}

func (f *fakeNet) collector() *Collector {
	c := NewCollector(logger.Nop())
	c.counters = func(context.Context, bool) ([]net.IOCountersStat, error) {
		return f.counters, nil
	}
	c.interfaces = func(context.Context) (net.InterfaceStatList, error) {
		f.rescans++
		return f.interfaces, nil
	}
	return c
}

func TestCollectReportsDeltas(t *testing.T) {
	f := &fakeNet{
		interfaces: net.InterfaceStatList{
			{Name: "lo", Flags: []string{"up", "loopback"}},
			{Name: "eth0", Flags: []string{"up"}},
		},
		counters: []net.IOCountersStat{
			{Name: "lo", BytesSent: 1000, BytesRecv: 1000},
			{Name: "eth0", BytesSent: 100, BytesRecv: 200},
		},
	}
	c := f.collector()

	first, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if first.Upload != 0 || first.Download != 0 {
		t.Errorf("first collection should report 0, got %+v", first)
	}

	f.counters = []net.IOCountersStat{
		{Name: "lo", BytesSent: 9000, BytesRecv: 9000},
		{Name: "eth0", BytesSent: 150, BytesRecv: 500},
	}

	second, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if second.Upload != 50 || second.Download != 300 {
		t.Errorf("got %+v, want upload 50 download 300", second)
	}
}

func TestCollectCounterReset(t *testing.T) {
	f := &fakeNet{
		interfaces: net.InterfaceStatList{{Name: "wlan0"}},
		counters:   []net.IOCountersStat{{Name: "wlan0", BytesSent: 5000, BytesRecv: 5000}},
	}
	c := f.collector()
	c.Collect(context.Background())

	f.counters = []net.IOCountersStat{{Name: "wlan0", BytesSent: 10, BytesRecv: 6000}}
	m, _ := c.Collect(context.Background())

	if m.Upload != 0 || m.Download != 1000 {
		t.Errorf("got %+v, want upload 0 download 1000", m)
	}
}

func TestCollectRescansEveryTenthTick(t *testing.T) {
	f := &fakeNet{interfaces: net.InterfaceStatList{{Name: "eth0"}}}
	c := f.collector()

	for range 25 {
		c.Collect(context.Background())
	}

	// initial scan, then ticks 10 and 20
	if f.rescans != 3 {
		t.Errorf("rescans = %d, want 3", f.rescans)
	}
}

func TestCollectNewInterfaceAfterRescan(t *testing.T) {
	f := &fakeNet{
		interfaces: net.InterfaceStatList{{Name: "eth0"}},
		counters: []net.IOCountersStat{
			{Name: "eth0", BytesSent: 10, BytesRecv: 10},
			{Name: "tun0", BytesSent: 10, BytesRecv: 10},
		},
	}
	c := f.collector()

	for range 8 {
		c.Collect(context.Background())
	}

	f.interfaces = net.InterfaceStatList{{Name: "eth0"}, {Name: "tun0"}}
	f.counters = []net.IOCountersStat{
		{Name: "eth0", BytesSent: 10, BytesRecv: 10},
		{Name: "tun0", BytesSent: 20, BytesRecv: 20},
	}

	// tick 9: tun0 not yet tracked
	m, _ := c.Collect(context.Background())
	if m.Upload != 0 {
		t.Fatalf("untracked interface counted: %+v", m)
	}

	// tick 10: rescan picks up tun0, first observation contributes 0
	m, _ = c.Collect(context.Background())
	if m.Upload != 0 {
		t.Fatalf("first observation of tun0 should be 0, got %+v", m)
	}

	f.counters[1] = net.IOCountersStat{Name: "tun0", BytesSent: 70, BytesRecv: 20}
	m, _ = c.Collect(context.Background())
	if m.Upload != 50 {
		t.Errorf("Upload = %d, want 50", m.Upload)
	}
}
