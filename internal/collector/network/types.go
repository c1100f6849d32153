package network

import (
	"context"

	"actiowatch/internal/logger"

	"github.com/shirou/gopsutil/v4/net"
)

// DefaultRescanEvery is how many collections pass between interface list
// rescans. Counters are read on every collection.
const DefaultRescanEvery = 10

type Collector struct {
	log logger.Logger

	counters   func(ctx context.Context, pernic bool) ([]net.IOCountersStat, error)
	interfaces func(ctx context.Context) (net.InterfaceStatList, error)

	rescanEvery int
	ticks       int
	tracked     map[string]bool
	last        map[string]counter
}

type counter struct {
	sent uint64
	recv uint64
}

// NetworkMetric holds bytes moved since the previous collection.
type NetworkMetric struct {
	Upload   uint64 `json:"upload"`
	Download uint64 `json:"download"`
}
