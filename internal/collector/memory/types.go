package memory

import (
	"context"

	"github.com/shirou/gopsutil/v4/mem"
)

type Collector struct {
	virtual func(ctx context.Context) (*mem.VirtualMemoryStat, error)
}

type MemoryMetric struct {
	Total     uint64 `json:"total"`
	Used      uint64 `json:"used"`
	Available uint64 `json:"available"`
}
