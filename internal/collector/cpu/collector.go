// Package cpu
package cpu

import (
	"context"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
)

func NewCollector() *Collector {
	return &Collector{
		percent: cpu.PercentWithContext,
		counts:  cpu.CountsWithContext,
	}
}

// Collect returns system-wide usage since the previous call. The first call
// only establishes a baseline and reports 0. When the core count cannot be
// read the Go runtime's count is used and the lookup is retried next call.
func (c *Collector) Collect(ctx context.Context) (CPUMetric, error) {
	cores := c.cores
	if cores == 0 {
		n, err := c.counts(ctx, true)
		if err != nil || n <= 0 {
			cores = runtime.NumCPU()
		} else {
			c.cores = n
			cores = n
		}
	}

	usage, err := c.percent(ctx, 0, false)
	if err != nil {
		return CPUMetric{Cores: cores}, fmt.Errorf("cpu percent: %w", err)
	}

	var total float64
	if len(usage) > 0 {
		total = usage[0]
	}

	return CPUMetric{
		Usage: total,
		Cores: cores,
	}, nil
}
