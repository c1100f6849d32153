// Package memory
package memory

import (
	"context"
	"errors"
	"fmt"

	"github.com/shirou/gopsutil/v4/mem"
)

func NewCollector() *Collector {
	return &Collector{virtual: mem.VirtualMemoryWithContext}
}

func (c *Collector) Collect(ctx context.Context) (MemoryMetric, error) {
	vm, err := c.virtual(ctx)
	if err != nil {
		return MemoryMetric{}, fmt.Errorf("virtual memory: %w", err)
	}
	if vm == nil {
		return MemoryMetric{}, errors.New("virtual memory: empty reading")
	}

	return MemoryMetric{
		Total:     vm.Total,
		Used:      vm.Used,
		Available: vm.Available,
	}, nil
}
