// Package process
package process

import (
	"context"
	"fmt"

	"actiowatch/internal/domain"
	"actiowatch/internal/logger"

	"github.com/shirou/gopsutil/v4/process"
)

func NewCollector(log logger.Logger) *Collector {
	return &Collector{
		log:     log,
		handles: make(map[int32]*handle),
	}
}

// Collect enumerates every process visible to us. Fields the OS refuses to
// report are left zero; a process that exits mid-read is still returned
// with whatever was read before it vanished.
func (c *Collector) Collect(ctx context.Context) ([]domain.ProcessSample, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	next := make(map[int32]*handle, len(procs))
	samples := make([]domain.ProcessSample, 0, len(procs))
	denied := 0

	for _, p := range procs {
		created, err := p.CreateTimeWithContext(ctx)
		if err != nil {
			created = 0
			denied++
		}

		h, ok := c.handles[p.Pid]
		if !ok || h.created != created {
			h = &handle{proc: p, created: created}
		}
		next[p.Pid] = h

		samples = append(samples, read(ctx, h))
	}

	c.handles = next

	if denied > 0 {
		c.log.Debug("process: start time unavailable", "count", denied, "total", len(samples))
	}

	return samples, nil
}

func read(ctx context.Context, h *handle) domain.ProcessSample {
	p := h.proc
	s := domain.ProcessSample{PID: p.Pid}

	if h.created > 0 {
		s.StartTime = uint64(h.created)
	}

	if ppid, err := p.PpidWithContext(ctx); err == nil {
		s.ParentPID = &ppid
	}

	if name, err := p.NameWithContext(ctx); err == nil {
		s.Name = name
	}

	if cpu, err := p.PercentWithContext(ctx, 0); err == nil {
		s.CPUPercent = cpu
	}

	if mi, err := p.MemoryInfoWithContext(ctx); err == nil && mi != nil {
		s.MemoryBytes = mi.RSS
	}

	if io, err := p.IOCountersWithContext(ctx); err == nil && io != nil {
		s.DiskReadBytes = io.ReadBytes
		s.DiskWriteBytes = io.WriteBytes
	}

	if threads, err := p.NumThreadsWithContext(ctx); err == nil && threads > 0 {
		s.ThreadCount = uint64(threads)
	}

	return s
}
