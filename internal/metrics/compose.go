package metrics

import (
	"time"

	"actiowatch/internal/domain"
	"actiowatch/internal/proctree"
)

// Compose builds the published snapshot. Disk totals are summed over the
// roots' Total fields, so with self-only aggregation they cover only the
// root processes themselves.
func Compose(r domain.Reading, forest []domain.ProcessNode, now time.Time) domain.SystemSnapshot {
	var diskRead, diskWrite uint64
	for _, root := range forest {
		diskRead += root.TotalDiskReadBytes
		diskWrite += root.TotalDiskWriteBytes
	}

	components := r.Components
	if components == nil {
		components = []domain.ThermalReading{}
	}
	if forest == nil {
		forest = []domain.ProcessNode{}
	}

	return domain.SystemSnapshot{
		CPUPercent:   r.GlobalCPUPercent,
		MemoryUsed:   r.MemoryUsed,
		MemoryTotal:  r.MemoryTotal,
		NetworkUp:    r.NetworkUp,
		NetworkDown:  r.NetworkDown,
		DiskRead:     diskRead,
		DiskWrite:    diskWrite,
		ProcessCount: proctree.Count(forest),
		Components:   components,
		Processes:    forest,
		RecordedAt:   now,
	}
}
