package domain

import (
	"errors"
	"time"
)

var ErrSnapshotNotReady = errors.New("snapshot not ready")

type ThermalReading struct {
	Label               string   `json:"label"`
	Temperature         float64  `json:"temperature"`
	MaxTemperature      float64  `json:"max_temperature"`
	CriticalTemperature *float64 `json:"critical_temperature,omitempty"`
}

// Reading is everything the snapshot source gathers in one refresh.
// NetworkUp and NetworkDown are bytes moved since the previous refresh.
type Reading struct {
	GlobalCPUPercent float64          `json:"global_cpu_percent"`
	MemoryUsed       uint64           `json:"memory_used"`
	MemoryTotal      uint64           `json:"memory_total"`
	CoreCount        int              `json:"core_count"`
	Processes        []ProcessSample  `json:"processes"`
	NetworkUp        uint64           `json:"network_up"`
	NetworkDown      uint64           `json:"network_down"`
	Components       []ThermalReading `json:"components"`
}

// SystemSnapshot is published once per tick and must not be mutated after
// it is built.
type SystemSnapshot struct {
	CPUPercent   float64          `json:"cpu_usage"`
	MemoryUsed   uint64           `json:"memory_used"`
	MemoryTotal  uint64           `json:"memory_total"`
	NetworkUp    uint64           `json:"network_up"`
	NetworkDown  uint64           `json:"network_down"`
	DiskRead     uint64           `json:"disk_read"`
	DiskWrite    uint64           `json:"disk_write"`
	ProcessCount int              `json:"process_count"`
	Components   []ThermalReading `json:"components"`
	Processes    []ProcessNode    `json:"top_processes"`
	RecordedAt   time.Time        `json:"recorded_at"`
}

// MemoryPercent returns used memory as a percentage of total, or 0 when the
// total is unknown.
func (s SystemSnapshot) MemoryPercent() float64 {
	if s.MemoryTotal == 0 {
		return 0
	}
	return float64(s.MemoryUsed) / float64(s.MemoryTotal) * 100
}
