package domain

// ProcessSample is one live OS process as read during a single tick. It is
// rebuilt every tick; only the PID links samples across ticks.
type ProcessSample struct {
	PID       int32  `json:"pid"`
	ParentPID *int32 `json:"parent_pid,omitempty"`

	// StartTime is milliseconds since the epoch. Zero means the OS did
	// not let us read it.
	StartTime uint64 `json:"start_time"`

	Name           string  `json:"name"`
	CPUPercent     float64 `json:"cpu_percent"`
	MemoryBytes    uint64  `json:"memory_bytes"`
	DiskReadBytes  uint64  `json:"disk_read_bytes"`
	DiskWriteBytes uint64  `json:"disk_write_bytes"`
	ThreadCount    uint64  `json:"thread_count"`
}

// Parent returns the declared parent pid and whether one was declared.
func (s ProcessSample) Parent() (int32, bool) {
	if s.ParentPID == nil {
		return 0, false
	}
	return *s.ParentPID, true
}

// ProcessNode is a ProcessSample placed in the process forest. CPUPercent is
// normalized by core count. The Total fields hold the subtree aggregate or,
// when aggregation is off, the node's own values.
type ProcessNode struct {
	PID            int32   `json:"pid"`
	Name           string  `json:"name"`
	StartTime      uint64  `json:"start_time"`
	CPUPercent     float64 `json:"cpu_usage"`
	MemoryBytes    uint64  `json:"memory_usage"`
	DiskReadBytes  uint64  `json:"disk_read"`
	DiskWriteBytes uint64  `json:"disk_write"`
	ThreadCount    uint64  `json:"thread_count"`

	TotalCPUPercent     float64 `json:"total_cpu_usage"`
	TotalMemoryBytes    uint64  `json:"total_memory_usage"`
	TotalDiskReadBytes  uint64  `json:"total_disk_read"`
	TotalDiskWriteBytes uint64  `json:"total_disk_write"`

	Children []ProcessNode `json:"children"`
}

// ProcessIdentity distinguishes a process from a later one that reused its
// pid.
type ProcessIdentity struct {
	PID       int32
	StartTime uint64
}

func (s ProcessSample) Identity() ProcessIdentity {
	return ProcessIdentity{PID: s.PID, StartTime: s.StartTime}
}

func (n ProcessNode) Identity() ProcessIdentity {
	return ProcessIdentity{PID: n.PID, StartTime: n.StartTime}
}
