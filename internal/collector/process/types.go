package process

import (
	"actiowatch/internal/logger"

	"github.com/shirou/gopsutil/v4/process"
)

type Collector struct {
	log logger.Logger

	// handles keeps one gopsutil handle per live pid so that CPU percent
	// is measured against the previous collection.
	handles map[int32]*handle
}

type handle struct {
	proc    *process.Process
	created int64
}
