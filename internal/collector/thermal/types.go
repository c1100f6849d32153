package thermal

import (
	"context"

	"actiowatch/internal/logger"

	"github.com/shirou/gopsutil/v4/sensors"
)

type Collector struct {
	log logger.Logger

	temperatures func(ctx context.Context) ([]sensors.TemperatureStat, error)

	// highest temperature seen per label since start
	peaks map[string]float64
}
