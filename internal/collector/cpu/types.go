package cpu

import (
	"context"
	"time"
)

type Collector struct {
	percent func(ctx context.Context, interval time.Duration, percpu bool) ([]float64, error)
	counts  func(ctx context.Context, logical bool) (int, error)

	cores int
}

type CPUMetric struct {
	Usage float64 `json:"usage"`
	Cores int     `json:"cores"`
}
