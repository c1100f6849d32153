// Package thermal
package thermal

import (
	"context"
	"fmt"

	"actiowatch/internal/domain"
	"actiowatch/internal/logger"

	"github.com/shirou/gopsutil/v4/sensors"
)

func NewCollector(log logger.Logger) *Collector {
	return &Collector{
		log:          log,
		temperatures: sensors.TemperaturesWithContext,
		peaks:        make(map[string]float64),
	}
}

// Collect returns one reading per sensor. Machines without sensors yield an
// empty slice. Sensor drivers often fail individually; the readings that did
// succeed are kept.
func (c *Collector) Collect(ctx context.Context) ([]domain.ThermalReading, error) {
	stats, err := c.temperatures(ctx)
	if err != nil {
		if len(stats) == 0 {
			return []domain.ThermalReading{}, fmt.Errorf("read sensors: %w", err)
		}
		c.log.Debug("thermal: partial sensor read", "error", err, "readings", len(stats))
	}

	readings := make([]domain.ThermalReading, 0, len(stats))
	for _, s := range stats {
		peak := max(c.peaks[s.SensorKey], s.Temperature)
		c.peaks[s.SensorKey] = peak

		r := domain.ThermalReading{
			Label:          s.SensorKey,
			Temperature:    s.Temperature,
			MaxTemperature: peak,
		}
		if s.Critical > 0 {
			critical := s.Critical
			r.CriticalTemperature = &critical
		}
		readings = append(readings, r)
	}

	return readings, nil
}
