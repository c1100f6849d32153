// Package metrics reads the host through the collectors and turns a reading
// plus the process forest into the snapshot published each tick.
package metrics

import (
	"context"

	"actiowatch/internal/collector/cpu"
	"actiowatch/internal/collector/memory"
	"actiowatch/internal/collector/network"
	"actiowatch/internal/collector/process"
	"actiowatch/internal/collector/thermal"
	"actiowatch/internal/domain"
	"actiowatch/internal/logger"
)

// Source produces one Reading per call. Implementations keep whatever
// state they need between calls (CPU baselines, network counters).
type Source interface {
	Refresh(ctx context.Context) domain.Reading
}

type Sampler struct {
	cpu     *cpu.Collector
	memory  *memory.Collector
	network *network.Collector
	process *process.Collector
	thermal *thermal.Collector
	log     logger.Logger
}

func NewSampler(log logger.Logger) *Sampler {
	return &Sampler{
		cpu:     cpu.NewCollector(),
		memory:  memory.NewCollector(),
		network: network.NewCollector(log),
		process: process.NewCollector(log),
		thermal: thermal.NewCollector(log),
		log:     log,
	}
}

func (s *Sampler) Refresh(ctx context.Context) domain.Reading {
	reading := domain.Reading{
		Processes:  []domain.ProcessSample{},
		Components: []domain.ThermalReading{},
	}

	if val, err := s.cpu.Collect(ctx); err != nil {
		s.log.Error("collector", "name", "cpu", "error", err)
		reading.CoreCount = val.Cores
	} else {
		reading.GlobalCPUPercent = val.Usage
		reading.CoreCount = val.Cores
	}

	if val, err := s.memory.Collect(ctx); err != nil {
		s.log.Error("collector", "name", "memory", "error", err)
	} else {
		reading.MemoryUsed = val.Used
		reading.MemoryTotal = val.Total
	}

	if val, err := s.network.Collect(ctx); err != nil {
		s.log.Error("collector", "name", "network", "error", err)
	} else {
		reading.NetworkUp = val.Upload
		reading.NetworkDown = val.Download
	}

	if val, err := s.process.Collect(ctx); err != nil {
		s.log.Error("collector", "name", "process", "error", err)
	} else {
		reading.Processes = val
	}

	if val, err := s.thermal.Collect(ctx); err != nil {
		s.log.Debug("collector", "name", "thermal", "error", err)
	} else {
		reading.Components = val
	}

	return reading
}
