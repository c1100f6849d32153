// Package network
package network

import (
	"context"
	"fmt"
	"slices"

	"actiowatch/internal/logger"

	"github.com/shirou/gopsutil/v4/net"
)

func NewCollector(log logger.Logger) *Collector {
	return &Collector{
		log:         log,
		counters:    net.IOCountersWithContext,
		interfaces:  net.InterfacesWithContext,
		rescanEvery: DefaultRescanEvery,
		last:        make(map[string]counter),
	}
}

func (c *Collector) Collect(ctx context.Context) (NetworkMetric, error) {
	c.ticks++
	if c.tracked == nil || c.ticks%c.rescanEvery == 0 {
		c.rescan(ctx)
	}

	stats, err := c.counters(ctx, true)
	if err != nil {
		return NetworkMetric{}, fmt.Errorf("read interface counters: %w", err)
	}

	var m NetworkMetric
	next := make(map[string]counter, len(stats))

	for _, s := range stats {
		if !c.isTracked(s.Name) {
			continue
		}

		curr := counter{sent: s.BytesSent, recv: s.BytesRecv}
		next[s.Name] = curr

		prev, ok := c.last[s.Name]
		if !ok {
			continue
		}
		// A counter that went backwards was reset; count nothing for it.
		if curr.sent >= prev.sent {
			m.Upload += curr.sent - prev.sent
		}
		if curr.recv >= prev.recv {
			m.Download += curr.recv - prev.recv
		}
	}

	c.last = next
	return m, nil
}

func (c *Collector) rescan(ctx context.Context) {
	list, err := c.interfaces(ctx)
	if err != nil {
		c.log.Debug("network: interface rescan failed, keeping previous list", "error", err)
		return
	}

	tracked := make(map[string]bool, len(list))
	for _, iface := range list {
		if slices.Contains(iface.Flags, "loopback") {
			continue
		}
		tracked[iface.Name] = true
	}

	c.tracked = tracked
	c.log.Debug("network: interfaces rescanned", "tracked", len(tracked))
}

func (c *Collector) isTracked(name string) bool {
	if c.tracked == nil {
		return name != "lo"
	}
	return c.tracked[name]
}
