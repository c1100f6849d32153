package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"actiowatch/internal/clock"
	"actiowatch/internal/config"
	"actiowatch/internal/domain"
	"actiowatch/internal/event"
	"actiowatch/internal/logger"
	"actiowatch/internal/metrics"
	"actiowatch/internal/monitor"
	"actiowatch/internal/notify"
	"actiowatch/internal/proctree"
	"actiowatch/internal/watchdog"
)

func main() {
	flags := pflag.NewFlagSet("actiowatch", pflag.ExitOnError)
	mode := flags.StringP("mode", "m", "", "run mode: serve, stream or snapshot (overrides MODE)")
	addr := flags.String("addr", "", "http listen address (overrides HTTP_ADDR)")
	envFile := flags.String("env-file", "", "env file to load instead of .env")
	format := flags.String("format", "", "stream encoding: json or cbor (overrides STREAM_FORMAT)")
	flags.Parse(os.Args[1:])

	cfg, err := loadConfig(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		os.Exit(1)
	}
	if *mode != "" {
		cfg.Mode = *mode
	}
	if *addr != "" {
		cfg.Address = *addr
	}
	if *format != "" {
		cfg.StreamFormat = *format
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("actiowatch: starting", "mode", cfg.Mode, "interval", cfg.Interval)

	switch cfg.Mode {
	case config.ModeServe:
		err = runServe(ctx, cfg, log)
	case config.ModeStream:
		err = runStream(ctx, cfg, log)
	case config.ModeSnapshot:
		err = runSnapshot(ctx, cfg, log)
	default:
		err = fmt.Errorf("unknown mode %q", cfg.Mode)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("actiowatch failed", "error", err)
		os.Exit(1)
	}

	log.Info("actiowatch stopped gracefully")
}

func loadConfig(envFile string) (*config.Config, error) {
	if envFile != "" {
		return config.LoadFile(envFile)
	}
	return config.Load(), nil
}

func aggregation(cfg *config.Config) proctree.Aggregation {
	if cfg.AggregateSubtree {
		return proctree.AggregateSubtree
	}
	return proctree.AggregateSelf
}

// notifiers returns the delivery targets every mode shares; callers append
// their own.
func notifiers(cfg *config.Config, log logger.Logger) notify.Multi {
	targets := notify.Multi{notify.NewLog(log)}
	if cfg.DesktopNotifications {
		targets = append(targets, notify.NewDesktop())
	}
	return targets
}

func newMonitor(cfg *config.Config, log logger.Logger, clk clock.Clock, bus *event.Bus, notifier domain.Notifier, toggles monitor.Toggles) *monitor.Monitor {
	wd := watchdog.New(notifier, clk, log.With("component", "watchdog"), notify.ResolveIcon(cfg.NotificationIcon))

	return monitor.New(
		metrics.NewSampler(log.With("component", "sampler")),
		bus,
		wd,
		toggles,
		clk,
		log.With("component", "monitor"),
		monitor.Options{Interval: cfg.Interval, Aggregation: aggregation(cfg)},
	)
}
