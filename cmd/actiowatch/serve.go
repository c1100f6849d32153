package main

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"actiowatch/internal/auth"
	"actiowatch/internal/clock"
	"actiowatch/internal/config"
	"actiowatch/internal/domain"
	"actiowatch/internal/event"
	"actiowatch/internal/logger"
	"actiowatch/internal/metrics"
	"actiowatch/internal/notify"
	"actiowatch/internal/settings"
	"actiowatch/internal/storage/sqlite"
	"actiowatch/internal/transport/http"
	"actiowatch/internal/transport/http/response"
	"actiowatch/internal/transport/websocket"
	"actiowatch/internal/workers"
)

const cleanupInterval = time.Hour

func runServe(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	db, err := sqlite.NewSqliteDB(cfg.DBPath, log)
	if err != nil {
		return fmt.Errorf("init db: %w", err)
	}
	defer db.Close()

	clk := clock.Real()

	// Repositories
	settingsRepo := sqlite.NewSettingsRepository(db)
	notificationRepo := sqlite.NewNotificationRepository(db)

	state := settings.NewState(settingsRepo, log, cfg.NotificationsEnabled)
	if err := state.Load(ctx); err != nil {
		log.Warn("settings: using defaults", "error", err)
	}

	bus := event.New(log)

	// Subscribers
	store := metrics.NewSnapshotStore()
	bus.Subscribe(domain.WsEventStatsUpdate, func(e any) {
		if snap, ok := e.(domain.SystemSnapshot); ok {
			store.Set(snap)
		}
	})

	hub := websocket.NewHub(ctx, log.With("component", "ws"))
	websocket.Register(bus, hub)

	notifier := append(notifiers(cfg, log), notify.NewBus(bus), notify.NewHistory(notificationRepo))
	mon := newMonitor(cfg, log, clk, bus, notifier, state)

	// Services
	authService := auth.NewService(cfg.AdminPasswordHash, cfg.JWTSecret, cfg.JWTExpiry, clk)
	if !authService.Enabled() {
		log.Warn("auth disabled: only loopback clients are served; set JWT_SECRET and ADMIN_PASSWORD_HASH to expose the api")
	}

	// HTTP
	writer := response.NewJSONWriter(log)
	wsHandler := websocket.NewHandler(hub, authService, log, cfg.AllowedOrigins)

	router := http.NewRouter(cfg, &http.RouterDeps{
		Ws:            wsHandler.Serve,
		Auth:          http.NewAuthHandler(authService, writer),
		Metrics:       http.NewMetricsHandler(store, writer),
		Settings:      http.NewSettingsHandler(state, writer, log),
		Notifications: http.NewNotificationHandler(notificationRepo, writer),
		AuthService:   authService,
	})
	server := http.NewServer(router, cfg.Address, log)

	scheduler := workers.NewScheduler(clk, log)
	cleanup := workers.NewNotificationCleanupWorker(notificationRepo, cfg.NotificationRetention, clk, log)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		hub.Run()
		return nil
	})

	g.Go(func() error {
		return mon.Run(gCtx)
	})

	g.Go(func() error {
		return server.Start(gCtx)
	})

	g.Go(func() error {
		return scheduler.RunByDuration(gCtx, cleanupInterval, cleanup)
	})

	// the hub follows the parent ctx; stop it when any member fails
	g.Go(func() error {
		<-gCtx.Done()
		hub.Stop()
		return nil
	})

	return g.Wait()
}
