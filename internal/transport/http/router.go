package http

import (
	"net/http"

	"actiowatch/internal/config"
	"actiowatch/internal/domain"
	"actiowatch/internal/transport/http/middleware"
)

type RouterDeps struct {
	Ws func(http.ResponseWriter, *http.Request)

	Auth          *AuthHandler
	Metrics       *MetricsHandler
	Settings      *SettingsHandler
	Notifications *NotificationHandler

	AuthService domain.AuthService
}

func NewRouter(cfg *config.Config, deps *RouterDeps) http.Handler {
	mux := http.NewServeMux()

	globalMw := middleware.New()
	globalMw.Use(middleware.CORS(cfg.AllowedOrigins))

	localStack := middleware.New()
	localStack.Use(middleware.LocalOnly(deps.AuthService))

	userStack := middleware.New()
	userStack.Use(middleware.LocalOnly(deps.AuthService))
	userStack.Use(middleware.JWT(deps.AuthService))

	// HEALTH
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// WEBSOCKET
	mux.Handle("GET /ws", localStack.ThenFunc(deps.Ws))

	// AUTH
	mux.HandleFunc("POST /auth/login", deps.Auth.Login)
	mux.HandleFunc("POST /auth/logout", deps.Auth.Logout)

	// METRICS
	mux.Handle("GET /metrics", userStack.ThenFunc(deps.Metrics.Latest))

	// SETTINGS
	mux.Handle("GET /settings/notifications", userStack.ThenFunc(deps.Settings.GetNotifications))
	mux.Handle("PUT /settings/notifications", userStack.ThenFunc(deps.Settings.SetNotifications))
	mux.Handle("GET /view", userStack.ThenFunc(deps.Settings.GetView))
	mux.Handle("PUT /view", userStack.ThenFunc(deps.Settings.SetView))

	// NOTIFICATION HISTORY
	mux.Handle("GET /notifications", userStack.ThenFunc(deps.Notifications.Index))

	return globalMw.Apply(mux)
}
