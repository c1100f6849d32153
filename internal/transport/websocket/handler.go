package websocket

import (
	"net/http"
	"net/url"
	"slices"
	"strings"

	"actiowatch/internal/domain"
	"actiowatch/internal/logger"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type Handler struct {
	hub      *Hub
	auth     domain.AuthService
	upgrader websocket.Upgrader
	log      logger.Logger
}

// NewHandler only accepts same-origin upgrades when allowedOrigins is empty.
func NewHandler(hub *Hub, auth domain.AuthService, log logger.Logger, allowedOrigins []string) *Handler {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			if len(allowedOrigins) == 0 {
				if !sameOrigin(origin, r.Host) {
					log.Warn("ws auth: cross-origin upgrade rejected", "origin", origin)
					return false
				}
				return true
			}

			if !slices.Contains(allowedOrigins, origin) {
				log.Warn("ws auth: origin rejected", "origin", origin)
				return false
			}
			return true
		},
	}

	return &Handler{
		hub:      hub,
		auth:     auth,
		upgrader: upgrader,
		log:      log,
	}
}

func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	if h.auth.Enabled() {
		if _, err := h.auth.Verify(tokenFromRequest(r)); err != nil {
			h.log.Warn("ws auth: invalid credentials", "remote", r.RemoteAddr)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("ws: upgrade failed", "error", err)
		return
	}

	c := NewClient(h.hub, conn, h.log, uuid.NewString())
	h.hub.enqueueRegister(c)

	go c.writePump()
	go c.readPump()
}

func sameOrigin(origin, host string) bool {
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, host)
}

// tokenFromRequest looks at the access_token cookie, then the bearer
// header, then the token query parameter browsers use for websockets.
func tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie("access_token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return token
	}
	return r.URL.Query().Get("token")
}
