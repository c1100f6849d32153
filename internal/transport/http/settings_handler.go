package http

import (
	"context"
	"net/http"

	"actiowatch/internal/domain"
	"actiowatch/internal/logger"
	"actiowatch/internal/transport/http/response"
)

type Settings interface {
	NotificationsEnabled() bool
	SetNotificationsEnabled(ctx context.Context, enabled bool) error
	CurrentView() string
	SetCurrentView(ctx context.Context, view string) error
}

type SettingsHandler struct {
	base
	settings Settings
	log      logger.Logger
}

func NewSettingsHandler(settings Settings, writer response.ResponseWriter, log logger.Logger) *SettingsHandler {
	return &SettingsHandler{base: newBase(writer), settings: settings, log: log}
}

func (h *SettingsHandler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	enabled := h.settings.NotificationsEnabled()
	h.writer.Write(w, http.StatusOK, &response.Response{
		Message: "OK",
		Data:    domain.NotificationsSetting{Enabled: &enabled},
	})
}

// SetNotifications applies the toggle immediately. A persistence failure
// is logged; the in-memory value still holds until restart.
func (h *SettingsHandler) SetNotifications(w http.ResponseWriter, r *http.Request) {
	var req domain.NotificationsSetting
	if err := h.decoder.Decode(r, &req); err != nil {
		h.writer.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := h.validator.Validate(req); len(errs) > 0 {
		h.writer.WriteValidationError(w, errs)
		return
	}

	if err := h.settings.SetNotificationsEnabled(r.Context(), *req.Enabled); err != nil {
		h.log.Error("settings: persist failed", "key", domain.SettingNotificationsEnabled, "error", err)
	}

	h.writer.Write(w, http.StatusOK, &response.Response{
		Message: "Notifications updated",
		Data:    req,
	})
}

func (h *SettingsHandler) GetView(w http.ResponseWriter, r *http.Request) {
	h.writer.Write(w, http.StatusOK, &response.Response{
		Message: "OK",
		Data:    domain.ViewSetting{View: h.settings.CurrentView()},
	})
}

func (h *SettingsHandler) SetView(w http.ResponseWriter, r *http.Request) {
	var req domain.ViewSetting
	if err := h.decoder.Decode(r, &req); err != nil {
		h.writer.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := h.validator.Validate(req); len(errs) > 0 {
		h.writer.WriteValidationError(w, errs)
		return
	}

	if err := h.settings.SetCurrentView(r.Context(), req.View); err != nil {
		h.log.Error("settings: persist failed", "key", domain.SettingCurrentView, "error", err)
	}

	h.writer.Write(w, http.StatusOK, &response.Response{
		Message: "View updated",
		Data:    req,
	})
}
