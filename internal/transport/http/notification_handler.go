package http

import (
	"net/http"
	"strconv"

	"actiowatch/internal/domain"
	"actiowatch/internal/transport/http/response"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

type NotificationHandler struct {
	base
	repo domain.NotificationRepository
}

func NewNotificationHandler(repo domain.NotificationRepository, writer response.ResponseWriter) *NotificationHandler {
	return &NotificationHandler{base: newBase(writer), repo: repo}
}

// Index lists recent notifications, newest first. ?limit= caps the count.
func (h *NotificationHandler) Index(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			h.writer.WriteValidationError(w, map[string]string{"limit": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	items, err := h.repo.Recent(r.Context(), limit)
	if err != nil {
		h.writer.WriteError(w, http.StatusInternalServerError, "failed to list notifications")
		return
	}

	h.writer.Write(w, http.StatusOK, &response.Response{
		Message: "OK",
		Data:    items,
		Meta:    map[string]int{"limit": limit},
	})
}
