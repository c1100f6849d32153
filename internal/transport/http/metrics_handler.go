package http

import (
	"errors"
	"net/http"

	"actiowatch/internal/domain"
	"actiowatch/internal/transport/http/response"
)

type SnapshotReader interface {
	Latest() (domain.SystemSnapshot, error)
}

type MetricsHandler struct {
	base
	store SnapshotReader
}

func NewMetricsHandler(store SnapshotReader, writer response.ResponseWriter) *MetricsHandler {
	return &MetricsHandler{base: newBase(writer), store: store}
}

func (h *MetricsHandler) Latest(w http.ResponseWriter, r *http.Request) {
	snap, err := h.store.Latest()
	if err != nil {
		if errors.Is(err, domain.ErrSnapshotNotReady) {
			h.writer.WriteError(w, http.StatusServiceUnavailable, "no snapshot yet")
			return
		}
		h.writer.WriteError(w, http.StatusInternalServerError, "failed to get latest metrics")
		return
	}

	h.writer.Write(w, http.StatusOK, &response.Response{
		Message: "OK",
		Data:    snap,
	})
}
