package handler

import (
	"context"
	"log/slog"
	"net/http"
)

// Pinger is what the health check needs from the store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the API root and the health probe.
type HealthHandler struct {
	store  Pinger
	logger *slog.Logger
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(store Pinger, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{store: store, logger: logger}
}

// HandleRoot identifies the API.
//
// HTTP: GET /
func (h *HealthHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    "devhub api",
		"status":  http.StatusOK,
		"message": "ok",
	})
}

// HandleHealth pings the store.
//
// HTTP: GET /health → 200 when the database answers, 503 when it doesn't.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		h.logger.Error("health check failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": http.StatusServiceUnavailable,
			"detail": "database unreachable",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  http.StatusOK,
		"message": "healthy",
	})
}
