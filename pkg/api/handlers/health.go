package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"portal-hq/chronicle/pkg/actions"
)

// readinessTimeout bounds the storage ping during readiness checks.
const readinessTimeout = 2 * time.Second

// HealthHandler handles health check requests for liveness probes.
type HealthHandler struct{}

// NewHealthHandler creates a new health check handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// ServeHTTP implements http.Handler for liveness checks.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response := map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Unix(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// ReadyHandler handles readiness check requests. The service is ready when
// the action store answers a probe query.
type ReadyHandler struct {
	storage actions.Storage
}

// NewReadyHandler creates a new readiness check handler.
func NewReadyHandler(storage actions.Storage) *ReadyHandler {
	return &ReadyHandler{storage: storage}
}

// ServeHTTP implements http.Handler for readiness checks.
func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	status := "ready"
	statusCode := http.StatusOK

	if _, err := h.storage.Count(ctx, &actions.Query{}); err != nil {
		status = "not_ready"
		statusCode = http.StatusServiceUnavailable
	}

	response := map[string]any{
		"status":    status,
		"timestamp": time.Now().Unix(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(response)
}
