package handler

import (
	"net/http"

	"github.com/appforge-ai/assistant-platform/internal/store"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	contexts store.ContextStore
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(contexts store.ContextStore) *HealthHandler {
	return &HealthHandler{contexts: contexts}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if _, err := h.contexts.ListIDs(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"reason": "context store unavailable",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}
