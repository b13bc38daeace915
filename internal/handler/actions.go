package handler

import (
	"net/http"

	"github.com/appforge-ai/assistant-platform/internal/action"
)

// ActionHandler exposes the capability catalog for introspection.
type ActionHandler struct {
	registry *action.Registry
}

// NewActionHandler creates a new action handler.
func NewActionHandler(registry *action.Registry) *ActionHandler {
	return &ActionHandler{registry: registry}
}

// List handles GET /api/v1/actions
func (h *ActionHandler) List(w http.ResponseWriter, r *http.Request) {
	descs := h.registry.DescribeAll()
	writeJSON(w, http.StatusOK, map[string]any{
		"actions": descs,
		"total":   len(descs),
	})
}
