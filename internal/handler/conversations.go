// Package handler provides HTTP handlers for the API.
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/appforge-ai/assistant-platform/internal/middleware"
	"github.com/appforge-ai/assistant-platform/internal/service"
	"github.com/appforge-ai/assistant-platform/pkg/logger"
)

// ConversationHandler handles conversation endpoints.
type ConversationHandler struct {
	service *service.ConversationService
	logger  *logger.Logger
}

// NewConversationHandler creates a new conversation handler.
func NewConversationHandler(svc *service.ConversationService, log *logger.Logger) *ConversationHandler {
	return &ConversationHandler{
		service: svc,
		logger:  log,
	}
}

// Create handles POST /api/v1/conversations
func (h *ConversationHandler) Create(w http.ResponseWriter, r *http.Request) {
	conv, err := h.service.Create(r.Context())
	if err != nil {
		h.logger.Error("failed to create conversation")
		writeError(w, http.StatusInternalServerError, "failed to create conversation")
		return
	}
	writeJSON(w, http.StatusCreated, conv)
}

// List handles GET /api/v1/conversations
func (h *ConversationHandler) List(w http.ResponseWriter, r *http.Request) {
	convs, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list conversations")
		writeError(w, http.StatusInternalServerError, "failed to list conversations")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"conversations": convs,
		"total":         len(convs),
	})
}

// Get handles GET /api/v1/conversations/:id
func (h *ConversationHandler) Get(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "id")
	if err := middleware.ValidateConversationID(conversationID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	conv, err := h.service.Get(r.Context(), conversationID)
	if err != nil {
		writeError(w, http.StatusNotFound, "conversation not found")
		return
	}
	writeJSON(w, http.StatusOK, conv)
}

// Delete handles DELETE /api/v1/conversations/:id
func (h *ConversationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "id")
	if err := middleware.ValidateConversationID(conversationID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.Delete(r.Context(), conversationID); err != nil {
		writeError(w, http.StatusNotFound, "conversation not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
