package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/appforge-ai/assistant-platform/internal/middleware"
	"github.com/appforge-ai/assistant-platform/internal/model"
	"github.com/appforge-ai/assistant-platform/internal/orchestrator"
	"github.com/appforge-ai/assistant-platform/internal/store"
	"github.com/appforge-ai/assistant-platform/pkg/logger"
)

// MessageHandler handles message endpoints.
type MessageHandler struct {
	router   *orchestrator.Router
	contexts store.ContextStore
	logger   *logger.Logger
}

// NewMessageHandler creates a new message handler.
func NewMessageHandler(router *orchestrator.Router, contexts store.ContextStore, log *logger.Logger) *MessageHandler {
	return &MessageHandler{
		router:   router,
		contexts: contexts,
		logger:   log,
	}
}

// Send handles POST /api/v1/conversations/:id/messages
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "id")
	if err := middleware.ValidateConversationID(conversationID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req model.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := middleware.ValidateMessageContent(req.Content); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := middleware.ValidateModelName(req.Model); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	outcome, err := h.router.HandleMessage(r.Context(), conversationID, req.Model, req.Content)
	if err != nil {
		h.logger.Error("message handling failed",
			zap.String("conversation_id", conversationID),
			zap.String("correlation_id", middleware.GetCorrelationID(r.Context())),
			zap.Error(err),
		)
		writeError(w, http.StatusBadGateway, "chat backend unavailable")
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}

// History handles GET /api/v1/conversations/:id/messages
func (h *MessageHandler) History(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "id")
	if err := middleware.ValidateConversationID(conversationID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	c := h.contexts.Load(r.Context(), conversationID)
	writeJSON(w, http.StatusOK, map[string]any{
		"conversation_id":  c.ConversationID,
		"messages":         c.RemoteMessageHistory,
		"executed_actions": c.ExecutedActions,
	})
}
