package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/appforge-ai/assistant-platform/internal/middleware"
	"github.com/appforge-ai/assistant-platform/internal/upload"
	"github.com/appforge-ai/assistant-platform/pkg/logger"
)

// AttachmentHandler pushes uploaded attachments to object storage. It is
// nil-safe: when no upload endpoint is configured the routes return 503.
type AttachmentHandler struct {
	uploader *upload.Uploader
	logger   *logger.Logger
}

// NewAttachmentHandler creates a new attachment handler.
func NewAttachmentHandler(uploader *upload.Uploader, log *logger.Logger) *AttachmentHandler {
	return &AttachmentHandler{
		uploader: uploader,
		logger:   log,
	}
}

// Upload handles POST /api/v1/conversations/:id/attachments
func (h *AttachmentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.uploader == nil {
		writeError(w, http.StatusServiceUnavailable, "attachment storage not configured")
		return
	}

	conversationID := chi.URLParam(r, "id")
	if err := middleware.ValidateConversationID(conversationID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	name := r.URL.Query().Get("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "name query parameter is required")
		return
	}

	size, err := h.uploader.Upload(r.Context(), conversationID+"/"+name, r.Body)
	if err != nil {
		if errors.Is(err, upload.ErrCancelled) {
			writeError(w, http.StatusConflict, "upload cancelled")
			return
		}
		h.logger.Error("attachment upload failed",
			zap.String("conversation_id", conversationID),
			zap.String("name", name),
			zap.Error(err))
		writeError(w, http.StatusBadGateway, "upload failed")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"name": name,
		"size": size,
	})
}

// Cancel handles POST /api/v1/conversations/:id/attachments/cancel
func (h *AttachmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if h.uploader == nil {
		writeError(w, http.StatusServiceUnavailable, "attachment storage not configured")
		return
	}
	h.uploader.Cancel()
	w.WriteHeader(http.StatusAccepted)
}
