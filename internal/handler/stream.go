package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/appforge-ai/assistant-platform/internal/events"
	"github.com/appforge-ai/assistant-platform/internal/middleware"
	"github.com/appforge-ai/assistant-platform/pkg/logger"
)

// heartbeatInterval keeps idle SSE connections from being reaped by
// intermediaries.
const heartbeatInterval = 15 * time.Second

// StreamHandler streams a conversation's assistant events over SSE.
type StreamHandler struct {
	bus    *events.Bus
	logger *logger.Logger
}

// NewStreamHandler creates a new stream handler.
func NewStreamHandler(bus *events.Bus, log *logger.Logger) *StreamHandler {
	return &StreamHandler{
		bus:    bus,
		logger: log,
	}
}

// Stream handles GET /api/v1/conversations/:id/stream
func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "id")
	if err := middleware.ValidateConversationID(conversationID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	ch, cancel := h.bus.Subscribe(conversationID)
	defer cancel()

	sendSSEEvent(w, flusher, "connected", map[string]string{
		"conversation_id": conversationID,
	})

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			fmt.Fprint(w, ": heartbeat\n\n")
			flusher.Flush()
		case ev, open := <-ch:
			if !open {
				return
			}
			sendSSEEvent(w, flusher, string(ev.Type), ev)
		}
	}
}

func sendSSEEvent(w http.ResponseWriter, flusher http.Flusher, event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	flusher.Flush()
}
