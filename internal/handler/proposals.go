package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/appforge-ai/assistant-platform/internal/middleware"
	"github.com/appforge-ai/assistant-platform/internal/model"
	"github.com/appforge-ai/assistant-platform/internal/orchestrator"
	"github.com/appforge-ai/assistant-platform/pkg/logger"
)

// ProposalHandler handles proposal resolution endpoints.
type ProposalHandler struct {
	router *orchestrator.Router
	logger *logger.Logger
}

// NewProposalHandler creates a new proposal handler.
func NewProposalHandler(router *orchestrator.Router, log *logger.Logger) *ProposalHandler {
	return &ProposalHandler{
		router: router,
		logger: log,
	}
}

// Get handles GET /api/v1/proposals/:id
func (h *ProposalHandler) Get(w http.ResponseWriter, r *http.Request) {
	proposalID := chi.URLParam(r, "id")
	if err := middleware.ValidateProposalID(proposalID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, ok := h.router.PendingProposal(proposalID)
	if !ok {
		writeError(w, http.StatusNotFound, "proposal not found or already resolved")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Resolve handles POST /api/v1/proposals/:id/resolve
func (h *ProposalHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	proposalID := chi.URLParam(r, "id")
	if err := middleware.ValidateProposalID(proposalID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req model.ResolveProposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	outcome, err := h.router.ResolveProposal(r.Context(), proposalID, req.Accept)
	if err != nil {
		h.logger.Warn("proposal resolution failed",
			zap.String("proposal_id", proposalID),
			zap.Error(err),
		)
		writeError(w, http.StatusNotFound, "proposal not found or already resolved")
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}
