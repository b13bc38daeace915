// Package orchestrator routes backend replies: plain text passes through,
// safe actions dispatch immediately, destructive actions become proposals
// awaiting a human decision.
package orchestrator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/appforge-ai/assistant-platform/internal/action"
	"github.com/appforge-ai/assistant-platform/internal/llm"
	"github.com/appforge-ai/assistant-platform/internal/model"
	"github.com/appforge-ai/assistant-platform/internal/prompt"
	"github.com/appforge-ai/assistant-platform/internal/store"
	"github.com/appforge-ai/assistant-platform/pkg/logger"
	"github.com/appforge-ai/assistant-platform/pkg/metrics"
)

// OutcomeKind discriminates how a message or proposal resolution ended.
type OutcomeKind string

const (
	// OutcomePlainReply means the backend replied with prose.
	OutcomePlainReply OutcomeKind = "plain_reply"
	// OutcomeExecuted means an action was dispatched and returned a result.
	OutcomeExecuted OutcomeKind = "executed"
	// OutcomeProposed means a destructive action awaits a human decision.
	OutcomeProposed OutcomeKind = "proposed"
	// OutcomeDiscarded means a proposal was dropped without dispatch.
	OutcomeDiscarded OutcomeKind = "discarded"
)

// Outcome is what the router hands back to the caller for one inbound
// message or one proposal resolution.
type Outcome struct {
	Kind      OutcomeKind         `json:"kind"`
	Text      string              `json:"text,omitempty"`
	Result    *model.ActionResult `json:"result,omitempty"`
	Proposal  *model.Proposal     `json:"proposal,omitempty"`
	ProjectID string              `json:"project_id,omitempty"`
}

// EventSink receives router events for the UI feed. May be nil.
type EventSink interface {
	Publish(ctx context.Context, ev *model.AssistantEvent)
}

// Router drives the per-message state machine. It owns a single-worker
// queue, so messages for this backend client instance are handled strictly
// one at a time; action execution happens synchronously on that worker.
type Router struct {
	registry *action.Registry
	builder  *prompt.Builder
	contexts store.ContextStore
	env      *action.Env
	backend  llm.Client
	events   EventSink
	logger   *logger.Logger

	defaultModel string
	queue        *taskQueue

	mu      sync.Mutex
	pending map[string]*model.Proposal
}

// NewRouter wires a router around one chat backend client instance.
func NewRouter(
	registry *action.Registry,
	builder *prompt.Builder,
	contexts store.ContextStore,
	env *action.Env,
	backend llm.Client,
	events EventSink,
	defaultModel string,
	log *logger.Logger,
) *Router {
	return &Router{
		registry:     registry,
		builder:      builder,
		contexts:     contexts,
		env:          env,
		backend:      backend,
		events:       events,
		logger:       log,
		defaultModel: defaultModel,
		queue:        newTaskQueue(64),
		pending:      make(map[string]*model.Proposal),
	}
}

// Close drains and stops the worker queue.
func (r *Router) Close() {
	r.queue.Close()
}

// HandleMessage enriches the user message, sends it to the backend,
// classifies the reply and either passes it through, dispatches it, or
// raises a proposal. Transport errors leave the context unmodified.
func (r *Router) HandleMessage(ctx context.Context, conversationID, modelName, userMessage string) (*Outcome, error) {
	var (
		outcome *Outcome
		err     error
	)
	if qerr := r.queue.Run(func() {
		outcome, err = r.handleMessage(ctx, conversationID, modelName, userMessage)
	}); qerr != nil {
		return nil, qerr
	}
	return outcome, err
}

func (r *Router) handleMessage(ctx context.Context, conversationID, modelName, userMessage string) (*Outcome, error) {
	c := r.contexts.Load(ctx, conversationID)

	var proj *model.Project
	if c.CurrentProjectID != "" {
		if p, err := r.env.Projects.Get(ctx, c.CurrentProjectID); err == nil {
			proj = p
		}
	}

	promptText := r.builder.Build(userMessage, c, proj)

	if modelName == "" {
		modelName = r.defaultModel
	}
	start := time.Now()
	resp, err := r.backend.Complete(ctx, &llm.CompletionRequest{
		Model:    modelName,
		Messages: []llm.ChatMessage{{Role: string(model.RoleUser), Content: promptText}},
	})
	if err != nil {
		// Transport failure is terminal: surfaced to the caller, context
		// untouched so the user can simply resubmit.
		r.publish(ctx, &model.AssistantEvent{
			ConversationID: conversationID,
			Type:           model.EventTypeError,
			Text:           "backend unavailable",
		})
		return nil, fmt.Errorf("chat backend: %w", err)
	}
	metrics.RecordLLMRequest(modelName, "success", time.Since(start).Seconds(), resp.TokensIn, resp.TokensOut)

	c.AppendMessage(model.RoleUser, userMessage)
	c.AppendMessage(model.RoleAssistant, resp.Content)

	env, isAction := Classify(resp.Content)
	if !isAction {
		r.saveContext(ctx, c)
		r.publish(ctx, &model.AssistantEvent{
			ConversationID: conversationID,
			Type:           model.EventTypeReply,
			Text:           resp.Content,
		})
		return &Outcome{Kind: OutcomePlainReply, Text: resp.Content}, nil
	}

	if r.shouldPropose(env, c.CurrentProjectID) {
		p := &model.Proposal{
			ID:             uuid.New().String(),
			ConversationID: conversationID,
			ProjectID:      c.CurrentProjectID,
			Explanation:    env.Explanation,
			Envelope:       *env,
			CreatedAt:      time.Now(),
		}
		r.mu.Lock()
		r.pending[p.ID] = p
		r.mu.Unlock()

		// Nothing is dispatched yet and executedActions stays untouched.
		r.saveContext(ctx, c)
		metrics.ProposalsTotal.WithLabelValues("raised").Inc()
		r.publish(ctx, &model.AssistantEvent{
			ConversationID: conversationID,
			Type:           model.EventTypeProposal,
			Proposal:       p,
			ProjectID:      p.ProjectID,
		})
		return &Outcome{Kind: OutcomeProposed, Proposal: p, ProjectID: p.ProjectID}, nil
	}

	result := r.dispatch(ctx, c, env)
	return &Outcome{Kind: OutcomeExecuted, Result: result, ProjectID: c.CurrentProjectID}, nil
}

// shouldPropose reports whether the requested action must go through human
// review: file-mutating actions whose invocation is destructive, which
// includes file creation that would silently overwrite an existing target.
func (r *Router) shouldPropose(env *model.ActionEnvelope, projectID string) bool {
	h, desc, err := r.registry.Resolve(env.Action)
	if err != nil {
		return false
	}
	if desc.Category != model.CategoryFile {
		return false
	}
	return h.Destructive(env.Parameters, projectID, r.env)
}

// dispatch executes the envelope via the registry and folds the result
// back into the context. A failed attempt is still recorded in
// executedActions so the next model turn knows it happened.
func (r *Router) dispatch(ctx context.Context, c *model.ConversationContext, env *model.ActionEnvelope) *model.ActionResult {
	result := r.registry.Dispatch(ctx, env.Action, env.Parameters, c.CurrentProjectID, r.env)

	if result.Success {
		if id, ok := result.Data[action.ResultKeyProjectID].(string); ok && id != "" {
			c.CurrentProjectID = id
		}
	}
	c.RecordAction(env.Action)
	r.saveContext(ctx, c)

	status := "failure"
	if result.Success {
		status = "success"
	}
	metrics.ActionsTotal.WithLabelValues(env.Action, status).Inc()

	r.publish(ctx, &model.AssistantEvent{
		ConversationID: c.ConversationID,
		Type:           model.EventTypeActionExecuted,
		Result:         result,
		ProjectID:      c.CurrentProjectID,
	})
	return result
}

// ResolveProposal consumes a pending proposal. Accept dispatches the held
// envelope exactly as an immediate action would have been; discard drops it
// with no trace in the context. Either way the proposal is single-use.
func (r *Router) ResolveProposal(ctx context.Context, proposalID string, accept bool) (*Outcome, error) {
	r.mu.Lock()
	p, ok := r.pending[proposalID]
	if ok {
		delete(r.pending, proposalID)
	}
	r.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("proposal %s not found or already resolved", proposalID)
	}

	if !accept {
		metrics.ProposalsTotal.WithLabelValues("discarded").Inc()
		r.publish(ctx, &model.AssistantEvent{
			ConversationID: p.ConversationID,
			Type:           model.EventTypeProposalResolved,
			Text:           "discarded",
			Proposal:       p,
		})
		return &Outcome{Kind: OutcomeDiscarded, Proposal: p}, nil
	}

	var outcome *Outcome
	if qerr := r.queue.Run(func() {
		c := r.contexts.Load(ctx, p.ConversationID)
		result := r.dispatch(ctx, c, &p.Envelope)
		outcome = &Outcome{Kind: OutcomeExecuted, Result: result, ProjectID: c.CurrentProjectID}
	}); qerr != nil {
		return nil, qerr
	}
	metrics.ProposalsTotal.WithLabelValues("accepted").Inc()
	r.publish(ctx, &model.AssistantEvent{
		ConversationID: p.ConversationID,
		Type:           model.EventTypeProposalResolved,
		Text:           "accepted",
		Proposal:       p,
	})
	return outcome, nil
}

// PendingProposal returns a pending proposal without consuming it.
func (r *Router) PendingProposal(proposalID string) (*model.Proposal, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pending[proposalID]
	return p, ok
}

func (r *Router) saveContext(ctx context.Context, c *model.ConversationContext) {
	if err := r.contexts.Save(ctx, c); err != nil && r.logger != nil {
		r.logger.Error("failed to persist conversation context",
			zap.String("conversation_id", c.ConversationID),
			zap.Error(err),
		)
	}
}

func (r *Router) publish(ctx context.Context, ev *model.AssistantEvent) {
	if r.events == nil {
		return
	}
	if ev.ID == "" {
		ev.ID = uuid.New().String()
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now()
	}
	r.events.Publish(ctx, ev)
}
