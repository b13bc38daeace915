// Package service provides business logic above the context store.
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/appforge-ai/assistant-platform/internal/model"
	"github.com/appforge-ai/assistant-platform/internal/store"
	"github.com/appforge-ai/assistant-platform/pkg/logger"
	"github.com/appforge-ai/assistant-platform/pkg/metrics"
)

// ConversationService manages conversation lifecycle over the context
// store.
type ConversationService struct {
	contexts store.ContextStore
	logger   *logger.Logger
}

// NewConversationService creates a new conversation service.
func NewConversationService(contexts store.ContextStore, log *logger.Logger) *ConversationService {
	return &ConversationService{contexts: contexts, logger: log}
}

// Create allocates a new conversation with a fresh id and persists its
// empty context.
func (s *ConversationService) Create(ctx context.Context) (*model.Conversation, error) {
	id := uuid.Must(uuid.NewV7()).String()
	c := model.NewConversationContext(id)
	if err := s.contexts.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}

	s.logger.Info("conversation created", zap.String("conversation_id", id))
	metrics.ConversationsActive.Inc()
	summary := c.Summary()
	return &summary, nil
}

// Get returns the summary view of a conversation. A conversation that was
// never saved still resolves: the store substitutes a fresh context.
func (s *ConversationService) Get(ctx context.Context, conversationID string) (*model.Conversation, error) {
	exists, err := s.contexts.Exists(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("look up conversation: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("conversation not found")
	}
	summary := s.contexts.Load(ctx, conversationID).Summary()
	return &summary, nil
}

// List returns summaries of all stored conversations.
func (s *ConversationService) List(ctx context.Context) ([]model.Conversation, error) {
	ids, err := s.contexts.ListIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}

	summaries := make([]model.Conversation, 0, len(ids))
	for _, id := range ids {
		summaries = append(summaries, s.contexts.Load(ctx, id).Summary())
	}
	return summaries, nil
}

// Delete removes a conversation's stored context.
func (s *ConversationService) Delete(ctx context.Context, conversationID string) error {
	exists, err := s.contexts.Exists(ctx, conversationID)
	if err != nil {
		return fmt.Errorf("look up conversation: %w", err)
	}
	if !exists {
		return fmt.Errorf("conversation not found")
	}
	if err := s.contexts.Delete(ctx, conversationID); err != nil {
		return fmt.Errorf("delete conversation: %w", err)
	}

	s.logger.Info("conversation deleted", zap.String("conversation_id", conversationID))
	metrics.ConversationsActive.Dec()
	return nil
}
