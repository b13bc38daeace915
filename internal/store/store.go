// Package store provides durable persistence for conversation contexts.
package store

import (
	"context"

	"github.com/appforge-ai/assistant-platform/internal/model"
)

// ContextStore persists conversation contexts keyed by conversation id.
//
// Load never fails the caller: on a missing key, unreadable data or a
// structurally invalid record it returns a freshly constructed context
// carrying only the requested id. Saves are idempotent full overwrites
// with last-writer-wins semantics; callers must treat load-mutate-save as
// non-atomic. Different ids are independent.
type ContextStore interface {
	Load(ctx context.Context, conversationID string) *model.ConversationContext
	Save(ctx context.Context, c *model.ConversationContext) error
	Delete(ctx context.Context, conversationID string) error
	Exists(ctx context.Context, conversationID string) (bool, error)
	ListIDs(ctx context.Context) ([]string, error)
	Close() error
}
