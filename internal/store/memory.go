package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/appforge-ai/assistant-platform/internal/model"
)

// MemoryStore implements ContextStore in process memory. Used in tests and
// for ephemeral deployments where history need not survive a restart.
// Records are stored as serialized JSON so load/save round-trip behavior
// matches the durable store.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{records: make(map[string][]byte)}
}

// Load returns the stored context or a fresh one carrying only the id.
func (s *MemoryStore) Load(ctx context.Context, conversationID string) *model.ConversationContext {
	s.mu.RLock()
	raw, ok := s.records[conversationID]
	s.mu.RUnlock()
	if !ok {
		return model.NewConversationContext(conversationID)
	}

	var c model.ConversationContext
	if err := json.Unmarshal(raw, &c); err != nil || c.ConversationID != conversationID {
		return model.NewConversationContext(conversationID)
	}
	if c.SessionState == nil {
		c.SessionState = make(map[string]string)
	}
	return &c
}

// Save overwrites the record for the context's id.
func (s *MemoryStore) Save(ctx context.Context, c *model.ConversationContext) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.records[c.ConversationID] = data
	s.mu.Unlock()
	return nil
}

// Delete removes the record for the id.
func (s *MemoryStore) Delete(ctx context.Context, conversationID string) error {
	s.mu.Lock()
	delete(s.records, conversationID)
	s.mu.Unlock()
	return nil
}

// Exists reports whether a record is stored under the id.
func (s *MemoryStore) Exists(ctx context.Context, conversationID string) (bool, error) {
	s.mu.RLock()
	_, ok := s.records[conversationID]
	s.mu.RUnlock()
	return ok, nil
}

// ListIDs returns all stored conversation ids in no particular order.
func (s *MemoryStore) ListIDs(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	return ids, nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }

// Corrupt overwrites a record with undecodable bytes. Test hook for the
// corruption-tolerance contract.
func (s *MemoryStore) Corrupt(conversationID string) {
	s.mu.Lock()
	s.records[conversationID] = []byte("{not json")
	s.mu.Unlock()
}
