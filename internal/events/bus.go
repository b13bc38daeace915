// Package events delivers router events to the UI: an in-process bus for
// SSE subscribers and an optional NATS JetStream feed for external
// consumers.
package events

import (
	"sync"

	"github.com/appforge-ai/assistant-platform/internal/model"
)

// subscriberBuffer bounds each subscriber channel. Slow subscribers drop
// events rather than block the router worker.
const subscriberBuffer = 32

// Bus fans events out to in-process subscribers keyed by conversation id.
type Bus struct {
	mu   sync.Mutex
	subs map[string]map[int]chan *model.AssistantEvent
	next int
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[string]map[int]chan *model.AssistantEvent)}
}

// Subscribe registers for a conversation's events. The returned cancel
// function must be called exactly once.
func (b *Bus) Subscribe(conversationID string) (<-chan *model.AssistantEvent, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan *model.AssistantEvent, subscriberBuffer)
	if b.subs[conversationID] == nil {
		b.subs[conversationID] = make(map[int]chan *model.AssistantEvent)
	}
	id := b.next
	b.next++
	b.subs[conversationID][id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if m, ok := b.subs[conversationID]; ok {
			if c, ok := m[id]; ok {
				delete(m, id)
				close(c)
			}
			if len(m) == 0 {
				delete(b.subs, conversationID)
			}
		}
	}
	return ch, cancel
}

// Broadcast delivers an event to every subscriber of its conversation.
func (b *Bus) Broadcast(ev *model.AssistantEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs[ev.ConversationID] {
		select {
		case ch <- ev:
		default:
		}
	}
}
