package events

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/appforge-ai/assistant-platform/internal/model"
	"github.com/appforge-ai/assistant-platform/pkg/logger"
)

// Publisher delivers events to the in-process bus and, when a NATS client
// is configured, to the JetStream feed. Publish failures are logged and
// never surfaced to the router; the event feed is best effort.
type Publisher struct {
	bus    *Bus
	nats   *NATSClient
	logger *logger.Logger
}

// NewPublisher creates a publisher. nats may be nil to disable the
// external feed.
func NewPublisher(bus *Bus, nats *NATSClient, log *logger.Logger) *Publisher {
	return &Publisher{bus: bus, nats: nats, logger: log}
}

// Publish delivers one event.
func (p *Publisher) Publish(ctx context.Context, ev *model.AssistantEvent) {
	if p.bus != nil {
		p.bus.Broadcast(ev)
	}
	if p.nats == nil || !p.nats.IsConnected() {
		return
	}

	data, err := json.Marshal(ev)
	if err != nil {
		p.logger.Warn("failed to marshal event", zap.Error(err))
		return
	}
	subject := EventSubject(ev.ConversationID, ev.Type)
	if _, err := p.nats.js.Publish(ctx, subject, data); err != nil {
		p.logger.Warn("failed to publish event",
			zap.String("subject", subject),
			zap.Error(err),
		)
	}
}
