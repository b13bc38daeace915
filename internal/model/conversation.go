package model

import (
	"time"
)

// Conversation is the summary view of a conversation exposed over the API.
// The full mutable state lives in ConversationContext.
type Conversation struct {
	ID               string    `json:"id"`
	CurrentProjectID string    `json:"current_project_id,omitempty"`
	ActionCount      int       `json:"action_count"`
	MessageCount     int       `json:"message_count"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Summary derives the API view from a context.
func (c *ConversationContext) Summary() Conversation {
	return Conversation{
		ID:               c.ConversationID,
		CurrentProjectID: c.CurrentProjectID,
		ActionCount:      len(c.ExecutedActions),
		MessageCount:     len(c.RemoteMessageHistory),
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

// SendMessageRequest is the request to send a new user message.
type SendMessageRequest struct {
	Content string `json:"content"`
	Model   string `json:"model,omitempty"`
}

// ResolveProposalRequest is the request to accept or discard a proposal.
type ResolveProposalRequest struct {
	Accept bool `json:"accept"`
}
