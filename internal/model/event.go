package model

import (
	"time"
)

// EventType represents the type of assistant event delivered to the UI.
type EventType string

const (
	EventTypeReply            EventType = "reply"
	EventTypeActionExecuted   EventType = "action_executed"
	EventTypeProposal         EventType = "proposal"
	EventTypeProposalResolved EventType = "proposal_resolved"
	EventTypeError            EventType = "error"
)

// AssistantEvent is one event in a conversation's UI feed.
type AssistantEvent struct {
	ID             string        `json:"id"`
	ConversationID string        `json:"conversation_id"`
	Type           EventType     `json:"type"`
	Text           string        `json:"text,omitempty"`
	Result         *ActionResult `json:"result,omitempty"`
	Proposal       *Proposal     `json:"proposal,omitempty"`
	ProjectID      string        `json:"project_id,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
}
