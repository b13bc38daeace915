package model

import (
	"time"
)

// Role represents the role of a message sender.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// RemoteMessage is a raw snapshot of one backend message, kept so the
// remote chat session can be re-hydrated after a process restart.
type RemoteMessage struct {
	ID        string    `json:"id,omitempty"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ConversationContext is the mutable per-conversation state. The
// ConversationID is assigned at creation and never changes; everything
// else evolves as the conversation does. Contexts are owned exclusively
// by their conversation and never shared across conversations.
type ConversationContext struct {
	ConversationID string `json:"conversation_id"`

	CurrentProjectID    string `json:"current_project_id,omitempty"`
	LastParentMessageID string `json:"last_parent_message_id,omitempty"`
	LastUserMessageID   string `json:"last_user_message_id,omitempty"`

	// SessionState is an open-ended extension point for scalar state.
	SessionState map[string]string `json:"session_state,omitempty"`

	// ExecutedActions is append-only: it records the name of every action
	// that was actually dispatched and returned a result, in dispatch
	// order. Unresolved proposals never appear here.
	ExecutedActions []string `json:"executed_actions,omitempty"`

	RemoteMessageHistory []RemoteMessage `json:"remote_message_history,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewConversationContext builds a fresh context carrying only the id.
func NewConversationContext(conversationID string) *ConversationContext {
	now := time.Now()
	return &ConversationContext{
		ConversationID: conversationID,
		SessionState:   make(map[string]string),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// RecordAction appends an action name to the executed-action log.
func (c *ConversationContext) RecordAction(name string) {
	c.ExecutedActions = append(c.ExecutedActions, name)
	c.UpdatedAt = time.Now()
}

// AppendMessage appends a backend message snapshot to the history.
func (c *ConversationContext) AppendMessage(role Role, content string) {
	c.RemoteMessageHistory = append(c.RemoteMessageHistory, RemoteMessage{
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	})
	c.UpdatedAt = time.Now()
}

// RecentActions returns up to n most recent executed action names, oldest
// first.
func (c *ConversationContext) RecentActions(n int) []string {
	if n <= 0 || len(c.ExecutedActions) == 0 {
		return nil
	}
	if len(c.ExecutedActions) <= n {
		return c.ExecutedActions
	}
	return c.ExecutedActions[len(c.ExecutedActions)-n:]
}
