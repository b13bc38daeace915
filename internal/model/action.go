// Package model defines data structures for the assistant platform.
package model

import (
	"time"
)

// Category groups actions for prompt rendering and routing decisions.
type Category string

const (
	// CategoryFile marks actions that read or mutate project files.
	CategoryFile Category = "file"
	// CategoryProject marks actions that manage project records.
	CategoryProject Category = "project"
)

// ParamSpec describes one parameter of an action.
type ParamSpec struct {
	Type        string `json:"type"`
	Required    bool   `json:"required"`
	Description string `json:"description"`
}

// ActionDescriptor declares a capability the assistant may request.
// Descriptors are registered once at startup and never mutated.
type ActionDescriptor struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Parameters  map[string]ParamSpec `json:"parameters"`
	Destructive bool                 `json:"destructive"`
	Category    Category             `json:"category"`
}

// ActionResult is the outcome of a single handler invocation. Either the
// call fully succeeded and Data carries the payload, or it failed and
// Message carries the error; never both.
type ActionResult struct {
	Success   bool           `json:"success"`
	Action    string         `json:"action"`
	Data      map[string]any `json:"data,omitempty"`
	Message   string         `json:"message"`
	Timestamp time.Time      `json:"timestamp"`
}

// Succeed builds a successful result for the named action.
func Succeed(action, message string, data map[string]any) *ActionResult {
	return &ActionResult{
		Success:   true,
		Action:    action,
		Data:      data,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// Fail builds a failed result for the named action.
func Fail(action, message string) *ActionResult {
	return &ActionResult{
		Success:   false,
		Action:    action,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// ResponseTypeAction is the discriminator value a backend reply must carry
// to be classified as an action request.
const ResponseTypeAction = "action"

// ActionEnvelope is the machine-parseable shape a model uses to request an
// action instead of replying with prose.
type ActionEnvelope struct {
	ResponseType string `json:"response_type"`
	Action       string `json:"action"`
	Parameters   Params `json:"parameters,omitempty"`
	Explanation  string `json:"explanation"`
}

// Proposal holds a destructive action awaiting a human decision. It is
// ephemeral: never persisted, consumed by the first accept or discard.
type Proposal struct {
	ID             string         `json:"id"`
	ConversationID string         `json:"conversation_id"`
	ProjectID      string         `json:"project_id,omitempty"`
	Explanation    string         `json:"explanation"`
	Envelope       ActionEnvelope `json:"envelope"`
	CreatedAt      time.Time      `json:"created_at"`
}
