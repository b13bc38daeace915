package orchestrator

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/appforge-ai/assistant-platform/internal/model"
)

// Classify decides whether a backend reply is a structured action envelope
// or plain text. The reply must be a single JSON object carrying the
// "action" discriminator; anything else, including action-shaped JSON
// embedded inside prose, is plain text. Ambiguity always resolves to plain
// text, never to a best-effort partial action.
func Classify(reply string) (*model.ActionEnvelope, bool) {
	candidate := stripFence(strings.TrimSpace(reply))

	dec := json.NewDecoder(strings.NewReader(candidate))
	var env model.ActionEnvelope
	if err := dec.Decode(&env); err != nil {
		return nil, false
	}
	// Trailing non-whitespace means the object was embedded in prose.
	if dec.More() {
		return nil, false
	}
	if rest, err := io.ReadAll(dec.Buffered()); err != nil || strings.TrimSpace(string(rest)) != "" {
		return nil, false
	}

	if env.ResponseType != model.ResponseTypeAction || env.Action == "" {
		return nil, false
	}
	if env.Parameters == nil {
		env.Parameters = model.Params{}
	}
	return &env, true
}

// stripFence unwraps a reply that is exactly one markdown code fence,
// which chat backends habitually wrap JSON in.
func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}
	body := strings.TrimSuffix(strings.TrimPrefix(s, "```"), "```")
	if idx := strings.IndexByte(body, '\n'); idx >= 0 {
		lang := strings.TrimSpace(body[:idx])
		if lang == "" || lang == "json" {
			return strings.TrimSpace(body[idx+1:])
		}
		return s
	}
	return strings.TrimSpace(body)
}
