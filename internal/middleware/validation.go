package middleware

import (
	"errors"
	"unicode/utf8"

	"github.com/google/uuid"
)

// ValidateMessageContent validates message content.
func ValidateMessageContent(content string) error {
	if len(content) == 0 {
		return errors.New("content cannot be empty")
	}
	if len(content) > 100000 {
		return errors.New("content exceeds maximum length")
	}
	if !utf8.ValidString(content) {
		return errors.New("content must be valid UTF-8")
	}
	return nil
}

// ValidateConversationID validates a conversation ID.
func ValidateConversationID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.New("invalid conversation ID format")
	}
	return nil
}

// ValidateProposalID validates a proposal ID.
func ValidateProposalID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.New("invalid proposal ID format")
	}
	return nil
}

// ValidateModelName validates an optional model identifier.
func ValidateModelName(name string) error {
	if len(name) > 128 {
		return errors.New("model name exceeds maximum length")
	}
	return nil
}
