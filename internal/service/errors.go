package service

import (
	"errors"
	"fmt"

	"github.com/blobapp/blob-api/internal/store"
)

// Sentinel errors forming the stable pipeline outcome taxonomy.
var (
	// ErrTopicNotFound indicates the topic does not exist or is not owned by
	// the caller. The two causes are intentionally indistinguishable.
	ErrTopicNotFound = errors.New("topic not found")

	// ErrMissingCredentials indicates the user has no AI settings record or
	// no API key configured. Generation cannot proceed until settings are
	// configured.
	ErrMissingCredentials = errors.New("AI provider credentials not configured")

	// ErrUnsupportedProvider indicates the stored provider has no registered
	// adapter.
	ErrUnsupportedProvider = errors.New("unsupported AI provider")

	// ErrPersistenceFailed indicates the generated content could not be
	// written. The transaction is rolled back; no partial rows survive.
	ErrPersistenceFailed = errors.New("failed to persist generated content")
)

// GenerationServiceError wraps errors from the generation service with context.
type GenerationServiceError struct {
	// Operation is the operation that failed (e.g., "generate_flashcards")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for GenerationServiceError.
func (e *GenerationServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generation service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("generation service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *GenerationServiceError) Unwrap() error {
	return e.Err
}

// NewGenerationServiceError creates a new GenerationServiceError.
// Known sentinel errors pass through unchanged so callers can match on them.
func NewGenerationServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrTopicNotFound) ||
		errors.Is(err, ErrMissingCredentials) ||
		errors.Is(err, ErrUnsupportedProvider) {
		return err
	}

	// Map store-level sentinels to service-level ones.
	if errors.Is(err, store.ErrTopicNotFound) {
		return ErrTopicNotFound
	}
	if errors.Is(err, store.ErrSettingsNotFound) {
		return ErrMissingCredentials
	}

	return &GenerationServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
