package api

import (
	"errors"
	"net/http"

	"github.com/blobapp/blob-api/internal/generation"
	"github.com/blobapp/blob-api/internal/service"
	"github.com/blobapp/blob-api/internal/service/auth"
	"github.com/blobapp/blob-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return http.StatusUnauthorized

	// Not found errors. Topic lookups intentionally collapse "does not
	// exist" and "not owned by caller" into the same outcome.
	case errors.Is(err, service.ErrTopicNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, service.ErrMissingCredentials),
		errors.Is(err, service.ErrUnsupportedProvider),
		errors.Is(err, generation.ErrInvalidRequest),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// The provider returned parseable output that failed shape/invariant
	// validation, or refused the prompt outright.
	case errors.Is(err, generation.ErrInvalidResponse),
		errors.Is(err, generation.ErrContentBlocked):
		return http.StatusUnprocessableEntity

	// The provider call itself failed.
	case errors.Is(err, generation.ErrTransientFailure),
		errors.Is(err, generation.ErrGenerationFailed):
		return http.StatusBadGateway

	// Default: internal server error (includes persistence failures)
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details:
// raw provider payloads, decrypted keys, and SQL detail never reach the
// client.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid token"

	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	// Not found errors
	case errors.Is(err, service.ErrTopicNotFound):
		return "Topic not found or you don't have access to it"

	// Bad request errors
	case errors.Is(err, service.ErrMissingCredentials):
		return "Please configure your AI API key in settings first"

	case errors.Is(err, service.ErrUnsupportedProvider):
		return "The configured AI provider is not supported"

	case errors.Is(err, generation.ErrInvalidRequest):
		return "Invalid generation parameters"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	// Provider outcomes, summarized without the raw response
	case errors.Is(err, generation.ErrContentBlocked):
		return "The AI provider declined to generate content for this topic"

	case errors.Is(err, generation.ErrInvalidResponse):
		return "The AI provider returned content that could not be validated"

	case errors.Is(err, generation.ErrTransientFailure),
		errors.Is(err, generation.ErrGenerationFailed):
		return "The AI provider request failed; please try again"

	case errors.Is(err, service.ErrPersistenceFailed):
		return "Failed to save generated content"

	default:
		return "An unexpected error occurred"
	}
}
