package generation

import "errors"

// Common errors returned by the generation package and its adapters.
var (
	// ErrGenerationFailed is returned when content generation fails for any
	// general reason.
	ErrGenerationFailed = errors.New("failed to generate study content")

	// ErrInvalidRequest is returned when a generation request fails
	// validation before any provider call is made.
	ErrInvalidRequest = errors.New("invalid generation request")

	// ErrInvalidResponse is returned when the model response cannot be parsed
	// or violates the structured-content invariants. Shape mismatches are
	// rejected, never coerced.
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the model blocks the content due to
	// safety filters.
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrTransientFailure is returned for temporary provider errors (timeout,
	// rate limit, network). Adapters do not retry; callers may re-invoke.
	ErrTransientFailure = errors.New("transient error during content generation")

	// ErrInvalidConfig is returned when an adapter configuration is invalid.
	ErrInvalidConfig = errors.New("invalid generator configuration")
)
