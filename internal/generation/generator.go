package generation

import (
	"context"
	"fmt"
)

// Kind identifies which type of study content to generate.
type Kind string

// Supported content kinds.
const (
	KindFlashcards Kind = "flashcards"
	KindQuiz       Kind = "quiz"
	KindMindMap    Kind = "mindmap"
)

// ExpertiseLevel steers the depth and difficulty of generated content.
type ExpertiseLevel string

// Supported expertise levels.
const (
	ExpertiseBeginner     ExpertiseLevel = "beginner"
	ExpertiseIntermediate ExpertiseLevel = "intermediate"
	ExpertiseAdvanced     ExpertiseLevel = "advanced"
)

// Valid reports whether l is one of the supported expertise levels.
func (l ExpertiseLevel) Valid() bool {
	switch l {
	case ExpertiseBeginner, ExpertiseIntermediate, ExpertiseAdvanced:
		return true
	default:
		return false
	}
}

// Cardinality bounds and defaults for count-carrying kinds.
const (
	MinFlashcardCount     = 1
	MaxFlashcardCount     = 50
	DefaultFlashcardCount = 10

	MinQuestionCount     = 1
	MaxQuestionCount     = 30
	DefaultQuestionCount = 10
)

// Request is the ephemeral, validated input for a single generation call.
// It is constructed per call by the orchestrator and discarded after the
// pipeline completes; it is never persisted.
type Request struct {
	Kind              Kind
	TopicTitle        string
	TopicDescription  string
	Expertise         ExpertiseLevel
	AdditionalContext string

	// Count is the requested number of flashcards or quiz questions.
	// Ignored for mind maps.
	Count int
}

// Validate checks the request before any provider call is made.
// Out-of-range cardinality is a caller-side error, not a provider error.
func (r *Request) Validate() error {
	if r.TopicTitle == "" {
		return fmt.Errorf("%w: topic title cannot be empty", ErrInvalidRequest)
	}

	if !r.Expertise.Valid() {
		return fmt.Errorf("%w: unknown expertise level %q", ErrInvalidRequest, r.Expertise)
	}

	switch r.Kind {
	case KindFlashcards:
		if r.Count < MinFlashcardCount || r.Count > MaxFlashcardCount {
			return fmt.Errorf("%w: flashcard count must be between %d and %d, got %d",
				ErrInvalidRequest, MinFlashcardCount, MaxFlashcardCount, r.Count)
		}
	case KindQuiz:
		if r.Count < MinQuestionCount || r.Count > MaxQuestionCount {
			return fmt.Errorf("%w: question count must be between %d and %d, got %d",
				ErrInvalidRequest, MinQuestionCount, MaxQuestionCount, r.Count)
		}
	case KindMindMap:
		// No cardinality for mind maps.
	default:
		return fmt.Errorf("%w: unknown content kind %q", ErrInvalidRequest, r.Kind)
	}

	return nil
}

// Generator is the boundary between the application core and external AI
// services. Each vendor adapter implements it; the orchestrator selects the
// adapter by the user's resolved provider.
//
// Implementations must validate the parsed structured content against the
// domain invariants before returning success, must not retry transient
// failures (that decision belongs to the caller), and must not touch
// persistence.
type Generator interface {
	// Generate produces normalized study content for the given request.
	// It returns ErrInvalidResponse for shape/invariant violations,
	// ErrContentBlocked when the vendor refuses the prompt, and
	// ErrTransientFailure for network-class failures.
	Generate(ctx context.Context, req Request) (*StructuredContent, error)
}
