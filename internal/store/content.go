package store

import (
	"context"
	"database/sql"

	"github.com/blobapp/blob-api/internal/domain"
)

// ContentStore defines the interface for persisting generated study content.
//
// The multi-row save methods MUST be run within a transaction for atomicity:
// use WithTx together with store.RunInTransaction so that a failure at any
// level leaves no partial rows. Saves are append-only; repeated generation
// for the same topic adds new records rather than replacing prior ones.
type ContentStore interface {
	// SaveFlashcards inserts the given flashcards. All cards must be valid
	// according to domain validation rules.
	//
	// Usage example:
	//   err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
	//       return contentStore.WithTx(tx).SaveFlashcards(ctx, cards)
	//   })
	SaveFlashcards(ctx context.Context, cards []*domain.Flashcard) error

	// SaveQuiz inserts the quiz row, its questions in generation order, and
	// each question's options. The quiz is validated first; a quiz whose
	// questions violate the exactly-one-correct or two-option invariants is
	// rejected with ErrInvalidEntity before any row is written.
	SaveQuiz(ctx context.Context, quiz *domain.Quiz) error

	// SaveMindMap inserts the mind map after validating the embedded
	// structure. Structures with orphan nodes are rejected with
	// ErrInvalidEntity; nothing is written.
	SaveMindMap(ctx context.Context, mindMap *domain.MindMap) error

	// WithTx returns a new ContentStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) ContentStore
}
