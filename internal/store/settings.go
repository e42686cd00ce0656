package store

import (
	"context"
	"database/sql"

	"github.com/blobapp/blob-api/internal/domain"
	"github.com/google/uuid"
)

// SettingsStore defines the interface for per-user AI settings persistence.
type SettingsStore interface {
	// Get retrieves the unique settings record for a user.
	// Returns ErrSettingsNotFound if the user has no record.
	Get(ctx context.Context, userID uuid.UUID) (*domain.UserAISettings, error)

	// Upsert creates the user's settings record or replaces the existing one.
	// At most one record per user exists; the user ID is the conflict key.
	Upsert(ctx context.Context, settings *domain.UserAISettings) error

	// WithTx returns a new SettingsStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) SettingsStore
}
