package store

import (
	"context"
	"database/sql"

	"github.com/blobapp/blob-api/internal/domain"
	"github.com/google/uuid"
)

// TopicStore defines the interface for topic persistence.
type TopicStore interface {
	// Create saves a new topic to the store.
	// Returns validation errors if the topic data is invalid.
	Create(ctx context.Context, topic *domain.Topic) error

	// GetForUser retrieves a topic by ID, scoped to the owning user in a
	// single lookup. Returns ErrTopicNotFound when the topic does not exist
	// OR exists but is owned by someone else; callers cannot distinguish the
	// two cases.
	GetForUser(ctx context.Context, topicID, userID uuid.UUID) (*domain.Topic, error)

	// ListByUser returns all topics owned by the user, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Topic, error)

	// WithTx returns a new TopicStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) TopicStore
}
