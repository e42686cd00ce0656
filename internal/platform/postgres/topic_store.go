package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/blobapp/blob-api/internal/domain"
	"github.com/blobapp/blob-api/internal/platform/logger"
	"github.com/blobapp/blob-api/internal/store"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes
const (
	pgForeignKeyViolationCode = "23503"
	pgUniqueViolationCode     = "23505"
)

// PostgresTopicStore implements the store.TopicStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTopicStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTopicStore creates a new PostgreSQL implementation of the
// TopicStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller.
func NewPostgresTopicStore(db store.DBTX, logger *slog.Logger) *PostgresTopicStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTopicStore{
		db:     db,
		logger: logger.With(slog.String("component", "topic_store")),
	}
}

// Ensure PostgresTopicStore implements store.TopicStore
var _ store.TopicStore = (*PostgresTopicStore)(nil)

// Create implements store.TopicStore.Create
func (s *PostgresTopicStore) Create(ctx context.Context, topic *domain.Topic) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := topic.Validate(); err != nil {
		log.Warn("topic validation failed during create",
			slog.String("error", err.Error()),
			slog.String("topic_id", topic.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO topics (id, user_id, title, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		topic.ID,
		topic.UserID,
		topic.Title,
		topic.Description,
		topic.CreatedAt,
		topic.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolationCode {
			log.Warn("foreign key violation during topic creation",
				slog.String("topic_id", topic.ID.String()),
				slog.String("user_id", topic.UserID.String()))
			return fmt.Errorf("%w: user %s not found", store.ErrInvalidEntity, topic.UserID)
		}

		log.Error("failed to create topic",
			slog.String("error", err.Error()),
			slog.String("topic_id", topic.ID.String()))
		return store.NewStoreError("topic", "create", "insert failed", err)
	}

	log.Info("topic created successfully",
		slog.String("topic_id", topic.ID.String()),
		slog.String("user_id", topic.UserID.String()))
	return nil
}

// GetForUser implements store.TopicStore.GetForUser. The ownership check is
// part of the WHERE clause so "does not exist" and "not owned" produce the
// same ErrTopicNotFound, deliberately leaking nothing about other users'
// topics.
func (s *PostgresTopicStore) GetForUser(
	ctx context.Context,
	topicID, userID uuid.UUID,
) (*domain.Topic, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, title, description, created_at, updated_at
		FROM topics
		WHERE id = $1 AND user_id = $2
	`

	var topic domain.Topic
	err := s.db.QueryRowContext(ctx, query, topicID, userID).Scan(
		&topic.ID,
		&topic.UserID,
		&topic.Title,
		&topic.Description,
		&topic.CreatedAt,
		&topic.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("topic not found or not owned by user",
				slog.String("topic_id", topicID.String()),
				slog.String("user_id", userID.String()))
			return nil, store.ErrTopicNotFound
		}

		log.Error("failed to retrieve topic",
			slog.String("error", err.Error()),
			slog.String("topic_id", topicID.String()))
		return nil, store.NewStoreError("topic", "get", "query failed", err)
	}

	return &topic, nil
}

// ListByUser implements store.TopicStore.ListByUser
func (s *PostgresTopicStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Topic, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, title, description, created_at, updated_at
		FROM topics
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list topics",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, store.NewStoreError("topic", "list", "query failed", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	var topics []*domain.Topic
	for rows.Next() {
		var topic domain.Topic
		if err := rows.Scan(
			&topic.ID,
			&topic.UserID,
			&topic.Title,
			&topic.Description,
			&topic.CreatedAt,
			&topic.UpdatedAt,
		); err != nil {
			return nil, store.NewStoreError("topic", "list", "scan failed", err)
		}
		topics = append(topics, &topic)
	}

	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("topic", "list", "row iteration failed", err)
	}

	return topics, nil
}

// WithTx implements store.TopicStore.WithTx
func (s *PostgresTopicStore) WithTx(tx *sql.Tx) store.TopicStore {
	return &PostgresTopicStore{
		db:     tx,
		logger: s.logger,
	}
}
