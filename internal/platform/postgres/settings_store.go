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
)

// PostgresSettingsStore implements the store.SettingsStore interface
// using a PostgreSQL database as the storage backend.
type PostgresSettingsStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSettingsStore creates a new PostgreSQL implementation of the
// SettingsStore interface.
func NewPostgresSettingsStore(db store.DBTX, logger *slog.Logger) *PostgresSettingsStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSettingsStore{
		db:     db,
		logger: logger.With(slog.String("component", "settings_store")),
	}
}

// Ensure PostgresSettingsStore implements store.SettingsStore
var _ store.SettingsStore = (*PostgresSettingsStore)(nil)

// Get implements store.SettingsStore.Get
func (s *PostgresSettingsStore) Get(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.UserAISettings, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT user_id, provider, encrypted_api_key, preferred_model, created_at, updated_at
		FROM user_ai_settings
		WHERE user_id = $1
	`

	var settings domain.UserAISettings
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&settings.UserID,
		&settings.Provider,
		&settings.EncryptedAPIKey,
		&settings.PreferredModel,
		&settings.CreatedAt,
		&settings.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("no AI settings for user",
				slog.String("user_id", userID.String()))
			return nil, store.ErrSettingsNotFound
		}

		log.Error("failed to retrieve AI settings",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, store.NewStoreError("settings", "get", "query failed", err)
	}

	return &settings, nil
}

// Upsert implements store.SettingsStore.Upsert. The user ID is the conflict
// key, preserving the at-most-one-record-per-user invariant.
func (s *PostgresSettingsStore) Upsert(
	ctx context.Context,
	settings *domain.UserAISettings,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := settings.Validate(); err != nil {
		log.Warn("settings validation failed during upsert",
			slog.String("error", err.Error()),
			slog.String("user_id", settings.UserID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO user_ai_settings
			(user_id, provider, encrypted_api_key, preferred_model, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			provider = EXCLUDED.provider,
			encrypted_api_key = EXCLUDED.encrypted_api_key,
			preferred_model = EXCLUDED.preferred_model,
			updated_at = EXCLUDED.updated_at
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		settings.UserID,
		settings.Provider,
		settings.EncryptedAPIKey,
		settings.PreferredModel,
		settings.CreatedAt,
		settings.UpdatedAt,
	)

	if err != nil {
		log.Error("failed to upsert AI settings",
			slog.String("error", err.Error()),
			slog.String("user_id", settings.UserID.String()))
		return store.NewStoreError("settings", "upsert", "insert failed", err)
	}

	log.Info("AI settings saved",
		slog.String("user_id", settings.UserID.String()),
		slog.String("provider", string(settings.Provider)))
	return nil
}

// WithTx implements store.SettingsStore.WithTx
func (s *PostgresSettingsStore) WithTx(tx *sql.Tx) store.SettingsStore {
	return &PostgresSettingsStore{
		db:     tx,
		logger: s.logger,
	}
}
