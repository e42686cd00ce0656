package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/blobapp/blob-api/internal/config"
	"github.com/blobapp/blob-api/internal/domain"
	"github.com/blobapp/blob-api/internal/generation"
	"github.com/blobapp/blob-api/internal/platform/gemini"
	"github.com/blobapp/blob-api/internal/platform/keycrypt"
	"github.com/blobapp/blob-api/internal/platform/openai"
	"github.com/blobapp/blob-api/internal/platform/postgres"
	"github.com/blobapp/blob-api/internal/service"
	"github.com/blobapp/blob-api/internal/service/auth"
	"github.com/blobapp/blob-api/internal/store"
)

// application holds the initialized dependencies shared by the HTTP layer.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	topicStore    store.TopicStore
	settingsStore store.SettingsStore

	keyCodec          *keycrypt.Codec
	jwtService        auth.JWTService
	generationService service.GenerationService
}

// newApplication wires up stores and services on top of an established
// database connection.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	topicStore := postgres.NewPostgresTopicStore(db, logger)
	settingsStore := postgres.NewPostgresSettingsStore(db, logger)
	contentStore := postgres.NewPostgresContentStore(db, logger)

	keyCodec, err := keycrypt.NewCodec(cfg.Encryption.MasterSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create key codec: %w", err)
	}

	jwtService, err := auth.NewHMACJWTService(
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenLifetimeMinutes)*time.Minute,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	resolver, err := service.NewCredentialResolver(settingsStore, keyCodec, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create credential resolver: %w", err)
	}

	generationService, err := service.NewGenerationService(
		topicStore,
		contentStore,
		resolver,
		defaultGeneratorFactories(),
		store.NewTxRunner(db),
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create generation service: %w", err)
	}

	return &application{
		config:            cfg,
		logger:            logger,
		db:                db,
		topicStore:        topicStore,
		settingsStore:     settingsStore,
		keyCodec:          keyCodec,
		jwtService:        jwtService,
		generationService: generationService,
	}, nil
}

// defaultGeneratorFactories maps each supported provider to its adapter
// constructor. Adapters are built per request with the caller's decrypted
// key, so no provider client outlives a request.
func defaultGeneratorFactories() map[domain.Provider]service.GeneratorFactory {
	return map[domain.Provider]service.GeneratorFactory{
		domain.ProviderGoogle: func(
			ctx context.Context,
			logger *slog.Logger,
			apiKey, model string,
		) (generation.Generator, error) {
			return gemini.NewGenerator(ctx, logger, apiKey, model)
		},
		domain.ProviderOpenAI: func(
			_ context.Context,
			logger *slog.Logger,
			apiKey, model string,
		) (generation.Generator, error) {
			return openai.NewGenerator(logger, apiKey, model)
		},
	}
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Failed to close database connection", "error", err)
		}
	}
}
