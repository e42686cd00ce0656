package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/blobapp/blob-api/internal/domain"
	"github.com/blobapp/blob-api/internal/platform/keycrypt"
	"github.com/blobapp/blob-api/internal/platform/logger"
	"github.com/blobapp/blob-api/internal/store"
	"github.com/google/uuid"
)

// ProviderConfig is the resolved, ready-to-use provider configuration for one
// generation run. APIKey holds the decrypted key; the orchestrator clears it
// as soon as the provider calls of the run have completed.
type ProviderConfig struct {
	Provider domain.Provider
	APIKey   string
	Model    string
}

// CredentialResolver resolves a user identity to a usable provider
// configuration, or ErrMissingCredentials when none is configured.
type CredentialResolver interface {
	// Resolve looks up and decrypts the user's AI settings. Read-only; the
	// decrypted key is never logged or persisted.
	Resolve(ctx context.Context, userID uuid.UUID) (*ProviderConfig, error)
}

// credentialResolver is the store+keycrypt backed implementation.
type credentialResolver struct {
	settings store.SettingsStore
	codec    *keycrypt.Codec
	logger   *slog.Logger
}

// NewCredentialResolver creates a CredentialResolver backed by the settings
// store and the key codec.
func NewCredentialResolver(
	settings store.SettingsStore,
	codec *keycrypt.Codec,
	logger *slog.Logger,
) (CredentialResolver, error) {
	if settings == nil {
		return nil, errors.New("settings store cannot be nil")
	}
	if codec == nil {
		return nil, errors.New("key codec cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &credentialResolver{
		settings: settings,
		codec:    codec,
		logger:   logger.With(slog.String("component", "credential_resolver")),
	}, nil
}

// Resolve implements CredentialResolver.
func (r *credentialResolver) Resolve(
	ctx context.Context,
	userID uuid.UUID,
) (*ProviderConfig, error) {
	log := logger.FromContextOrDefault(ctx, r.logger)

	settings, err := r.settings.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrSettingsNotFound) {
			log.Debug("user has no AI settings",
				slog.String("user_id", userID.String()))
			return nil, ErrMissingCredentials
		}
		return nil, NewGenerationServiceError("resolve_credentials",
			"failed to load AI settings", err)
	}

	if len(settings.EncryptedAPIKey) == 0 {
		log.Debug("user AI settings have no API key",
			slog.String("user_id", userID.String()))
		return nil, ErrMissingCredentials
	}

	apiKey, err := r.codec.Decrypt(settings.EncryptedAPIKey)
	if err != nil {
		// Log only the fact of the failure; neither ciphertext nor any key
		// material belongs in the log.
		log.Error("failed to decrypt stored API key",
			slog.String("user_id", userID.String()))
		return nil, NewGenerationServiceError("resolve_credentials",
			"stored API key could not be decrypted", err)
	}

	return &ProviderConfig{
		Provider: settings.Provider,
		APIKey:   apiKey,
		Model:    settings.Model(),
	}, nil
}
