package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Settings-specific validation errors
var (
	// ErrSettingsUserIDEmpty is returned when a settings record has no owner.
	ErrSettingsUserIDEmpty = errors.New("settings user ID cannot be empty")

	// ErrSettingsKeyEmpty is returned when a settings record has no encrypted
	// API key. A key must be configured before any generation call.
	ErrSettingsKeyEmpty = errors.New("settings encrypted API key cannot be empty")
)

// Provider identifies the family of AI backend a user has configured.
type Provider string

// Supported AI providers.
const (
	ProviderGoogle Provider = "google"
	ProviderOpenAI Provider = "openai"
)

// Valid reports whether p is one of the supported providers.
func (p Provider) Valid() bool {
	switch p {
	case ProviderGoogle, ProviderOpenAI:
		return true
	default:
		return false
	}
}

// DefaultModel returns the provider's default model identifier, used when a
// user has not configured a preferred model.
func (p Provider) DefaultModel() string {
	switch p {
	case ProviderOpenAI:
		return "gpt-4o-mini"
	default:
		return "gemini-1.5-flash"
	}
}

// UserAISettings is the per-user AI provider configuration. At most one
// record exists per user. The API key is stored encrypted; plaintext keys
// never appear in this struct.
type UserAISettings struct {
	UserID          uuid.UUID `json:"user_id"`
	Provider        Provider  `json:"provider"`
	EncryptedAPIKey []byte    `json:"-"`
	PreferredModel  string    `json:"preferred_model,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewUserAISettings creates a settings record for the given user. The API key
// must already be encrypted by the caller. Returns an error if validation
// fails.
func NewUserAISettings(
	userID uuid.UUID,
	provider Provider,
	encryptedAPIKey []byte,
	preferredModel string,
) (*UserAISettings, error) {
	settings := &UserAISettings{
		UserID:          userID,
		Provider:        provider,
		EncryptedAPIKey: encryptedAPIKey,
		PreferredModel:  preferredModel,
		CreatedAt:       time.Now().UTC(),
		UpdatedAt:       time.Now().UTC(),
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return settings, nil
}

// Validate checks if the settings record has valid data.
func (s *UserAISettings) Validate() error {
	if s.UserID == uuid.Nil {
		return ErrSettingsUserIDEmpty
	}

	if !s.Provider.Valid() {
		return ErrInvalidProvider
	}

	if len(s.EncryptedAPIKey) == 0 {
		return ErrSettingsKeyEmpty
	}

	return nil
}

// Model returns the model identifier to use for generation: the user's
// preferred model when set, otherwise the provider default.
func (s *UserAISettings) Model() string {
	if s.PreferredModel != "" {
		return s.PreferredModel
	}
	return s.Provider.DefaultModel()
}
