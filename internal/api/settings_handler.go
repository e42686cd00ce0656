package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/blobapp/blob-api/internal/api/shared"
	"github.com/blobapp/blob-api/internal/domain"
	"github.com/blobapp/blob-api/internal/platform/keycrypt"
	"github.com/blobapp/blob-api/internal/platform/logger"
	"github.com/blobapp/blob-api/internal/store"
)

// SettingsHandler handles AI provider settings HTTP requests. API keys are
// encrypted on the way in and never returned on the way out.
type SettingsHandler struct {
	settingsStore store.SettingsStore
	codec         *keycrypt.Codec
	logger        *slog.Logger
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(
	settingsStore store.SettingsStore,
	codec *keycrypt.Codec,
	logger *slog.Logger,
) *SettingsHandler {
	if settingsStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("settingsStore cannot be nil for SettingsHandler")
	}
	if codec == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("codec cannot be nil for SettingsHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SettingsHandler")
	}

	return &SettingsHandler{
		settingsStore: settingsStore,
		codec:         codec,
		logger:        logger.With(slog.String("component", "settings_handler")),
	}
}

// Get handles GET /settings/ai requests.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	settings, err := h.settingsStore.Get(r.Context(), userID)
	if err != nil {
		if store.IsNotFoundError(err) {
			shared.RespondWithError(w, r, http.StatusNotFound, "AI settings not configured")
			return
		}
		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(err), "Failed to get AI settings", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, settingsToResponse(settings))
}

// Update handles PUT /settings/ai requests. When the request omits the API
// key, the previously stored key is kept so clients can change provider or
// model without re-entering it.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req UpdateAISettingsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid settings data")
		return
	}

	encryptedKey, err := h.resolveEncryptedKey(r, userID, req.APIKey)
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r, http.StatusBadRequest, "An API key is required", err)
		return
	}

	settings, err := domain.NewUserAISettings(
		userID, domain.Provider(req.Provider), encryptedKey, req.PreferredModel)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid settings data", err)
		return
	}

	if err := h.settingsStore.Upsert(r.Context(), settings); err != nil {
		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(err), "Failed to save AI settings", err)
		return
	}

	log.Debug("AI settings updated",
		slog.String("user_id", userID.String()),
		slog.String("provider", req.Provider))
	shared.RespondWithJSON(w, r, http.StatusOK, settingsToResponse(settings))
}

// resolveEncryptedKey encrypts the submitted key, or falls back to the
// caller's previously stored ciphertext when no key was submitted.
func (h *SettingsHandler) resolveEncryptedKey(
	r *http.Request,
	userID uuid.UUID,
	apiKey string,
) ([]byte, error) {
	if apiKey != "" {
		return h.codec.Encrypt(apiKey)
	}

	existing, err := h.settingsStore.Get(r.Context(), userID)
	if err != nil {
		return nil, err
	}
	if len(existing.EncryptedAPIKey) == 0 {
		return nil, store.ErrSettingsNotFound
	}
	return existing.EncryptedAPIKey, nil
}

func settingsToResponse(settings *domain.UserAISettings) AISettingsResponse {
	return AISettingsResponse{
		Provider:       string(settings.Provider),
		PreferredModel: settings.PreferredModel,
		KeyConfigured:  len(settings.EncryptedAPIKey) > 0,
	}
}
