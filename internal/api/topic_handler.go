package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/blobapp/blob-api/internal/api/shared"
	"github.com/blobapp/blob-api/internal/domain"
	"github.com/blobapp/blob-api/internal/platform/logger"
	"github.com/blobapp/blob-api/internal/store"
)

// TopicHandler handles topic-related HTTP requests.
type TopicHandler struct {
	topicStore store.TopicStore
	logger     *slog.Logger
}

// NewTopicHandler creates a new TopicHandler.
func NewTopicHandler(topicStore store.TopicStore, logger *slog.Logger) *TopicHandler {
	if topicStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("topicStore cannot be nil for TopicHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TopicHandler")
	}

	return &TopicHandler{
		topicStore: topicStore,
		logger:     logger.With(slog.String("component", "topic_handler")),
	}
}

// Create handles POST /topics requests.
func (h *TopicHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req CreateTopicRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid topic data")
		return
	}

	topic, err := domain.NewTopic(userID, req.Title, req.Description)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid topic data", err)
		return
	}

	if err := h.topicStore.Create(r.Context(), topic); err != nil {
		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(err), "Failed to create topic", err)
		return
	}

	log.Debug("topic created",
		slog.String("user_id", userID.String()),
		slog.String("topic_id", topic.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, topicToResponse(topic))
}

// List handles GET /topics requests. It returns all topics owned by the
// authenticated user, newest first.
func (h *TopicHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	topics, err := h.topicStore.ListByUser(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(err), "Failed to list topics", err)
		return
	}

	responses := make([]TopicResponse, 0, len(topics))
	for _, topic := range topics {
		responses = append(responses, topicToResponse(topic))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// Get handles GET /topics/{id} requests. The lookup is scoped to the
// authenticated user; topics owned by other users are reported as not found.
func (h *TopicHandler) Get(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	topicID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid topic ID")
		return
	}

	topic, err := h.topicStore.GetForUser(r.Context(), topicID, userID)
	if err != nil {
		if store.IsNotFoundError(err) {
			shared.RespondWithError(
				w, r, http.StatusNotFound, "Topic not found or you don't have access to it")
			return
		}
		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(err), "Failed to get topic", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, topicToResponse(topic))
}
