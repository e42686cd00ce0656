package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/blobapp/blob-api/internal/api/shared"
	"github.com/blobapp/blob-api/internal/generation"
	"github.com/blobapp/blob-api/internal/platform/logger"
	"github.com/blobapp/blob-api/internal/service"
)

// errGenerateParams marks a body that parsed as JSON but failed field
// validation, so the response can name the parameters rather than the format.
var errGenerateParams = errors.New("invalid generation parameters")

// GenerateHandler handles study-material generation HTTP requests.
type GenerateHandler struct {
	generationService service.GenerationService
	logger            *slog.Logger
}

// NewGenerateHandler creates a new GenerateHandler.
func NewGenerateHandler(
	generationService service.GenerationService,
	logger *slog.Logger,
) *GenerateHandler {
	if generationService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("generationService cannot be nil for GenerateHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for GenerateHandler")
	}

	return &GenerateHandler{
		generationService: generationService,
		logger:            logger.With(slog.String("component", "generate_handler")),
	}
}

// GenerateAll handles POST /topics/{id}/generate requests.
// It generates flashcards, a quiz, and a mind map in one call; each kind
// succeeds or fails independently.
func (h *GenerateHandler) GenerateAll(w http.ResponseWriter, r *http.Request) {
	h.handleGenerate(w, r, "", decodeGenerateInput, func(r *http.Request, userID, topicID uuid.UUID, input service.GenerateInput) (StudyMaterialsResponse, error) {
		materials, err := h.generationService.GenerateAll(r.Context(), userID, topicID, input)
		if err != nil {
			return StudyMaterialsResponse{}, err
		}
		return materialsToResponse(materials), nil
	})
}

// GenerateFlashcards handles POST /topics/{id}/generate/flashcards requests.
func (h *GenerateHandler) GenerateFlashcards(w http.ResponseWriter, r *http.Request) {
	h.handleGenerate(w, r, generation.KindFlashcards, decodeGenerateInput, func(r *http.Request, userID, topicID uuid.UUID, input service.GenerateInput) (StudyMaterialsResponse, error) {
		cards, err := h.generationService.GenerateFlashcards(r.Context(), userID, topicID, input)
		if err != nil {
			return StudyMaterialsResponse{}, err
		}
		return StudyMaterialsResponse{Flashcards: flashcardsToResponse(cards)}, nil
	})
}

// GenerateQuiz handles POST /topics/{id}/generate/quiz requests. The quiz
// body carries question_count rather than the flashcard endpoints' count.
func (h *GenerateHandler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	h.handleGenerate(w, r, generation.KindQuiz, decodeQuizInput, func(r *http.Request, userID, topicID uuid.UUID, input service.GenerateInput) (StudyMaterialsResponse, error) {
		quiz, err := h.generationService.GenerateQuiz(r.Context(), userID, topicID, input)
		if err != nil {
			return StudyMaterialsResponse{}, err
		}
		return StudyMaterialsResponse{Quiz: quizToResponse(quiz)}, nil
	})
}

// GenerateMindMap handles POST /topics/{id}/generate/mindmap requests.
func (h *GenerateHandler) GenerateMindMap(w http.ResponseWriter, r *http.Request) {
	h.handleGenerate(w, r, generation.KindMindMap, decodeGenerateInput, func(r *http.Request, userID, topicID uuid.UUID, input service.GenerateInput) (StudyMaterialsResponse, error) {
		mindMap, err := h.generationService.GenerateMindMap(r.Context(), userID, topicID, input)
		if err != nil {
			return StudyMaterialsResponse{}, err
		}
		return StudyMaterialsResponse{MindMap: mindMapToResponse(mindMap)}, nil
	})
}

// handleGenerate implements the shared request flow for the four generation
// endpoints: auth context, topic ID parsing, optional body decoding, the
// service call, and error mapping.
func (h *GenerateHandler) handleGenerate(
	w http.ResponseWriter,
	r *http.Request,
	kind generation.Kind,
	decode func(r *http.Request) (service.GenerateInput, error),
	run func(r *http.Request, userID, topicID uuid.UUID, input service.GenerateInput) (StudyMaterialsResponse, error),
) {
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

	input, err := decode(r)
	if err != nil {
		if errors.Is(err, errGenerateParams) {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid generation parameters")
		} else {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		}
		return
	}

	log.Debug("generating study materials",
		slog.String("user_id", userID.String()),
		slog.String("topic_id", topicID.String()),
		slog.String("kind", string(kind)))

	response, err := run(r, userID, topicID, input)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, response)
}

// decodeGenerateInput decodes and validates the optional request body. An
// empty body is valid and yields service defaults.
func decodeGenerateInput(r *http.Request) (service.GenerateInput, error) {
	var req GenerateRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := shared.DecodeJSON(r, &req); err != nil {
			return service.GenerateInput{}, err
		}
		if err := shared.ValidateRequest(&req); err != nil {
			return service.GenerateInput{}, fmt.Errorf("%w: %v", errGenerateParams, err)
		}
	}

	input := service.GenerateInput{
		Count:             req.Count,
		AdditionalContext: req.AdditionalContext,
	}
	if req.Expertise != "" {
		input.Expertise = generation.ExpertiseLevel(req.Expertise)
	}
	return input, nil
}

// decodeQuizInput decodes and validates the optional quiz request body, whose
// question_count field carries the quiz-specific bound.
func decodeQuizInput(r *http.Request) (service.GenerateInput, error) {
	var req GenerateQuizRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := shared.DecodeJSON(r, &req); err != nil {
			return service.GenerateInput{}, err
		}
		if err := shared.ValidateRequest(&req); err != nil {
			return service.GenerateInput{}, fmt.Errorf("%w: %v", errGenerateParams, err)
		}
	}

	input := service.GenerateInput{
		Count:             req.QuestionCount,
		AdditionalContext: req.AdditionalContext,
	}
	if req.Expertise != "" {
		input.Expertise = generation.ExpertiseLevel(req.Expertise)
	}
	return input, nil
}
