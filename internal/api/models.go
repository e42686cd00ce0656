package api

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/blobapp/blob-api/internal/domain"
	"github.com/blobapp/blob-api/internal/service"
)

// Common request/response structures

// CreateTopicRequest defines the payload for the topic creation endpoint.
type CreateTopicRequest struct {
	Title       string `json:"title"       validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

// TopicResponse defines a topic as returned to clients.
type TopicResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UpdateAISettingsRequest defines the payload for the AI settings endpoint.
// APIKey is optional: when omitted the previously stored key is kept, so
// clients can switch provider or model without re-entering the key.
type UpdateAISettingsRequest struct {
	Provider       string `json:"provider"        validate:"required,oneof=google openai"`
	APIKey         string `json:"api_key"         validate:"omitempty,min=8,max=512"`
	PreferredModel string `json:"preferred_model" validate:"max=100"`
}

// AISettingsResponse defines the AI settings as returned to clients. The
// stored API key is never echoed back; KeyConfigured only reports whether
// one exists.
type AISettingsResponse struct {
	Provider       string `json:"provider"`
	PreferredModel string `json:"preferred_model,omitempty"`
	KeyConfigured  bool   `json:"key_configured"`
}

// GenerateRequest defines the optional payload for the flashcard, mind map,
// and combined generation endpoints. Zero values fall back to service
// defaults.
type GenerateRequest struct {
	Count             int    `json:"count"              validate:"omitempty,min=1,max=50"`
	Expertise         string `json:"expertise"          validate:"omitempty,oneof=beginner intermediate advanced"`
	AdditionalContext string `json:"additional_context" validate:"max=2000"`
}

// GenerateQuizRequest defines the optional payload for the quiz generation
// endpoint. Quizzes name their cardinality question_count and cap it at 30
// questions, below the flashcard bound.
type GenerateQuizRequest struct {
	QuestionCount     int    `json:"question_count"     validate:"omitempty,min=1,max=30"`
	Expertise         string `json:"expertise"          validate:"omitempty,oneof=beginner intermediate advanced"`
	AdditionalContext string `json:"additional_context" validate:"max=2000"`
}

// FlashcardResponse defines a generated flashcard as returned to clients.
type FlashcardResponse struct {
	ID         uuid.UUID `json:"id"`
	Front      string    `json:"front"`
	Back       string    `json:"back"`
	Difficulty string    `json:"difficulty"`
}

// QuizOptionResponse defines a single answer option within a quiz question.
type QuizOptionResponse struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	IsCorrect bool      `json:"is_correct"`
}

// QuizQuestionResponse defines a quiz question with its options.
type QuizQuestionResponse struct {
	ID      uuid.UUID            `json:"id"`
	Text    string               `json:"text"`
	Options []QuizOptionResponse `json:"options"`
}

// QuizResponse defines a generated quiz as returned to clients.
type QuizResponse struct {
	ID        uuid.UUID              `json:"id"`
	Title     string                 `json:"title"`
	Questions []QuizQuestionResponse `json:"questions"`
}

// MindMapResponse defines a generated mind map as returned to clients.
// Structure is the stored node/edge graph, passed through verbatim.
type MindMapResponse struct {
	ID        uuid.UUID       `json:"id"`
	Structure json.RawMessage `json:"structure"`
}

// StudyMaterialsResponse defines the response for the generation endpoints.
// Only the requested (and successful) kinds are populated; Failures reports
// per-kind errors from combined generation.
type StudyMaterialsResponse struct {
	Flashcards []FlashcardResponse `json:"flashcards,omitempty"`
	Quiz       *QuizResponse       `json:"quiz,omitempty"`
	MindMap    *MindMapResponse    `json:"mind_map,omitempty"`
	Failures   map[string]string   `json:"failures,omitempty"`
}

func topicToResponse(t *domain.Topic) TopicResponse {
	return TopicResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func flashcardsToResponse(cards []*domain.Flashcard) []FlashcardResponse {
	out := make([]FlashcardResponse, 0, len(cards))
	for _, c := range cards {
		out = append(out, FlashcardResponse{
			ID:         c.ID,
			Front:      c.Front,
			Back:       c.Back,
			Difficulty: string(c.Difficulty),
		})
	}
	return out
}

func quizToResponse(q *domain.Quiz) *QuizResponse {
	if q == nil {
		return nil
	}
	resp := &QuizResponse{
		ID:        q.ID,
		Title:     q.Title,
		Questions: make([]QuizQuestionResponse, 0, len(q.Questions)),
	}
	for _, question := range q.Questions {
		qr := QuizQuestionResponse{
			ID:      question.ID,
			Text:    question.Text,
			Options: make([]QuizOptionResponse, 0, len(question.Options)),
		}
		for _, opt := range question.Options {
			qr.Options = append(qr.Options, QuizOptionResponse{
				ID:        opt.ID,
				Text:      opt.Text,
				IsCorrect: opt.IsCorrect,
			})
		}
		resp.Questions = append(resp.Questions, qr)
	}
	return resp
}

func mindMapToResponse(m *domain.MindMap) *MindMapResponse {
	if m == nil {
		return nil
	}
	return &MindMapResponse{
		ID:        m.ID,
		Structure: m.Structure,
	}
}

func materialsToResponse(materials *service.StudyMaterials) StudyMaterialsResponse {
	resp := StudyMaterialsResponse{}
	if materials == nil {
		return resp
	}
	if len(materials.Flashcards) > 0 {
		resp.Flashcards = flashcardsToResponse(materials.Flashcards)
	}
	resp.Quiz = quizToResponse(materials.Quiz)
	resp.MindMap = mindMapToResponse(materials.MindMap)
	if len(materials.Failures) > 0 {
		resp.Failures = make(map[string]string, len(materials.Failures))
		for kind, err := range materials.Failures {
			resp.Failures[string(kind)] = GetSafeErrorMessage(err)
		}
	}
	return resp
}
