package service

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blobapp/blob-api/internal/domain"
	"github.com/blobapp/blob-api/internal/generation"
	"github.com/blobapp/blob-api/internal/mocks"
	"github.com/blobapp/blob-api/internal/store"
)

// fakeResolver stays local to this package; the resolver interface is
// defined here and mocks must not import service.
type fakeResolver struct {
	cfg      *ProviderConfig
	err      error
	resolved int
}

func (r *fakeResolver) Resolve(ctx context.Context, userID uuid.UUID) (*ProviderConfig, error) {
	r.resolved++
	if r.err != nil {
		return nil, r.err
	}
	return r.cfg, nil
}

// --- harness ---

type serviceHarness struct {
	svc          GenerationService
	topics       *mocks.MemoryTopicStore
	content      *mocks.MemoryContentStore
	resolver     *fakeResolver
	generator    *mocks.MockGenerator
	factoryCalls int

	userID  uuid.UUID
	topicID uuid.UUID
}

func passthroughTxRunner(ctx context.Context, fn store.TxFn) error {
	return fn(ctx, nil)
}

func newServiceHarness(t *testing.T) *serviceHarness {
	t.Helper()

	userID := uuid.New()
	topic, err := domain.NewTopic(userID, "Photosynthesis", "Light and dark reactions")
	require.NoError(t, err)

	topics := mocks.NewMemoryTopicStore()
	require.NoError(t, topics.Create(context.Background(), topic))

	h := &serviceHarness{
		topics:    topics,
		content:   mocks.NewMemoryContentStore(),
		generator: &mocks.MockGenerator{Errs: map[generation.Kind]error{}},
		resolver: &fakeResolver{cfg: &ProviderConfig{
			Provider: domain.ProviderGoogle,
			APIKey:   "decrypted-key",
			Model:    "gemini-1.5-flash",
		}},
		userID:  userID,
		topicID: topic.ID,
	}

	factories := map[domain.Provider]GeneratorFactory{
		domain.ProviderGoogle: func(
			ctx context.Context,
			logger *slog.Logger,
			apiKey, model string,
		) (generation.Generator, error) {
			h.factoryCalls++
			return h.generator, nil
		},
	}

	svc, err := NewGenerationService(
		h.topics, h.content, h.resolver, factories, passthroughTxRunner, slog.Default())
	require.NoError(t, err)
	h.svc = svc
	return h
}

// --- tests ---

func TestGenerateFlashcards(t *testing.T) {
	t.Parallel()

	h := newServiceHarness(t)

	cards, err := h.svc.GenerateFlashcards(context.Background(), h.userID, h.topicID,
		GenerateInput{Count: 5, Expertise: generation.ExpertiseBeginner})
	require.NoError(t, err)
	require.Len(t, cards, 5)

	assert.Len(t, h.content.Flashcards, 5, "cards should be persisted")
	for _, card := range cards {
		assert.Equal(t, h.topicID, card.TopicID)
		assert.NotEqual(t, uuid.Nil, card.ID)
	}

	require.Len(t, h.generator.Requests, 1)
	req := h.generator.Requests[0]
	assert.Equal(t, "Photosynthesis", req.TopicTitle)
	assert.Equal(t, generation.ExpertiseBeginner, req.Expertise)
	assert.Equal(t, 5, req.Count)
}

func TestGenerateFlashcardsAppendsOnRepeatedCalls(t *testing.T) {
	t.Parallel()

	h := newServiceHarness(t)
	input := GenerateInput{Count: 3}

	_, err := h.svc.GenerateFlashcards(context.Background(), h.userID, h.topicID, input)
	require.NoError(t, err)
	_, err = h.svc.GenerateFlashcards(context.Background(), h.userID, h.topicID, input)
	require.NoError(t, err)

	assert.Len(t, h.content.Flashcards, 6, "second run should append, not replace")
}

func TestGenerateAppliesDefaults(t *testing.T) {
	t.Parallel()

	h := newServiceHarness(t)

	_, err := h.svc.GenerateFlashcards(context.Background(), h.userID, h.topicID, GenerateInput{})
	require.NoError(t, err)

	require.Len(t, h.generator.Requests, 1)
	req := h.generator.Requests[0]
	assert.Equal(t, generation.DefaultFlashcardCount, req.Count)
	assert.Equal(t, generation.ExpertiseIntermediate, req.Expertise)
}

func TestGenerateTopicNotFound(t *testing.T) {
	t.Parallel()

	h := newServiceHarness(t)

	_, err := h.svc.GenerateFlashcards(
		context.Background(), h.userID, uuid.New(), GenerateInput{Count: 5})
	assert.ErrorIs(t, err, ErrTopicNotFound)
	assert.Zero(t, h.factoryCalls, "no adapter should be built")
	assert.Empty(t, h.generator.Requests, "no provider call should be made")
}

func TestGenerateTopicOwnedByAnotherUser(t *testing.T) {
	t.Parallel()

	h := newServiceHarness(t)

	_, err := h.svc.GenerateFlashcards(
		context.Background(), uuid.New(), h.topicID, GenerateInput{Count: 5})
	assert.ErrorIs(t, err, ErrTopicNotFound,
		"foreign topic must be indistinguishable from a missing one")
	assert.Empty(t, h.generator.Requests)
}

func TestGenerateMissingCredentials(t *testing.T) {
	t.Parallel()

	h := newServiceHarness(t)
	h.resolver.cfg = nil
	h.resolver.err = ErrMissingCredentials

	_, err := h.svc.GenerateFlashcards(
		context.Background(), h.userID, h.topicID, GenerateInput{Count: 5})
	assert.ErrorIs(t, err, ErrMissingCredentials)
	assert.Zero(t, h.factoryCalls, "no adapter should be built without credentials")
	assert.Empty(t, h.generator.Requests)
}

func TestGenerateRejectsOutOfRangeCounts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		count int
		run   func(h *serviceHarness, input GenerateInput) error
	}{
		{
			name:  "negative flashcard count",
			count: -1,
			run: func(h *serviceHarness, input GenerateInput) error {
				_, err := h.svc.GenerateFlashcards(context.Background(), h.userID, h.topicID, input)
				return err
			},
		},
		{
			name:  "flashcard count above maximum",
			count: generation.MaxFlashcardCount + 1,
			run: func(h *serviceHarness, input GenerateInput) error {
				_, err := h.svc.GenerateFlashcards(context.Background(), h.userID, h.topicID, input)
				return err
			},
		},
		{
			name:  "question count above maximum",
			count: generation.MaxQuestionCount + 1,
			run: func(h *serviceHarness, input GenerateInput) error {
				_, err := h.svc.GenerateQuiz(context.Background(), h.userID, h.topicID, input)
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newServiceHarness(t)

			err := tt.run(h, GenerateInput{Count: tt.count})
			assert.ErrorIs(t, err, generation.ErrInvalidRequest)
			assert.Zero(t, h.factoryCalls, "validation must happen before any adapter is built")
			assert.Empty(t, h.generator.Requests)
			assert.Empty(t, h.content.Flashcards)
			assert.Empty(t, h.content.Quizzes)
		})
	}
}

func TestGenerateBoundaryCountsAccepted(t *testing.T) {
	t.Parallel()

	h := newServiceHarness(t)

	cards, err := h.svc.GenerateFlashcards(context.Background(), h.userID, h.topicID,
		GenerateInput{Count: generation.MinFlashcardCount})
	require.NoError(t, err)
	assert.Len(t, cards, generation.MinFlashcardCount)

	cards, err = h.svc.GenerateFlashcards(context.Background(), h.userID, h.topicID,
		GenerateInput{Count: generation.MaxFlashcardCount})
	require.NoError(t, err)
	assert.Len(t, cards, generation.MaxFlashcardCount)
}

func TestGenerateUnsupportedProvider(t *testing.T) {
	t.Parallel()

	h := newServiceHarness(t)
	h.resolver.cfg.Provider = domain.ProviderOpenAI // no factory registered in harness

	_, err := h.svc.GenerateFlashcards(
		context.Background(), h.userID, h.topicID, GenerateInput{Count: 5})
	assert.ErrorIs(t, err, ErrUnsupportedProvider)
	assert.Empty(t, h.generator.Requests)
}

func TestGenerateProviderErrorsPropagate(t *testing.T) {
	t.Parallel()

	h := newServiceHarness(t)
	h.generator.Errs[generation.KindFlashcards] = generation.ErrContentBlocked

	_, err := h.svc.GenerateFlashcards(
		context.Background(), h.userID, h.topicID, GenerateInput{Count: 5})
	assert.ErrorIs(t, err, generation.ErrContentBlocked)
	assert.Empty(t, h.content.Flashcards, "nothing should be persisted on provider failure")
}

func TestGenerateQuiz(t *testing.T) {
	t.Parallel()

	h := newServiceHarness(t)

	quiz, err := h.svc.GenerateQuiz(context.Background(), h.userID, h.topicID,
		GenerateInput{Count: 4})
	require.NoError(t, err)
	require.Len(t, quiz.Questions, 4)

	for i, question := range quiz.Questions {
		assert.Equal(t, i, question.Position, "question order must be preserved")
		assert.Len(t, question.Options, 3)
	}

	require.Len(t, h.content.Quizzes, 1)
	assert.Equal(t, quiz.ID, h.content.Quizzes[0].ID)
}

func TestGenerateQuizFallbackTitle(t *testing.T) {
	t.Parallel()

	h := newServiceHarness(t)
	untitledGen := &untitledQuizGenerator{}
	factories := map[domain.Provider]GeneratorFactory{
		domain.ProviderGoogle: func(
			ctx context.Context,
			logger *slog.Logger,
			apiKey, model string,
		) (generation.Generator, error) {
			return untitledGen, nil
		},
	}
	svc, err := NewGenerationService(
		h.topics, h.content, h.resolver, factories, passthroughTxRunner, slog.Default())
	require.NoError(t, err)

	quiz, err := svc.GenerateQuiz(context.Background(), h.userID, h.topicID,
		GenerateInput{Count: 2})
	require.NoError(t, err)
	assert.Equal(t, "Photosynthesis Quiz", quiz.Title,
		"untitled quizzes fall back to the topic title")
}

// untitledQuizGenerator returns a valid quiz with an empty title.
type untitledQuizGenerator struct{}

func (g *untitledQuizGenerator) Generate(
	ctx context.Context,
	req generation.Request,
) (*generation.StructuredContent, error) {
	quiz := &generation.QuizContent{}
	for i := 0; i < req.Count; i++ {
		quiz.Questions = append(quiz.Questions, generation.QuestionContent{
			Text: fmt.Sprintf("question %d", i),
			Options: []generation.OptionContent{
				{Text: "right", Correct: true},
				{Text: "wrong", Correct: false},
			},
		})
	}
	return &generation.StructuredContent{Kind: generation.KindQuiz, Quiz: quiz}, nil
}

func TestGenerateMindMap(t *testing.T) {
	t.Parallel()

	h := newServiceHarness(t)

	mindMap, err := h.svc.GenerateMindMap(
		context.Background(), h.userID, h.topicID, GenerateInput{})
	require.NoError(t, err)

	structure, err := mindMap.DecodeStructure()
	require.NoError(t, err)
	assert.Equal(t, "root", structure.RootID)
	assert.Len(t, structure.Nodes, 2)

	require.Len(t, h.content.MindMaps, 1)
}

func TestGenerateMindMapRejectsOrphanStructure(t *testing.T) {
	t.Parallel()

	h := newServiceHarness(t)
	orphanGen := &orphanMindMapGenerator{}
	factories := map[domain.Provider]GeneratorFactory{
		domain.ProviderGoogle: func(
			ctx context.Context,
			logger *slog.Logger,
			apiKey, model string,
		) (generation.Generator, error) {
			return orphanGen, nil
		},
	}
	svc, err := NewGenerationService(
		h.topics, h.content, h.resolver, factories, passthroughTxRunner, slog.Default())
	require.NoError(t, err)

	_, err = svc.GenerateMindMap(context.Background(), h.userID, h.topicID, GenerateInput{})
	assert.ErrorIs(t, err, generation.ErrInvalidResponse)
	assert.Empty(t, h.content.MindMaps, "orphan structures must not be persisted")
}

// orphanMindMapGenerator returns a structure with an unreachable node,
// simulating an adapter that skipped validation.
type orphanMindMapGenerator struct{}

func (g *orphanMindMapGenerator) Generate(
	ctx context.Context,
	req generation.Request,
) (*generation.StructuredContent, error) {
	return &generation.StructuredContent{
		Kind: generation.KindMindMap,
		MindMap: &generation.MindMapContent{
			RootID: "root",
			Nodes: []generation.NodeContent{
				{ID: "root", Label: "Root"},
				{ID: "island", Label: "Unreachable"},
			},
		},
	}, nil
}

func TestGeneratePersistenceFailure(t *testing.T) {
	t.Parallel()

	h := newServiceHarness(t)
	h.content.FailFlashcards = true

	_, err := h.svc.GenerateFlashcards(
		context.Background(), h.userID, h.topicID, GenerateInput{Count: 5})
	assert.ErrorIs(t, err, ErrPersistenceFailed)
	assert.Empty(t, h.content.Flashcards, "failed save must leave the store unchanged")
}

func TestGenerateAll(t *testing.T) {
	t.Parallel()

	h := newServiceHarness(t)

	materials, err := h.svc.GenerateAll(
		context.Background(), h.userID, h.topicID, GenerateInput{})
	require.NoError(t, err)

	assert.Len(t, materials.Flashcards, generation.DefaultFlashcardCount)
	require.NotNil(t, materials.Quiz)
	assert.Len(t, materials.Quiz.Questions, generation.DefaultQuestionCount)
	assert.NotNil(t, materials.MindMap)
	assert.Empty(t, materials.Failures)

	assert.Equal(t, 1, h.resolver.resolved, "credentials resolved once for all kinds")
	assert.Len(t, h.generator.Requests, 3)
}

func TestGenerateAllPartialFailure(t *testing.T) {
	t.Parallel()

	h := newServiceHarness(t)
	h.generator.Errs[generation.KindQuiz] = generation.ErrTransientFailure

	materials, err := h.svc.GenerateAll(
		context.Background(), h.userID, h.topicID, GenerateInput{})
	require.NoError(t, err, "partial failure is reported in Failures, not as an error")

	assert.Len(t, materials.Flashcards, generation.DefaultFlashcardCount)
	assert.Nil(t, materials.Quiz)
	assert.NotNil(t, materials.MindMap)

	require.Contains(t, materials.Failures, generation.KindQuiz)
	assert.ErrorIs(t, materials.Failures[generation.KindQuiz], generation.ErrTransientFailure)

	// Successful kinds stay persisted despite the quiz failing.
	assert.Len(t, h.content.Flashcards, generation.DefaultFlashcardCount)
	assert.Empty(t, h.content.Quizzes)
	assert.Len(t, h.content.MindMaps, 1)
}

func TestGenerateAllPreflightFailureIsFatal(t *testing.T) {
	t.Parallel()

	h := newServiceHarness(t)
	h.resolver.cfg = nil
	h.resolver.err = ErrMissingCredentials

	_, err := h.svc.GenerateAll(context.Background(), h.userID, h.topicID, GenerateInput{})
	assert.ErrorIs(t, err, ErrMissingCredentials)
	assert.Empty(t, h.generator.Requests, "no kind should run without credentials")
}

func TestGenerateClearsDecryptedKey(t *testing.T) {
	t.Parallel()

	h := newServiceHarness(t)
	cfg := h.resolver.cfg

	_, err := h.svc.GenerateFlashcards(
		context.Background(), h.userID, h.topicID, GenerateInput{Count: 2})
	require.NoError(t, err)

	assert.Empty(t, cfg.APIKey, "decrypted key must be cleared after the run")
}

func TestNewGenerationServiceRequiresDependencies(t *testing.T) {
	t.Parallel()

	h := newServiceHarness(t)
	factories := map[domain.Provider]GeneratorFactory{
		domain.ProviderGoogle: func(
			ctx context.Context,
			logger *slog.Logger,
			apiKey, model string,
		) (generation.Generator, error) {
			return h.generator, nil
		},
	}

	_, err := NewGenerationService(nil, h.content, h.resolver, factories, passthroughTxRunner, nil)
	assert.Error(t, err)

	_, err = NewGenerationService(h.topics, nil, h.resolver, factories, passthroughTxRunner, nil)
	assert.Error(t, err)

	_, err = NewGenerationService(h.topics, h.content, nil, factories, passthroughTxRunner, nil)
	assert.Error(t, err)

	_, err = NewGenerationService(h.topics, h.content, h.resolver, nil, passthroughTxRunner, nil)
	assert.Error(t, err)

	_, err = NewGenerationService(h.topics, h.content, h.resolver, factories, nil, nil)
	assert.Error(t, err)
}
