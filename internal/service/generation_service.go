package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/blobapp/blob-api/internal/domain"
	"github.com/blobapp/blob-api/internal/generation"
	"github.com/blobapp/blob-api/internal/platform/logger"
	"github.com/blobapp/blob-api/internal/store"
	"github.com/google/uuid"
)

// GeneratorFactory builds a provider adapter from resolved credentials.
// Factories are registered per provider; the composition root wires the
// concrete Gemini/OpenAI constructors so this package stays free of vendor
// SDK imports.
type GeneratorFactory func(
	ctx context.Context,
	logger *slog.Logger,
	apiKey, model string,
) (generation.Generator, error)

// GenerateInput carries the caller-supplied generation parameters shared by
// all kinds. Count is ignored for mind maps.
type GenerateInput struct {
	Count             int
	Expertise         generation.ExpertiseLevel
	AdditionalContext string
}

// StudyMaterials is the combined result of GenerateAll. Each kind succeeds or
// fails independently; Failures records the error for kinds that failed while
// the successful kinds' content stays persisted.
type StudyMaterials struct {
	Flashcards []*domain.Flashcard
	Quiz       *domain.Quiz
	MindMap    *domain.MindMap
	Failures   map[generation.Kind]error
}

// GenerationService runs the study-material generation pipeline: ownership
// check, credential resolution, provider call, structured validation, and
// atomic persistence.
type GenerationService interface {
	// GenerateFlashcards generates and persists input.Count flashcards for
	// the topic. Repeated calls append; prior cards are never replaced.
	GenerateFlashcards(
		ctx context.Context,
		userID, topicID uuid.UUID,
		input GenerateInput,
	) ([]*domain.Flashcard, error)

	// GenerateQuiz generates and persists a quiz with input.Count questions.
	GenerateQuiz(
		ctx context.Context,
		userID, topicID uuid.UUID,
		input GenerateInput,
	) (*domain.Quiz, error)

	// GenerateMindMap generates and persists a mind map for the topic.
	GenerateMindMap(
		ctx context.Context,
		userID, topicID uuid.UUID,
		input GenerateInput,
	) (*domain.MindMap, error)

	// GenerateAll composes the three kind pipelines with default counts.
	// Ownership and credentials are checked once up front; after that each
	// kind runs its own provider call and its own persistence transaction,
	// so one kind failing never rolls back another kind's persisted content.
	GenerateAll(
		ctx context.Context,
		userID, topicID uuid.UUID,
		input GenerateInput,
	) (*StudyMaterials, error)
}

// generationService implements GenerationService.
type generationService struct {
	topics    store.TopicStore
	content   store.ContentStore
	resolver  CredentialResolver
	factories map[domain.Provider]GeneratorFactory
	runTx     store.TxRunner
	logger    *slog.Logger
}

// NewGenerationService creates a GenerationService.
// It returns an error if any of the required dependencies are nil.
func NewGenerationService(
	topics store.TopicStore,
	content store.ContentStore,
	resolver CredentialResolver,
	factories map[domain.Provider]GeneratorFactory,
	runTx store.TxRunner,
	logger *slog.Logger,
) (GenerationService, error) {
	if topics == nil {
		return nil, errors.New("topic store cannot be nil")
	}
	if content == nil {
		return nil, errors.New("content store cannot be nil")
	}
	if resolver == nil {
		return nil, errors.New("credential resolver cannot be nil")
	}
	if len(factories) == 0 {
		return nil, errors.New("at least one generator factory is required")
	}
	if runTx == nil {
		return nil, errors.New("transaction runner cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &generationService{
		topics:    topics,
		content:   content,
		resolver:  resolver,
		factories: factories,
		runTx:     runTx,
		logger:    logger.With(slog.String("component", "generation_service")),
	}, nil
}

// GenerateFlashcards implements GenerationService.
func (s *generationService) GenerateFlashcards(
	ctx context.Context,
	userID, topicID uuid.UUID,
	input GenerateInput,
) ([]*domain.Flashcard, error) {
	topic, cfg, err := s.prepare(ctx, userID, topicID)
	if err != nil {
		return nil, err
	}
	defer clearKey(cfg)

	content, err := s.invoke(ctx, cfg, buildRequest(generation.KindFlashcards, topic, input))
	if err != nil {
		return nil, err
	}

	return s.persistFlashcards(ctx, topic.ID, content)
}

// GenerateQuiz implements GenerationService.
func (s *generationService) GenerateQuiz(
	ctx context.Context,
	userID, topicID uuid.UUID,
	input GenerateInput,
) (*domain.Quiz, error) {
	topic, cfg, err := s.prepare(ctx, userID, topicID)
	if err != nil {
		return nil, err
	}
	defer clearKey(cfg)

	content, err := s.invoke(ctx, cfg, buildRequest(generation.KindQuiz, topic, input))
	if err != nil {
		return nil, err
	}

	return s.persistQuiz(ctx, topic, content)
}

// GenerateMindMap implements GenerationService.
func (s *generationService) GenerateMindMap(
	ctx context.Context,
	userID, topicID uuid.UUID,
	input GenerateInput,
) (*domain.MindMap, error) {
	topic, cfg, err := s.prepare(ctx, userID, topicID)
	if err != nil {
		return nil, err
	}
	defer clearKey(cfg)

	content, err := s.invoke(ctx, cfg, buildRequest(generation.KindMindMap, topic, input))
	if err != nil {
		return nil, err
	}

	return s.persistMindMap(ctx, topic.ID, content)
}

// GenerateAll implements GenerationService. Partial failure is deliberate:
// content persisted for one kind is kept even when a later kind fails, and
// the per-kind error is reported in Failures rather than rolled back.
func (s *generationService) GenerateAll(
	ctx context.Context,
	userID, topicID uuid.UUID,
	input GenerateInput,
) (*StudyMaterials, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	topic, cfg, err := s.prepare(ctx, userID, topicID)
	if err != nil {
		return nil, err
	}
	defer clearKey(cfg)

	materials := &StudyMaterials{Failures: make(map[generation.Kind]error)}

	flashcardInput := input
	flashcardInput.Count = generation.DefaultFlashcardCount
	if content, err := s.invoke(ctx, cfg,
		buildRequest(generation.KindFlashcards, topic, flashcardInput)); err != nil {
		materials.Failures[generation.KindFlashcards] = err
	} else if cards, err := s.persistFlashcards(ctx, topic.ID, content); err != nil {
		materials.Failures[generation.KindFlashcards] = err
	} else {
		materials.Flashcards = cards
	}

	quizInput := input
	quizInput.Count = generation.DefaultQuestionCount
	if content, err := s.invoke(ctx, cfg,
		buildRequest(generation.KindQuiz, topic, quizInput)); err != nil {
		materials.Failures[generation.KindQuiz] = err
	} else if quiz, err := s.persistQuiz(ctx, topic, content); err != nil {
		materials.Failures[generation.KindQuiz] = err
	} else {
		materials.Quiz = quiz
	}

	if content, err := s.invoke(ctx, cfg,
		buildRequest(generation.KindMindMap, topic, input)); err != nil {
		materials.Failures[generation.KindMindMap] = err
	} else if mindMap, err := s.persistMindMap(ctx, topic.ID, content); err != nil {
		materials.Failures[generation.KindMindMap] = err
	} else {
		materials.MindMap = mindMap
	}

	log.Info("study material generation completed",
		slog.String("topic_id", topic.ID.String()),
		slog.Int("failed_kinds", len(materials.Failures)))

	return materials, nil
}

// prepare runs the fail-fast preflight shared by every kind: the combined
// existence+ownership lookup, then credential resolution. No provider call
// happens before both succeed.
func (s *generationService) prepare(
	ctx context.Context,
	userID, topicID uuid.UUID,
) (*domain.Topic, *ProviderConfig, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	topic, err := s.topics.GetForUser(ctx, topicID, userID)
	if err != nil {
		if errors.Is(err, store.ErrTopicNotFound) {
			return nil, nil, ErrTopicNotFound
		}
		return nil, nil, NewGenerationServiceError("load_topic", "failed to load topic", err)
	}

	cfg, err := s.resolver.Resolve(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	log.Debug("generation preflight passed",
		slog.String("topic_id", topic.ID.String()),
		slog.String("provider", string(cfg.Provider)))

	return topic, cfg, nil
}

// invoke validates the request, builds the provider adapter for the resolved
// credentials, and runs the single provider call. Provider and validation
// errors are propagated unchanged; no retries happen here.
func (s *generationService) invoke(
	ctx context.Context,
	cfg *ProviderConfig,
	req generation.Request,
) (*generation.StructuredContent, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	factory, ok := s.factories[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, cfg.Provider)
	}

	gen, err := factory(ctx, s.logger, cfg.APIKey, cfg.Model)
	if err != nil {
		return nil, NewGenerationServiceError("build_generator",
			"failed to construct provider adapter", err)
	}

	return gen.Generate(ctx, req)
}

// persistFlashcards converts structured content into domain flashcards and
// appends them in one transaction.
func (s *generationService) persistFlashcards(
	ctx context.Context,
	topicID uuid.UUID,
	content *generation.StructuredContent,
) ([]*domain.Flashcard, error) {
	cards := make([]*domain.Flashcard, 0, len(content.Flashcards))
	for _, fc := range content.Flashcards {
		card, err := domain.NewFlashcard(topicID, fc.Front, fc.Back, domain.Difficulty(fc.Difficulty))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", generation.ErrInvalidResponse, err)
		}
		cards = append(cards, card)
	}

	err := s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.content.WithTx(tx).SaveFlashcards(ctx, cards)
	})
	if err != nil {
		return nil, s.persistenceError(ctx, "flashcards", topicID, err)
	}

	return cards, nil
}

// persistQuiz converts structured content into a domain quiz and writes the
// quiz, its questions, and their options in one transaction.
func (s *generationService) persistQuiz(
	ctx context.Context,
	topic *domain.Topic,
	content *generation.StructuredContent,
) (*domain.Quiz, error) {
	title := content.Quiz.Title
	if title == "" {
		title = fmt.Sprintf("%s Quiz", topic.Title)
	}

	quiz, err := domain.NewQuiz(topic.ID, title)
	if err != nil {
		return nil, NewGenerationServiceError("persist_quiz", "failed to build quiz", err)
	}

	for _, question := range content.Quiz.Questions {
		options := make([]*domain.QuizOption, 0, len(question.Options))
		for _, opt := range question.Options {
			options = append(options, &domain.QuizOption{
				Text:      opt.Text,
				IsCorrect: opt.Correct,
			})
		}
		quiz.AddQuestion(question.Text, options)
	}

	if err := quiz.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrInvalidResponse, err)
	}

	err = s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.content.WithTx(tx).SaveQuiz(ctx, quiz)
	})
	if err != nil {
		return nil, s.persistenceError(ctx, "quiz", topic.ID, err)
	}

	return quiz, nil
}

// persistMindMap converts structured content into a domain mind map and
// writes it. Structures with orphan nodes are rejected before any row is
// written.
func (s *generationService) persistMindMap(
	ctx context.Context,
	topicID uuid.UUID,
	content *generation.StructuredContent,
) (*domain.MindMap, error) {
	structure := &domain.MindMapStructure{RootID: content.MindMap.RootID}
	for _, n := range content.MindMap.Nodes {
		structure.Nodes = append(structure.Nodes, domain.MindMapNode{ID: n.ID, Label: n.Label})
	}
	for _, e := range content.MindMap.Edges {
		structure.Edges = append(structure.Edges, domain.MindMapEdge{From: e.From, To: e.To})
	}

	mindMap, err := domain.NewMindMap(topicID, structure)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrInvalidResponse, err)
	}

	err = s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.content.WithTx(tx).SaveMindMap(ctx, mindMap)
	})
	if err != nil {
		return nil, s.persistenceError(ctx, "mind map", topicID, err)
	}

	return mindMap, nil
}

// persistenceError logs the storage failure distinctly and returns the
// stable ErrPersistenceFailed outcome. The transaction has already been
// rolled back; no partial rows survive.
func (s *generationService) persistenceError(
	ctx context.Context,
	entity string,
	topicID uuid.UUID,
	err error,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Error("failed to persist generated content",
		slog.String("entity", entity),
		slog.String("topic_id", topicID.String()),
		slog.String("error", err.Error()))
	return fmt.Errorf("%w: %s", ErrPersistenceFailed, entity)
}

// buildRequest assembles the ephemeral generation request for one kind.
// Unset expertise and count fall back to the defaults; an explicit
// out-of-range count still fails request validation before any provider
// call.
func buildRequest(
	kind generation.Kind,
	topic *domain.Topic,
	input GenerateInput,
) generation.Request {
	expertise := input.Expertise
	if expertise == "" {
		expertise = generation.ExpertiseIntermediate
	}

	count := input.Count
	if count == 0 {
		switch kind {
		case generation.KindFlashcards:
			count = generation.DefaultFlashcardCount
		case generation.KindQuiz:
			count = generation.DefaultQuestionCount
		}
	}

	return generation.Request{
		Kind:              kind,
		TopicTitle:        topic.Title,
		TopicDescription:  topic.Description,
		Expertise:         expertise,
		AdditionalContext: input.AdditionalContext,
		Count:             count,
	}
}

// clearKey drops the decrypted API key once the provider calls of a pipeline
// run have completed, on every exit path.
func clearKey(cfg *ProviderConfig) {
	if cfg != nil {
		cfg.APIKey = ""
	}
}
