package mocks

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"sync"

	"github.com/blobapp/blob-api/internal/domain"
	"github.com/blobapp/blob-api/internal/store"
	"github.com/google/uuid"
)

// ErrStoreFailed is the generic failure returned by the in-memory stores
// when a Fail flag is set.
var ErrStoreFailed = errors.New("simulated store failure")

// MemoryTopicStore is an in-memory implementation of store.TopicStore.
type MemoryTopicStore struct {
	mu     sync.RWMutex
	topics map[uuid.UUID]*domain.Topic

	// FailCreate makes Create return ErrStoreFailed.
	FailCreate bool
}

// NewMemoryTopicStore creates an empty in-memory topic store.
func NewMemoryTopicStore() *MemoryTopicStore {
	return &MemoryTopicStore{topics: make(map[uuid.UUID]*domain.Topic)}
}

// Create saves a topic after validating it.
func (s *MemoryTopicStore) Create(ctx context.Context, topic *domain.Topic) error {
	if s.FailCreate {
		return ErrStoreFailed
	}
	if err := topic.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *topic
	s.topics[topic.ID] = &copied
	return nil
}

// GetForUser retrieves a topic scoped to its owner. A topic owned by a
// different user is indistinguishable from a missing one.
func (s *MemoryTopicStore) GetForUser(
	ctx context.Context,
	topicID, userID uuid.UUID,
) (*domain.Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	topic, ok := s.topics[topicID]
	if !ok || topic.UserID != userID {
		return nil, store.ErrTopicNotFound
	}
	copied := *topic
	return &copied, nil
}

// ListByUser returns the user's topics, newest first.
func (s *MemoryTopicStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Topic
	for _, topic := range s.topics {
		if topic.UserID == userID {
			copied := *topic
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// WithTx returns the store itself; the in-memory store has no transactions.
func (s *MemoryTopicStore) WithTx(tx *sql.Tx) store.TopicStore {
	return s
}

// MemorySettingsStore is an in-memory implementation of store.SettingsStore.
type MemorySettingsStore struct {
	mu       sync.RWMutex
	settings map[uuid.UUID]*domain.UserAISettings

	// FailUpsert makes Upsert return ErrStoreFailed.
	FailUpsert bool
}

// NewMemorySettingsStore creates an empty in-memory settings store.
func NewMemorySettingsStore() *MemorySettingsStore {
	return &MemorySettingsStore{settings: make(map[uuid.UUID]*domain.UserAISettings)}
}

// Get retrieves the settings record for a user.
func (s *MemorySettingsStore) Get(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.UserAISettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	settings, ok := s.settings[userID]
	if !ok {
		return nil, store.ErrSettingsNotFound
	}
	copied := *settings
	return &copied, nil
}

// Upsert creates or replaces the user's settings record.
func (s *MemorySettingsStore) Upsert(
	ctx context.Context,
	settings *domain.UserAISettings,
) error {
	if s.FailUpsert {
		return ErrStoreFailed
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *settings
	s.settings[settings.UserID] = &copied
	return nil
}

// WithTx returns the store itself; the in-memory store has no transactions.
func (s *MemorySettingsStore) WithTx(tx *sql.Tx) store.SettingsStore {
	return s
}

// MemoryContentStore is an in-memory implementation of store.ContentStore.
// The per-kind Fail flags let tests simulate persistence failures for one
// content kind while the others succeed.
type MemoryContentStore struct {
	mu         sync.RWMutex
	Flashcards []*domain.Flashcard
	Quizzes    []*domain.Quiz
	MindMaps   []*domain.MindMap

	FailFlashcards bool
	FailQuiz       bool
	FailMindMap    bool
}

// NewMemoryContentStore creates an empty in-memory content store.
func NewMemoryContentStore() *MemoryContentStore {
	return &MemoryContentStore{}
}

// SaveFlashcards appends the given cards after validating each.
func (s *MemoryContentStore) SaveFlashcards(
	ctx context.Context,
	cards []*domain.Flashcard,
) error {
	if s.FailFlashcards {
		return ErrStoreFailed
	}
	for _, card := range cards {
		if err := card.Validate(); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.Flashcards = append(s.Flashcards, cards...)
	return nil
}

// SaveQuiz appends the quiz after validating it and its questions.
func (s *MemoryContentStore) SaveQuiz(ctx context.Context, quiz *domain.Quiz) error {
	if s.FailQuiz {
		return ErrStoreFailed
	}
	if err := quiz.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.Quizzes = append(s.Quizzes, quiz)
	return nil
}

// SaveMindMap appends the mind map after validating its structure.
func (s *MemoryContentStore) SaveMindMap(ctx context.Context, mindMap *domain.MindMap) error {
	if s.FailMindMap {
		return ErrStoreFailed
	}
	if err := mindMap.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.MindMaps = append(s.MindMaps, mindMap)
	return nil
}

// WithTx returns the store itself; the in-memory store has no transactions.
func (s *MemoryContentStore) WithTx(tx *sql.Tx) store.ContentStore {
	return s
}

// Interface compliance checks
var (
	_ store.TopicStore    = (*MemoryTopicStore)(nil)
	_ store.SettingsStore = (*MemorySettingsStore)(nil)
	_ store.ContentStore  = (*MemoryContentStore)(nil)
)
