package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Flashcard-specific validation errors
var (
	// ErrFlashcardTopicIDEmpty is returned when a flashcard's topic ID is empty.
	ErrFlashcardTopicIDEmpty = errors.New("flashcard topic ID cannot be empty")

	// ErrFlashcardFrontEmpty is returned when a flashcard's front side is empty.
	ErrFlashcardFrontEmpty = errors.New("flashcard front cannot be empty")

	// ErrFlashcardBackEmpty is returned when a flashcard's back side is empty.
	ErrFlashcardBackEmpty = errors.New("flashcard back cannot be empty")
)

// Difficulty is the self-assessed difficulty of a flashcard.
type Difficulty string

// Supported flashcard difficulties.
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is one of the supported difficulties.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

// Flashcard is a single generated study card belonging to a topic.
type Flashcard struct {
	ID         uuid.UUID  `json:"id"`
	TopicID    uuid.UUID  `json:"topic_id"`
	Front      string     `json:"front"`
	Back       string     `json:"back"`
	Difficulty Difficulty `json:"difficulty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// NewFlashcard creates a flashcard for the given topic.
// Returns an error if validation fails.
func NewFlashcard(topicID uuid.UUID, front, back string, difficulty Difficulty) (*Flashcard, error) {
	card := &Flashcard{
		ID:         uuid.New(),
		TopicID:    topicID,
		Front:      front,
		Back:       back,
		Difficulty: difficulty,
		CreatedAt:  time.Now().UTC(),
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Flashcard has valid data.
func (c *Flashcard) Validate() error {
	if c.ID == uuid.Nil {
		return ErrInvalidID
	}

	if c.TopicID == uuid.Nil {
		return ErrFlashcardTopicIDEmpty
	}

	if c.Front == "" {
		return ErrFlashcardFrontEmpty
	}

	if c.Back == "" {
		return ErrFlashcardBackEmpty
	}

	if !c.Difficulty.Valid() {
		return ErrInvalidDifficulty
	}

	return nil
}
