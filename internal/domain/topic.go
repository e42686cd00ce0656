package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Topic-specific validation errors
var (
	// ErrTopicIDEmpty is returned when a topic ID is empty or nil.
	ErrTopicIDEmpty = errors.New("topic ID cannot be empty")

	// ErrTopicUserIDEmpty is returned when a topic's user ID is empty or nil.
	ErrTopicUserIDEmpty = errors.New("topic user ID cannot be empty")

	// ErrTopicTitleEmpty is returned when a topic's title is empty.
	ErrTopicTitleEmpty = errors.New("topic title cannot be empty")
)

// Topic represents a user-defined subject of study. All generated content
// (flashcards, quizzes, mind maps) is owned by exactly one topic, and a topic
// is owned by exactly one user.
type Topic struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTopic creates a new Topic with the given owner, title, and optional
// description. It generates a new UUID for the topic ID and sets the
// creation/update timestamps. Returns an error if validation fails.
func NewTopic(userID uuid.UUID, title, description string) (*Topic, error) {
	topic := &Topic{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Description: description,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := topic.Validate(); err != nil {
		return nil, err
	}

	return topic, nil
}

// Validate checks if the Topic has valid data.
// Returns an error if any field fails validation.
func (t *Topic) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTopicIDEmpty
	}

	if t.UserID == uuid.Nil {
		return ErrTopicUserIDEmpty
	}

	if t.Title == "" {
		return ErrTopicTitleEmpty
	}

	return nil
}
