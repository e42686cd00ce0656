package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewFlashcard(t *testing.T) {
	t.Parallel()

	topicID := uuid.New()

	card, err := NewFlashcard(topicID, "What is ATP?", "The cell's energy currency", DifficultyMedium)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if card.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if card.TopicID != topicID {
		t.Errorf("Expected topic ID %s, got %s", topicID, card.TopicID)
	}

	if card.Difficulty != DifficultyMedium {
		t.Errorf("Expected difficulty %q, got %q", DifficultyMedium, card.Difficulty)
	}

	if card.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	// Test invalid topicID
	_, err = NewFlashcard(uuid.Nil, "front", "back", DifficultyEasy)
	if err != ErrFlashcardTopicIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrFlashcardTopicIDEmpty, err)
	}

	// Test empty front
	_, err = NewFlashcard(topicID, "", "back", DifficultyEasy)
	if err != ErrFlashcardFrontEmpty {
		t.Errorf("Expected error %v, got %v", ErrFlashcardFrontEmpty, err)
	}

	// Test empty back
	_, err = NewFlashcard(topicID, "front", "", DifficultyEasy)
	if err != ErrFlashcardBackEmpty {
		t.Errorf("Expected error %v, got %v", ErrFlashcardBackEmpty, err)
	}
}

func TestDifficultyValid(t *testing.T) {
	t.Parallel()

	for _, d := range []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard} {
		if !d.Valid() {
			t.Errorf("Expected difficulty %q to be valid", d)
		}
	}

	if Difficulty("extreme").Valid() {
		t.Error("Expected unknown difficulty to be invalid")
	}

	if Difficulty("").Valid() {
		t.Error("Expected empty difficulty to be invalid")
	}
}
