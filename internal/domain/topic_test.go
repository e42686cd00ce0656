package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewTopic(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	topic, err := NewTopic(userID, "Cell Biology", "Organelles and membranes")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if topic.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if topic.UserID != userID {
		t.Errorf("Expected user ID %s, got %s", userID, topic.UserID)
	}

	if topic.Title != "Cell Biology" {
		t.Errorf("Expected title %q, got %q", "Cell Biology", topic.Title)
	}

	if topic.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	if topic.UpdatedAt.IsZero() {
		t.Error("Expected non-zero UpdatedAt time")
	}

	// Test invalid userID
	_, err = NewTopic(uuid.Nil, "Cell Biology", "")
	if err != ErrTopicUserIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrTopicUserIDEmpty, err)
	}

	// Test empty title
	_, err = NewTopic(userID, "", "")
	if err != ErrTopicTitleEmpty {
		t.Errorf("Expected error %v, got %v", ErrTopicTitleEmpty, err)
	}

	// Empty description is allowed
	topic, err = NewTopic(userID, "Linear Algebra", "")
	if err != nil {
		t.Fatalf("Expected no error for empty description, got %v", err)
	}
	if topic.Description != "" {
		t.Errorf("Expected empty description, got %q", topic.Description)
	}
}

func TestTopicValidate(t *testing.T) {
	t.Parallel()

	validTopic := Topic{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Title:  "Thermodynamics",
	}

	if err := validTopic.Validate(); err != nil {
		t.Errorf("Expected valid topic, got error %v", err)
	}

	missingID := validTopic
	missingID.ID = uuid.Nil
	if err := missingID.Validate(); err != ErrTopicIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrTopicIDEmpty, err)
	}

	missingUser := validTopic
	missingUser.UserID = uuid.Nil
	if err := missingUser.Validate(); err != ErrTopicUserIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrTopicUserIDEmpty, err)
	}

	missingTitle := validTopic
	missingTitle.Title = ""
	if err := missingTitle.Validate(); err != ErrTopicTitleEmpty {
		t.Errorf("Expected error %v, got %v", ErrTopicTitleEmpty, err)
	}
}
