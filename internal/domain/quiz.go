package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Quiz-specific validation errors
var (
	// ErrQuizTopicIDEmpty is returned when a quiz's topic ID is empty.
	ErrQuizTopicIDEmpty = errors.New("quiz topic ID cannot be empty")

	// ErrQuizNoQuestions is returned when a quiz has no questions.
	ErrQuizNoQuestions = errors.New("quiz must have at least one question")

	// ErrQuestionTextEmpty is returned when a question has no text.
	ErrQuestionTextEmpty = errors.New("quiz question text cannot be empty")

	// ErrQuestionTooFewOptions is returned when a question has fewer than two
	// options.
	ErrQuestionTooFewOptions = errors.New("quiz question must have at least two options")

	// ErrQuestionCorrectCount is returned when a question does not have
	// exactly one option marked correct.
	ErrQuestionCorrectCount = errors.New("quiz question must have exactly one correct option")

	// ErrOptionTextEmpty is returned when an option has no text.
	ErrOptionTextEmpty = errors.New("quiz option text cannot be empty")
)

// Quiz is a generated multiple-choice quiz for a topic. It owns an ordered
// sequence of questions; each question owns its options.
type Quiz struct {
	ID        uuid.UUID       `json:"id"`
	TopicID   uuid.UUID       `json:"topic_id"`
	Title     string          `json:"title"`
	Questions []*QuizQuestion `json:"questions"`
	CreatedAt time.Time       `json:"created_at"`
}

// QuizQuestion is a single question within a quiz. Position preserves the
// generation order.
type QuizQuestion struct {
	ID       uuid.UUID     `json:"id"`
	QuizID   uuid.UUID     `json:"quiz_id"`
	Position int           `json:"position"`
	Text     string        `json:"text"`
	Options  []*QuizOption `json:"options"`
}

// QuizOption is one answer choice for a question. Exactly one option per
// question carries IsCorrect=true.
type QuizOption struct {
	ID         uuid.UUID `json:"id"`
	QuestionID uuid.UUID `json:"question_id"`
	Text       string    `json:"text"`
	IsCorrect  bool      `json:"is_correct"`
}

// NewQuiz creates an empty quiz for the given topic. Questions are attached
// via AddQuestion so that IDs and positions stay consistent.
func NewQuiz(topicID uuid.UUID, title string) (*Quiz, error) {
	if topicID == uuid.Nil {
		return nil, ErrQuizTopicIDEmpty
	}

	return &Quiz{
		ID:        uuid.New(),
		TopicID:   topicID,
		Title:     title,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// AddQuestion appends a question with the given text and options to the quiz,
// assigning IDs and the next position. Option correctness flags are taken as
// given; Validate enforces the exactly-one-correct invariant.
func (q *Quiz) AddQuestion(text string, options []*QuizOption) *QuizQuestion {
	question := &QuizQuestion{
		ID:       uuid.New(),
		QuizID:   q.ID,
		Position: len(q.Questions),
		Text:     text,
		Options:  options,
	}

	for _, opt := range options {
		if opt.ID == uuid.Nil {
			opt.ID = uuid.New()
		}
		opt.QuestionID = question.ID
	}

	q.Questions = append(q.Questions, question)
	return question
}

// Validate checks the quiz and all nested questions and options.
// Every question must have at least two options and exactly one correct one.
func (q *Quiz) Validate() error {
	if q.ID == uuid.Nil {
		return ErrInvalidID
	}

	if q.TopicID == uuid.Nil {
		return ErrQuizTopicIDEmpty
	}

	if len(q.Questions) == 0 {
		return ErrQuizNoQuestions
	}

	for i, question := range q.Questions {
		if err := question.Validate(); err != nil {
			return fmt.Errorf("question %d: %w", i, err)
		}
	}

	return nil
}

// Validate checks a single question and its options.
func (qq *QuizQuestion) Validate() error {
	if qq.ID == uuid.Nil {
		return ErrInvalidID
	}

	if qq.Text == "" {
		return ErrQuestionTextEmpty
	}

	if len(qq.Options) < 2 {
		return ErrQuestionTooFewOptions
	}

	correct := 0
	for _, opt := range qq.Options {
		if opt.Text == "" {
			return ErrOptionTextEmpty
		}
		if opt.IsCorrect {
			correct++
		}
	}

	if correct != 1 {
		return ErrQuestionCorrectCount
	}

	return nil
}
