package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/blobapp/blob-api/internal/generation"
)

// MockGenerator implements generation.Generator for testing.
type MockGenerator struct {
	// GenerateFn allows test cases to mock the Generate behavior entirely.
	GenerateFn func(ctx context.Context, req generation.Request) (*generation.StructuredContent, error)

	// Errs configures a per-kind error returned instead of canned content.
	Errs map[generation.Kind]error

	// mu protects the call tracking state for concurrent test cases
	mu sync.Mutex

	// Requests contains every request passed to Generate, in order.
	Requests []generation.Request
}

// Generate implements the generation.Generator interface. Without a custom
// GenerateFn it returns well-formed canned content sized to the request.
func (m *MockGenerator) Generate(
	ctx context.Context,
	req generation.Request,
) (*generation.StructuredContent, error) {
	m.mu.Lock()
	m.Requests = append(m.Requests, req)
	m.mu.Unlock()

	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, req)
	}

	if err := m.Errs[req.Kind]; err != nil {
		return nil, err
	}

	content := &generation.StructuredContent{Kind: req.Kind}
	switch req.Kind {
	case generation.KindFlashcards:
		for i := 0; i < req.Count; i++ {
			content.Flashcards = append(content.Flashcards, generation.FlashcardContent{
				Front:      fmt.Sprintf("front %d", i),
				Back:       fmt.Sprintf("back %d", i),
				Difficulty: "medium",
			})
		}
	case generation.KindQuiz:
		quiz := &generation.QuizContent{Title: "Generated Quiz"}
		for i := 0; i < req.Count; i++ {
			quiz.Questions = append(quiz.Questions, generation.QuestionContent{
				Text: fmt.Sprintf("question %d", i),
				Options: []generation.OptionContent{
					{Text: "right", Correct: true},
					{Text: "wrong", Correct: false},
					{Text: "also wrong", Correct: false},
				},
			})
		}
		content.Quiz = quiz
	case generation.KindMindMap:
		content.MindMap = &generation.MindMapContent{
			RootID: "root",
			Nodes: []generation.NodeContent{
				{ID: "root", Label: req.TopicTitle},
				{ID: "child", Label: "Subtopic"},
			},
			Edges: []generation.EdgeContent{{From: "root", To: "child"}},
		}
	}
	return content, nil
}

// CallCount returns how many times Generate was called.
func (m *MockGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Requests)
}

// Ensure MockGenerator implements generation.Generator
var _ generation.Generator = (*MockGenerator)(nil)
