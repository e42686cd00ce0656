package generation

import (
	"fmt"
)

// FlashcardContent is a single normalized flashcard as returned by an
// adapter, before persistence assigns IDs.
type FlashcardContent struct {
	// Front is the question or prompt side of the flashcard.
	Front string `json:"front"`

	// Back is the answer side of the flashcard.
	Back string `json:"back"`

	// Difficulty is one of easy, medium, hard.
	Difficulty string `json:"difficulty"`
}

// OptionContent is one answer choice of a quiz question.
type OptionContent struct {
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

// QuestionContent is a single quiz question with its options.
type QuestionContent struct {
	Text    string          `json:"text"`
	Options []OptionContent `json:"options"`
}

// QuizContent is a normalized generated quiz.
type QuizContent struct {
	Title     string            `json:"title"`
	Questions []QuestionContent `json:"questions"`
}

// NodeContent is a labeled concept in a generated mind map.
type NodeContent struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// EdgeContent is a directed relationship between two mind map concepts.
type EdgeContent struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// MindMapContent is a normalized generated mind map graph.
type MindMapContent struct {
	RootID string        `json:"root_id"`
	Nodes  []NodeContent `json:"nodes"`
	Edges  []EdgeContent `json:"edges"`
}

// StructuredContent is the kind-tagged, provider-agnostic result of a
// generation call. Exactly one of the payload fields is set, matching Kind.
type StructuredContent struct {
	Kind       Kind
	Flashcards []FlashcardContent
	Quiz       *QuizContent
	MindMap    *MindMapContent
}

// validDifficulties mirrors domain.Difficulty; adapters reject anything else
// rather than coercing.
var validDifficulties = map[string]bool{
	"easy":   true,
	"medium": true,
	"hard":   true,
}

// Validate checks the structured content against the data-model invariants.
// Adapters must call this before returning success so that a malformed model
// response surfaces as ErrInvalidResponse, never as bad persisted data.
func (c *StructuredContent) Validate() error {
	switch c.Kind {
	case KindFlashcards:
		return c.validateFlashcards()
	case KindQuiz:
		return c.validateQuiz()
	case KindMindMap:
		return c.validateMindMap()
	default:
		return fmt.Errorf("%w: unknown content kind %q", ErrInvalidResponse, c.Kind)
	}
}

func (c *StructuredContent) validateFlashcards() error {
	if len(c.Flashcards) == 0 {
		return fmt.Errorf("%w: no flashcards in response", ErrInvalidResponse)
	}

	for i, card := range c.Flashcards {
		if card.Front == "" {
			return fmt.Errorf("%w: flashcard %d missing front side", ErrInvalidResponse, i)
		}
		if card.Back == "" {
			return fmt.Errorf("%w: flashcard %d missing back side", ErrInvalidResponse, i)
		}
		if !validDifficulties[card.Difficulty] {
			return fmt.Errorf("%w: flashcard %d has unknown difficulty %q",
				ErrInvalidResponse, i, card.Difficulty)
		}
	}

	return nil
}

func (c *StructuredContent) validateQuiz() error {
	if c.Quiz == nil || len(c.Quiz.Questions) == 0 {
		return fmt.Errorf("%w: no quiz questions in response", ErrInvalidResponse)
	}

	for i, question := range c.Quiz.Questions {
		if question.Text == "" {
			return fmt.Errorf("%w: question %d missing text", ErrInvalidResponse, i)
		}
		if len(question.Options) < 2 {
			return fmt.Errorf("%w: question %d has fewer than two options", ErrInvalidResponse, i)
		}

		correct := 0
		for j, opt := range question.Options {
			if opt.Text == "" {
				return fmt.Errorf("%w: question %d option %d missing text",
					ErrInvalidResponse, i, j)
			}
			if opt.Correct {
				correct++
			}
		}
		if correct != 1 {
			return fmt.Errorf("%w: question %d has %d correct options, want exactly 1",
				ErrInvalidResponse, i, correct)
		}
	}

	return nil
}

func (c *StructuredContent) validateMindMap() error {
	m := c.MindMap
	if m == nil || m.RootID == "" || len(m.Nodes) == 0 {
		return fmt.Errorf("%w: mind map missing root node", ErrInvalidResponse)
	}

	nodes := make(map[string]bool, len(m.Nodes))
	for i, n := range m.Nodes {
		if n.ID == "" || n.Label == "" {
			return fmt.Errorf("%w: mind map node %d missing ID or label", ErrInvalidResponse, i)
		}
		if nodes[n.ID] {
			return fmt.Errorf("%w: duplicate mind map node ID %q", ErrInvalidResponse, n.ID)
		}
		nodes[n.ID] = true
	}

	if !nodes[m.RootID] {
		return fmt.Errorf("%w: mind map root %q not among nodes", ErrInvalidResponse, m.RootID)
	}

	adjacency := make(map[string][]string, len(m.Nodes))
	for _, e := range m.Edges {
		if !nodes[e.From] || !nodes[e.To] {
			return fmt.Errorf("%w: mind map edge %s -> %s references unknown node",
				ErrInvalidResponse, e.From, e.To)
		}
		adjacency[e.From] = append(adjacency[e.From], e.To)
	}

	visited := map[string]bool{m.RootID: true}
	queue := []string{m.RootID}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range adjacency[current] {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}

	for _, n := range m.Nodes {
		if !visited[n.ID] {
			return fmt.Errorf("%w: mind map node %q unreachable from root", ErrInvalidResponse, n.ID)
		}
	}

	return nil
}
