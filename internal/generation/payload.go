package generation

import (
	"encoding/json"
	"fmt"
	"strings"
)

// payload is the wire shape every adapter asks the model to produce.
// Exactly one field is expected to be populated, matching the request kind.
type payload struct {
	Flashcards []FlashcardContent `json:"flashcards,omitempty"`
	Quiz       *QuizContent       `json:"quiz,omitempty"`
	MindMap    *MindMapContent    `json:"mind_map,omitempty"`
}

// DecodePayload parses raw model output into validated StructuredContent for
// the given kind. Models occasionally wrap JSON in markdown fences despite
// instructions, so fences are stripped before decoding; anything else that
// fails to parse or violates the invariants is an ErrInvalidResponse.
func DecodePayload(kind Kind, raw string) (*StructuredContent, error) {
	text := stripFences(raw)
	if text == "" {
		return nil, fmt.Errorf("%w: empty response body", ErrInvalidResponse)
	}

	var p payload
	if err := json.Unmarshal([]byte(text), &p); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON response: %v", ErrInvalidResponse, err)
	}

	content := &StructuredContent{Kind: kind}
	switch kind {
	case KindFlashcards:
		content.Flashcards = p.Flashcards
	case KindQuiz:
		content.Quiz = p.Quiz
	case KindMindMap:
		content.MindMap = p.MindMap
	default:
		return nil, fmt.Errorf("%w: unknown content kind %q", ErrInvalidResponse, kind)
	}

	if err := content.Validate(); err != nil {
		return nil, err
	}

	return content, nil
}

// stripFences removes a surrounding markdown code fence, if present.
func stripFences(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
