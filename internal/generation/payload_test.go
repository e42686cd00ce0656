package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validFlashcardsJSON = `{"flashcards": [
	{"front": "What is ATP?", "back": "Energy currency", "difficulty": "easy"},
	{"front": "What is NADPH?", "back": "Electron carrier", "difficulty": "hard"}
]}`

const validQuizJSON = `{"quiz": {"title": "Cell Quiz", "questions": [
	{"text": "What produces ATP?", "options": [
		{"text": "Mitochondria", "correct": true},
		{"text": "Ribosome", "correct": false},
		{"text": "Nucleus", "correct": false}
	]}
]}}`

const validMindMapJSON = `{"mind_map": {"root_id": "root", "nodes": [
	{"id": "root", "label": "Photosynthesis"},
	{"id": "light", "label": "Light reactions"}
], "edges": [{"from": "root", "to": "light"}]}}`

func TestDecodePayloadFlashcards(t *testing.T) {
	t.Parallel()

	content, err := DecodePayload(KindFlashcards, validFlashcardsJSON)
	require.NoError(t, err)
	require.Len(t, content.Flashcards, 2)
	assert.Equal(t, KindFlashcards, content.Kind)
	assert.Equal(t, "What is ATP?", content.Flashcards[0].Front)
	assert.Equal(t, "hard", content.Flashcards[1].Difficulty)
}

func TestDecodePayloadStripsMarkdownFences(t *testing.T) {
	t.Parallel()

	fenced := "```json\n" + validFlashcardsJSON + "\n```"
	content, err := DecodePayload(KindFlashcards, fenced)
	require.NoError(t, err)
	assert.Len(t, content.Flashcards, 2)

	bareFence := "```\n" + validQuizJSON + "\n```"
	content, err = DecodePayload(KindQuiz, bareFence)
	require.NoError(t, err)
	require.NotNil(t, content.Quiz)
	assert.Equal(t, "Cell Quiz", content.Quiz.Title)
}

func TestDecodePayloadQuiz(t *testing.T) {
	t.Parallel()

	content, err := DecodePayload(KindQuiz, validQuizJSON)
	require.NoError(t, err)
	require.NotNil(t, content.Quiz)
	require.Len(t, content.Quiz.Questions, 1)
	assert.Len(t, content.Quiz.Questions[0].Options, 3)
}

func TestDecodePayloadMindMap(t *testing.T) {
	t.Parallel()

	content, err := DecodePayload(KindMindMap, validMindMapJSON)
	require.NoError(t, err)
	require.NotNil(t, content.MindMap)
	assert.Equal(t, "root", content.MindMap.RootID)
	assert.Len(t, content.MindMap.Nodes, 2)
}

func TestDecodePayloadRejectsMalformedContent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		kind Kind
		raw  string
	}{
		{
			name: "empty response",
			kind: KindFlashcards,
			raw:  "",
		},
		{
			name: "whitespace only",
			kind: KindFlashcards,
			raw:  "   \n  ",
		},
		{
			name: "broken JSON",
			kind: KindFlashcards,
			raw:  `{"flashcards": [`,
		},
		{
			name: "prose instead of JSON",
			kind: KindFlashcards,
			raw:  "Sure! Here are your flashcards.",
		},
		{
			name: "empty flashcard list",
			kind: KindFlashcards,
			raw:  `{"flashcards": []}`,
		},
		{
			name: "flashcard with unknown difficulty",
			kind: KindFlashcards,
			raw:  `{"flashcards": [{"front": "f", "back": "b", "difficulty": "brutal"}]}`,
		},
		{
			name: "wrong payload field for kind",
			kind: KindQuiz,
			raw:  validFlashcardsJSON,
		},
		{
			name: "quiz question with no correct option",
			kind: KindQuiz,
			raw: `{"quiz": {"title": "Q", "questions": [{"text": "t", "options": [
				{"text": "a", "correct": false}, {"text": "b", "correct": false}]}]}}`,
		},
		{
			name: "quiz question with two correct options",
			kind: KindQuiz,
			raw: `{"quiz": {"title": "Q", "questions": [{"text": "t", "options": [
				{"text": "a", "correct": true}, {"text": "b", "correct": true}]}]}}`,
		},
		{
			name: "quiz question with one option",
			kind: KindQuiz,
			raw: `{"quiz": {"title": "Q", "questions": [{"text": "t", "options": [
				{"text": "a", "correct": true}]}]}}`,
		},
		{
			name: "mind map without root",
			kind: KindMindMap,
			raw:  `{"mind_map": {"root_id": "", "nodes": [], "edges": []}}`,
		},
		{
			name: "mind map with orphan node",
			kind: KindMindMap,
			raw: `{"mind_map": {"root_id": "root", "nodes": [
				{"id": "root", "label": "A"}, {"id": "island", "label": "B"}], "edges": []}}`,
		},
		{
			name: "mind map edge to unknown node",
			kind: KindMindMap,
			raw: `{"mind_map": {"root_id": "root", "nodes": [{"id": "root", "label": "A"}],
				"edges": [{"from": "root", "to": "ghost"}]}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodePayload(tt.kind, tt.raw)
			assert.ErrorIs(t, err, ErrInvalidResponse)
		})
	}
}
