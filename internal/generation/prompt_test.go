package generation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPrompt(t *testing.T) {
	t.Parallel()

	req := Request{
		Kind:              KindFlashcards,
		TopicTitle:        "Photosynthesis",
		TopicDescription:  "Light and dark reactions",
		Expertise:         ExpertiseAdvanced,
		AdditionalContext: "Focus on the Calvin cycle",
		Count:             7,
	}

	prompt, err := BuildPrompt(req)
	require.NoError(t, err)

	assert.Contains(t, prompt, "exactly 7 flashcards")
	assert.Contains(t, prompt, "Photosynthesis")
	assert.Contains(t, prompt, "Light and dark reactions")
	assert.Contains(t, prompt, "advanced-level")
	assert.Contains(t, prompt, "Focus on the Calvin cycle")
	assert.Contains(t, prompt, `"flashcards"`)
}

func TestBuildPromptOmitsEmptyOptionalFields(t *testing.T) {
	t.Parallel()

	req := Request{
		Kind:       KindQuiz,
		TopicTitle: "Graph Theory",
		Expertise:  ExpertiseBeginner,
		Count:      5,
	}

	prompt, err := BuildPrompt(req)
	require.NoError(t, err)

	assert.NotContains(t, prompt, "Additional context")
	assert.NotContains(t, prompt, "()")
	assert.Contains(t, prompt, `"quiz"`)
}

func TestBuildPromptPerKind(t *testing.T) {
	t.Parallel()

	for _, kind := range []Kind{KindFlashcards, KindQuiz, KindMindMap} {
		req := Request{
			Kind:       kind,
			TopicTitle: "Topic",
			Expertise:  ExpertiseIntermediate,
			Count:      3,
		}
		prompt, err := BuildPrompt(req)
		require.NoError(t, err, "kind %s", kind)
		assert.NotEmpty(t, prompt)
	}

	_, err := BuildPrompt(Request{Kind: "podcast", TopicTitle: "T", Expertise: ExpertiseBeginner})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestSystemPromptForbidsFences(t *testing.T) {
	t.Parallel()

	assert.True(t, strings.Contains(SystemPrompt, "JSON"))
	assert.True(t, strings.Contains(SystemPrompt, "no markdown fences"))
}
