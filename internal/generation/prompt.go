package generation

import (
	"bytes"
	"fmt"
	"text/template"
)

// SystemPrompt is the instruction shared by all adapters. Vendors that
// support a system role receive it there; others prepend it to the user
// prompt.
const SystemPrompt = `You are an expert educator who creates high-quality study materials. ` +
	`You always respond with a single valid JSON object and nothing else: ` +
	`no markdown fences, no commentary, no trailing text.`

// Kind-specific prompt templates. Each instructs the model to emit the exact
// JSON shape that DecodePayload expects.
var promptTemplates = map[Kind]*template.Template{
	KindFlashcards: template.Must(template.New("flashcards").Parse(
		`Create exactly {{.Count}} flashcards about "{{.TopicTitle}}"` +
			`{{if .TopicDescription}} ({{.TopicDescription}}){{end}} ` +
			`for a {{.Expertise}}-level learner.
{{if .AdditionalContext}}Additional context from the learner: {{.AdditionalContext}}
{{end}}Respond with a JSON object of the form:
{"flashcards": [{"front": "question", "back": "answer", "difficulty": "easy|medium|hard"}]}
Each card must have a non-empty front and back, and difficulty must be exactly one of easy, medium, hard.`)),

	KindQuiz: template.Must(template.New("quiz").Parse(
		`Create a multiple-choice quiz with exactly {{.Count}} questions about "{{.TopicTitle}}"` +
			`{{if .TopicDescription}} ({{.TopicDescription}}){{end}} ` +
			`for a {{.Expertise}}-level learner.
{{if .AdditionalContext}}Additional context from the learner: {{.AdditionalContext}}
{{end}}Respond with a JSON object of the form:
{"quiz": {"title": "quiz title", "questions": [{"text": "question", "options": [{"text": "choice", "correct": false}]}]}}
Each question must have between 3 and 5 options with exactly one marked "correct": true.`)),

	KindMindMap: template.Must(template.New("mindmap").Parse(
		`Create a mind map of the key concepts of "{{.TopicTitle}}"` +
			`{{if .TopicDescription}} ({{.TopicDescription}}){{end}} ` +
			`for a {{.Expertise}}-level learner.
{{if .AdditionalContext}}Additional context from the learner: {{.AdditionalContext}}
{{end}}Respond with a JSON object of the form:
{"mind_map": {"root_id": "root", "nodes": [{"id": "root", "label": "central concept"}], "edges": [{"from": "root", "to": "child-id"}]}}
Node IDs must be unique, the root node must be present, and every node must be connected to the root through edges.`)),
}

// BuildPrompt renders the kind-specific user prompt for the request.
// The request must already be validated.
func BuildPrompt(req Request) (string, error) {
	tmpl, ok := promptTemplates[req.Kind]
	if !ok {
		return "", fmt.Errorf("%w: no prompt template for kind %q", ErrInvalidRequest, req.Kind)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, req); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}

	return buf.String(), nil
}
