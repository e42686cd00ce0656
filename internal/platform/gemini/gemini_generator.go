package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/blobapp/blob-api/internal/generation"
	"google.golang.org/genai"
)

// Generator implements the generation.Generator interface using Google's
// Gemini API. A Generator is scoped to one user's credentials and one model;
// the orchestrator constructs it per pipeline run.
type Generator struct {
	logger *slog.Logger
	client *genai.Client
	model  string
}

// NewGenerator creates a Gemini-backed Generator with the given user API key
// and model. The key is handed to the underlying client and not retained
// anywhere else.
func NewGenerator(
	ctx context.Context,
	logger *slog.Logger,
	apiKey, model string,
) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if apiKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	if model == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &Generator{
		logger: logger.With(slog.String("component", "gemini_generator")),
		client: client,
		model:  model,
	}, nil
}

// Ensure Generator implements generation.Generator
var _ generation.Generator = (*Generator)(nil)

// Generate produces structured study content for the request via a single
// Gemini call. Transient failures are returned as generation.ErrTransientFailure
// without retrying; retry policy belongs to the caller.
func (g *Generator) Generate(
	ctx context.Context,
	req generation.Request,
) (*generation.StructuredContent, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	prompt, err := generation.BuildPrompt(req)
	if err != nil {
		return nil, err
	}

	g.logger.InfoContext(ctx, "making Gemini API call",
		slog.String("model", g.model),
		slog.String("kind", string(req.Kind)))

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: generation.SystemPrompt}},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}
		g.logger.ErrorContext(ctx, "Gemini API call failed",
			slog.String("model", g.model),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return nil, fmt.Errorf("%w: finish reason safety", generation.ErrContentBlocked)
	}
	if candidate.Content == nil {
		return nil, fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	content, err := generation.DecodePayload(req.Kind, resp.Text())
	if err != nil {
		g.logger.WarnContext(ctx, "Gemini response failed validation",
			slog.String("kind", string(req.Kind)),
			slog.String("error", err.Error()))
		return nil, err
	}

	g.logger.InfoContext(ctx, "Gemini API call successful",
		slog.String("kind", string(req.Kind)))
	return content, nil
}
