package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/blobapp/blob-api/internal/generation"
	openaiclient "github.com/openai/openai-go/v2"
	openaioption "github.com/openai/openai-go/v2/option"
)

// Generator implements the generation.Generator interface using the OpenAI
// chat completions API. A Generator is scoped to one user's credentials and
// one model; the orchestrator constructs it per pipeline run.
type Generator struct {
	logger *slog.Logger
	client openaiclient.Client
	model  string
}

// NewGenerator creates an OpenAI-backed Generator with the given user API
// key and model. SDK-level retries are disabled; retry policy belongs to the
// caller.
func NewGenerator(logger *slog.Logger, apiKey, model string) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if apiKey == "" {
		return nil, fmt.Errorf("%w: openai API key cannot be empty", generation.ErrInvalidConfig)
	}

	if model == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	client := openaiclient.NewClient(
		openaioption.WithAPIKey(apiKey),
		openaioption.WithMaxRetries(0),
	)

	return &Generator{
		logger: logger.With(slog.String("component", "openai_generator")),
		client: client,
		model:  model,
	}, nil
}

// Ensure Generator implements generation.Generator
var _ generation.Generator = (*Generator)(nil)

// Generate produces structured study content for the request via a single
// chat completion call.
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

	g.logger.InfoContext(ctx, "making OpenAI API call",
		slog.String("model", g.model),
		slog.String("kind", string(req.Kind)))

	resp, err := g.client.Chat.Completions.New(ctx, openaiclient.ChatCompletionNewParams{
		Model: openaiclient.ChatModel(g.model),
		Messages: []openaiclient.ChatCompletionMessageParamUnion{
			openaiclient.SystemMessage(generation.SystemPrompt),
			openaiclient.UserMessage(prompt),
		},
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}
		g.logger.ErrorContext(ctx, "OpenAI API call failed",
			slog.String("model", g.model),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices in response", generation.ErrInvalidResponse)
	}

	choice := resp.Choices[0]
	if choice.FinishReason == "content_filter" {
		return nil, fmt.Errorf("%w: finish reason content_filter", generation.ErrContentBlocked)
	}

	content, err := generation.DecodePayload(req.Kind, choice.Message.Content)
	if err != nil {
		g.logger.WarnContext(ctx, "OpenAI response failed validation",
			slog.String("kind", string(req.Kind)),
			slog.String("error", err.Error()))
		return nil, err
	}

	g.logger.InfoContext(ctx, "OpenAI API call successful",
		slog.String("kind", string(req.Kind)))
	return content, nil
}
