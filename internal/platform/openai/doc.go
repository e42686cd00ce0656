// Package openai implements the generation.Generator interface for the
// OpenAI-family of AI backends via the chat completions API. Clients are
// built per pipeline run with the requesting user's own API key.
package openai
