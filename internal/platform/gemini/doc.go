// Package gemini implements the generation.Generator interface for the
// Google-family of AI backends using the Gemini API. Clients are built per
// pipeline run with the requesting user's own API key.
package gemini
