// Package generation provides the provider-agnostic contract for interacting
// with external AI/LLM services. It defines the Generator interface
// implemented by the vendor adapters (Gemini, OpenAI), the typed generation
// request, and the normalized StructuredContent shape that adapters must
// produce regardless of vendor, along with the shared prompt construction and
// response-payload decoding used by every adapter.
package generation
