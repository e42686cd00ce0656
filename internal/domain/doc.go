// Package domain defines the core business entities of the study-material
// service: topics, per-user AI provider settings, and the generated content
// types (flashcards, quizzes, mind maps). Entities carry their own validation
// so that invariants hold regardless of which layer constructs them.
package domain
