package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or missing.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidProvider is returned when an AI provider value is not one of
	// the supported providers.
	ErrInvalidProvider = errors.New("invalid AI provider")

	// ErrInvalidDifficulty is returned when a flashcard difficulty is not one
	// of easy, medium, hard.
	ErrInvalidDifficulty = errors.New("invalid flashcard difficulty")

	// ErrEmptyContent is returned when required content is empty.
	ErrEmptyContent = errors.New("content cannot be empty")
)
