// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidDifficulty is returned when a difficulty value is outside the
	// closed Wrong/Hard/Easy enumeration.
	ErrInvalidDifficulty = errors.New("invalid difficulty")
)
