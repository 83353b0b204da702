package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// Callers check for them with errors.Is; the API layer maps them to HTTP
// status codes.
var (
	// ErrInvalidCard indicates that card input failed domain validation.
	// API layer should map this to HTTP 400 Bad Request.
	ErrInvalidCard = errors.New("invalid card")

	// ErrEmptyImport indicates that an import was requested with no cards.
	ErrEmptyImport = errors.New("nothing to import")
)
