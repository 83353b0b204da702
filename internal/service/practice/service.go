// Package practice runs the daily Leitner workflow: building practice
// sessions, applying review answers, hints, progress and the day counter.
//
// All scheduling decisions come from leitner.Scheduler; this package loads
// the persisted state, calls the scheduler and stores the result.
package practice

import (
	"context"
	"errors"
	"fmt"

	"github.com/phrazzld/leitner/internal/domain"
	"github.com/phrazzld/leitner/internal/domain/leitner"
)

// Session is the set of cards to practice today.
type Session struct {
	Cards []domain.Card `json:"cards"`
	Day   int           `json:"day"`
}

// Progress combines the bucket distribution with the review history.
type Progress struct {
	leitner.ProgressStats
	History leitner.HistorySummary `json:"history"`
	Day     int                    `json:"day"`
}

// Service provides the practice operations.
type Service interface {
	// GetSession returns the cards due today, sorted by bucket then key.
	// When tags is non-empty only cards carrying any of them are included.
	GetSession(ctx context.Context, tags []string) (*Session, error)

	// SubmitReview moves the card identified by key according to d and
	// appends a record to the practice history. Submissions are applied one
	// at a time; a failed submission leaves all state untouched.
	//
	// Returns ErrCardNotFound when no card has the key and
	// ErrInvalidDifficulty when d is outside the enumeration.
	SubmitReview(ctx context.Context, key domain.CardKey, d domain.Difficulty) (*domain.PracticeRecord, error)

	// GetHint returns the hint for the card identified by key.
	GetHint(ctx context.Context, key domain.CardKey) (string, error)

	// GetProgress reports the stage distribution and a history summary.
	GetProgress(ctx context.Context) (*Progress, error)

	// AdvanceDay increments the day counter and returns the new day.
	AdvanceDay(ctx context.Context) (int, error)

	// History returns practice records newest first; limit <= 0 returns all.
	History(ctx context.Context, limit int) ([]domain.PracticeRecord, error)

	// ClearHistory deletes all practice records and returns how many were removed.
	ClearHistory(ctx context.Context) (int64, error)
}

// Common error types for the practice service
var (
	// ErrCardNotFound indicates that no card matches the given front and back.
	ErrCardNotFound = errors.New("card not found")

	// ErrInvalidDifficulty indicates a difficulty outside Wrong/Hard/Easy.
	ErrInvalidDifficulty = domain.ErrInvalidDifficulty
)

// ServiceError wraps errors from the practice service with additional context.
// Consumers use errors.Is/errors.As instead of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "submit_review")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

func newError(operation, message string, err error) *ServiceError {
	return &ServiceError{Operation: operation, Message: message, Err: err}
}
