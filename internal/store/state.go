package store

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// StateStore holds the day counter.
type StateStore interface {
	// CurrentDay returns the current day index.
	// Returns ErrStateNotFound if the state row is missing.
	CurrentDay(ctx context.Context) (int, error)

	// AdvanceDay increments the day counter and returns the new value.
	AdvanceDay(ctx context.Context) (int, error)

	// WithTx returns a new StateStore instance that uses the provided transaction.
	WithTx(tx *sqlx.Tx) StateStore
}
