package store

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/leitner/internal/domain"
)

// HistoryStore is the append-only practice log.
type HistoryStore interface {
	// Append stores record and sets its ID.
	Append(ctx context.Context, record *domain.PracticeRecord) error

	// List returns records newest first. A limit of 0 or less returns all.
	List(ctx context.Context, limit int) ([]domain.PracticeRecord, error)

	// Clear deletes every record and returns how many were removed.
	Clear(ctx context.Context) (int64, error)

	// WithTx returns a new HistoryStore instance that uses the provided transaction.
	WithTx(tx *sqlx.Tx) HistoryStore
}
