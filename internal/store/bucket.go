package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/leitner/internal/domain/leitner"
)

// BucketStore persists the bucket membership of every card.
type BucketStore interface {
	// Load reads the full bucket structure, joining each entry with its card.
	Load(ctx context.Context) (leitner.Buckets, error)

	// SetBucket places the card in bucket, inserting or replacing its entry.
	// Returns ErrCardNotFound if the card does not exist.
	SetBucket(ctx context.Context, cardID uuid.UUID, bucket int) error

	// Lock serializes review submissions across processes for the lifetime
	// of the current transaction. It is a no-op where the database already
	// allows a single writer. Must be called on a store bound with WithTx.
	Lock(ctx context.Context) error

	// WithTx returns a new BucketStore instance that uses the provided transaction.
	WithTx(tx *sqlx.Tx) BucketStore
}
