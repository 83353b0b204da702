package sqlstore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/leitner/internal/domain/leitner"
	"github.com/phrazzld/leitner/internal/platform/database"
	"github.com/phrazzld/leitner/internal/platform/logger"
	"github.com/phrazzld/leitner/internal/store"
)

// reviewLockKey identifies the PostgreSQL advisory lock taken around a review.
const reviewLockKey int64 = 0x4c6569746e6572 // "Leitner"

// BucketStore implements the store.BucketStore interface.
type BucketStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewBucketStore creates a new SQL implementation of the BucketStore interface.
// If logger is nil, a default logger will be used.
func NewBucketStore(db store.DBTX, logger *slog.Logger) *BucketStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &BucketStore{
		db:     db,
		logger: logger.With(slog.String("component", "bucket_store")),
	}
}

// Ensure BucketStore implements store.BucketStore interface
var _ store.BucketStore = (*BucketStore)(nil)

// WithTx implements store.BucketStore.WithTx
func (s *BucketStore) WithTx(tx *sqlx.Tx) store.BucketStore {
	return &BucketStore{db: tx, logger: s.logger}
}

// Load implements store.BucketStore.Load
// Cards without a bucket entry are reported in bucket 0.
func (s *BucketStore) Load(ctx context.Context) (leitner.Buckets, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + cardColumns + `, COALESCE(b.bucket, 0) AS bucket
		FROM cards c
		LEFT JOIN card_buckets b ON b.card_id = c.id
	`

	var rows []bucketRow
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		log.Error("failed to load buckets", slog.String("error", err.Error()))
		return nil, store.NewStoreError("bucket", "load", "query failed", database.MapError(err))
	}

	buckets := make(leitner.Buckets)
	for _, row := range rows {
		card, err := row.toDomain()
		if err != nil {
			return nil, store.NewStoreError("bucket", "load", "corrupt row", err)
		}
		if buckets[row.Bucket] == nil {
			buckets[row.Bucket] = make(leitner.CardSet)
		}
		buckets[row.Bucket][card.Key()] = card
	}

	log.Debug("loaded buckets",
		slog.Int("cards", len(rows)),
		slog.Int("buckets", len(buckets)))
	return buckets, nil
}

// SetBucket implements store.BucketStore.SetBucket
func (s *BucketStore) SetBucket(ctx context.Context, cardID uuid.UUID, bucket int) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if bucket < 0 {
		return fmt.Errorf("%w: bucket must be non-negative, got %d", store.ErrInvalidEntity, bucket)
	}

	query := s.db.Rebind(`
		INSERT INTO card_buckets (card_id, bucket) VALUES (?, ?)
		ON CONFLICT (card_id) DO UPDATE SET bucket = excluded.bucket
	`)
	if _, err := s.db.ExecContext(ctx, query, cardID, bucket); err != nil {
		if database.IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: %s", store.ErrCardNotFound, cardID)
		}
		log.Error("failed to set bucket",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()),
			slog.Int("bucket", bucket))
		return store.NewStoreError("bucket", "set", "upsert failed", database.MapError(err))
	}

	log.Debug("bucket set",
		slog.String("card_id", cardID.String()),
		slog.Int("bucket", bucket))
	return nil
}

// Lock implements store.BucketStore.Lock
// On PostgreSQL it takes a transaction-scoped advisory lock. SQLite runs with
// a single connection, which already serializes writers.
func (s *BucketStore) Lock(ctx context.Context) error {
	if database.DialectOf(s.db) != database.Postgres {
		return nil
	}

	if _, err := s.db.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", reviewLockKey); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to acquire review lock",
			slog.String("error", err.Error()))
		return store.NewStoreError("bucket", "lock", "advisory lock failed", err)
	}
	return nil
}
