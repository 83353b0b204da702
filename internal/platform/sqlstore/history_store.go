package sqlstore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/leitner/internal/domain"
	"github.com/phrazzld/leitner/internal/platform/database"
	"github.com/phrazzld/leitner/internal/platform/logger"
	"github.com/phrazzld/leitner/internal/store"
)

// HistoryStore implements the store.HistoryStore interface.
type HistoryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewHistoryStore creates a new SQL implementation of the HistoryStore interface.
func NewHistoryStore(db store.DBTX, logger *slog.Logger) *HistoryStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &HistoryStore{
		db:     db,
		logger: logger.With(slog.String("component", "history_store")),
	}
}

var _ store.HistoryStore = (*HistoryStore)(nil)

// WithTx implements store.HistoryStore.WithTx
func (s *HistoryStore) WithTx(tx *sqlx.Tx) store.HistoryStore {
	return &HistoryStore{db: tx, logger: s.logger}
}

// Append implements store.HistoryStore.Append
func (s *HistoryStore) Append(ctx context.Context, record *domain.PracticeRecord) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !record.Difficulty.IsValid() {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, domain.ErrInvalidDifficulty)
	}

	query := s.db.Rebind(`
		INSERT INTO practice_history
			(card_front, card_back, difficulty, previous_bucket, new_bucket, reviewed_at_ms)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id
	`)

	var id int64
	err := s.db.GetContext(ctx, &id, query,
		record.CardFront,
		record.CardBack,
		int(record.Difficulty),
		record.PreviousBucket,
		record.NewBucket,
		record.Timestamp.UnixMilli(),
	)
	if err != nil {
		log.Error("failed to append practice record",
			slog.String("error", err.Error()),
			slog.String("front", record.CardFront))
		return store.NewStoreError("practice record", "append", "insert failed", database.MapError(err))
	}

	record.ID = id
	return nil
}

// List implements store.HistoryStore.List
func (s *HistoryStore) List(ctx context.Context, limit int) ([]domain.PracticeRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, card_front, card_back, difficulty, previous_bucket, new_bucket, reviewed_at_ms
		FROM practice_history
		ORDER BY id DESC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	var rows []historyRow
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(query), args...); err != nil {
		log.Error("failed to list practice history", slog.String("error", err.Error()))
		return nil, store.NewStoreError("practice record", "list", "query failed", database.MapError(err))
	}

	records := make([]domain.PracticeRecord, len(rows))
	for i, row := range rows {
		records[i] = row.toDomain()
	}
	return records, nil
}

// Clear implements store.HistoryStore.Clear
func (s *HistoryStore) Clear(ctx context.Context) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, "DELETE FROM practice_history")
	if err != nil {
		log.Error("failed to clear practice history", slog.String("error", err.Error()))
		return 0, store.NewStoreError("practice record", "clear", "delete failed", database.MapError(err))
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	log.Info("practice history cleared", slog.Int64("records", n))
	return n, nil
}
