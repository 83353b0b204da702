package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/leitner/internal/platform/database"
	"github.com/phrazzld/leitner/internal/platform/logger"
	"github.com/phrazzld/leitner/internal/store"
)

// StateStore implements the store.StateStore interface on the single-row
// app_state table.
type StateStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewStateStore creates a new SQL implementation of the StateStore interface.
func NewStateStore(db store.DBTX, logger *slog.Logger) *StateStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &StateStore{
		db:     db,
		logger: logger.With(slog.String("component", "state_store")),
	}
}

var _ store.StateStore = (*StateStore)(nil)

// WithTx implements store.StateStore.WithTx
func (s *StateStore) WithTx(tx *sqlx.Tx) store.StateStore {
	return &StateStore{db: tx, logger: s.logger}
}

// CurrentDay implements store.StateStore.CurrentDay
func (s *StateStore) CurrentDay(ctx context.Context) (int, error) {
	var day int
	err := s.db.GetContext(ctx, &day, "SELECT current_day FROM app_state WHERE id = 1")
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, store.ErrStateNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to read current day",
			slog.String("error", err.Error()))
		return 0, store.NewStoreError("app state", "get", "query failed", database.MapError(err))
	}
	return day, nil
}

// AdvanceDay implements store.StateStore.AdvanceDay
func (s *StateStore) AdvanceDay(ctx context.Context) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var day int
	err := s.db.GetContext(ctx, &day,
		"UPDATE app_state SET current_day = current_day + 1 WHERE id = 1 RETURNING current_day")
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, store.ErrStateNotFound
		}
		log.Error("failed to advance day", slog.String("error", err.Error()))
		return 0, store.NewStoreError("app state", "advance", "update failed", database.MapError(err))
	}

	log.Info("day advanced", slog.Int("day", day))
	return day, nil
}
