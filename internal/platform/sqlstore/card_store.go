package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/leitner/internal/domain"
	"github.com/phrazzld/leitner/internal/platform/database"
	"github.com/phrazzld/leitner/internal/platform/logger"
	"github.com/phrazzld/leitner/internal/store"
)

// CardStore implements the store.CardStore interface.
type CardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewCardStore creates a new SQL implementation of the CardStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewCardStore(db store.DBTX, logger *slog.Logger) *CardStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &CardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// Ensure CardStore implements store.CardStore interface
var _ store.CardStore = (*CardStore)(nil)

// WithTx implements store.CardStore.WithTx
func (s *CardStore) WithTx(tx *sqlx.Tx) store.CardStore {
	return &CardStore{db: tx, logger: s.logger}
}

// Create implements store.CardStore.Create
func (s *CardStore) Create(ctx context.Context, card *domain.Card) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("card validation failed during create",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	tags, err := encodeTags(card.Tags)
	if err != nil {
		return err
	}

	query := s.db.Rebind(`
		INSERT INTO cards (id, front, back, hint, tags_json, created_at_ms)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	_, err = s.db.ExecContext(ctx, query,
		card.ID,
		card.Front,
		card.Back,
		card.Hint,
		tags,
		card.CreatedAt.UnixMilli(),
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			log.Warn("duplicate card rejected",
				slog.String("front", card.Front),
				slog.String("back", card.Back))
			return fmt.Errorf("%w: %q / %q", store.ErrCardExists, card.Front, card.Back)
		}
		log.Error("failed to create card",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return store.NewStoreError("card", "create", "insert failed", database.MapError(err))
	}

	log.Debug("card created", slog.String("card_id", card.ID.String()))
	return nil
}

// GetByID implements store.CardStore.GetByID
func (s *CardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	return s.getOne(ctx, "c.id = ?", id)
}

// GetByKey implements store.CardStore.GetByKey
func (s *CardStore) GetByKey(ctx context.Context, key domain.CardKey) (*domain.Card, error) {
	return s.getOne(ctx, "c.front = ? AND c.back = ?", key.Front, key.Back)
}

func (s *CardStore) getOne(ctx context.Context, where string, args ...any) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := s.db.Rebind("SELECT " + cardColumns + " FROM cards c WHERE " + where)

	var row cardRow
	if err := s.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCardNotFound
		}
		log.Error("failed to get card", slog.String("error", err.Error()))
		return nil, store.NewStoreError("card", "get", "query failed", database.MapError(err))
	}

	card, err := row.toDomain()
	if err != nil {
		return nil, store.NewStoreError("card", "get", "corrupt row", err)
	}
	return &card, nil
}

// List implements store.CardStore.List
func (s *CardStore) List(ctx context.Context, tags []string) ([]domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := "SELECT " + cardColumns + " FROM cards c ORDER BY c.front, c.back"

	var rows []cardRow
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		log.Error("failed to list cards", slog.String("error", err.Error()))
		return nil, store.NewStoreError("card", "list", "query failed", database.MapError(err))
	}

	// Tags live in a JSON column, so filtering happens here.
	cards := make([]domain.Card, 0, len(rows))
	for _, row := range rows {
		card, err := row.toDomain()
		if err != nil {
			return nil, store.NewStoreError("card", "list", "corrupt row", err)
		}
		if card.HasAnyTag(tags) {
			cards = append(cards, card)
		}
	}

	log.Debug("listed cards", slog.Int("count", len(cards)), slog.Any("tags", tags))
	return cards, nil
}

// Update implements store.CardStore.Update
func (s *CardStore) Update(ctx context.Context, card *domain.Card) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	tags, err := encodeTags(card.Tags)
	if err != nil {
		return err
	}

	query := s.db.Rebind(`
		UPDATE cards SET front = ?, back = ?, hint = ?, tags_json = ?
		WHERE id = ?
	`)
	result, err := s.db.ExecContext(ctx, query, card.Front, card.Back, card.Hint, tags, card.ID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %q / %q", store.ErrCardExists, card.Front, card.Back)
		}
		log.Error("failed to update card",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return store.NewStoreError("card", "update", "update failed", database.MapError(err))
	}

	if err := database.CheckRowsAffected(result, store.ErrCardNotFound); err != nil {
		return err
	}

	log.Debug("card updated", slog.String("card_id", card.ID.String()))
	return nil
}

// Delete implements store.CardStore.Delete
func (s *CardStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, s.db.Rebind("DELETE FROM cards WHERE id = ?"), id)
	if err != nil {
		log.Error("failed to delete card",
			slog.String("error", err.Error()),
			slog.String("card_id", id.String()))
		return store.NewStoreError("card", "delete", "delete failed", database.MapError(err))
	}

	if err := database.CheckRowsAffected(result, store.ErrCardNotFound); err != nil {
		return err
	}

	log.Debug("card deleted", slog.String("card_id", id.String()))
	return nil
}
