package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/leitner/internal/domain"
	"github.com/phrazzld/leitner/internal/platform/logger"
	"github.com/phrazzld/leitner/internal/store"
)

// CardServiceError is a custom error type for card service errors.
type CardServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for CardServiceError.
func (e *CardServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("card service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("card service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *CardServiceError) Unwrap() error {
	return e.Err
}

// NewCardServiceError creates a new CardServiceError.
func NewCardServiceError(operation, message string, err error) *CardServiceError {
	return &CardServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// CardInput carries the editable content of a card.
type CardInput struct {
	Front string
	Back  string
	Hint  string
	Tags  []string
}

// ImportError reports an input that could not be imported. Index is the
// position of the input in the slice passed to ImportCards.
type ImportError struct {
	Index  int    `json:"index"`
	Front  string `json:"front"`
	Reason string `json:"reason"`
}

// ImportResult summarizes a bulk import.
type ImportResult struct {
	Created int           `json:"created"`
	Skipped int           `json:"skipped"`
	Errors  []ImportError `json:"errors,omitempty"`
}

// CardService provides card management operations.
type CardService interface {
	// CreateCard stores a new card and places it in bucket 0 in a single transaction.
	CreateCard(ctx context.Context, input CardInput) (*domain.Card, error)

	// GetCard retrieves a card by its ID.
	GetCard(ctx context.Context, cardID uuid.UUID) (*domain.Card, error)

	// ListCards returns all cards, or only those carrying any of tags.
	ListCards(ctx context.Context, tags []string) ([]domain.Card, error)

	// UpdateCard replaces the content of a card. The card keeps its bucket.
	UpdateCard(ctx context.Context, cardID uuid.UUID, input CardInput) (*domain.Card, error)

	// DeleteCard removes a card and its bucket entry.
	DeleteCard(ctx context.Context, cardID uuid.UUID) error

	// ImportCards creates every valid input in one transaction. Inputs whose
	// front and back match an existing card, or an earlier input, are skipped.
	ImportCards(ctx context.Context, inputs []CardInput) (*ImportResult, error)
}

// cardServiceImpl implements the CardService interface
type cardServiceImpl struct {
	db        *sqlx.DB
	cardStore store.CardStore
	buckets   store.BucketStore
	logger    *slog.Logger
}

// NewCardService creates a new CardService.
// It returns an error if any of the required dependencies are nil.
func NewCardService(
	db *sqlx.DB,
	cardStore store.CardStore,
	buckets store.BucketStore,
	logger *slog.Logger,
) (CardService, error) {
	if db == nil {
		return nil, fmt.Errorf("%w: db cannot be nil", domain.ErrValidation)
	}
	if cardStore == nil {
		return nil, fmt.Errorf("%w: cardStore cannot be nil", domain.ErrValidation)
	}
	if buckets == nil {
		return nil, fmt.Errorf("%w: buckets cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &cardServiceImpl{
		db:        db,
		cardStore: cardStore,
		buckets:   buckets,
		logger:    logger.With(slog.String("component", "card_service")),
	}, nil
}

// CreateCard implements CardService.CreateCard
func (s *cardServiceImpl) CreateCard(ctx context.Context, input CardInput) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := domain.NewCard(input.Front, input.Back, input.Hint, input.Tags)
	if err != nil {
		log.Debug("rejected invalid card", slog.String("error", err.Error()))
		return nil, NewCardServiceError("create_card", "invalid card", fmt.Errorf("%w: %w", ErrInvalidCard, err))
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		if err := s.cardStore.WithTx(tx).Create(ctx, card); err != nil {
			return err
		}
		return s.buckets.WithTx(tx).SetBucket(ctx, card.ID, 0)
	})
	if err != nil {
		if store.IsDuplicateError(err) {
			log.Debug("card already exists", slog.String("front", card.Front))
			return nil, NewCardServiceError("create_card", "card already exists", store.ErrCardExists)
		}
		log.Error("failed to create card",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return nil, NewCardServiceError("create_card", "failed to save card", err)
	}

	log.Info("created card", slog.String("card_id", card.ID.String()))
	return card, nil
}

// GetCard implements CardService.GetCard
func (s *cardServiceImpl) GetCard(ctx context.Context, cardID uuid.UUID) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := s.cardStore.GetByID(ctx, cardID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, NewCardServiceError("get_card", "card not found", store.ErrCardNotFound)
		}
		log.Error("failed to retrieve card",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return nil, NewCardServiceError("get_card", "failed to retrieve card", err)
	}

	return card, nil
}

// ListCards implements CardService.ListCards
func (s *cardServiceImpl) ListCards(ctx context.Context, tags []string) ([]domain.Card, error) {
	cards, err := s.cardStore.List(ctx, domain.NormalizeTags(tags))
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list cards",
			slog.String("error", err.Error()))
		return nil, NewCardServiceError("list_cards", "failed to list cards", err)
	}
	return cards, nil
}

// UpdateCard implements CardService.UpdateCard
func (s *cardServiceImpl) UpdateCard(
	ctx context.Context,
	cardID uuid.UUID,
	input CardInput,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated *domain.Card
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		cards := s.cardStore.WithTx(tx)

		card, err := cards.GetByID(ctx, cardID)
		if err != nil {
			return err
		}

		card.Front = input.Front
		card.Back = input.Back
		card.Hint = input.Hint
		card.Tags = domain.NormalizeTags(input.Tags)
		if err := card.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidCard, err)
		}

		if err := cards.Update(ctx, card); err != nil {
			return err
		}
		updated = card
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCard):
			return nil, NewCardServiceError("update_card", "invalid card", err)
		case store.IsNotFoundError(err):
			return nil, NewCardServiceError("update_card", "card not found", store.ErrCardNotFound)
		case store.IsDuplicateError(err):
			return nil, NewCardServiceError("update_card", "card already exists", store.ErrCardExists)
		}
		log.Error("failed to update card",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return nil, NewCardServiceError("update_card", "failed to update card", err)
	}

	log.Info("updated card", slog.String("card_id", cardID.String()))
	return updated, nil
}

// DeleteCard implements CardService.DeleteCard
func (s *cardServiceImpl) DeleteCard(ctx context.Context, cardID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.cardStore.Delete(ctx, cardID); err != nil {
		if store.IsNotFoundError(err) {
			return NewCardServiceError("delete_card", "card not found", store.ErrCardNotFound)
		}
		log.Error("failed to delete card",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return NewCardServiceError("delete_card", "failed to delete card", err)
	}

	log.Info("deleted card", slog.String("card_id", cardID.String()))
	return nil
}

// ImportCards implements CardService.ImportCards
func (s *cardServiceImpl) ImportCards(ctx context.Context, inputs []CardInput) (*ImportResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(inputs) == 0 {
		return nil, NewCardServiceError("import_cards", "no cards given", ErrEmptyImport)
	}

	var result ImportResult
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		result = ImportResult{}
		cards := s.cardStore.WithTx(tx)
		buckets := s.buckets.WithTx(tx)
		seen := make(map[domain.CardKey]bool, len(inputs))

		for i, input := range inputs {
			card, err := domain.NewCard(input.Front, input.Back, input.Hint, input.Tags)
			if err != nil {
				result.Errors = append(result.Errors, ImportError{
					Index:  i,
					Front:  strings.TrimSpace(input.Front),
					Reason: err.Error(),
				})
				continue
			}

			key := card.Key()
			if seen[key] {
				result.Skipped++
				continue
			}
			seen[key] = true

			// Checked first: a failed INSERT would abort a PostgreSQL transaction.
			_, err = cards.GetByKey(ctx, key)
			switch {
			case err == nil:
				result.Skipped++
				continue
			case !store.IsNotFoundError(err):
				return err
			}

			if err := cards.Create(ctx, card); err != nil {
				return err
			}
			if err := buckets.SetBucket(ctx, card.ID, 0); err != nil {
				return err
			}
			result.Created++
		}
		return nil
	})
	if err != nil {
		log.Error("failed to import cards",
			slog.String("error", err.Error()),
			slog.Int("input_count", len(inputs)))
		return nil, NewCardServiceError("import_cards", "failed to import cards", err)
	}

	log.Info("imported cards",
		slog.Int("created", result.Created),
		slog.Int("skipped", result.Skipped),
		slog.Int("rejected", len(result.Errors)))
	return &result, nil
}
