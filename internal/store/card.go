package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/leitner/internal/domain"
)

// CardStore defines the interface for card data persistence.
type CardStore interface {
	// Create saves a new card. It does not place the card in a bucket; use
	// BucketStore.SetBucket in the same transaction for that.
	// Returns ErrCardExists if a card with the same front and back exists.
	Create(ctx context.Context, card *domain.Card) error

	// GetByID retrieves a card by its unique ID.
	// Returns ErrCardNotFound if the card does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error)

	// GetByKey retrieves a card by its front and back text.
	// Returns ErrCardNotFound if the card does not exist.
	GetByKey(ctx context.Context, key domain.CardKey) (*domain.Card, error)

	// List returns cards ordered by front then back. When tags is non-empty
	// only cards carrying at least one of them are returned.
	List(ctx context.Context, tags []string) ([]domain.Card, error)

	// Update replaces the front, back, hint and tags of an existing card.
	// Returns ErrCardNotFound if the card does not exist and ErrCardExists
	// if the new text collides with another card.
	Update(ctx context.Context, card *domain.Card) error

	// Delete removes a card by its ID. Its bucket entry is removed by the
	// ON DELETE CASCADE constraint; practice history is kept.
	// Returns ErrCardNotFound if the card does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new CardStore instance that uses the provided transaction.
	WithTx(tx *sqlx.Tx) CardStore
}
