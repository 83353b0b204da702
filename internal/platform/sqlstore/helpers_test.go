package sqlstore

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/leitner/internal/domain"
	"github.com/phrazzld/leitner/internal/testdb"
	"github.com/stretchr/testify/require"
)

type stores struct {
	db      *sqlx.DB
	cards   *CardStore
	buckets *BucketStore
	history *HistoryStore
	state   *StateStore
}

func newStores(t *testing.T) stores {
	t.Helper()
	db := testdb.Open(t)
	return stores{
		db:      db,
		cards:   NewCardStore(db, nil),
		buckets: NewBucketStore(db, nil),
		history: NewHistoryStore(db, nil),
		state:   NewStateStore(db, nil),
	}
}

func mustCreateCard(t *testing.T, s stores, front, back string, tags ...string) *domain.Card {
	t.Helper()
	card, err := domain.NewCard(front, back, "", tags)
	require.NoError(t, err)
	require.NoError(t, s.cards.Create(context.Background(), card))
	require.NoError(t, s.buckets.SetBucket(context.Background(), card.ID, 0))
	return card
}
