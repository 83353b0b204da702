package sqlstore

import (
	"context"
	"testing"
	"time"

	"github.com/phrazzld/leitner/internal/domain"
	"github.com/phrazzld/leitner/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryStoreAppendListClear(t *testing.T) {
	s := newStores(t)
	ctx := context.Background()

	key := domain.CardKey{Front: "cat", Back: "gato"}
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	first := domain.NewPracticeRecord(key, domain.DifficultyEasy, 0, 2, at)
	second := domain.NewPracticeRecord(key, domain.DifficultyWrong, 2, 0, at.Add(time.Minute))
	require.NoError(t, s.history.Append(ctx, &first))
	require.NoError(t, s.history.Append(ctx, &second))
	assert.NotZero(t, first.ID)
	assert.Greater(t, second.ID, first.ID)

	all, err := s.history.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID, "newest first")
	assert.Equal(t, domain.DifficultyWrong, all[0].Difficulty)
	assert.Equal(t, 2, all[0].PreviousBucket)
	assert.True(t, at.Equal(all[1].Timestamp))

	limited, err := s.history.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, second.ID, limited[0].ID)

	n, err := s.history.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	all, err = s.history.List(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestHistoryStoreRejectsInvalidDifficulty(t *testing.T) {
	s := newStores(t)

	record := domain.NewPracticeRecord(domain.CardKey{Front: "a", Back: "b"}, domain.Difficulty(7), 0, 0, time.Now())
	err := s.history.Append(context.Background(), &record)
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
}
