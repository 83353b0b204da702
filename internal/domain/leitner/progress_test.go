package leitner

import (
	"testing"
	"time"

	"github.com/phrazzld/leitner/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeProgress(t *testing.T) {
	t.Parallel()

	stats := ComputeProgress(fill(map[int]int{0: 2, 3: 1, 6: 1}))

	assert.Equal(t, 4, stats.TotalCards)
	require.Len(t, stats.Stages, 3)

	assert.Equal(t, "Beginner", stats.Stages[0].Name)
	assert.Equal(t, 2, stats.Stages[0].CardCount)
	assert.InDelta(t, 50.0, stats.Stages[0].Percentage, 1e-9)

	assert.Equal(t, "Intermediate", stats.Stages[1].Name)
	assert.Equal(t, 1, stats.Stages[1].CardCount)
	assert.InDelta(t, 25.0, stats.Stages[1].Percentage, 1e-9)

	assert.Equal(t, "Advanced", stats.Stages[2].Name)
	assert.Equal(t, 1, stats.Stages[2].CardCount)
	assert.InDelta(t, 25.0, stats.Stages[2].Percentage, 1e-9)

	require.NotNil(t, stats.MinBucket)
	require.NotNil(t, stats.MaxBucket)
	assert.Equal(t, 0, *stats.MinBucket)
	assert.Equal(t, 6, *stats.MaxBucket)
}

func TestComputeProgressEmpty(t *testing.T) {
	t.Parallel()

	stats := ComputeProgress(Buckets{})

	assert.Zero(t, stats.TotalCards)
	assert.Nil(t, stats.MinBucket)
	for _, s := range stats.Stages {
		assert.Zero(t, s.CardCount)
		assert.Zero(t, s.Percentage)
	}
}

func TestComputeProgressOutsideStages(t *testing.T) {
	t.Parallel()

	// Buckets above 7 only exist with a raised cap.
	stats := ComputeProgress(fill(map[int]int{0: 1, 9: 1}))

	assert.Equal(t, 2, stats.TotalCards)
	sum := 0.0
	for _, s := range stats.Stages {
		sum += s.Percentage
	}
	assert.InDelta(t, 50.0, sum, 1e-9)
}

func TestSummarizeHistory(t *testing.T) {
	t.Parallel()

	key := domain.CardKey{Front: "cat", Back: "gato"}
	now := time.Now()
	records := []domain.PracticeRecord{
		domain.NewPracticeRecord(key, domain.DifficultyEasy, 0, 2, now),
		domain.NewPracticeRecord(key, domain.DifficultyHard, 2, 3, now),
		domain.NewPracticeRecord(key, domain.DifficultyWrong, 3, 0, now),
		domain.NewPracticeRecord(key, domain.DifficultyEasy, 0, 2, now),
		domain.NewPracticeRecord(domain.CardKey{Front: "dog", Back: "perro"}, domain.DifficultyEasy, 7, 7, now),
	}

	summary := SummarizeHistory(records)

	assert.Equal(t, 5, summary.TotalReviews)
	assert.Equal(t, 3, summary.ByDifficulty[domain.DifficultyEasy])
	assert.Equal(t, 1, summary.ByDifficulty[domain.DifficultyHard])
	assert.Equal(t, 1, summary.ByDifficulty[domain.DifficultyWrong])
	assert.InDelta(t, 80.0, summary.Accuracy, 1e-9)
	// An Easy review at the top bucket is not a promotion.
	assert.Equal(t, 3, summary.Promotions)
	assert.Equal(t, 2, summary.CardsReviewed)

	empty := SummarizeHistory(nil)
	assert.Zero(t, empty.TotalReviews)
	assert.Zero(t, empty.Accuracy)
	assert.Zero(t, empty.Promotions)
	assert.Zero(t, empty.CardsReviewed)
	assert.Contains(t, empty.ByDifficulty, domain.DifficultyWrong)
}
