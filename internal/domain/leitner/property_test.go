package leitner

import (
	"math/rand/v2"
	"testing"

	"github.com/phrazzld/leitner/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomBuckets(r *rand.Rand) Buckets {
	counts := make(map[int]int)
	for bucket := 0; bucket <= DefaultMaxBucket; bucket++ {
		if r.IntN(3) == 0 {
			continue
		}
		counts[bucket] = r.IntN(4)
	}
	return fill(counts)
}

func TestSchedulerProperties(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(42, 7))

	for iter := 0; iter < 200; iter++ {
		b := randomBuckets(r)
		day := r.IntN(300)
		due := SelectDue(b, day)

		// Subset of the store, bucket 0 always included, cadence honored.
		for key := range due {
			_, ok := b.Find(key)
			require.True(t, ok, "selected card %v not in store", key)
		}
		for bucket, set := range b {
			for key := range set {
				expected := bucket == 0 || day%(1<<bucket) == 0
				assert.Equal(t, expected, due.Contains(key),
					"bucket %d on day %d", bucket, day)
			}
		}

		assert.Len(t, SelectDue(b, 0), b.Total(), "day 0 selects every card")

		if b.Total() == 0 {
			continue
		}

		// Reorder preserves the card count and keeps each card in one bucket.
		cards := NewCardSet()
		for _, set := range b {
			for k, c := range set {
				cards[k] = c
			}
		}
		sorted := cards.Sorted()
		c := sorted[r.IntN(len(sorted))]
		d := domain.Difficulties()[r.IntN(len(domain.Difficulties()))]

		out, err := Reorder(b, c, d)
		require.NoError(t, err)
		assert.Equal(t, b.Total(), out.Total())

		seen := 0
		for bucket, set := range out {
			assert.NotEmpty(t, set, "bucket %d left empty", bucket)
			assert.LessOrEqual(t, bucket, DefaultMaxBucket)
			if set.Contains(c.Key()) {
				seen++
			}
		}
		assert.Equal(t, 1, seen)
	}
}
