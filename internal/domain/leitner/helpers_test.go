package leitner

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/phrazzld/leitner/internal/domain"
)

func card(front, back string) domain.Card {
	return domain.Card{ID: uuid.New(), Front: front, Back: back}
}

// fill builds a store with n generated cards in each listed bucket.
func fill(counts map[int]int) Buckets {
	b := make(Buckets)
	for bucket, n := range counts {
		for i := 0; i < n; i++ {
			b.Add(bucket, card(fmt.Sprintf("q%d-%d", bucket, i), fmt.Sprintf("a%d-%d", bucket, i)))
		}
	}
	return b
}
