package leitner

import (
	"github.com/phrazzld/leitner/internal/domain"
)

// isDue reports whether bucket is scheduled for practice on day.
//
// Bucket 0 is practiced every day. Bucket i > 0 is practiced when day is a
// multiple of 2^i, which gives buckets 1, 2, 3 ... intervals of 2, 4, 8 days.
// Negative buckets are never due.
func isDue(bucket, day int) bool {
	switch {
	case bucket < 0:
		return false
	case bucket == 0:
		return true
	case bucket >= 62:
		// 2^bucket exceeds any reachable day; only day 0 divides evenly.
		return day == 0
	}
	return day%(1<<bucket) == 0
}

// selectDue collects every card whose bucket is due on day.
//
// The result is a fresh set; b is not modified.
func selectDue(b Buckets, day int) CardSet {
	due := make(CardSet)
	for i, set := range b {
		if !isDue(i, day) {
			continue
		}
		for k, c := range set {
			due[k] = c
		}
	}
	return due
}

// nextBucket computes where a card in bucket current lands after a review.
//
// Behavior:
//   - Wrong resets to bucket 0
//   - Hard promotes by params.HardStep
//   - Easy promotes by params.EasyStep
//   - Promotion never exceeds params.MaxBucket, and a card already above the
//     cap is pulled down to it
//
// The caller must validate d first.
func nextBucket(current int, d domain.Difficulty, params *Params) int {
	var next int
	switch d {
	case domain.DifficultyEasy:
		next = current + params.EasyStep
	case domain.DifficultyHard:
		next = current + params.HardStep
	default:
		return 0
	}
	if next > params.MaxBucket {
		next = params.MaxBucket
	}
	return next
}

// reorder moves the card identified by key to its post-review bucket.
//
// It returns a new Buckets value with the card removed from its old bucket and
// placed in the new one; buckets left empty are pruned. The input is never
// modified, so a failed review leaves the caller's state untouched. The
// stored card value is kept, so card content is never rewritten by a review.
func reorder(
	b Buckets,
	key domain.CardKey,
	d domain.Difficulty,
	params *Params,
) (Buckets, int, int, error) {
	if !d.IsValid() {
		return nil, 0, 0, ErrInvalidDifficulty
	}

	card, from, ok := b.Card(key)
	if !ok {
		return nil, 0, 0, ErrCardNotFound
	}

	to := nextBucket(from, d, params)

	out := b.Clone()
	delete(out[from], key)
	if len(out[from]) == 0 {
		delete(out, from)
	}
	if out[to] == nil {
		out[to] = make(CardSet)
	}
	out[to][key] = card

	return out, from, to, nil
}
