package domain

import "time"

// PracticeRecord is an immutable log entry written once per answered card.
type PracticeRecord struct {
	ID             int64      `json:"id,omitempty"`
	CardFront      string     `json:"cardFront"`
	CardBack       string     `json:"cardBack"`
	Difficulty     Difficulty `json:"difficulty"`
	PreviousBucket int        `json:"previousBucket"`
	NewBucket      int        `json:"newBucket"`
	Timestamp      time.Time  `json:"timestamp"`
}

// NewPracticeRecord builds a record for a review of the card identified by key.
func NewPracticeRecord(key CardKey, d Difficulty, previous, next int, at time.Time) PracticeRecord {
	return PracticeRecord{
		CardFront:      key.Front,
		CardBack:       key.Back,
		Difficulty:     d,
		PreviousBucket: previous,
		NewBucket:      next,
		Timestamp:      at.UTC(),
	}
}

// Key returns the identity of the reviewed card.
func (r PracticeRecord) Key() CardKey {
	return CardKey{Front: r.CardFront, Back: r.CardBack}
}

// Promoted reports whether the review moved the card to a higher bucket.
func (r PracticeRecord) Promoted() bool {
	return r.NewBucket > r.PreviousBucket
}
