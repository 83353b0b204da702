package leitner

import (
	"errors"

	"github.com/phrazzld/leitner/internal/domain"
)

// Common errors
var (
	// ErrCardNotFound is returned by Reorder when no bucket holds the card.
	ErrCardNotFound = errors.New("card not found in any bucket")

	// ErrInvalidDifficulty is returned by Reorder for a difficulty outside the
	// closed enumeration. It matches domain.ErrInvalidDifficulty.
	ErrInvalidDifficulty = domain.ErrInvalidDifficulty
)

// Result describes a single bucket move.
type Result struct {
	Buckets        Buckets
	PreviousBucket int
	NewBucket      int
}

// Scheduler defines the scheduling operations over a bucket store
type Scheduler interface {
	// SelectDue returns every card due for practice on day
	SelectDue(b Buckets, day int) CardSet

	// Reorder moves card according to d and returns the new store.
	// b is left unchanged.
	Reorder(b Buckets, card domain.Card, d domain.Difficulty) (*Result, error)

	// Params returns the scheduler's parameters
	Params() Params
}

// defaultScheduler is the standard implementation of the Scheduler interface
type defaultScheduler struct {
	params *Params
}

// NewDefaultScheduler creates a scheduler with default parameters
func NewDefaultScheduler() Scheduler {
	return &defaultScheduler{
		params: NewDefaultParams(),
	}
}

// NewSchedulerWithParams creates a scheduler with custom parameters
func NewSchedulerWithParams(params *Params) (Scheduler, error) {
	if params == nil {
		return nil, ErrInvalidParams
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	p := *params
	return &defaultScheduler{params: &p}, nil
}

func (s *defaultScheduler) SelectDue(b Buckets, day int) CardSet {
	return selectDue(b, day)
}

func (s *defaultScheduler) Reorder(
	b Buckets,
	card domain.Card,
	d domain.Difficulty,
) (*Result, error) {
	out, from, to, err := reorder(b, card.Key(), d, s.params)
	if err != nil {
		return nil, err
	}
	return &Result{Buckets: out, PreviousBucket: from, NewBucket: to}, nil
}

func (s *defaultScheduler) Params() Params {
	return *s.params
}

// SelectDue returns every card due on day under the default cadence.
func SelectDue(b Buckets, day int) CardSet {
	return selectDue(b, day)
}

// Reorder applies a review to card using the default parameters and returns
// the new store.
func Reorder(b Buckets, card domain.Card, d domain.Difficulty) (Buckets, error) {
	out, _, _, err := reorder(b, card.Key(), d, NewDefaultParams())
	return out, err
}
