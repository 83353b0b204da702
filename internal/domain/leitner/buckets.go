package leitner

import (
	"sort"

	"github.com/phrazzld/leitner/internal/domain"
)

// CardSet is a set of cards keyed by their natural identity.
type CardSet map[domain.CardKey]domain.Card

// NewCardSet builds a set from the given cards. Later duplicates replace
// earlier ones.
func NewCardSet(cards ...domain.Card) CardSet {
	set := make(CardSet, len(cards))
	for _, c := range cards {
		set[c.Key()] = c
	}
	return set
}

// Contains reports whether a card with the given key is in the set.
func (s CardSet) Contains(key domain.CardKey) bool {
	_, ok := s[key]
	return ok
}

// Sorted returns the cards ordered by front then back text.
func (s CardSet) Sorted() []domain.Card {
	cards := make([]domain.Card, 0, len(s))
	for _, c := range s {
		cards = append(cards, c)
	}
	sort.Slice(cards, func(i, j int) bool {
		return lessKey(cards[i].Key(), cards[j].Key())
	})
	return cards
}

// Buckets maps a bucket number to the cards it holds. Absent and empty
// buckets are equivalent. A well-formed Buckets value holds each card in at
// most one bucket.
type Buckets map[int]CardSet

// Add places card in bucket, removing it from any other bucket first.
func (b Buckets) Add(bucket int, card domain.Card) {
	if from, ok := b.Find(card.Key()); ok {
		delete(b[from], card.Key())
		if len(b[from]) == 0 {
			delete(b, from)
		}
	}
	if b[bucket] == nil {
		b[bucket] = make(CardSet)
	}
	b[bucket][card.Key()] = card
}

// Find returns the bucket holding the card with the given key.
func (b Buckets) Find(key domain.CardKey) (int, bool) {
	for i, set := range b {
		if _, ok := set[key]; ok {
			return i, true
		}
	}
	return 0, false
}

// Card returns the stored card for key along with its bucket.
func (b Buckets) Card(key domain.CardKey) (domain.Card, int, bool) {
	for i, set := range b {
		if c, ok := set[key]; ok {
			return c, i, true
		}
	}
	return domain.Card{}, 0, false
}

// Total counts the cards across every bucket.
func (b Buckets) Total() int {
	n := 0
	for _, set := range b {
		n += len(set)
	}
	return n
}

// Range returns the lowest and highest non-empty bucket numbers. ok is false
// when no bucket holds a card.
func (b Buckets) Range() (lo, hi int, ok bool) {
	for i, set := range b {
		if len(set) == 0 {
			continue
		}
		if !ok {
			lo, hi, ok = i, i, true
			continue
		}
		if i < lo {
			lo = i
		}
		if i > hi {
			hi = i
		}
	}
	return lo, hi, ok
}

// Clone returns a copy whose bucket sets can be modified without affecting b.
// Empty buckets are dropped.
func (b Buckets) Clone() Buckets {
	out := make(Buckets, len(b))
	for i, set := range b {
		if len(set) == 0 {
			continue
		}
		cp := make(CardSet, len(set))
		for k, c := range set {
			cp[k] = c
		}
		out[i] = cp
	}
	return out
}

// Ordered returns the cards of set sorted by their bucket in b, then by front
// and back text. Cards missing from b sort first.
func (b Buckets) Ordered(set CardSet) []domain.Card {
	cards := set.Sorted()
	pos := make(map[domain.CardKey]int, len(cards))
	for _, c := range cards {
		i, _ := b.Find(c.Key())
		pos[c.Key()] = i
	}
	sort.SliceStable(cards, func(i, j int) bool {
		return pos[cards[i].Key()] < pos[cards[j].Key()]
	})
	return cards
}

func lessKey(a, b domain.CardKey) bool {
	if a.Front != b.Front {
		return a.Front < b.Front
	}
	return a.Back < b.Back
}
