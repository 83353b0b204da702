package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Card-specific validation errors
var (
	// ErrCardIDEmpty is returned when a card ID is empty or nil.
	ErrCardIDEmpty = errors.New("card ID cannot be empty")

	// ErrCardFrontEmpty is returned when a card has no question text.
	ErrCardFrontEmpty = errors.New("card front cannot be empty")

	// ErrCardBackEmpty is returned when a card has no answer text.
	ErrCardBackEmpty = errors.New("card back cannot be empty")
)

// CardKey is the natural identity of a card. Two cards with the same front and
// back text are the same card.
type CardKey struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Card represents a single flashcard.
//
// The scheduler identifies cards by Key and never modifies their content; the
// ID is assigned by persistence and used by card management.
type Card struct {
	ID        uuid.UUID `json:"id"`
	Front     string    `json:"front"`
	Back      string    `json:"back"`
	Hint      string    `json:"hint,omitempty"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCard creates a new Card with a generated ID. Tags are trimmed and empty
// tags are dropped. Returns an error if validation fails.
func NewCard(front, back, hint string, tags []string) (*Card, error) {
	card := &Card{
		ID:        uuid.New(),
		Front:     front,
		Back:      back,
		Hint:      hint,
		Tags:      NormalizeTags(tags),
		CreatedAt: time.Now().UTC(),
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Key returns the card's natural identity.
func (c Card) Key() CardKey {
	return CardKey{Front: c.Front, Back: c.Back}
}

// Validate checks if the Card has valid data.
func (c *Card) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCardIDEmpty
	}

	if strings.TrimSpace(c.Front) == "" {
		return ErrCardFrontEmpty
	}

	if strings.TrimSpace(c.Back) == "" {
		return ErrCardBackEmpty
	}

	return nil
}

// HasAnyTag reports whether the card carries at least one of the given tags.
// An empty tag list matches every card.
func (c Card) HasAnyTag(tags []string) bool {
	if len(tags) == 0 {
		return true
	}
	for _, want := range tags {
		for _, have := range c.Tags {
			if have == want {
				return true
			}
		}
	}
	return false
}

// NormalizeTags trims whitespace, drops empty entries and removes duplicates
// while keeping the original order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
