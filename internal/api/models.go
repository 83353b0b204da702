package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/leitner/internal/domain"
	"github.com/phrazzld/leitner/internal/service"
)

// UpdateRequest is the payload of POST /api/update. Difficulty accepts the
// numeric code or the name.
type UpdateRequest struct {
	CardFront  string             `json:"cardFront"  validate:"required"`
	CardBack   string             `json:"cardBack"   validate:"required"`
	Difficulty *domain.Difficulty `json:"difficulty"`
}

// UpdateResponse reports the bucket move applied by an update.
type UpdateResponse struct {
	Message        string `json:"message"`
	PreviousBucket int    `json:"previousBucket"`
	NewBucket      int    `json:"newBucket"`
}

// SessionResponse is the body of GET /api/practice.
type SessionResponse struct {
	Cards []CardResponse `json:"cards"`
	Day   int            `json:"day"`
}

// HintResponse is the body of GET /api/hint.
type HintResponse struct {
	Hint string `json:"hint"`
}

// DayResponse is the body of POST /api/day/next.
type DayResponse struct {
	Message string `json:"message"`
	Day     int    `json:"day"`
}

// ClearHistoryResponse is the body of DELETE /api/history.
type ClearHistoryResponse struct {
	Message string `json:"message"`
	Deleted int64  `json:"deleted"`
}

// CardRequest is the payload for creating or editing a card.
type CardRequest struct {
	Front string   `json:"front" validate:"required,max=1000"`
	Back  string   `json:"back"  validate:"required,max=1000"`
	Hint  string   `json:"hint"  validate:"max=1000"`
	Tags  []string `json:"tags"  validate:"max=20,dive,max=50"`
}

func (r CardRequest) toInput() service.CardInput {
	return service.CardInput{Front: r.Front, Back: r.Back, Hint: r.Hint, Tags: r.Tags}
}

// CardResponse represents a card in API responses.
type CardResponse struct {
	ID        uuid.UUID `json:"id"`
	Front     string    `json:"front"`
	Back      string    `json:"back"`
	Hint      string    `json:"hint,omitempty"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
}

// ImportRequest is the payload of POST /api/cards/import.
type ImportRequest struct {
	Cards []CardRequest `json:"cards" validate:"required,min=1,max=1000"`
}

func cardToResponse(card domain.Card) CardResponse {
	tags := card.Tags
	if tags == nil {
		tags = []string{}
	}
	return CardResponse{
		ID:        card.ID,
		Front:     card.Front,
		Back:      card.Back,
		Hint:      card.Hint,
		Tags:      tags,
		CreatedAt: card.CreatedAt,
	}
}

func cardsToResponse(cards []domain.Card) []CardResponse {
	out := make([]CardResponse, len(cards))
	for i, c := range cards {
		out[i] = cardToResponse(c)
	}
	return out
}
