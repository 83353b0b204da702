package sqlstore

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/leitner/internal/domain"
)

const cardColumns = "c.id, c.front, c.back, c.hint, c.tags_json, c.created_at_ms"

// cardRow mirrors the cards table.
type cardRow struct {
	ID          uuid.UUID `db:"id"`
	Front       string    `db:"front"`
	Back        string    `db:"back"`
	Hint        string    `db:"hint"`
	TagsJSON    string    `db:"tags_json"`
	CreatedAtMs int64     `db:"created_at_ms"`
}

// bucketRow is a card joined with its bucket.
type bucketRow struct {
	cardRow
	Bucket int `db:"bucket"`
}

func (r cardRow) toDomain() (domain.Card, error) {
	tags, err := decodeTags(r.TagsJSON)
	if err != nil {
		return domain.Card{}, fmt.Errorf("card %s: %w", r.ID, err)
	}
	return domain.Card{
		ID:        r.ID,
		Front:     r.Front,
		Back:      r.Back,
		Hint:      r.Hint,
		Tags:      tags,
		CreatedAt: time.UnixMilli(r.CreatedAtMs).UTC(),
	}, nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("failed to encode tags: %w", err)
	}
	return string(b), nil
}

func decodeTags(s string) ([]string, error) {
	tags := []string{}
	if s == "" {
		return tags, nil
	}
	if err := json.Unmarshal([]byte(s), &tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags: %w", err)
	}
	return tags, nil
}

// historyRow mirrors the practice_history table.
type historyRow struct {
	ID             int64  `db:"id"`
	CardFront      string `db:"card_front"`
	CardBack       string `db:"card_back"`
	Difficulty     int    `db:"difficulty"`
	PreviousBucket int    `db:"previous_bucket"`
	NewBucket      int    `db:"new_bucket"`
	ReviewedAtMs   int64  `db:"reviewed_at_ms"`
}

func (r historyRow) toDomain() domain.PracticeRecord {
	return domain.PracticeRecord{
		ID:             r.ID,
		CardFront:      r.CardFront,
		CardBack:       r.CardBack,
		Difficulty:     domain.Difficulty(r.Difficulty),
		PreviousBucket: r.PreviousBucket,
		NewBucket:      r.NewBucket,
		Timestamp:      time.UnixMilli(r.ReviewedAtMs).UTC(),
	}
}
