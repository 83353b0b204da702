package leitner

import (
	"github.com/phrazzld/leitner/internal/domain"
)

// Stage names a coarse mastery level covering an inclusive range of buckets.
type Stage struct {
	Name       string `json:"name"`
	FromBucket int    `json:"fromBucket"`
	ToBucket   int    `json:"toBucket"`
}

// Stages partitions the default bucket ladder. With the default cap of 7 every
// bucket falls in exactly one stage; a higher configured cap leaves buckets
// above 7 counted in the total but in no stage.
var Stages = []Stage{
	{Name: "Beginner", FromBucket: 0, ToBucket: 1},
	{Name: "Intermediate", FromBucket: 2, ToBucket: 4},
	{Name: "Advanced", FromBucket: 5, ToBucket: 7},
}

// StageStats is the card count of one stage.
type StageStats struct {
	Stage
	CardCount  int     `json:"cardCount"`
	Percentage float64 `json:"percentage"`
}

// ProgressStats summarizes how cards are spread across the mastery stages.
type ProgressStats struct {
	TotalCards int          `json:"totalCards"`
	Stages     []StageStats `json:"stages"`

	// Lowest and highest non-empty buckets. Nil when there are no cards.
	MinBucket *int `json:"minBucket,omitempty"`
	MaxBucket *int `json:"maxBucket,omitempty"`
}

// ComputeProgress counts cards per stage.
//
// Percentages are relative to every card in b, including cards in buckets no
// stage covers. When b holds no cards all percentages are 0.
func ComputeProgress(b Buckets) ProgressStats {
	stats := ProgressStats{
		TotalCards: b.Total(),
		Stages:     make([]StageStats, len(Stages)),
	}

	for i, stage := range Stages {
		count := 0
		for bucket := stage.FromBucket; bucket <= stage.ToBucket; bucket++ {
			count += len(b[bucket])
		}
		stats.Stages[i] = StageStats{
			Stage:      stage,
			CardCount:  count,
			Percentage: percentage(count, stats.TotalCards),
		}
	}

	if lo, hi, ok := b.Range(); ok {
		stats.MinBucket = &lo
		stats.MaxBucket = &hi
	}

	return stats
}

// HistorySummary aggregates a list of practice records.
type HistorySummary struct {
	TotalReviews int                       `json:"totalReviews"`
	ByDifficulty map[domain.Difficulty]int `json:"byDifficulty"`
	// Reviews that moved a card to a higher bucket.
	Promotions int `json:"promotions"`
	// Distinct cards reviewed at least once.
	CardsReviewed int `json:"cardsReviewed"`
	// Share of reviews that were not answered Wrong, 0 to 100.
	Accuracy float64 `json:"accuracy"`
}

// SummarizeHistory counts reviews per difficulty. Records with an unknown
// difficulty count toward the total only.
func SummarizeHistory(records []domain.PracticeRecord) HistorySummary {
	summary := HistorySummary{
		TotalReviews: len(records),
		ByDifficulty: make(map[domain.Difficulty]int, len(domain.Difficulties())),
	}
	for _, d := range domain.Difficulties() {
		summary.ByDifficulty[d] = 0
	}

	correct := 0
	seen := make(map[domain.CardKey]struct{})
	for _, r := range records {
		seen[r.Key()] = struct{}{}
		if r.Promoted() {
			summary.Promotions++
		}
		if !r.Difficulty.IsValid() {
			continue
		}
		summary.ByDifficulty[r.Difficulty]++
		if r.Difficulty != domain.DifficultyWrong {
			correct++
		}
	}
	summary.Accuracy = percentage(correct, summary.TotalReviews)
	summary.CardsReviewed = len(seen)

	return summary
}

func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
