package leitner

import (
	"errors"
	"testing"

	"github.com/phrazzld/leitner/internal/domain"
)

func TestIsDue(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		bucket   int
		day      int
		expected bool
	}{
		{"bucket 0 every day", 0, 7, true},
		{"bucket 1 even day", 1, 4, true},
		{"bucket 1 odd day", 1, 3, false},
		{"bucket 2 day 4", 2, 4, true},
		{"bucket 2 day 6", 2, 6, false},
		{"bucket 3 day 8", 3, 8, true},
		{"bucket 7 day 128", 7, 128, true},
		{"bucket 7 day 64", 7, 64, false},
		{"any bucket day 0", 5, 0, true},
		{"negative bucket", -1, 0, false},
		{"huge bucket nonzero day", 63, 1 << 40, false},
		{"huge bucket day 0", 63, 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isDue(tc.bucket, tc.day); got != tc.expected {
				t.Errorf("isDue(%d, %d) = %v, expected %v", tc.bucket, tc.day, got, tc.expected)
			}
		})
	}
}

func TestSelectDue(t *testing.T) {
	t.Parallel()

	b := fill(map[int]int{0: 2, 1: 1, 2: 1, 3: 1})

	testCases := []struct {
		day      int
		expected int
	}{
		{0, 5},
		{1, 2},
		{2, 3},
		{4, 4},
		{8, 5},
	}

	for _, tc := range testCases {
		if got := len(SelectDue(b, tc.day)); got != tc.expected {
			t.Errorf("SelectDue(day %d) returned %d cards, expected %d", tc.day, got, tc.expected)
		}
	}

	if got := SelectDue(Buckets{}, 3); len(got) != 0 {
		t.Errorf("Expected empty result for empty store, got %d cards", len(got))
	}
}

func TestNextBucket(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	testCases := []struct {
		name     string
		current  int
		d        domain.Difficulty
		expected int
	}{
		{"easy from 3", 3, domain.DifficultyEasy, 5},
		{"easy from 6 capped", 6, domain.DifficultyEasy, 7},
		{"easy at cap", 7, domain.DifficultyEasy, 7},
		{"hard from 4", 4, domain.DifficultyHard, 5},
		{"hard at cap", 7, domain.DifficultyHard, 7},
		{"wrong from 5", 5, domain.DifficultyWrong, 0},
		{"wrong from 0", 0, domain.DifficultyWrong, 0},
		{"above cap pulled down", 9, domain.DifficultyHard, 7},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := nextBucket(tc.current, tc.d, params); got != tc.expected {
				t.Errorf("nextBucket(%d, %v) = %d, expected %d", tc.current, tc.d, got, tc.expected)
			}
		})
	}

	custom := NewParams(ParamsConfig{MaxBucket: 4})
	if got := nextBucket(3, domain.DifficultyEasy, custom); got != 4 {
		t.Errorf("Expected custom cap 4, got %d", got)
	}
}

func TestReorder(t *testing.T) {
	t.Parallel()

	c := card("Capital of France", "Paris")
	other := card("2 + 2", "4")

	testCases := []struct {
		name     string
		from     int
		d        domain.Difficulty
		expected int
	}{
		{"easy 3 to 5", 3, domain.DifficultyEasy, 5},
		{"easy 6 capped at 7", 6, domain.DifficultyEasy, 7},
		{"hard 4 to 5", 4, domain.DifficultyHard, 5},
		{"wrong 5 to 0", 5, domain.DifficultyWrong, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := Buckets{}
			b.Add(tc.from, c)
			b.Add(0, other)

			out, err := Reorder(b, c, tc.d)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}

			got, ok := out.Find(c.Key())
			if !ok || got != tc.expected {
				t.Errorf("Expected card in bucket %d, got %d (found=%v)", tc.expected, got, ok)
			}
			if out.Total() != b.Total() {
				t.Errorf("Expected total %d, got %d", b.Total(), out.Total())
			}

			// Input store is untouched.
			if was, _ := b.Find(c.Key()); was != tc.from {
				t.Errorf("Input mutated: card moved from bucket %d to %d", tc.from, was)
			}
		})
	}
}

func TestReorderPrunesEmptyBucket(t *testing.T) {
	t.Parallel()

	c := card("Largest planet", "Jupiter")
	b := Buckets{}
	b.Add(3, c)

	out, err := Reorder(b, c, domain.DifficultyHard)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, ok := out[3]; ok {
		t.Error("Expected emptied bucket 3 to be pruned")
	}
	if len(out[4]) != 1 {
		t.Errorf("Expected one card in bucket 4, got %d", len(out[4]))
	}
}

func TestReorderKeepsStoredCard(t *testing.T) {
	t.Parallel()

	stored := card("Water's chemical formula", "H2O")
	stored.Hint = "Two hydrogens"
	b := Buckets{}
	b.Add(0, stored)

	// The caller only knows the key.
	lookup := domain.Card{Front: stored.Front, Back: stored.Back}
	out, err := Reorder(b, lookup, domain.DifficultyEasy)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	got, bucket, _ := out.Card(stored.Key())
	if bucket != 2 || got.ID != stored.ID || got.Hint != stored.Hint {
		t.Errorf("Expected stored card in bucket 2, got %+v in bucket %d", got, bucket)
	}
}

func TestReorderErrors(t *testing.T) {
	t.Parallel()

	c := card("cat", "gato")
	b := Buckets{}
	b.Add(1, c)

	if _, err := Reorder(b, card("dog", "perro"), domain.DifficultyEasy); !errors.Is(err, ErrCardNotFound) {
		t.Errorf("Expected ErrCardNotFound, got %v", err)
	}

	if _, err := Reorder(b, c, domain.Difficulty(3)); !errors.Is(err, ErrInvalidDifficulty) {
		t.Errorf("Expected ErrInvalidDifficulty, got %v", err)
	}
	if _, err := Reorder(b, c, domain.Difficulty(-1)); !errors.Is(err, domain.ErrInvalidDifficulty) {
		t.Errorf("Expected domain.ErrInvalidDifficulty, got %v", err)
	}

	if was, _ := b.Find(c.Key()); was != 1 {
		t.Errorf("Expected card to stay in bucket 1 after failed reorder, got %d", was)
	}
}

// Card C starts in bucket 0, is answered Easy on day 0, skips day 1 and
// returns on day 4.
func TestPracticeScenario(t *testing.T) {
	t.Parallel()

	c := card("Capital of France", "Paris")
	b := Buckets{}
	b.Add(0, c)

	if !SelectDue(b, 0).Contains(c.Key()) {
		t.Fatal("Expected card due on day 0")
	}

	b, err := Reorder(b, c, domain.DifficultyEasy)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if bucket, _ := b.Find(c.Key()); bucket != 2 {
		t.Fatalf("Expected card in bucket 2, got %d", bucket)
	}

	if SelectDue(b, 1).Contains(c.Key()) {
		t.Error("Expected card not due on day 1")
	}
	if !SelectDue(b, 4).Contains(c.Key()) {
		t.Error("Expected card due on day 4")
	}
}
