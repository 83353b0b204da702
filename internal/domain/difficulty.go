package domain

import (
	"encoding"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Difficulty is the reviewer's self-rated recall quality for a card.
type Difficulty int

// The numeric codes match the values clients have always sent on the wire.
const (
	DifficultyWrong Difficulty = iota // Not recalled.
	DifficultyHard                    // Recalled with effort.
	DifficultyEasy                    // Recalled effortlessly.
)

var (
	difficultyNames = [...]string{
		DifficultyWrong: "wrong",
		DifficultyHard:  "hard",
		DifficultyEasy:  "easy",
	}
	difficultyByName = map[string]Difficulty{
		"wrong": DifficultyWrong,
		"hard":  DifficultyHard,
		"easy":  DifficultyEasy,
	}
)

var (
	_ fmt.Stringer             = Difficulty(0)
	_ json.Marshaler           = Difficulty(0)
	_ json.Unmarshaler         = (*Difficulty)(nil)
	_ encoding.TextMarshaler   = Difficulty(0)
	_ encoding.TextUnmarshaler = (*Difficulty)(nil)
)

// Difficulties lists every valid difficulty in code order.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyWrong, DifficultyHard, DifficultyEasy}
}

// String returns the lowercase name of the difficulty, or "Difficulty(n)"
// for values outside the enumeration.
func (d Difficulty) String() string {
	if d.IsValid() {
		return difficultyNames[d]
	}
	return fmt.Sprintf("Difficulty(%d)", int(d))
}

// IsValid reports whether d is one of Wrong, Hard or Easy.
func (d Difficulty) IsValid() bool {
	return d >= DifficultyWrong && d <= DifficultyEasy
}

// ParseDifficulty accepts a difficulty name (case-insensitive) or its numeric
// code.
func ParseDifficulty(s string) (Difficulty, error) {
	s = strings.TrimSpace(s)
	if d, ok := difficultyByName[strings.ToLower(s)]; ok {
		return d, nil
	}
	if n, err := strconv.Atoi(s); err == nil && Difficulty(n).IsValid() {
		return Difficulty(n), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDifficulty, s)
}

// MarshalText implements encoding.TextMarshaler.
func (d Difficulty) MarshalText() ([]byte, error) {
	if !d.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDifficulty, int(d))
	}
	return []byte(difficultyNames[d]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Difficulty) UnmarshalText(text []byte) error {
	v, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// MarshalJSON implements json.Marshaler. Difficulty serializes as its name.
func (d Difficulty) MarshalJSON() ([]byte, error) {
	text, err := d.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler. Both the integer code and the
// name are accepted.
func (d *Difficulty) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		if !Difficulty(n).IsValid() {
			return fmt.Errorf("%w: %d", ErrInvalidDifficulty, n)
		}
		*d = Difficulty(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDifficulty, data)
	}
	return d.UnmarshalText([]byte(s))
}
