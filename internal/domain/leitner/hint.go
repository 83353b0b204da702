package leitner

import (
	"strings"

	"github.com/phrazzld/leitner/internal/domain"
)

// visiblePrefix is the number of leading characters a generated hint reveals.
const visiblePrefix = 3

// Hint returns the card's own hint when it has one, otherwise a masked
// version of the front text.
//
// Masking counts characters, not bytes: fronts of up to visiblePrefix
// characters show the first character only, longer fronts show the first
// visiblePrefix characters. Every hidden character becomes '*'.
func Hint(card domain.Card) string {
	if strings.TrimSpace(card.Hint) != "" {
		return card.Hint
	}

	runes := []rune(card.Front)
	if len(runes) == 0 {
		return ""
	}

	shown := visiblePrefix
	if len(runes) <= visiblePrefix {
		shown = 1
	}

	var sb strings.Builder
	sb.Grow(len(runes))
	sb.WriteString(string(runes[:shown]))
	sb.WriteString(strings.Repeat("*", len(runes)-shown))
	return sb.String()
}
