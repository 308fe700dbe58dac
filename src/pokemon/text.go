package pokemon

import (
	"strings"
	"unicode"
)

const genusSuffix = " Pokémon"

// NormalizeFlavorText replaces control characters with spaces and
// collapses whitespace runs. Game flavor text is riddled with form feeds
// and hard line breaks.
func NormalizeFlavorText(text string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, text)
	return strings.Join(strings.Fields(cleaned), " ")
}

// CategoryFromGenus turns "Seed Pokémon" into "Seed".
func CategoryFromGenus(genus string) string {
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(genus), genusSuffix))
}
