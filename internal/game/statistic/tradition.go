package statistic

import (
	"fmt"
	"strings"
)

// Tradition is a magical tradition a spellcasting entry draws from.
type Tradition string

const (
	Arcane Tradition = "arcane"
	Divine Tradition = "divine"
	Occult Tradition = "occult"
	Primal Tradition = "primal"

	TraditionNone Tradition = "none"
)

// Traditions lists the four magical traditions.
var Traditions = []Tradition{Arcane, Divine, Occult, Primal}

// ParseTradition converts a case-insensitive tradition word into a Tradition.
// "none" is accepted.
func ParseTradition(word string) (Tradition, error) {
	t := Tradition(strings.ToLower(strings.TrimSpace(word)))
	if t == TraditionNone {
		return t, nil
	}
	for _, known := range Traditions {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown tradition %q", word)
}

// ParseAbility converts an ability word ("cha" or "charisma") into its ID.
func ParseAbility(word string) (ID, error) {
	w := strings.ToLower(strings.TrimSpace(word))
	for _, a := range Abilities {
		if string(a) == w || abilityNames[a] == w {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown ability %q", word)
}

var abilityNames = map[ID]string{
	Strength:     "strength",
	Dexterity:    "dexterity",
	Constitution: "constitution",
	Intelligence: "intelligence",
	Wisdom:       "wisdom",
	Charisma:     "charisma",
}
