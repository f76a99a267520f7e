// Package roadmap holds named presets that map every statistic to a rating,
// and turns user-authored category-grouped presets into that flat shape.
package roadmap

import (
	"errors"

	"github.com/cory-johannsen/statforge/internal/game/spellcasting"
	"github.com/cory-johannsen/statforge/internal/game/statistic"
)

var (
	// ErrInvalidRoadmap marks a custom roadmap whose shape cannot be transformed.
	ErrInvalidRoadmap = errors.New("invalid roadmap")
	// ErrDuplicateName marks a custom roadmap whose name is already registered.
	ErrDuplicateName = errors.New("duplicate roadmap name")
	// ErrReservedName marks a custom roadmap whose name collides with a built-in key.
	ErrReservedName = errors.New("roadmap name reserved by a built-in")
)

// Choices maps each statistic to a choice word. Most statistics take a
// rating word; the spellcasting sub-choices take a tradition, a caster
// archetype, or an ability ID.
type Choices map[statistic.ID]string

// Rating returns the rating chosen for stat, or fallback when the choice is
// absent or not a rating word.
func (c Choices) Rating(stat statistic.ID, fallback statistic.Rating) statistic.Rating {
	word, ok := c[stat]
	if !ok {
		return fallback
	}
	r, err := statistic.ParseRating(word)
	if err != nil {
		return fallback
	}
	return r
}

// Clone returns an independent copy of c.
func (c Choices) Clone() Choices {
	out := make(Choices, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Roadmap is a named preset of choices.
type Roadmap struct {
	Key     string
	Name    string
	Choices Choices
}

// Defaults returns the choices an empty custom roadmap transforms into:
// abilities, defenses and strikes at moderate, skills and spellcasting absent.
func Defaults() Choices {
	c := make(Choices, len(statistic.All()))
	for _, group := range [][]statistic.ID{statistic.Abilities, statistic.Defenses, statistic.Strikes} {
		for _, id := range group {
			c[id] = string(statistic.Moderate)
		}
	}
	for _, id := range statistic.Skills {
		c[id] = string(statistic.RatingNone)
	}
	disableSpellcasting(c)
	return c
}

func disableSpellcasting(c Choices) {
	c[statistic.Spellcasting] = string(statistic.RatingNone)
	c[statistic.SpellcastingTradition] = string(statistic.TraditionNone)
	c[statistic.SpellcastingType] = string(spellcasting.ArchetypeNone)
	delete(c, statistic.SpellcastingAttribute)
}
