// Package creature builds levelled creature statblocks from rating choices and
// infers choices back from existing statblocks.
package creature

import (
	"github.com/cory-johannsen/statforge/internal/game/spellcasting"
	"github.com/cory-johannsen/statforge/internal/game/statistic"
)

// Strike is a creature's representative attack.
type Strike struct {
	Bonus  int    `json:"bonus"`
	Damage string `json:"damage"`
}

// Creature is a resolved statblock. Skills holds only trained skills; Strike
// and Spellcasting are nil when absent.
type Creature struct {
	Name         string               `json:"name"`
	Level        statistic.Level      `json:"level"`
	Abilities    map[statistic.ID]int `json:"abilities"`
	HitPoints    int                  `json:"hp"`
	Perception   int                  `json:"perception"`
	ArmorClass   int                  `json:"ac"`
	Saves        map[statistic.ID]int `json:"saves"`
	Skills       map[statistic.ID]int `json:"skills,omitempty"`
	Strike       *Strike              `json:"strike,omitempty"`
	Spellcasting *spellcasting.Entry  `json:"spellcasting,omitempty"`
	// EntryID is the store id of the spellcasting entry once ApplySpellList has run.
	EntryID string `json:"entryId,omitempty"`
}

// Stat returns the numeric value of any ability, defense, or skill statistic.
//
// Postcondition: Returns (value, true) if the creature carries the statistic.
func (c *Creature) Stat(id statistic.ID) (int, bool) {
	switch id {
	case statistic.HitPoints:
		return c.HitPoints, true
	case statistic.Perception:
		return c.Perception, true
	case statistic.ArmorClass:
		return c.ArmorClass, true
	case statistic.StrikeBonus:
		if c.Strike == nil {
			return 0, false
		}
		return c.Strike.Bonus, true
	}
	for _, m := range []map[statistic.ID]int{c.Abilities, c.Saves, c.Skills} {
		if v, ok := m[id]; ok {
			return v, true
		}
	}
	return 0, false
}
