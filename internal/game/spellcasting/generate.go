package spellcasting

import (
	"github.com/cory-johannsen/statforge/internal/game/statistic"
)

// GenerateSlots returns a fresh slot structure for archetype a at level.
//
// Precondition: a must be Innate, Prepared, or Spontaneous.
// Postcondition: Innate slots are all zero. Prepared and Spontaneous slots have
// five cantrips and per-rank capacities from their progression, with Value ==
// Max; Prepared tiers carry Max unassigned records. Levels outside the
// progression use the level 1 row.
func GenerateSlots(a Archetype, level statistic.Level) (SlotMap, error) {
	v, err := lookup(a)
	if err != nil {
		return SlotMap{}, err
	}
	return v.generate(level), nil
}

// ExpandSlots regrows an existing caster's slots for newLevel.
//
// Prepared keeps every tier's capacity and clears all assignments. Spontaneous
// and Innate discard the existing structure and regenerate. A nil existing map
// always regenerates.
//
// Precondition: a must be Innate, Prepared, or Spontaneous.
// Postcondition: existing is never mutated.
func ExpandSlots(existing *SlotMap, a Archetype, newLevel statistic.Level) (SlotMap, error) {
	v, err := lookup(a)
	if err != nil {
		return SlotMap{}, err
	}
	if existing == nil {
		return v.generate(newLevel), nil
	}
	return v.expand(*existing, newLevel), nil
}
