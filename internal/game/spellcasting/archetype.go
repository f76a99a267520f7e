package spellcasting

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/statforge/internal/game/statistic"
)

// Archetype is the caster archetype of a spellcasting entry.
type Archetype string

const (
	Innate      Archetype = "innate"
	Prepared    Archetype = "prepared"
	Spontaneous Archetype = "spontaneous"

	ArchetypeNone Archetype = "none"
)

// Archetypes lists the three caster archetypes.
var Archetypes = []Archetype{Innate, Prepared, Spontaneous}

// ParseArchetype converts a case-insensitive archetype word. "none" is accepted.
func ParseArchetype(word string) (Archetype, error) {
	a := Archetype(strings.ToLower(strings.TrimSpace(word)))
	if a == ArchetypeNone {
		return a, nil
	}
	if _, ok := variants[a]; ok {
		return a, nil
	}
	return "", fmt.Errorf("unknown caster archetype %q", word)
}

// variant holds the per-archetype slot behaviour. Components select the
// variant once and call through it rather than branching on the archetype.
type variant struct {
	generate func(level statistic.Level) SlotMap
	expand   func(existing SlotMap, level statistic.Level) SlotMap
}

var variants = map[Archetype]variant{
	Innate: {
		generate: func(statistic.Level) SlotMap { return emptySlots() },
		expand:   func(_ SlotMap, level statistic.Level) SlotMap { return emptySlots() },
	},
	Prepared: {
		generate: func(level statistic.Level) SlotMap { return fromProgression(preparedProgression, level, true) },
		expand:   clearAssignments,
	},
	Spontaneous: {
		generate: func(level statistic.Level) SlotMap { return fromProgression(spontaneousProgression, level, false) },
		expand: func(_ SlotMap, level statistic.Level) SlotMap {
			return fromProgression(spontaneousProgression, level, false)
		},
	},
}

func lookup(a Archetype) (variant, error) {
	v, ok := variants[a]
	if !ok {
		return variant{}, fmt.Errorf("unknown caster archetype %q", a)
	}
	return v, nil
}

func emptySlots() SlotMap {
	var m SlotMap
	for i := range m {
		m[i].Prepared = []Assignment{}
	}
	return m
}

// fromProgression builds slots from a progression row. Levels without a row
// (below 1 or above the table) use the level 1 row.
func fromProgression(p progression, level statistic.Level, prepared bool) SlotMap {
	row, ok := p[level]
	if !ok {
		row = p[1]
	}
	m := emptySlots()
	m[0].Max = cantripSlots
	for rank := 1; rank <= 10; rank++ {
		m[rank].Max = row[rank-1]
	}
	for i := range m {
		m[i].Value = m[i].Max
		if prepared {
			m[i].Prepared = make([]Assignment, m[i].Max)
		}
	}
	return m
}

// clearAssignments keeps every tier's capacity and array length but drops all
// spell references. Capacity is not regrown for the new level.
func clearAssignments(existing SlotMap, _ statistic.Level) SlotMap {
	out := existing.Clone()
	for i := range out {
		if out[i].Prepared == nil {
			out[i].Prepared = []Assignment{}
		}
		for j := range out[i].Prepared {
			out[i].Prepared[j] = Assignment{}
		}
	}
	return out
}
