// Package spellcasting generates spell slot structures and spellcasting entry
// documents for the three caster archetypes.
package spellcasting

import (
	"encoding/json"
	"fmt"
)

// TierCount is the number of slot tiers: index 0 holds cantrips, 1-10 the
// spell ranks, and 11 is reserved.
const TierCount = 12

// Assignment is one prepared-slot record. SpellID is nil until a spell is
// assigned.
type Assignment struct {
	SpellID  *string `json:"id"`
	Expended bool    `json:"expended"`
}

// Tier is a single slot tier.
//
// Invariant: Prepared is empty unless the owning archetype is Prepared, in
// which case len(Prepared) == Max.
type Tier struct {
	Max      int          `json:"max"`
	Value    int          `json:"value"`
	Prepared []Assignment `json:"prepared"`
}

// SlotMap is the full slot structure of a spellcasting entry.
type SlotMap [TierCount]Tier

// SlotKey returns the document key for tier i, e.g. "slot3".
func SlotKey(i int) string {
	return fmt.Sprintf("slot%d", i)
}

// Clone returns a deep copy; mutating the result never affects m.
func (m SlotMap) Clone() SlotMap {
	var out SlotMap
	for i, t := range m {
		out[i] = Tier{Max: t.Max, Value: t.Value, Prepared: make([]Assignment, len(t.Prepared))}
		for j, a := range t.Prepared {
			out[i].Prepared[j] = Assignment{Expended: a.Expended}
			if a.SpellID != nil {
				id := *a.SpellID
				out[i].Prepared[j].SpellID = &id
			}
		}
	}
	return out
}

// Available returns the tier indexes whose capacity is non-zero, ascending.
func (m SlotMap) Available() []int {
	var out []int
	for i, t := range m {
		if t.Max > 0 {
			out = append(out, i)
		}
	}
	return out
}

// MarshalJSON encodes the map as {"slot0": {...}, ..., "slot11": {...}}.
func (m SlotMap) MarshalJSON() ([]byte, error) {
	obj := make(map[string]Tier, TierCount)
	for i, t := range m {
		if t.Prepared == nil {
			t.Prepared = []Assignment{}
		}
		obj[SlotKey(i)] = t
	}
	return json.Marshal(obj)
}

// UnmarshalJSON decodes the keyed form written by MarshalJSON. Unknown keys
// are ignored and missing tiers stay zero.
func (m *SlotMap) UnmarshalJSON(data []byte) error {
	var obj map[string]Tier
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("decoding slot map: %w", err)
	}
	var out SlotMap
	for i := range out {
		if t, ok := obj[SlotKey(i)]; ok {
			out[i] = t
		}
	}
	*m = out
	return nil
}
