package spellcasting

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cory-johannsen/statforge/internal/game/statistic"
)

// EntryType is the document type of a spellcasting entry.
const EntryType = "spellcastingEntry"

// SpellsLabelKey is the localization key for the "Spells" suffix of entry names.
const SpellsLabelKey = "spellcasting.spells"

// Localizer translates display keys.
type Localizer interface {
	Localize(key string) string
}

// TextValue is the {"value": ...} wrapper the host document model uses for scalar fields.
type TextValue struct {
	Value string `json:"value"`
}

// SpellDC carries the spell attack bonus and difficulty class.
type SpellDC struct {
	Value int `json:"value"`
	DC    int `json:"dc"`
}

// EntrySystem is the system payload of a spellcasting entry document.
type EntrySystem struct {
	Tradition TextValue `json:"tradition"`
	Prepared  TextValue `json:"prepared"`
	Ability   TextValue `json:"ability"`
	SpellDC   SpellDC   `json:"spelldc"`
	Slots     SlotMap   `json:"slots"`
}

// Entry is the document fragment describing one spellcasting capability.
type Entry struct {
	Name   string      `json:"name"`
	Type   string      `json:"type"`
	System EntrySystem `json:"system"`
}

// Archetype returns the entry's caster archetype.
func (e Entry) Archetype() Archetype {
	return Archetype(e.System.Prepared.Value)
}

// Tradition returns the entry's magical tradition.
func (e Entry) Tradition() statistic.Tradition {
	return statistic.Tradition(e.System.Tradition.Value)
}

// BuildEntry assembles a spellcasting entry. The name is "<Tradition>
// <Archetype> <Spells>" with the last word localized, the DC is bonus + 8, and
// the slots come from GenerateSlots.
//
// Precondition: a must be Innate, Prepared, or Spontaneous; loc must be non-nil.
// Postcondition: Returns the entry or an error for an unknown archetype.
func BuildEntry(
	tradition statistic.Tradition,
	a Archetype,
	key statistic.ID,
	bonus int,
	level statistic.Level,
	loc Localizer,
) (Entry, error) {
	slots, err := GenerateSlots(a, level)
	if err != nil {
		return Entry{}, fmt.Errorf("building spellcasting entry: %w", err)
	}
	return Entry{
		Name: strings.Join([]string{
			capitalize(string(tradition)),
			capitalize(string(a)),
			loc.Localize(SpellsLabelKey),
		}, " "),
		Type: EntryType,
		System: EntrySystem{
			Tradition: TextValue{Value: string(tradition)},
			Prepared:  TextValue{Value: string(a)},
			Ability:   TextValue{Value: string(key)},
			SpellDC:   SpellDC{Value: bonus, DC: bonus + 8},
			Slots:     slots,
		},
	}, nil
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
