// Package statistic defines the closed set of scorable creature attributes,
// the creature level domain, and the qualitative rating scale.
package statistic

// ID names one scorable attribute of a creature.
type ID string

// Ability scores.
const (
	Strength     ID = "str"
	Dexterity    ID = "dex"
	Constitution ID = "con"
	Intelligence ID = "int"
	Wisdom       ID = "wis"
	Charisma     ID = "cha"
)

// Defenses and perception.
const (
	HitPoints  ID = "hp"
	Perception ID = "per"
	ArmorClass ID = "ac"
	Fortitude  ID = "fort"
	Reflex     ID = "ref"
	Will       ID = "wil"
)

// Skills.
const (
	Acrobatics   ID = "acrobatics"
	Arcana       ID = "arcana"
	Athletics    ID = "athletics"
	Crafting     ID = "crafting"
	Deception    ID = "deception"
	Diplomacy    ID = "diplomacy"
	Intimidation ID = "intimidation"
	Medicine     ID = "medicine"
	Nature       ID = "nature"
	Occultism    ID = "occultism"
	Performance  ID = "performance"
	Religion     ID = "religion"
	Society      ID = "society"
	Stealth      ID = "stealth"
	Survival     ID = "survival"
	Thievery     ID = "thievery"
)

// Strikes and spellcasting.
const (
	StrikeBonus  ID = "strikeBonus"
	StrikeDamage ID = "strikeDamage"

	Spellcasting          ID = "spellcasting"
	SpellcastingTradition ID = "spellcastingTradition"
	SpellcastingType      ID = "spellcastingType"
	SpellcastingAttribute ID = "spellcastingAttribute"
)

// Abilities lists the six ability scores in statblock order.
var Abilities = []ID{Strength, Dexterity, Constitution, Intelligence, Wisdom, Charisma}

// Saves lists the three saving throws.
var Saves = []ID{Fortitude, Reflex, Will}

// Defenses lists hit points, perception, armor class, and the saves.
var Defenses = []ID{HitPoints, Perception, ArmorClass, Fortitude, Reflex, Will}

// Skills lists the sixteen skills in alphabetical order.
var Skills = []ID{
	Acrobatics, Arcana, Athletics, Crafting, Deception, Diplomacy, Intimidation, Medicine,
	Nature, Occultism, Performance, Religion, Society, Stealth, Survival, Thievery,
}

// Strikes lists the strike statistics.
var Strikes = []ID{StrikeBonus, StrikeDamage}

// SpellcastingChoices lists the spellcasting statistic and its sub-choices.
var SpellcastingChoices = []ID{Spellcasting, SpellcastingTradition, SpellcastingType, SpellcastingAttribute}

var known = func() map[ID]bool {
	m := make(map[ID]bool)
	for _, group := range [][]ID{Abilities, Defenses, Skills, Strikes, SpellcastingChoices} {
		for _, id := range group {
			m[id] = true
		}
	}
	return m
}()

// All returns every statistic in statblock order.
//
// Postcondition: Returns a fresh slice; callers may modify it.
func All() []ID {
	out := make([]ID, 0, len(known))
	for _, group := range [][]ID{Abilities, Defenses, Skills, Strikes, SpellcastingChoices} {
		out = append(out, group...)
	}
	return out
}

// Valid reports whether id names a known statistic.
func Valid(id ID) bool {
	return known[id]
}

// IsSkill reports whether id is one of the sixteen skills.
func IsSkill(id ID) bool {
	for _, s := range Skills {
		if s == id {
			return true
		}
	}
	return false
}

// IsSave reports whether id is a saving throw.
func IsSave(id ID) bool {
	return id == Fortitude || id == Reflex || id == Will
}

// AllowsNone reports whether the statistic may be opted out with RatingNone.
// Skills, strike statistics and spellcasting may be absent; everything else
// always carries a value.
func AllowsNone(id ID) bool {
	switch id {
	case StrikeBonus, StrikeDamage, Spellcasting, SpellcastingTradition, SpellcastingType:
		return true
	}
	return IsSkill(id)
}
