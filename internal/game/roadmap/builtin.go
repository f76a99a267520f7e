package roadmap

import (
	"github.com/cory-johannsen/statforge/internal/game/spellcasting"
	s "github.com/cory-johannsen/statforge/internal/game/statistic"
)

// preset starts from Defaults and applies the overrides.
func preset(key, name string, overrides map[s.ID]s.Rating) *Roadmap {
	c := Defaults()
	for id, r := range overrides {
		c[id] = string(r)
	}
	return &Roadmap{Key: key, Name: name, Choices: c}
}

// caster enables spellcasting on r.
func caster(r *Roadmap, rating s.Rating, tradition s.Tradition, archetype spellcasting.Archetype, attr s.ID) *Roadmap {
	r.Choices[s.Spellcasting] = string(rating)
	r.Choices[s.SpellcastingTradition] = string(tradition)
	r.Choices[s.SpellcastingType] = string(archetype)
	r.Choices[s.SpellcastingAttribute] = string(attr)
	return r
}

var builtinRoadmaps = []*Roadmap{
	preset("brute", "Brute", map[s.ID]s.Rating{
		s.Strength: s.Extreme, s.Constitution: s.High, s.Dexterity: s.Low,
		s.Intelligence: s.Low, s.Wisdom: s.Low, s.Charisma: s.Low,
		s.HitPoints: s.High, s.Perception: s.Low, s.ArmorClass: s.Low,
		s.Fortitude: s.High, s.Reflex: s.Low, s.Will: s.Low,
		s.StrikeBonus: s.Moderate, s.StrikeDamage: s.Extreme,
		s.Athletics: s.High, s.Intimidation: s.Moderate,
	}),
	caster(preset("magicalStriker", "Magical Striker", map[s.ID]s.Rating{
		s.Strength: s.High, s.Charisma: s.High,
		s.StrikeBonus: s.High, s.StrikeDamage: s.High,
		s.Arcana: s.Moderate, s.Athletics: s.Moderate,
	}), s.Moderate, s.Arcane, spellcasting.Spontaneous, s.Charisma),
	preset("skirmisher", "Skirmisher", map[s.ID]s.Rating{
		s.Dexterity: s.High, s.Fortitude: s.Low, s.Reflex: s.High,
		s.StrikeBonus: s.Moderate, s.StrikeDamage: s.Moderate,
		s.Acrobatics: s.High, s.Stealth: s.Moderate,
	}),
	preset("sniper", "Sniper", map[s.ID]s.Rating{
		s.Dexterity: s.High, s.Perception: s.High, s.Reflex: s.High,
		s.Fortitude: s.Low, s.HitPoints: s.Low,
		s.StrikeBonus: s.High, s.StrikeDamage: s.High,
		s.Stealth: s.High, s.Survival: s.Moderate,
	}),
	preset("soldier", "Soldier", map[s.ID]s.Rating{
		s.Strength: s.High, s.ArmorClass: s.High, s.Fortitude: s.High,
		s.StrikeBonus: s.High, s.StrikeDamage: s.High,
		s.Athletics: s.High, s.Intimidation: s.Moderate,
	}),
	caster(preset("spellcaster", "Spellcaster", map[s.ID]s.Rating{
		s.Strength: s.Low, s.Intelligence: s.High, s.Wisdom: s.Moderate,
		s.HitPoints: s.Low, s.ArmorClass: s.Low, s.Fortitude: s.Low, s.Will: s.High,
		s.StrikeBonus: s.Low, s.StrikeDamage: s.Low,
		s.Arcana: s.High, s.Occultism: s.Moderate,
	}), s.High, s.Arcane, spellcasting.Prepared, s.Intelligence),
}
