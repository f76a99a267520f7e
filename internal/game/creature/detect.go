package creature

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/statforge/internal/game/roadmap"
	"github.com/cory-johannsen/statforge/internal/game/spellcasting"
	"github.com/cory-johannsen/statforge/internal/game/statistic"
)

// Detect infers the choices that would rebuild c at its level. Saves detect
// against the perception progression; statistics c lacks detect as none.
//
// Precondition: c must be non-nil.
func (b *Builder) Detect(c *Creature) roadmap.Choices {
	level := b.level(c.Level)
	choices := roadmap.Defaults()
	for _, id := range statistic.Abilities {
		if v, ok := c.Abilities[id]; ok {
			choices[id] = string(b.resolver.ResolveRating(id, level, v))
		}
	}
	choices[statistic.HitPoints] = string(b.resolver.DetectHitPoints(level, c.HitPoints))
	choices[statistic.Perception] = string(b.resolver.ResolveRating(statistic.Perception, level, c.Perception))
	choices[statistic.ArmorClass] = string(b.resolver.ResolveRating(statistic.ArmorClass, level, c.ArmorClass))
	for _, id := range statistic.Saves {
		if v, ok := c.Saves[id]; ok {
			choices[id] = string(b.resolver.ResolveRating(id, level, v))
		}
	}
	for _, id := range statistic.Skills {
		if v, ok := c.Skills[id]; ok {
			choices[id] = string(b.resolver.ResolveRating(id, level, v))
		}
	}

	if c.Strike == nil {
		choices[statistic.StrikeBonus] = string(statistic.RatingNone)
		choices[statistic.StrikeDamage] = string(statistic.RatingNone)
	} else {
		choices[statistic.StrikeBonus] = string(b.resolver.ResolveRating(statistic.StrikeBonus, level, c.Strike.Bonus))
		choices[statistic.StrikeDamage] = string(b.resolver.DetectStrikeDamage(level, c.Strike.Damage))
	}

	if e := c.Spellcasting; e != nil {
		choices[statistic.Spellcasting] = string(b.resolver.ResolveRating(statistic.Spellcasting, level, e.System.SpellDC.DC-8))
		choices[statistic.SpellcastingTradition] = string(e.Tradition())
		choices[statistic.SpellcastingType] = string(e.Archetype())
		choices[statistic.SpellcastingAttribute] = e.System.Ability.Value
	}
	b.logger.Debug("detected choices", zap.String("creature", c.Name), zap.Stringer("level", level))
	return choices
}

// Rescale rebuilds c at newLevel from its detected choices. Spellcasting slots
// are expanded from c's existing slots rather than generated afresh, so
// prepared capacity carries over and only the assignments reset.
//
// Precondition: c must be non-nil.
// Postcondition: c is not modified.
func (b *Builder) Rescale(c *Creature, newLevel statistic.Level) *Creature {
	choices := b.Detect(c)
	out := b.Build(c.Name, newLevel, choices)
	if c.Spellcasting == nil || out.Spellcasting == nil {
		return out
	}
	slots, err := spellcasting.ExpandSlots(&c.Spellcasting.System.Slots, out.Spellcasting.Archetype(), out.Level)
	if err != nil {
		b.logger.Warn("expanding spell slots; keeping generated slots", zap.Error(err))
		return out
	}
	out.Spellcasting.System.Slots = slots
	return out
}
