package creature

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/statforge/internal/game/rating"
	"github.com/cory-johannsen/statforge/internal/game/roadmap"
	"github.com/cory-johannsen/statforge/internal/game/spellcasting"
	"github.com/cory-johannsen/statforge/internal/game/statistic"
)

// Builder turns rating choices into statblocks and back.
type Builder struct {
	resolver     *rating.Resolver
	loc          spellcasting.Localizer
	defaultLevel statistic.Level
	logger       *zap.Logger
}

// NewBuilder creates a Builder.
//
// Precondition: loc must be non-nil; defaultLevel must be valid.
// Postcondition: A nil logger is replaced with a no-op logger.
func NewBuilder(loc spellcasting.Localizer, defaultLevel statistic.Level, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !defaultLevel.Valid() {
		panic("creature.NewBuilder: precondition violated: default level out of range")
	}
	return &Builder{
		resolver:     rating.NewResolver(logger),
		loc:          loc,
		defaultLevel: defaultLevel,
		logger:       logger,
	}
}

// level substitutes the default for out-of-range levels.
func (b *Builder) level(l statistic.Level) statistic.Level {
	if !l.Valid() {
		b.logger.Warn("level out of range; using default",
			zap.Int("level", int(l)), zap.Stringer("default", b.defaultLevel))
	}
	return l.Or(b.defaultLevel)
}

// Build resolves every choice at level into a statblock. Missing or unusable
// choices fall back to moderate; skills, strike, and spellcasting chosen as
// none are left off.
func (b *Builder) Build(name string, level statistic.Level, choices roadmap.Choices) *Creature {
	level = b.level(level)
	log := b.logger.With(zap.String("creature", name), zap.Stringer("level", level))
	c := &Creature{
		Name:      name,
		Level:     level,
		Abilities: make(map[statistic.ID]int, len(statistic.Abilities)),
		Saves:     make(map[statistic.ID]int, len(statistic.Saves)),
		Skills:    make(map[statistic.ID]int),
	}
	for _, id := range statistic.Abilities {
		c.Abilities[id] = b.number(log, id, level, choices)
	}
	c.HitPoints = b.number(log, statistic.HitPoints, level, choices)
	c.Perception = b.number(log, statistic.Perception, level, choices)
	c.ArmorClass = b.number(log, statistic.ArmorClass, level, choices)
	for _, id := range statistic.Saves {
		c.Saves[id] = b.number(log, id, level, choices)
	}
	for _, id := range statistic.Skills {
		if choices.Rating(id, statistic.RatingNone) == statistic.RatingNone {
			continue
		}
		c.Skills[id] = b.number(log, id, level, choices)
	}
	c.Strike = b.strike(log, level, choices)
	c.Spellcasting = b.spellcasting(log, level, choices)
	return c
}

// resolve looks up stat at level for the chosen rating, falling back to
// moderate when the choice is missing, unusable, or has no column.
func (b *Builder) resolve(log *zap.Logger, stat statistic.ID, level statistic.Level, choices roadmap.Choices) rating.Value {
	r := statistic.Moderate
	if word, ok := choices[stat]; ok {
		parsed, err := statistic.ParseRating(word)
		switch {
		case err != nil:
			log.Warn("unknown rating word; using moderate", zap.String("statistic", string(stat)), zap.String("word", word))
		case parsed == statistic.RatingNone:
			log.Warn("statistic cannot be absent; using moderate", zap.String("statistic", string(stat)))
		default:
			r = parsed
		}
	}
	v, err := b.resolver.ResolveValue(stat, level, r)
	if err == nil {
		return v
	}
	log.Warn("rating unavailable; using moderate", zap.String("statistic", string(stat)), zap.Error(err))
	v, err = b.resolver.ResolveValue(stat, level, statistic.Moderate)
	if err != nil {
		log.Error("no moderate value", zap.String("statistic", string(stat)), zap.Error(err))
	}
	return v
}

func (b *Builder) number(log *zap.Logger, stat statistic.ID, level statistic.Level, choices roadmap.Choices) int {
	return b.resolve(log, stat, level, choices).Number
}

// strike is present only when both the bonus and the damage are chosen.
func (b *Builder) strike(log *zap.Logger, level statistic.Level, choices roadmap.Choices) *Strike {
	bonusNone := choices.Rating(statistic.StrikeBonus, statistic.Moderate) == statistic.RatingNone
	damageNone := choices.Rating(statistic.StrikeDamage, statistic.Moderate) == statistic.RatingNone
	if bonusNone || damageNone {
		if bonusNone != damageNone {
			log.Debug("strike needs both bonus and damage; leaving it off")
		}
		return nil
	}
	return &Strike{
		Bonus:  b.number(log, statistic.StrikeBonus, level, choices),
		Damage: b.resolve(log, statistic.StrikeDamage, level, choices).Damage,
	}
}

func (b *Builder) spellcasting(log *zap.Logger, level statistic.Level, choices roadmap.Choices) *spellcasting.Entry {
	if choices.Rating(statistic.Spellcasting, statistic.RatingNone) == statistic.RatingNone {
		return nil
	}
	tradition, err := statistic.ParseTradition(choices[statistic.SpellcastingTradition])
	if err != nil || tradition == statistic.TraditionNone {
		log.Warn("no usable tradition; using arcane", zap.String("word", choices[statistic.SpellcastingTradition]))
		tradition = statistic.Arcane
	}
	archetype, err := spellcasting.ParseArchetype(choices[statistic.SpellcastingType])
	if err != nil || archetype == spellcasting.ArchetypeNone {
		log.Warn("no usable caster archetype; using innate", zap.String("word", choices[statistic.SpellcastingType]))
		archetype = spellcasting.Innate
	}
	attr := statistic.Charisma
	if word, ok := choices[statistic.SpellcastingAttribute]; ok {
		if parsed, err := statistic.ParseAbility(word); err == nil {
			attr = parsed
		} else {
			log.Warn("unknown key attribute; using charisma", zap.String("word", word))
		}
	}
	bonus := b.number(log, statistic.Spellcasting, level, choices)
	entry, err := spellcasting.BuildEntry(tradition, archetype, attr, bonus, level, b.loc)
	if err != nil {
		log.Error("building spellcasting entry", zap.Error(err))
		return nil
	}
	return &entry
}
