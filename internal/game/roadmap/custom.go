package roadmap

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/statforge/internal/game/spellcasting"
	"github.com/cory-johannsen/statforge/internal/game/statistic"
)

// Category keys of a custom roadmap's stats object.
const (
	CategoryAbilities    = "abilityScores"
	CategoryDefenses     = "defenseAndPerception"
	CategoryStrikes      = "strikes"
	CategorySpellcasting = "spellcasting"
	CategorySkills       = "skills"
)

// Fields of the spellcasting category.
const (
	spellValue     = "value"
	spellTradition = "tradition"
	spellType      = "type"
	spellAttribute = "attribute"
)

// categoryStats names the statistics each rating category may set.
var categoryStats = map[string][]statistic.ID{
	CategoryAbilities: statistic.Abilities,
	CategoryDefenses:  statistic.Defenses,
	CategoryStrikes:   statistic.Strikes,
	CategorySkills:    statistic.Skills,
}

// Custom is a user-authored roadmap: a name plus category-grouped choice
// words. Values that are not strings decode to "" and are skipped by Transform.
type Custom struct {
	Name  string
	Stats map[string]map[string]string
	// Source names where the roadmap came from, for log lines.
	Source string
}

// Decode parses one custom roadmap from YAML or JSON.
//
// Postcondition: Returns an error wrapping ErrInvalidRoadmap when the input is
// malformed, the name is missing or blank, or stats is missing or not an object.
// A category that is not an object is logged and kept as an empty category.
// A nil logger is replaced with a no-op logger.
func Decode(data []byte, source string, logger *zap.Logger) (Custom, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Custom{}, fmt.Errorf("%w: %s: %v", ErrInvalidRoadmap, source, err)
	}
	if raw == nil {
		return Custom{}, fmt.Errorf("%w: %s: empty document", ErrInvalidRoadmap, source)
	}
	name, ok := raw["name"].(string)
	if !ok {
		return Custom{}, fmt.Errorf("%w: %s: missing name", ErrInvalidRoadmap, source)
	}
	if strings.TrimSpace(name) == "" {
		return Custom{}, fmt.Errorf("%w: %s: empty name", ErrInvalidRoadmap, source)
	}
	rawStats, ok := raw["stats"].(map[string]any)
	if !ok {
		return Custom{}, fmt.Errorf("%w: %s: roadmap %q has no stats object", ErrInvalidRoadmap, source, name)
	}

	c := Custom{Name: name, Source: source, Stats: make(map[string]map[string]string, len(rawStats))}
	for category, v := range rawStats {
		fields := map[string]string{}
		m, ok := v.(map[string]any)
		if !ok {
			logger.Warn("roadmap category is not an object; ignoring its fields",
				zap.String("roadmap", name), zap.String("source", source), zap.String("category", category))
		}
		for field, word := range m {
			str, _ := word.(string)
			fields[field] = str
		}
		c.Stats[category] = fields
	}
	return c, nil
}

// Transformer flattens custom roadmaps into Choices.
type Transformer struct {
	logger *zap.Logger
}

// NewTransformer creates a Transformer.
//
// Postcondition: A nil logger is replaced with a no-op logger.
func NewTransformer(logger *zap.Logger) *Transformer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Transformer{logger: logger}
}

// Transform converts c into a Roadmap keyed by its name. Unset fields take the
// Defaults; unknown categories, fields, and words are logged and skipped.
func (t *Transformer) Transform(c Custom) *Roadmap {
	log := t.logger.With(zap.String("roadmap", c.Name), zap.String("source", c.Source))
	choices := Defaults()
	for category, fields := range c.Stats {
		if category == CategorySpellcasting {
			continue
		}
		stats, ok := categoryStats[category]
		if !ok {
			log.Warn("unknown roadmap category; skipping", zap.String("category", category))
			continue
		}
		for field, word := range fields {
			id := statistic.ID(field)
			if !contains(stats, id) {
				log.Warn("unknown roadmap field; skipping", zap.String("category", category), zap.String("field", field))
				continue
			}
			r, err := statistic.ParseRating(word)
			if err != nil || (r == statistic.RatingNone && !statistic.AllowsNone(id)) {
				log.Warn("unusable rating; keeping default",
					zap.String("field", field), zap.String("word", word), zap.String("default", choices[id]))
				continue
			}
			choices[id] = string(r)
		}
	}
	t.spellcasting(log, c.Stats[CategorySpellcasting], choices)
	return &Roadmap{Key: c.Name, Name: c.Name, Choices: choices}
}

// spellcasting applies the spellcasting category. Without a rating the whole
// group stays disabled regardless of the other fields.
func (t *Transformer) spellcasting(log *zap.Logger, fields map[string]string, choices Choices) {
	for field := range fields {
		switch field {
		case spellValue, spellTradition, spellType, spellAttribute:
		default:
			log.Warn("unknown spellcasting field; skipping", zap.String("field", field))
		}
	}
	word, ok := fields[spellValue]
	if !ok {
		return
	}
	r, err := statistic.ParseRating(word)
	if err != nil {
		log.Warn("unusable spellcasting rating; spellcasting disabled", zap.String("word", word))
		return
	}
	if r == statistic.RatingNone {
		return
	}
	choices[statistic.Spellcasting] = string(r)

	tradition := statistic.Arcane
	if w, ok := fields[spellTradition]; ok {
		if parsed, err := statistic.ParseTradition(w); err == nil && parsed != statistic.TraditionNone {
			tradition = parsed
		} else {
			log.Warn("unusable tradition; using default", zap.String("word", w), zap.String("default", string(tradition)))
		}
	}
	archetype := spellcasting.Innate
	if w, ok := fields[spellType]; ok {
		if parsed, err := spellcasting.ParseArchetype(w); err == nil && parsed != spellcasting.ArchetypeNone {
			archetype = parsed
		} else {
			log.Warn("unusable caster archetype; using default", zap.String("word", w), zap.String("default", string(archetype)))
		}
	}
	attr := statistic.Charisma
	if w, ok := fields[spellAttribute]; ok {
		if parsed, err := statistic.ParseAbility(w); err == nil {
			attr = parsed
		} else {
			log.Warn("unusable key attribute; using default", zap.String("word", w), zap.String("default", string(attr)))
		}
	}
	choices[statistic.SpellcastingTradition] = string(tradition)
	choices[statistic.SpellcastingType] = string(archetype)
	choices[statistic.SpellcastingAttribute] = string(attr)
}

func contains(ids []statistic.ID, id statistic.ID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
