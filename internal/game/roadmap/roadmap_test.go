package roadmap_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/statforge/internal/game/roadmap"
	"github.com/cory-johannsen/statforge/internal/game/spellcasting"
	"github.com/cory-johannsen/statforge/internal/game/statistic"
)

func transform(t *testing.T, src string) *roadmap.Roadmap {
	t.Helper()
	c, err := roadmap.Decode([]byte(src), "test", nil)
	require.NoError(t, err)
	return roadmap.NewTransformer(nil).Transform(c)
}

func TestTransform_EmptyStatsUsesDefaults(t *testing.T) {
	rm := transform(t, `{"name": "X", "stats": {}}`)
	assert.Equal(t, "X", rm.Key)
	c := rm.Choices
	assert.Equal(t, "none", c[statistic.Spellcasting])
	assert.Equal(t, "none", c[statistic.SpellcastingTradition])
	assert.Equal(t, "none", c[statistic.SpellcastingType])
	assert.NotContains(t, c, statistic.SpellcastingAttribute)
	for _, group := range [][]statistic.ID{statistic.Abilities, statistic.Defenses, statistic.Strikes} {
		for _, id := range group {
			assert.Equal(t, "moderate", c[id], id)
		}
	}
	for _, id := range statistic.Skills {
		assert.Equal(t, "none", c[id], id)
	}
}

func TestTransform_Categories(t *testing.T) {
	rm := transform(t, `
name: Ogre
stats:
  abilityScores:
    str: Extreme
    int: terrible
  defenseAndPerception:
    hp: high
    ac: low
  strikes:
    strikeDamage: none
  skills:
    athletics: high
`)
	c := rm.Choices
	assert.Equal(t, "extreme", c[statistic.Strength])
	assert.Equal(t, "terrible", c[statistic.Intelligence])
	assert.Equal(t, "moderate", c[statistic.Dexterity])
	assert.Equal(t, "high", c[statistic.HitPoints])
	assert.Equal(t, "low", c[statistic.ArmorClass])
	assert.Equal(t, "none", c[statistic.StrikeDamage])
	assert.Equal(t, "high", c[statistic.Athletics])
	assert.Equal(t, "none", c[statistic.Stealth])
}

func TestTransform_UnknownEntriesSkipped(t *testing.T) {
	rm := transform(t, `
name: Odd
stats:
  auras: {frightful: high}
  abilityScores:
    luck: high
    str: mighty
    dex: none
    con: 7
    cha: high
`)
	c := rm.Choices
	assert.NotContains(t, c, statistic.ID("luck"))
	assert.Equal(t, "moderate", c[statistic.Strength])
	assert.Equal(t, "moderate", c[statistic.Dexterity], "abilities cannot be absent")
	assert.Equal(t, "moderate", c[statistic.Constitution])
	assert.Equal(t, "high", c[statistic.Charisma])
}

func TestTransform_Spellcasting(t *testing.T) {
	cases := []struct {
		name                         string
		src                          string
		value, tradition, kind, attr string
	}{
		{"absent value forces none", `{tradition: divine, type: prepared}`, "none", "none", "none", ""},
		{"none value forces none", `{value: none, tradition: divine, type: prepared}`, "none", "none", "none", ""},
		{"unknown value disables", `{value: plenty, tradition: divine}`, "none", "none", "none", ""},
		{"defaults", `{value: high}`, "high", "arcane", "innate", "cha"},
		{"explicit", `{value: moderate, tradition: Primal, type: spontaneous, attribute: wisdom}`, "moderate", "primal", "spontaneous", "wis"},
		{"bad sub-fields default", `{value: low, tradition: none, type: ritual, attribute: luck}`, "low", "arcane", "innate", "cha"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rm := transform(t, "name: C\nstats:\n  spellcasting: "+tc.src+"\n")
			c := rm.Choices
			assert.Equal(t, tc.value, c[statistic.Spellcasting])
			assert.Equal(t, tc.tradition, c[statistic.SpellcastingTradition])
			assert.Equal(t, tc.kind, c[statistic.SpellcastingType])
			assert.Equal(t, tc.attr, c[statistic.SpellcastingAttribute])
		})
	}
}

func TestDecode_StructuralErrors(t *testing.T) {
	cases := map[string]string{
		"malformed":     `{"name": `,
		"empty":         ``,
		"missing name":  `{"stats": {}}`,
		"non-string":    `{"name": 3, "stats": {}}`,
		"empty name":    `{"name": "  ", "stats": {}}`,
		"missing stats": `{"name": "X"}`,
		"stats list":    `{"name": "X", "stats": []}`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := roadmap.Decode([]byte(src), "test", nil)
			assert.ErrorIs(t, err, roadmap.ErrInvalidRoadmap)
		})
	}
}

func TestChoices_Rating(t *testing.T) {
	c := roadmap.Choices{statistic.Strength: "high", statistic.SpellcastingTradition: "arcane"}
	assert.Equal(t, statistic.High, c.Rating(statistic.Strength, statistic.Moderate))
	assert.Equal(t, statistic.Moderate, c.Rating(statistic.Dexterity, statistic.Moderate))
	assert.Equal(t, statistic.Low, c.Rating(statistic.SpellcastingTradition, statistic.Low))

	clone := c.Clone()
	clone[statistic.Strength] = "low"
	assert.Equal(t, "high", c[statistic.Strength])
}

func TestRegistry_Builtins(t *testing.T) {
	r := roadmap.NewRegistry(nil)
	assert.Equal(t, []string{"brute", "magicalStriker", "skirmisher", "sniper", "soldier", "spellcaster"}, r.Keys())
	for _, key := range r.Keys() {
		rm, ok := r.Get(key)
		require.True(t, ok)
		for _, id := range statistic.All() {
			word, ok := rm.Choices[id]
			if id == statistic.SpellcastingAttribute && !ok {
				continue
			}
			require.True(t, ok, "%s missing %s", key, id)
			switch id {
			case statistic.SpellcastingTradition:
				_, err := statistic.ParseTradition(word)
				assert.NoError(t, err)
			case statistic.SpellcastingType:
				_, err := spellcasting.ParseArchetype(word)
				assert.NoError(t, err)
			case statistic.SpellcastingAttribute:
				_, err := statistic.ParseAbility(word)
				assert.NoError(t, err)
			default:
				rating, err := statistic.ParseRating(word)
				require.NoError(t, err)
				if rating == statistic.RatingNone {
					assert.True(t, statistic.AllowsNone(id), "%s: %s cannot be none", key, id)
				}
			}
		}
	}
	sc, _ := r.Get("spellcaster")
	assert.Equal(t, "prepared", sc.Choices[statistic.SpellcastingType])
	brute, _ := r.Get("brute")
	assert.Equal(t, "none", brute.Choices[statistic.Spellcasting])
}

func TestRegistry_ExtendRejections(t *testing.T) {
	r := roadmap.NewRegistry(nil)
	customs := []roadmap.Custom{
		{Name: "Ghoul", Stats: map[string]map[string]string{}},
		{Name: "brute", Stats: map[string]map[string]string{}},
		{Name: "Magical Striker", Stats: map[string]map[string]string{}},
		{Name: "Ghoul", Stats: map[string]map[string]string{}},
		{Name: "Wraith", Stats: map[string]map[string]string{}},
	}
	errs := r.Extend(customs)
	require.Len(t, errs, 3)
	assert.ErrorIs(t, errs[0], roadmap.ErrReservedName)
	assert.ErrorIs(t, errs[1], roadmap.ErrReservedName)
	assert.ErrorIs(t, errs[2], roadmap.ErrDuplicateName)

	_, ok := r.Get("Ghoul")
	assert.True(t, ok)
	_, ok = r.Get("Wraith")
	assert.True(t, ok)
	assert.Equal(t, "Ghoul", r.Keys()[6])

	r.Reset()
	_, ok = r.Get("Ghoul")
	assert.False(t, ok)
	_, ok = r.Get("brute")
	assert.True(t, ok)
}

func TestLoadDir_RejectedFilesDoNotBlockOthers(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	write("a.json", `{"name": "Ghoul", "stats": {"abilityScores": {"str": "high"}}}`)
	write("b.yml", "name: Wraith\nstats: {}\n")
	write("c.yaml", "stats: {}\n")
	write("d.txt", "ignored")

	customs, errs, err := roadmap.LoadDir(dir, nil)
	require.NoError(t, err)
	require.Len(t, customs, 2)
	require.Len(t, errs, 1)
	assert.True(t, errors.Is(errs[0], roadmap.ErrInvalidRoadmap))
	assert.Equal(t, "Ghoul", customs[0].Name)
	assert.Equal(t, "high", customs[0].Stats[roadmap.CategoryAbilities]["str"])
	assert.Equal(t, "Wraith", customs[1].Name)

	_, _, err = roadmap.LoadDir(filepath.Join(dir, "absent"), nil)
	assert.Error(t, err)
}

func TestDecode_NonObjectCategoryIsLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	c, err := roadmap.Decode([]byte("name: X\nstats:\n  abilityScores: 5\n  skills: {stealth: high}\n"), "test", zap.New(core))
	require.NoError(t, err)
	assert.Empty(t, c.Stats[roadmap.CategoryAbilities])
	assert.Equal(t, "high", c.Stats[roadmap.CategorySkills]["stealth"])

	entries := logs.FilterMessage("roadmap category is not an object; ignoring its fields").All()
	require.Len(t, entries, 1)
	assert.Equal(t, roadmap.CategoryAbilities, entries[0].ContextMap()["category"])
}

func TestShippedRoadmaps(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	logger := zap.New(core)
	customs, errs, err := roadmap.LoadDir(filepath.Join("..", "..", "..", "content", "roadmaps"), logger)
	require.NoError(t, err)
	require.Empty(t, errs)

	tr := roadmap.NewTransformer(logger)
	got := map[string]roadmap.Choices{}
	for _, c := range customs {
		got[c.Name] = tr.Transform(c).Choices
	}
	assert.Zero(t, logs.Len(), "shipped roadmaps must not contain skipped entries: %v", logs.All())

	witch, ok := got["Hedge Witch"]
	require.True(t, ok)
	assert.Equal(t, "high", witch[statistic.Spellcasting])
	assert.Equal(t, string(statistic.Primal), witch[statistic.SpellcastingTradition])
	assert.Equal(t, string(spellcasting.Prepared), witch[statistic.SpellcastingType])
	assert.Equal(t, string(statistic.Wisdom), witch[statistic.SpellcastingAttribute])
	assert.Equal(t, "high", witch[statistic.Will])
	assert.Equal(t, "high", witch[statistic.Nature])

	warden, ok := got["Warden"]
	require.True(t, ok)
	assert.Equal(t, "extreme", warden[statistic.ArmorClass])
	assert.Equal(t, "high", warden[statistic.Athletics])
	assert.Equal(t, "none", warden[statistic.Spellcasting])
}

// Property: any mix of known rating words in rating categories lands on the
// matching statistic, and spellcasting stays disabled without a value.
func TestProperty_Transform_RatingsPropagate(t *testing.T) {
	words := []string{"extreme", "high", "moderate", "low", "terrible"}
	rapid.Check(t, func(rt *rapid.T) {
		ability := rapid.SampledFrom(statistic.Abilities).Draw(rt, "ability")
		skill := rapid.SampledFrom(statistic.Skills).Draw(rt, "skill")
		aw := rapid.SampledFrom(words).Draw(rt, "abilityWord")
		sw := rapid.SampledFrom(words).Draw(rt, "skillWord")
		c := roadmap.Custom{Name: "P", Stats: map[string]map[string]string{
			roadmap.CategoryAbilities: {string(ability): aw},
			roadmap.CategorySkills:    {string(skill): sw},
		}}
		rm := roadmap.NewTransformer(nil).Transform(c)
		assert.Equal(rt, aw, rm.Choices[ability])
		assert.Equal(rt, sw, rm.Choices[skill])
		assert.Equal(rt, "none", rm.Choices[statistic.Spellcasting])
	})
}
