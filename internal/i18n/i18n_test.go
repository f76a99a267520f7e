package i18n_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/statforge/internal/game/spellcasting"
	"github.com/cory-johannsen/statforge/internal/i18n"
)

func TestDefault(t *testing.T) {
	c := i18n.Default()
	assert.Equal(t, "en", c.Locale())
	assert.Equal(t, "Spells", c.Localize(spellcasting.SpellsLabelKey))
	assert.Equal(t, "unknown.key", c.Localize("unknown.key"))
}

func TestParse_NestedKeys(t *testing.T) {
	c, err := i18n.Parse([]byte("spellcasting:\n  spells: Zauber\ncreature:\n  level: 3\n"), "de", nil)
	require.NoError(t, err)
	assert.Equal(t, "Zauber", c.Localize("spellcasting.spells"))
	assert.Equal(t, "3", c.Localize("creature.level"))
}

func TestParse_FallsBackToDefaults(t *testing.T) {
	c, err := i18n.Parse([]byte("other: text\n"), "fr", nil)
	require.NoError(t, err)
	assert.Equal(t, "Spells", c.Localize("spellcasting.spells"))
}

func TestParse_Malformed(t *testing.T) {
	_, err := i18n.Parse([]byte("a: [\n"), "xx", nil)
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "es.yaml")
	require.NoError(t, os.WriteFile(path, []byte("spellcasting:\n  spells: Conjuros\n"), 0o644))
	c, err := i18n.LoadFile(path, "es", nil)
	require.NoError(t, err)
	assert.Equal(t, "Conjuros", c.Localize("spellcasting.spells"))

	_, err = i18n.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), "es", nil)
	assert.Error(t, err)
}
