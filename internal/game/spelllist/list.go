// Package spelllist holds curated spell lists and resolves them into spell
// documents on a creature's spellcasting entry.
package spelllist

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/statforge/internal/game/statistic"
)

// MaxLevel is the highest spell level a list may hold; level 0 is cantrips.
const MaxLevel = 10

// Entry references a catalog spell by slug. Label, when set, replaces the
// catalog name on the created document.
type Entry struct {
	Slug  string `yaml:"slug"`
	Label string `yaml:"label,omitempty"`
}

// SpellList is a named, tradition-tagged set of spells per level.
type SpellList struct {
	ID        string              `yaml:"id"`
	Name      string              `yaml:"name"`
	Tradition statistic.Tradition `yaml:"tradition"`
	Levels    map[int][]Entry     `yaml:"levels"`
}

// LevelsAscending returns the populated levels in ascending order.
func (l *SpellList) LevelsAscending() []int {
	out := make([]int, 0, len(l.Levels))
	for lvl := range l.Levels {
		out = append(out, lvl)
	}
	sort.Ints(out)
	return out
}

// Validate checks that the list satisfies basic invariants.
//
// Precondition: l must not be nil.
// Postcondition: Returns nil iff ID and Name are non-empty, the tradition is
// known, every level lies in [0, MaxLevel], and every entry has a slug.
func (l *SpellList) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("spell list: id must not be empty")
	}
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("spell list %q: name must not be empty", l.ID)
	}
	if t, err := statistic.ParseTradition(string(l.Tradition)); err != nil || t == statistic.TraditionNone {
		return fmt.Errorf("spell list %q: tradition %q is not a magical tradition", l.ID, l.Tradition)
	}
	for lvl, entries := range l.Levels {
		if lvl < 0 || lvl > MaxLevel {
			return fmt.Errorf("spell list %q: level %d outside [0, %d]", l.ID, lvl, MaxLevel)
		}
		for i, e := range entries {
			if e.Slug == "" {
				return fmt.Errorf("spell list %q: level %d entry %d has no slug", l.ID, lvl, i)
			}
		}
	}
	return nil
}

// LoadFromBytes parses a single spell list from raw YAML.
//
// Postcondition: Returns a validated *SpellList or an error.
func LoadFromBytes(data []byte) (*SpellList, error) {
	var l SpellList
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parsing spell list YAML: %w", err)
	}
	l.Tradition = statistic.Tradition(strings.ToLower(string(l.Tradition)))
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// LoadDir reads every .yaml and .yml file in dir. Files that fail to read,
// parse, or validate are logged and returned as errors; the others still load.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns the valid lists in file-name order, the per-file
// errors, and a non-nil error only when dir itself cannot be read.
func LoadDir(dir string, logger *zap.Logger) ([]*SpellList, []error, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("reading spell list dir %q: %w", dir, err)
	}
	var (
		lists []*SpellList
		errs  []error
	)
	for _, entry := range entries {
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("reading spell list", zap.String("path", path), zap.Error(err))
			errs = append(errs, fmt.Errorf("reading %q: %w", path, err))
			continue
		}
		l, err := LoadFromBytes(data)
		if err != nil {
			logger.Warn("skipping spell list", zap.String("path", path), zap.Error(err))
			errs = append(errs, fmt.Errorf("loading %q: %w", path, err))
			continue
		}
		lists = append(lists, l)
	}
	return lists, errs, nil
}
