// Package i18n translates display keys from a flat YAML catalog.
package i18n

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// defaults holds the English strings compiled into the binary.
var defaults = map[string]string{
	"spellcasting.spells": "Spells",
}

// Catalog is a key → text table.
//
// A key with no translation localizes to itself, so a missing entry shows up
// in output rather than vanishing.
type Catalog struct {
	locale  string
	entries map[string]string
	logger  *zap.Logger
}

// Default returns the compiled-in English catalog.
func Default() *Catalog {
	return &Catalog{locale: "en", entries: copyOf(defaults), logger: zap.NewNop()}
}

// LoadFile reads a locale file. Nested YAML maps flatten to dotted keys:
//
//	spellcasting:
//	  spells: Zauber
//
// becomes "spellcasting.spells". Keys the file omits fall back to the defaults.
//
// Postcondition: A nil logger is replaced with a no-op logger.
func LoadFile(path, locale string, logger *zap.Logger) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading locale file %q: %w", path, err)
	}
	return Parse(data, locale, logger)
}

// Parse builds a catalog from locale YAML.
func Parse(data []byte, locale string, logger *zap.Logger) (*Catalog, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing locale %q: %w", locale, err)
	}
	c := &Catalog{locale: locale, entries: copyOf(defaults), logger: logger}
	flatten("", raw, c.entries)
	return c, nil
}

// Locale returns the catalog's locale tag.
func (c *Catalog) Locale() string {
	return c.locale
}

// Localize returns the text for key, or key itself when the catalog lacks it.
func (c *Catalog) Localize(key string) string {
	if v, ok := c.entries[key]; ok {
		return v
	}
	c.logger.Debug("missing translation", zap.String("locale", c.locale), zap.String("key", key))
	return key
}

func flatten(prefix string, m map[string]any, out map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case string:
			out[key] = val
		case nil:
		default:
			out[key] = strings.TrimSpace(fmt.Sprint(val))
		}
	}
}

func copyOf(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
