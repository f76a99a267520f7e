package spelllist

import (
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/statforge/internal/document"
)

// SlugPath is where a spell template stores its slug.
const SlugPath = "system.slug"

var templateNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("statforge/spell-catalog"))

// TemplateID derives a stable catalog id from a spell slug, so every catalog
// seeded from the same templates agrees on ids.
func TemplateID(slug string) string {
	return uuid.NewSHA1(templateNamespace, []byte(slug)).String()
}

// ParseTemplates decodes a YAML sequence of spell templates. Each template
// without an _id receives TemplateID(slug).
//
// Postcondition: Returns the templates in file order, or an error when the
// YAML is malformed, a template is not an object, or a template lacks a slug.
func ParseTemplates(data []byte) ([]document.Document, error) {
	var raw []map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing spell templates: %w", err)
	}
	out := make([]document.Document, 0, len(raw))
	for i, r := range raw {
		doc, err := document.Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("spell template %d: %w", i, err)
		}
		slug := doc.Get(SlugPath).String()
		if slug == "" {
			return nil, fmt.Errorf("spell template %d: missing %s", i, SlugPath)
		}
		if !doc.Has(document.IDPath) {
			if doc, err = doc.Set(document.IDPath, TemplateID(slug)); err != nil {
				return nil, fmt.Errorf("spell template %q: %w", slug, err)
			}
		}
		out = append(out, doc)
	}
	return out, nil
}
