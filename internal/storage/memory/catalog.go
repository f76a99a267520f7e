package memory

import (
	"context"
	"fmt"
	"os"

	"github.com/cory-johannsen/statforge/internal/document"
	"github.com/cory-johannsen/statforge/internal/game/spelllist"
)

// Catalog is a read-only spell catalog held in memory.
type Catalog struct {
	templates []document.Document
	byID      map[string]document.Document
}

// NewCatalog indexes templates by id.
//
// Precondition: every template must carry an _id.
func NewCatalog(templates []document.Document) *Catalog {
	c := &Catalog{
		templates: templates,
		byID:      make(map[string]document.Document, len(templates)),
	}
	for _, t := range templates {
		c.byID[t.ID()] = t
	}
	return c
}

// LoadCatalog reads a YAML template file into a Catalog.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading spell catalog %q: %w", path, err)
	}
	templates, err := spelllist.ParseTemplates(data)
	if err != nil {
		return nil, fmt.Errorf("loading spell catalog %q: %w", path, err)
	}
	return NewCatalog(templates), nil
}

// Index lists every template. The memory catalog always carries the slug, so
// fields is ignored.
func (c *Catalog) Index(_ context.Context, _ []string) ([]spelllist.IndexEntry, error) {
	out := make([]spelllist.IndexEntry, len(c.templates))
	for i, t := range c.templates {
		out[i] = spelllist.IndexEntry{ID: t.ID(), Slug: t.Get(spelllist.SlugPath).String()}
	}
	return out, nil
}

// Document returns a copy of the template with the given id.
func (c *Catalog) Document(_ context.Context, id string) (document.Document, error) {
	t, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: spell %s", ErrNotFound, id)
	}
	return t.Clone(), nil
}

// Len returns the number of templates.
func (c *Catalog) Len() int {
	return len(c.templates)
}
