// Package memory provides in-process implementations of the document store and
// spell catalog, used by the CLI when no database is configured and by tests.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/statforge/internal/document"
	"github.com/cory-johannsen/statforge/internal/game/spelllist"
)

// ErrNotFound is returned when a document id is not present.
var ErrNotFound = errors.New("document not found")

// Actor is one creature's embedded item collection.
type Actor struct {
	mu     sync.RWMutex
	items  []document.Document
	logger *zap.Logger
}

// NewActor returns an empty Actor.
//
// Postcondition: A nil logger is replaced with a no-op logger.
func NewActor(logger *zap.Logger) *Actor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Actor{logger: logger}
}

func checkKind(kind string) error {
	if kind != spelllist.ItemKind {
		return fmt.Errorf("unsupported document kind %q", kind)
	}
	return nil
}

// CreateDocuments stores copies of payloads under fresh ids.
//
// Postcondition: Returns refs in payload order; either every payload is stored
// or none is.
func (a *Actor) CreateDocuments(_ context.Context, kind string, payloads []document.Document) ([]document.Ref, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	docs := make([]document.Document, len(payloads))
	refs := make([]document.Ref, len(payloads))
	for i, p := range payloads {
		id := uuid.NewString()
		d, err := p.Set(document.IDPath, id)
		if err != nil {
			return nil, fmt.Errorf("payload %d: %w", i, err)
		}
		docs[i] = d
		refs[i] = document.Ref{ID: id, Type: d.Type()}
	}
	a.mu.Lock()
	a.items = append(a.items, docs...)
	a.mu.Unlock()
	a.logger.Debug("created documents", zap.Int("count", len(docs)))
	return refs, nil
}

// UpdateDocuments applies every patch or none.
//
// Postcondition: Returns an error wrapping ErrNotFound when any patch names an
// unknown id.
func (a *Actor) UpdateDocuments(_ context.Context, kind string, patches []document.Patch) error {
	if err := checkKind(kind); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	updated := make(map[int]document.Document, len(patches))
	for _, p := range patches {
		i := a.indexOf(p.ID)
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrNotFound, p.ID)
		}
		base := a.items[i]
		if prior, ok := updated[i]; ok {
			base = prior
		}
		d, err := p.Apply(base)
		if err != nil {
			return fmt.Errorf("patching %s: %w", p.ID, err)
		}
		updated[i] = d
	}
	for i, d := range updated {
		a.items[i] = d
	}
	return nil
}

// DeleteDocuments removes the documents with the given ids. Unknown ids are ignored.
func (a *Actor) DeleteDocuments(_ context.Context, kind string, ids []string) error {
	if err := checkKind(kind); err != nil {
		return err
	}
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	kept := a.items[:0]
	for _, d := range a.items {
		if !drop[d.ID()] {
			kept = append(kept, d)
		}
	}
	a.items = kept
	return nil
}

// Documents returns copies of every stored document in creation order.
func (a *Actor) Documents(context.Context) ([]document.Document, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]document.Document, len(a.items))
	for i, d := range a.items {
		out[i] = d.Clone()
	}
	return out, nil
}

func (a *Actor) indexOf(id string) int {
	for i, d := range a.items {
		if d.ID() == id {
			return i
		}
	}
	return -1
}
