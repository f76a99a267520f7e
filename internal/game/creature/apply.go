package creature

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/statforge/internal/document"
	"github.com/cory-johannsen/statforge/internal/game/spelllist"
)

// ApplySpellList stores c's spellcasting entry and fills it from list. When c
// already carries a stored entry, that entry and the spells located on it are
// deleted first.
//
// Precondition: c, store, resolver, and list must be non-nil.
// Postcondition: On success c.EntryID holds the new entry id. Resolution
// failures are reported through the Result, never as an error; only a failure
// to store the entry itself is returned.
func (b *Builder) ApplySpellList(
	ctx context.Context,
	c *Creature,
	list *spelllist.SpellList,
	resolver *spelllist.Resolver,
	store spelllist.DocumentStore,
) (spelllist.Result, error) {
	if c.Spellcasting == nil {
		return spelllist.Result{}, fmt.Errorf("creature %q has no spellcasting", c.Name)
	}
	log := b.logger.With(zap.String("creature", c.Name), zap.String("list", list.ID))
	if list.Tradition != c.Spellcasting.Tradition() {
		log.Warn("spell list tradition differs from entry",
			zap.String("list_tradition", string(list.Tradition)),
			zap.String("entry_tradition", string(c.Spellcasting.Tradition())))
	}
	if c.EntryID != "" {
		if err := b.clearEntry(ctx, store, c.EntryID); err != nil {
			log.Warn("removing previous spellcasting entry", zap.Error(err))
		}
		c.EntryID = ""
	}

	doc, err := document.Marshal(c.Spellcasting)
	if err != nil {
		return spelllist.Result{}, fmt.Errorf("encoding spellcasting entry: %w", err)
	}
	refs, err := store.CreateDocuments(ctx, spelllist.ItemKind, []document.Document{doc})
	if err != nil {
		return spelllist.Result{}, fmt.Errorf("creating spellcasting entry: %w", err)
	}
	if len(refs) != 1 {
		return spelllist.Result{}, fmt.Errorf("creating spellcasting entry: store returned %d refs", len(refs))
	}
	c.EntryID = refs[0].ID

	res := resolver.Resolve(ctx, list, c.Spellcasting.System.Slots, c.EntryID, c.Spellcasting.Archetype(), store)
	if res.Assigned {
		c.Spellcasting.System.Slots = res.Slots
	}
	return res, nil
}

// clearEntry deletes the entry and every document located on it in one call.
func (b *Builder) clearEntry(ctx context.Context, store spelllist.DocumentStore, entryID string) error {
	docs, err := store.Documents(ctx)
	if err != nil {
		return err
	}
	ids := []string{entryID}
	for _, d := range docs {
		if d.Get(spelllist.LocationPath).String() == entryID {
			ids = append(ids, d.ID())
		}
	}
	return store.DeleteDocuments(ctx, spelllist.ItemKind, ids)
}
