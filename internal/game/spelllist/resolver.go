package spelllist

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/cory-johannsen/statforge/internal/document"
	"github.com/cory-johannsen/statforge/internal/game/spellcasting"
)

// ItemKind is the embedded document kind spells are created as.
const ItemKind = "Item"

// Document paths written onto created spells.
const (
	LocationPath        = "system.location.value"
	HeightenedLevelPath = "system.location.heightenedLevel"
	UsesPath            = "system.location.uses"
)

// ErrCatalogUnavailable is returned by a Catalog whose backing source cannot be reached.
var ErrCatalogUnavailable = errors.New("spell catalog unavailable")

// IndexEntry is one row of the catalog index.
type IndexEntry struct {
	ID   string
	Slug string
}

// Catalog is the external spell compendium.
type Catalog interface {
	// Index lists every spell with at least the given fields populated.
	Index(ctx context.Context, fields []string) ([]IndexEntry, error)
	// Document returns the plain-data template for the spell with the given catalog id.
	Document(ctx context.Context, id string) (document.Document, error)
}

// DocumentStore is the host document store scoped to one creature.
//
// CreateDocuments must return refs in payload order.
type DocumentStore interface {
	CreateDocuments(ctx context.Context, kind string, payloads []document.Document) ([]document.Ref, error)
	UpdateDocuments(ctx context.Context, kind string, patches []document.Patch) error
	DeleteDocuments(ctx context.Context, kind string, ids []string) error
	// Documents returns the creature's embedded documents.
	Documents(ctx context.Context) ([]document.Document, error)
}

// Result reports what a resolution did.
type Result struct {
	// Created holds the refs of every created spell document in creation order.
	Created []document.Ref
	// Skipped lists slugs that could not be resolved against the catalog.
	Skipped []string
	// Slots is the slot structure after assignment. It equals the input for
	// archetypes without prepared slots.
	Slots spellcasting.SlotMap
	// Assigned reports whether prepared-slot assignments were written to the store.
	Assigned bool
}

// pending is one spell document waiting to be created.
type pending struct {
	slug  string
	level int
	label string
}

// plan holds the per-archetype assembly rules.
type plan struct {
	// pendings expands the resolvable occurrences into documents to create.
	pendings func(occ []pending) []pending
	// decorate adds archetype-specific fields to one payload.
	decorate func(doc document.Document, p pending) (document.Document, error)
	// assign reports whether created ids are written into prepared slots.
	assign bool
}

var plans = map[spellcasting.Archetype]plan{
	spellcasting.Spontaneous: {pendings: uniqueBySlug, decorate: noDecoration},
	spellcasting.Prepared:    {pendings: uniqueBySlug, decorate: noDecoration, assign: true},
	spellcasting.Innate:      {pendings: uniqueBySlugAndLevel, decorate: innateDecoration},
}

// Resolver fills a spellcasting entry with the spells of a SpellList.
type Resolver struct {
	catalog Catalog
	logger  *zap.Logger
}

// NewResolver creates a Resolver backed by catalog.
//
// Precondition: catalog may be nil, in which case every resolution is a no-op.
// Postcondition: A nil logger is replaced with a no-op logger.
func NewResolver(catalog Catalog, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{catalog: catalog, logger: logger}
}

// Resolve creates spell documents for every list level with available slots
// and, for prepared casters, assigns them to slots on the entry.
//
// Unresolvable slugs are skipped individually; a missing catalog, a failing
// store, or an empty plan make the call a no-op. None of these are errors.
//
// Precondition: store must be non-nil.
// Postcondition: slots is never mutated; at most one CreateDocuments and one
// UpdateDocuments call are issued.
func (r *Resolver) Resolve(
	ctx context.Context,
	list *SpellList,
	slots spellcasting.SlotMap,
	entryID string,
	archetype spellcasting.Archetype,
	store DocumentStore,
) Result {
	result := Result{Slots: slots.Clone()}
	p, ok := plans[archetype]
	if !ok {
		r.logger.Warn("no spell plan for archetype", zap.String("archetype", string(archetype)))
		return result
	}
	if list == nil {
		return result
	}
	log := r.logger.With(zap.String("list", list.ID), zap.String("entry", entryID))

	occurrences := availableOccurrences(list, slots)
	required := requiredSlugs(occurrences)
	if len(required) == 0 {
		if listHasEntries(list) {
			log.Warn("no slot tier has capacity for any list level; nothing to create",
				zap.String("archetype", string(archetype)))
		} else {
			log.Debug("spell list is empty")
		}
		return result
	}

	templates, skipped := r.fetchTemplates(ctx, log, required)
	result.Skipped = skipped
	if len(templates) == 0 {
		log.Info("no spells resolved; nothing to create")
		return result
	}

	resolvable := occurrences[:0:0]
	for _, o := range occurrences {
		if _, ok := templates[o.slug]; ok {
			resolvable = append(resolvable, o)
		}
	}
	pendings := p.pendings(resolvable)

	// created[i] is the occurrence behind payloads[i].
	payloads := make([]document.Document, 0, len(pendings))
	created := make([]pending, 0, len(pendings))
	for _, pd := range pendings {
		doc, err := payloadFor(templates[pd.slug], pd, entryID)
		if err == nil {
			doc, err = p.decorate(doc, pd)
		}
		if err != nil {
			log.Warn("skipping spell payload", zap.String("slug", pd.slug), zap.Error(err))
			continue
		}
		payloads = append(payloads, doc)
		created = append(created, pd)
	}
	if len(payloads) == 0 {
		return result
	}

	refs, err := store.CreateDocuments(ctx, ItemKind, payloads)
	if err != nil {
		log.Error("creating spell documents", zap.Error(err))
		return result
	}
	result.Created = refs
	log.Info("created spell documents", zap.Int("count", len(refs)), zap.Strings("skipped", skipped))

	if !p.assign {
		return result
	}
	if len(refs) != len(created) {
		log.Warn("store returned a different number of refs than payloads; skipping slot assignment",
			zap.Int("payloads", len(created)), zap.Int("refs", len(refs)))
		return result
	}
	ids := make(map[string]string, len(refs))
	for i, ref := range refs {
		ids[created[i].slug] = ref.ID
	}
	touched := assignPrepared(&result.Slots, list, ids)
	result.Assigned = r.writeAssignments(ctx, log, store, entryID, result.Slots, touched)
	return result
}

func listHasEntries(list *SpellList) bool {
	for _, entries := range list.Levels {
		if len(entries) > 0 {
			return true
		}
	}
	return false
}

// availableOccurrences flattens list entries at levels whose tier has capacity,
// in ascending level then declaration order.
func availableOccurrences(list *SpellList, slots spellcasting.SlotMap) []pending {
	var out []pending
	for _, lvl := range list.LevelsAscending() {
		if lvl >= spellcasting.TierCount || slots[lvl].Max <= 0 {
			continue
		}
		for _, e := range list.Levels[lvl] {
			out = append(out, pending{slug: e.Slug, level: lvl, label: e.Label})
		}
	}
	return out
}

func requiredSlugs(occ []pending) []string {
	seen := make(map[string]bool, len(occ))
	var out []string
	for _, o := range occ {
		if !seen[o.slug] {
			seen[o.slug] = true
			out = append(out, o.slug)
		}
	}
	return out
}

// fetchTemplates resolves slugs to catalog templates. The index is fetched
// once and each template is fetched in sequence.
func (r *Resolver) fetchTemplates(ctx context.Context, log *zap.Logger, slugs []string) (map[string]document.Document, []string) {
	if r.catalog == nil {
		log.Warn("spell catalog not configured; skipping spell list")
		return nil, nil
	}
	index, err := r.catalog.Index(ctx, []string{"slug"})
	if err != nil {
		log.Warn("spell catalog unavailable; skipping spell list", zap.Error(err))
		return nil, nil
	}
	bySlug := make(map[string]string, len(index))
	for _, e := range index {
		if _, dup := bySlug[e.Slug]; !dup {
			bySlug[e.Slug] = e.ID
		}
	}

	templates := make(map[string]document.Document, len(slugs))
	var skipped []string
	for _, slug := range slugs {
		id, ok := bySlug[slug]
		if !ok {
			log.Warn("spell not found in catalog", zap.String("slug", slug))
			skipped = append(skipped, slug)
			continue
		}
		tmpl, err := r.catalog.Document(ctx, id)
		if err != nil {
			log.Warn("fetching spell template", zap.String("slug", slug), zap.String("id", id), zap.Error(err))
			skipped = append(skipped, slug)
			continue
		}
		templates[slug] = tmpl
	}
	return templates, skipped
}

func uniqueBySlug(occ []pending) []pending {
	seen := make(map[string]bool, len(occ))
	var out []pending
	for _, o := range occ {
		if !seen[o.slug] {
			seen[o.slug] = true
			out = append(out, o)
		}
	}
	return out
}

func uniqueBySlugAndLevel(occ []pending) []pending {
	type key struct {
		slug  string
		level int
	}
	seen := make(map[key]bool, len(occ))
	var out []pending
	for _, o := range occ {
		k := key{o.slug, o.level}
		if !seen[k] {
			seen[k] = true
			out = append(out, o)
		}
	}
	return out
}

// payloadFor derives a creatable document from a catalog template: the catalog
// id is removed, the label replaces the name, and the location points at the entry.
func payloadFor(tmpl document.Document, p pending, entryID string) (document.Document, error) {
	doc, err := tmpl.Delete(document.IDPath)
	if err != nil {
		return nil, err
	}
	if p.label != "" {
		if doc, err = doc.Set(document.NamePath, p.label); err != nil {
			return nil, err
		}
	}
	return doc.Set(LocationPath, entryID)
}

func noDecoration(doc document.Document, _ pending) (document.Document, error) {
	return doc, nil
}

// innateDecoration records the heightened level and, above cantrips, a single daily use.
func innateDecoration(doc document.Document, p pending) (document.Document, error) {
	doc, err := doc.Set(HeightenedLevelPath, p.level)
	if err != nil || p.level == 0 {
		return doc, err
	}
	return doc.Set(UsesPath, map[string]int{"value": 1, "max": 1})
}

// assignPrepared writes created ids into prepared slots level by level in list
// order. Entries past a tier's capacity are dropped.
//
// Postcondition: Returns the tiers that received at least one assignment.
func assignPrepared(slots *spellcasting.SlotMap, list *SpellList, ids map[string]string) []int {
	var touched []int
	for _, lvl := range list.LevelsAscending() {
		if lvl >= spellcasting.TierCount || slots[lvl].Max <= 0 {
			continue
		}
		tier := &slots[lvl]
		n := 0
		for _, e := range list.Levels[lvl] {
			if n >= len(tier.Prepared) {
				break
			}
			id, ok := ids[e.Slug]
			if !ok {
				continue
			}
			spellID := id
			tier.Prepared[n] = spellcasting.Assignment{SpellID: &spellID}
			n++
		}
		if n > 0 {
			touched = append(touched, lvl)
		}
	}
	return touched
}

// writeAssignments patches the entry's prepared arrays in one update. Tiers the
// stored entry lacks are skipped; a missing entry skips the write entirely.
func (r *Resolver) writeAssignments(
	ctx context.Context,
	log *zap.Logger,
	store DocumentStore,
	entryID string,
	slots spellcasting.SlotMap,
	touched []int,
) bool {
	if len(touched) == 0 {
		return false
	}
	docs, err := store.Documents(ctx)
	if err != nil {
		log.Error("reading creature documents", zap.Error(err))
		return false
	}
	var entry document.Document
	for _, d := range docs {
		if d.ID() == entryID && d.Type() == spellcasting.EntryType {
			entry = d
			break
		}
	}
	if entry == nil {
		log.Warn("spellcasting entry not found on creature; skipping slot assignment")
		return false
	}

	fields := make(map[string]any, len(touched))
	for _, lvl := range touched {
		tierPath := "system.slots." + spellcasting.SlotKey(lvl)
		if !entry.Has(tierPath) {
			log.Warn("slot tier missing on entry; skipping", zap.Int("tier", lvl))
			continue
		}
		fields[tierPath+".prepared"] = slots[lvl].Prepared
	}
	if len(fields) == 0 {
		return false
	}
	if err := store.UpdateDocuments(ctx, ItemKind, []document.Patch{{ID: entryID, Fields: fields}}); err != nil {
		log.Error("writing prepared slot assignments", zap.Error(err))
		return false
	}
	return true
}
