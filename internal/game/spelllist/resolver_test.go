package spelllist_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/statforge/internal/document"
	"github.com/cory-johannsen/statforge/internal/game/spellcasting"
	"github.com/cory-johannsen/statforge/internal/game/spelllist"
	"github.com/cory-johannsen/statforge/internal/game/statistic"
)

type mockCatalog struct {
	spells     map[string]string // slug → name
	indexErr   error
	docErr     map[string]error
	raw        map[string]string // slug → template body replacing the generated one
	indexCalls int
	docCalls   int
}

func (m *mockCatalog) Index(_ context.Context, _ []string) ([]spelllist.IndexEntry, error) {
	m.indexCalls++
	if m.indexErr != nil {
		return nil, m.indexErr
	}
	out := make([]spelllist.IndexEntry, 0, len(m.spells))
	for slug := range m.spells {
		out = append(out, spelllist.IndexEntry{ID: "cat-" + slug, Slug: slug})
	}
	return out, nil
}

func (m *mockCatalog) Document(_ context.Context, id string) (document.Document, error) {
	m.docCalls++
	slug := id[len("cat-"):]
	if err := m.docErr[slug]; err != nil {
		return nil, err
	}
	if body, ok := m.raw[slug]; ok {
		return document.Document(body), nil
	}
	return document.Document(fmt.Sprintf(`{"_id":%q,"type":"spell","name":%q,"system":{"slug":%q}}`, id, m.spells[slug], slug)), nil
}

type mockStore struct {
	docs        []document.Document
	created     [][]document.Document
	patches     [][]document.Patch
	createErr   error
	counter     int
	createCalls int
}

func (m *mockStore) CreateDocuments(_ context.Context, _ string, payloads []document.Document) ([]document.Ref, error) {
	m.createCalls++
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.created = append(m.created, payloads)
	refs := make([]document.Ref, len(payloads))
	for i, p := range payloads {
		m.counter++
		refs[i] = document.Ref{ID: fmt.Sprintf("item-%d", m.counter), Type: p.Type()}
	}
	return refs, nil
}

func (m *mockStore) UpdateDocuments(_ context.Context, _ string, patches []document.Patch) error {
	m.patches = append(m.patches, patches)
	return nil
}

func (m *mockStore) DeleteDocuments(context.Context, string, []string) error { return nil }

func (m *mockStore) Documents(context.Context) ([]document.Document, error) { return m.docs, nil }

func (m *mockStore) allCreated() []document.Document {
	var out []document.Document
	for _, batch := range m.created {
		out = append(out, batch...)
	}
	return out
}

func catalogFor(slugs ...string) *mockCatalog {
	m := &mockCatalog{spells: map[string]string{}, docErr: map[string]error{}, raw: map[string]string{}}
	for _, s := range slugs {
		m.spells[s] = "Catalog " + s
	}
	return m
}

func entryDoc(t *testing.T, id string, slots spellcasting.SlotMap) document.Document {
	t.Helper()
	d, err := document.Marshal(map[string]any{
		"_id":    id,
		"type":   spellcasting.EntryType,
		"system": map[string]any{"slots": slots},
	})
	require.NoError(t, err)
	return d
}

// repeatList holds "dup" at levels 1 and 2 plus a cantrip.
func repeatList() *spelllist.SpellList {
	return &spelllist.SpellList{
		ID: "test", Name: "Test", Tradition: statistic.Arcane,
		Levels: map[int][]spelllist.Entry{
			0: {{Slug: "cantrip"}},
			1: {{Slug: "dup"}, {Slug: "one"}},
			2: {{Slug: "dup", Label: "Dup (Heightened)"}},
		},
	}
}

func slotsFor(t *testing.T, a spellcasting.Archetype, level statistic.Level) spellcasting.SlotMap {
	t.Helper()
	m, err := spellcasting.GenerateSlots(a, level)
	require.NoError(t, err)
	return m
}

// Innate slots carry no capacity, so tests give them capacity explicitly.
func innateSlots(tiers ...int) spellcasting.SlotMap {
	m, _ := spellcasting.GenerateSlots(spellcasting.Innate, 1)
	for _, i := range tiers {
		m[i].Max, m[i].Value = 1, 1
	}
	return m
}

func TestResolve_SpontaneousOneDocumentPerSlug(t *testing.T) {
	store := &mockStore{}
	r := spelllist.NewResolver(catalogFor("cantrip", "dup", "one"), nil)
	res := r.Resolve(context.Background(), repeatList(), slotsFor(t, spellcasting.Spontaneous, 3), "entry", spellcasting.Spontaneous, store)

	require.Len(t, res.Created, 3)
	assert.Equal(t, 1, store.createCalls)
	assert.Empty(t, store.patches)
	count := 0
	for _, d := range store.allCreated() {
		if d.Get("system.slug").String() == "dup" {
			count++
		}
		assert.False(t, d.Has(document.IDPath))
		assert.Equal(t, "entry", d.Get(spelllist.LocationPath).String())
		assert.False(t, d.Has(spelllist.UsesPath))
	}
	assert.Equal(t, 1, count)
}

func TestResolve_InnateOneDocumentPerOccurrence(t *testing.T) {
	store := &mockStore{}
	r := spelllist.NewResolver(catalogFor("cantrip", "dup", "one"), nil)
	res := r.Resolve(context.Background(), repeatList(), innateSlots(0, 1, 2), "entry", spellcasting.Innate, store)

	require.Len(t, res.Created, 4)
	var dups []document.Document
	for _, d := range store.allCreated() {
		switch d.Get("system.slug").String() {
		case "dup":
			dups = append(dups, d)
		case "cantrip":
			assert.Equal(t, int64(0), d.Get(spelllist.HeightenedLevelPath).Int())
			assert.False(t, d.Has(spelllist.UsesPath), "cantrips carry no use budget")
		}
	}
	require.Len(t, dups, 2)
	assert.Equal(t, int64(1), dups[0].Get(spelllist.HeightenedLevelPath).Int())
	assert.Equal(t, "Catalog dup", dups[0].Get("name").String())
	assert.Equal(t, int64(2), dups[1].Get(spelllist.HeightenedLevelPath).Int())
	assert.Equal(t, "Dup (Heightened)", dups[1].Get("name").String())
	assert.Equal(t, int64(1), dups[1].Get(spelllist.UsesPath+".value").Int())
	assert.Equal(t, int64(1), dups[1].Get(spelllist.UsesPath+".max").Int())
}

func TestResolve_PreparedAssignsSameIDAcrossTiers(t *testing.T) {
	slots := slotsFor(t, spellcasting.Prepared, 3)
	store := &mockStore{docs: []document.Document{entryDoc(t, "entry", slots)}}
	r := spelllist.NewResolver(catalogFor("cantrip", "dup", "one"), nil)
	res := r.Resolve(context.Background(), repeatList(), slots, "entry", spellcasting.Prepared, store)

	require.Len(t, res.Created, 3)
	assert.True(t, res.Assigned)
	ids := map[string]string{}
	for i, d := range store.allCreated() {
		ids[d.Get("system.slug").String()] = res.Created[i].ID
	}

	require.NotNil(t, res.Slots[1].Prepared[0].SpellID)
	require.NotNil(t, res.Slots[2].Prepared[0].SpellID)
	assert.Equal(t, ids["dup"], *res.Slots[1].Prepared[0].SpellID)
	assert.Equal(t, ids["one"], *res.Slots[1].Prepared[1].SpellID)
	assert.Equal(t, ids["dup"], *res.Slots[2].Prepared[0].SpellID)
	assert.Nil(t, res.Slots[1].Prepared[2].SpellID)
	assert.Nil(t, slots[1].Prepared[0].SpellID, "input slots are not mutated")

	require.Len(t, store.patches, 1)
	require.Len(t, store.patches[0], 1)
	p := store.patches[0][0]
	assert.Equal(t, "entry", p.ID)
	assert.Contains(t, p.Fields, "system.slots.slot0.prepared")
	assert.Contains(t, p.Fields, "system.slots.slot1.prepared")
	assert.Contains(t, p.Fields, "system.slots.slot2.prepared")
}

func TestResolve_PreparedAssignsAroundUnusableTemplate(t *testing.T) {
	slots := slotsFor(t, spellcasting.Prepared, 3)
	store := &mockStore{docs: []document.Document{entryDoc(t, "entry", slots)}}
	catalog := catalogFor("cantrip", "dup", "one")
	catalog.raw["cantrip"] = `["not", "an", "object"]`
	r := spelllist.NewResolver(catalog, nil)
	res := r.Resolve(context.Background(), repeatList(), slots, "entry", spellcasting.Prepared, store)

	require.Len(t, res.Created, 2)
	created := store.allCreated()
	require.Len(t, created, 2)
	ids := map[string]string{}
	for i, d := range created {
		ids[d.Get("system.slug").String()] = res.Created[i].ID
	}
	assert.NotContains(t, ids, "cantrip")

	assert.True(t, res.Assigned)
	require.NotNil(t, res.Slots[1].Prepared[0].SpellID)
	assert.Equal(t, ids["dup"], *res.Slots[1].Prepared[0].SpellID)
	assert.Equal(t, ids["one"], *res.Slots[1].Prepared[1].SpellID)
	assert.Equal(t, ids["dup"], *res.Slots[2].Prepared[0].SpellID)
	assert.Nil(t, res.Slots[0].Prepared[0].SpellID)
}

func TestResolve_PreparedOverflowDropped(t *testing.T) {
	list := &spelllist.SpellList{
		ID: "many", Name: "Many", Tradition: statistic.Arcane,
		Levels: map[int][]spelllist.Entry{1: {{Slug: "a"}, {Slug: "b"}, {Slug: "c"}, {Slug: "d"}}},
	}
	slots := slotsFor(t, spellcasting.Prepared, 1)
	store := &mockStore{docs: []document.Document{entryDoc(t, "entry", slots)}}
	r := spelllist.NewResolver(catalogFor("a", "b", "c", "d"), nil)
	res := r.Resolve(context.Background(), list, slots, "entry", spellcasting.Prepared, store)

	assert.Len(t, res.Created, 4)
	require.Len(t, res.Slots[1].Prepared, 2)
	for _, a := range res.Slots[1].Prepared {
		assert.NotNil(t, a.SpellID)
	}
}

func TestResolve_PreparedMissingEntrySkipsWrite(t *testing.T) {
	store := &mockStore{}
	r := spelllist.NewResolver(catalogFor("cantrip", "dup", "one"), nil)
	res := r.Resolve(context.Background(), repeatList(), slotsFor(t, spellcasting.Prepared, 3), "entry", spellcasting.Prepared, store)

	assert.Len(t, res.Created, 3)
	assert.False(t, res.Assigned)
	assert.Empty(t, store.patches)
}

func TestResolve_PreparedMissingTierSkipsOnlyThatTier(t *testing.T) {
	slots := slotsFor(t, spellcasting.Prepared, 3)
	d := entryDoc(t, "entry", slots)
	d, err := d.Delete("system.slots.slot2")
	require.NoError(t, err)
	store := &mockStore{docs: []document.Document{d}}
	r := spelllist.NewResolver(catalogFor("cantrip", "dup", "one"), nil)
	res := r.Resolve(context.Background(), repeatList(), slots, "entry", spellcasting.Prepared, store)

	assert.True(t, res.Assigned)
	require.Len(t, store.patches, 1)
	assert.NotContains(t, store.patches[0][0].Fields, "system.slots.slot2.prepared")
	assert.Contains(t, store.patches[0][0].Fields, "system.slots.slot1.prepared")
}

func TestResolve_OnlyAvailableLevels(t *testing.T) {
	list := &spelllist.SpellList{
		ID: "small", Name: "Small", Tradition: statistic.Arcane,
		Levels: map[int][]spelllist.Entry{0: {{Slug: "cantrip"}}, 1: {{Slug: "first"}}},
	}
	store := &mockStore{}
	cat := catalogFor("cantrip", "first")
	r := spelllist.NewResolver(cat, nil)
	res := r.Resolve(context.Background(), list, innateSlots(0), "entry", spellcasting.Innate, store)

	require.Len(t, res.Created, 1)
	assert.Equal(t, "cantrip", store.allCreated()[0].Get("system.slug").String())
	assert.Equal(t, 1, cat.docCalls)
}

func TestResolve_NoAvailableLevelsIsNoOp(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	store := &mockStore{}
	cat := catalogFor("cantrip")
	r := spelllist.NewResolver(cat, zap.New(core))
	res := r.Resolve(context.Background(), repeatList(), innateSlots(), "entry", spellcasting.Innate, store)

	assert.Empty(t, res.Created)
	assert.Equal(t, 0, cat.indexCalls)
	assert.Equal(t, 0, store.createCalls)
	entries := logs.FilterMessage("no slot tier has capacity for any list level; nothing to create").All()
	require.Len(t, entries, 1)
	assert.Equal(t, string(spellcasting.Innate), entries[0].ContextMap()["archetype"])

	empty := &spelllist.SpellList{ID: "empty", Name: "Empty", Tradition: statistic.Arcane}
	r.Resolve(context.Background(), empty, innateSlots(), "entry", spellcasting.Innate, store)
	assert.Equal(t, 1, logs.Len(), "an empty list is not a warning")
}

func TestResolve_MissingSlugsSkipped(t *testing.T) {
	store := &mockStore{}
	cat := catalogFor("cantrip", "one")
	cat.spells["dup"] = "Dup"
	cat.docErr["dup"] = errors.New("corrupt template")
	r := spelllist.NewResolver(cat, nil)
	res := r.Resolve(context.Background(), repeatList(), slotsFor(t, spellcasting.Spontaneous, 3), "entry", spellcasting.Spontaneous, store)

	assert.Len(t, res.Created, 2)
	assert.ElementsMatch(t, []string{"dup"}, res.Skipped)
}

func TestResolve_UnknownSlugCaseSensitive(t *testing.T) {
	store := &mockStore{}
	r := spelllist.NewResolver(catalogFor("Cantrip"), nil)
	res := r.Resolve(context.Background(), repeatList(), innateSlots(0), "entry", spellcasting.Innate, store)

	assert.Empty(t, res.Created)
	assert.Equal(t, []string{"cantrip"}, res.Skipped)
	assert.Equal(t, 0, store.createCalls)
}

func TestResolve_CatalogUnavailableIsNoOp(t *testing.T) {
	store := &mockStore{}
	cat := catalogFor("cantrip")
	cat.indexErr = spelllist.ErrCatalogUnavailable
	r := spelllist.NewResolver(cat, nil)
	res := r.Resolve(context.Background(), repeatList(), innateSlots(0), "entry", spellcasting.Innate, store)
	assert.Empty(t, res.Created)
	assert.Equal(t, 0, store.createCalls)

	res = spelllist.NewResolver(nil, nil).Resolve(context.Background(), repeatList(), innateSlots(0), "entry", spellcasting.Innate, store)
	assert.Empty(t, res.Created)
}

func TestResolve_StoreFailureIsNoOp(t *testing.T) {
	slots := slotsFor(t, spellcasting.Prepared, 3)
	store := &mockStore{createErr: errors.New("rejected"), docs: []document.Document{entryDoc(t, "entry", slots)}}
	r := spelllist.NewResolver(catalogFor("cantrip", "dup", "one"), nil)
	res := r.Resolve(context.Background(), repeatList(), slots, "entry", spellcasting.Prepared, store)

	assert.Empty(t, res.Created)
	assert.False(t, res.Assigned)
	assert.Equal(t, slots, res.Slots)
}

func TestResolve_UnknownArchetypeIsNoOp(t *testing.T) {
	store := &mockStore{}
	r := spelllist.NewResolver(catalogFor("cantrip"), nil)
	res := r.Resolve(context.Background(), repeatList(), innateSlots(0), "entry", spellcasting.ArchetypeNone, store)
	assert.Empty(t, res.Created)
	assert.Equal(t, 0, store.createCalls)
}

// Property: spontaneous and prepared create one document per distinct slug;
// innate creates one per distinct (slug, level) pair.
func TestProperty_Resolve_DocumentCountsByArchetype(t *testing.T) {
	pool := []string{"a", "b", "c", "d", "e"}
	rapid.Check(t, func(rt *rapid.T) {
		levels := map[int][]spelllist.Entry{}
		slugSet := map[string]bool{}
		pairSet := map[string]bool{}
		for lvl := 0; lvl <= 3; lvl++ {
			names := rapid.SliceOfN(rapid.SampledFrom(pool), 0, 3).Draw(rt, fmt.Sprintf("level%d", lvl))
			for _, n := range names {
				levels[lvl] = append(levels[lvl], spelllist.Entry{Slug: n})
				slugSet[n] = true
				pairSet[fmt.Sprintf("%s@%d", n, lvl)] = true
			}
		}
		list := &spelllist.SpellList{ID: "p", Name: "P", Tradition: statistic.Occult, Levels: levels}
		r := spelllist.NewResolver(catalogFor(pool...), nil)

		spont := r.Resolve(context.Background(), list, innateSlots(0, 1, 2, 3), "e", spellcasting.Spontaneous, &mockStore{})
		innate := r.Resolve(context.Background(), list, innateSlots(0, 1, 2, 3), "e", spellcasting.Innate, &mockStore{})
		assert.Len(rt, spont.Created, len(slugSet))
		assert.Len(rt, innate.Created, len(pairSet))
	})
}
