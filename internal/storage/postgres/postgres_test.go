package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/statforge/internal/document"
	"github.com/cory-johannsen/statforge/internal/game/creature"
	"github.com/cory-johannsen/statforge/internal/game/roadmap"
	"github.com/cory-johannsen/statforge/internal/game/spelllist"
	"github.com/cory-johannsen/statforge/internal/game/statistic"
	"github.com/cory-johannsen/statforge/internal/i18n"
	"github.com/cory-johannsen/statforge/internal/storage/postgres"
	"github.com/cory-johannsen/statforge/internal/testutil"
)

const templatesYAML = `
- {name: Shield, type: spell, system: {slug: shield}}
- {name: Magic Missile, type: spell, system: {slug: magic-missile}}
- {name: Fireball, type: spell, system: {slug: fireball}}
`

func TestPostgres(t *testing.T) {
	pc := testutil.NewPostgresContainer(t)
	ctx := context.Background()

	err := pc.Pool.Health(ctx, 5*time.Second)
	require.ErrorIs(t, err, postgres.ErrSchemaMissing)
	assert.ErrorContains(t, err, "actor_items, actors, spells")

	pc.ApplyMigrations(t)
	db := pc.Pool.DB()
	require.NoError(t, pc.Pool.Health(ctx, 5*time.Second))

	templates, err := spelllist.ParseTemplates([]byte(templatesYAML))
	require.NoError(t, err)
	catalog := postgres.NewSpellCatalog(db)

	t.Run("catalog upsert and lookup", func(t *testing.T) {
		n, err := catalog.Upsert(ctx, templates)
		require.NoError(t, err)
		assert.Equal(t, 3, n)

		index, err := catalog.Index(ctx, []string{"slug"})
		require.NoError(t, err)
		require.Len(t, index, 3)
		assert.Equal(t, "fireball", index[0].Slug)
		assert.Equal(t, spelllist.TemplateID("fireball"), index[0].ID)

		doc, err := catalog.Document(ctx, index[0].ID)
		require.NoError(t, err)
		assert.Equal(t, "Fireball", doc.Get("name").String())
		assert.Equal(t, index[0].ID, doc.ID())

		_, err = catalog.Document(ctx, spelllist.TemplateID("absent"))
		assert.ErrorIs(t, err, postgres.ErrSpellNotFound)
	})

	t.Run("catalog upsert replaces by slug", func(t *testing.T) {
		renamed, err := templates[0].Set("name", "Shield (Revised)")
		require.NoError(t, err)
		_, err = catalog.Upsert(ctx, []document.Document{renamed})
		require.NoError(t, err)
		doc, err := catalog.Document(ctx, spelllist.TemplateID("shield"))
		require.NoError(t, err)
		assert.Equal(t, "Shield (Revised)", doc.Get("name").String())
	})

	actors := postgres.NewActorRepository(db)
	b := creature.NewBuilder(i18n.Default(), statistic.DefaultLevel, nil)
	rm, ok := roadmap.NewRegistry(nil).Get("spellcaster")
	require.True(t, ok)

	t.Run("actor round trip", func(t *testing.T) {
		c := b.Build("Mage", 5, rm.Choices)
		id, err := actors.Create(ctx, c)
		require.NoError(t, err)

		got, err := actors.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, c.HitPoints, got.HitPoints)
		assert.Equal(t, c.Spellcasting.System.Slots, got.Spellcasting.System.Slots)

		got.Name = "Archmage"
		require.NoError(t, actors.Save(ctx, id, got))
		again, err := actors.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Archmage", again.Name)

		_, err = actors.Get(ctx, "00000000-0000-0000-0000-000000000000")
		assert.ErrorIs(t, err, postgres.ErrActorNotFound)
	})

	t.Run("apply spell list through actor items", func(t *testing.T) {
		c := b.Build("Caster", 1, rm.Choices)
		id, err := actors.Create(ctx, c)
		require.NoError(t, err)
		items := actors.Items(id)
		list := &spelllist.SpellList{
			ID: "test", Name: "Test", Tradition: statistic.Arcane,
			Levels: map[int][]spelllist.Entry{
				0: {{Slug: "shield"}},
				1: {{Slug: "magic-missile"}},
				3: {{Slug: "fireball"}},
			},
		}

		res, err := b.ApplySpellList(ctx, c, list, spelllist.NewResolver(catalog, nil), items)
		require.NoError(t, err)
		assert.Len(t, res.Created, 2)
		assert.True(t, res.Assigned)

		docs, err := items.Documents(ctx)
		require.NoError(t, err)
		require.Len(t, docs, 3)
		assert.Equal(t, c.EntryID, docs[0].ID(), "entry is created first")
		assert.Equal(t, res.Created[1].ID, docs[0].Get("system.slots.slot1.prepared.0.id").String())
		assert.Equal(t, c.EntryID, docs[1].Get(spelllist.LocationPath).String())
	})

	t.Run("actor items update and delete", func(t *testing.T) {
		id, err := actors.Create(ctx, b.Build("Store", 1, roadmap.Defaults()))
		require.NoError(t, err)
		items := actors.Items(id)
		payload, err := document.Marshal(map[string]any{"type": "spell", "name": "A"})
		require.NoError(t, err)
		refs, err := items.CreateDocuments(ctx, spelllist.ItemKind, []document.Document{payload, payload})
		require.NoError(t, err)
		require.Len(t, refs, 2)

		err = items.UpdateDocuments(ctx, spelllist.ItemKind, []document.Patch{
			{ID: refs[0].ID, Fields: map[string]any{"name": "B"}},
			{ID: "00000000-0000-0000-0000-000000000000", Fields: map[string]any{"name": "C"}},
		})
		assert.ErrorIs(t, err, postgres.ErrItemNotFound)
		docs, err := items.Documents(ctx)
		require.NoError(t, err)
		assert.Equal(t, "A", docs[0].Get("name").String(), "failed update rolls back")

		require.NoError(t, items.DeleteDocuments(ctx, spelllist.ItemKind, []string{refs[0].ID}))
		docs, err = items.Documents(ctx)
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, refs[1].ID, docs[0].ID())

		_, err = items.CreateDocuments(ctx, "Actor", nil)
		assert.Error(t, err)
	})
}
