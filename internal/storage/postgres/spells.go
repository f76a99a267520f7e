package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/statforge/internal/document"
	"github.com/cory-johannsen/statforge/internal/game/spelllist"
)

// ErrSpellNotFound is returned when a spell id has no catalog row.
var ErrSpellNotFound = errors.New("spell not found")

// SpellCatalog is the spell compendium stored in the spells table.
type SpellCatalog struct {
	db *pgxpool.Pool
}

// NewSpellCatalog creates a SpellCatalog backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewSpellCatalog(db *pgxpool.Pool) *SpellCatalog {
	return &SpellCatalog{db: db}
}

// Index lists every spell's id and slug ordered by slug. The table always
// carries slugs, so fields is ignored.
//
// Postcondition: Query failures wrap spelllist.ErrCatalogUnavailable.
func (c *SpellCatalog) Index(ctx context.Context, _ []string) ([]spelllist.IndexEntry, error) {
	rows, err := c.db.Query(ctx, `SELECT id::text, slug FROM spells ORDER BY slug`)
	if err != nil {
		return nil, fmt.Errorf("%w: listing spells: %v", spelllist.ErrCatalogUnavailable, err)
	}
	defer rows.Close()

	var out []spelllist.IndexEntry
	for rows.Next() {
		var e spelllist.IndexEntry
		if err := rows.Scan(&e.ID, &e.Slug); err != nil {
			return nil, fmt.Errorf("scanning spell index: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating spells: %v", spelllist.ErrCatalogUnavailable, err)
	}
	return out, nil
}

// Document returns the stored template for id with _id set to id.
//
// Postcondition: Returns ErrSpellNotFound when no row matches.
func (c *SpellCatalog) Document(ctx context.Context, id string) (document.Document, error) {
	var data []byte
	err := c.db.QueryRow(ctx, `SELECT template FROM spells WHERE id = $1`, id).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrSpellNotFound, id)
		}
		return nil, fmt.Errorf("loading spell %s: %w", id, err)
	}
	return document.Document(data).Set(document.IDPath, id)
}

// Upsert stores templates keyed by slug in one transaction. A template whose
// slug already exists replaces the stored name and body but keeps its id.
//
// Precondition: every template must carry an _id and a slug.
// Postcondition: Returns the number of templates written, or an error with
// nothing written.
func (c *SpellCatalog) Upsert(ctx context.Context, templates []document.Document) (int, error) {
	tx, err := c.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("beginning spell import: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	for _, t := range templates {
		body, err := t.Delete(document.IDPath)
		if err != nil {
			return 0, fmt.Errorf("preparing spell %s: %w", t.ID(), err)
		}
		batch.Queue(`
			INSERT INTO spells (id, slug, name, template)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (slug) DO UPDATE
			SET name = EXCLUDED.name, template = EXCLUDED.template, updated_at = NOW()`,
			t.ID(), t.Get(spelllist.SlugPath).String(), t.Get(document.NamePath).String(), []byte(body),
		)
	}
	results := tx.SendBatch(ctx, batch)
	for range templates {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return 0, fmt.Errorf("upserting spell: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return 0, fmt.Errorf("closing spell batch: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("committing spell import: %w", err)
	}
	return len(templates), nil
}
