package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/statforge/internal/document"
	"github.com/cory-johannsen/statforge/internal/game/creature"
	"github.com/cory-johannsen/statforge/internal/game/spelllist"
)

// ErrActorNotFound is returned when an actor lookup yields no results.
var ErrActorNotFound = errors.New("actor not found")

// ErrItemNotFound is returned when a patch names an item the actor does not own.
var ErrItemNotFound = errors.New("item not found")

// ActorRepository persists built statblocks.
type ActorRepository struct {
	db *pgxpool.Pool
}

// NewActorRepository creates an ActorRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewActorRepository(db *pgxpool.Pool) *ActorRepository {
	return &ActorRepository{db: db}
}

// Create stores c and returns its new actor id.
//
// Precondition: c must be non-nil.
func (r *ActorRepository) Create(ctx context.Context, c *creature.Creature) (string, error) {
	body, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encoding statblock: %w", err)
	}
	id := uuid.NewString()
	_, err = r.db.Exec(ctx,
		`INSERT INTO actors (id, name, level, statblock) VALUES ($1, $2, $3, $4)`,
		id, c.Name, int(c.Level), body,
	)
	if err != nil {
		return "", fmt.Errorf("inserting actor: %w", err)
	}
	return id, nil
}

// Save overwrites the stored statblock of actor id.
//
// Postcondition: Returns ErrActorNotFound when no row matches.
func (r *ActorRepository) Save(ctx context.Context, id string, c *creature.Creature) error {
	body, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding statblock: %w", err)
	}
	tag, err := r.db.Exec(ctx,
		`UPDATE actors SET name = $2, level = $3, statblock = $4 WHERE id = $1`,
		id, c.Name, int(c.Level), body,
	)
	if err != nil {
		return fmt.Errorf("updating actor %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrActorNotFound, id)
	}
	return nil
}

// Get loads the statblock of actor id.
//
// Postcondition: Returns ErrActorNotFound when no row matches.
func (r *ActorRepository) Get(ctx context.Context, id string) (*creature.Creature, error) {
	var body []byte
	err := r.db.QueryRow(ctx, `SELECT statblock FROM actors WHERE id = $1`, id).Scan(&body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrActorNotFound, id)
		}
		return nil, fmt.Errorf("loading actor %s: %w", id, err)
	}
	var c creature.Creature
	if err := json.Unmarshal(body, &c); err != nil {
		return nil, fmt.Errorf("decoding actor %s: %w", id, err)
	}
	return &c, nil
}

// Items returns the embedded item store of actor id.
func (r *ActorRepository) Items(actorID string) *ActorItems {
	return &ActorItems{db: r.db, actorID: actorID}
}

// ActorItems is one actor's embedded documents in the actor_items table.
type ActorItems struct {
	db      *pgxpool.Pool
	actorID string
}

func checkKind(kind string) error {
	if kind != spelllist.ItemKind {
		return fmt.Errorf("unsupported document kind %q", kind)
	}
	return nil
}

// CreateDocuments inserts payloads under fresh ids in one transaction.
//
// Postcondition: Returns refs in payload order; either every payload is stored
// or none is.
func (s *ActorItems) CreateDocuments(ctx context.Context, kind string, payloads []document.Document) ([]document.Ref, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning item insert: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	refs := make([]document.Ref, len(payloads))
	batch := &pgx.Batch{}
	for i, p := range payloads {
		id := uuid.NewString()
		doc, err := p.Set(document.IDPath, id)
		if err != nil {
			return nil, fmt.Errorf("payload %d: %w", i, err)
		}
		refs[i] = document.Ref{ID: id, Type: doc.Type()}
		batch.Queue(`INSERT INTO actor_items (id, actor_id, type, data) VALUES ($1, $2, $3, $4)`,
			id, s.actorID, doc.Type(), []byte(doc))
	}
	results := tx.SendBatch(ctx, batch)
	for range payloads {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return nil, fmt.Errorf("inserting item: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return nil, fmt.Errorf("closing item batch: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing items: %w", err)
	}
	return refs, nil
}

// UpdateDocuments applies every patch in one transaction.
//
// Postcondition: Returns an error wrapping ErrItemNotFound, with nothing
// written, when any patch names an unknown item.
func (s *ActorItems) UpdateDocuments(ctx context.Context, kind string, patches []document.Patch) error {
	if err := checkKind(kind); err != nil {
		return err
	}
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning item update: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, p := range patches {
		var data []byte
		err := tx.QueryRow(ctx,
			`SELECT data FROM actor_items WHERE id = $1 AND actor_id = $2 FOR UPDATE`,
			p.ID, s.actorID,
		).Scan(&data)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("%w: %s", ErrItemNotFound, p.ID)
			}
			return fmt.Errorf("loading item %s: %w", p.ID, err)
		}
		doc, err := p.Apply(document.Document(data))
		if err != nil {
			return fmt.Errorf("patching item %s: %w", p.ID, err)
		}
		if _, err := tx.Exec(ctx,
			`UPDATE actor_items SET data = $3, type = $4 WHERE id = $1 AND actor_id = $2`,
			p.ID, s.actorID, []byte(doc), doc.Type(),
		); err != nil {
			return fmt.Errorf("updating item %s: %w", p.ID, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing item update: %w", err)
	}
	return nil
}

// DeleteDocuments removes the actor's items with the given ids. Unknown ids are ignored.
func (s *ActorItems) DeleteDocuments(ctx context.Context, kind string, ids []string) error {
	if err := checkKind(kind); err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	if _, err := s.db.Exec(ctx,
		`DELETE FROM actor_items WHERE actor_id = $1 AND id::text = ANY($2)`,
		s.actorID, ids,
	); err != nil {
		return fmt.Errorf("deleting items: %w", err)
	}
	return nil
}

// Documents returns the actor's items in creation order.
func (s *ActorItems) Documents(ctx context.Context) ([]document.Document, error) {
	rows, err := s.db.Query(ctx,
		`SELECT data FROM actor_items WHERE actor_id = $1 ORDER BY position`, s.actorID)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var out []document.Document
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		out = append(out, document.Document(data))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}
	return out, nil
}
