// Package postgres stores the spell catalog and built actors in PostgreSQL
// through pgx v5.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/statforge/internal/config"
)

// ErrSchemaMissing is returned by Health when the migrations have not been applied.
var ErrSchemaMissing = errors.New("statforge schema missing; run cmd/migrate")

// requiredTables are the tables SpellCatalog and ActorRepository query.
var requiredTables = []string{"spells", "actors", "actor_items"}

// Pool is the connection pool shared by SpellCatalog and ActorRepository.
type Pool struct {
	pool *pgxpool.Pool
}

// NewPool connects to the database described by cfg. Dialing and the initial
// ping are bounded by cfg.ConnectTimeout when it is positive.
//
// Precondition: cfg must pass DatabaseConfig.Validate.
// Postcondition: Returns a reachable Pool or a non-nil error. The schema is
// not checked; use Health for that.
func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}
	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	poolCfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}
	pingCtx, cancel := withTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database %s:%d: %w", cfg.Host, cfg.Port, err)
	}
	return &Pool{pool: pool}, nil
}

// Health pings the database and confirms the catalog and actor tables exist.
// The whole check is bounded by timeout when it is positive.
//
// Precondition: The pool must not be closed.
// Postcondition: Returns nil when the database is usable, an error wrapping
// ErrSchemaMissing when any required table is absent, or the ping error.
func (p *Pool) Health(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := withTimeout(ctx, timeout)
	defer cancel()
	if err := p.pool.Ping(ctx); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}
	rows, err := p.pool.Query(ctx,
		`SELECT t FROM unnest($1::text[]) AS t WHERE to_regclass(t) IS NULL ORDER BY t`,
		requiredTables)
	if err != nil {
		return fmt.Errorf("checking schema: %w", err)
	}
	missing, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return fmt.Errorf("checking schema: %w", err)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: no table %s", ErrSchemaMissing, strings.Join(missing, ", "))
	}
	return nil
}

// Close releases all pool resources.
func (p *Pool) Close() {
	p.pool.Close()
}

// DB returns the underlying pgxpool.Pool for the repositories.
func (p *Pool) DB() *pgxpool.Pool {
	return p.pool
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
