package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/statforge/internal/config"
	"github.com/cory-johannsen/statforge/internal/game/creature"
	"github.com/cory-johannsen/statforge/internal/game/roadmap"
	"github.com/cory-johannsen/statforge/internal/game/spelllist"
	"github.com/cory-johannsen/statforge/internal/game/statistic"
	"github.com/cory-johannsen/statforge/internal/i18n"
	"github.com/cory-johannsen/statforge/internal/observability"
	"github.com/cory-johannsen/statforge/internal/storage/memory"
	"github.com/cory-johannsen/statforge/internal/storage/postgres"
)

// app holds everything the subcommands share.
type app struct {
	cfg      config.Config
	logger   *zap.Logger
	builder  *creature.Builder
	roadmaps *roadmap.Registry
	lists    *spelllist.Registry
	resolver *spelllist.Resolver
	pool     *postgres.Pool
}

// newApp wires the builder, registries, and spell catalog from cfg. Content
// that fails to load is logged and skipped; only an unreachable database is fatal.
//
// Postcondition: Callers must call close on the returned app.
func newApp(ctx context.Context, cfg config.Config, logger *zap.Logger) (*app, error) {
	diag := observability.Diagnostics(logger, cfg.Builder.Debug)
	a := &app{cfg: cfg, logger: logger}

	var loc *i18n.Catalog
	if cfg.Content.LocaleFile != "" {
		var err error
		if loc, err = i18n.LoadFile(cfg.Content.LocaleFile, cfg.Content.Locale, diag); err != nil {
			logger.Warn("loading locale; using built-in English", zap.Error(err))
		}
	}
	if loc == nil {
		loc = i18n.Default()
	}
	a.builder = creature.NewBuilder(loc, statistic.Level(cfg.Builder.DefaultLevel), diag)

	a.roadmaps = roadmap.NewRegistry(diag)
	if dir := cfg.Content.RoadmapsDir; dir != "" {
		customs, fileErrs, err := roadmap.LoadDir(dir, logger)
		if err != nil {
			logger.Warn("loading custom roadmaps", zap.Error(err))
		}
		for _, e := range append(fileErrs, a.roadmaps.Extend(customs)...) {
			logger.Warn("skipping custom roadmap", zap.Error(e))
		}
	}

	a.lists = spelllist.NewRegistry(diag)
	if dir := cfg.Content.SpellListsDir; dir != "" {
		lists, fileErrs, err := spelllist.LoadDir(dir, logger)
		if err != nil {
			logger.Warn("loading spell lists", zap.Error(err))
		}
		n := a.lists.Extend(lists)
		logger.Debug("spell lists loaded", zap.Int("added", n), zap.Int("rejected_files", len(fileErrs)))
	}

	var catalog spelllist.Catalog
	switch cfg.Catalog.Source {
	case config.CatalogPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connecting to database: %w", err)
		}
		if err := pool.Health(ctx, cfg.Database.ConnectTimeout); err != nil {
			pool.Close()
			return nil, fmt.Errorf("database not ready: %w", err)
		}
		a.pool = pool
		catalog = postgres.NewSpellCatalog(pool.DB())
	default:
		c, err := memory.LoadCatalog(cfg.Content.SpellsFile)
		if err != nil {
			logger.Warn("spell catalog unavailable; spell lists will be skipped", zap.Error(err))
		} else {
			catalog = c
		}
	}
	a.resolver = spelllist.NewResolver(catalog, diag)
	return a, nil
}

func (a *app) close() {
	if a.pool != nil {
		a.pool.Close()
	}
}

// actors returns the actor repository, or an error without a database.
func (a *app) actors() (*postgres.ActorRepository, error) {
	if a.pool == nil {
		return nil, errors.New("persisting actors requires catalog.source: postgres")
	}
	return postgres.NewActorRepository(a.pool.DB()), nil
}

// choices assembles build choices: the roadmap (or the defaults), then each
// "stat=word" override from set.
func (a *app) choices(roadmapKey, set string) (roadmap.Choices, error) {
	choices := roadmap.Defaults()
	if roadmapKey != "" {
		rm, ok := a.roadmaps.Get(roadmapKey)
		if !ok {
			return nil, fmt.Errorf("unknown roadmap %q (have %s)", roadmapKey, strings.Join(a.roadmaps.Keys(), ", "))
		}
		choices = rm.Choices.Clone()
	}
	overrides, err := parseSet(set)
	if err != nil {
		return nil, err
	}
	for id, word := range overrides {
		choices[id] = word
	}
	return choices, nil
}

// parseSet parses "str=high,athletics=moderate".
func parseSet(s string) (map[statistic.ID]string, error) {
	out := map[statistic.ID]string{}
	if strings.TrimSpace(s) == "" {
		return out, nil
	}
	for _, pair := range strings.Split(s, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || k == "" || v == "" {
			return nil, fmt.Errorf("malformed override %q: want stat=word", pair)
		}
		id := statistic.ID(k)
		if !statistic.Valid(id) {
			return nil, fmt.Errorf("unknown statistic %q", k)
		}
		out[id] = v
	}
	return out, nil
}
