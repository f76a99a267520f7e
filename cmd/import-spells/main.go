// Package main seeds the PostgreSQL spell catalog from a YAML template file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/cory-johannsen/statforge/internal/config"
	"github.com/cory-johannsen/statforge/internal/game/spelllist"
	"github.com/cory-johannsen/statforge/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	file := flag.String("file", "", "spell template YAML (defaults to content.spells_file)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if err := cfg.Database.Validate(); err != nil {
		log.Fatalf("invalid database config: %v", err)
	}
	path := *file
	if path == "" {
		path = cfg.Content.SpellsFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("reading %s: %v", path, err)
	}
	templates, err := spelllist.ParseTemplates(data)
	if err != nil {
		log.Fatalf("parsing %s: %v", path, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("connecting to database: %v", err)
	}
	defer pool.Close()
	if err := pool.Health(ctx, cfg.Database.ConnectTimeout); err != nil {
		log.Fatalf("database not ready: %v", err)
	}

	n, err := postgres.NewSpellCatalog(pool.DB()).Upsert(ctx, templates)
	if err != nil {
		log.Fatalf("importing spells: %v", err)
	}

	fmt.Fprintf(os.Stdout, "imported %d spells from %s [%s]\n", n, path, time.Since(start))
}
