// Package main provides the statforge command: it builds, detects, and
// rescales PF2e creature statblocks from roadmaps and spell lists.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/cory-johannsen/statforge/internal/config"
	"github.com/cory-johannsen/statforge/internal/document"
	"github.com/cory-johannsen/statforge/internal/game/creature"
	"github.com/cory-johannsen/statforge/internal/game/dice"
	"github.com/cory-johannsen/statforge/internal/game/spelllist"
	"github.com/cory-johannsen/statforge/internal/game/statistic"
	"github.com/cory-johannsen/statforge/internal/observability"
	"github.com/cory-johannsen/statforge/internal/storage/memory"
)

const usage = `usage: statforge <command> [flags]

commands:
  build     build a statblock from a roadmap
  detect    print the roadmap choices that reproduce a statblock
  rescale   rebuild a statblock at another level
  roadmaps  list available roadmaps
  lists     list available spell lists
`

var errUsage = errors.New("usage")

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "statforge: %v\n", err)
		os.Exit(1)
	}
}

// run dispatches one subcommand. Statblocks are read from in when -in is "-"
// and every result is written to out as indented JSON.
func run(ctx context.Context, args []string, in io.Reader, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, rest := args[0], args[1:]

	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	configPath := fs.String("config", "", "path to configuration file (defaults and STATFORGE_* env when empty)")

	var handler func(a *app) error
	switch cmd {
	case "build":
		name := fs.String("name", "Creature", "creature name")
		level := fs.String("level", "1", "creature level (-1 to 24)")
		rm := fs.String("roadmap", "", "roadmap key; the default choices when empty")
		set := fs.String("set", "", "comma separated stat=rating overrides")
		list := fs.String("list", "", "spell list id to apply")
		save := fs.Bool("save", false, "persist the actor and its items to the database")
		handler = func(a *app) error {
			return a.build(ctx, buildRequest{
				Name: *name, Level: *level, Roadmap: *rm, Set: *set, List: *list, Save: *save,
			}, out)
		}
	case "detect":
		inPath := fs.String("in", "-", "statblock JSON file, or - for stdin")
		handler = func(a *app) error {
			c, err := readCreature(*inPath, in)
			if err != nil {
				return err
			}
			return writeJSON(out, a.builder.Detect(c))
		}
	case "rescale":
		inPath := fs.String("in", "-", "statblock JSON file, or - for stdin")
		level := fs.String("level", "", "target level (-1 to 24)")
		handler = func(a *app) error {
			c, err := readCreature(*inPath, in)
			if err != nil {
				return err
			}
			target, err := statistic.ParseLevel(*level)
			if err != nil {
				return err
			}
			return writeJSON(out, a.builder.Rescale(c, target))
		}
	case "roadmaps":
		handler = func(a *app) error {
			for _, key := range a.roadmaps.Keys() {
				rm, _ := a.roadmaps.Get(key)
				fmt.Fprintf(out, "%s\t%s\n", rm.Key, rm.Name)
			}
			return nil
		}
	case "lists":
		handler = func(a *app) error {
			for _, id := range a.lists.IDs() {
				l, _ := a.lists.Get(id)
				fmt.Fprintf(out, "%s\t%s\t%s\n", l.ID, l.Tradition, l.Name)
			}
			return nil
		}
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}

	if err := fs.Parse(rest); err != nil {
		return err
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.close()
	return handler(a)
}

type buildRequest struct {
	Name    string
	Level   string
	Roadmap string
	Set     string
	List    string
	Save    bool
}

type buildOutput struct {
	ActorID      string              `json:"actor_id,omitempty"`
	Creature     *creature.Creature  `json:"creature"`
	Items        []document.Document `json:"items,omitempty"`
	Skipped      []string            `json:"skipped,omitempty"`
	SampleDamage string              `json:"sample_damage,omitempty"`
}

// build runs the build subcommand. Items live in memory unless req.Save is set,
// in which case the actor and its items are written to the database.
func (a *app) build(ctx context.Context, req buildRequest, out io.Writer) error {
	level, err := statistic.ParseLevel(req.Level)
	if err != nil {
		return err
	}
	choices, err := a.choices(req.Roadmap, req.Set)
	if err != nil {
		return err
	}
	c := a.builder.Build(req.Name, level, choices)
	result := buildOutput{Creature: c}

	var store interface {
		spelllist.DocumentStore
		Documents(context.Context) ([]document.Document, error)
	} = memory.NewActor(a.logger)

	var save func() error
	if req.Save {
		repo, err := a.actors()
		if err != nil {
			return err
		}
		id, err := repo.Create(ctx, c)
		if err != nil {
			return err
		}
		result.ActorID = id
		store = repo.Items(id)
		save = func() error { return repo.Save(ctx, id, c) }
	}

	if req.List != "" {
		list, ok := a.lists.Get(req.List)
		if !ok {
			return fmt.Errorf("unknown spell list %q (have %s)", req.List, strings.Join(a.lists.IDs(), ", "))
		}
		res, err := a.builder.ApplySpellList(ctx, c, list, a.resolver, store)
		if err != nil {
			return err
		}
		result.Skipped = res.Skipped
		if result.Items, err = store.Documents(ctx); err != nil {
			return err
		}
	}

	if c.Strike != nil {
		roll, err := dice.NewLoggedRoller(dice.NewCryptoSource(), a.logger).RollExpr(c.Strike.Damage)
		if err != nil {
			a.logger.Warn("rolling sample damage", zap.String("damage", c.Strike.Damage), zap.Error(err))
		} else {
			result.SampleDamage = roll.String()
		}
	}

	if save != nil {
		if err := save(); err != nil {
			return err
		}
	}
	return writeJSON(out, result)
}

func readCreature(path string, stdin io.Reader) (*creature.Creature, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening statblock: %w", err)
		}
		defer f.Close()
		r = f
	}
	var c creature.Creature
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("decoding statblock: %w", err)
	}
	return &c, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
