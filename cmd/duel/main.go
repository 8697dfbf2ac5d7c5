// Package main provides the duel binary that runs one Computer-versus-Human
// encounter and prints its transcript to stdout.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/duel/internal/config"
	"github.com/cory-johannsen/duel/internal/game/combat"
	"github.com/cory-johannsen/duel/internal/game/dice"
	"github.com/cory-johannsen/duel/internal/game/roster"
	"github.com/cory-johannsen/duel/internal/observability"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, nil); err != nil {
		log.Fatalf("duel: %v", err)
	}
}

// run parses args, builds the encounter, and plays it to completion, writing
// the transcript to stdout. A nil logger is built from configuration.
func run(ctx context.Context, args []string, stdout io.Writer, logger *zap.Logger) error {
	fs := flag.NewFlagSet("duel", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to configuration file; empty = defaults and DUEL_ env vars")
	combatantsDir := fs.String("combatants", "", "directory of combatant YAML templates; overrides encounter.combatants_dir")
	seed := fs.Int64("seed", 0, "random seed; overrides encounter.seed; 0 = use config or draw a fresh seed")
	cryptoRand := fs.Bool("crypto", false, "use crypto/rand instead of a seeded generator (not replayable)")
	logEvents := fs.Bool("log-events", false, "also emit every combat event as a structured log entry")
	if err := fs.Parse(args); err != nil {
		return err
	}

	start := time.Now()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if logger == nil {
		logger, err = observability.NewLogger(cfg.Logging)
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()
	}

	if *seed != 0 {
		cfg.Encounter.Seed = *seed
	}
	if *combatantsDir != "" {
		cfg.Encounter.CombatantsDir = *combatantsDir
	}

	var src dice.Source
	if *cryptoRand {
		src = dice.NewCryptoSource()
		logger.Info("using crypto random source")
	} else {
		if cfg.Encounter.Seed == 0 {
			if cfg.Encounter.Seed, err = dice.NewSeed(); err != nil {
				return err
			}
		}
		src = dice.NewSeededSource(cfg.Encounter.Seed)
		logger.Info("using seeded random source", zap.Int64("seed", cfg.Encounter.Seed))
	}
	roller := dice.NewLoggedRoller(src, logger)

	ranges, err := cfg.Actions.Ranges()
	if err != nil {
		return err
	}

	templates := roster.DefaultTemplates()
	if cfg.Encounter.CombatantsDir != "" {
		templates, err = roster.LoadTemplates(cfg.Encounter.CombatantsDir)
		if err != nil {
			return fmt.Errorf("loading combatants: %w", err)
		}
	}
	logger.Info("loaded combatants", zap.Int("count", len(templates)))

	var sink combat.Sink = combat.NewConsoleSink(stdout)
	if *logEvents {
		sink = combat.MultiSink{sink, combat.NewLogSink(logger)}
	}

	participants := make([]*combat.Entity, 0, len(templates))
	for _, tmpl := range templates {
		e, err := tmpl.Build(roller, logger, combat.WithRanges(ranges), combat.WithSink(sink))
		if err != nil {
			return fmt.Errorf("building combatant: %w", err)
		}
		participants = append(participants, e)
	}

	enc, err := combat.NewEncounter(participants, src,
		combat.WithEncounterSink(sink),
		combat.WithEncounterLogger(logger),
		combat.WithMaxTurns(cfg.Encounter.MaxTurns),
	)
	if err != nil {
		return fmt.Errorf("creating encounter: %w", err)
	}

	res, err := enc.Run(ctx)
	if err != nil {
		return fmt.Errorf("running encounter: %w", err)
	}
	logger.Info("duel complete",
		zap.String("loser", res.Loser.Name()),
		zap.Int("turns", res.Turns),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}
