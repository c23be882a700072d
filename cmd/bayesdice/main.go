// Package main provides the bayesdice binary: it runs one scenario and prints
// the conditional-frequency table of outcomes per source.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/cory-johannsen/bayesdice/internal/config"
	"github.com/cory-johannsen/bayesdice/internal/dice"
	"github.com/cory-johannsen/bayesdice/internal/observability"
	"github.com/cory-johannsen/bayesdice/internal/scenario"
	"github.com/cory-johannsen/bayesdice/internal/table"
	"github.com/cory-johannsen/bayesdice/internal/trial"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file; empty = defaults and environment only")
	scenarioID := flag.String("scenario", "", "scenario id to run (overrides config)")
	scenarioDir := flag.String("scenario-dir", "", "directory of additional scenario YAML files (overrides config)")
	draws := flag.Int("draws", 0, "number of draws; 0 = scenario default (overrides config)")
	seed := flag.Uint64("seed", 0, "random seed; 0 = crypto randomness (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	applyFlags(&cfg.Simulation, *scenarioID, *scenarioDir, *draws, *seed)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("validating flags: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	if err := run(os.Stdout, cfg.Simulation, logger); err != nil {
		logger.Error("simulation failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	logger.Info("done", zap.Duration("elapsed", time.Since(start)))
}

// applyFlags overrides simulation settings with explicitly set flags.
func applyFlags(sim *config.SimulationConfig, scenarioID, scenarioDir string, draws int, seed uint64) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scenario":
			sim.Scenario = scenarioID
		case "scenario-dir":
			sim.ScenarioDir = scenarioDir
		case "draws":
			sim.Draws = draws
		case "seed":
			sim.Seed = seed
		}
	})
}

// run executes the configured scenario and writes the summary to w.
func run(w io.Writer, sim config.SimulationConfig, logger *zap.Logger) error {
	scenarios, err := scenario.Builtin()
	if err != nil {
		return err
	}
	if sim.ScenarioDir != "" {
		extra, err := scenario.LoadDir(sim.ScenarioDir)
		if err != nil {
			return err
		}
		scenarios = append(scenarios, extra...)
	}
	sc, err := scenario.Find(scenarios, sim.Scenario)
	if err != nil {
		return err
	}

	n := sc.Draws
	if sim.Draws > 0 {
		n = sim.Draws
	}

	rng := dice.NewSource(sim.Seed)
	chooser, err := scenario.Build(sc, scenario.Env{
		RNG:              rng,
		Logger:           logger,
		InstructionLimit: sim.ScriptInstructionLimit,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := chooser.Close(); err != nil {
			logger.Warn("closing sources", zap.Error(err))
		}
	}()

	tr := trial.New(chooser, logger)
	if err := tr.Run(n); err != nil {
		return err
	}

	p := message.NewPrinter(language.English)
	if _, err := p.Fprintf(w, "%s: %d draws over %d sources\n", sc.ID, n, len(chooser.Sources())); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	return table.Render(w, tr.Table())
}
