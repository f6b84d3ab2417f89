package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyhop/internal/config"
	"github.com/vovakirdan/skyhop/internal/core"
	"github.com/vovakirdan/skyhop/internal/games/skyhop"
	"github.com/vovakirdan/skyhop/internal/games/skyhop/sim"
	"github.com/vovakirdan/skyhop/internal/storage"
)

var (
	flagSimTicks int
	flagSimMode  string
	flagSimSave  bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a headless game with the autopilot",
	Long: `Run the simulation without a terminal UI. The autopilot steers toward
reachable platforms and attacks nearby enemies; events are logged at debug
level and a summary is printed when the run ends or the tick budget is spent.

Examples:
  skyhop simulate
  skyhop simulate --ticks 36000 --seed 42 --mode skyhop_endless
  skyhop simulate --log-level debug --save`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimTicks, "ticks", 60*60*5, "Maximum ticks to simulate")
	simulateCmd.Flags().StringVar(&flagSimMode, "mode", "skyhop", "Game mode: skyhop or skyhop_endless")
	simulateCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record the run in the runs database")
}

// simResult is the outcome of a headless run.
type simResult struct {
	Summary    core.RunSummary
	Score      int
	Over       bool
	Difficulty float64
	Generated  int
}

// simulate runs the autopilot for at most ticks steps.
func simulate(cfg config.SkyhopConfig, seed int64, dt float64, ticks int, logger *log.Logger) simResult {
	w := sim.NewWorld(cfg, seed, dt, sim.WithLogger(logger))

	for range ticks {
		if w.Over() {
			break
		}
		for _, e := range w.Step(sim.Autopilot(w)) {
			logger.Debug("event", "tick", w.Ticks(), "type", e.Type, "entity", e.Entity)
		}
	}

	return simResult{
		Summary: core.RunSummary{
			Seed:    w.Seed(),
			Height:  w.MaxHeight(),
			Ticks:   w.Ticks(),
			Enemies: w.EnemiesDefeated(),
			Pickups: w.PickupsCollected(),
			Won:     w.Won(),
		},
		Score:      w.Score(),
		Over:       w.Over(),
		Difficulty: w.Difficulty(),
		Generated:  w.Generated(),
	}
}

func runSimulate(_ *cobra.Command, _ []string) error {
	mode, err := parseMode(flagSimMode)
	if err != nil {
		return err
	}
	cfg, err := validated(mode)
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rc := core.RuntimeConfig{TickRate: flagFPS, Seed: seed}

	logger := skyhop.Logger()
	if logger == nil {
		logger = log.Default()
	}
	logger = logger.With("seed", seed)

	started := time.Now()
	res := simulate(cfg, seed, rc.FixedDelta(), flagSimTicks, logger)
	logger.Info("simulation finished", "ticks", res.Summary.Ticks, "elapsed", time.Since(started).Round(time.Millisecond))

	outcome := "running"
	switch {
	case res.Summary.Won:
		outcome = "summit"
	case res.Over:
		outcome = "fell"
	}

	fmt.Printf("Mode:        %s\n", flagSimMode)
	fmt.Printf("Seed:        %d\n", seed)
	fmt.Printf("Ticks:       %d (%.1fs)\n", res.Summary.Ticks, float64(res.Summary.Ticks)*rc.FixedDelta())
	fmt.Printf("Outcome:     %s\n", outcome)
	fmt.Printf("Score:       %d\n", res.Score)
	fmt.Printf("Height:      %.1f\n", res.Summary.Height)
	fmt.Printf("Difficulty:  %.2f\n", res.Difficulty)
	fmt.Printf("Platforms:   %d\n", res.Generated)
	fmt.Printf("Enemies:     %d\n", res.Summary.Enemies)
	fmt.Printf("Power-ups:   %d\n", res.Summary.Pickups)

	if !flagSimSave {
		return nil
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	gameID := "skyhop"
	if mode == skyhop.ModeEndless {
		gameID = "skyhop_endless"
	}
	_, err = store.SaveRun(storage.RunRecord{
		GameID:  gameID,
		Player:  "autopilot",
		Seed:    seed,
		Score:   res.Score,
		Height:  res.Summary.Height,
		Ticks:   res.Summary.Ticks,
		Enemies: res.Summary.Enemies,
		Pickups: res.Summary.Pickups,
		Won:     res.Summary.Won,
	})
	return err
}
