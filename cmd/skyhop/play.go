package main

import (
	"fmt"
	"os"
	"os/user"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/skyhop/internal/core"
	"github.com/vovakirdan/skyhop/internal/platform/tui"
	"github.com/vovakirdan/skyhop/internal/registry"
	"github.com/vovakirdan/skyhop/internal/storage"
)

var playCmd = &cobra.Command{
	Use:     "play [mode]",
	Aliases: []string{"menu"},
	Short:   "Play a game mode",
	Long: `Start playing. Without a mode, a menu lets you pick one and brings you
back after every run.

Controls:
  Left/Right, A/D  - Steer
  Space/X          - Attack
  P                - Pause
  R                - Restart (after the run ended)
  Esc/B            - Back to menu (paused or after the run ended)
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Start at the lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  skyhop play
  skyhop play skyhop --difficulty easy
  skyhop play skyhop_endless --seed 42
  skyhop play skyhop --config ./tower.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

// terminalConfig builds the runtime config from the terminal size and the
// global flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// playerName is the local user recorded with each run.
func playerName() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return ""
}

// openStore opens the runs database. Play continues without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, args []string) {
	cfg := terminalConfig()
	store := openStore()
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	if len(args) == 1 {
		gameID := args[0]
		if !registry.Exists(gameID) {
			fmt.Fprintf(os.Stderr, "Error: unknown game mode %q\n", gameID)
			fmt.Fprintln(os.Stderr, "Run 'skyhop list' to see available modes.")
			return
		}
		if err := playOnce(gameID, store, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
		return
	}

	menuLoop(store, cfg)
}

func playOnce(gameID string, store *storage.Store, cfg core.RuntimeConfig) error {
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	return tui.Run(game, store, cfg, playerName())
}

// menuLoop shows the menu, runs the chosen mode and returns to the menu
// until the player quits.
func menuLoop(store *storage.Store, cfg core.RuntimeConfig) {
	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}

		// Keep any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return
		}

		// A fresh seed per run unless one was given
		runCfg := cfg
		if flagSeed == 0 {
			runCfg.Seed = time.Now().UnixNano()
		}
		if err := playOnce(menuResult.GameID, store, runCfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}
}
