// skyhop is a vertical platformer for the terminal: bounce from platform to
// platform, keep up with the rising camera and reach the summit.
//
// Usage:
//
//	skyhop list              - List game modes
//	skyhop play [mode]       - Play a mode, or pick one from the menu
//	skyhop serve             - Start SSH server for remote play
//	skyhop scores [mode]     - Show the best runs
//	skyhop simulate          - Run a headless game with the autopilot
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible runs
//	--db <path>           - Set database path (default: ~/.skyhop/runs.db)
//	--config <path>       - Overlay a YAML config on the defaults
//	--difficulty <name>   - Difficulty preset: easy, normal, hard, fixed
//	--log-level <level>   - debug, info, warn, error
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyhop/internal/games/skyhop"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	defer closeLogFile()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		closeLogFile()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "skyhop",
	Short: "Skyhop - a vertical platformer in your terminal",
	Long: `Skyhop is a terminal platformer. The player bounces automatically on
every platform it lands on; steer left and right to climb, stomp or strike
enemies, and collect power-ups before the camera leaves you behind.

Available commands:
  list      - Show game modes
  play      - Play a mode directly or from the menu
  serve     - Start SSH server for remote play
  scores    - View the best runs
  simulate  - Run a headless game with the autopilot

Examples:
  skyhop play
  skyhop play skyhop_endless --difficulty hard
  skyhop serve --ssh :2222
  skyhop simulate --ticks 3600 --seed 42`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger, err := newLogger(cmd.Name() == "simulate" || cmd.Name() == "serve")
		if err != nil {
			return err
		}
		skyhop.SetLogger(logger)
		skyhop.SetConfigPath(flagConfig)
		skyhop.SetDifficultyPreset(flagDifficulty)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.skyhop/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(configCmd)
}
