package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyhop/internal/platform/tui"
	"github.com/vovakirdan/skyhop/internal/registry"
	"github.com/vovakirdan/skyhop/internal/storage"
)

var (
	flagScoresTUI   bool
	flagScoresLimit int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show the best runs",
	Long: `Display the best runs for a game mode, or a summary of every mode when
no mode is given. --tui opens the interactive scoreboard instead.

Examples:
  skyhop scores
  skyhop scores skyhop
  skyhop scores skyhop_endless --limit 20
  skyhop scores --tui`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Open the interactive scoreboard")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
}

func runScores(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresTUI {
		cfg := terminalConfig()
		if _, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	if len(args) == 0 {
		printSummary(store)
		return
	}

	gameID := args[0]
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'skyhop list' to see available modes.")
		return
	}
	printTopRuns(store, gameID)
}

func printTopRuns(store *storage.Store, gameID string) {
	runs, err := store.TopRuns(gameID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	fmt.Printf("Best Runs - %s\n", registry.Title(gameID))
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'skyhop play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-8s  %-12s  %-7s  %s\n", "Rank", "Score", "Height", "Player", "Result", "Date")
	fmt.Printf("  %-4s  %-8s  %-8s  %-12s  %-7s  %s\n", "----", "-----", "------", "------", "------", "----")

	for i, r := range runs {
		player := r.Player
		if player == "" {
			player = "-"
		}
		result := "fell"
		if r.Won {
			result = "summit"
		}
		fmt.Printf("  %-4d  %-8d  %-8.1f  %-12s  %-7s  %s\n",
			i+1, r.Score, r.Height, player, result, r.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func printSummary(store *storage.Store) {
	stats, err := store.GetAllGamesStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		return
	}

	if len(stats) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	fmt.Printf("  %-16s  %-6s  %-8s  %-8s  %-8s  %s\n", "Mode", "Runs", "Best", "Average", "Height", "Summits")
	fmt.Printf("  %-16s  %-6s  %-8s  %-8s  %-8s  %s\n", "----", "----", "----", "-------", "------", "-------")
	for _, g := range registry.List() {
		s, ok := stats[g.ID]
		if !ok {
			continue
		}
		fmt.Printf("  %-16s  %-6d  %-8d  %-8.0f  %-8.1f  %d\n",
			g.ID, s.GamesCount, s.HighScore, s.AvgScore, s.BestHeight, s.Summits)
	}
}
