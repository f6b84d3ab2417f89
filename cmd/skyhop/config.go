package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/skyhop/internal/config"
	"github.com/vovakirdan/skyhop/internal/games/skyhop"
)

var flagConfigMode string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration a run would use, after the config file,
the difficulty preset and the mode are applied. The output is valid input for
--config.

Examples:
  skyhop config > tower.yaml
  skyhop config --difficulty hard --mode skyhop_endless`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagConfigMode, "mode", "skyhop", "Game mode: skyhop or skyhop_endless")
}

func runConfig(_ *cobra.Command, _ []string) error {
	mode, err := parseMode(flagConfigMode)
	if err != nil {
		return err
	}

	cfg, err := validated(mode)
	if err != nil {
		return err
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: cannot encode: %w", err)
	}
	_, err = os.Stdout.Write(out)
	return err
}

// parseMode maps a game id to its mode.
func parseMode(id string) (skyhop.GameMode, error) {
	switch id {
	case "skyhop", "":
		return skyhop.ModeCampaign, nil
	case "skyhop_endless":
		return skyhop.ModeEndless, nil
	}
	return skyhop.ModeCampaign, fmt.Errorf("unknown game mode %q", id)
}

// validated is LoadConfig followed by Validate.
func validated(mode skyhop.GameMode) (config.SkyhopConfig, error) {
	cfg, err := skyhop.LoadConfig(mode)
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}
