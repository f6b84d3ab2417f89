package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// configFile is the file name looked up in the config directories.
const configFile = "skyhop.yaml"

// LoadSkyhop loads the simulation configuration.
// Search order: customPath -> ~/.skyhop/configs/skyhop.yaml ->
// ./configs/skyhop.yaml -> embedded default -> hardcoded default.
// Files are overlaid on the defaults, so a partial file only overrides the
// keys it names.
func LoadSkyhop(customPath string) (SkyhopConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return SkyhopConfig{}, fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		cfg, err := parseSkyhop(data)
		if err != nil {
			return SkyhopConfig{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseSkyhop(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", configFile)); err == nil {
		if cfg, err := parseSkyhop(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := parseSkyhop(defaultSkyhopYAML)
	if err != nil {
		return DefaultSkyhopConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseSkyhop overlays YAML onto the hardcoded defaults and validates the
// result.
func parseSkyhop(data []byte) (SkyhopConfig, error) {
	cfg := DefaultSkyhopConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SkyhopConfig{}, fmt.Errorf("cannot parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return SkyhopConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home
// is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".skyhop", "configs", filename)
}

// ApplySkyhopPreset modifies the config based on a difficulty preset.
func ApplySkyhopPreset(cfg *SkyhopConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	switch preset {
	case DifficultyEasy:
		cfg.Enemies.SpawnChance /= 2
		cfg.PowerUps.SpawnChance *= 1.5
		cfg.Camera.GameOverMargin += 1
	case DifficultyHard:
		cfg.Enemies.SpawnChance *= 1.5
		cfg.PowerUps.SpawnChance /= 2
		cfg.Difficulty.Curve = "smoothstep"
	}
}
