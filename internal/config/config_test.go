package config

import (
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parseSkyhop(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultSkyhopConfig()) {
		t.Errorf("embedded YAML and DefaultSkyhopConfig() differ:\n%+v\n%+v", cfg, DefaultSkyhopConfig())
	}
}

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultSkyhopConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SkyhopConfig)
	}{
		{"zero gravity", func(c *SkyhopConfig) { c.Physics.Gravity = 0 }},
		{"max below base", func(c *SkyhopConfig) { c.Generator.Moving = ChanceBand{Base: 0.3, Max: 0.1} }},
		{"bands over one", func(c *SkyhopConfig) {
			c.Generator.Breaking.Max = 0.5
			c.Generator.Moving.Max = 0.5
			c.Generator.SingleUse.Max = 0.5
		}},
		{"unknown category", func(c *SkyhopConfig) { c.Generator.Catalog[0].Category = "bouncy" }},
		{"negative weight", func(c *SkyhopConfig) { c.Generator.Catalog[0].Weight = -1 }},
		{"zero ladder step", func(c *SkyhopConfig) { c.Collision.SecondCheck = 0 }},
		{"unknown curve", func(c *SkyhopConfig) { c.Difficulty.Curve = "cubic" }},
		{"narrow gap range", func(c *SkyhopConfig) { c.Generator.Gap = RangeBand{Min: 2, BaseMax: 1, MaxMax: 3} }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultSkyhopConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, expected an error")
			}
		})
	}
}

func TestLoadSkyhopCustomPathOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("player:\n  jump_force: 14\ngenerator:\n  total_count: 0\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSkyhop(path)
	if err != nil {
		t.Fatalf("LoadSkyhop() failed: %v", err)
	}
	if cfg.Player.JumpForce != 14 {
		t.Errorf("JumpForce = %v, expected 14", cfg.Player.JumpForce)
	}
	if cfg.Generator.TotalCount != 0 {
		t.Errorf("TotalCount = %d, expected 0", cfg.Generator.TotalCount)
	}
	// Untouched keys keep their defaults
	if cfg.Player.MoveSpeed != DefaultSkyhopConfig().Player.MoveSpeed {
		t.Errorf("MoveSpeed = %v, expected default", cfg.Player.MoveSpeed)
	}
}

func TestLoadSkyhopErrors(t *testing.T) {
	if _, err := LoadSkyhop(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("physics:\n  gravity: -3\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSkyhop(path); err == nil {
		t.Error("expected validation error for negative gravity")
	}
}

func TestApplySkyhopPreset(t *testing.T) {
	base := DefaultSkyhopConfig()

	fixed := DefaultSkyhopConfig()
	ApplySkyhopPreset(&fixed, DifficultyFixed)
	if fixed.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}

	hard := DefaultSkyhopConfig()
	ApplySkyhopPreset(&hard, DifficultyHard)
	if hard.Difficulty.InitialLevel != 0.5 {
		t.Errorf("hard initial level = %v, expected 0.5", hard.Difficulty.InitialLevel)
	}
	if hard.Enemies.SpawnChance <= base.Enemies.SpawnChance {
		t.Error("hard preset should raise enemy spawn chance")
	}

	none := DefaultSkyhopConfig()
	ApplySkyhopPreset(&none, "")
	if !reflect.DeepEqual(none, base) {
		t.Error("empty preset should leave config unchanged")
	}

	if ParsePreset("normal") != DifficultyNormal || ParsePreset("insane") != "" {
		t.Error("ParsePreset mapping wrong")
	}
}

func TestBands(t *testing.T) {
	b := ChanceBand{Base: 0.05, Max: 0.25}
	if math.Abs(b.At(0)-0.05) > 1e-12 || math.Abs(b.At(1)-0.25) > 1e-12 {
		t.Errorf("ChanceBand endpoints = %v, %v", b.At(0), b.At(1))
	}
	if math.Abs(b.At(0.5)-0.15) > 1e-12 {
		t.Errorf("ChanceBand.At(0.5) = %v, expected 0.15", b.At(0.5))
	}
	if b.At(2) != b.At(1) {
		t.Error("ChanceBand.At should clamp difficulty")
	}

	r := RangeBand{Min: 1, BaseMax: 1.5, MaxMax: 3}
	if r.Upper(0) != 1.5 || r.Upper(1) != 3 {
		t.Errorf("RangeBand.Upper endpoints = %v, %v", r.Upper(0), r.Upper(1))
	}
}
