package config

import (
	"math"
	"testing"
)

func TestDifficultyCurveShapes(t *testing.T) {
	for name := range curveShapes {
		t.Run(name, func(t *testing.T) {
			curve := NewDifficultyCurve(DifficultyConfig{
				Enabled:     true,
				Progression: ProgressionConfig{Type: "height", MaxAt: 100},
				Curve:       name,
			})

			if got := curve.Level(0, 0, 0); got != 0 {
				t.Errorf("Level at start = %v, expected 0", got)
			}
			if got := curve.Level(100, 0, 0); math.Abs(got-1) > 1e-12 {
				t.Errorf("Level at max_at = %v, expected 1", got)
			}
			if got := curve.Level(500, 0, 0); math.Abs(got-1) > 1e-12 {
				t.Errorf("Level beyond max_at = %v, expected 1", got)
			}

			prev := -1.0
			for h := 0.0; h <= 120; h += 0.5 {
				level := curve.Level(h, 0, 0)
				if level < prev {
					t.Fatalf("curve decreased at height %v: %v < %v", h, level, prev)
				}
				if level < 0 || level > 1 {
					t.Fatalf("level %v out of range at height %v", level, h)
				}
				prev = level
			}
		})
	}
}

func TestDifficultyCurveInitialLevel(t *testing.T) {
	curve := NewDifficultyCurve(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.4,
		Progression:  ProgressionConfig{Type: "count", MaxAt: 10},
		Curve:        "linear",
	})

	if got := curve.Level(0, 0, 0); got != 0.4 {
		t.Errorf("Level(0) = %v, expected 0.4", got)
	}
	if got := curve.Level(0, 5, 0); math.Abs(got-0.7) > 1e-12 {
		t.Errorf("Level(count 5) = %v, expected 0.7", got)
	}

	curve.SetInitialLevel(2)
	if got := curve.Level(0, 0, 0); got != 1 {
		t.Errorf("SetInitialLevel should clamp, got %v", got)
	}
}

func TestDifficultyCurveDisabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  DifficultyConfig
	}{
		{"disabled", DifficultyConfig{Enabled: false, InitialLevel: 0.3, Progression: ProgressionConfig{Type: "height", MaxAt: 10}}},
		{"none", DifficultyConfig{Enabled: true, InitialLevel: 0.3, Progression: ProgressionConfig{Type: "none"}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			curve := NewDifficultyCurve(tc.cfg)
			if curve.IsEnabled() {
				t.Error("IsEnabled() = true, expected false")
			}
			if got := curve.Level(1000, 1000, 1000); got != 0.3 {
				t.Errorf("Level = %v, expected fixed 0.3", got)
			}
		})
	}
}

func TestDifficultyCurveTime(t *testing.T) {
	curve := NewDifficultyCurve(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "time", MaxAt: 600},
	})
	if got := curve.Progress(0, 0, 300); got != 0.5 {
		t.Errorf("Progress(ticks 300) = %v, expected 0.5", got)
	}
}
