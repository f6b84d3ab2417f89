package config

import "math"

// curveShapes maps curve names to easing functions on [0, 1]. Every shape is
// non-decreasing with shape(0) = 0 and shape(1) = 1.
var curveShapes = map[string]func(float64) float64{
	"linear":     func(p float64) float64 { return p },
	"smoothstep": func(p float64) float64 { return p * p * (3 - 2*p) },
	"ease_in":    func(p float64) float64 { return p * p },
}

// DifficultyCurve maps generation progress to a difficulty in [0, 1].
// It is a pure function of its inputs; callers that need monotonicity
// across calls latch the maximum themselves.
type DifficultyCurve struct {
	cfg          DifficultyConfig
	initialLevel float64
	shape        func(float64) float64
}

// NewDifficultyCurve creates a curve from the difficulty configuration.
func NewDifficultyCurve(cfg DifficultyConfig) *DifficultyCurve {
	shape, ok := curveShapes[cfg.Curve]
	if !ok {
		shape = curveShapes["linear"]
	}
	return &DifficultyCurve{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0, 1),
		shape:        shape,
	}
}

// SetInitialLevel overrides the starting difficulty (0.0 to 1.0).
func (d *DifficultyCurve) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// IsEnabled returns whether difficulty progresses at all.
func (d *DifficultyCurve) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Progress returns the raw progress in [0, 1] for the configured driver.
func (d *DifficultyCurve) Progress(height float64, count, ticks int) float64 {
	maxAt := d.cfg.Progression.MaxAt
	if maxAt <= 0 {
		maxAt = 1
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "height":
		progress = height / maxAt
	case "count":
		progress = float64(count) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return 0
	}
	return clampF(progress, 0, 1)
}

// Level returns the difficulty for the given generation progress: the
// initial level plus the shaped progress over the remaining range.
func (d *DifficultyCurve) Level(height float64, count, ticks int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}
	p := d.shape(d.Progress(height, count, ticks))
	return clampF(d.initialLevel+p*(1.0-d.initialLevel), 0, 1)
}

// clampF restricts a float64 to [lo, hi].
func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
