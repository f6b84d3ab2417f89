// Package config provides YAML-based configuration loading and difficulty
// progression for skyhop.
package config

import (
	"errors"
	"fmt"
)

// SkyhopConfig contains all tunables of the simulation.
type SkyhopConfig struct {
	Physics    SkyhopPhysics    `yaml:"physics"`
	Player     SkyhopPlayer     `yaml:"player"`
	Camera     SkyhopCamera     `yaml:"camera"`
	Generator  SkyhopGenerator  `yaml:"generator"`
	Platforms  SkyhopPlatforms  `yaml:"platforms"`
	Collision  SkyhopCollision  `yaml:"collision"`
	Enemies    SkyhopEnemies    `yaml:"enemies"`
	PowerUps   SkyhopPowerUps   `yaml:"powerups"`
	Score      SkyhopScore      `yaml:"score"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// SkyhopPhysics defines world physics in world units and seconds.
type SkyhopPhysics struct {
	Gravity      float64 `yaml:"gravity"`        // Downward acceleration, u/s²
	MaxFallSpeed float64 `yaml:"max_fall_speed"` // Terminal fall speed, u/s
	CellSize     int     `yaml:"cell_size"`      // Broad-phase grid cell, world units
}

// SkyhopPlayer defines the player body and its baseline stats.
type SkyhopPlayer struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	JumpForce      float64 `yaml:"jump_force"`      // Baseline upward speed applied on landing
	MoveSpeed      float64 `yaml:"move_speed"`      // Baseline horizontal speed at full axis
	AttackRange    float64 `yaml:"attack_range"`    // Center distance for the attack trigger
	AttackCooldown float64 `yaml:"attack_cooldown"` // Seconds between attacks
	KnockbackSpeed float64 `yaml:"knockback_speed"` // Horizontal push after an enemy hit
}

// SkyhopCamera defines the viewport and the lines relative to it.
type SkyhopCamera struct {
	ViewHeight     float64 `yaml:"view_height"`      // Visible world height
	StartOffset    float64 `yaml:"start_offset"`     // Camera starts this far below the player
	GameOverMargin float64 `yaml:"game_over_margin"` // Distance below the view that ends the run
	DestroyMargin  float64 `yaml:"destroy_margin"`   // Distance below the view where entities are removed
}

// ChanceBand is a probability that grows linearly from Base at difficulty 0
// to Max at difficulty 1.
type ChanceBand struct {
	Base float64 `yaml:"base"`
	Max  float64 `yaml:"max"`
}

// At returns the band's probability at difficulty d.
func (b ChanceBand) At(d float64) float64 {
	return b.Base + (b.Max-b.Base)*clampF(d, 0, 1)
}

// RangeBand is a value range [Min, upper(d)] whose upper bound widens from
// BaseMax at difficulty 0 to MaxMax at difficulty 1.
type RangeBand struct {
	Min     float64 `yaml:"min"`
	BaseMax float64 `yaml:"base_max"`
	MaxMax  float64 `yaml:"max_max"`
}

// Upper returns the upper bound of the range at difficulty d.
func (r RangeBand) Upper(d float64) float64 {
	return r.BaseMax + (r.MaxMax-r.BaseMax)*clampF(d, 0, 1)
}

// PrefabConfig is one entry of the platform catalog.
type PrefabConfig struct {
	Name          string  `yaml:"name"`
	Category      string  `yaml:"category"` // basic, breaking, moving, single_use, moving_single_use
	Weight        float64 `yaml:"weight"`
	Width         float64 `yaml:"width"`
	MinDifficulty float64 `yaml:"min_difficulty"`
	MaxDifficulty float64 `yaml:"max_difficulty"`
}

// SkyhopGenerator defines procedural level generation.
type SkyhopGenerator struct {
	TotalCount         int            `yaml:"total_count"`          // 0 generates forever
	InitialCount       int            `yaml:"initial_count"`        // Platforms placed at reset
	LevelWidth         float64        `yaml:"level_width"`          // Platforms spawn within ±level_width
	WrapMargin         float64        `yaml:"wrap_margin"`          // Player wraps beyond ±(level_width+wrap_margin)
	Gap                RangeBand      `yaml:"gap"`                  // Vertical distance between consecutive platforms
	Lookahead          float64        `yaml:"lookahead"`            // Generate while next y < view top + lookahead
	SummitMargin       float64        `yaml:"summit_margin"`        // Campaign win height above the last platform
	LowDifficultyFloor float64        `yaml:"low_difficulty_floor"` // Below this only Basic platforms spawn
	Breaking           ChanceBand     `yaml:"breaking"`
	Moving             ChanceBand     `yaml:"moving"`
	SingleUse          ChanceBand     `yaml:"single_use"`
	MovingSpeed        RangeBand      `yaml:"moving_speed"`
	MovingDistance     RangeBand      `yaml:"moving_distance"`
	Catalog            []PrefabConfig `yaml:"catalog"`
}

// SkyhopPlatforms defines per-category platform behavior.
type SkyhopPlatforms struct {
	Height       float64 `yaml:"height"`
	BreakDelay   float64 `yaml:"break_delay"`   // Seconds from landing until a breaking platform gives way
	FadeDuration float64 `yaml:"fade_duration"` // Seconds a used single-use platform takes to vanish
}

// SkyhopCollision defines contact classification and the re-enable ladder.
type SkyhopCollision struct {
	LandingNormal      float64 `yaml:"landing_normal"`      // normal.y above this is a landing
	SideHorizontal     float64 `yaml:"side_horizontal"`     // |normal.x| above this ...
	SideVertical       float64 `yaml:"side_vertical"`       // ... and |normal.y| below this is a side hit
	FirstCheck         float64 `yaml:"first_check"`         // Seconds until the first re-enable check
	SecondCheck        float64 `yaml:"second_check"`        // Seconds from the first to the second check
	ForceEnable        float64 `yaml:"force_enable"`        // Seconds from the second check to the forced re-enable
	SeparationDistance float64 `yaml:"separation_distance"` // Center distance that counts as separated
}

// SkyhopEnemies defines enemy spawning and movement.
type SkyhopEnemies struct {
	SpawnChance      float64 `yaml:"spawn_chance"`  // Per non-breaking platform
	FlyingChance     float64 `yaml:"flying_chance"` // Share of spawned enemies that fly
	Width            float64 `yaml:"width"`
	Height           float64 `yaml:"height"`
	GroundSpeed      float64 `yaml:"ground_speed"`
	FlySpeed         float64 `yaml:"fly_speed"`
	FlyHeight        float64 `yaml:"fly_height"`
	FlyRange         float64 `yaml:"fly_range"`
	ActivationMargin float64 `yaml:"activation_margin"` // View expansion for activation
}

// PowerUpSpec configures one power-up type.
type PowerUpSpec struct {
	Weight     float64 `yaml:"weight"`
	Duration   float64 `yaml:"duration"`   // Seconds
	Multiplier float64 `yaml:"multiplier"` // Stat multiplier (Slow: enemy speed factor)
}

// SkyhopPowerUps defines pickup spawning and effects.
type SkyhopPowerUps struct {
	SpawnChance float64     `yaml:"spawn_chance"` // Per non-breaking platform
	Size        float64     `yaml:"size"`
	AscentSpeed float64     `yaml:"ascent_speed"` // Forced climb speed while bat wings are active
	Jump        PowerUpSpec `yaml:"jump"`
	Slow        PowerUpSpec `yaml:"slow"`
	Speed       PowerUpSpec `yaml:"speed"`
	BatWings    PowerUpSpec `yaml:"bat_wings"`
}

// SkyhopScore defines scoring.
type SkyhopScore struct {
	HeightMultiplier float64 `yaml:"height_multiplier"` // Points per world unit climbed
	EnemyBonus       int     `yaml:"enemy_bonus"`       // Points per defeated enemy
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Curve        string            `yaml:"curve"` // linear, smoothstep, ease_in
}

// ProgressionConfig defines what drives difficulty up.
type ProgressionConfig struct {
	Type  string  `yaml:"type"`   // "height", "count", "time" or "none"
	MaxAt float64 `yaml:"max_at"` // Height, platform count or ticks at which the curve reaches 1
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown strings yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.2
	case DifficultyHard:
		return 0.5
	default:
		return 0.0
	}
}

// Validate reports every inconsistency in the configuration as one joined
// error.
func (c SkyhopConfig) Validate() error {
	var errs []error

	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		errs = append(errs, errors.New("player size must be positive"))
	}
	if c.Player.JumpForce <= 0 {
		errs = append(errs, errors.New("player jump_force must be positive"))
	}
	if c.Physics.Gravity <= 0 {
		errs = append(errs, errors.New("physics gravity must be positive"))
	}
	if c.Camera.ViewHeight <= 0 {
		errs = append(errs, errors.New("camera view_height must be positive"))
	}
	if c.Generator.Gap.Min <= 0 {
		errs = append(errs, errors.New("generator gap.min must be positive"))
	}
	if c.Generator.LevelWidth <= 0 {
		errs = append(errs, errors.New("generator level_width must be positive"))
	}
	if c.Generator.TotalCount < 0 || c.Generator.InitialCount < 1 {
		errs = append(errs, errors.New("generator needs initial_count >= 1 and total_count >= 0"))
	}
	for name, band := range map[string]ChanceBand{
		"breaking":   c.Generator.Breaking,
		"moving":     c.Generator.Moving,
		"single_use": c.Generator.SingleUse,
	} {
		if band.Base < 0 || band.Max < band.Base || band.Max > 1 {
			errs = append(errs, fmt.Errorf("generator %s chance must satisfy 0 <= base <= max <= 1", name))
		}
	}
	if sum := c.Generator.Breaking.Max + c.Generator.Moving.Max + c.Generator.SingleUse.Max; sum > 1 {
		errs = append(errs, fmt.Errorf("generator category chances sum to %.2f at max difficulty", sum))
	}
	for name, r := range map[string]RangeBand{
		"gap":             c.Generator.Gap,
		"moving_speed":    c.Generator.MovingSpeed,
		"moving_distance": c.Generator.MovingDistance,
	} {
		if r.Min < 0 || r.BaseMax < r.Min || r.MaxMax < r.BaseMax {
			errs = append(errs, fmt.Errorf("generator %s must satisfy 0 <= min <= base_max <= max_max", name))
		}
	}
	for i, p := range c.Generator.Catalog {
		if _, ok := categoryNames[p.Category]; !ok {
			errs = append(errs, fmt.Errorf("catalog entry %d (%s): unknown category %q", i, p.Name, p.Category))
		}
		if p.Weight < 0 || p.Width <= 0 {
			errs = append(errs, fmt.Errorf("catalog entry %d (%s): weight must be >= 0 and width > 0", i, p.Name))
		}
	}
	col := c.Collision
	if col.FirstCheck <= 0 || col.SecondCheck <= 0 || col.ForceEnable <= 0 {
		errs = append(errs, errors.New("collision re-enable ladder steps must be positive"))
	}
	if c.Difficulty.InitialLevel < 0 || c.Difficulty.InitialLevel > 1 {
		errs = append(errs, errors.New("difficulty initial_level must be within [0, 1]"))
	}
	if _, ok := curveShapes[c.Difficulty.Curve]; !ok && c.Difficulty.Curve != "" {
		errs = append(errs, fmt.Errorf("difficulty curve %q is unknown", c.Difficulty.Curve))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// categoryNames lists the catalog category spellings accepted in YAML.
var categoryNames = map[string]struct{}{
	"basic":             {},
	"breaking":          {},
	"moving":            {},
	"single_use":        {},
	"moving_single_use": {},
}
