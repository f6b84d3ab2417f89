package config

import (
	_ "embed"
)

//go:embed defaults/skyhop.yaml
var defaultSkyhopYAML []byte

// DefaultSkyhopConfig returns the hardcoded configuration. It matches the
// embedded defaults/skyhop.yaml and is used when that cannot be parsed.
func DefaultSkyhopConfig() SkyhopConfig {
	return SkyhopConfig{
		Physics: SkyhopPhysics{
			Gravity:      20,
			MaxFallSpeed: 18,
			CellSize:     1,
		},
		Player: SkyhopPlayer{
			Width:          0.8,
			Height:         1.0,
			JumpForce:      11,
			MoveSpeed:      6,
			AttackRange:    1.8,
			AttackCooldown: 0.4,
			KnockbackSpeed: 4,
		},
		Camera: SkyhopCamera{
			ViewHeight:     18,
			StartOffset:    2,
			GameOverMargin: 1,
			DestroyMargin:  3,
		},
		Generator: SkyhopGenerator{
			TotalCount:         150,
			InitialCount:       10,
			LevelWidth:         5,
			WrapMargin:         0.5,
			Gap:                RangeBand{Min: 1.0, BaseMax: 1.8, MaxMax: 2.6},
			Lookahead:          4,
			SummitMargin:       3,
			LowDifficultyFloor: 0.05,
			Breaking:           ChanceBand{Base: 0.05, Max: 0.25},
			Moving:             ChanceBand{Base: 0.05, Max: 0.25},
			SingleUse:          ChanceBand{Base: 0.05, Max: 0.20},
			MovingSpeed:        RangeBand{Min: 1.0, BaseMax: 1.5, MaxMax: 3.0},
			MovingDistance:     RangeBand{Min: 1.0, BaseMax: 1.5, MaxMax: 3.0},
			Catalog: []PrefabConfig{
				{Name: "ledge", Category: "basic", Weight: 3, Width: 2.0, MinDifficulty: 0, MaxDifficulty: 1},
				{Name: "perch", Category: "basic", Weight: 1, Width: 1.4, MinDifficulty: 0.3, MaxDifficulty: 1},
				{Name: "crumble", Category: "breaking", Weight: 1, Width: 1.6, MinDifficulty: 0, MaxDifficulty: 1},
				{Name: "shuttle", Category: "moving", Weight: 1, Width: 1.6, MinDifficulty: 0, MaxDifficulty: 1},
				{Name: "cloud", Category: "single_use", Weight: 1, Width: 1.6, MinDifficulty: 0, MaxDifficulty: 1},
				{Name: "drifting-cloud", Category: "moving_single_use", Weight: 0.5, Width: 1.4, MinDifficulty: 0.5, MaxDifficulty: 1},
			},
		},
		Platforms: SkyhopPlatforms{
			Height:       0.3,
			BreakDelay:   0.25,
			FadeDuration: 0.3,
		},
		Collision: SkyhopCollision{
			LandingNormal:      0.5,
			SideHorizontal:     0.7,
			SideVertical:       0.3,
			FirstCheck:         0.2,
			SecondCheck:        0.3,
			ForceEnable:        0.5,
			SeparationDistance: 1.5,
		},
		Enemies: SkyhopEnemies{
			SpawnChance:      0.08,
			FlyingChance:     0.4,
			Width:            0.8,
			Height:           0.8,
			GroundSpeed:      1.2,
			FlySpeed:         2,
			FlyHeight:        1.5,
			FlyRange:         2.5,
			ActivationMargin: 2,
		},
		PowerUps: SkyhopPowerUps{
			SpawnChance: 0.06,
			Size:        0.6,
			AscentSpeed: 8,
			Jump:        PowerUpSpec{Weight: 3, Duration: 15, Multiplier: 1.5},
			Slow:        PowerUpSpec{Weight: 2, Duration: 10, Multiplier: 0.5},
			Speed:       PowerUpSpec{Weight: 3, Duration: 10, Multiplier: 1.5},
			BatWings:    PowerUpSpec{Weight: 1, Duration: 4, Multiplier: 1},
		},
		Score: SkyhopScore{
			HeightMultiplier: 10,
			EnemyBonus:       10,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "height",
				MaxAt: 300,
			},
			Curve: "linear",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultSkyhopYAML
}
