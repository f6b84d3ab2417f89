package sim

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyhop/internal/config"
	"github.com/vovakirdan/skyhop/internal/core"
)

// Rand is the random source of the generator. *rand.Rand implements it.
type Rand interface {
	Float64() float64
}

// PlatformSpawn describes one generated platform and what comes with it.
type PlatformSpawn struct {
	Index      int
	Prefab     Prefab
	Center     core.Vec2
	Movement   *Movement
	Difficulty float64

	HasEnemy  bool
	EnemyKind EnemyKind
	PowerUp   PowerUpType // PowerUpNone when no pickup spawns
}

// Generator produces the platform stream ahead of the player. Difficulty is
// latched so it never decreases within a run.
type Generator struct {
	cfg      config.SkyhopGenerator
	enemies  config.SkyhopEnemies
	powerups config.SkyhopPowerUps
	catalog  *Catalog
	curve    *config.DifficultyCurve
	rng      Rand
	logger   *log.Logger

	startY     float64
	nextY      float64
	lastY      float64
	count      int
	difficulty float64
}

// NewGenerator creates a generator over a catalog and difficulty curve.
func NewGenerator(cfg config.SkyhopConfig, catalog *Catalog, curve *config.DifficultyCurve, rng Rand, logger *log.Logger) *Generator {
	return &Generator{
		cfg:      cfg.Generator,
		enemies:  cfg.Enemies,
		powerups: cfg.PowerUps,
		catalog:  catalog,
		curve:    curve,
		rng:      rng,
		logger:   logger,
	}
}

// Difficulty returns the latched difficulty of the last spawn.
func (g *Generator) Difficulty() float64 {
	return g.difficulty
}

// Count returns how many platforms were generated, the start platform
// included.
func (g *Generator) Count() int {
	return g.count
}

// LastY returns the height of the most recent platform.
func (g *Generator) LastY() float64 {
	return g.lastY
}

// Done reports whether a finite level has generated all its platforms.
func (g *Generator) Done() bool {
	return g.cfg.TotalCount > 0 && g.count >= g.cfg.TotalCount
}

// Seed starts a run: one Basic platform under the spawn point, then the
// initial platforms spread evenly up to viewTop.
func (g *Generator) Seed(startY, viewTop float64) []PlatformSpawn {
	g.startY = startY
	g.count = 0
	g.difficulty = 0

	start := g.spawnAt(core.V(0, startY), DefaultPrefab)
	if p, ok := PickWeighted(g.catalog.Candidates(0, CategoryBasic), g.rng.Float64()); ok {
		start.Prefab = p
	}
	spawns := []PlatformSpawn{start}

	n := g.cfg.InitialCount
	if g.cfg.TotalCount > 0 && n > g.cfg.TotalCount-1 {
		n = g.cfg.TotalCount - 1
	}
	if n > 0 {
		spacing := (viewTop - startY) / float64(n)
		spacing = core.ClampF(spacing, g.cfg.Gap.Min, g.cfg.Gap.Upper(0))
		for i := 1; i <= n; i++ {
			spawns = append(spawns, g.next(startY+spacing*float64(i), 0))
		}
	}
	g.nextY = g.lastY + g.gap()
	return spawns
}

// Fill generates platforms until the next one would sit above viewTop plus
// the lookahead, or the level is complete.
func (g *Generator) Fill(viewTop float64, ticks int) []PlatformSpawn {
	var spawns []PlatformSpawn
	for !g.Done() && g.nextY < viewTop+g.cfg.Lookahead {
		spawns = append(spawns, g.next(g.nextY, ticks))
		g.nextY = g.lastY + g.gap()
	}
	return spawns
}

// gap samples the vertical distance to the next platform.
func (g *Generator) gap() float64 {
	lo, hi := g.cfg.Gap.Min, g.cfg.Gap.Upper(g.difficulty)
	return lo + (hi-lo)*g.rng.Float64()
}

// next generates the platform at height y.
func (g *Generator) next(y float64, ticks int) PlatformSpawn {
	level := g.curve.Level(y-g.startY, g.count, ticks)
	g.difficulty = math.Max(g.difficulty, level)
	d := g.difficulty

	cat := SelectCategory(g.cfg, d, g.rng.Float64())
	prefab := g.resolvePrefab(cat, d)
	x := -g.cfg.LevelWidth + 2*g.cfg.LevelWidth*g.rng.Float64()

	s := g.spawnAt(core.V(x, y), prefab)
	s.Difficulty = d

	if prefab.Category.IsMoving() {
		speed := g.cfg.MovingSpeed.Min + (g.cfg.MovingSpeed.Upper(d)-g.cfg.MovingSpeed.Min)*g.rng.Float64()
		dist := g.cfg.MovingDistance.Min + (g.cfg.MovingDistance.Upper(d)-g.cfg.MovingDistance.Min)*g.rng.Float64()
		dir := 1.0
		if g.rng.Float64() < 0.5 {
			dir = -1
		}
		s.Movement = &Movement{Speed: speed, Distance: dist, Direction: dir}
	}

	if prefab.Category != CategoryBreaking {
		if g.rng.Float64() < g.enemies.SpawnChance {
			s.HasEnemy = true
			if g.rng.Float64() < g.enemies.FlyingChance {
				s.EnemyKind = EnemyFlying
			}
		} else if g.rng.Float64() < g.powerups.SpawnChance {
			s.PowerUp = g.rollPowerUp()
		}
	}
	return s
}

func (g *Generator) spawnAt(center core.Vec2, prefab Prefab) PlatformSpawn {
	s := PlatformSpawn{Index: g.count, Prefab: prefab, Center: center}
	g.count++
	g.lastY = center.Y
	return s
}

// SelectCategory picks the category for difficulty d and a roll r in
// [0, 1). Below the low-difficulty floor every platform is Basic. Otherwise
// the roll walks the cumulative Breaking, Moving and SingleUse bands.
func SelectCategory(cfg config.SkyhopGenerator, d, r float64) Category {
	if d < cfg.LowDifficultyFloor {
		return CategoryBasic
	}
	threshold := cfg.Breaking.At(d)
	if r < threshold {
		return CategoryBreaking
	}
	threshold += cfg.Moving.At(d)
	if r < threshold {
		return CategoryMoving
	}
	threshold += cfg.SingleUse.At(d)
	if r < threshold {
		return CategorySingleUse
	}
	return CategoryBasic
}

// resolvePrefab picks a catalog entry for a category. The SingleUse band
// covers both single-use categories. When the category has no entry valid
// at d, the chain falls back to Basic, then to any valid entry, then to any
// entry, then to DefaultPrefab.
func (g *Generator) resolvePrefab(cat Category, d float64) Prefab {
	family := []Category{cat}
	if cat == CategorySingleUse {
		family = append(family, CategoryMovingSingleUse)
	}

	chain := [][]Prefab{
		g.catalog.Candidates(d, family...),
		g.catalog.Candidates(d, CategoryBasic),
		g.catalog.ValidAt(d),
		g.catalog.All(),
	}
	for i, candidates := range chain {
		if p, ok := PickWeighted(candidates, g.rng.Float64()); ok {
			if i > 0 {
				g.logger.Debug("catalog fallback", "category", cat, "difficulty", d, "step", i, "prefab", p.Name)
			}
			return p
		}
	}

	g.logger.Warn("catalog is empty, using built-in platform", "category", cat)
	return DefaultPrefab
}

// rollPowerUp picks a pickup type by configured weight. A zero weight sum
// yields the first type.
func (g *Generator) rollPowerUp() PowerUpType {
	weights := []struct {
		Type   PowerUpType
		Weight float64
	}{
		{PowerUpJump, g.powerups.Jump.Weight},
		{PowerUpSlow, g.powerups.Slow.Weight},
		{PowerUpSpeed, g.powerups.Speed.Weight},
		{PowerUpBatWings, g.powerups.BatWings.Weight},
	}

	total := 0.0
	for _, w := range weights {
		total += math.Max(w.Weight, 0)
	}
	if total <= 0 {
		return weights[0].Type
	}

	roll := g.rng.Float64() * total
	cumulative := 0.0
	for _, w := range weights {
		cumulative += math.Max(w.Weight, 0)
		if roll < cumulative {
			return w.Type
		}
	}
	return weights[len(weights)-1].Type
}
