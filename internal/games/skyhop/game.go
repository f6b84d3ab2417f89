// Package skyhop adapts the platformer simulation to the arcade Game
// interface: it owns a sim.World, maps host input to simulation input and
// draws the world into the character screen.
package skyhop

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyhop/internal/config"
	"github.com/vovakirdan/skyhop/internal/core"
	"github.com/vovakirdan/skyhop/internal/games/skyhop/sim"
	"github.com/vovakirdan/skyhop/internal/registry"
)

// Game states
const (
	StatePlaying  = "playing"  // Simulation running
	StatePaused   = "paused"   // Simulation frozen
	StateGameOver = "gameover" // Fell out of view
	StateWin      = "win"      // Reached the summit (campaign only)
)

// GameMode represents the game mode.
type GameMode int

const (
	ModeCampaign GameMode = iota // Finite tower with a summit
	ModeEndless                  // Generate forever, score until game over
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// logger receives simulation diagnostics; discarded unless set.
var logger *log.Logger

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetLogger sets the logger passed to new worlds.
func SetLogger(l *log.Logger) {
	logger = l
}

// Logger returns the logger set with SetLogger, or nil.
func Logger() *log.Logger {
	return logger
}

// LoadConfig resolves the configuration the way Reset does: config file,
// preset, then the mode override.
func LoadConfig(mode GameMode) (config.SkyhopConfig, error) {
	cfg, err := config.LoadSkyhop(configPath)
	if err != nil {
		return config.DefaultSkyhopConfig(), err
	}
	config.ApplySkyhopPreset(&cfg, difficultyPreset)
	if mode == ModeEndless {
		cfg.Generator.TotalCount = 0
	}
	return cfg, nil
}

// Game implements the Skyhop game.
type Game struct {
	mode    GameMode
	state   string
	runtime core.RuntimeConfig
	cfg     config.SkyhopConfig
	world   *sim.World

	lastEvent  sim.EventType // Latest notable event, shown in the HUD
	eventTicks int           // Ticks the HUD keeps showing lastEvent
	hasEvent   bool

	minScreenW     int
	minScreenH     int
	screenTooSmall bool
}

// New creates a new Skyhop game instance (campaign mode).
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewEndless creates a new Skyhop game instance in endless mode.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "skyhop_endless"
	}
	return "skyhop"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Skyhop (Endless)"
	}
	return "Skyhop"
}

// Mode returns the game mode.
func (g *Game) Mode() GameMode {
	return g.mode
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := LoadConfig(g.mode)
	if err != nil && logger != nil {
		logger.Warn("using default config", "err", err)
	}
	g.cfg = cfg

	g.minScreenW = 30
	g.minScreenH = 15
	g.screenTooSmall = runtime.ScreenW < g.minScreenW || runtime.ScreenH < g.minScreenH

	opts := []sim.Option{}
	if logger != nil {
		opts = append(opts, sim.WithLogger(logger))
	}
	g.world = sim.NewWorld(cfg, runtime.Seed, runtime.FixedDelta(), opts...)
	g.state = StatePlaying
	g.hasEvent = false
	g.eventTicks = 0
}

// World returns the running simulation.
func (g *Game) World() *sim.World {
	return g.world
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) && (g.state == StateGameOver || g.state == StateWin) {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		switch g.state {
		case StatePaused:
			g.state = StatePlaying
		case StatePlaying:
			g.state = StatePaused
		}
	}
	if g.state != StatePlaying {
		return core.StepResult{State: g.State()}
	}

	if g.eventTicks > 0 {
		g.eventTicks--
	}
	for _, e := range g.world.Step(in) {
		g.observe(e)
	}

	if g.world.Over() {
		g.state = StateGameOver
		if g.world.Won() {
			g.state = StateWin
		}
	}
	return core.StepResult{State: g.State()}
}

// observe keeps the HUD message for events worth showing.
func (g *Game) observe(e sim.Event) {
	switch e.Type {
	case sim.EventPowerUpActivated, sim.EventPowerUpExpired, sim.EventEnemyDefeated,
		sim.EventPlayerHit, sim.EventPlatformBroken:
		g.lastEvent = e.Type
		g.hasEvent = true
		g.eventTicks = g.runtime.TickRate
		if g.eventTicks <= 0 {
			g.eventTicks = 60
		}
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	s := core.GameState{
		Paused:   g.state == StatePaused,
		GameOver: g.state == StateGameOver || g.state == StateWin,
		Won:      g.state == StateWin,
	}
	if g.world != nil {
		s.Score = g.world.Score()
	}
	return s
}

// Summary returns the run statistics for persistence.
func (g *Game) Summary() core.RunSummary {
	if g.world == nil {
		return core.RunSummary{}
	}
	return core.RunSummary{
		Seed:    g.world.Seed(),
		Height:  g.world.MaxHeight(),
		Ticks:   g.world.Ticks(),
		Enemies: g.world.EnemiesDefeated(),
		Pickups: g.world.PickupsCollected(),
		Won:     g.world.Won(),
	}
}

// Register the games with the registry
func init() {
	registry.Register("skyhop", func() registry.Game {
		return New()
	})
	registry.Register("skyhop_endless", func() registry.Game {
		return NewEndless()
	})
}
