package core

// RuntimeConfig is what the host passes to a game when a run starts.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Fixed simulation ticks per second
	Seed     int64 // RNG seed, 0 lets the host pick one
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// FixedDelta returns the simulation step in seconds.
func (c RuntimeConfig) FixedDelta() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}

// GameState is the summary the host reads after every tick.
type GameState struct {
	Score    int  // Current score
	GameOver bool // The run has ended (fell out of view or reached the summit)
	Won      bool // The run ended at the summit
	Paused   bool // The simulation is paused
}

// StepResult is returned by Game.Step after each tick.
type StepResult struct {
	State GameState
}

// RunSummary is what a host persists when a run ends.
type RunSummary struct {
	Seed    int64
	Height  float64 // Best height above the start
	Ticks   int
	Enemies int // Enemies defeated
	Pickups int // Power-ups collected
	Won     bool
}
