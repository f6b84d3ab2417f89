package sim

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyhop/internal/config"
	"github.com/vovakirdan/skyhop/internal/core"
)

// expiryEpsilon absorbs float drift from subtracting dt every tick.
const expiryEpsilon = 1e-9

// Wing decoration offsets relative to the player center
var wingOffsets = []Decoration{
	{Offset: core.V(-0.7, 0.2), Glyph: '<'},
	{Offset: core.V(0.7, 0.2), Glyph: '>'},
}

type activation struct {
	kind       PowerUpType
	duration   float64
	multiplier float64
}

// PowerUpCoordinator holds the single active power-up of a run. Activating
// a type while another is active first deactivates the old one completely;
// multipliers always apply to the player's baseline stats.
type PowerUpCoordinator struct {
	cfg    config.SkyhopPowerUps
	logger *log.Logger
	emit   func(Event)
	nextID func() EntityID

	player     *Player
	active     PowerUpType
	remaining  float64
	multiplier float64
	enemies    []*Enemy
	wings      []Decoration

	deactivating bool
	pending      *activation // Activation requested while deactivating
}

// NewPowerUpCoordinator creates a coordinator. nextID allocates ids for
// decorations; emit may be nil.
func NewPowerUpCoordinator(cfg config.SkyhopPowerUps, player *Player, nextID func() EntityID, logger *log.Logger, emit func(Event)) *PowerUpCoordinator {
	if emit == nil {
		emit = func(Event) {}
	}
	return &PowerUpCoordinator{
		cfg:        cfg,
		logger:     logger,
		emit:       emit,
		nextID:     nextID,
		player:     player,
		multiplier: 1,
	}
}

// Spec returns the configured duration and multiplier of a type.
func (c *PowerUpCoordinator) Spec(t PowerUpType) config.PowerUpSpec {
	switch t {
	case PowerUpJump:
		return c.cfg.Jump
	case PowerUpSlow:
		return c.cfg.Slow
	case PowerUpSpeed:
		return c.cfg.Speed
	case PowerUpBatWings:
		return c.cfg.BatWings
	default:
		return config.PowerUpSpec{Multiplier: 1}
	}
}

// Active returns the active type, PowerUpNone when idle.
func (c *PowerUpCoordinator) Active() PowerUpType {
	return c.active
}

// Remaining returns the seconds left on the active power-up.
func (c *PowerUpCoordinator) Remaining() float64 {
	return c.remaining
}

// Multiplier returns the multiplier of the active power-up, 1 when idle.
func (c *PowerUpCoordinator) Multiplier() float64 {
	return c.multiplier
}

// Wings returns the wing decorations spawned by bat wings.
func (c *PowerUpCoordinator) Wings() []Decoration {
	return c.wings
}

// Ascending reports whether the forced ascent of bat wings is on.
func (c *PowerUpCoordinator) Ascending() bool {
	return c.active == PowerUpBatWings
}

// ActivateDefault activates a type with its configured duration and
// multiplier.
func (c *PowerUpCoordinator) ActivateDefault(t PowerUpType) {
	spec := c.Spec(t)
	c.Activate(t, spec.Duration, spec.Multiplier)
}

// Activate installs a power-up. A non-positive multiplier falls back to the
// configured one. Called during a deactivation, the request is queued and
// runs once the deactivation has finished.
func (c *PowerUpCoordinator) Activate(t PowerUpType, duration, multiplier float64) {
	if c.deactivating {
		c.pending = &activation{kind: t, duration: duration, multiplier: multiplier}
		return
	}
	if t == PowerUpNone {
		c.Deactivate()
		return
	}
	if c.active != PowerUpNone {
		c.Deactivate()
	}
	if multiplier <= 0 {
		multiplier = c.Spec(t).Multiplier
	}
	if multiplier <= 0 {
		multiplier = 1
	}

	c.active = t
	c.remaining = duration
	c.multiplier = multiplier

	switch t {
	case PowerUpJump:
		c.player.JumpForce = c.player.BaseJumpForce * multiplier
	case PowerUpSpeed:
		c.player.MoveSpeed = c.player.BaseMoveSpeed * multiplier
	case PowerUpSlow:
		for _, e := range c.enemies {
			e.SpeedScale = multiplier
		}
	case PowerUpBatWings:
		c.wings = c.wings[:0]
		for _, w := range wingOffsets {
			w.ID = c.nextID()
			c.wings = append(c.wings, w)
		}
		c.player.Attached = NoEntity
		c.player.Velocity.Y = c.cfg.AscentSpeed
	}

	c.emit(Event{Type: EventPowerUpActivated, PowerUp: t})
	c.logger.Debug("powerup activated", "type", t, "duration", duration, "multiplier", multiplier)
}

// Tick counts the active power-up down and deactivates it once expired.
func (c *PowerUpCoordinator) Tick(dt float64) {
	if c.active == PowerUpNone {
		return
	}
	c.remaining -= dt
	if c.remaining <= expiryEpsilon {
		c.Deactivate()
	}
}

// Deactivate restores every effect of the active power-up. Afterwards no
// power-up is active and the player's stats equal the baseline.
func (c *PowerUpCoordinator) Deactivate() {
	if c.active == PowerUpNone || c.deactivating {
		return
	}
	c.deactivating = true
	ended := c.active

	switch ended {
	case PowerUpSlow:
		for _, e := range c.enemies {
			e.SpeedScale = 1
		}
	case PowerUpBatWings:
		c.wings = c.wings[:0]
	}
	c.player.JumpForce = c.player.BaseJumpForce
	c.player.MoveSpeed = c.player.BaseMoveSpeed

	c.active = PowerUpNone
	c.remaining = 0
	c.multiplier = 1
	c.emit(Event{Type: EventPowerUpExpired, PowerUp: ended})
	c.logger.Debug("powerup deactivated", "type", ended)
	c.deactivating = false

	if next := c.pending; next != nil {
		c.pending = nil
		c.Activate(next.kind, next.duration, next.multiplier)
	}
}

// RegisterEnemy tracks an enemy for the slow effect and applies the effect
// right away when Slow is active.
func (c *PowerUpCoordinator) RegisterEnemy(e *Enemy) {
	e.SpeedScale = 1
	if c.active == PowerUpSlow {
		e.SpeedScale = c.multiplier
	}
	c.enemies = append(c.enemies, e)
}

// UnregisterEnemy stops tracking an enemy.
func (c *PowerUpCoordinator) UnregisterEnemy(id EntityID) {
	for i, e := range c.enemies {
		if e.ID == id {
			c.enemies = append(c.enemies[:i], c.enemies[i+1:]...)
			return
		}
	}
}

// Reset drops every effect without restoring, for a new run.
func (c *PowerUpCoordinator) Reset(player *Player) {
	c.player = player
	c.active = PowerUpNone
	c.remaining = 0
	c.multiplier = 1
	c.enemies = nil
	c.wings = nil
	c.deactivating = false
	c.pending = nil
}
