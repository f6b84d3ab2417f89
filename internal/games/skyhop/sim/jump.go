package sim

// AutoJumpController is the Grounded/Airborne state machine. It bounces the
// player off every landed platform except breaking ones, tracks which
// moving platform the player rides, and raises the camera-follow signal on
// the first grounding of a run.
type AutoJumpController struct {
	player   *Player
	emit     func(Event)
	followed bool // Camera-follow latch, set on the first grounding
	landed   bool // A landing was handled during the current tick
}

// NewAutoJumpController creates a controller for a player. emit may be nil.
func NewAutoJumpController(player *Player, emit func(Event)) *AutoJumpController {
	if emit == nil {
		emit = func(Event) {}
	}
	return &AutoJumpController{player: player, emit: emit}
}

// Following reports whether the camera-follow signal has fired.
func (c *AutoJumpController) Following() bool {
	return c.followed
}

// BeginTick clears the per-tick landing flag.
func (c *AutoJumpController) BeginTick() {
	c.landed = false
}

// Land handles a classified landing on a platform. It reports whether the
// jump impulse was applied.
func (c *AutoJumpController) Land(p *Platform) bool {
	c.landed = true
	pl := c.player

	if pl.State != Grounded {
		pl.State = Grounded
		c.emit(Event{Type: EventLanded, Entity: p.ID})
		if !c.followed {
			c.followed = true
			c.emit(Event{Type: EventCameraFollow, Entity: p.ID})
		}
	}

	if p.Category.IsMoving() {
		pl.Attached = p.ID
	} else {
		pl.Attached = NoEntity
	}

	if p.Category == CategoryBreaking {
		// Resting: the platform drops the player on its own
		return false
	}

	pl.Attached = NoEntity
	pl.Velocity.Y = pl.JumpForce
	pl.State = Airborne
	c.emit(Event{Type: EventJumped, Entity: p.ID})
	return true
}

// Bounce applies the jump impulse without a platform, as after a stomp.
func (c *AutoJumpController) Bounce() {
	c.player.Attached = NoEntity
	c.player.Velocity.Y = c.player.JumpForce
	c.player.State = Airborne
}

// EndTick leaves Grounded when no landing was handled this tick.
func (c *AutoJumpController) EndTick() {
	if c.landed || c.player.State != Grounded {
		return
	}
	c.player.State = Airborne
	c.player.Attached = NoEntity
}

// Detach drops the ride on a platform, as when it is destroyed.
func (c *AutoJumpController) Detach(platform EntityID) {
	if c.player.Attached == platform {
		c.player.Attached = NoEntity
		if c.player.State == Grounded {
			c.player.State = Airborne
		}
	}
}

// Reset clears the latch and per-tick state for a new run.
func (c *AutoJumpController) Reset(player *Player) {
	c.player = player
	c.followed = false
	c.landed = false
}
