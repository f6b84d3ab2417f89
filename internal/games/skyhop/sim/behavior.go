package sim

import (
	"math"

	"github.com/vovakirdan/skyhop/internal/core"
	"github.com/vovakirdan/skyhop/internal/games/skyhop/physics"
)

// Thresholds of the feet-first test for single-use platforms
const (
	singleUseMinFall  = 0.1 // Relative vertical speed must be below -this
	singleUseNormal   = 0.5 // Platform-side normal y must be below -this
	singleUseFeetSlop = 0.1 // Contact point distance to the player's feet
)

// PlatformBehavior is the per-category strategy of a platform.
type PlatformBehavior interface {
	// Landed runs when the player lands on the platform.
	Landed(w *World, p *Platform, c physics.Contact)
	// Update advances the platform by one tick.
	Update(w *World, p *Platform, dt float64)
}

// defaultBehaviors returns the behavior table, one entry per category.
func defaultBehaviors() map[Category]PlatformBehavior {
	return map[Category]PlatformBehavior{
		CategoryBasic:           basicBehavior{},
		CategoryBreaking:        breakingBehavior{},
		CategoryMoving:          movingBehavior{},
		CategorySingleUse:       singleUseBehavior{},
		CategoryMovingSingleUse: movingSingleUseBehavior{},
	}
}

type basicBehavior struct{}

func (basicBehavior) Landed(_ *World, p *Platform, _ physics.Contact) {
	p.LandedOn = true
}

func (basicBehavior) Update(*World, *Platform, float64) {}

// breakingBehavior gives way a fixed delay after the first landing, then
// falls with its collider off.
type breakingBehavior struct{}

func (breakingBehavior) Landed(w *World, p *Platform, _ physics.Contact) {
	p.LandedOn = true
	if p.Breaking {
		return
	}
	p.Breaking = true
	id := p.ID
	w.sched.After(w.cfg.Platforms.BreakDelay, id, func() {
		p.Broken = true
		w.space.SetEnabled(physics.BodyID(id), false)
		w.jump.Detach(id)
		w.emit(Event{Type: EventPlatformBroken, Entity: id})
	})
}

func (breakingBehavior) Update(w *World, p *Platform, dt float64) {
	if !p.Broken {
		return
	}
	p.Velocity.Y = math.Max(p.Velocity.Y-w.cfg.Physics.Gravity*dt, -w.cfg.Physics.MaxFallSpeed)
	w.movePlatform(p, core.V(0, p.Velocity.Y*dt))
}

// movingBehavior oscillates horizontally around the platform origin and
// carries an attached player along.
type movingBehavior struct{}

func (movingBehavior) Landed(_ *World, p *Platform, _ physics.Contact) {
	p.LandedOn = true
}

func (movingBehavior) Update(w *World, p *Platform, dt float64) {
	m := p.Movement
	if m == nil || m.Speed <= 0 || m.Distance <= 0 {
		return
	}
	m.Offset += m.Direction * m.Speed * dt
	if m.Offset > m.Distance {
		m.Offset = m.Distance
		m.Direction = -1
	} else if m.Offset < -m.Distance {
		m.Offset = -m.Distance
		m.Direction = 1
	}
	p.Velocity.X = m.Direction * m.Speed

	delta := core.V(p.OriginX+m.Offset-p.Box.Center.X, 0)
	w.movePlatform(p, delta)
	if w.player.Attached == p.ID {
		w.carryPlayer(delta)
	}
}

// singleUseBehavior vanishes after one feet-first landing: the collider
// goes off at once and the platform fades out before removal.
type singleUseBehavior struct{}

func (singleUseBehavior) Landed(w *World, p *Platform, c physics.Contact) {
	if p.LandedOn || !FeetFirst(c, w.player.Box) {
		return
	}
	p.LandedOn = true
	p.Fading = true
	p.fadeLeft = w.cfg.Platforms.FadeDuration
	w.space.SetEnabled(physics.BodyID(p.ID), false)

	id := p.ID
	w.sched.After(w.cfg.Platforms.FadeDuration, id, func() {
		w.emit(Event{Type: EventPlatformConsumed, Entity: id})
		w.destroyPlatform(id)
	})
}

func (singleUseBehavior) Update(w *World, p *Platform, dt float64) {
	if !p.Fading {
		return
	}
	p.fadeLeft = math.Max(p.fadeLeft-dt, 0)
	if d := w.cfg.Platforms.FadeDuration; d > 0 {
		p.Alpha = p.fadeLeft / d
	} else {
		p.Alpha = 0
	}
}

type movingSingleUseBehavior struct{}

func (movingSingleUseBehavior) Landed(w *World, p *Platform, c physics.Contact) {
	singleUseBehavior{}.Landed(w, p, c)
}

func (movingSingleUseBehavior) Update(w *World, p *Platform, dt float64) {
	movingBehavior{}.Update(w, p, dt)
	singleUseBehavior{}.Update(w, p, dt)
}

// FeetFirst is the strict landing test of single-use platforms: the player
// falls onto the platform and one contact, seen from the platform, has a
// downward normal and lies at the player's feet.
func FeetFirst(c physics.Contact, player core.Box) bool {
	if c.RelativeVelocity.Y >= -singleUseMinFall {
		return false
	}
	feet := player.Bottom()
	for _, p := range c.Points {
		// Contact normals point into the player; the platform sees the opposite
		if -p.Normal.Y < -singleUseNormal && math.Abs(p.Point.Y-feet) <= singleUseFeetSlop {
			return true
		}
	}
	return false
}
