package sim

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyhop/internal/config"
	"github.com/vovakirdan/skyhop/internal/core"
	"github.com/vovakirdan/skyhop/internal/games/skyhop/physics"
)

// ContactClass is the classification of one contact event.
type ContactClass int

const (
	ContactNone    ContactClass = iota
	ContactLanding              // The other body is beneath the player
	ContactSide                 // Lateral contact with no landing point
)

// String returns the class name.
func (c ContactClass) String() string {
	switch c {
	case ContactLanding:
		return "landing"
	case ContactSide:
		return "side"
	default:
		return "none"
	}
}

// Physics is the part of the physics collaborator the resolver needs.
// *physics.Space implements it.
type Physics interface {
	SetPairEnabled(a, b physics.BodyID, enabled bool)
	PairEnabled(a, b physics.BodyID) bool
	Box(id physics.BodyID) (core.Box, bool)
	Velocity(id physics.BodyID) (core.Vec2, bool)
	Distance(a, b physics.BodyID) (float64, bool)
}

// CollisionResolver classifies player contacts and suppresses side
// contacts with platforms for a bounded time.
type CollisionResolver struct {
	cfg    config.SkyhopCollision
	phys   Physics
	sched  *Scheduler
	logger *log.Logger
	emit   func(Event)

	// Ladder step currently pending per suppressed platform (1, 2 or 3)
	suppressed map[EntityID]int
}

// NewCollisionResolver creates a resolver. emit receives restore events and
// may be nil.
func NewCollisionResolver(cfg config.SkyhopCollision, phys Physics, sched *Scheduler, logger *log.Logger, emit func(Event)) *CollisionResolver {
	if emit == nil {
		emit = func(Event) {}
	}
	return &CollisionResolver{
		cfg:        cfg,
		phys:       phys,
		sched:      sched,
		logger:     logger,
		emit:       emit,
		suppressed: make(map[EntityID]int),
	}
}

// Classify returns the class of a contact. Normals point from the other
// body into the player, so a landing has a normal pointing up. Landing wins
// over side when both kinds of point are present.
func (r *CollisionResolver) Classify(c physics.Contact) ContactClass {
	for _, p := range c.Points {
		if p.Normal.Y > r.cfg.LandingNormal {
			return ContactLanding
		}
	}
	for _, p := range c.Points {
		if math.Abs(p.Normal.X) > r.cfg.SideHorizontal && math.Abs(p.Normal.Y) < r.cfg.SideVertical {
			return ContactSide
		}
	}
	return ContactNone
}

// Resolve classifies a player contact and, for a side contact with a
// platform, disables the pair and starts the re-enable ladder.
func (r *CollisionResolver) Resolve(c physics.Contact) ContactClass {
	class := r.Classify(c)
	if class == ContactSide && c.OtherKind == physics.KindPlatform {
		r.suppress(EntityID(c.Body), EntityID(c.Other))
	}
	return class
}

// Suppressed reports whether collision with a platform is currently off.
func (r *CollisionResolver) Suppressed(platform EntityID) bool {
	_, ok := r.suppressed[platform]
	return ok
}

// LadderStep returns the pending ladder step for a platform, 0 if none.
func (r *CollisionResolver) LadderStep(platform EntityID) int {
	return r.suppressed[platform]
}

// Forget drops ladder bookkeeping for a destroyed platform. The owner's
// timers are cancelled by the caller through the scheduler.
func (r *CollisionResolver) Forget(platform EntityID) {
	delete(r.suppressed, platform)
}

// Reset drops all ladder bookkeeping.
func (r *CollisionResolver) Reset() {
	r.suppressed = make(map[EntityID]int)
}

func (r *CollisionResolver) suppress(player, platform EntityID) {
	if _, ok := r.suppressed[platform]; ok {
		return
	}
	r.phys.SetPairEnabled(physics.BodyID(player), physics.BodyID(platform), false)
	r.suppressed[platform] = 1
	r.emit(Event{Type: EventSideContact, Entity: platform})
	r.logger.Debug("side contact suppressed", "platform", platform, "tick", r.sched.Tick())

	r.sched.After(r.cfg.FirstCheck, platform, func() {
		if r.separated(player, platform, false) {
			r.restore(player, platform, "clear")
			return
		}
		r.suppressed[platform] = 2
		r.sched.After(r.cfg.SecondCheck, platform, func() {
			if r.separated(player, platform, true) {
				r.restore(player, platform, "clear")
				return
			}
			r.suppressed[platform] = 3
			r.sched.After(r.cfg.ForceEnable, platform, func() {
				r.restore(player, platform, "forced")
			})
		})
	})
}

// separated tests whether the player has cleared a platform: its feet are
// above the platform top, or it moves horizontally away from the platform
// center. The second check also accepts a large center distance.
func (r *CollisionResolver) separated(player, platform EntityID, acceptDistance bool) bool {
	pb, okP := r.phys.Box(physics.BodyID(player))
	ob, okO := r.phys.Box(physics.BodyID(platform))
	if !okP || !okO {
		return true
	}
	if pb.Bottom() >= ob.Top() {
		return true
	}

	if v, ok := r.phys.Velocity(physics.BodyID(player)); ok {
		away := core.Sign(pb.Center.X - ob.Center.X)
		if v.X != 0 && away != 0 && core.Sign(v.X) == away {
			return true
		}
	}

	if acceptDistance {
		if d, ok := r.phys.Distance(physics.BodyID(player), physics.BodyID(platform)); ok && d > r.cfg.SeparationDistance {
			return true
		}
	}
	return false
}

func (r *CollisionResolver) restore(player, platform EntityID, reason string) {
	delete(r.suppressed, platform)
	r.phys.SetPairEnabled(physics.BodyID(player), physics.BodyID(platform), true)
	r.emit(Event{Type: EventCollisionRestored, Entity: platform})
	r.logger.Debug("collision restored", "platform", platform, "reason", reason, "tick", r.sched.Tick())
}
