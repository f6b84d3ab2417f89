// Package sim is the skyhop simulation core: procedural platform and enemy
// generation, contact classification with transient side-contact
// suppression, the auto-jump state machine, per-category platform
// behaviors and the single-slot power-up coordinator.
//
// Everything runs on one fixed-step tick. Deferred work (re-enable ladders,
// break delays, fades) is scheduled on the simulation clock and cancelled
// when the entity it refers to is destroyed.
package sim

import (
	"github.com/vovakirdan/skyhop/internal/core"
)

// EntityID identifies a simulated entity. Ids increase monotonically within
// a run and double as physics body ids.
type EntityID uint64

// NoEntity is the zero id, never assigned to an entity.
const NoEntity EntityID = 0

// Category is the platform category. Each category has one entry in the
// behavior table.
type Category int

const (
	CategoryBasic           Category = iota // Plain platform, always bounces
	CategoryBreaking                        // Gives way shortly after a landing, never bounces
	CategoryMoving                          // Oscillates horizontally and carries the player
	CategorySingleUse                       // Vanishes after one landing
	CategoryMovingSingleUse                 // Oscillates and vanishes after one landing
)

// String returns the catalog spelling of the category.
func (c Category) String() string {
	switch c {
	case CategoryBasic:
		return "basic"
	case CategoryBreaking:
		return "breaking"
	case CategoryMoving:
		return "moving"
	case CategorySingleUse:
		return "single_use"
	case CategoryMovingSingleUse:
		return "moving_single_use"
	default:
		return "unknown"
	}
}

// ParseCategory maps a catalog spelling to a category.
func ParseCategory(s string) (Category, bool) {
	switch s {
	case "basic":
		return CategoryBasic, true
	case "breaking":
		return CategoryBreaking, true
	case "moving":
		return CategoryMoving, true
	case "single_use":
		return CategorySingleUse, true
	case "moving_single_use":
		return CategoryMovingSingleUse, true
	default:
		return CategoryBasic, false
	}
}

// IsMoving reports whether platforms of this category oscillate.
func (c Category) IsMoving() bool {
	return c == CategoryMoving || c == CategoryMovingSingleUse
}

// IsSingleUse reports whether platforms of this category vanish after use.
func (c Category) IsSingleUse() bool {
	return c == CategorySingleUse || c == CategoryMovingSingleUse
}

// Movement describes a horizontal ping-pong oscillation around OriginX.
type Movement struct {
	Speed     float64 // World units per second
	Distance  float64 // Maximum offset from OriginX
	Offset    float64 // Current offset, the phase of the oscillation
	Direction float64 // +1 or -1
}

// Platform is a generated platform.
type Platform struct {
	ID       EntityID
	Index    int    // Generation order, 0 is the start platform
	Prefab   string // Catalog entry name
	Category Category
	Box      core.Box
	OriginX  float64   // Center x the movement oscillates around
	Velocity core.Vec2 // Current horizontal velocity of moving platforms
	Movement *Movement // Non-nil for moving categories

	LandedOn bool    // One-shot flag set by the first qualifying landing
	Breaking bool    // A break is scheduled or done
	Broken   bool    // Collider is off and the platform is falling
	Fading   bool    // Single-use fade in progress
	Alpha    float64 // 1 is opaque, 0 is gone

	fadeLeft float64 // Seconds of fade remaining
}

// EnemyKind is the enemy movement type.
type EnemyKind int

const (
	EnemyGround EnemyKind = iota // Walks along its home platform
	EnemyFlying                  // Patrols the air above its home platform
)

// String returns the enemy kind name.
func (k EnemyKind) String() string {
	if k == EnemyFlying {
		return "flying"
	}
	return "ground"
}

// Activation is the enemy simulation state.
type Activation int

const (
	Dormant Activation = iota // Off screen: neither moved nor collidable
	Active                    // On or near screen
)

// String returns the activation name.
func (a Activation) String() string {
	if a == Active {
		return "active"
	}
	return "dormant"
}

// Enemy is a hazard spawned next to a platform.
type Enemy struct {
	ID         EntityID
	Kind       EnemyKind
	Activation Activation
	Box        core.Box
	Velocity   core.Vec2
	Dir        float64  // Patrol direction, +1 right or -1 left
	Home       EntityID // Platform the enemy was spawned on
	AnchorX    float64  // Center of the patrol
	Range      float64  // Half width of the patrol
	BaseSpeed  float64
	SpeedScale float64 // 1 normally, the slow multiplier while Slow is active
	HasBody    bool    // False when the physics window refused the body
	Defeated   bool
}

// PowerUpType is the kind of a power-up. At most one is active at a time.
type PowerUpType int

const (
	PowerUpNone PowerUpType = iota
	PowerUpJump
	PowerUpSlow
	PowerUpSpeed
	PowerUpBatWings
)

// String returns the power-up name.
func (p PowerUpType) String() string {
	switch p {
	case PowerUpNone:
		return "none"
	case PowerUpJump:
		return "jump"
	case PowerUpSlow:
		return "slow"
	case PowerUpSpeed:
		return "speed"
	case PowerUpBatWings:
		return "bat_wings"
	default:
		return "unknown"
	}
}

// Glyph returns the display character for a power-up pickup.
func (p PowerUpType) Glyph() rune {
	switch p {
	case PowerUpJump:
		return 'J'
	case PowerUpSlow:
		return 'S'
	case PowerUpSpeed:
		return '>'
	case PowerUpBatWings:
		return 'W'
	default:
		return '?'
	}
}

// Pickup is a collectable power-up floating above a platform.
type Pickup struct {
	ID        EntityID
	Type      PowerUpType
	Box       core.Box
	Collected bool
}

// Decoration is a visual attachment that follows the player, such as the
// bat wings.
type Decoration struct {
	ID     EntityID
	Offset core.Vec2 // Relative to the player center
	Glyph  rune
}

// JumpState is the auto-jump state.
type JumpState int

const (
	Airborne JumpState = iota
	Grounded
)

// String returns the jump state name.
func (s JumpState) String() string {
	if s == Grounded {
		return "grounded"
	}
	return "airborne"
}

// Player is the player body and its stats.
type Player struct {
	ID       EntityID
	Box      core.Box
	Velocity core.Vec2
	State    JumpState
	Attached EntityID // Moving platform the player rides, NoEntity when free

	BaseJumpForce float64
	BaseMoveSpeed float64
	JumpForce     float64 // BaseJumpForce times the active multiplier
	MoveSpeed     float64 // BaseMoveSpeed times the active multiplier

	Facing         float64 // Last horizontal direction, +1 or -1
	AttackCooldown float64 // Seconds until the next attack
}

// EventType tags what happened during a tick.
type EventType int

const (
	EventLanded EventType = iota
	EventJumped
	EventSideContact
	EventCollisionRestored
	EventPlatformBroken
	EventPlatformConsumed
	EventPowerUpActivated
	EventPowerUpExpired
	EventEnemyDefeated
	EventPlayerHit
	EventCameraFollow
	EventGameOver
	EventSummit
)

// String returns the event name.
func (e EventType) String() string {
	switch e {
	case EventLanded:
		return "landed"
	case EventJumped:
		return "jumped"
	case EventSideContact:
		return "side_contact"
	case EventCollisionRestored:
		return "collision_restored"
	case EventPlatformBroken:
		return "platform_broken"
	case EventPlatformConsumed:
		return "platform_consumed"
	case EventPowerUpActivated:
		return "powerup_activated"
	case EventPowerUpExpired:
		return "powerup_expired"
	case EventEnemyDefeated:
		return "enemy_defeated"
	case EventPlayerHit:
		return "player_hit"
	case EventCameraFollow:
		return "camera_follow"
	case EventGameOver:
		return "game_over"
	case EventSummit:
		return "summit"
	default:
		return "unknown"
	}
}

// Event is one notable occurrence during a tick.
type Event struct {
	Type    EventType
	Entity  EntityID
	PowerUp PowerUpType // Set for power-up events
}
