// Package physics is the collision collaborator of the skyhop simulation.
// It keeps one axis-aligned body per entity inside a resolv broad-phase
// space, answers contact queries with normals and contact points, and lets
// callers switch colliders and individual body pairs on and off.
//
// The resolv space has fixed bounds, so it covers a window of the endless
// vertical world. Callers move the window with Recenter as the camera rises.
package physics

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/solarlune/resolv"

	"github.com/vovakirdan/skyhop/internal/core"
)

// BodyID identifies a body. The simulation uses its entity ids.
type BodyID uint64

// Kind tells what a body stands for.
type Kind int

const (
	KindPlayer Kind = iota
	KindPlatform
	KindEnemy
	KindPickup
)

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindPlatform:
		return "platform"
	case KindEnemy:
		return "enemy"
	case KindPickup:
		return "pickup"
	default:
		return "unknown"
	}
}

var (
	// ErrDuplicateBody is returned when an id is added twice.
	ErrDuplicateBody = errors.New("physics: body already exists")
	// ErrOutOfBounds is returned when a body lies outside the space window.
	ErrOutOfBounds = errors.New("physics: body outside the space window")
	// ErrInvalidBox is returned for boxes without positive area.
	ErrInvalidBox = errors.New("physics: box must have positive size")
)

// ContactPoint is one point of a contact manifold. Normal points from the
// other body into the queried body.
type ContactPoint struct {
	Point  core.Vec2
	Normal core.Vec2
}

// Contact describes the overlap between the queried body and another.
type Contact struct {
	Body             BodyID
	Other            BodyID
	OtherKind        Kind
	Points           []ContactPoint
	Depth            float64   // Penetration along the normal
	RelativeVelocity core.Vec2 // Queried body velocity minus the other's
}

// Normal returns the normal of the first contact point.
func (c Contact) Normal() core.Vec2 {
	if len(c.Points) == 0 {
		return core.Vec2{}
	}
	return c.Points[0].Normal
}

// collider marks every non-player shape so queries can filter on it.
var collider = resolv.NewTag("collider")

type body struct {
	id      BodyID
	kind    Kind
	box     core.Box
	vel     core.Vec2
	enabled bool
	shape   resolv.IShape
}

type pair struct{ a, b BodyID }

func makePair(a, b BodyID) pair {
	if a > b {
		a, b = b, a
	}
	return pair{a: a, b: b}
}

// Space is the physics world window.
type Space struct {
	space    *resolv.Space
	halfW    float64 // The window spans x in [-halfW, halfW]
	height   float64 // and y in [originY, originY+height]
	originY  float64
	bodies   map[BodyID]*body
	byShape  map[resolv.IShape]BodyID
	disabled map[pair]struct{}
}

// NewSpace creates a window of the given world size whose bottom edge starts
// at originY. cellSize is the broad-phase grid cell in world units.
func NewSpace(width, height, originY float64, cellSize int) *Space {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &Space{
		space:    resolv.NewSpace(int(math.Ceil(width)), int(math.Ceil(height)), cellSize, cellSize),
		halfW:    width / 2,
		height:   height,
		originY:  originY,
		bodies:   make(map[BodyID]*body),
		byShape:  make(map[resolv.IShape]BodyID),
		disabled: make(map[pair]struct{}),
	}
}

// Origin returns the world y of the window's bottom edge.
func (s *Space) Origin() float64 {
	return s.originY
}

// Height returns the vertical extent of the window.
func (s *Space) Height() float64 {
	return s.height
}

// toSpace converts a world position to resolv coordinates.
func (s *Space) toSpace(p core.Vec2) (float64, float64) {
	return p.X + s.halfW, p.Y - s.originY
}

func (s *Space) contains(b core.Box) bool {
	return b.Right() > -s.halfW && b.Left() < s.halfW &&
		b.Top() > s.originY && b.Bottom() < s.originY+s.height
}

// Add registers a body. Bodies outside the window are refused.
func (s *Space) Add(id BodyID, kind Kind, box core.Box) error {
	if _, ok := s.bodies[id]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateBody, id)
	}
	if box.Half.X <= 0 || box.Half.Y <= 0 {
		return ErrInvalidBox
	}
	if !s.contains(box) {
		return fmt.Errorf("%w: %s %d at y=%.2f", ErrOutOfBounds, kind, id, box.Center.Y)
	}

	minX, minY := s.toSpace(box.Min())
	shape := resolv.NewRectangleFromTopLeft(minX, minY, box.Width(), box.Height())
	if kind != KindPlayer {
		shape.Tags().Set(collider)
	}
	s.space.Add(shape)

	s.bodies[id] = &body{id: id, kind: kind, box: box, enabled: true, shape: shape}
	s.byShape[shape] = id
	return nil
}

// Remove deletes a body and every pair override that mentions it.
func (s *Space) Remove(id BodyID) {
	b, ok := s.bodies[id]
	if !ok {
		return
	}
	s.space.Remove(b.shape)
	delete(s.byShape, b.shape)
	delete(s.bodies, id)
	for p := range s.disabled {
		if p.a == id || p.b == id {
			delete(s.disabled, p)
		}
	}
}

// Has reports whether a body exists.
func (s *Space) Has(id BodyID) bool {
	_, ok := s.bodies[id]
	return ok
}

// Box returns a body's current box.
func (s *Space) Box(id BodyID) (core.Box, bool) {
	b, ok := s.bodies[id]
	if !ok {
		return core.Box{}, false
	}
	return b.box, true
}

// SetBox moves a body.
func (s *Space) SetBox(id BodyID, box core.Box) {
	b, ok := s.bodies[id]
	if !ok {
		return
	}
	b.box = box
	x, y := s.toSpace(box.Center)
	b.shape.SetPosition(x, y)
}

// SetVelocity stores a body's velocity for relative-velocity reporting.
func (s *Space) SetVelocity(id BodyID, v core.Vec2) {
	if b, ok := s.bodies[id]; ok {
		b.vel = v
	}
}

// Velocity returns the last velocity stored for a body.
func (s *Space) Velocity(id BodyID) (core.Vec2, bool) {
	b, ok := s.bodies[id]
	if !ok {
		return core.Vec2{}, false
	}
	return b.vel, true
}

// SetEnabled switches a body's collider on or off for all pairs.
func (s *Space) SetEnabled(id BodyID, enabled bool) {
	if b, ok := s.bodies[id]; ok {
		b.enabled = enabled
	}
}

// Enabled reports whether a body's collider is on.
func (s *Space) Enabled(id BodyID) bool {
	b, ok := s.bodies[id]
	return ok && b.enabled
}

// SetPairEnabled suppresses or restores collision between two bodies.
func (s *Space) SetPairEnabled(a, b BodyID, enabled bool) {
	p := makePair(a, b)
	if enabled {
		delete(s.disabled, p)
		return
	}
	s.disabled[p] = struct{}{}
}

// PairEnabled reports whether two bodies may collide.
func (s *Space) PairEnabled(a, b BodyID) bool {
	_, off := s.disabled[makePair(a, b)]
	return !off
}

// Distance returns the distance between two body centers.
func (s *Space) Distance(a, b BodyID) (float64, bool) {
	ba, okA := s.bodies[a]
	bb, okB := s.bodies[b]
	if !okA || !okB {
		return 0, false
	}
	return ba.box.Center.Dist(bb.box.Center), true
}

// Recenter moves the window so its bottom edge sits at originY and
// repositions every shape.
func (s *Space) Recenter(originY float64) {
	if originY == s.originY {
		return
	}
	s.originY = originY
	for _, b := range s.bodies {
		x, y := s.toSpace(b.box.Center)
		b.shape.SetPosition(x, y)
	}
}

// Contacts returns every enabled body overlapping id, ordered by id.
func (s *Space) Contacts(id BodyID) []Contact {
	self, ok := s.bodies[id]
	if !ok || !self.enabled {
		return nil
	}

	var found []BodyID
	// The grid only narrows candidates; manifold decides overlap, so
	// contained and edge-aligned boxes still count.
	self.shape.SelectTouchingCells(0).FilterShapes().ByTags(collider).ForEach(func(o resolv.IShape) bool {
		if other, ok := s.byShape[o]; ok && other != id {
			found = append(found, other)
		}
		return true
	})
	sort.Slice(found, func(i, j int) bool { return found[i] < found[j] })

	contacts := make([]Contact, 0, len(found))
	for i, otherID := range found {
		if i > 0 && found[i-1] == otherID {
			continue
		}
		other := s.bodies[otherID]
		if !other.enabled || !s.PairEnabled(id, otherID) {
			continue
		}
		c, ok := manifold(self.box, other.box)
		if !ok {
			continue
		}
		c.Body = id
		c.Other = otherID
		c.OtherKind = other.kind
		c.RelativeVelocity = self.vel.Sub(other.vel)
		contacts = append(contacts, c)
	}
	return contacts
}

// manifold computes the contact between two overlapping boxes. The normal
// follows the axis of least penetration and points from o into p; the two
// contact points span the overlap on o's touching face.
func manifold(p, o core.Box) (Contact, bool) {
	if !p.Intersects(o) {
		return Contact{}, false
	}

	overlapX := math.Min(p.Right(), o.Right()) - math.Max(p.Left(), o.Left())
	overlapY := math.Min(p.Top(), o.Top()) - math.Max(p.Bottom(), o.Bottom())

	if overlapY <= overlapX {
		n, faceY := core.V(0, 1), o.Top()
		if p.Center.Y < o.Center.Y {
			n, faceY = core.V(0, -1), o.Bottom()
		}
		left := math.Max(p.Left(), o.Left())
		right := math.Min(p.Right(), o.Right())
		return Contact{
			Depth: overlapY,
			Points: []ContactPoint{
				{Point: core.V(left, faceY), Normal: n},
				{Point: core.V(right, faceY), Normal: n},
			},
		}, true
	}

	n, faceX := core.V(1, 0), o.Right()
	if p.Center.X < o.Center.X {
		n, faceX = core.V(-1, 0), o.Left()
	}
	bottom := math.Max(p.Bottom(), o.Bottom())
	top := math.Min(p.Top(), o.Top())
	return Contact{
		Depth: overlapX,
		Points: []ContactPoint{
			{Point: core.V(faceX, bottom), Normal: n},
			{Point: core.V(faceX, top), Normal: n},
		},
	}, true
}
