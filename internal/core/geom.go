// Package core provides the shared value types of skyhop: world-space
// vectors and boxes, the character screen buffer, input frames and runtime
// configuration. It has no dependency on the terminal layer so the
// simulation stays pure and testable.
package core

import "math"

// Vec2 is a point or direction in world space. Y grows upwards.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{X: x, Y: y}.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Neg returns -v.
func (v Vec2) Neg() Vec2 {
	return Vec2{X: -v.X, Y: -v.Y}
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the distance between v and o.
func (v Vec2) Dist(o Vec2) float64 {
	return v.Sub(o).Len()
}

// Box is an axis-aligned box in world space described by its center and
// half extents.
type Box struct {
	Center Vec2
	Half   Vec2
}

// NewBox builds a box from its center and full size.
func NewBox(center Vec2, w, h float64) Box {
	return Box{Center: center, Half: Vec2{X: w / 2, Y: h / 2}}
}

// Left returns the smallest x covered by the box.
func (b Box) Left() float64 { return b.Center.X - b.Half.X }

// Right returns the largest x covered by the box.
func (b Box) Right() float64 { return b.Center.X + b.Half.X }

// Bottom returns the lower bound of the box.
func (b Box) Bottom() float64 { return b.Center.Y - b.Half.Y }

// Top returns the upper bound of the box.
func (b Box) Top() float64 { return b.Center.Y + b.Half.Y }

// Width returns the full width.
func (b Box) Width() float64 { return b.Half.X * 2 }

// Height returns the full height.
func (b Box) Height() float64 { return b.Half.Y * 2 }

// Min returns the lower-left corner.
func (b Box) Min() Vec2 { return Vec2{X: b.Left(), Y: b.Bottom()} }

// Moved returns the box translated by d.
func (b Box) Moved(d Vec2) Box {
	b.Center = b.Center.Add(d)
	return b
}

// Intersects reports whether two boxes overlap with positive area.
// Touching edges do not count.
func (b Box) Intersects(o Box) bool {
	if b.Right() <= o.Left() || o.Right() <= b.Left() {
		return false
	}
	if b.Top() <= o.Bottom() || o.Top() <= b.Bottom() {
		return false
	}
	return true
}

// Expand grows the box by m on every side.
func (b Box) Expand(m float64) Box {
	b.Half = Vec2{X: b.Half.X + m, Y: b.Half.Y + m}
	return b
}

// Rect is an integer cell rectangle used for screen drawing.
type Rect struct {
	X, Y int // Top-left cell
	W, H int // Size in cells
}

// NewRect creates a new cell rectangle.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Lerp interpolates linearly between a and b by t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// ClampF restricts a float64 value to be within [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// Sign returns -1, 0 or 1 according to the sign of v.
func Sign(v float64) float64 {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
