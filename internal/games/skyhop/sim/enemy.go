package sim

import (
	"github.com/vovakirdan/skyhop/internal/core"
)

// View is the camera rectangle in world coordinates.
type View struct {
	Bottom float64
	Top    float64
	Left   float64
	Right  float64
}

// Box returns the view as a box.
func (v View) Box() core.Box {
	return core.NewBox(
		core.V((v.Left+v.Right)/2, (v.Bottom+v.Top)/2),
		v.Right-v.Left,
		v.Top-v.Bottom,
	)
}

// Visible reports whether a box is inside the view grown by margin on
// every side.
func Visible(view View, margin float64, b core.Box) bool {
	return view.Box().Expand(margin).Intersects(b)
}

// EnemyActivation toggles enemies between Dormant and Active purely from
// camera visibility. Evaluating it when nothing changed has no effect.
type EnemyActivation struct {
	margin float64
	toggle func(e *Enemy, active bool) // Collider switch, called on changes only
}

// NewEnemyActivation creates the activation query. toggle may be nil.
func NewEnemyActivation(margin float64, toggle func(e *Enemy, active bool)) *EnemyActivation {
	if toggle == nil {
		toggle = func(*Enemy, bool) {}
	}
	return &EnemyActivation{margin: margin, toggle: toggle}
}

// Update sets the activation of one enemy and reports whether it changed.
func (a *EnemyActivation) Update(e *Enemy, view View) bool {
	want := Dormant
	if Visible(view, a.margin, e.Box) {
		want = Active
	}
	if e.Activation == want {
		return false
	}
	e.Activation = want
	a.toggle(e, want == Active)
	return true
}

// MoveEnemy patrols an active enemy around its anchor by plain translation.
// Dormant and defeated enemies do not move but keep their direction.
func MoveEnemy(e *Enemy, dt float64) {
	if e.Activation != Active || e.Defeated {
		e.Velocity = core.Vec2{}
		return
	}
	speed := e.BaseSpeed * e.SpeedScale
	dir := e.Dir
	if dir == 0 {
		dir = 1
	}

	x := e.Box.Center.X + dir*speed*dt
	switch {
	case x > e.AnchorX+e.Range:
		x = e.AnchorX + e.Range
		dir = -1
	case x < e.AnchorX-e.Range:
		x = e.AnchorX - e.Range
		dir = 1
	}
	e.Box.Center.X = x
	e.Dir = dir
	e.Velocity = core.V(dir*speed, 0)
}
