package sim

import (
	"math"

	"github.com/vovakirdan/skyhop/internal/core"
)

// Autopilot returns the input of a simple scripted player: it steers toward
// the platform it is most likely to land on next and attacks enemies in
// reach. Used by headless runs and tests.
func Autopilot(w *World) core.InputFrame {
	in := core.NewInputFrame()
	pl := w.Player()

	target := autopilotTarget(w)
	if target != nil {
		dx := target.Box.Center.X - pl.Box.Center.X
		if math.Abs(dx) > 0.2 {
			in.SetAxis(core.Sign(dx))
		}
	}

	for _, e := range w.Enemies() {
		if e.Activation == Active && e.Box.Center.Dist(pl.Box.Center) <= w.cfg.Player.AttackRange {
			in.Set(core.ActionAttack)
			break
		}
	}
	return in
}

// autopilotTarget picks the closest solid platform above the player's feet
// while rising, or the highest one below them while falling.
func autopilotTarget(w *World) *Platform {
	pl := w.Player()
	feet := pl.Box.Bottom()

	var best *Platform
	for _, p := range w.Platforms() {
		if p.Broken || p.Fading || p.Category == CategoryBreaking {
			continue
		}
		top := p.Box.Top()
		if pl.Velocity.Y > 0 {
			if top <= feet || top > feet+3 {
				continue
			}
			if best == nil || top < best.Box.Top() {
				best = p
			}
			continue
		}
		if top > feet {
			continue
		}
		if best == nil || top > best.Box.Top() {
			best = p
		}
	}
	return best
}
