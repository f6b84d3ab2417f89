package sim

import "math"

// Camera follows the player upwards only. Y is the view center.
type Camera struct {
	Y          float64
	ViewHeight float64
	HalfWidth  float64
	following  bool
}

// Begin starts following and snaps the camera to y when that raises it.
// The world starts the camera StartOffset below the player, so the first
// landing always snaps; a lower y never pulls the camera down.
func (c *Camera) Begin(y float64) {
	c.following = true
	c.Y = math.Max(c.Y, y)
}

// Following reports whether the camera has started following.
func (c Camera) Following() bool {
	return c.following
}

// Follow raises the camera to y; it never lowers it.
func (c *Camera) Follow(y float64) {
	if !c.following {
		return
	}
	c.Y = math.Max(c.Y, y)
}

// Bottom returns the lower edge of the view.
func (c Camera) Bottom() float64 {
	return c.Y - c.ViewHeight/2
}

// Top returns the upper edge of the view.
func (c Camera) Top() float64 {
	return c.Y + c.ViewHeight/2
}

// View returns the camera rectangle.
func (c Camera) View() View {
	return View{Bottom: c.Bottom(), Top: c.Top(), Left: -c.HalfWidth, Right: c.HalfWidth}
}

// Score is the run score: the best height reached times a multiplier plus
// bonus points.
type Score struct {
	multiplier float64
	startY     float64
	maxHeight  float64
	bonus      int
}

// NewScore creates a score measuring height from startY.
func NewScore(startY, multiplier float64) Score {
	return Score{multiplier: multiplier, startY: startY}
}

// Observe records the player height; only new maxima count.
func (s *Score) Observe(y float64) {
	s.maxHeight = math.Max(s.maxHeight, y-s.startY)
}

// AddBonus adds bonus points. Negative amounts are ignored.
func (s *Score) AddBonus(points int) {
	if points > 0 {
		s.bonus += points
	}
}

// MaxHeight returns the best height above the start.
func (s *Score) MaxHeight() float64 {
	return s.maxHeight
}

// Bonus returns the accumulated bonus points.
func (s *Score) Bonus() int {
	return s.bonus
}

// Value returns floor(maxHeight * multiplier) + bonus.
func (s *Score) Value() int {
	return int(math.Floor(s.maxHeight*s.multiplier+1e-9)) + s.bonus
}
