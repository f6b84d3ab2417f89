package skyhop

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/skyhop/internal/core"
	"github.com/vovakirdan/skyhop/internal/games/skyhop/sim"
)

// Visual characters for rendering
const (
	PlayerChar   = '@'
	GroundEnemy  = 'M'
	FlyingEnemy  = 'V'
	BorderHoriz  = '─'
	hudRows      = 2
	eventHUDWide = 24
)

// platformGlyphs maps each category to its glyph.
var platformGlyphs = map[sim.Category]rune{
	sim.CategoryBasic:           '=',
	sim.CategoryBreaking:        '#',
	sim.CategoryMoving:          '≡',
	sim.CategorySingleUse:       '-',
	sim.CategoryMovingSingleUse: '~',
}

var platformColors = map[sim.Category]core.Color{
	sim.CategoryBasic:           core.ColorGreen,
	sim.CategoryBreaking:        core.ColorOrange,
	sim.CategoryMoving:          core.ColorCyan,
	sim.CategorySingleUse:       core.ColorWhite,
	sim.CategoryMovingSingleUse: core.ColorBlue,
}

var powerUpColors = map[sim.PowerUpType]core.Color{
	sim.PowerUpJump:     core.ColorBrightGreen,
	sim.PowerUpSlow:     core.ColorBrightCyan,
	sim.PowerUpSpeed:    core.ColorBrightYellow,
	sim.PowerUpBatWings: core.ColorMagenta,
}

// projection maps world coordinates into screen cells below the HUD.
type projection struct {
	halfW  float64
	top    float64
	scaleX float64
	scaleY float64
}

func newProjection(cam sim.Camera, w, h int) projection {
	rows := h - hudRows
	return projection{
		halfW:  cam.HalfWidth,
		top:    cam.Top(),
		scaleX: float64(w) / (2 * cam.HalfWidth),
		scaleY: float64(rows) / cam.ViewHeight,
	}
}

func (p projection) col(x float64) int {
	return int(math.Floor((x + p.halfW) * p.scaleX))
}

func (p projection) row(y float64) int {
	return hudRows + int(math.Floor((p.top-y)*p.scaleY))
}

// span returns the cell columns covered by a box, at least one.
func (p projection) span(b core.Box) (int, int) {
	from, to := p.col(b.Left()), p.col(b.Right())
	if to <= from {
		to = from + 1
	}
	return from, to
}

// put draws a world cell, leaving the HUD rows alone.
func (p projection) put(dst *core.Screen, x, y int, r rune, c core.Color) {
	if y < hudRows {
		return
	}
	dst.SetColored(x, y, r, c)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.screenTooSmall {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", g.minScreenW, g.minScreenH))
		return
	}
	if g.world == nil {
		return
	}

	proj := newProjection(g.world.Camera(), dst.Width(), dst.Height())
	g.renderHUD(dst)
	g.renderPlatforms(dst, proj)
	g.renderPickups(dst, proj)
	g.renderEnemies(dst, proj)
	g.renderPlayer(dst, proj)
	g.renderOverlay(dst)
}

// renderHUD draws score, height and the active power-up.
func (g *Game) renderHUD(dst *core.Screen) {
	w := g.world
	dst.DrawText(1, 0, fmt.Sprintf("Score: %d", w.Score()))

	progress := fmt.Sprintf("Height: %.0f", w.MaxHeight())
	if total := g.cfg.Generator.TotalCount; total > 0 {
		progress = fmt.Sprintf("Height: %.0f  %d/%d", w.MaxHeight(), min(w.Generated(), total), total)
	}
	dst.DrawTextCentered(0, progress)

	if t := w.PowerUps().Active(); t != sim.PowerUpNone {
		text := fmt.Sprintf("%s %.0fs", t, math.Ceil(w.PowerUps().Remaining()))
		dst.DrawTextColored(dst.Width()-len(text)-1, 0, text, powerUpColors[t])
	}

	dst.DrawHLine(0, 1, dst.Width(), BorderHoriz, core.ColorGray)
	if g.hasEvent && g.eventTicks > 0 {
		text := " " + strings.ReplaceAll(g.lastEvent.String(), "_", " ") + " "
		if len(text) > eventHUDWide {
			text = text[:eventHUDWide]
		}
		dst.DrawTextColored(1, 1, text, core.ColorYellow)
	}
}

func (g *Game) renderPlatforms(dst *core.Screen, p projection) {
	for _, pl := range g.world.Platforms() {
		glyph := platformGlyphs[pl.Category]
		color := platformColors[pl.Category]
		switch {
		case pl.Broken:
			glyph, color = '.', core.ColorGray
		case pl.Breaking:
			color = core.ColorRed
		case pl.Fading && pl.Alpha < 0.5:
			glyph, color = '.', core.ColorGray
		case pl.Fading:
			color = core.ColorGray
		}

		y := p.row(pl.Box.Top())
		from, to := p.span(pl.Box)
		for x := from; x < to; x++ {
			p.put(dst, x, y, glyph, color)
		}
	}
}

func (g *Game) renderPickups(dst *core.Screen, p projection) {
	for _, pk := range g.world.Pickups() {
		p.put(dst, p.col(pk.Box.Center.X), p.row(pk.Box.Center.Y), pk.Type.Glyph(), powerUpColors[pk.Type])
	}
}

func (g *Game) renderEnemies(dst *core.Screen, p projection) {
	for _, e := range g.world.Enemies() {
		glyph, color := GroundEnemy, core.ColorRed
		if e.Kind == sim.EnemyFlying {
			glyph, color = FlyingEnemy, core.ColorMagenta
		}
		if e.Activation == sim.Dormant {
			color = core.ColorGray
		}
		p.put(dst, p.col(e.Box.Center.X), p.row(e.Box.Center.Y), glyph, color)
	}
}

func (g *Game) renderPlayer(dst *core.Screen, p projection) {
	pl := g.world.Player()
	x, y := p.col(pl.Box.Center.X), p.row(pl.Box.Center.Y)

	color := core.ColorBrightYellow
	if t := g.world.PowerUps().Active(); t != sim.PowerUpNone {
		color = powerUpColors[t]
	}
	p.put(dst, x, y, PlayerChar, color)

	for _, d := range g.world.PowerUps().Wings() {
		c := pl.Box.Center.Add(d.Offset)
		p.put(dst, p.col(c.X), p.row(c.Y), d.Glyph, core.ColorMagenta)
	}
}

// renderOverlay draws game state messages.
func (g *Game) renderOverlay(dst *core.Screen) {
	switch g.state {
	case StatePaused:
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")
	case StateGameOver:
		g.drawCenteredBox(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", g.world.Score()))
	case StateWin:
		g.drawCenteredBox(dst, "SUMMIT!", fmt.Sprintf("Final Score: %d  |  Press R to restart", g.world.Score()))
	}
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	r := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(r, ' ')
	dst.DrawBox(r)
	dst.DrawText(r.X+(boxW-len(title))/2, r.Y+1, title)
	dst.DrawText(r.X+(boxW-len(subtitle))/2, r.Y+3, subtitle)
}
