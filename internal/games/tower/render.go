package tower

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-stack/internal/core"
	"github.com/vovakirdan/tui-stack/internal/games/tower/sim"
)

// Visual characters for rendering
const (
	BlockChar  = '█'
	MissedChar = '░'
	DebrisChar = '▒'
	GroundChar = '▀'
	Divider    = '│'
)

// hudRows is the number of rows reserved above the play area.
const hudRows = 2

// viewport maps world heights to screen rows. The camera height sits a third
// of the way down the play area and one row covers one slab.
type viewport struct {
	top, bottom int
	anchor      int
	unitRows    float64
	cameraY     float64
}

func (g *Game) viewport(height int) viewport {
	top := hudRows
	bottom := max(height, top+1)
	return viewport{
		top:      top,
		bottom:   bottom,
		anchor:   top + (bottom-top)/3,
		unitRows: 1 / g.params.BlockSize.Y,
		cameraY:  g.engine.CameraY(),
	}
}

func (v viewport) row(y float64) float64 {
	return float64(v.anchor) + (v.cameraY-y)*v.unitRows
}

// floorY returns the world height at the bottom edge of the screen.
func (g *Game) floorY() float64 {
	v := g.viewport(g.runtime.ScreenH)
	return v.cameraY - float64(v.bottom-v.anchor)/v.unitRows
}

// panel is one orthographic projection: front (X) or side (Z).
type panel struct {
	x0, w int
	axis  sim.Axis
	label string
	scale float64 // columns per world unit
}

func (g *Game) newPanel(x0, w int, axis sim.Axis, label string) panel {
	reach := g.params.MoveAmount + axis.Of(g.params.BlockSize)/2
	scale := g.cfg.Display.CellScale
	if fit := float64(w-2) / (2 * reach); fit > 0 && fit < scale {
		scale = fit
	}
	return panel{x0: x0, w: w, axis: axis, label: label, scale: scale}
}

func (p panel) col(v float64) float64 {
	return float64(p.x0) + float64(p.w)/2 + v*p.scale
}

// clip limits r to the panel and the play area. It reports false when
// nothing is left to draw.
func (p panel) clip(r core.Rect, v viewport) (core.Rect, bool) {
	bounds := core.NewRect(p.x0, v.top, p.w, v.bottom-v.top)
	if r.Empty() || !r.Intersects(bounds) {
		return core.Rect{}, false
	}
	x0 := core.Max(r.X, bounds.X)
	x1 := core.Min(r.Right(), bounds.Right())
	y0 := core.Max(r.Y, bounds.Y)
	y1 := core.Min(r.Bottom(), bounds.Bottom())
	return core.NewRect(x0, y0, x1-x0, y1-y0), true
}

func (p panel) rect(g sim.Geometry, v viewport) core.Rect {
	lo, hi := g.Min(), g.Max()
	return core.SpanRect(p.col(p.axis.Of(lo)), p.col(p.axis.Of(hi)), v.row(hi.Y), v.row(lo.Y))
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	w := dst.Width()
	v := g.viewport(dst.Height())

	split := w / 2
	panels := []panel{
		g.newPanel(0, split, sim.AxisX, "front"),
		g.newPanel(split+1, w-split-1, sim.AxisZ, "side"),
	}
	dst.DrawVLine(split, v.top, v.bottom-v.top, Divider, core.ColorGray)

	for _, p := range panels {
		g.drawPanel(dst, v, p)
	}

	g.drawHUD(dst, v)

	switch {
	case g.paused:
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case g.engine.State() == sim.StateReady:
		g.drawCenteredMessage(dst, "STACK", "Press SPACE to start")
	case g.engine.State() == sim.StateEnded:
		g.drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  SPACE or R to restart", g.engine.Score()))
	}
}

func (g *Game) drawPanel(dst *core.Screen, v viewport, p panel) {
	// Ground under the foundation.
	ground := int(math.Round(v.row(g.params.BlockSize.Y / 2)))
	if ground >= v.top && ground < v.bottom {
		dst.DrawHLine(p.x0, ground, p.w, GroundChar, core.ColorGray)
	}

	for _, b := range g.engine.Blocks() {
		geom := g.engine.GeometryOf(b)
		ch := BlockChar
		if b.State == sim.BlockMissed {
			ch = MissedChar
		}
		if r, ok := p.clip(p.rect(geom, v), v); ok {
			dst.FillRect(r, ch, geom.Color)
		}
	}

	for _, geom := range g.debris.Pieces() {
		if r, ok := p.clip(p.rect(geom, v), v); ok {
			dst.FillRect(r, DebrisChar, geom.Color.Scale(0.6))
		}
	}

	dst.DrawTextColored(p.x0+1, v.top, p.label, core.ColorGray)
}

func (g *Game) drawHUD(dst *core.Screen, v viewport) {
	w := dst.Width()

	dst.DrawTextColored(1, 0, fmt.Sprintf("SCORE %d", g.engine.Score()), core.ColorWhite)

	info := fmt.Sprintf("%s · %s", g.preset, g.params.Theme.Name)
	dst.DrawTextColored(w-len([]rune(info))-1, 0, info, core.ColorGray)

	if g.flashTicks > 0 {
		dst.DrawTextCentered(1, "PERFECT", core.ColorYellow)
	}

	// Instructions until the stack has a few blocks.
	if g.engine.State() == sim.StatePlaying && len(g.engine.Blocks()) <= g.cfg.Display.HintBlocks {
		dst.DrawTextCentered(v.bottom-1, "SPACE to drop the block", core.ColorGray)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	titleW := len([]rune(title))
	subtitleW := len([]rune(subtitle))

	boxW := core.Max(titleW, subtitleW) + 4
	boxH := 5
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)

	dst.DrawTextColored(box.X+(boxW-titleW)/2, box.Y+1, title, core.ColorYellow)
	dst.DrawTextColored(box.X+(boxW-subtitleW)/2, box.Y+3, subtitle, core.ColorWhite)
}
