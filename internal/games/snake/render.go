package snake

import (
	"fmt"

	"github.com/vovakirdan/chainfall/internal/core"
)

// cellSize is the edge of one playfield cell on a canvas, in world units.
const cellSize = 16.0

func comboText(combo int) string {
	return fmt.Sprintf("%d COMBO!", combo)
}

func (g *Game) hudLine() string {
	hud := fmt.Sprintf(" SNAKE  %s  SCORE %d  LENGTH %d", g.mode, g.score, len(g.snake))
	if g.combo > 0 {
		hud += fmt.Sprintf("  COMBO x%.1f", g.multiplier())
	}
	return hud
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.SetColor(core.ColorBrightGreen)
	dst.DrawText(0, 0, g.hudLine())
	dst.SetColor(core.ColorGray)
	dst.DrawHLine(0, 1, dst.Width(), '─')

	if g.tooSmall {
		dst.SetColor(core.ColorYellow)
		dst.DrawTextCentered(dst.Height()/2, "Window too small")
		return
	}

	borderColor := core.ColorGray
	if g.challenger() {
		borderColor = core.ColorRed
	}
	dst.SetColor(borderColor)
	dst.DrawBox(core.NewRect(0, hudHeight, g.cols+2, g.rows+2))

	ox, oy := 1, hudHeight+1
	if g.food.X >= 0 {
		dst.SetColor(core.ColorBrightRed)
		dst.Set(ox+g.food.X, oy+g.food.Y, '*')
	}
	for i, seg := range g.snake {
		if i == 0 {
			dst.SetColor(core.ColorBrightGreen)
			dst.Set(ox+seg.X, oy+seg.Y, 'O')
			continue
		}
		dst.SetColor(core.ColorGreen)
		dst.Set(ox+seg.X, oy+seg.Y, 'o')
	}

	if g.paused {
		dst.SetColor(core.ColorBrightYellow)
		dst.DrawTextCentered(dst.Height()/2, "PAUSED")
	}
	g.session.RenderOverlay(dst, g.Title())
}

// WorldSize returns the playfield size in world units, HUD row included.
func (g *Game) WorldSize() (w, h float64) {
	cols, rows := g.cols, g.rows
	if cols <= 0 || rows <= 0 {
		cols, rows = 78, 20
	}
	return float64(cols) * cellSize, float64(rows+1) * cellSize
}

// DrawCanvas draws the playfield one square per cell below a text HUD row.
func (g *Game) DrawCanvas(c core.Canvas) {
	if g.session == nil {
		return
	}
	w, h := g.WorldSize()
	c.Text(4, 2, g.hudLine(), core.ColorBrightGreen)

	cell := func(p Point, col core.Color) {
		c.FillRect(float64(p.X)*cellSize+1, float64(p.Y+1)*cellSize+1, cellSize-2, cellSize-2, col)
	}
	if g.food.X >= 0 {
		cell(g.food, core.ColorBrightRed)
	}
	for i, seg := range g.snake {
		col := core.ColorGreen
		if i == 0 {
			col = core.ColorBrightGreen
		}
		cell(seg, col)
	}
	if g.paused {
		c.Text(w/2-21, h/2, "PAUSED", core.ColorBrightYellow)
	}
	g.session.DrawOverlay(c, g.Title(), w, h)
}
