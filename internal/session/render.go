package session

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/chainfall/internal/core"
)

// RenderOverlay draws the game-over or name-entry panel on top of the game.
// Nothing is drawn while playing.
func (m *Machine) RenderOverlay(dst *core.Screen, title string) {
	if m.phase == PhasePlaying {
		return
	}

	w, h := 30, 13
	x := (dst.Width() - w) / 2
	y := (dst.Height() - h) / 2
	box := core.NewRect(x, y, w, h)

	dst.SetColor(core.ColorDefault)
	dst.DrawRect(core.NewRect(x+1, y+1, w-2, h-2), ' ')
	dst.SetColor(core.ColorCyan)
	dst.DrawBox(box)

	center := func(row int, text string, c core.Color) {
		dst.SetColor(c)
		dst.DrawText(x+(w-len([]rune(text)))/2, row, text)
	}

	center(y+1, strings.ToUpper(title), core.ColorBrightWhite)
	center(y+2, "GAME OVER", core.ColorBrightRed)
	center(y+3, fmt.Sprintf("%s  SCORE %d", strings.ToUpper(m.mode), m.finalScore), core.ColorYellow)

	if m.phase == PhaseNameEntry {
		center(y+5, "NEW HIGH SCORE!", core.ColorBrightYellow)
		var sb strings.Builder
		for i, c := range m.name {
			if i == m.cursor {
				fmt.Fprintf(&sb, "[%c]", c)
			} else {
				fmt.Fprintf(&sb, " %c ", c)
			}
		}
		center(y+7, sb.String(), core.ColorBrightWhite)
		center(y+9, "UP/DOWN letter  L/R move", core.ColorGray)
		center(y+10, "ENTER to save", core.ColorGray)
		return
	}

	for i, item := range GameOverItems {
		label := "  " + item + "  "
		c := core.ColorWhite
		if i == m.menu {
			label = "> " + item + " <"
			c = core.ColorBrightYellow
		}
		center(y+5+i, label, c)
	}

	if m.board != nil {
		top := Top(m.board.Entries(m.game), m.mode, 3)
		for i, e := range top {
			center(y+8+i, fmt.Sprintf("%d. %-4s %7d", i+1, e.Name, e.Score), core.ColorGray)
		}
	}
	if m.saveErr != nil {
		center(y+h-2, "score not saved", core.ColorRed)
	}
}

// Canvas overlay geometry: the panel is rendered into a text grid and each
// row is drawn as one canvas string.
const (
	overlayCols = 40
	overlayRows = 15
	charW       = 7.0
	lineH       = 16.0
)

// DrawOverlay draws the same panel as RenderOverlay onto a canvas of the
// given world size, centered.
func (m *Machine) DrawOverlay(c core.Canvas, title string, worldW, worldH float64) {
	if m.phase == PhasePlaying {
		return
	}
	grid := core.NewScreen(overlayCols, overlayRows)
	m.RenderOverlay(grid, title)

	x := worldW/2 - overlayCols*charW/2
	y := worldH/2 - overlayRows*lineH/2
	c.FillRect(x, y, overlayCols*charW, overlayRows*lineH, core.ColorDefault)
	for row := range overlayRows {
		c.Text(x, y+float64(row)*lineH, grid.Row(row), core.ColorWhite)
	}
}
