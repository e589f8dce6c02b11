package chainfall

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/chainfall/internal/config"
	"github.com/vovakirdan/chainfall/internal/core"
)

// Visual characters for rendering
const (
	PlayerChar      = '@'
	PlatformChar    = '='
	BulletChar      = '|'
	EnemyBulletChar = '\''
	PowerUpChar     = '+'
	HazardOnChar    = '▌'
	HazardOffChar   = '┊'
)

var enemyGlyphs = [...]rune{Walker: 'W', Jumper: 'J', Shooter: 'S'}

var enemyColors = [...]core.Color{Walker: core.ColorRed, Jumper: core.ColorGreen, Shooter: core.ColorMagenta}

// hudRows is the number of screen rows above the playfield.
const hudRows = 1

// viewport maps world units to screen cells.
type viewport struct {
	sx, sy  float64
	cameraY float64
	top     int
}

func (g *Game) viewport(dst *core.Screen) viewport {
	wc := g.cfg.World
	rows := dst.Height() - hudRows
	return viewport{
		sx:      float64(dst.Width()) / wc.Width,
		sy:      float64(rows) / wc.ViewHeight,
		cameraY: g.world.CameraY,
		top:     hudRows,
	}
}

// cells returns the cell rectangle covering a world box, at least one cell.
func (v viewport) cells(b core.Box) core.Rect {
	x0 := int(math.Floor(b.Left() * v.sx))
	x1 := int(math.Ceil(b.Right() * v.sx))
	y0 := int(math.Floor((b.Top() - v.cameraY) * v.sy))
	y1 := int(math.Ceil((b.Bottom() - v.cameraY) * v.sy))
	return core.NewRect(x0, v.top+y0, max(1, x1-x0), max(1, y1-y0))
}

// point returns the cell under a world point.
func (v viewport) point(x, y float64) (int, int) {
	return int(x * v.sx), v.top + int(math.Floor((y-v.cameraY)*v.sy))
}

// Render draws the current state into the screen.
func (g *Game) Render(dst *core.Screen) {
	if g.world == nil {
		return
	}
	dst.Clear()

	v := g.viewport(dst)
	w := g.world

	g.renderHazards(dst, v)

	for _, p := range w.Platforms {
		dst.SetColor(core.ColorBlue)
		if p.NoEnemies {
			dst.SetColor(core.ColorYellow)
		}
		r := v.cells(p.Box())
		dst.DrawHLine(r.X, r.Y, r.W, PlatformChar)
	}

	w.PowerUps.Each(func(_ core.Handle, p *PowerUp) {
		x, y := v.point(p.Body.X, p.Body.Y)
		dst.SetColor(core.ColorOrange)
		dst.Set(x, y, PowerUpChar)
	})

	w.Enemies.Each(func(_ core.Handle, e *Enemy) {
		r := v.cells(e.Body.Box())
		dst.SetColor(enemyColors[e.Kind])
		if e.Shielded {
			dst.SetColor(core.ColorBrightCyan)
		}
		dst.DrawHLine(r.X, r.Y, r.W, enemyGlyphs[e.Kind])
	})

	bulletColor := core.ColorBrightRed
	if g.run.ComboCount > 0 {
		bulletColor = core.ColorBrightCyan
	}
	w.Bullets.Each(func(_ core.Handle, b *Bullet) {
		x, y := v.point(b.Body.X, b.Body.Y)
		dst.SetColor(bulletColor)
		dst.Set(x, y, BulletChar)
	})
	w.EnemyBullets.Each(func(_ core.Handle, b *EnemyBullet) {
		x, y := v.point(b.Body.X, b.Body.Y)
		dst.SetColor(core.ColorMagenta)
		dst.Set(x, y, EnemyBulletChar)
	})

	px, py := v.point(w.Player.Body.X, w.Player.Body.Y)
	dst.SetColor(core.ColorBrightWhite)
	if w.Charge.Active() {
		dst.SetColor(core.ColorBrightYellow)
	}
	dst.Set(px, py, PlayerChar)
	if w.Jetpack {
		dst.SetColor(core.ColorGray)
		dst.Set(px-1, py, '[')
		dst.Set(px+1, py, ']')
	}

	g.renderBanners(dst)
	g.renderHUD(dst)

	if g.paused {
		dst.SetColor(core.ColorBrightYellow)
		dst.DrawTextCentered(dst.Height()/2, "PAUSED")
	}
	dst.SetColor(core.ColorDefault)
	g.session.RenderOverlay(dst, g.Title())
}

func (g *Game) renderHazards(dst *core.Screen, v viewport) {
	h := &g.world.Hazards
	if !h.Enabled {
		return
	}
	glyph, color := HazardOffChar, core.ColorGray
	if h.On {
		glyph, color = HazardOnChar, core.ColorRed
	}
	dst.SetColor(color)
	for _, b := range []core.Box{h.Left, h.Right} {
		r := v.cells(b)
		x := core.Clamp(r.X, 0, dst.Width()-1)
		dst.DrawVLine(x, max(r.Y, hudRows), min(r.H, dst.Height()), glyph)
	}
}

func (g *Game) renderBanners(dst *core.Screen) {
	row := hudRows + 2
	for i := len(g.fx.banners) - 1; i >= 0; i-- {
		b := g.fx.banners[i]
		dst.SetColor(b.Color)
		dst.DrawTextCentered(row, b.Text)
		row++
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	dst.SetColor(core.ColorDefault)
	dst.DrawHLine(0, 0, dst.Width(), ' ')

	dst.SetColor(core.ColorBrightGreen)
	dst.DrawText(1, 0, g.hudLine())

	if g.world.Charge.Active() {
		progress := g.world.Charge.Progress(g.sched.Now(), config.Ms(g.cfg.Charge.ThresholdMs))
		bar := chargeBar(progress, 10)
		dst.SetColor(core.ColorBrightYellow)
		dst.DrawText(dst.Width()-len([]rune(bar))-1, 0, bar)
	}
}

func (g *Game) hudLine() string {
	r := g.run
	line := fmt.Sprintf("SCORE %d  AMMO %d/%d  DEPTH %dm", r.Score, r.Ammo, r.MaxAmmo, int(r.MaxDepth))
	if r.ComboCount > 0 {
		line += fmt.Sprintf("  COMBO x%.1f (%d)", r.ComboMultiplier, r.ComboCount)
	}
	if r.Challenger() {
		line += "  [CHALLENGER]"
	}
	return line
}

func chargeBar(progress float64, width int) string {
	filled := int(progress * float64(width))
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
