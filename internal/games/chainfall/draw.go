package chainfall

import (
	"github.com/vovakirdan/chainfall/internal/config"
	"github.com/vovakirdan/chainfall/internal/core"
)

// textLine is the canvas text line height in world units.
const textLine = 16.0

// WorldSize returns the visible viewport in world units.
func (g *Game) WorldSize() (w, h float64) {
	if g.world == nil {
		d := config.DefaultChainfallConfig().World
		return d.Width, d.ViewHeight
	}
	return g.cfg.World.Width, g.cfg.World.ViewHeight
}

// DrawCanvas draws the run in world units relative to the camera.
func (g *Game) DrawCanvas(c core.Canvas) {
	if g.world == nil {
		return
	}
	w := g.world
	cam := w.CameraY

	fill := func(b core.Box, col core.Color) {
		c.FillRect(b.Left(), b.Top()-cam, b.W, b.H, col)
	}

	if w.Hazards.Enabled {
		col := core.ColorGray
		if w.Hazards.On {
			col = core.ColorRed
		}
		fill(w.Hazards.Left, col)
		fill(w.Hazards.Right, col)
	}

	for _, p := range w.Platforms {
		col := core.ColorBlue
		if p.NoEnemies {
			col = core.ColorYellow
		}
		fill(p.Box(), col)
	}
	w.PowerUps.Each(func(_ core.Handle, p *PowerUp) { fill(p.Body.Box(), core.ColorOrange) })
	w.Enemies.Each(func(_ core.Handle, e *Enemy) {
		if e.Shielded {
			b := e.Body.Box()
			b.W += 4
			b.H += 4
			fill(b, core.ColorBrightCyan)
		}
		fill(e.Body.Box(), enemyColors[e.Kind])
	})

	bulletColor := core.ColorBrightRed
	if g.run.ComboCount > 0 {
		bulletColor = core.ColorBrightCyan
	}
	w.Bullets.Each(func(_ core.Handle, b *Bullet) { fill(b.Body.Box(), bulletColor) })
	w.EnemyBullets.Each(func(_ core.Handle, b *EnemyBullet) { fill(b.Body.Box(), core.ColorMagenta) })

	pb := w.Player.Body.Box()
	if w.Jetpack {
		off := g.cfg.PowerUps.SideOffset
		fill(core.Box{X: pb.X - off, Y: pb.Y, W: 8, H: 16}, core.ColorGray)
		fill(core.Box{X: pb.X + off, Y: pb.Y, W: 8, H: 16}, core.ColorGray)
	}
	playerColor := core.ColorBrightWhite
	if w.Charge.Active() {
		playerColor = core.ColorBrightYellow
		progress := w.Charge.Progress(g.sched.Now(), config.Ms(g.cfg.Charge.ThresholdMs))
		c.FillRect(pb.X-15, pb.Top()-cam-8, 30*progress, 4, core.ColorBrightYellow)
	}
	fill(pb, playerColor)

	c.Text(8, 8, g.hudLine(), core.ColorBrightGreen)
	for i := len(g.fx.banners) - 1; i >= 0; i-- {
		b := g.fx.banners[i]
		row := float64(len(g.fx.banners) - 1 - i)
		c.Text(g.cfg.World.Width/2-float64(len(b.Text))*3.5, 80+row*textLine, b.Text, b.Color)
	}
	if g.paused {
		c.Text(g.cfg.World.Width/2-21, g.cfg.World.ViewHeight/2, "PAUSED", core.ColorBrightYellow)
	}

	g.session.DrawOverlay(c, g.Title(), g.cfg.World.Width, g.cfg.World.ViewHeight)
}
