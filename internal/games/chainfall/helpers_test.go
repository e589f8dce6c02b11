package chainfall

import (
	"testing"

	"github.com/vovakirdan/chainfall/internal/config"
	"github.com/vovakirdan/chainfall/internal/core"
)

func newTestGame(t *testing.T, mode string, seed int64) *Game {
	t.Helper()
	g := NewWithConfig(config.DefaultChainfallConfig())
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed, Mode: mode})
	return g
}

func press(a core.Action) core.InputFrame {
	f := core.NewInputFrame()
	f.Set(a)
	return f
}

// emptyWorld removes every entity so a test can place its own.
func emptyWorld(g *Game) *World {
	w := g.world
	w.teardown()
	w.Player.Body.Blocked = Blocked{}
	return w
}

// placeEnemy inserts an enemy attached to platform 1.
func placeEnemy(w *World, kind EnemyKind, shielded bool, x, y float64) core.Handle {
	p := w.Platforms[1]
	h := w.Enemies.Insert(Enemy{
		Kind:     kind,
		Shielded: shielded,
		Platform: p.ID,
		Body:     Body{X: x, Y: y, W: 28, H: 14, prevX: x, prevY: y},
		MinX:     x - 50,
		MaxX:     x + 50,
		Dir:      1,
		Speed:    40,
	})
	p.Enemies = append(p.Enemies, h)
	return h
}

func hasBanner(g *Game, text string) bool {
	for _, b := range g.Banners() {
		if b.Text == text {
			return true
		}
	}
	return false
}
