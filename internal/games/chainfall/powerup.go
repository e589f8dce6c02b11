package chainfall

import "github.com/vovakirdan/chainfall/internal/core"

// PowerUp is a floating jetpack pickup. It does not move.
type PowerUp struct {
	Body Body
}

func (w *World) spawnPowerUp(x, y float64) {
	size := w.cfg.PowerUps.Size
	w.PowerUps.Insert(PowerUp{Body: Body{X: x, Y: y, W: size, H: size, prevX: x, prevY: y}})
}

// stepPowerUps drops pickups that left the tracked range.
func (w *World) stepPowerUps() {
	pc := w.cfg.PowerUps
	above, below := w.CameraY-pc.CullAbove, w.CameraY+pc.CullBelow
	w.PowerUps.Each(func(h core.Handle, p *PowerUp) {
		if p.Body.Y > below || p.Body.Y < above {
			w.PowerUps.Remove(h)
		}
	})
}

// collectPowerUps activates the jetpack for every pickup the player touches.
func (w *World) collectPowerUps() {
	pb := w.Player.Body.Box()
	w.PowerUps.Each(func(h core.Handle, p *PowerUp) {
		if !p.Body.Box().Overlaps(pb) {
			return
		}
		w.activateJetpack()
		w.fx.tone(880, 100)
		w.fx.tone(1100, 100)
		w.PowerUps.Remove(h)
	})
}

// activateJetpack adds side shots to every normal shot until the run ends.
func (w *World) activateJetpack() {
	w.Jetpack = true
	w.fx.tone(660, 150)
}

func (w *World) deactivateJetpack() {
	if !w.Jetpack {
		return
	}
	w.Jetpack = false
	w.fx.tone(440, 100)
}
