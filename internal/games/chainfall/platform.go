package chainfall

import (
	"math/rand"

	"github.com/vovakirdan/chainfall/internal/core"
)

// Platform is a static ledge. Platforms are created as the camera descends
// and recycled in place, keeping their ID and slot, once they scroll out
// above the view.
type Platform struct {
	ID        int     // index in World.Platforms, stable for the run
	X, Y      float64 // center
	Width     float64
	Height    float64
	Enemies   []core.Handle
	NoEnemies bool
}

// Box returns the collision box.
func (p *Platform) Box() core.Box {
	return core.Box{X: p.X, Y: p.Y, W: p.Width, H: p.Height}
}

// Left returns the x-coordinate of the left edge.
func (p *Platform) Left() float64 { return p.X - p.Width/2 }

// Right returns the x-coordinate of the right edge.
func (p *Platform) Right() float64 { return p.X + p.Width/2 }

// Top returns the y-coordinate of the walkable surface.
func (p *Platform) Top() float64 { return p.Y - p.Height/2 }

// between returns a uniform integer in [lo, hi].
func between(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

// randomSpan picks a width and a center x that keeps the platform inside
// [MinLeft, MaxRight].
func (w *World) randomSpan() (x, width float64) {
	pc := w.cfg.Platforms
	wd := between(w.rng, pc.MinWidth, pc.MaxWidth)
	left := between(w.rng, pc.MinLeft, pc.MaxRight-wd)
	return float64(left) + float64(wd)/2, float64(wd)
}

func (w *World) addPlatform(x, y, width float64, noEnemies bool) *Platform {
	p := &Platform{
		ID:        len(w.Platforms),
		X:         x,
		Y:         y,
		Width:     width,
		Height:    w.cfg.Platforms.Height,
		NoEnemies: noEnemies,
	}
	w.Platforms = append(w.Platforms, p)
	return p
}

// deepestPlatformY returns the largest platform y, or floor when it is deeper.
func (w *World) deepestPlatformY(floor float64) float64 {
	y := floor
	for _, p := range w.Platforms {
		y = max(y, p.Y)
	}
	return y
}

// seedAhead places platforms from below the deepest existing one down to
// toY, MinGap..MaxGap apart, and rolls enemies for each. It returns the
// number of platforms created.
func (w *World) seedAhead(fromY, toY float64) int {
	pc := w.cfg.Platforms
	deepest := fromY - 100
	if len(w.Platforms) > 0 {
		deepest = w.deepestPlatformY(w.Platforms[0].Y)
	}

	n := 0
	for y := max(fromY, deepest+float64(pc.MinGap)); y < toY; y += float64(between(w.rng, pc.MinGap, pc.MaxGap)) {
		x, width := w.randomSpan()
		p := w.addPlatform(x, y, width, false)
		w.maybeSpawnEnemies(p)
		n++
	}
	return n
}

// recycle moves p to newY with a fresh span, destroys the enemies it still
// carries and rolls new ones.
func (w *World) recycle(p *Platform, newY float64) {
	p.X, p.Width = w.randomSpan()
	p.Y = newY
	p.Height = w.cfg.Platforms.Height
	p.NoEnemies = false
	w.detachEnemies(p)
	w.maybeSpawnEnemies(p)
}

// recycleOffscreen recycles every platform that scrolled above the view.
func (w *World) recycleOffscreen() {
	wc, pc := w.cfg.World, w.cfg.Platforms
	limit := w.CameraY - wc.RecycleMargin
	for _, p := range w.Platforms {
		if p.Y >= limit {
			continue
		}
		deepest := w.deepestPlatformY(w.CameraY + wc.RecycleBase)
		w.recycle(p, deepest+float64(between(w.rng, pc.MinGap, pc.MaxGap)))
	}
}

// detachEnemies destroys every enemy standing on p.
func (w *World) detachEnemies(p *Platform) {
	for _, h := range p.Enemies {
		w.Enemies.Remove(h)
	}
	p.Enemies = p.Enemies[:0]
}

// pruneEnemyLists drops stale handles from every platform.
func (w *World) pruneEnemyLists() {
	for _, p := range w.Platforms {
		live := p.Enemies[:0]
		for _, h := range p.Enemies {
			if w.Enemies.Contains(h) {
				live = append(live, h)
			}
		}
		p.Enemies = live
	}
}
