package chainfall

import (
	"math"

	"github.com/vovakirdan/chainfall/internal/core"
)

// Snapshot captures the observable run state for determinism tests.
// Positions are stored in hundredths of a world unit.
type Snapshot struct {
	Tick        uint64
	Phase       string
	Score       int
	Ammo        int
	Combo       int
	MaxDepth    int
	WorldOffset int
	CameraY     int
	PlayerX     int
	PlayerY     int
	HazardOn    bool
	Jetpack     bool

	// Platform data, 3 ints each: X, Y, Width
	PlatformData []int
	// Enemy data, 3 ints each: Kind, X, Y
	EnemyData        []int
	BulletCount      int
	EnemyBulletCount int
	PowerUpCount     int
}

func centi(v float64) int {
	return int(math.Round(v * 100))
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	w := g.world
	platforms := make([]int, 0, len(w.Platforms)*3)
	for _, p := range w.Platforms {
		platforms = append(platforms, centi(p.X), centi(p.Y), centi(p.Width))
	}
	enemies := make([]int, 0, w.Enemies.Len()*3)
	w.Enemies.Each(func(_ core.Handle, e *Enemy) {
		enemies = append(enemies, int(e.Kind), centi(e.Body.X), centi(e.Body.Y))
	})

	return Snapshot{
		Tick:             g.ticks,
		Phase:            g.session.Phase().String(),
		Score:            g.run.Score,
		Ammo:             g.run.Ammo,
		Combo:            g.run.ComboCount,
		MaxDepth:         int(g.run.MaxDepth),
		WorldOffset:      int(g.run.WorldOffset),
		CameraY:          centi(w.CameraY),
		PlayerX:          centi(w.Player.Body.X),
		PlayerY:          centi(w.Player.Body.Y),
		HazardOn:         w.Hazards.On,
		Jetpack:          w.Jetpack,
		PlatformData:     platforms,
		EnemyData:        enemies,
		BulletCount:      w.Bullets.Len(),
		EnemyBulletCount: w.EnemyBullets.Len(),
		PowerUpCount:     w.PowerUps.Len(),
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	for _, v := range []int{
		snap.Score, snap.Ammo, snap.Combo, snap.MaxDepth, snap.WorldOffset,
		snap.CameraY, snap.PlayerX, snap.PlayerY,
		snap.BulletCount, snap.EnemyBulletCount, snap.PowerUpCount,
	} {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.PlatformData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.EnemyData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, c := range snap.Phase {
		h = h*31 + uint64(c)
	}
	if snap.HazardOn {
		h = h*31 + 1
	}
	if snap.Jetpack {
		h = h*31 + 2
	}
	return h
}
