package chainfall

import (
	"math"

	"github.com/vovakirdan/chainfall/internal/core"
)

// EnemyKind selects an enemy's behavior.
type EnemyKind uint8

const (
	Walker  EnemyKind = iota // patrols its platform
	Jumper                   // patrols and hops on a cooldown
	Shooter                  // patrols slowly and fires upward
)

func (k EnemyKind) String() string {
	switch k {
	case Jumper:
		return "jumper"
	case Shooter:
		return "shooterUp"
	default:
		return "walker"
	}
}

// minPatrolSpeed is the speed below which a patrolling enemy is kicked back
// into motion.
const minPatrolSpeed = 5

// Enemy patrols the platform it was spawned on. Platform is the index of
// that platform in World.Platforms; the platform lists the enemy's handle.
type Enemy struct {
	Kind     EnemyKind
	Body     Body
	MinX     float64
	MaxX     float64
	Dir      float64 // -1 or 1
	Speed    float64
	Shielded bool
	Platform int

	JumpCooldownMs  float64
	JumpTimerMs     float64
	ShootCooldownMs float64
	ShootTimerMs    float64
}

// baseScore returns the points for killing the enemy before any multiplier.
func (e *Enemy) baseScore(scores [3]int, shieldMult float64) int {
	base := scores[e.Kind]
	if e.Shielded {
		return int(math.Floor(float64(base) * shieldMult))
	}
	return base
}

// maybeSpawnEnemies rolls the enemy count for p and spawns them.
func (w *World) maybeSpawnEnemies(p *Platform) {
	if p.NoEnemies {
		return
	}
	ec := w.cfg.Enemies
	m := w.difficulty()

	count := 0
	if w.rng.Intn(100) < ec.BaseChance+int(math.Floor(m*float64(ec.BaseChanceGain))) {
		count = 1
	}
	if p.Width > ec.SecondMinWidth && w.rng.Intn(100) < ec.SecondChance+int(math.Floor(m*float64(ec.SecondChanceGain))) {
		count = min(2, count+1)
	}

	maxEnemies := int(math.Floor(2 * (1 + m*(ec.CountMultMax-1))))
	for i := 0; i < count && len(p.Enemies) < maxEnemies; i++ {
		w.spawnEnemy(p, m)
	}
}

// spawnEnemy places one enemy on p. m is the difficulty multiplier.
func (w *World) spawnEnemy(p *Platform, m float64) core.Handle {
	ec := w.cfg.Enemies
	scale := 1 + m*(ec.SpawnMultMax-1)

	kind := Walker
	if w.rng.Float64() < ec.ShooterChance*scale {
		kind = Shooter
	} else if w.rng.Float64() < ec.JumperChance*scale {
		kind = Jumper
	}

	lo := int(math.Floor(p.Left() + ec.SpawnInset))
	hi := int(math.Floor(p.Right() - ec.SpawnInset))

	e := Enemy{
		Kind: kind,
		Body: Body{
			X:       float64(between(w.rng, lo, hi)),
			Y:       p.Top() - ec.Height/2,
			W:       ec.Width,
			H:       ec.Height,
			Gravity: kind == Jumper,
		},
		MinX:     p.Left() + ec.PatrolInset,
		MaxX:     p.Right() - ec.PatrolInset,
		Dir:      1,
		Shielded: w.rng.Float64() < ec.ShieldChance,
		Platform: p.ID,
	}
	if w.rng.Intn(2) == 0 {
		e.Dir = -1
	}
	if kind == Shooter {
		e.Speed = float64(between(w.rng, ec.ShooterSpeedMin, ec.ShooterSpeedMax))
		e.ShootCooldownMs = float64(between(w.rng, ec.ShootCooldownMinMs, ec.ShootCooldownMaxMs))
	} else {
		e.Speed = float64(between(w.rng, ec.WalkSpeedMin, ec.WalkSpeedMax))
	}
	if kind == Jumper {
		e.JumpCooldownMs = float64(between(w.rng, ec.JumpCooldownMinMs, ec.JumpCooldownMaxMs))
	}
	e.Body.VX = e.Dir * e.Speed
	e.Body.prevX, e.Body.prevY = e.Body.X, e.Body.Y

	h := w.Enemies.Insert(e)
	p.Enemies = append(p.Enemies, h)
	return h
}

// updateEnemies runs one behavior tick of dt seconds for every enemy.
func (w *World) updateEnemies(dt float64) {
	shooters := 0
	w.Enemies.Each(func(_ core.Handle, e *Enemy) {
		if e.Kind == Shooter {
			shooters++
		}
	})

	dtMs := dt * 1000
	w.Enemies.Each(func(_ core.Handle, e *Enemy) {
		b := &e.Body
		if e.Kind != Jumper {
			b.VY = 0
		}
		if math.Abs(b.VX) < minPatrolSpeed {
			b.VX = e.Dir * e.Speed
		}

		b.integrate(dt, w.cfg.World.Gravity, 0, 0)
		if e.Kind == Jumper && e.Platform < len(w.Platforms) {
			b.collide(w.Platforms[e.Platform].Box())
		}
		w.patrol(e)

		switch e.Kind {
		case Jumper:
			e.JumpTimerMs += dtMs
			if b.Blocked.Down && e.JumpTimerMs >= e.JumpCooldownMs {
				b.VY = w.cfg.Enemies.JumpVelocity
				e.JumpTimerMs = 0
			}
		case Shooter:
			e.ShootTimerMs += dtMs
			if e.ShootTimerMs >= e.ShootCooldownMs {
				w.fireEnemyBullet(e)
				e.ShootTimerMs = 0
				e.ShootCooldownMs = w.shootCooldown(shooters)
			}
		}
	})

	w.reverseCrowded()
	w.pruneEnemyLists()
}

// patrol keeps the enemy inside [MinX, MaxX], turning it around at the edges.
func (w *World) patrol(e *Enemy) {
	b := &e.Body
	switch {
	case b.X <= e.MinX:
		b.X = e.MinX
		if b.VX < 0 {
			e.Dir = 1
			b.VX = e.Speed
		}
	case b.X >= e.MaxX:
		b.X = e.MaxX
		if b.VX > 0 {
			e.Dir = -1
			b.VX = -e.Speed
		}
	}
}

func (w *World) shootCooldown(shooters int) float64 {
	ec := w.cfg.Enemies
	cd := float64(between(w.rng, ec.ShootCooldownMinMs, ec.ShootCooldownMaxMs))
	if shooters > ec.CrowdedShooters {
		cd *= ec.CrowdedCooldown
	}
	return cd
}

func (w *World) fireEnemyBullet(e *Enemy) {
	ec := w.cfg.Enemies
	w.EnemyBullets.Insert(EnemyBullet{Body: Body{
		X:     e.Body.X,
		Y:     e.Body.Y - e.Body.H/2,
		W:     ec.BulletWidth,
		H:     ec.BulletHeight,
		VY:    ec.BulletSpeed,
		prevX: e.Body.X,
		prevY: e.Body.Y - e.Body.H/2,
	}})
}

// reverseCrowded turns around both enemies of every overlapping pair that
// shares a platform and pushes them apart.
func (w *World) reverseCrowded() {
	for _, p := range w.Platforms {
		for i := 0; i < len(p.Enemies); i++ {
			a, ok := w.Enemies.Get(p.Enemies[i])
			if !ok {
				continue
			}
			for j := i + 1; j < len(p.Enemies); j++ {
				b, ok := w.Enemies.Get(p.Enemies[j])
				if !ok || !a.Body.Box().Overlaps(b.Body.Box()) {
					continue
				}
				a.Dir, b.Dir = -a.Dir, -b.Dir
				a.Body.VX = a.Dir * a.Speed
				b.Body.VX = b.Dir * b.Speed

				left, right := a, b
				if left.Body.X > right.Body.X {
					left, right = right, left
				}
				push := ((left.Body.W+right.Body.W)/2 - (right.Body.X - left.Body.X)) / 2
				left.Body.X = core.ClampF(left.Body.X-push, left.MinX, left.MaxX)
				right.Body.X = core.ClampF(right.Body.X+push, right.MinX, right.MaxX)
			}
		}
	}
}
