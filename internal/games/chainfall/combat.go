package chainfall

import (
	"github.com/vovakirdan/chainfall/internal/config"
	"github.com/vovakirdan/chainfall/internal/core"
)

// sideShotDrop is how far below the player the jetpack side shots start.
const sideShotDrop = 10

// ProjectileKind distinguishes ordinary bullets from the charged ray.
type ProjectileKind uint8

const (
	ProjectileNormal ProjectileKind = iota
	ProjectileCharged
)

// Projectile is the damage carrier consumed by resolveHit. Normal
// projectiles are spent by their first hit; charged ones pierce until
// PierceRemaining reaches zero.
type Projectile struct {
	Kind            ProjectileKind
	PierceRemaining int
	spent           bool
}

// Spent reports whether the projectile can no longer hit anything.
func (p *Projectile) Spent() bool {
	return p.spent
}

func (p *Projectile) consume() {
	if p.Kind == ProjectileCharged {
		p.PierceRemaining--
		if p.PierceRemaining > 0 {
			return
		}
	}
	p.spent = true
}

// Bullet is a player shot travelling straight down.
type Bullet struct {
	Body       Body
	Projectile Projectile
}

// EnemyBullet travels straight up at a fixed speed.
type EnemyBullet struct {
	Body Body
}

// HitOutcome is the result of resolveHit.
type HitOutcome uint8

const (
	OutcomeNone      HitOutcome = iota // stale enemy or spent projectile
	OutcomeDeflected                   // shield stopped a normal projectile
	OutcomeKilled
)

// scoreTable returns the base scores indexed by EnemyKind.
func scoreTable(c config.ChainfallCombat) [3]int {
	return [3]int{
		Walker:  c.ScoreWalker,
		Jumper:  c.ScoreJumper,
		Shooter: c.ScoreShooter,
	}
}

// resolveHit applies one projectile hit on the enemy behind h.
//
// A shielded enemy deflects a normal projectile and nothing else changes.
// Otherwise the projectile is consumed and the enemy dies: it is removed
// from its platform and the arena, the kill is scored (with combo when the
// player is airborne) and ammo refills.
func (w *World) resolveHit(proj *Projectile, h core.Handle) HitOutcome {
	e, ok := w.Enemies.Get(h)
	if !ok || proj.Spent() {
		return OutcomeNone
	}

	if e.Shielded && proj.Kind == ProjectileNormal {
		proj.spent = true
		w.fx.tone(800, 80)
		return OutcomeDeflected
	}

	proj.consume()
	w.killEnemy(h, e)
	return OutcomeKilled
}

func (w *World) killEnemy(h core.Handle, e *Enemy) {
	cc := w.cfg.Combat
	run := w.run

	if n := run.registerKill(w.sched.Now(), config.Ms(cc.MultiKillWindowMs)); n >= 2 {
		text, color, _ := multiKillBanner(n)
		w.fx.banner(text, color)
	}

	if e.Platform < len(w.Platforms) {
		p := w.Platforms[e.Platform]
		for i, ph := range p.Enemies {
			if ph == h {
				p.Enemies = append(p.Enemies[:i], p.Enemies[i+1:]...)
				break
			}
		}
	}

	base := e.baseScore(scoreTable(cc), cc.ShieldMult)
	if !w.Player.OnGround() {
		run.IncrementCombo()
		run.AddScore(run.Award(base))
		if label, color := comboLabel(run.ComboCount); label != "" {
			w.fx.banner(label, color)
		}
		w.fx.tone(660*(1+0.1*float64(run.ComboCount)), 80)
		run.RefillAmmo()

		if run.ComboCount > run.HighestCombo {
			run.HighestCombo = run.ComboCount
			if text, color, ok := comboMilestone(run.ComboCount); ok {
				w.fx.banner(text, color)
			}
		}
	} else {
		run.AddScore(base)
		run.RefillAmmo()
		w.fx.tone(660, 80)
	}

	for cc.ScoreMilestone > 0 && run.Score >= run.NextScoreMilestone {
		w.fx.banner(scoreMilestoneText(run.NextScoreMilestone), core.ColorGreen)
		run.NextScoreMilestone += cc.ScoreMilestone
	}

	ex, ey, shielded := e.Body.X, e.Body.Y, e.Shielded
	w.Enemies.Remove(h)

	if shielded && !w.Jetpack && w.cfg.PowerUps.Enabled {
		w.spawnPowerUp(ex, ey-w.cfg.PowerUps.DropOffset)
	}
}

// fireBullet shoots downward. It needs the player airborne, ammo left and
// no charge in progress.
func (w *World) fireBullet() bool {
	run := w.run
	if w.Player.OnGround() || run.Ammo <= 0 || w.Charge.Active() {
		return false
	}

	cc := w.cfg.Combat
	p := &w.Player.Body
	w.spawnBullet(p.X, p.Y+cc.BulletOffset)
	if w.Jetpack {
		off := w.cfg.PowerUps.SideOffset
		w.spawnBullet(p.X-off, p.Y+sideShotDrop)
		w.spawnBullet(p.X+off, p.Y+sideShotDrop)
	}

	run.SpendAmmo(1)
	w.recoil(w.cfg.Player.Recoil)
	w.fx.tone(880, 50)
	return true
}

func (w *World) spawnBullet(x, y float64) {
	cc := w.cfg.Combat
	w.Bullets.Insert(Bullet{
		Body: Body{
			X: x, Y: y,
			W: cc.BulletWidth, H: cc.BulletHeight,
			VY:    cc.BulletSpeed,
			prevX: x, prevY: y,
		},
		Projectile: Projectile{Kind: ProjectileNormal},
	})
}

// recoil kicks the player upward by at least r.
func (w *World) recoil(r float64) {
	b := &w.Player.Body
	b.VY = min(b.VY-r, -r)
}

// stepBullets moves player bullets, resolves their enemy hits and
// destroys those that hit a platform or fall out of the tracked range.
func (w *World) stepBullets(dt float64) {
	w.Bullets.Each(func(_ core.Handle, b *Bullet) {
		b.Body.integrate(dt, 0, 0, 0)
	})
	w.resolveBulletHits()

	limit := w.CameraY + w.cfg.Combat.BulletCullBelow
	w.Bullets.Each(func(h core.Handle, b *Bullet) {
		if b.Body.Y > limit || w.hitsPlatform(b.Body.Box()) {
			w.Bullets.Remove(h)
		}
	})
}

// stepEnemyBullets moves enemy bullets with the same rules.
func (w *World) stepEnemyBullets(dt float64) {
	ec := w.cfg.Enemies
	above, below := w.CameraY-ec.BulletCullAbove, w.CameraY+ec.BulletCullBelow
	w.EnemyBullets.Each(func(h core.Handle, b *EnemyBullet) {
		b.Body.VX = 0
		b.Body.VY = ec.BulletSpeed
		b.Body.integrate(dt, 0, 0, 0)
		if b.Body.Y < above || b.Body.Y > below || w.hitsPlatform(b.Body.Box()) {
			w.EnemyBullets.Remove(h)
		}
	})
}

func (w *World) hitsPlatform(box core.Box) bool {
	for _, p := range w.Platforms {
		if box.Overlaps(p.Box()) {
			return true
		}
	}
	return false
}

// resolveBulletHits tests every live bullet against every live enemy.
func (w *World) resolveBulletHits() {
	w.Bullets.Each(func(bh core.Handle, b *Bullet) {
		box := b.Body.Box()
		for _, eh := range w.Enemies.Handles() {
			e, ok := w.Enemies.Get(eh)
			if !ok || !box.Overlaps(e.Body.Box()) {
				continue
			}
			w.resolveHit(&b.Projectile, eh)
			if b.Projectile.Spent() {
				w.Bullets.Remove(bh)
				return
			}
		}
	})
}
