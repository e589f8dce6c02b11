package chainfall

import (
	"math"
	"sort"
	"time"

	"github.com/vovakirdan/chainfall/internal/config"
	"github.com/vovakirdan/chainfall/internal/core"
)

// Charge is the hold-to-charge weapon state. Timing uses unscaled time so
// the slow motion it triggers does not stretch the charge itself.
type Charge struct {
	active    bool
	startedAt time.Duration
	looping   bool
}

// Active reports whether the weapon is charging.
func (c *Charge) Active() bool {
	return c.active
}

// Progress returns the charge fraction in [0, 1] at time now.
func (c *Charge) Progress(now, threshold time.Duration) float64 {
	if !c.active {
		return 0
	}
	if threshold <= 0 {
		return 1
	}
	return core.ClampF(float64(now-c.startedAt)/float64(threshold), 0, 1)
}

// startCharging begins a charge when airborne with more than one round.
// The world slows down while charging.
func (w *World) startCharging() bool {
	if w.Charge.active || w.Player.OnGround() || w.run.Ammo <= 1 {
		return false
	}
	cc := w.cfg.Charge
	w.Charge = Charge{active: true, startedAt: w.sched.Now(), looping: true}
	w.TimeScale = cc.SlowMo
	w.fx.cue(core.Cue{Kind: core.CueLoopStart, Freq: cc.ToneMinHz})
	return true
}

// stopCharging ends the charge and restores normal time.
func (w *World) stopCharging(fired bool) {
	if !w.Charge.active {
		return
	}
	if w.Charge.looping {
		w.fx.cue(core.Cue{Kind: core.CueLoopStop})
	}
	w.Charge = Charge{}
	w.TimeScale = 1
	if fired {
		w.fx.tone(1000, 120)
	}
}

// updateCharge sweeps the charge tone with progress and stops it when full.
func (w *World) updateCharge() {
	if !w.Charge.active || !w.Charge.looping {
		return
	}
	cc := w.cfg.Charge
	progress := w.Charge.Progress(w.sched.Now(), config.Ms(cc.ThresholdMs))
	w.fx.cue(core.Cue{Kind: core.CueLoopPitch, Freq: cc.ToneMinHz + (cc.ToneMaxHz-cc.ToneMinHz)*progress})
	if progress >= 1 {
		w.Charge.looping = false
		w.fx.cue(core.Cue{Kind: core.CueLoopStop})
	}
}

// releaseCharge fires the ray when the charge was held long enough with
// enough ammo while airborne, otherwise cancels it.
func (w *World) releaseCharge() int {
	if !w.Charge.active {
		return 0
	}
	cc := w.cfg.Charge
	held := w.sched.Now() - w.Charge.startedAt
	if held >= config.Ms(cc.ThresholdMs) && w.run.Ammo >= cc.Cost && !w.Player.OnGround() {
		w.stopCharging(true)
		return w.fireRay()
	}
	w.stopCharging(false)
	return 0
}

// fireRay hits the enemies in a vertical column below the player, nearest
// first, with one charged projectile. It returns the number of kills.
func (w *World) fireRay() int {
	cc := w.cfg.Charge
	p := &w.Player.Body

	type target struct {
		h    core.Handle
		dist float64
	}
	var targets []target
	w.Enemies.Each(func(h core.Handle, e *Enemy) {
		dist := e.Body.Y - p.Y
		if math.Abs(e.Body.X-p.X) <= cc.RayTolerance && dist > 0 {
			targets = append(targets, target{h, dist})
		}
	})
	sort.SliceStable(targets, func(i, j int) bool { return targets[i].dist < targets[j].dist })

	proj := Projectile{Kind: ProjectileCharged, PierceRemaining: cc.Pierce}
	kills := 0
	for _, t := range targets {
		if proj.Spent() {
			break
		}
		if w.resolveHit(&proj, t.h) == OutcomeKilled {
			kills++
		}
	}

	w.run.SpendAmmo(cc.Cost)
	w.recoil(w.cfg.Player.Recoil * cc.RecoilFactor)
	w.fx.tone(1200, 150)
	return kills
}
