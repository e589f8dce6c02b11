package chainfall

import (
	"testing"
	"time"

	"github.com/vovakirdan/chainfall/internal/core"
)

func airborneAt(w *World, x, y float64) {
	b := &w.Player.Body
	b.X, b.Y = x, y
	b.prevX, b.prevY = x, y
	b.VX, b.VY = 0, 0
	b.Blocked = Blocked{}
	w.Player.wasOnGround = false
}

func TestNormalShotDeflectsOffShield(t *testing.T) {
	g := newTestGame(t, "", 1)
	w := emptyWorld(g)
	airborneAt(w, 400, 300)
	h := placeEnemy(w, Walker, true, 400, 400)

	proj := Projectile{Kind: ProjectileNormal}
	if got := w.resolveHit(&proj, h); got != OutcomeDeflected {
		t.Fatalf("expected deflection, got %v", got)
	}
	if !proj.Spent() {
		t.Error("deflected projectile should be spent")
	}
	if !w.Enemies.Contains(h) {
		t.Error("shielded enemy died from a normal shot")
	}
	if g.run.Score != 0 || g.run.ComboCount != 0 {
		t.Errorf("deflection changed score %d or combo %d", g.run.Score, g.run.ComboCount)
	}
	if got := w.resolveHit(&proj, h); got != OutcomeNone {
		t.Errorf("spent projectile hit again: %v", got)
	}
}

func TestChargedShotBreaksShield(t *testing.T) {
	g := newTestGame(t, "", 1)
	w := emptyWorld(g)
	airborneAt(w, 400, 300)
	g.run.Ammo = 3
	h := placeEnemy(w, Jumper, true, 400, 420)

	proj := Projectile{Kind: ProjectileCharged, PierceRemaining: 2}
	if got := w.resolveHit(&proj, h); got != OutcomeKilled {
		t.Fatalf("expected kill, got %v", got)
	}
	if proj.Spent() || proj.PierceRemaining != 1 {
		t.Errorf("charged projectile should pierce once more, remaining %d", proj.PierceRemaining)
	}
	if g.run.Score != 135 {
		t.Errorf("expected 135 points (90 x1.5), got %d", g.run.Score)
	}
	if g.run.ComboCount != 1 || g.run.Ammo != g.run.MaxAmmo {
		t.Errorf("expected combo 1 and full ammo, got %d and %d", g.run.ComboCount, g.run.Ammo)
	}
	if w.PowerUps.Len() != 1 {
		t.Fatalf("shielded kill should drop a power-up, have %d", w.PowerUps.Len())
	}
	w.PowerUps.Each(func(_ core.Handle, p *PowerUp) {
		if p.Body.X != 400 || p.Body.Y != 380 {
			t.Errorf("power-up at (%v, %v), want (400, 380)", p.Body.X, p.Body.Y)
		}
	})
	for _, eh := range w.Platforms[1].Enemies {
		if eh == h {
			t.Error("dead enemy still listed on its platform")
		}
	}
	if w.resolveHit(&proj, h) != OutcomeNone {
		t.Error("stale handle should resolve to nothing")
	}
}

func TestNoPowerUpWithJetpack(t *testing.T) {
	g := newTestGame(t, "", 1)
	w := emptyWorld(g)
	airborneAt(w, 400, 300)
	w.Jetpack = true
	h := placeEnemy(w, Walker, true, 400, 420)

	proj := Projectile{Kind: ProjectileCharged, PierceRemaining: 1}
	w.resolveHit(&proj, h)
	if w.PowerUps.Len() != 0 {
		t.Errorf("power-up dropped while the jetpack is active")
	}
}

func TestGroundedKillScoresBase(t *testing.T) {
	g := newTestGame(t, "", 1)
	w := emptyWorld(g)
	airborneAt(w, 400, 300)
	w.Player.Body.Blocked.Down = true
	g.run.Ammo = 2
	h := placeEnemy(w, Shooter, false, 400, 420)

	proj := Projectile{Kind: ProjectileNormal}
	if got := w.resolveHit(&proj, h); got != OutcomeKilled {
		t.Fatalf("expected kill, got %v", got)
	}
	if g.run.Score != 80 || g.run.ComboCount != 0 {
		t.Errorf("grounded kill: score %d combo %d, want 80 and 0", g.run.Score, g.run.ComboCount)
	}
	if g.run.Ammo != g.run.MaxAmmo {
		t.Errorf("kill should refill ammo, have %d", g.run.Ammo)
	}
}

func TestFireBullet(t *testing.T) {
	g := newTestGame(t, "", 1)
	w := emptyWorld(g)

	w.Player.Body.Blocked.Down = true
	if w.fireBullet() {
		t.Fatal("fired while standing on a platform")
	}

	airborneAt(w, 400, 300)
	if !w.fireBullet() {
		t.Fatal("airborne shot refused")
	}
	if w.Bullets.Len() != 1 || g.run.Ammo != 9 {
		t.Errorf("expected 1 bullet and 9 rounds, got %d and %d", w.Bullets.Len(), g.run.Ammo)
	}
	if w.Player.Body.VY != -240 {
		t.Errorf("recoil should set vy to -240, got %v", w.Player.Body.VY)
	}

	w.Jetpack = true
	w.fireBullet()
	if w.Bullets.Len() != 4 || g.run.Ammo != 8 {
		t.Errorf("jetpack shot: expected 4 bullets and 8 rounds, got %d and %d", w.Bullets.Len(), g.run.Ammo)
	}

	g.run.Ammo = 0
	if w.fireBullet() {
		t.Error("fired without ammo")
	}
}

func TestBulletKillsEnemyBelow(t *testing.T) {
	g := newTestGame(t, "", 1)
	w := emptyWorld(g)
	airborneAt(w, 400, 300)
	h := placeEnemy(w, Walker, false, 400, 330)
	w.Platforms = w.Platforms[:2]
	w.Platforms[1].Y = 5000

	w.fireBullet()
	for i := 0; i < 10 && w.Enemies.Contains(h); i++ {
		w.stepBullets(1.0 / 60)
	}
	if w.Enemies.Contains(h) {
		t.Fatal("bullet passed through the enemy")
	}
	if w.Bullets.Len() != 0 {
		t.Errorf("normal bullet should be spent by its hit, %d left", w.Bullets.Len())
	}
	if g.run.Score != 75 {
		t.Errorf("expected 75 points, got %d", g.run.Score)
	}
}

func TestChargedRayPiercesNearestFirst(t *testing.T) {
	g := newTestGame(t, "", 1)
	w := emptyWorld(g)
	airborneAt(w, 400, 300)
	g.run.Ammo = 5

	far := placeEnemy(w, Walker, false, 395, 500)
	near := placeEnemy(w, Walker, false, 400, 400)
	mid := placeEnemy(w, Walker, false, 405, 450)
	off := placeEnemy(w, Walker, false, 460, 420)

	if !w.startCharging() {
		t.Fatal("charge refused")
	}
	if w.TimeScale != g.cfg.Charge.SlowMo {
		t.Errorf("charging should slow time to %v, got %v", g.cfg.Charge.SlowMo, w.TimeScale)
	}
	g.sched.Advance(time.Second)

	if kills := w.releaseCharge(); kills != 2 {
		t.Fatalf("expected 2 kills, got %d", kills)
	}
	if w.Enemies.Contains(near) || w.Enemies.Contains(mid) {
		t.Error("the two nearest enemies should be dead")
	}
	if !w.Enemies.Contains(far) || !w.Enemies.Contains(off) {
		t.Error("pierce exhausted; farther and off-column enemies should live")
	}
	if g.run.Score != 175 {
		t.Errorf("expected 75+100 points, got %d", g.run.Score)
	}
	if g.run.Ammo != 8 {
		t.Errorf("expected refill then cost 2, got %d rounds", g.run.Ammo)
	}
	if w.Player.Body.VY != -120 {
		t.Errorf("ray recoil should be half, vy %v", w.Player.Body.VY)
	}
	if w.TimeScale != 1 || w.Charge.Active() {
		t.Error("firing should end the charge and restore time")
	}
	if !hasBanner(g, "DOUBLE KILL!") {
		t.Errorf("missing DOUBLE KILL! banner, have %+v", g.Banners())
	}
}

func TestChargedRayHasNoRangeLimit(t *testing.T) {
	g := newTestGame(t, "", 1)
	w := emptyWorld(g)
	airborneAt(w, 400, 300)
	deep := placeEnemy(w, Walker, false, 400, 300+5000)

	w.startCharging()
	g.sched.Advance(time.Second)

	if kills := w.releaseCharge(); kills != 1 || w.Enemies.Contains(deep) {
		t.Errorf("ray should reach every aligned enemy below, got %d kills", kills)
	}
}

func TestEarlyReleaseCancelsCharge(t *testing.T) {
	g := newTestGame(t, "", 1)
	w := emptyWorld(g)
	airborneAt(w, 400, 300)
	placeEnemy(w, Walker, false, 400, 400)

	w.startCharging()
	g.sched.Advance(500 * time.Millisecond)

	if kills := w.releaseCharge(); kills != 0 {
		t.Errorf("early release fired the ray: %d kills", kills)
	}
	if g.run.Ammo != 10 || w.TimeScale != 1 || w.Charge.Active() {
		t.Errorf("cancel should keep ammo and restore time: ammo %d scale %v", g.run.Ammo, w.TimeScale)
	}
}

func TestLandingCancelsCharge(t *testing.T) {
	g := newTestGame(t, "", 1)
	w := emptyWorld(g)
	p := w.Platforms[1]
	airborneAt(w, p.X, p.Top()-w.Player.Body.H/2-1)
	w.Player.Body.VY = 120

	if !w.startCharging() {
		t.Fatal("charge refused")
	}
	for i := 0; i < 10 && !w.Player.OnGround(); i++ {
		w.stepPlayer(1.0 / 60)
	}

	if !w.Player.OnGround() {
		t.Fatal("player never landed")
	}
	if w.Charge.Active() || w.TimeScale != 1 {
		t.Errorf("landing should cancel the charge: active %v scale %v", w.Charge.Active(), w.TimeScale)
	}
	if g.run.Ammo != g.run.MaxAmmo {
		t.Errorf("cancelled charge should not spend ammo, have %d", g.run.Ammo)
	}
}

func TestStartChargingNeedsAirAndAmmo(t *testing.T) {
	g := newTestGame(t, "", 1)
	w := emptyWorld(g)

	w.Player.Body.Blocked.Down = true
	if w.startCharging() {
		t.Error("charged on the ground")
	}

	airborneAt(w, 400, 300)
	g.run.Ammo = 1
	if w.startCharging() {
		t.Error("charged with a single round")
	}
	if !w.fireBullet() {
		t.Error("normal fire should still work with one round")
	}
}
