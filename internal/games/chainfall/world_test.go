package chainfall

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/chainfall/internal/core"
	"github.com/vovakirdan/chainfall/internal/session"
)

// dropOntoStart places the player just above the start platform, falling.
func dropOntoStart(w *World) {
	start := w.Platforms[0]
	b := &w.Player.Body
	b.X = start.X
	b.Y = start.Top() - b.H/2 - 1
	b.prevX, b.prevY = b.X, b.Y
	b.VY = 100
	b.Blocked = Blocked{}
	w.Player.wasOnGround = false
}

func TestLandingResetsComboInNormalMode(t *testing.T) {
	g := newTestGame(t, core.ModeNormal, 2)
	w := g.world
	dropOntoStart(w)
	g.run.IncrementCombo()
	g.run.IncrementCombo()
	g.run.Ammo = 2

	if cause := w.stepPlayer(1.0 / 60); cause != causeNone {
		t.Fatalf("landing ended a normal run: %v", cause)
	}
	if !w.Player.OnGround() {
		t.Fatal("player should be standing on the start platform")
	}
	if g.run.ComboCount != 0 || g.run.ComboMultiplier != 1 {
		t.Errorf("combo not reset: %d x%v", g.run.ComboCount, g.run.ComboMultiplier)
	}
	if g.run.Ammo != g.run.MaxAmmo {
		t.Errorf("landing should refill ammo, have %d", g.run.Ammo)
	}
}

func TestChallengerLandingWithComboEndsRun(t *testing.T) {
	g := newTestGame(t, core.ModeChallenger, 2)
	dropOntoStart(g.world)
	g.run.IncrementCombo()

	res := g.Step(core.NewInputFrame())
	if !res.State.GameOver {
		t.Fatal("challenger landing with a live combo should end the run")
	}
	if g.Cause() != "COMBO BROKEN" {
		t.Errorf("expected cause COMBO BROKEN, got %q", g.Cause())
	}
	if g.run.ComboCount != 0 {
		t.Errorf("combo should be cleared at game over, got %d", g.run.ComboCount)
	}
}

func TestChallengerLandingWithoutCombo(t *testing.T) {
	g := newTestGame(t, core.ModeChallenger, 2)
	dropOntoStart(g.world)

	res := g.Step(core.NewInputFrame())
	if res.State.GameOver {
		t.Fatalf("landing without a combo ended the run: %s", g.Cause())
	}
}

func TestRebasePreservesRelativePositions(t *testing.T) {
	g := newTestGame(t, "", 4)
	w := g.world
	const eps = 1e-6

	w.CameraY = 200000
	w.Player.Body.Y = 200300
	w.EnemyBullets.Insert(EnemyBullet{Body: Body{X: 100, Y: 200500, W: 4, H: 12}})

	p := w.Platforms[3]
	relPlatform := p.Y - w.Player.Body.Y
	relCamera := w.CameraY - w.Player.Body.Y
	relHazard := w.Hazards.Left.Y - w.Player.Body.Y
	depth := w.Depth(w.Player.Body.Y)

	var handles []core.Handle
	var rel []float64
	w.Enemies.Each(func(h core.Handle, e *Enemy) {
		handles = append(handles, h)
		rel = append(rel, e.Body.Y-w.Player.Body.Y)
	})

	if !w.maybeRebase() {
		t.Fatal("rebase did not trigger at the threshold")
	}
	if g.run.WorldOffset != 150000 {
		t.Errorf("world offset = %v, want 150000", g.run.WorldOffset)
	}
	if w.CameraY != 50000 {
		t.Errorf("camera = %v, want 50000", w.CameraY)
	}
	if got := p.Y - w.Player.Body.Y; math.Abs(got-relPlatform) > eps {
		t.Errorf("platform distance changed %v -> %v", relPlatform, got)
	}
	if got := w.CameraY - w.Player.Body.Y; math.Abs(got-relCamera) > eps {
		t.Errorf("camera distance changed %v -> %v", relCamera, got)
	}
	if got := w.Hazards.Left.Y - w.Player.Body.Y; math.Abs(got-relHazard) > eps {
		t.Errorf("hazard distance changed %v -> %v", relHazard, got)
	}
	for i, h := range handles {
		e, _ := w.Enemies.Get(h)
		if got := e.Body.Y - w.Player.Body.Y; math.Abs(got-rel[i]) > eps {
			t.Errorf("enemy distance changed %v -> %v", rel[i], got)
		}
	}
	w.EnemyBullets.Each(func(_ core.Handle, b *EnemyBullet) {
		if b.Body.Y != 50500 {
			t.Errorf("enemy bullet at %v, want 50500", b.Body.Y)
		}
	})
	if got := w.Depth(w.Player.Body.Y); math.Abs(got-depth) > eps {
		t.Errorf("depth changed across rebase: %v -> %v", depth, got)
	}
	if w.maybeRebase() {
		t.Error("rebase triggered twice")
	}
}

func TestEnsureCapacityGrowsInChunks(t *testing.T) {
	g := newTestGame(t, "", 4)
	w := g.world
	if w.WorldBottom != 20000 {
		t.Fatalf("initial bottom = %v", w.WorldBottom)
	}
	w.ensureCapacity(30000)
	if w.WorldBottom != 40000 {
		t.Errorf("expected bottom 40000, got %v", w.WorldBottom)
	}
	w.ensureCapacity(100)
	if w.WorldBottom != 40000 {
		t.Errorf("capacity shrank to %v", w.WorldBottom)
	}
}

func TestDepthMilestones(t *testing.T) {
	g := newTestGame(t, "", 4)
	w := g.world

	w.Player.Body.Y = 150 + 1000
	w.trackDepth()
	if !hasBanner(g, "1000m DEPTH!") {
		t.Fatalf("missing depth banner, have %+v", g.Banners())
	}
	if g.run.NextDepthMilestone != 1500 {
		t.Errorf("next milestone = %d, want 1500", g.run.NextDepthMilestone)
	}

	w.Player.Body.Y = 150 + 2300
	w.trackDepth()
	if g.run.NextDepthMilestone != 3375 {
		t.Errorf("next milestone = %d, want 3375", g.run.NextDepthMilestone)
	}
	if g.run.MaxDepth != 2300 {
		t.Errorf("max depth = %v, want 2300", g.run.MaxDepth)
	}

	w.Player.Body.Y = 150
	w.trackDepth()
	if g.run.MaxDepth != 2300 {
		t.Errorf("max depth decreased to %v", g.run.MaxDepth)
	}
}

func TestPatrolStaysInBounds(t *testing.T) {
	g := newTestGame(t, "", 11)
	w := emptyWorld(g)
	w.EnemyBullets.Clear()

	p := w.Platforms[1]
	for i := 0; i < 3; i++ {
		w.spawnEnemy(p, 1)
	}
	if w.Enemies.Len() == 0 {
		t.Fatal("no enemies spawned")
	}

	for tick := 0; tick < 600; tick++ {
		w.updateEnemies(1.0 / 60)
		w.Enemies.Each(func(_ core.Handle, e *Enemy) {
			if e.Body.X < e.MinX || e.Body.X > e.MaxX {
				t.Fatalf("tick %d: %v at %v outside [%v, %v]", tick, e.Kind, e.Body.X, e.MinX, e.MaxX)
			}
			if e.MinX < p.Left() || e.MaxX > p.Right() {
				t.Fatalf("patrol bounds [%v, %v] exceed platform [%v, %v]", e.MinX, e.MaxX, p.Left(), p.Right())
			}
		})
	}
}

func TestJumperLeapsAfterCooldown(t *testing.T) {
	g := newTestGame(t, "", 11)
	w := emptyWorld(g)
	p := w.Platforms[1]

	h := placeEnemy(w, Jumper, false, p.X, p.Top()-7)
	e, _ := w.Enemies.Get(h)
	e.Body.Gravity = true
	e.Speed = 0
	e.MinX, e.MaxX = p.Left()+10, p.Right()-10
	e.JumpCooldownMs = 200

	jumped := -1
	for tick := 1; tick <= 20 && jumped < 0; tick++ {
		w.updateEnemies(1.0 / 60)
		e, _ = w.Enemies.Get(h)
		if e.Body.VY < 0 {
			jumped = tick
		}
	}
	if jumped < 0 {
		t.Fatal("jumper never left its platform")
	}
	if jumped < 11 || jumped > 13 {
		t.Errorf("jumper leapt at tick %d, want once its 200ms cooldown elapsed", jumped)
	}
	if e.Body.VY != g.cfg.Enemies.JumpVelocity || e.JumpTimerMs != 0 {
		t.Errorf("jump vy %v timer %v, want %v and a reset timer", e.Body.VY, e.JumpTimerMs, g.cfg.Enemies.JumpVelocity)
	}
}

func TestShootersFireAndRollCooldown(t *testing.T) {
	tests := []struct {
		name     string
		shooters int
		lo, hi   float64
	}{
		{"single", 1, 1200, 1800},
		{"pair", 2, 1200, 1800},
		{"crowded", 3, 1200 * 1.3, 1800 * 1.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, "", 21)
			w := emptyWorld(g)
			p := w.Platforms[1]

			handles := make([]core.Handle, tt.shooters)
			for i := range handles {
				handles[i] = placeEnemy(w, Shooter, false, 100+float64(i)*200, p.Top()-7)
				e, _ := w.Enemies.Get(handles[i])
				e.ShootCooldownMs = 100
			}

			for tick := 0; tick < 7; tick++ {
				w.updateEnemies(1.0 / 60)
			}

			if got := w.EnemyBullets.Len(); got != tt.shooters {
				t.Fatalf("expected %d enemy bullets, got %d", tt.shooters, got)
			}
			w.EnemyBullets.Each(func(_ core.Handle, b *EnemyBullet) {
				if b.Body.VY != g.cfg.Enemies.BulletSpeed || b.Body.VY >= 0 {
					t.Errorf("enemy bullet vy %v, want upward %v", b.Body.VY, g.cfg.Enemies.BulletSpeed)
				}
				if b.Body.Y >= p.Top() {
					t.Errorf("bullet at y %v should start above the shooter", b.Body.Y)
				}
			})
			for _, h := range handles {
				e, _ := w.Enemies.Get(h)
				if e.ShootCooldownMs < tt.lo || e.ShootCooldownMs > tt.hi {
					t.Errorf("new cooldown %v outside [%v, %v]", e.ShootCooldownMs, tt.lo, tt.hi)
				}
				if e.ShootTimerMs >= 100 {
					t.Errorf("shoot timer %v not reset", e.ShootTimerMs)
				}
			}
		})
	}
}

func TestReverseCrowdedSeparates(t *testing.T) {
	g := newTestGame(t, "", 11)
	w := emptyWorld(g)
	a := placeEnemy(w, Walker, false, 300, 200)
	b := placeEnemy(w, Walker, false, 310, 200)

	w.reverseCrowded()

	ea, _ := w.Enemies.Get(a)
	eb, _ := w.Enemies.Get(b)
	if ea.Dir != -1 || eb.Dir != -1 {
		t.Errorf("both enemies should turn around, dirs %v and %v", ea.Dir, eb.Dir)
	}
	if ea.Body.Box().Overlaps(eb.Body.Box()) && eb.Body.X-ea.Body.X < 28-1e-9 {
		t.Errorf("enemies still overlapping at %v and %v", ea.Body.X, eb.Body.X)
	}
}

func TestHazardsToggleOnSchedule(t *testing.T) {
	g := newTestGame(t, "", 6)
	w := g.world
	if !w.Hazards.On {
		t.Fatal("hazards should start on")
	}

	advance := func(n int) {
		for i := 0; i < n; i++ {
			for _, ev := range g.sched.Advance(g.tick) {
				g.handle(ev)
			}
		}
	}
	advance(72)
	if !w.Hazards.On {
		t.Fatal("hazards toggled before 1.2s")
	}
	advance(1)
	if w.Hazards.On {
		t.Fatal("hazards should toggle off after 1.2s")
	}
	if g.sched.Pending() == 0 {
		t.Error("next toggle not scheduled")
	}
}

func TestHazardKillsOnlyWhenOn(t *testing.T) {
	g := newTestGame(t, "", 6)
	w := emptyWorld(g)
	w.Platforms = w.Platforms[:0]
	w.Player.Body.X = w.Hazards.Left.X
	w.Player.Body.Y = w.Hazards.Left.Y

	w.Hazards.On = false
	if cause := w.resolveOverlaps(); cause != causeNone {
		t.Fatalf("hazard killed while off: %v", cause)
	}
	w.Hazards.On = true
	if cause := w.resolveOverlaps(); cause != causeHazard {
		t.Fatalf("expected hazard death, got %v", cause)
	}
}

func TestEnemyBulletKillsPlayer(t *testing.T) {
	g := newTestGame(t, "", 6)
	w := emptyWorld(g)
	airborneAt(w, 400, 300)
	w.EnemyBullets.Insert(EnemyBullet{Body: Body{X: 400, Y: 300, W: 4, H: 12}})

	if cause := w.resolveOverlaps(); cause != causeShot {
		t.Fatalf("expected shot death, got %v", cause)
	}
	if w.EnemyBullets.Len() != 0 {
		t.Error("the bullet that hit should be removed")
	}
}

func TestPowerUpActivatesJetpack(t *testing.T) {
	g := newTestGame(t, "", 6)
	w := emptyWorld(g)
	airborneAt(w, 400, 300)
	w.spawnPowerUp(400, 300)

	if cause := w.resolveOverlaps(); cause != causeNone {
		t.Fatalf("unexpected death %v", cause)
	}
	if !w.Jetpack || w.PowerUps.Len() != 0 {
		t.Errorf("jetpack %v, power-ups left %d", w.Jetpack, w.PowerUps.Len())
	}
}

func TestTopOutEndsRunAndRecordsScore(t *testing.T) {
	g := newTestGame(t, core.ModeNormal, 8)
	board := session.NewMemoryBoard()
	g.SetLeaderboard(board)

	w := g.world
	g.run.Score = 1234
	w.Player.Body.Y = w.CameraY - 500
	w.Player.Body.prevY = w.Player.Body.Y
	w.Player.Body.VY = 0

	res := g.Step(core.NewInputFrame())
	if !res.State.GameOver {
		t.Fatal("player above the view should end the run")
	}
	if g.Cause() != "LEFT BEHIND" {
		t.Errorf("cause = %q", g.Cause())
	}
	if g.Session().Phase() != session.PhaseNameEntry {
		t.Fatalf("expected name entry, got %v", g.Session().Phase())
	}

	g.Step(press(core.ActionConfirm))
	entries := board.Entries(GameID)
	if len(entries) != 1 || entries[0].Name != "AAAA" || entries[0].Score != 1234 || entries[0].Mode != core.ModeNormal {
		t.Fatalf("unexpected leaderboard %+v", entries)
	}
	if g.Session().Phase() != session.PhaseGameOver {
		t.Fatalf("expected game-over menu, got %v", g.Session().Phase())
	}

	res = g.Step(press(core.ActionConfirm))
	if res.State.GameOver || res.State.ToMenu {
		t.Fatalf("restart expected, got %+v", res.State)
	}
	if g.run.Score != 0 || g.run.Mode != core.ModeNormal {
		t.Errorf("restart kept score %d or changed mode %q", g.run.Score, g.run.Mode)
	}
}

func TestRestartKeepsChallengerMode(t *testing.T) {
	g := newTestGame(t, core.ModeChallenger, 8)
	g.endRun(causeEnemy)

	g.Step(press(core.ActionRestart))
	if g.run.Mode != core.ModeChallenger {
		t.Errorf("restart switched mode to %q", g.run.Mode)
	}
	if g.State().GameOver {
		t.Error("restart should begin a new run")
	}
}

func TestEndRunInvalidatesPendingEvents(t *testing.T) {
	g := newTestGame(t, "", 8)
	g.fx.banner("GREAT!", core.ColorYellow)
	if g.sched.Pending() == 0 {
		t.Fatal("expected pending events")
	}
	on := g.world.Hazards.On

	g.endRun(causeShot)
	if due := g.sched.Advance(10 * time.Second); len(due) != 0 {
		t.Errorf("stale events delivered after game over: %+v", due)
	}
	if g.world.Hazards.On != on {
		t.Error("hazards changed after game over")
	}
	if len(g.Banners()) != 0 {
		t.Error("banners should be cleared at game over")
	}
}

func TestFailsafeReturnsToMenu(t *testing.T) {
	g := newTestGame(t, "", 8)
	hold := core.NewInputFrame()
	hold.Hold(core.ActionFire)
	hold.Hold(core.ActionCharge)

	for i := 0; i < 300; i++ {
		if g.Step(hold).State.ToMenu {
			t.Fatalf("failsafe fired after %d ticks", i+1)
		}
	}
	if !g.Step(hold).State.ToMenu {
		t.Error("holding fire and charge for 5s should return to the menu")
	}
}

func TestBackLeavesRun(t *testing.T) {
	g := newTestGame(t, "", 8)
	res := g.Step(press(core.ActionBack))
	if !res.State.ToMenu {
		t.Fatal("back should request the menu")
	}
	silenced := false
	for _, c := range res.Cues {
		if c.Kind == core.CueSilence {
			silenced = true
		}
	}
	if !silenced {
		t.Error("leaving should silence audio")
	}
}

func TestPauseFreezesWorld(t *testing.T) {
	g := newTestGame(t, "", 8)
	g.Step(press(core.ActionPause))
	before := g.Snapshot()
	for i := 0; i < 30; i++ {
		g.Step(core.NewInputFrame())
	}
	after := g.Snapshot()
	before.Tick, after.Tick = 0, 0
	if before.Hash() != after.Hash() {
		t.Error("world changed while paused")
	}
	if !g.State().Paused {
		t.Error("state should report paused")
	}
}

func scriptedInput(tick int) core.InputFrame {
	f := core.NewInputFrame()
	if tick%80 < 40 {
		f.Hold(core.ActionRight)
	} else {
		f.Hold(core.ActionLeft)
	}
	if tick%45 == 0 {
		f.Set(core.ActionJump)
	}
	if tick%9 == 0 {
		f.Set(core.ActionFire)
	}
	return f
}

func TestDeterminism(t *testing.T) {
	a := newTestGame(t, "", 12345)
	b := newTestGame(t, "", 12345)

	for tick := 0; tick < 600; tick++ {
		in := scriptedInput(tick)
		a.Step(in)
		b.Step(in.Clone())
		if tick%60 == 0 {
			sa, sb := a.Snapshot(), b.Snapshot()
			if sa.Hash() != sb.Hash() {
				t.Fatalf("tick %d: states diverged", tick)
			}
		}
	}
}

func TestDifferentSeedsDiffer(t *testing.T) {
	a := newTestGame(t, "", 1)
	b := newTestGame(t, "", 2)
	sa, sb := a.Snapshot(), b.Snapshot()
	if sa.Hash() == sb.Hash() {
		t.Error("different seeds produced the same world")
	}
}
