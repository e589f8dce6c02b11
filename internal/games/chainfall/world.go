package chainfall

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/chainfall/internal/config"
	"github.com/vovakirdan/chainfall/internal/core"
)

// cameraLerp is the fraction of the distance to its target the camera
// covers every tick.
const cameraLerp = 0.1

// deathCause tells why a run ended.
type deathCause uint8

const (
	causeNone deathCause = iota
	causeShot
	causeEnemy
	causeHazard
	causeToppedOut
	causeComboLanding
)

var causeNames = [...]string{
	causeNone:         "",
	causeShot:         "SHOT DOWN",
	causeEnemy:        "CAUGHT",
	causeHazard:       "ZAPPED",
	causeToppedOut:    "LEFT BEHIND",
	causeComboLanding: "COMBO BROKEN",
}

func (c deathCause) String() string {
	return causeNames[c]
}

// Player is the controllable body plus its ground-contact history.
type Player struct {
	Body        Body
	wasOnGround bool
}

// OnGround reports whether the player stood on a platform after the last step.
func (p *Player) OnGround() bool {
	return p.Body.Blocked.Down
}

// World owns every entity of a run: the platform list, the entity arenas,
// the camera and the side hazards. Positions are world units with y growing
// downward; the camera position is the top of the view.
type World struct {
	cfg   *config.ChainfallConfig
	rng   *rand.Rand
	run   *RunState
	diff  *config.DifficultyManager
	fx    *feedback
	sched *core.Scheduler[event]

	CameraY     float64
	WorldBottom float64

	Player       Player
	Platforms    []*Platform
	Enemies      core.Arena[Enemy]
	Bullets      core.Arena[Bullet]
	EnemyBullets core.Arena[EnemyBullet]
	PowerUps     core.Arena[PowerUp]
	Hazards      Hazards

	Charge    Charge
	Jetpack   bool
	TimeScale float64

	input struct{ left, right bool }
}

func newWorld(cfg *config.ChainfallConfig, rng *rand.Rand, run *RunState, diff *config.DifficultyManager, fx *feedback, sched *core.Scheduler[event]) *World {
	w := &World{
		cfg:         cfg,
		rng:         rng,
		run:         run,
		diff:        diff,
		fx:          fx,
		sched:       sched,
		WorldBottom: cfg.World.InitialBottom,
		TimeScale:   1,
	}

	pc := cfg.Platforms
	start := w.addPlatform(pc.StartLeft+pc.StartWidth/2, pc.StartY, pc.StartWidth, true)

	w.Player.Body = Body{
		X:       start.X,
		Y:       start.Top() - cfg.Player.Height/2,
		W:       cfg.Player.Width,
		H:       cfg.Player.Height,
		Gravity: true,
	}
	w.Player.Body.prevX, w.Player.Body.prevY = w.Player.Body.X, w.Player.Body.Y

	w.seedAhead(pc.FirstSeedY, w.CameraY+cfg.World.SeedAhead)
	w.setupHazards()
	return w
}

// Depth returns how far below the start the given y lies, corrected for
// rebasing. Never negative.
func (w *World) Depth(y float64) float64 {
	return math.Max(0, y+w.run.WorldOffset-w.cfg.World.DepthOrigin)
}

// difficulty returns the spawn multiplier for the player's current depth.
func (w *World) difficulty() float64 {
	return w.diff.Level(w.Depth(w.Player.Body.Y))
}

// step advances the world by one tick of unscaled duration tick. It returns
// the cause when the run ended during the tick.
func (w *World) step(in core.InputFrame, tick time.Duration) deathCause {
	w.applyInput(in)

	dt := tick.Seconds() / w.TimeScale
	if cause := w.stepPlayer(dt); cause != causeNone {
		return cause
	}
	w.updateCharge()

	w.followCamera()
	w.ensureCapacity(w.CameraY + w.cfg.World.CapacityAhead)
	w.seedAhead(w.CameraY+w.cfg.World.SeedFrom, w.CameraY+w.cfg.World.SeedAhead)
	w.trackDepth()
	w.recycleOffscreen()
	w.maybeRebase()

	w.stepBullets(dt)
	w.stepEnemyBullets(dt)
	if w.Player.Body.Y < w.CameraY-w.cfg.World.TopOutMargin {
		return causeToppedOut
	}
	w.stepPowerUps()
	w.followHazards()

	w.updateEnemies(dt)

	return w.resolveOverlaps()
}

// applyInput handles movement and the press/release edges of one frame.
func (w *World) applyInput(in core.InputFrame) {
	w.input.left = in.IsHeld(core.ActionLeft)
	w.input.right = in.IsHeld(core.ActionRight)

	if (in.Has(core.ActionJump) || in.Has(core.ActionUp)) && w.Player.OnGround() {
		w.Player.Body.VY = -w.cfg.Player.JumpVelocity
		w.fx.tone(523, 50)
	}
	if in.Has(core.ActionFire) {
		w.fireBullet()
	}
	if in.Has(core.ActionCharge) {
		w.startCharging()
	}
	if in.WasReleased(core.ActionCharge) {
		w.releaseCharge()
	}
}

// stepPlayer moves the player, resolves platform contacts and handles landing.
func (w *World) stepPlayer(dt float64) deathCause {
	pc := w.cfg.Player
	b := &w.Player.Body

	vx := 0.0
	if w.input.left {
		vx -= pc.Speed
	}
	if w.input.right {
		vx += pc.Speed
	}
	// Keep horizontal feel while the world runs slowed down.
	if w.Charge.Active() && w.TimeScale > 1 {
		vx *= w.TimeScale
	}
	b.VX = vx

	maxVX := pc.MaxVelocityX
	if w.Charge.Active() {
		maxVX *= w.TimeScale
	}
	b.integrate(dt, w.cfg.World.Gravity, maxVX, pc.MaxVelocityY)
	b.clampToWidth(w.cfg.World.Width)

	for _, p := range w.Platforms {
		if !b.collide(p.Box()) {
			continue
		}
		if w.run.Challenger() && w.run.ComboCount > 0 && b.Blocked.Down {
			return causeComboLanding
		}
	}

	if w.Charge.Active() && w.Player.OnGround() {
		w.stopCharging(false)
	}

	onGround := w.Player.OnGround()
	if onGround && !w.Player.wasOnGround {
		w.run.ResetCombo()
		w.run.RefillAmmo()
		w.fx.tone(440, 80)
	}
	w.Player.wasOnGround = onGround
	return causeNone
}

// followCamera eases the view toward the player and never lets the player
// sink more than CameraLead below the top of the view.
func (w *World) followCamera() {
	target := w.Player.Body.Y - w.cfg.World.ViewHeight/2
	w.CameraY += (target - w.CameraY) * cameraLerp
	w.CameraY = math.Max(w.CameraY, w.Player.Body.Y-w.cfg.World.CameraLead)
}

// ensureCapacity grows the world bottom in whole chunks until targetY plus
// the margin fits. It never shrinks.
func (w *World) ensureCapacity(targetY float64) {
	need := targetY + w.cfg.World.Margin
	for w.WorldBottom < need {
		w.WorldBottom += w.cfg.World.Chunk
	}
}

// maybeRebase shifts every position up by RebaseDelta once the camera
// passes RebaseThreshold, keeping coordinates small. Relative distances are
// unchanged and the offset is remembered for depth bookkeeping.
func (w *World) maybeRebase() bool {
	if w.CameraY < w.cfg.World.RebaseThreshold {
		return false
	}
	dy := -w.cfg.World.RebaseDelta
	w.run.WorldOffset += w.cfg.World.RebaseDelta

	w.CameraY += dy
	w.WorldBottom += dy
	w.Player.Body.shiftY(dy)

	for _, p := range w.Platforms {
		p.Y += dy
	}
	w.Enemies.Each(func(_ core.Handle, e *Enemy) { e.Body.shiftY(dy) })
	w.Bullets.Each(func(_ core.Handle, b *Bullet) { b.Body.shiftY(dy) })
	w.EnemyBullets.Each(func(_ core.Handle, b *EnemyBullet) { b.Body.shiftY(dy) })
	w.PowerUps.Each(func(_ core.Handle, p *PowerUp) { p.Body.shiftY(dy) })
	w.Hazards.shiftY(dy)
	return true
}

// trackDepth records the deepest point and raises depth milestones.
func (w *World) trackDepth() {
	depth := math.Floor(w.Depth(w.Player.Body.Y))
	if depth <= w.run.MaxDepth {
		return
	}
	w.run.MaxDepth = depth
	for w.run.NextDepthMilestone > 0 && int(depth) >= w.run.NextDepthMilestone {
		w.fx.banner(depthMilestoneText(w.run.NextDepthMilestone), core.ColorCyan)
		w.run.NextDepthMilestone = int(math.Round(float64(w.run.NextDepthMilestone) * w.cfg.Combat.DepthMilestoneMul))
	}
}

// resolveOverlaps runs the hit tests that involve the player.
func (w *World) resolveOverlaps() deathCause {
	pb := w.Player.Body.Box()

	hit := false
	w.EnemyBullets.Each(func(h core.Handle, b *EnemyBullet) {
		if !hit && b.Body.Box().Overlaps(pb) {
			w.EnemyBullets.Remove(h)
			hit = true
		}
	})
	if hit {
		return causeShot
	}

	touched := false
	w.Enemies.Each(func(_ core.Handle, e *Enemy) {
		if e.Body.Box().Overlaps(pb) {
			touched = true
		}
	})
	if touched {
		return causeEnemy
	}

	if w.Hazards.On && w.Hazards.touches(pb) {
		return causeHazard
	}

	w.collectPowerUps()
	return causeNone
}

// teardown detaches every entity. Handles held anywhere go stale.
func (w *World) teardown() {
	for _, p := range w.Platforms {
		p.Enemies = nil
	}
	w.Enemies.Clear()
	w.Bullets.Clear()
	w.EnemyBullets.Clear()
	w.PowerUps.Clear()
}
