// Package chainfall implements a vertical descent shooter: the player drops
// through an endless shaft of platforms, shooting downward at the enemies
// patrolling them. Kills in mid-air build a combo; touching ground ends it.
package chainfall

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/chainfall/internal/config"
	"github.com/vovakirdan/chainfall/internal/core"
	"github.com/vovakirdan/chainfall/internal/registry"
	"github.com/vovakirdan/chainfall/internal/session"
)

// GameID is the registry and leaderboard identifier.
const GameID = "chainfall"

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names are ignored.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// Game implements registry.Game for Chainfall.
type Game struct {
	runtime  core.RuntimeConfig
	cfg      config.ChainfallConfig
	override *config.ChainfallConfig

	rng     *rand.Rand
	sched   *core.Scheduler[event]
	fx      *feedback
	diff    *config.DifficultyManager
	run     *RunState
	world   *World
	session *session.Machine
	board   session.Leaderboard

	tick         time.Duration // unscaled duration of one Step
	ticks        uint64
	paused       bool
	toMenu       bool
	cause        deathCause
	failsafeHeld time.Duration
}

// New creates a game that loads its tuning from the config search path.
func New() *Game {
	return &Game{}
}

// NewWithConfig creates a game with fixed tuning, bypassing config files.
func NewWithConfig(cfg config.ChainfallConfig) *Game {
	return &Game{override: &cfg}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return GameID }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Chainfall" }

// Modes lists the supported modes.
func (g *Game) Modes() []string {
	return []string{core.ModeNormal, core.ModeChallenger}
}

// SetLeaderboard attaches the high-score store used at game over.
func (g *Game) SetLeaderboard(b session.Leaderboard) {
	g.board = b
	if g.session != nil {
		g.session.SetBoard(b)
	}
}

// Reset starts a fresh run. Pending scheduled events from the previous run
// are invalidated and every entity is detached.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	if g.override != nil {
		g.cfg = *g.override
	} else {
		cfg, err := config.LoadChainfall(configPath)
		if err != nil {
			cfg = config.DefaultChainfallConfig()
		}
		if difficultyPreset != "" {
			config.ApplyChainfallPreset(&cfg, difficultyPreset)
		}
		g.cfg = cfg
	}

	rate := runtime.TickRate
	if rate <= 0 {
		rate = 60
	}
	g.tick = time.Second / time.Duration(rate)
	g.ticks = 0
	g.paused = false
	g.toMenu = false
	g.cause = causeNone
	g.failsafeHeld = 0

	if g.world != nil {
		g.world.teardown()
	}
	if g.sched == nil {
		g.sched = core.NewScheduler[event]()
	} else {
		g.sched.Reset()
	}

	mode := core.NormalizeMode(runtime.Mode)
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.fx = newFeedback(g.sched)
	g.diff = config.NewDifficultyManager(g.cfg.Difficulty)
	cc := g.cfg.Combat
	g.run = newRunState(mode, g.cfg.Player.MaxAmmo, cc.ComboStep, cc.ScoreMilestone, cc.DepthMilestone)
	g.world = newWorld(&g.cfg, g.rng, g.run, g.diff, g.fx, g.sched)

	if g.session == nil {
		g.session = session.New(GameID, g.cfg.Leaderboard.Cap)
	}
	g.session.SetBoard(g.board)
	g.session.Start(mode)

	g.fx.tone(440, 100)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.ticks++

	if g.checkFailsafe(in) {
		g.leave()
		return g.result()
	}

	if !g.session.Playing() {
		outcome, cues := g.session.Handle(in)
		for _, c := range cues {
			g.fx.cue(c)
		}
		switch outcome {
		case session.OutcomeRestart:
			g.restart()
		case session.OutcomeMenu:
			g.leave()
		}
		return g.result()
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused || g.toMenu {
		return g.result()
	}
	if in.Has(core.ActionBack) {
		g.leave()
		return g.result()
	}

	for _, ev := range g.sched.Advance(g.tick) {
		g.handle(ev)
	}

	if cause := g.world.step(in, g.tick); cause != causeNone {
		g.endRun(cause)
	}
	return g.result()
}

func (g *Game) handle(ev event) {
	switch ev.kind {
	case evHazardToggle:
		g.world.toggleHazards()
	case evBannerExpire:
		g.fx.expire(ev.id)
	}
}

// checkFailsafe reports whether Fire and Charge were held together long
// enough to force a return to the menu.
func (g *Game) checkFailsafe(in core.InputFrame) bool {
	if !in.IsHeld(core.ActionFire) || !in.IsHeld(core.ActionCharge) {
		g.failsafeHeld = 0
		return false
	}
	g.failsafeHeld += g.tick
	if g.failsafeHeld >= config.Ms(g.cfg.Charge.FailsafeHoldMs) {
		g.failsafeHeld = 0
		return true
	}
	return false
}

// endRun freezes the world and hands over to the session machine.
func (g *Game) endRun(cause deathCause) {
	g.cause = cause
	g.fx.cue(core.Cue{Kind: core.CueSilence})
	g.fx.tone(220, 500)
	g.halt()
	g.world.deactivateJetpack()
	g.run.ResetCombo()
	g.session.End(g.run.Score)
}

// halt stops the weapon, restores time and drops every pending event.
func (g *Game) halt() {
	g.world.stopCharging(false)
	g.world.TimeScale = 1
	g.sched.Invalidate()
	g.fx.clearBanners()
}

// leave abandons the run and asks the host for the menu.
func (g *Game) leave() {
	if g.toMenu {
		return
	}
	g.toMenu = true
	g.fx.cue(core.Cue{Kind: core.CueSilence})
	g.halt()
}

func (g *Game) restart() {
	rt := g.runtime
	rt.Seed = g.rng.Int63()
	rt.Mode = g.run.Mode
	g.Reset(rt)
}

func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State(), Cues: g.fx.flush()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.run == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.run.Score,
		GameOver: !g.session.Playing(),
		Paused:   g.paused,
		ToMenu:   g.toMenu,
	}
}

// Run returns the live run state.
func (g *Game) Run() *RunState { return g.run }

// World returns the live world.
func (g *Game) World() *World { return g.world }

// Session returns the run/session state machine.
func (g *Game) Session() *session.Machine { return g.session }

// Banners returns the banners currently on screen, oldest first.
func (g *Game) Banners() []Banner { return g.fx.banners }

// Cause describes why the last run ended, or "" while playing.
func (g *Game) Cause() string { return g.cause.String() }

// Config returns the tuning in effect.
func (g *Game) Config() config.ChainfallConfig { return g.cfg }

// Compile-time interface checks.
var (
	_ registry.Game            = (*Game)(nil)
	_ registry.CanvasDrawer    = (*Game)(nil)
	_ registry.LeaderboardUser = (*Game)(nil)
	_ registry.ModeLister      = (*Game)(nil)
)
