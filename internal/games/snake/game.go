// Package snake implements grid Snake with combo scoring. Normal mode wraps
// around the edges; challenger mode turns the edges into walls and speeds
// up as the score climbs.
package snake

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/chainfall/internal/config"
	"github.com/vovakirdan/chainfall/internal/core"
	"github.com/vovakirdan/chainfall/internal/registry"
	"github.com/vovakirdan/chainfall/internal/session"
)

// GameID is the registry and leaderboard identifier.
const GameID = "snake"

// hudHeight is the number of rows above the playfield border.
const hudHeight = 2

// Minimum playfield size; smaller terminals show a resize prompt.
const (
	minCols = 12
	minRows = 6
)

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

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

func (d Direction) opposite(o Direction) bool {
	return (d+2)%4 == o
}

// Point is a playfield cell.
type Point struct {
	X, Y int
}

func (p Point) step(d Direction) Point {
	switch d {
	case DirUp:
		p.Y--
	case DirDown:
		p.Y++
	case DirLeft:
		p.X--
	case DirRight:
		p.X++
	}
	return p
}

type eventKind uint8

const evComboExpire eventKind = iota

type event struct {
	kind   eventKind
	serial int
}

// Game implements the Snake game.
type Game struct {
	runtime  core.RuntimeConfig
	cfg      config.SnakeConfig
	override *config.SnakeConfig

	rng     *rand.Rand
	sched   *core.Scheduler[event]
	diff    *config.DifficultyManager
	session *session.Machine
	board   session.Leaderboard
	cues    []core.Cue

	tick       time.Duration
	ticks      uint64
	mode       string
	score      int
	foodEaten  int
	moveTicker int

	// Combo: combo counts the foods eaten inside the window after the first.
	combo       int
	comboLive   bool
	comboSerial int
	bestCombo   int

	snake     []Point // head at index 0
	direction Direction
	nextDir   Direction
	growth    int
	food      Point

	cols, rows int
	tooSmall   bool
	paused     bool
	toMenu     bool
}

// New creates a game that loads its tuning from the config search path.
func New() *Game {
	return &Game{}
}

// NewWithConfig creates a game with fixed tuning, bypassing config files.
func NewWithConfig(cfg config.SnakeConfig) *Game {
	return &Game{override: &cfg}
}

// ID returns the game identifier.
func (g *Game) ID() string { return GameID }

// Title returns the display name.
func (g *Game) Title() string { return "Snake" }

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

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	if g.override != nil {
		g.cfg = *g.override
	} else {
		cfg, err := config.LoadSnake(configPath)
		if err != nil {
			cfg = config.DefaultSnakeConfig()
		}
		if difficultyPreset != "" {
			config.ApplySnakePreset(&cfg, difficultyPreset)
		}
		g.cfg = cfg
	}

	rate := runtime.TickRate
	if rate <= 0 {
		rate = 60
	}
	g.tick = time.Second / time.Duration(rate)
	g.ticks = 0
	g.mode = core.NormalizeMode(runtime.Mode)
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.diff = config.NewDifficultyManager(g.cfg.Difficulty)
	if g.sched == nil {
		g.sched = core.NewScheduler[event]()
	} else {
		g.sched.Reset()
	}
	g.cues = nil

	g.score = 0
	g.foodEaten = 0
	g.moveTicker = 0
	g.combo, g.comboLive, g.comboSerial, g.bestCombo = 0, false, 0, 0
	g.paused = false
	g.toMenu = false

	if g.session == nil {
		g.session = session.New(GameID, g.cfg.Leaderboard.Cap)
	}
	g.session.SetBoard(g.board)
	g.session.Start(g.mode)

	g.resize(runtime.ScreenW, runtime.ScreenH)
}

// resize derives the playfield from the screen and starts a fresh snake.
func (g *Game) resize(screenW, screenH int) {
	g.cols = screenW - 2
	g.rows = screenH - hudHeight - 2
	g.tooSmall = g.cols < minCols || g.rows < minRows
	if g.tooSmall {
		g.snake = nil
		return
	}
	g.initSnake()
	g.spawnFood()
}

// Resize adapts the playfield to a new screen size. A run in progress restarts
// in the same mode. After game over the new size is kept for the next restart
// so name entry and the game-over menu carry on.
func (g *Game) Resize(w, h int) {
	if w == g.runtime.ScreenW && h == g.runtime.ScreenH {
		return
	}
	if g.session != nil && !g.session.Playing() {
		g.runtime.ScreenW, g.runtime.ScreenH = w, h
		return
	}
	rt := g.runtime
	rt.ScreenW, rt.ScreenH = w, h
	rt.Mode = g.mode
	g.Reset(rt)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.ticks++

	if !g.session.Playing() {
		outcome, cues := g.session.Handle(in)
		g.cues = append(g.cues, cues...)
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
	if g.paused || g.toMenu || g.tooSmall {
		return g.result()
	}
	if in.Has(core.ActionBack) {
		g.leave()
		return g.result()
	}

	for _, ev := range g.sched.Advance(g.tick) {
		g.handle(ev)
	}

	g.processInput(in)
	g.moveTicker++
	if g.moveTicker >= g.ticksPerMove() {
		g.moveTicker = 0
		g.moveSnake()
	}
	return g.result()
}

func (g *Game) handle(ev event) {
	if ev.kind == evComboExpire && ev.serial == g.comboSerial {
		g.combo = 0
		g.comboLive = false
	}
}

// endRun hands over to the session machine. Pending combo expiries die with
// the generation.
func (g *Game) endRun() {
	g.cues = append(g.cues, core.Cue{Kind: core.CueSilence}, core.Tone(220, 500*time.Millisecond))
	g.sched.Invalidate()
	g.combo = 0
	g.comboLive = false
	g.session.End(g.score)
}

func (g *Game) leave() {
	if g.toMenu {
		return
	}
	g.toMenu = true
	g.sched.Invalidate()
	g.cues = append(g.cues, core.Cue{Kind: core.CueSilence})
}

func (g *Game) restart() {
	rt := g.runtime
	rt.Seed = g.rng.Int63()
	rt.Mode = g.mode
	g.Reset(rt)
}

func (g *Game) result() core.StepResult {
	out := g.cues
	g.cues = nil
	return core.StepResult{State: g.State(), Cues: out}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.score,
		GameOver: !g.session.Playing(),
		Paused:   g.paused,
		ToMenu:   g.toMenu,
	}
}

// Session returns the run/session state machine.
func (g *Game) Session() *session.Machine { return g.session }

// Combo returns the live combo count and its multiplier.
func (g *Game) Combo() (int, float64) {
	return g.combo, g.multiplier()
}

// Compile-time interface checks.
var (
	_ registry.Game            = (*Game)(nil)
	_ registry.CanvasDrawer    = (*Game)(nil)
	_ registry.LeaderboardUser = (*Game)(nil)
	_ registry.ModeLister      = (*Game)(nil)
	_ registry.Resizer         = (*Game)(nil)
)
