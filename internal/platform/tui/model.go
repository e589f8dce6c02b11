package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/chainfall/internal/audio"
	"github.com/vovakirdan/chainfall/internal/core"
	"github.com/vovakirdan/chainfall/internal/logging"
	"github.com/vovakirdan/chainfall/internal/registry"
	"github.com/vovakirdan/chainfall/internal/storage"
)

// AppName keys the settings record shared by every game.
const AppName = "chainfall"

// Deps are the services a host screen uses. Every field may be left zero.
type Deps struct {
	Store   *storage.Store
	Audio   audio.Player
	Keys    *KeyMapper
	Logger  *log.Logger
	Painter *Painter

	// HoldTimeout overrides DefaultHoldTimeout.
	HoldTimeout time.Duration
}

func (d Deps) withDefaults() Deps {
	if d.Audio == nil {
		d.Audio = audio.NullPlayer{}
	}
	if d.Keys == nil {
		d.Keys = NewKeyMapper()
	}
	if d.Logger == nil {
		d.Logger = logging.Discard()
	}
	if d.Painter == nil {
		d.Painter = NewPainter(nil)
	}
	return d
}

// GameModel runs one game: it ticks the simulation, forwards cues to the
// audio player and records finished runs.
type GameModel struct {
	game   registry.Game
	screen *core.Screen
	deps   Deps
	config core.RuntimeConfig

	frame core.InputFrame
	hold  *HoldTracker
	state core.GameState

	standalone bool // quit the program instead of returning to a menu
	quitting   bool
	backToMenu bool
	runSaved   bool
}

// NewGameModel creates a model for game. A zero seed is replaced by the clock.
func NewGameModel(game registry.Game, deps Deps, cfg core.RuntimeConfig) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	deps = deps.withDefaults()
	return GameModel{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		deps:   deps,
		config: cfg,
		frame:  core.NewInputFrame(),
		hold:   NewHoldTracker(deps.HoldTimeout),
	}
}

// Init attaches the leaderboard, starts the run and the tick loop.
func (m GameModel) Init() tea.Cmd {
	if lu, ok := m.game.(registry.LeaderboardUser); ok && m.deps.Store != nil {
		lu.SetLeaderboard(m.deps.Store)
	}
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg, time.Now())
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		return m.handleTick(time.Time(msg))
	}
	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, quit := m.deps.Keys.MapKey(msg)
	if quit {
		m.quitting = true
		m.deps.Audio.StopAll()
		return m, tea.Quit
	}
	if action == core.ActionNone {
		return m, nil
	}
	// Repeats count as presses too, like browser keydown repeat.
	m.frame.Set(action)
	m.hold.Press(action, now)
	return m, nil
}

func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
	}
	return m, nil
}

func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.hold.Apply(now, &m.frame)
	result := m.game.Step(m.frame)
	m.frame.Clear()
	m.state = result.State
	audio.Dispatch(m.deps.Audio, result.Cues)

	switch {
	case m.state.GameOver && !m.runSaved:
		m.recordRun()
		m.runSaved = true
	case !m.state.GameOver:
		m.runSaved = false
	}

	if m.state.ToMenu {
		m.backToMenu = true
		m.hold.Reset()
		m.deps.Audio.StopAll()
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}
	return m, tickCmd(m.config.TickRate)
}

// recordRun stores the finished run and marks the tutorial as done.
func (m GameModel) recordRun() {
	st := m.deps.Store
	if st == nil {
		return
	}
	mode := core.NormalizeMode(m.config.Mode)
	if _, err := st.SaveRun(m.game.ID(), mode, m.state.Score); err != nil {
		m.deps.Logger.Warn("run not recorded", "game", m.game.ID(), "err", err)
	}
	settings := st.LoadSettings(AppName)
	if !settings.TutorialCompleted {
		settings.TutorialCompleted = true
		if err := st.SaveSettings(AppName, settings); err != nil {
			m.deps.Logger.Warn("settings not saved", "err", err)
		}
	}
}

// saveScreenshot writes the current screen as text under ~/.chainfall.
func (m *GameModel) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".chainfall", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.deps.Logger.Warn("screenshot directory", "err", err)
		return
	}
	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	if err := os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600); err != nil {
		m.deps.Logger.Warn("screenshot not saved", "err", err)
	}
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.screen.Clear()
	m.game.Render(m.screen)
	return m.deps.Painter.Render(m.screen)
}

// State returns the game state seen on the last tick.
func (m GameModel) State() core.GameState { return m.state }

// IsQuitting reports whether the user asked to quit entirely.
func (m GameModel) IsQuitting() bool { return m.quitting }

// BackToMenu reports whether the game asked to return to the menu.
func (m GameModel) BackToMenu() bool { return m.backToMenu }

// Run plays a single game in the local terminal until the player quits or
// leaves to the menu.
func Run(game registry.Game, deps Deps, cfg core.RuntimeConfig) error {
	model := NewGameModel(game, deps, cfg)
	model.standalone = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
