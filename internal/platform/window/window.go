// Package window is the desktop host. It runs games in an ebiten window,
// which unlike a terminal reports real key releases, so hold-to-charge
// works without synthesized holds.
package window

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/chainfall/internal/audio"
	"github.com/vovakirdan/chainfall/internal/core"
	"github.com/vovakirdan/chainfall/internal/logging"
	"github.com/vovakirdan/chainfall/internal/registry"
	"github.com/vovakirdan/chainfall/internal/storage"
)

// AppName keys the settings record shared by every game.
const AppName = "chainfall"

// Fallback grid for games that only render to a text screen.
const (
	gridCols = 80
	gridRows = 24
)

// Options configure a window run.
type Options struct {
	Store  *storage.Store
	Audio  audio.Player
	Logger *log.Logger
	// Scale multiplies the window size over the game's world size.
	Scale float64
}

// Host adapts a registry.Game to ebiten.Game.
type Host struct {
	game   registry.Game
	drawer registry.CanvasDrawer
	opts   Options
	cfg    core.RuntimeConfig

	keys     keyState
	bindings []binding
	frame    core.InputFrame
	state    core.GameState
	runSaved bool
	quit     bool

	grid *core.Screen
}

// NewHost prepares game for a window. Reset is called here.
func NewHost(game registry.Game, opts Options, cfg core.RuntimeConfig) *Host {
	if opts.Audio == nil {
		opts.Audio = audio.NullPlayer{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	h := &Host{
		game:     game,
		opts:     opts,
		cfg:      cfg,
		keys:     ebitenKeys{},
		bindings: defaultBindings(),
		frame:    core.NewInputFrame(),
	}
	if d, ok := game.(registry.CanvasDrawer); ok {
		h.drawer = d
	} else {
		h.grid = core.NewScreen(gridCols, gridRows)
		cfg.ScreenW, cfg.ScreenH = gridCols, gridRows
	}
	if lu, ok := game.(registry.LeaderboardUser); ok && opts.Store != nil {
		lu.SetLeaderboard(opts.Store)
	}
	game.Reset(cfg)
	return h
}

// Update runs one simulation tick. ebiten calls it TPS times per second.
func (h *Host) Update() error {
	h.frame.Clear()
	h.quit = buildFrame(h.keys, h.bindings, &h.frame) || h.quit
	if h.quit {
		h.opts.Audio.StopAll()
		return ebiten.Termination
	}

	result := h.game.Step(h.frame)
	h.state = result.State
	audio.Dispatch(h.opts.Audio, result.Cues)

	switch {
	case h.state.GameOver && !h.runSaved:
		h.recordRun()
		h.runSaved = true
	case !h.state.GameOver:
		h.runSaved = false
	}

	if h.state.ToMenu {
		h.opts.Audio.StopAll()
		return ebiten.Termination
	}
	return nil
}

func (h *Host) recordRun() {
	st := h.opts.Store
	if st == nil {
		return
	}
	if _, err := st.SaveRun(h.game.ID(), core.NormalizeMode(h.cfg.Mode), h.state.Score); err != nil {
		h.opts.Logger.Warn("run not recorded", "game", h.game.ID(), "err", err)
	}
	settings := st.LoadSettings(AppName)
	if !settings.TutorialCompleted {
		settings.TutorialCompleted = true
		if err := st.SaveSettings(AppName, settings); err != nil {
			h.opts.Logger.Warn("settings not saved", "err", err)
		}
	}
}

// Draw renders the game.
func (h *Host) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	c := &canvas{dst: screen}
	if h.drawer != nil {
		h.drawer.DrawCanvas(c)
		return
	}

	h.grid.Clear()
	h.game.Render(h.grid)
	for y := range h.grid.Height() {
		for x := range h.grid.Width() {
			cell := h.grid.GetCell(x, y)
			if cell.Rune != ' ' {
				c.Text(float64(x)*charW, float64(y)*lineH, string(cell.Rune), cell.Color)
			}
		}
	}
}

// Layout fixes the logical screen to the world size; ebiten scales it.
func (h *Host) Layout(_, _ int) (int, int) {
	w, hh := h.worldSize()
	return int(w), int(hh)
}

func (h *Host) worldSize() (float64, float64) {
	if h.drawer != nil {
		return h.drawer.WorldSize()
	}
	return gridCols * charW, gridRows * lineH
}

// State returns the state seen on the last tick.
func (h *Host) State() core.GameState { return h.state }

// Run opens a window and plays game until the player leaves or closes it.
func Run(game registry.Game, opts Options, cfg core.RuntimeConfig) error {
	h := NewHost(game, opts, cfg)

	w, hh := h.worldSize()
	ebiten.SetWindowSize(int(w*h.opts.Scale), int(hh*h.opts.Scale))
	ebiten.SetWindowTitle(game.Title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(h.cfg.TickRate)

	h.opts.Logger.Debug("window opened", "game", game.ID(), "width", w, "height", hh, "tps", h.cfg.TickRate)
	if err := ebiten.RunGame(h); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}

// keyState abstracts ebiten's keyboard queries.
type keyState interface {
	JustPressed(k ebiten.Key) bool
	Pressed(k ebiten.Key) bool
	JustReleased(k ebiten.Key) bool
}

type ebitenKeys struct{}

func (ebitenKeys) JustPressed(k ebiten.Key) bool  { return inpututil.IsKeyJustPressed(k) }
func (ebitenKeys) Pressed(k ebiten.Key) bool      { return ebiten.IsKeyPressed(k) }
func (ebitenKeys) JustReleased(k ebiten.Key) bool { return inpututil.IsKeyJustReleased(k) }

var background = color.RGBA{R: 0x10, G: 0x10, B: 0x18, A: 0xff}
