package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/chainfall/internal/core"
	"github.com/vovakirdan/chainfall/internal/registry"
	"github.com/vovakirdan/chainfall/internal/session"
	"github.com/vovakirdan/chainfall/internal/storage"
)

type fakeGame struct {
	resets int
	inputs []core.InputFrame
	state  core.GameState
	cues   []core.Cue
	board  session.Leaderboard
}

func (g *fakeGame) ID() string                           { return "fake" }
func (g *fakeGame) Title() string                        { return "Fake" }
func (g *fakeGame) Reset(core.RuntimeConfig)             { g.resets++ }
func (g *fakeGame) Render(dst *core.Screen)              { dst.DrawText(0, 0, "fake") }
func (g *fakeGame) State() core.GameState                { return g.state }
func (g *fakeGame) SetLeaderboard(b session.Leaderboard) { g.board = b }
func (g *fakeGame) Modes() []string                      { return []string{core.ModeNormal, core.ModeChallenger} }

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.inputs = append(g.inputs, in.Clone())
	cues := g.cues
	g.cues = nil
	return core.StepResult{State: g.state, Cues: cues}
}

func init() {
	registry.Register("fake", func() registry.Game { return &fakeGame{} })
}

type countingPlayer struct {
	tones, stops int
}

func (p *countingPlayer) Tone(float64, time.Duration) { p.tones++ }
func (p *countingPlayer) LoopStart(float64)           {}
func (p *countingPlayer) LoopPitch(float64)           {}
func (p *countingPlayer) LoopStop()                   {}
func (p *countingPlayer) StopAll()                    { p.stops++ }
func (p *countingPlayer) Close() error                { return nil }

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func update(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm, cmd
}

func TestGameModelHoldsAndReleases(t *testing.T) {
	g := &fakeGame{}
	m := NewGameModel(g, Deps{}, core.DefaultConfig())
	m.Init()
	if g.resets != 1 {
		t.Fatalf("Init reset the game %d times", g.resets)
	}

	t0 := time.Now()
	next, _ := m.handleKey(runeKey('a'), t0)
	m = next.(GameModel)
	m, _ = update(t, m, TickMsg(t0.Add(16*time.Millisecond)))
	m, _ = update(t, m, TickMsg(t0.Add(100*time.Millisecond)))
	m, _ = update(t, m, TickMsg(t0.Add(time.Second)))

	if len(g.inputs) != 3 {
		t.Fatalf("stepped %d times, want 3", len(g.inputs))
	}
	first, second, third := g.inputs[0], g.inputs[1], g.inputs[2]
	if !first.Has(core.ActionLeft) || !first.IsHeld(core.ActionLeft) {
		t.Error("first tick should carry the press")
	}
	if second.Has(core.ActionLeft) || !second.IsHeld(core.ActionLeft) {
		t.Error("second tick should only carry the hold")
	}
	if third.IsHeld(core.ActionLeft) || !third.WasReleased(core.ActionLeft) {
		t.Error("third tick should carry the synthesized release")
	}
}

func TestGameModelRecordsRunOnce(t *testing.T) {
	store := openTestStore(t)
	g := &fakeGame{}
	player := &countingPlayer{}
	cfg := core.DefaultConfig()
	cfg.Mode = core.ModeChallenger

	m := NewGameModel(g, Deps{Store: store, Audio: player}, cfg)
	m.Init()
	if g.board == nil {
		t.Fatal("leaderboard not attached")
	}

	g.state = core.GameState{Score: 420, GameOver: true}
	g.cues = []core.Cue{core.Tone(220, 500*time.Millisecond)}
	now := time.Now()
	m, _ = update(t, m, TickMsg(now))
	m, _ = update(t, m, TickMsg(now.Add(16*time.Millisecond)))

	runs, err := store.RecentRuns("fake", 10)
	if err != nil {
		t.Fatalf("recent runs: %v", err)
	}
	if len(runs) != 1 || runs[0].Score != 420 || runs[0].Mode != core.ModeChallenger {
		t.Fatalf("runs = %+v, want one challenger run of 420", runs)
	}
	if !store.LoadSettings(AppName).TutorialCompleted {
		t.Error("first finished run should complete the tutorial")
	}
	if player.tones != 1 {
		t.Errorf("dispatched %d tones, want 1", player.tones)
	}

	// A restart clears the flag so the next game over is recorded again.
	g.state = core.GameState{}
	m, _ = update(t, m, TickMsg(now.Add(32*time.Millisecond)))
	g.state = core.GameState{Score: 10, GameOver: true}
	_, _ = update(t, m, TickMsg(now.Add(48*time.Millisecond)))
	if runs, _ := store.RecentRuns("fake", 10); len(runs) != 2 {
		t.Errorf("got %d runs after restart, want 2", len(runs))
	}
}

func TestGameModelToMenu(t *testing.T) {
	g := &fakeGame{state: core.GameState{ToMenu: true}}
	player := &countingPlayer{}

	m := NewGameModel(g, Deps{Audio: player}, core.DefaultConfig())
	m, cmd := update(t, m, TickMsg(time.Now()))
	if !m.BackToMenu() || m.IsQuitting() {
		t.Fatal("embedded model should hand back to the menu without quitting")
	}
	if cmd != nil {
		t.Error("tick loop should stop after leaving the game")
	}
	if player.stops != 1 {
		t.Errorf("StopAll called %d times, want 1", player.stops)
	}

	m = NewGameModel(g, Deps{}, core.DefaultConfig())
	m.standalone = true
	m, cmd = update(t, m, TickMsg(time.Now()))
	if !m.IsQuitting() || cmd == nil {
		t.Error("standalone model should quit the program")
	}
}

func TestGameModelQuitKey(t *testing.T) {
	m := NewGameModel(&fakeGame{}, Deps{}, core.DefaultConfig())
	m, cmd := update(t, m, runeKey('q'))
	if !m.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}
