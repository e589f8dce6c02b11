package session

import (
	"time"

	"github.com/vovakirdan/chainfall/internal/core"
)

// Phase is the lifecycle stage of a run.
type Phase int

const (
	PhasePlaying Phase = iota
	PhaseNameEntry
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseNameEntry:
		return "name-entry"
	case PhaseGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Outcome is what the game must do after handling session input.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeRestart
	OutcomeMenu
)

// NameLength is the number of letters in a leaderboard name.
const NameLength = 4

// GameOverItems are the choices on the game-over menu, in display order.
var GameOverItems = []string{"RESTART", "MENU"}

const (
	uiToneFreq     = 440
	uiToneLength   = 50 * time.Millisecond
	saveToneFreq   = 523
	saveToneLength = 200 * time.Millisecond
)

// Machine drives one game's run lifecycle.
type Machine struct {
	game  string
	mode  string
	cap   int
	board Leaderboard

	phase      Phase
	finalScore int
	saveErr    error

	name   [NameLength]byte
	cursor int
	menu   int
}

// New creates a machine for the given game ID. capN <= 0 uses DefaultCap.
func New(game string, capN int) *Machine {
	if capN <= 0 {
		capN = DefaultCap
	}
	m := &Machine{game: game, cap: capN, mode: core.ModeNormal}
	m.Start(core.ModeNormal)
	return m
}

// SetBoard attaches the leaderboard. Without one, runs never enter name entry.
func (m *Machine) SetBoard(b Leaderboard) {
	m.board = b
}

// Board returns the attached leaderboard, or nil.
func (m *Machine) Board() Leaderboard {
	return m.board
}

// Start begins a new run in the given mode.
func (m *Machine) Start(mode string) {
	m.mode = core.NormalizeMode(mode)
	m.phase = PhasePlaying
	m.finalScore = 0
	m.saveErr = nil
	m.menu = 0
	m.cursor = 0
	for i := range m.name {
		m.name[i] = 'A'
	}
}

// End finishes the run. The next phase is name entry when the score
// qualifies for the leaderboard, otherwise the game-over menu. Calling End
// outside PhasePlaying is a no-op.
func (m *Machine) End(score int) Phase {
	if m.phase != PhasePlaying {
		return m.phase
	}
	m.finalScore = score
	m.phase = PhaseGameOver
	if m.board != nil && Qualifies(m.board.Entries(m.game), m.mode, score, m.cap) {
		m.phase = PhaseNameEntry
	}
	return m.phase
}

// Handle consumes input for the non-playing phases. It returns the outcome
// and any UI cues raised.
func (m *Machine) Handle(in core.InputFrame) (Outcome, []core.Cue) {
	switch m.phase {
	case PhaseNameEntry:
		return OutcomeNone, m.handleNameEntry(in)
	case PhaseGameOver:
		return m.handleMenu(in)
	}
	return OutcomeNone, nil
}

func (m *Machine) handleNameEntry(in core.InputFrame) []core.Cue {
	click := []core.Cue{core.Tone(uiToneFreq, uiToneLength)}
	switch {
	case in.Has(core.ActionUp):
		m.name[m.cursor] = cycleLetter(m.name[m.cursor], 1)
		return click
	case in.Has(core.ActionDown):
		m.name[m.cursor] = cycleLetter(m.name[m.cursor], -1)
		return click
	case in.Has(core.ActionLeft):
		m.cursor = (m.cursor + NameLength - 1) % NameLength
		return click
	case in.Has(core.ActionRight):
		m.cursor = (m.cursor + 1) % NameLength
		return click
	case in.Has(core.ActionConfirm), in.Has(core.ActionFire), in.Has(core.ActionJump):
		if m.board != nil {
			m.saveErr = m.board.Append(m.game, Entry{Name: m.Name(), Score: m.finalScore, Mode: m.mode})
		}
		m.phase = PhaseGameOver
		return []core.Cue{core.Tone(saveToneFreq, saveToneLength)}
	}
	return nil
}

func (m *Machine) handleMenu(in core.InputFrame) (Outcome, []core.Cue) {
	n := len(GameOverItems)
	switch {
	case in.Has(core.ActionUp):
		m.menu = (m.menu + n - 1) % n
	case in.Has(core.ActionDown):
		m.menu = (m.menu + 1) % n
	case in.Has(core.ActionRestart):
		return OutcomeRestart, nil
	case in.Has(core.ActionBack):
		return OutcomeMenu, nil
	case in.Has(core.ActionConfirm), in.Has(core.ActionFire), in.Has(core.ActionJump):
		if m.menu == 0 {
			return OutcomeRestart, nil
		}
		return OutcomeMenu, nil
	}
	return OutcomeNone, nil
}

func cycleLetter(c byte, delta int) byte {
	return byte('A' + (int(c-'A')+delta+26)%26)
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase { return m.phase }

// Playing reports whether the run is in progress.
func (m *Machine) Playing() bool { return m.phase == PhasePlaying }

// Mode returns the run's mode.
func (m *Machine) Mode() string { return m.mode }

// FinalScore returns the score recorded by End.
func (m *Machine) FinalScore() int { return m.finalScore }

// Name returns the name being entered.
func (m *Machine) Name() string { return string(m.name[:]) }

// Cursor returns the selected letter index during name entry.
func (m *Machine) Cursor() int { return m.cursor }

// MenuIndex returns the selected game-over menu item.
func (m *Machine) MenuIndex() int { return m.menu }

// SaveErr returns the error from the last leaderboard append, if any.
func (m *Machine) SaveErr() error { return m.saveErr }
