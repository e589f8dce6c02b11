package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/chainfall/internal/core"
	"github.com/vovakirdan/chainfall/internal/registry"
	"github.com/vovakirdan/chainfall/internal/session"
	"github.com/vovakirdan/chainfall/internal/storage"
)

// MenuItem represents a selectable game in the menu.
type MenuItem struct {
	GameID string
	Title  string
	Modes  []string
}

// MenuModel is the Bubble Tea model for the game and mode picker.
type MenuModel struct {
	items     []MenuItem
	modes     []int // selected mode index per item
	cursor    int
	width     int
	height    int
	store     *storage.Store
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	firstRun  bool

	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel creates a menu listing every registered game.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		items = append(items, MenuItem{GameID: g.ID, Title: g.Title, Modes: g.Modes})
	}

	m := MenuModel{
		items:     items,
		modes:     make([]int, len(items)),
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		store:     store,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
	// The flagship game is listed first when present.
	for i, it := range items {
		if it.GameID == AppName {
			m.cursor = i
		}
	}
	if store != nil {
		m.firstRun = !store.LoadSettings(AppName).TutorialCompleted
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionLeft:
		m.cycleMode(-1)

	case MenuActionRight:
		m.cycleMode(1)

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *MenuModel) cycleMode(delta int) {
	if len(m.items) == 0 {
		return
	}
	n := len(m.items[m.cursor].Modes)
	if n == 0 {
		return
	}
	m.modes[m.cursor] = (m.modes[m.cursor] + delta + n) % n
}

// mode returns the selected mode of item i.
func (m MenuModel) mode(i int) string {
	modes := m.items[i].Modes
	if len(modes) == 0 {
		return core.ModeNormal
	}
	return modes[m.modes[i]]
}

// best returns the top leaderboard score for the item's selected mode.
func (m MenuModel) best(i int) (session.Entry, bool) {
	if m.store == nil {
		return session.Entry{}, false
	}
	top := session.Top(m.store.Entries(m.items[i].GameID), m.mode(i), 1)
	if len(top) == 0 {
		return session.Entry{}, false
	}
	return top[0], true
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	selStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	challengerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("C H A I N F A L L", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a game", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		mode := m.mode(i)
		modeLabel := strings.ToUpper(mode)
		if len(item.Modes) > 1 {
			modeLabel = "< " + modeLabel + " >"
		}
		line := fmt.Sprintf("  %-12s %-16s", item.Title, modeLabel)
		if e, ok := m.best(i); ok {
			line += fmt.Sprintf(" best %s %d", e.Name, e.Score)
		}

		switch {
		case i == m.cursor && mode == core.ModeChallenger:
			line = challengerStyle.Render("> " + line[2:])
		case i == m.cursor:
			line = selStyle.Render("> " + line[2:])
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.firstRun {
		b.WriteString(centerText("First run: jump off the ledge, shoot while falling, land to cash the combo.", m.width))
		b.WriteString("\n")
	}
	controls := "Up/Down: Game  |  Left/Right: Mode  |  Enter: Play  |  Tab: Scores  |  Q: Quit"
	b.WriteString(dimStyle.Render(centerText(controls, m.width)))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// SelectedMode returns the mode chosen for the selected item.
func (m MenuModel) SelectedMode() string {
	if len(m.items) == 0 {
		return core.ModeNormal
	}
	return m.mode(m.cursor)
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Mode            string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.IsQuitting() || m.Selected() == nil:
		result.Quit = true
	default:
		result.GameID = m.Selected().GameID
		result.Mode = m.SelectedMode()
	}
	return result, nil
}
