package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/chainfall/internal/core"
	"github.com/vovakirdan/chainfall/internal/registry"
	"github.com/vovakirdan/chainfall/internal/session"
	"github.com/vovakirdan/chainfall/internal/storage"
)

const (
	maxScores      = 100 // leaderboard entries listed per mode
	recentRuns     = 8
	minWidthRecent = 72 // below this the run history panel is hidden
	historyWidth   = 22
)

var (
	sbTitle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	sbTab       = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	sbActiveTab = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	sbHardTab   = sbActiveTab.Background(lipgloss.Color("124"))
	sbPanel     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	sbDim       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Mode     key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp implements help.KeyMap.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextGame, k.Mode, k.Back, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.NextGame, k.PrevGame, k.Mode}, {k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll")),
		NextGame: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next game")),
		PrevGame: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev game")),
		Mode:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mode")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the leaderboard of one game and mode next to the
// recent run history.
type ScoreboardModel struct {
	games      []registry.GameInfo
	gameCursor int
	modeCursor int

	store   *storage.Store
	entries []session.Entry
	stats   *storage.RunStats
	runs    []storage.RunRecord

	table table.Model
	help  help.Model
	keys  ScoreboardKeyMap

	width, height int
	quitting      bool
	goingBack     bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:  registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	for i, g := range m.games {
		if g.ID == AppName {
			m.gameCursor = i
		}
	}
	m.table = m.newTable()
	m.loadScores()
	return m
}

func (m ScoreboardModel) showHistory() bool {
	return m.width >= minWidthRecent
}

func (m *ScoreboardModel) newTable() table.Model {
	nameW, scoreW := 6, 10
	if avail := m.width - 16; avail > 0 {
		if m.showHistory() {
			avail -= historyWidth + 4
		}
		scoreW = core.Clamp(avail-14, 8, 14)
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Name", Width: nameW},
			{Title: "Score", Width: scoreW},
		}),
		table.WithFocused(true),
		table.WithHeight(max(m.height-12, 3)),
	)
	st := table.DefaultStyles()
	st.Header = st.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	st.Selected = st.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	t.SetStyles(st)
	return t
}

// mode returns the selected mode of the current game.
func (m ScoreboardModel) mode() string {
	if len(m.games) == 0 || len(m.games[m.gameCursor].Modes) == 0 {
		return core.ModeNormal
	}
	modes := m.games[m.gameCursor].Modes
	return modes[m.modeCursor%len(modes)]
}

// loadScores reads the leaderboard, run stats and history of the selection.
// Read failures show as empty panels.
func (m *ScoreboardModel) loadScores() {
	m.entries, m.stats, m.runs = nil, nil, nil
	if m.store != nil && len(m.games) > 0 {
		id := m.games[m.gameCursor].ID
		m.entries = session.Top(m.store.Entries(id), m.mode(), maxScores)
		if st, err := m.store.Stats(id, m.mode()); err == nil {
			m.stats = st
		}
		if runs, err := m.store.RecentRuns(id, recentRuns); err == nil {
			m.runs = runs
		}
	}

	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		rows[i] = table.Row{fmt.Sprint(i + 1), e.Name, fmt.Sprint(e.Score)}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) selectGame(delta int) {
	if len(m.games) == 0 {
		return
	}
	m.gameCursor = (m.gameCursor + delta + len(m.games)) % len(m.games)
	m.modeCursor = 0
	m.loadScores()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextGame):
			m.selectGame(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevGame):
			m.selectGame(-1)
			return m, nil
		case key.Matches(msg, m.keys.Mode):
			m.modeCursor++
			m.loadScores()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.loadScores()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString(centerText(sbTitle.Render("HIGH SCORES"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderGameTabs(), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(m.renderModeTabs(), m.width))
	b.WriteString("\n\n")

	board := sbPanel.Render(m.renderBoard())
	if m.showHistory() {
		board = lipgloss.JoinHorizontal(lipgloss.Top, board, "  ", sbPanel.Width(historyWidth).Render(m.renderHistory()))
	}
	for _, line := range strings.Split(board, "\n") {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if m.stats != nil && m.stats.Runs > 0 {
		b.WriteString("\n")
		b.WriteString(centerText(sbDim.Render(fmt.Sprintf("%d runs  best %d  avg %.0f",
			m.stats.Runs, m.stats.BestScore, m.stats.AvgScore)), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(sbDim.Render(m.help.View(m.keys)), m.width))
	return b.String()
}

func (m ScoreboardModel) renderGameTabs() string {
	tabs := make([]string, len(m.games))
	for i, g := range m.games {
		if i == m.gameCursor {
			tabs[i] = sbActiveTab.Render(g.Title)
		} else {
			tabs[i] = sbTab.Render(g.Title)
		}
	}
	return strings.Join(tabs, " ")
}

func (m ScoreboardModel) renderModeTabs() string {
	if len(m.games) == 0 {
		return ""
	}
	modes := m.games[m.gameCursor].Modes
	tabs := make([]string, len(modes))
	for i, mode := range modes {
		label := strings.ToUpper(mode)
		switch {
		case mode != m.mode():
			tabs[i] = sbTab.Render(label)
		case mode == core.ModeChallenger:
			tabs[i] = sbHardTab.Render(label)
		default:
			tabs[i] = sbActiveTab.Render(label)
		}
	}
	return strings.Join(tabs, " ")
}

func (m ScoreboardModel) renderBoard() string {
	if len(m.entries) == 0 {
		return sbDim.Italic(true).Padding(1, 2).Render("No scores in this mode yet.")
	}
	return m.table.View()
}

func (m ScoreboardModel) renderHistory() string {
	var b strings.Builder
	b.WriteString("Recent runs\n")
	if len(m.runs) == 0 {
		b.WriteString(sbDim.Render("none"))
		return b.String()
	}
	for _, r := range m.runs {
		mode := "N"
		if r.Mode == core.ModeChallenger {
			mode = "C"
		}
		fmt.Fprintf(&b, "%s %7d  %s\n", mode, r.Score, r.CreatedAt.Format("01-02 15:04"))
	}
	return strings.TrimRight(b.String(), "\n")
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
