package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/motion-arcade/internal/registry"
	"github.com/vovakirdan/motion-arcade/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show game list sidebar
	sidebarWidth       = 24  // Width of game list sidebar
	maxScores          = 100 // Max scores to load
)

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Session  key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextGame, k.Session, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextGame, k.PrevGame},
		{k.Session, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "scroll down"),
		),
		NextGame: key.NewBinding(
			key.WithKeys("tab", "right", "d"),
			key.WithHelp("tab/→", "next game"),
		),
		PrevGame: key.NewBinding(
			key.WithKeys("shift+tab", "left", "a"),
			key.WithHelp("S-tab/←", "prev game"),
		),
		Session: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "this session"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel shows the best scores per game, optionally narrowed to
// the current play session, with aggregate stats for the selected game.
type ScoreboardModel struct {
	games       []registry.Entry
	gameCursor  int
	store       *storage.Store
	sessionID   string // Empty when no session is recording
	onlySession bool
	scores      []storage.ScoreEntry
	stats       *storage.GameStats
	best        map[string]*storage.GameStats
	loadErr     string
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	standalone  bool // Back quits the program instead of returning to the caller
}

// NewScoreboardModel creates a new scoreboard model over the given games.
// store may be nil, in which case every table is empty.
func NewScoreboardModel(store *storage.Store, games []registry.Entry, width, height int) ScoreboardModel {
	h := help.New()
	h.Width = width

	m := ScoreboardModel{
		games:  games,
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	if store != nil {
		if all, err := store.GetAllGamesStats(); err == nil {
			m.best = all
		}
	}
	m.reload()
	return m
}

// WithSession enables the session filter for the given play session.
func (m ScoreboardModel) WithSession(id string) ScoreboardModel {
	m.sessionID = id
	return m
}

func (m ScoreboardModel) showSidebar() bool {
	return m.width >= minWidthForSidebar
}

func (m ScoreboardModel) currentGame() (registry.Entry, bool) {
	if len(m.games) == 0 {
		return registry.Entry{}, false
	}
	return m.games[m.gameCursor], true
}

func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 10},
		{Title: "Player", Width: 12},
		{Title: "When", Width: 16},
	}

	tableWidth := m.width - 4
	if m.showSidebar() {
		tableWidth -= sidebarWidth + 3
	}
	if extra := tableWidth - 52; extra > 0 {
		columns[2].Width += min(extra, 8)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)), // Title, stats, tabs and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// reload fetches scores and stats for the selected game.
func (m *ScoreboardModel) reload() {
	m.scores, m.stats, m.loadErr = nil, nil, ""
	game, ok := m.currentGame()
	if m.store == nil || !ok {
		m.updateTableRows()
		return
	}

	var err error
	if m.onlySession && m.sessionID != "" {
		m.scores, err = m.sessionScores(game.ID)
	} else {
		m.scores, err = m.store.TopScores(game.ID, maxScores)
	}
	if err != nil {
		m.loadErr = err.Error()
	}
	if stats, err := m.store.GetGameStats(game.ID); err == nil {
		m.stats = stats
	}
	m.updateTableRows()
}

// sessionScores returns this session's scores for one game, best first.
func (m *ScoreboardModel) sessionScores(gameID string) ([]storage.ScoreEntry, error) {
	all, err := m.store.SessionScores(m.sessionID)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, s := range all {
		if s.GameID == gameID {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out, nil
}

func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		player := s.Player
		if player == "" {
			player = "-"
		}
		when := "-"
		if !s.CreatedAt.IsZero() {
			when = humanize.Time(s.CreatedAt)
		}
		rows[i] = table.Row{
			humanize.Ordinal(i + 1),
			humanize.Comma(int64(s.Score)),
			player,
			when,
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if m.standalone {
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.NextGame):
			m.selectGame(1)
			return m, nil

		case key.Matches(msg, m.keys.PrevGame):
			m.selectGame(-1)
			return m, nil

		case key.Matches(msg, m.keys.Session):
			if m.sessionID != "" {
				m.onlySession = !m.onlySession
				m.reload()
			}
			return m, nil

		case key.Matches(msg, m.keys.Up):
			m.table.MoveUp(1)
			return m, nil

		case key.Matches(msg, m.keys.Down):
			m.table.MoveDown(1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ScoreboardModel) selectGame(step int) {
	if len(m.games) == 0 {
		return
	}
	m.gameCursor = (m.gameCursor + step + len(m.games)) % len(m.games)
	m.reload()
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "HIGH SCORES"
	if game, ok := m.currentGame(); ok {
		title = fmt.Sprintf("HIGH SCORES - %s %s", game.Descriptor.Icon, game.Descriptor.Name)
	}
	if m.onlySession {
		title += " (this session)"
	}
	b.WriteString(centerStyled(boardTitleStyle.Render(title), m.width))
	b.WriteString("\n")
	b.WriteString(centerStyled(boardDimStyle.Render(m.statsLine()), m.width))
	b.WriteString("\n\n")

	if m.showSidebar() {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", boardPanelStyle.Render(m.renderTableContent())))
	} else {
		b.WriteString(centerStyled(m.renderTabs(), m.width))
		b.WriteString("\n\n")
		b.WriteString(centerStyled(boardPanelStyle.Render(m.renderTableContent()), m.width))
	}

	b.WriteString("\n")
	b.WriteString(boardDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// statsLine summarizes every recorded play of the selected game.
func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return "no plays yet"
	}
	return fmt.Sprintf("%s plays · best %s · avg %s · last %s",
		humanize.Comma(int64(m.stats.GamesCount)),
		humanize.Comma(int64(m.stats.HighScore)),
		humanize.Comma(int64(m.stats.AvgScore)),
		humanize.Time(m.stats.LastPlayed),
	)
}

// renderSidebar lists the games with their best score.
func (m ScoreboardModel) renderSidebar() string {
	var sb strings.Builder
	sb.WriteString("Games\n")
	sb.WriteString(strings.Repeat("─", sidebarWidth-4))

	for i, g := range m.games {
		cursor, style := "  ", lipgloss.NewStyle()
		if i == m.gameCursor {
			cursor, style = "> ", boardTitleStyle
		}
		best := "-"
		if st, ok := m.best[g.ID]; ok && st.GamesCount > 0 {
			best = humanize.Comma(int64(st.HighScore))
		}
		line := fmt.Sprintf("%s%s %-10s %7s", cursor, g.Descriptor.Icon, truncate(g.Descriptor.Name, 10), best)
		sb.WriteString("\n")
		sb.WriteString(style.Render(line))
	}
	return boardPanelStyle.Width(sidebarWidth).Render(sb.String())
}

// renderTabs shows the games as one line, or just the current one with
// arrows when they do not fit.
func (m ScoreboardModel) renderTabs() string {
	active := boardTitleStyle.Background(lipgloss.Color("57")).Padding(0, 1)

	tabs := make([]string, len(m.games))
	for i, g := range m.games {
		name := truncate(g.Descriptor.Name, 10)
		if i == m.gameCursor {
			tabs[i] = active.Render(name)
		} else {
			tabs[i] = boardDimStyle.Render(" " + name + " ")
		}
	}
	line := strings.Join(tabs, " ")
	if game, ok := m.currentGame(); ok && lipgloss.Width(line) > m.width-4 {
		line = fmt.Sprintf("< %s >", game.Descriptor.Name)
	}
	return line
}

func (m ScoreboardModel) renderTableContent() string {
	empty := boardDimStyle.Italic(true).Padding(2, 4)
	switch {
	case m.loadErr != "":
		return empty.Render("Could not load scores:\n" + m.loadErr)
	case len(m.scores) == 0 && m.onlySession:
		return empty.Render("No scores in this session yet.")
	case len(m.scores) == 0:
		return empty.Render("No scores recorded yet.\nPlay a game to set a high score!")
	}
	return m.table.View()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen on its own.
// Returns true if user pressed back, false if quitting.
func RunScoreboard(store *storage.Store, games []registry.Entry, width, height int) (goBack bool, err error) {
	model := NewScoreboardModel(store, games, width, height)
	model.standalone = true

	finalModel, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
