package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/motion-arcade/internal/core"
	"github.com/vovakirdan/motion-arcade/internal/platform/host"
	"github.com/vovakirdan/motion-arcade/internal/pose"
)

// launchTimeout bounds one launch including backend boot retries.
const launchTimeout = 30 * time.Second

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	scoreStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// launchedMsg reports the outcome of a launch command.
type launchedMsg struct {
	id  string
	err error
}

// Model is the Bubble Tea model hosting one arcade session. The
// orchestrator drives games on its own goroutine; the model only forwards
// keys and redraws whatever the display holds on every tick.
type Model struct {
	arcade     *host.Arcade
	keys       *KeyMapper
	screen     *core.Screen
	canvas     *core.Canvas
	scoreboard *ScoreboardModel
	cursor     int
	width      int
	height     int
	launching  bool
	lastErr    string
	quitting   bool
}

// NewModel creates a model for an arcade session of the given size.
func NewModel(a *host.Arcade, width, height int) Model {
	screen := core.NewScreen(width, core.Max(height-2, 1))
	return Model{
		arcade: a,
		keys:   NewKeyMapper(),
		screen: screen,
		canvas: core.NewCanvas(screen, a.Config.Surface.Width, a.Config.Surface.Height),
		width:  width,
		height: height,
	}
}

// Init starts the redraw ticker.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.arcade.Config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.screen.Resize(msg.Width, core.Max(msg.Height-2, 1))
		if m.scoreboard != nil {
			sb, cmd := m.scoreboard.Update(msg)
			m.setScoreboard(sb)
			return m, cmd
		}
		return m, nil

	case TickMsg:
		return m, tickCmd(m.arcade.Config.TickRate)

	case launchedMsg:
		m.launching = false
		m.lastErr = ""
		if msg.err != nil {
			m.lastErr = fmt.Sprintf("Could not start %s: %v", msg.id, msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		if m.scoreboard != nil {
			sb, cmd := m.scoreboard.Update(msg)
			m.setScoreboard(sb)
			return m, cmd
		}
		if m.arcade.Display.Snapshot().Mode == host.ModeGame {
			return m.handleGameKey(msg)
		}
		return m.handleMenuKey(msg)
	}

	return m, nil
}

func (m *Model) setScoreboard(model tea.Model) {
	sb, ok := model.(ScoreboardModel)
	if !ok || sb.IsGoingBack() {
		m.scoreboard = nil
		return
	}
	m.scoreboard = &sb
}

// handleMenuKey navigates the game list.
func (m Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entries := m.arcade.Orchestrator.Registry().List()

	switch m.keys.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(entries)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(entries) > 0 && !m.launching {
			m.cursor = core.Clamp(m.cursor, 0, len(entries)-1)
			return m.launch(entries[m.cursor].ID)
		}

	case MenuActionScoreboard:
		sb := NewScoreboardModel(m.arcade.Store, entries, m.width, m.height)
		if m.arcade.Session != nil {
			sb = sb.WithSession(m.arcade.Session.ID)
		}
		m.scoreboard = &sb
	}

	return m, nil
}

// handleGameKey steers the keyboard body or leaves the game.
func (m Model) handleGameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit

	case action == core.ActionBack:
		o := m.arcade.Orchestrator
		return m, func() tea.Msg {
			o.Menu()
			return nil
		}

	case action == core.ActionConfirm:
		// Relaunching the running game restarts it.
		if id := m.arcade.Orchestrator.State().ActiveGameID; id != "" && !m.launching {
			return m.launch(id)
		}

	case action != core.ActionNone && m.arcade.Keyboard != nil:
		m.arcade.Keyboard.Press(action)
	}

	return m, nil
}

func (m Model) launch(id string) (tea.Model, tea.Cmd) {
	m.launching = true
	m.lastErr = ""
	o := m.arcade.Orchestrator
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), launchTimeout)
		defer cancel()
		return launchedMsg{id: id, err: o.Launch(ctx, id)}
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.scoreboard != nil {
		return m.scoreboard.View()
	}

	v := m.arcade.Display.Snapshot()
	message := ""
	if v.MessageVisible(time.Now()) {
		message = v.Message
	}
	if m.lastErr != "" {
		message = m.lastErr
	}

	if v.Mode == host.ModeGame {
		return m.renderGame(v, message)
	}
	if m.launching {
		message = "Starting camera..."
	}
	cursor := core.Clamp(m.cursor, 0, core.Max(len(v.Entries)-1, 0))
	return renderMenu(v.Entries, cursor, m.width, message)
}

// renderGame draws the header, the latest frame and the footer.
func (m Model) renderGame(v host.View, message string) string {
	st := m.arcade.Orchestrator.State()
	m.canvas.SetLogicalSize(st.SurfaceW, st.SurfaceH)
	m.screen.Clear()
	core.Replay(v.Frame, m.canvas)
	if message != "" {
		m.screen.DrawMessageBox(v.Game.Name, message, core.ColorBrightYellow)
	}

	header := headerStyle.Render(fmt.Sprintf("%s %s", v.Game.Icon, v.Game.Name)) +
		"   " + scoreStyle.Render("Score: "+humanize.Comma(int64(v.Score)))
	if m.arcade.Keyboard != nil {
		hand := "right"
		if m.arcade.Keyboard.ActiveHand() == pose.LeftWrist {
			hand = "left"
		}
		header += footerStyle.Render("   hand: " + hand)
	}

	footer := "Arrows: move hand  |  Tab: switch hand  |  Space: jump  |  R: restart  |  Esc: menu  |  Q: quit"
	if m.arcade.Keyboard == nil {
		footer = "Move in front of the camera  |  R: restart  |  Esc: menu  |  Q: quit"
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(footerStyle.Render(footer))
	return b.String()
}

// saveScreenshot saves the current frame as text.
func (m *Model) saveScreenshot() {
	v := m.arcade.Display.Snapshot()
	m.screen.Clear()
	core.Replay(v.Frame, m.canvas)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", v.GameID, timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// Run starts a local Bubble Tea program for the arcade session.
func Run(a *host.Arcade, width, height int) error {
	model := NewModel(a, width, height)
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
