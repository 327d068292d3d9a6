package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/motion-arcade/internal/config"
	"github.com/vovakirdan/motion-arcade/internal/core"
	"github.com/vovakirdan/motion-arcade/internal/platform/host"
	"github.com/vovakirdan/motion-arcade/internal/pose"
	"github.com/vovakirdan/motion-arcade/internal/registry"
	"github.com/vovakirdan/motion-arcade/internal/storage"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg    tea.KeyMsg
		want   core.Action
		isQuit bool
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{runeKey('s'), core.ActionDown, false},
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{runeKey('d'), core.ActionRight, false},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionJump, false},
		{tea.KeyMsg{Type: tea.KeyTab}, core.ActionSwitchHand, false},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{runeKey('q'), core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{runeKey('x'), core.ActionNone, false},
	}
	for _, tt := range tests {
		got, quit := km.MapKey(tt.msg)
		if got != tt.want || quit != tt.isQuit {
			t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tt.msg.String(), got, quit, tt.want, tt.isQuit)
		}
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{runeKey('k'), MenuActionUp},
		{runeKey('j'), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey('q'), MenuActionQuit},
		{runeKey('z'), MenuActionNone},
	}
	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawText(0, 0, "hi", core.ColorRed)
	s.DrawText(0, 1, "there", core.ColorCourt)
	out := RenderScreen(s)
	if !strings.Contains(out, "hi") || !strings.Contains(out, "there") {
		t.Errorf("rendered output lost text: %q", out)
	}
}

func newTestArcade(t *testing.T) *host.Arcade {
	t.Helper()
	cfg := config.DefaultArcadeConfig()
	cfg.Pose.Source = "keyboard"
	a, err := host.NewArcade(host.Options{Config: cfg, Games: config.DefaultGames(), Seed: 7})
	if err != nil {
		t.Fatalf("NewArcade() failed: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func TestModelLaunchSteerAndBack(t *testing.T) {
	a := newTestArcade(t)
	var m tea.Model = NewModel(a, 80, 24)

	// Move to tennis and start it.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("select should produce a launch command")
	}
	msg := cmd()
	lm, ok := msg.(launchedMsg)
	if !ok || lm.err != nil || lm.id != "tennis" {
		t.Fatalf("launch result = %#v", msg)
	}
	m, _ = m.Update(lm)

	if st := a.Orchestrator.State(); st.ActiveGameID != "tennis" || !st.LoopRunning {
		t.Fatalf("state = %+v", st)
	}
	if !strings.Contains(m.View(), "Tennis") {
		t.Error("game view should name the game")
	}

	// Arrow keys move the active (right) wrist.
	before := wrist(t, a.Keyboard, pose.RightWrist)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if after := wrist(t, a.Keyboard, pose.RightWrist); after.X <= before.X {
		t.Errorf("right wrist did not move: %v -> %v", before.X, after.X)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if a.Keyboard.ActiveHand() != pose.LeftWrist {
		t.Error("tab should switch hands")
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc should return to the menu")
	}
	cmd()
	if st := a.Orchestrator.State(); st.LoopRunning {
		t.Error("game still running after esc")
	}
	if a.Display.Snapshot().Mode != host.ModeMenu {
		t.Error("display should be back on the menu")
	}
}

func TestModelQuit(t *testing.T) {
	a := newTestArcade(t)
	m := NewModel(a, 80, 24)
	next, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if next.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestModelScoreboardRoundTrip(t *testing.T) {
	a := newTestArcade(t)
	var m tea.Model = NewModel(a, 100, 30)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if !strings.Contains(m.View(), "HIGH SCORES") {
		t.Fatal("tab should open the scoreboard")
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !strings.Contains(m.View(), "Select a game") {
		t.Error("esc should return to the menu")
	}
}

func wrist(t *testing.T, k *pose.KeyboardBackend, name pose.Name) pose.Keypoint {
	t.Helper()
	poses, err := k.Estimate(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	kp, ok := poses[0].Find(name)
	if !ok {
		t.Fatalf("%s missing", name)
	}
	return kp
}

func TestScoreboardSessionFilter(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	mine, err := store.StartSession("ana", "keyboard")
	if err != nil {
		t.Fatal(err)
	}
	other, err := store.StartSession("bo", "keyboard")
	if err != nil {
		t.Fatal(err)
	}
	for _, rec := range []struct {
		sess  *storage.Session
		game  string
		score float64
	}{
		{mine, "boxing", 300},
		{mine, "boxing", 700},
		{mine, "tennis", 5},
		{other, "boxing", 9000},
	} {
		if err := rec.sess.RecordScore(rec.game, rec.score); err != nil {
			t.Fatal(err)
		}
	}

	games := []registry.Entry{
		{ID: "boxing", Descriptor: registry.NewDescriptor("Boxing", "B")},
		{ID: "tennis", Descriptor: registry.NewDescriptor("Tennis", "T")},
	}
	sb := NewScoreboardModel(store, games, 100, 30).WithSession(mine.ID)

	if len(sb.scores) != 3 || sb.scores[0].Score != 9000 {
		t.Fatalf("all-time boxing scores = %+v", sb.scores)
	}
	if !strings.Contains(sb.View(), "3 plays") {
		t.Errorf("stats line missing from view:\n%s", sb.View())
	}

	next, _ := sb.Update(runeKey('m'))
	sb = next.(ScoreboardModel)
	if len(sb.scores) != 2 || sb.scores[0].Score != 700 || sb.scores[1].Score != 300 {
		t.Errorf("session boxing scores = %+v, want 700 then 300", sb.scores)
	}
	if !strings.Contains(sb.View(), "(this session)") {
		t.Error("session filter should show in the title")
	}

	next, _ = sb.Update(tea.KeyMsg{Type: tea.KeyTab})
	sb = next.(ScoreboardModel)
	if len(sb.scores) != 1 || sb.scores[0].GameID != "tennis" {
		t.Errorf("session tennis scores = %+v", sb.scores)
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	games := []registry.Entry{{ID: "runner", Descriptor: registry.NewDescriptor("Runner", "R")}}
	sb := NewScoreboardModel(nil, games, 60, 20)

	// No session: the filter key is ignored
	next, _ := sb.Update(runeKey('m'))
	sb = next.(ScoreboardModel)
	if sb.onlySession {
		t.Error("session filter enabled without a session")
	}
	if !strings.Contains(sb.View(), "No scores recorded yet") {
		t.Errorf("empty scoreboard view:\n%s", sb.View())
	}
}

func TestSSHServerSessionLimit(t *testing.T) {
	s := &SSHServer{
		config:  SSHServerConfig{MaxSessions: 1},
		arcades: make(map[*host.Arcade]struct{}),
	}
	first, second := newTestArcade(t), newTestArcade(t)

	if !s.track(first) {
		t.Fatal("first session should be accepted")
	}
	if s.track(second) {
		t.Fatal("second session should be rejected at the limit")
	}
	if s.Sessions() != 1 {
		t.Errorf("Sessions() = %d, want 1", s.Sessions())
	}

	if !s.untrack(first) {
		t.Error("untrack should report a live session")
	}
	if s.untrack(first) {
		t.Error("untrack twice should report false")
	}
	if !s.track(second) {
		t.Error("a freed slot should accept a new session")
	}
}
