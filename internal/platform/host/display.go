// Package host holds what every arcade front end shares: the buffering
// display the orchestrator presents to and the wiring of one session.
package host

import (
	"sync"
	"time"

	"github.com/vovakirdan/motion-arcade/internal/core"
	"github.com/vovakirdan/motion-arcade/internal/registry"
)

// messageTTL is how long an overlay message stays on screen.
const messageTTL = 4 * time.Second

// Mode is the screen the display is showing.
type Mode int

const (
	ModeMenu Mode = iota
	ModeGame
)

// View is a copy of everything the display was told to show.
type View struct {
	Mode      Mode
	Entries   []registry.Entry
	GameID    string
	Game      registry.Descriptor
	Frame     []core.Op
	Frames    uint64 // Frames presented since start
	Score     float64
	Message   string
	MessageAt time.Time
}

// MessageVisible reports whether the overlay message is still fresh at now.
func (v View) MessageVisible(now time.Time) bool {
	return v.Message != "" && now.Sub(v.MessageAt) < messageTTL
}

// Display buffers what the orchestrator presents so the Bubble Tea loop can
// draw it on its own schedule. Every method only swaps fields under a
// mutex and never blocks the frame loop.
type Display struct {
	mu   sync.Mutex
	view View
	now  func() time.Time
}

// NewDisplay returns a display showing an empty menu.
func NewDisplay() *Display {
	return &Display{now: time.Now}
}

// ShowMenu switches to the menu.
func (d *Display) ShowMenu(entries []registry.Entry) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.view.Mode = ModeMenu
	d.view.Entries = append([]registry.Entry(nil), entries...)
	d.view.Frame = nil
}

// ShowGame switches to the game view.
func (d *Display) ShowGame(id string, desc registry.Descriptor) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.view.Mode = ModeGame
	d.view.GameID = id
	d.view.Game = desc
	d.view.Frame = nil
	d.view.Message = ""
}

// Present stores the latest frame; older frames are dropped.
func (d *Display) Present(frame []core.Op) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.view.Frame = frame
	d.view.Frames++
}

// SetScore updates the score readout.
func (d *Display) SetScore(score float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.view.Score = score
}

// Message shows text over the current screen for a few seconds.
func (d *Display) Message(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.view.Message = text
	d.view.MessageAt = d.now()
}

// Snapshot returns the current view.
func (d *Display) Snapshot() View {
	d.mu.Lock()
	defer d.mu.Unlock()
	v := d.view
	v.Entries = append([]registry.Entry(nil), d.view.Entries...)
	return v
}
