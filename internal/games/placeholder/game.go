// Package placeholder fills menu slots for games that are not built yet.
package placeholder

import (
	"github.com/vovakirdan/motion-arcade/internal/core"
	"github.com/vovakirdan/motion-arcade/internal/pose"
)

// Game draws a notice and never scores.
type Game struct {
	title string
}

// New creates a placeholder showing title.
func New(title string) *Game {
	return &Game{title: title}
}

// Init does nothing; there is no state.
func (g *Game) Init() {}

// Update draws the notice.
func (g *Game) Update(s core.Surface, w, h int, _ *pose.Pose, _ float64) float64 {
	fw, fh := float64(w), float64(h)
	s.Clear(core.ColorBlack)
	s.Text(fw/2-float64(len(g.title))*4, fh/2-20, g.title, core.ColorBrightWhite)
	s.Text(fw/2-44, fh/2+10, "Coming soon", core.ColorGray)
	return 0
}
