package runtime

import (
	"github.com/vovakirdan/motion-arcade/internal/core"
	"github.com/vovakirdan/motion-arcade/internal/registry"
)

// Display is the presentation side of the arcade: menu, game view, score
// readout and message overlay. The orchestrator calls it while holding its
// lock, so implementations must return quickly and must not call back
// into the orchestrator.
type Display interface {
	// ShowMenu switches to the menu listing entries in order.
	ShowMenu(entries []registry.Entry)

	// ShowGame switches to the game view.
	ShowGame(id string, desc registry.Descriptor)

	// Present hands over one finished frame. The slice is owned by the
	// display after the call.
	Present(frame []core.Op)

	// SetScore updates the numeric score readout.
	SetScore(score float64)

	// Message shows a short text overlay.
	Message(text string)
}

// ScoreSink receives final scores when a game ends.
type ScoreSink interface {
	RecordScore(gameID string, score float64) error
}
