package placeholder

import (
	"testing"

	"github.com/vovakirdan/motion-arcade/internal/core"
)

func TestPlaceholder(t *testing.T) {
	g := New("Yoga")
	g.Init()
	rec := core.NewRecorder()

	for _, dt := range []float64{0, 1.0 / 30, 5} {
		if got := g.Update(rec, 640, 480, nil, dt); got != 0 {
			t.Errorf("dt=%v: score = %v, want 0", dt, got)
		}
	}
	if rec.Count(core.OpClear) != 3 || rec.Count(core.OpText) != 6 {
		t.Errorf("unexpected ops: %d clears, %d texts", rec.Count(core.OpClear), rec.Count(core.OpText))
	}
}
