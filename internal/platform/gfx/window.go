package gfx

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/motion-arcade/internal/core"
	"github.com/vovakirdan/motion-arcade/internal/platform/host"
	"github.com/vovakirdan/motion-arcade/internal/registry"
	"github.com/vovakirdan/motion-arcade/internal/runtime"
)

const (
	launchTimeout = 30 * time.Second
	// Held arrow keys repeat after this many ticks, then every repeatEvery.
	repeatDelay = 12
	repeatEvery = 3
)

// menuHighlight marks the selected menu row.
var menuHighlight = color.RGBA{0x40, 0x30, 0x70, 0xff}

// Window is an ebiten.Game hosting one arcade session.
type Window struct {
	arcade *host.Arcade
	clock  *runtime.ChanClock
	now    func() time.Time

	cursor int

	mu        sync.Mutex
	launching bool
	lastErr   string
	quit      bool
}

var _ ebiten.Game = (*Window)(nil)

// NewWindow wraps an arcade whose orchestrator was built with clock.
func NewWindow(a *host.Arcade, clock *runtime.ChanClock) *Window {
	return &Window{arcade: a, clock: clock, now: time.Now}
}

// Update runs once per ebiten tick: it releases one orchestrator frame and
// handles input. It never waits for the frame to finish.
func (w *Window) Update() error {
	w.clock.Tick(w.now())

	w.mu.Lock()
	quit := w.quit
	w.mu.Unlock()
	if quit {
		return ebiten.Termination
	}

	if w.arcade.Display.Snapshot().Mode == host.ModeGame {
		w.gameInput()
	} else {
		w.menuInput()
	}
	return nil
}

func (w *Window) menuInput() {
	entries := w.arcade.Orchestrator.Registry().List()
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyQ):
		w.setQuit()
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp), inpututil.IsKeyJustPressed(ebiten.KeyW):
		if w.cursor > 0 {
			w.cursor--
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown), inpututil.IsKeyJustPressed(ebiten.KeyS):
		if w.cursor < len(entries)-1 {
			w.cursor++
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		if len(entries) > 0 {
			w.cursor = core.Clamp(w.cursor, 0, len(entries)-1)
			w.Launch(entries[w.cursor].ID)
		}
	}
}

// keyActions maps held keys to keyboard-body actions.
var keyActions = []struct {
	keys   []ebiten.Key
	action core.Action
	repeat bool
}{
	{[]ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}, core.ActionUp, true},
	{[]ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}, core.ActionDown, true},
	{[]ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}, core.ActionLeft, true},
	{[]ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}, core.ActionRight, true},
	{[]ebiten.Key{ebiten.KeySpace}, core.ActionJump, false},
	{[]ebiten.Key{ebiten.KeyTab}, core.ActionSwitchHand, false},
}

func (w *Window) gameInput() {
	o := w.arcade.Orchestrator
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyQ):
		w.setQuit()
		return
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyB):
		// Menu waits for the frame loop, which waits for Update.
		go o.Menu()
		return
	case inpututil.IsKeyJustPressed(ebiten.KeyR), inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		if id := o.State().ActiveGameID; id != "" {
			w.Launch(id)
		}
		return
	}

	kb := w.arcade.Keyboard
	if kb == nil {
		return
	}
	for _, ka := range keyActions {
		for _, k := range ka.keys {
			if pressed(k, ka.repeat) {
				kb.Press(ka.action)
				break
			}
		}
	}
}

// pressed reports a fresh press, or a held key's repeat when repeat is set.
func pressed(k ebiten.Key, repeat bool) bool {
	d := inpututil.KeyPressDuration(k)
	if d == 1 {
		return true
	}
	return repeat && d >= repeatDelay && (d-repeatDelay)%repeatEvery == 0
}

// Launch starts a game without blocking the ebiten loop.
func (w *Window) Launch(id string) {
	w.mu.Lock()
	if w.launching {
		w.mu.Unlock()
		return
	}
	w.launching = true
	w.lastErr = ""
	w.mu.Unlock()

	o := w.arcade.Orchestrator
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), launchTimeout)
		defer cancel()
		err := o.Launch(ctx, id)

		w.mu.Lock()
		defer w.mu.Unlock()
		w.launching = false
		if err != nil && !errors.Is(err, runtime.ErrClosed) {
			w.lastErr = fmt.Sprintf("Could not start %s: %v", id, err)
		}
	}()
}

func (w *Window) setQuit() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.quit = true
}

// Draw paints the backdrop standing in for the camera image, then the menu
// or the latest game frame.
func (w *Window) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	backdrop := NewImageSurface(screen, 0)
	backdrop.Gradient(0, 0, float64(b.Dx()), float64(b.Dy()), core.ColorDarkGray, core.ColorBlack)

	v := w.arcade.Display.Snapshot()

	w.mu.Lock()
	lastErr, launching := w.lastErr, w.launching
	w.mu.Unlock()

	message := ""
	if v.MessageVisible(w.now()) {
		message = v.Message
	}
	if lastErr != "" {
		message = lastErr
	}

	if v.Mode == host.ModeGame {
		core.Replay(v.Frame, NewImageSurface(screen, v.Game.CamOpacity))
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  Score: %s", v.Game.Name, humanize.Comma(int64(v.Score))), 8, 8)
		if message != "" {
			ebitenutil.DebugPrintAt(screen, message, 8, b.Dy()-40)
		}
		ebitenutil.DebugPrintAt(screen, "Arrows: hand  Tab: switch  Space: jump  R: restart  Esc: menu  Q: quit", 8, b.Dy()-20)
		return
	}

	if launching {
		message = "Starting camera..."
	}
	w.drawMenu(screen, v.Entries, message)
}

func (w *Window) drawMenu(screen *ebiten.Image, entries []registry.Entry, message string) {
	b := screen.Bounds()
	x := b.Dx()/2 - 80
	y := b.Dy() / 4
	ebitenutil.DebugPrintAt(screen, "M O T I O N   A R C A D E", x, y)
	y += 32

	cursor := core.Clamp(w.cursor, 0, core.Max(len(entries)-1, 0))
	for i, e := range entries {
		prefix := "   "
		if i == cursor {
			prefix = " > "
			vector.DrawFilledRect(screen, float32(x-6), float32(y-2), 180, 18, menuHighlight, false)
		}
		ebitenutil.DebugPrintAt(screen, prefix+e.Descriptor.Name, x, y)
		y += 20
	}

	if message != "" {
		ebitenutil.DebugPrintAt(screen, message, 16, b.Dy()-48)
	}
	ebitenutil.DebugPrintAt(screen, "Up/Down: select  Enter: play  Q: quit", 16, b.Dy()-24)
}

// Layout fixes the window's logical size to the surface games draw on;
// ebiten scales it to the real window.
func (w *Window) Layout(_, _ int) (int, int) {
	st := w.arcade.Orchestrator.State()
	return st.SurfaceW, st.SurfaceH
}

// Run opens the window and blocks until it is closed.
func Run(w *Window, title string) error {
	cfg := w.arcade.Config
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(cfg.Surface.Width, cfg.Surface.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TickRate)

	err := ebiten.RunGameWithOptions(w, &ebiten.RunGameOptions{})
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
