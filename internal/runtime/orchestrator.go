// Package runtime owns the arcade session: the game registry, the lifecycle
// state machine and the frame loop that pairs one pose estimate with one
// simulate-and-draw pass per tick.
package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/sethvargo/go-retry"

	"github.com/vovakirdan/motion-arcade/internal/config"
	"github.com/vovakirdan/motion-arcade/internal/core"
	"github.com/vovakirdan/motion-arcade/internal/pose"
	"github.com/vovakirdan/motion-arcade/internal/registry"
)

// ErrClosed is returned by operations on a closed orchestrator.
var ErrClosed = errors.New("runtime: orchestrator closed")

// State is a snapshot of the session lifecycle.
type State struct {
	ActiveGameID string // Empty when no game is active
	LoopRunning  bool
	SurfaceW     int
	SurfaceH     int
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// WithClock sets the frame clock. The default ticks at the configured rate.
func WithClock(c FrameClock) Option {
	return func(o *Orchestrator) { o.clock = c }
}

// WithConfig sets runtime settings.
func WithConfig(cfg config.ArcadeConfig) Option {
	return func(o *Orchestrator) { o.cfg = cfg }
}

// WithScoreSink receives final scores on game over.
func WithScoreSink(s ScoreSink) Option {
	return func(o *Orchestrator) { o.scores = s }
}

// Orchestrator is one arcade session. It is the only holder of mutable
// session state; create one per player (per SSH session, per window) and
// Close it when the session ends.
type Orchestrator struct {
	reg     *registry.Registry
	backend pose.Backend
	display Display
	clock   FrameClock
	ticker  *TickerClock // Default clock, stopped by Close
	logger  *log.Logger
	cfg     config.ArcadeConfig
	scores  ScoreSink
	input   *PoseInput

	base     context.Context // Parent of every loop context, cancelled by Close
	shutdown context.CancelFunc

	lifecycle sync.Mutex // Serializes Launch, Stop, Menu, GameOver and Close
	bootMu    sync.Mutex

	mu        sync.Mutex
	state     State
	module    registry.Module
	gen       uint64 // Bumped on every start and stop; stale ticks are dropped
	cancel    context.CancelFunc
	done      chan struct{}
	lastFrame time.Time
	score     float64
	rec       *core.Recorder
	closed    bool

	afterTick func(tickReport) // Test hook, called outside the lock
}

// tickReport summarizes one finished tick.
type tickReport struct {
	gen      uint64
	gameID   string
	score    float64
	err      error
	finished bool
	dropped  bool
}

// New creates an idle orchestrator. reg may already hold games.
func New(reg *registry.Registry, backend pose.Backend, display Display, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		reg:     reg,
		backend: backend,
		display: display,
		cfg:     config.DefaultArcadeConfig(),
		rec:     core.NewRecorder(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	if o.clock == nil {
		o.ticker = NewTickerClock(o.cfg.TickRate)
		o.clock = o.ticker
	}
	o.input = NewPoseInput(backend, o.cfg.Pose.Timeout, o.logger)
	o.state.SurfaceW = o.cfg.Surface.Width
	o.state.SurfaceH = o.cfg.Surface.Height
	o.base, o.shutdown = context.WithCancel(context.Background())
	return o
}

// Registry returns the game registry.
func (o *Orchestrator) Registry() *registry.Registry {
	return o.reg
}

// State returns a snapshot of the lifecycle state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Resize changes the logical surface size passed to games.
func (o *Orchestrator) Resize(w, h int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.state.SurfaceW = core.Max(w, 1)
	o.state.SurfaceH = core.Max(h, 1)
}

// Register adds or replaces a game. Malformed registrations are logged and
// ignored. The menu is redrawn when no game is running.
func (o *Orchestrator) Register(id string, desc registry.Descriptor, f registry.Factory) (bool, error) {
	replaced, err := o.reg.Register(id, desc, f)
	if err != nil {
		o.logger.Warn("registration ignored", "game", id, "err", err)
		return false, err
	}
	if replaced {
		o.logger.Info("game replaced", "game", id)
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.state.LoopRunning && !o.closed {
		o.display.ShowMenu(o.reg.List())
	}
	return replaced, nil
}

// Boot acquires the pose backend, retrying with capped exponential backoff
// up to the configured number of attempts. It returns immediately when the
// backend is already up. Failure is reported as a *BootFailure; the next
// Boot starts a fresh retry cycle.
func (o *Orchestrator) Boot(ctx context.Context) error {
	o.bootMu.Lock()
	defer o.bootMu.Unlock()

	if o.backend.Ready() {
		return nil
	}

	bc := o.cfg.Boot
	attempts := 0
	err := retry.Do(ctx, o.bootBackoff(), func(ctx context.Context) error {
		attempts++
		if err := o.backend.Boot(ctx); err != nil {
			o.logger.Warn("pose backend boot failed", "attempt", attempts, "max", bc.MaxAttempts, "err", err)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		o.logger.Error("pose backend unavailable", "attempts", attempts, "err", err)
		return &BootFailure{Attempts: attempts, Err: err}
	}
	o.logger.Info("pose backend ready", "attempts", attempts)
	return nil
}

func (o *Orchestrator) bootBackoff() retry.Backoff {
	bc := o.cfg.Boot
	base := bc.Backoff
	if base <= 0 {
		base = time.Millisecond
	}
	maxBackoff := bc.MaxBackoff
	if maxBackoff < base {
		maxBackoff = base
	}
	retries := uint64(0)
	if bc.MaxAttempts > 1 {
		retries = uint64(bc.MaxAttempts - 1)
	}
	b := retry.NewExponential(base)
	b = retry.WithCappedDuration(maxBackoff, b)
	return retry.WithMaxRetries(retries, b)
}

// Launch starts the game id. Unknown ids are logged and rejected with
// ErrUnknownGame without touching the running game. The pose backend is
// booted first if needed. Launching the game that is already running
// restarts it on the same loop; launching another game tears the current
// one down before the new module is created.
func (o *Orchestrator) Launch(ctx context.Context, id string) error {
	o.lifecycle.Lock()
	defer o.lifecycle.Unlock()

	if o.isClosed() {
		return ErrClosed
	}

	entry, ok := o.reg.Get(id)
	if !ok {
		o.logger.Warn("launch of unknown game", "game", id)
		return fmt.Errorf("%w: %q", ErrUnknownGame, id)
	}

	// Close cancels o.base; the boot must give up with it.
	bootCtx, stopBoot := context.WithCancel(ctx)
	defer stopBoot()
	unhook := context.AfterFunc(o.base, stopBoot)
	defer unhook()

	if err := o.Boot(bootCtx); err != nil {
		o.mu.Lock()
		defer o.mu.Unlock()
		if o.closed {
			return ErrClosed
		}
		o.display.Message("Camera unavailable. Pick a game to try again.")
		return err
	}

	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return ErrClosed
	}
	if o.state.LoopRunning && o.state.ActiveGameID == id {
		err := o.restartLocked(entry)
		o.mu.Unlock()
		return err
	}
	done := o.stopLocked()
	o.mu.Unlock()
	wait(done)

	o.mu.Lock()
	defer o.mu.Unlock()

	module := entry.Factory()
	if err := safeInit(module); err != nil {
		lf := &LoopFailure{Stage: StageUpdate, GameID: id, Err: err}
		o.logger.Error("game init failed", "game", id, "err", err)
		o.display.Message("Game crashed. Back to menu.")
		o.display.ShowMenu(o.reg.List())
		return lf
	}

	loopCtx, cancel := context.WithCancel(o.base)
	o.gen++
	o.module = module
	o.cancel = cancel
	o.done = make(chan struct{})
	o.lastFrame = time.Time{}
	o.score = 0
	o.state.ActiveGameID = id
	o.state.LoopRunning = true

	o.display.ShowGame(id, entry.Descriptor)
	o.display.SetScore(0)
	o.logger.Info("game started", "game", id)

	go o.loop(loopCtx, o.gen, o.done)
	return nil
}

// restartLocked re-initializes the running module in place. Caller holds o.mu.
func (o *Orchestrator) restartLocked(entry registry.Entry) error {
	if err := safeInit(o.module); err != nil {
		o.failLocked(&LoopFailure{Stage: StageUpdate, GameID: entry.ID, Err: err})
		return err
	}
	o.lastFrame = time.Time{}
	o.score = 0
	o.display.ShowGame(entry.ID, entry.Descriptor)
	o.display.SetScore(0)
	o.logger.Info("game restarted", "game", entry.ID)
	return nil
}

// Stop cancels the frame loop and clears the active game. It returns once
// the loop goroutine has exited. Calling it while idle does nothing.
func (o *Orchestrator) Stop() {
	o.lifecycle.Lock()
	defer o.lifecycle.Unlock()

	o.mu.Lock()
	done := o.stopLocked()
	o.mu.Unlock()
	wait(done)
}

// Menu stops the current game and shows the menu.
func (o *Orchestrator) Menu() {
	o.lifecycle.Lock()
	defer o.lifecycle.Unlock()

	o.mu.Lock()
	done := o.stopLocked()
	if !o.closed {
		o.display.ShowMenu(o.reg.List())
	}
	o.mu.Unlock()
	wait(done)
}

// GameOver ends the current game with a final score: the loop stops, the
// score is announced and recorded, and the menu is shown.
func (o *Orchestrator) GameOver(score float64) {
	o.lifecycle.Lock()
	defer o.lifecycle.Unlock()

	o.mu.Lock()
	id, done := o.gameOverLocked(score)
	o.mu.Unlock()
	wait(done)
	o.recordScore(id, score)
}

// Close stops any game, releases the pose backend and makes every later
// Launch fail with ErrClosed.
func (o *Orchestrator) Close() error {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return nil
	}
	o.closed = true
	o.mu.Unlock()

	// Cancelled before taking lifecycle so a Launch stuck in boot backoff
	// releases it.
	o.shutdown()

	o.lifecycle.Lock()
	defer o.lifecycle.Unlock()

	o.mu.Lock()
	done := o.stopLocked()
	o.mu.Unlock()
	wait(done)
	if o.ticker != nil {
		o.ticker.Stop()
	}
	return o.backend.Close()
}

func (o *Orchestrator) isClosed() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.closed
}

// stopLocked cancels the loop and clears the active game. It returns the
// exiting loop's done channel (nil when idle) for the caller to wait on
// after releasing o.mu. Caller holds o.mu.
func (o *Orchestrator) stopLocked() chan struct{} {
	done := o.done
	if o.cancel != nil {
		o.cancel()
	}
	if o.state.LoopRunning {
		o.logger.Info("game stopped", "game", o.state.ActiveGameID)
	}
	o.gen++
	o.cancel = nil
	o.done = nil
	o.module = nil
	o.state.ActiveGameID = ""
	o.state.LoopRunning = false
	return done
}

// gameOverLocked stops the game, announces the score and shows the menu.
// Caller holds o.mu.
func (o *Orchestrator) gameOverLocked(score float64) (string, chan struct{}) {
	id := o.state.ActiveGameID
	done := o.stopLocked()
	o.logger.Info("game over", "game", id, "score", score)
	o.display.Message(fmt.Sprintf("Game over! Score: %s", humanize.Comma(int64(math.Floor(score)))))
	if !o.closed {
		o.display.ShowMenu(o.reg.List())
	}
	return id, done
}

// failLocked turns a loop failure into a return to the menu. Caller holds o.mu.
func (o *Orchestrator) failLocked(err *LoopFailure) {
	o.logger.Error("frame loop failed", "game", err.GameID, "stage", err.Stage, "err", err.Err)
	o.stopLocked()
	o.display.Message("Something went wrong. Back to menu.")
	if !o.closed {
		o.display.ShowMenu(o.reg.List())
	}
}

func (o *Orchestrator) recordScore(id string, score float64) {
	if o.scores == nil || id == "" {
		return
	}
	if err := o.scores.RecordScore(id, score); err != nil {
		o.logger.Warn("failed to record score", "game", id, "err", err)
	}
}

func wait(done chan struct{}) {
	if done != nil {
		<-done
	}
}

// safeInit runs Init, converting a panic into an error.
func safeInit(m registry.Module) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError{value: r}
		}
	}()
	m.Init()
	return nil
}
