package host

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/motion-arcade/internal/config"
	"github.com/vovakirdan/motion-arcade/internal/games"
	"github.com/vovakirdan/motion-arcade/internal/pose"
	"github.com/vovakirdan/motion-arcade/internal/registry"
	"github.com/vovakirdan/motion-arcade/internal/runtime"
	"github.com/vovakirdan/motion-arcade/internal/storage"
)

// Options describes one arcade session.
type Options struct {
	Config config.ArcadeConfig
	Games  config.Games
	Seed   int64          // 0 = time based
	Store  *storage.Store // Optional score storage
	Player string
	Logger *log.Logger
	Clock  runtime.FrameClock // Optional; defaults to a ticker at Config.TickRate
}

// Arcade bundles the pieces of one player session: the orchestrator,
// the display it presents to and, for keyboard play, the synthetic body
// the keys steer.
type Arcade struct {
	Orchestrator *runtime.Orchestrator
	Display      *Display
	Keyboard     *pose.KeyboardBackend // nil when a camera drives the pose
	Store        *storage.Store        // nil without storage
	Session      *storage.Session      // nil without storage
	Config       config.ArcadeConfig
}

// NewArcade opens the pose source, starts a score session and registers
// every built-in game.
func NewArcade(opts Options) (*Arcade, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	backend, err := pose.Open(opts.Config.Pose.Source)
	if err != nil {
		return nil, err
	}
	kb, _ := backend.(*pose.KeyboardBackend)

	a := &Arcade{
		Display:  NewDisplay(),
		Keyboard: kb,
		Store:    opts.Store,
		Config:   opts.Config,
	}

	runtimeOpts := []runtime.Option{
		runtime.WithConfig(opts.Config),
		runtime.WithLogger(logger),
	}
	if opts.Clock != nil {
		runtimeOpts = append(runtimeOpts, runtime.WithClock(opts.Clock))
	}
	if opts.Store != nil {
		sess, err := opts.Store.StartSession(opts.Player, opts.Config.Pose.Source)
		if err != nil {
			logger.Warn("scores will not be saved", "err", err)
		} else {
			a.Session = sess
			runtimeOpts = append(runtimeOpts, runtime.WithScoreSink(sess))
			logger.Debug("session started", "session", sess.ID, "player", opts.Player)
		}
	}

	a.Orchestrator = runtime.New(registry.New(), backend, a.Display, runtimeOpts...)
	if err := games.RegisterAll(a.Orchestrator, opts.Games, seed); err != nil {
		a.Orchestrator.Close()
		return nil, err
	}
	return a, nil
}

// Close stops any game and releases the pose source.
func (a *Arcade) Close() error {
	return a.Orchestrator.Close()
}
