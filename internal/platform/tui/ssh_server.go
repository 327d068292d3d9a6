package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/motion-arcade/internal/config"
	"github.com/vovakirdan/motion-arcade/internal/platform/host"
	"github.com/vovakirdan/motion-arcade/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.arcade/host_key.
	HostKeyPath string

	// DBPath is the path to the scores database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Arcade and Games configure every session. Remote players have no
	// camera on this machine, so sessions always use the keyboard source.
	Arcade config.ArcadeConfig
	Games  config.Games

	// Seed fixes game randomness for every session; 0 = time based.
	Seed int64

	// MaxSessions caps concurrent players; 0 = unlimited.
	MaxSessions int

	// Logger receives server and session logs. Defaults to stderr.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.arcade/scores.db",
		IdleTimeout: 30 * time.Minute,
		MaxSessions: 32,
		Arcade:      config.DefaultArcadeConfig(),
		Games:       config.DefaultGames(),
	}
}

// SSHServer wraps a Wish SSH server for the arcade.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger

	mu      sync.Mutex
	arcades map[*host.Arcade]struct{} // Live sessions
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "arcade-ssh",
		})
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage
	}

	srv := &SSHServer{
		config:  cfg,
		store:   store,
		logger:  logger,
		arcades: make(map[*host.Arcade]struct{}),
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".arcade", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	// Create Wish server options
	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	// Create the server
	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates an arcade session and its Bubble Tea program for each
// SSH connection. The session is closed when the connection ends.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	user := sshSession.User()
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", user)
		wish.Fatalln(sshSession, "the arcade needs a terminal, connect with ssh -t")
		return nil, nil
	}

	arcadeCfg := s.config.Arcade
	arcadeCfg.Pose.Source = "keyboard"

	arcade, err := host.NewArcade(host.Options{
		Config: arcadeCfg,
		Games:  s.config.Games,
		Seed:   s.config.Seed,
		Store:  s.store,
		Player: user,
		Logger: s.logger.With("user", user),
	})
	if err != nil {
		s.logger.Error("cannot start arcade session", "user", user, "error", err)
		wish.Fatalln(sshSession, "could not start the arcade")
		return nil, nil
	}
	if !s.track(arcade) {
		//nolint:errcheck // Never launched
		arcade.Close()
		s.logger.Warn("session rejected, arcade full", "user", user, "max", s.config.MaxSessions)
		wish.Fatalln(sshSession, "the arcade is full, try again later")
		return nil, nil
	}

	go func() {
		<-sshSession.Context().Done()
		if s.untrack(arcade) {
			if err := arcade.Close(); err != nil {
				s.logger.Warn("session close failed", "user", user, "error", err)
			}
		}
	}()

	model := NewModel(arcade, pty.Window.Width, pty.Window.Height)
	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// track registers a live session unless the server is full.
func (s *SSHServer) track(a *host.Arcade) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.config.MaxSessions > 0 && len(s.arcades) >= s.config.MaxSessions {
		return false
	}
	s.arcades[a] = struct{}{}
	return true
}

// untrack forgets a session. It reports false when the session was
// already closed by Shutdown.
func (s *SSHServer) untrack(a *host.Arcade) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.arcades[a]; !ok {
		return false
	}
	delete(s.arcades, a)
	return true
}

// Sessions returns the number of live arcade sessions.
func (s *SSHServer) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.arcades)
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server. Live sessions are closed before
// the score store so their final scores are written.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)

	s.mu.Lock()
	live := s.arcades
	s.arcades = make(map[*host.Arcade]struct{})
	s.mu.Unlock()
	for a := range live {
		if closeErr := a.Close(); closeErr != nil {
			s.logger.Warn("session close failed", "error", closeErr)
		}
	}

	if s.store != nil {
		s.store.Close()
	}
	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
