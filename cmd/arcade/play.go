package main

import (
	"context"
	"fmt"
	"os"
	"os/user"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/motion-arcade/internal/config"
	"github.com/vovakirdan/motion-arcade/internal/games"
	"github.com/vovakirdan/motion-arcade/internal/platform/host"
	"github.com/vovakirdan/motion-arcade/internal/platform/tui"
	"github.com/vovakirdan/motion-arcade/internal/registry"
	"github.com/vovakirdan/motion-arcade/internal/runtime"
	"github.com/vovakirdan/motion-arcade/internal/storage"
)

// launchTimeout bounds the first launch, including pose boot retries.
const launchTimeout = 30 * time.Second

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game in the terminal.

With the keyboard pose source the keys stand in for your body:
  W/A/S/D, Arrows - Move the active wrist
  Tab             - Switch the active wrist
  Space           - Jump (raise your head)
  Enter/R         - Restart
  B/Esc           - Back to menu
  Q/Ctrl+C        - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  arcade play runner
  arcade play tennis --difficulty easy
  arcade play boxing --pose ws://localhost:8765/pose
  arcade play runner --config ./my-configs`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := args[0]
	if !isBuiltin(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(true)
	if err != nil {
		exitf("%v", err)
	}
	defer closeLog()

	arcade, closeArcade, err := openArcade(logger, nil)
	if err != nil {
		exitf("%v", err)
	}
	defer closeArcade()

	ctx, cancel := context.WithTimeout(context.Background(), launchTimeout)
	err = arcade.Orchestrator.Launch(ctx, gameID)
	cancel()
	if err != nil {
		// The menu shows the failure; the player can retry from there.
		logger.Error("launch failed", "game", gameID, "err", err)
	}

	width, height := terminalSize()
	if err := tui.Run(arcade, width, height); err != nil {
		exitf("running arcade: %v", err)
	}
}

// openArcade loads configuration, opens score storage and builds a session.
// A missing database only disables score saving.
func openArcade(logger *log.Logger, clock runtime.FrameClock) (*host.Arcade, func(), error) {
	cfg, gameCfg, err := loadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "err", err)
		store = nil
	}

	arcade, err := host.NewArcade(host.Options{
		Config: cfg,
		Games:  gameCfg,
		Seed:   flagSeed,
		Store:  store,
		Player: playerName(),
		Logger: logger,
		Clock:  clock,
	})
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, nil, fmt.Errorf("starting arcade: %w", err)
	}

	closeFn := func() {
		if err := arcade.Close(); err != nil {
			logger.Warn("arcade close failed", "err", err)
		}
		if store != nil {
			store.Close()
		}
	}
	return arcade, closeFn, nil
}

func isBuiltin(id string) bool {
	reg := registry.New()
	if err := games.RegisterAll(reg, config.DefaultGames(), 0); err != nil {
		return false
	}
	return reg.Exists(id)
}

func playerName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "player"
}

func terminalSize() (int, int) {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return width, height
}
