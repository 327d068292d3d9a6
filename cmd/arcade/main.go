// arcade is a motion-controlled arcade: body keypoints from a pose source
// steer small games rendered in the terminal, a window or over SSH.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade window [game]     - Play in a graphical window
//	arcade serve             - Start SSH server for remote play
//	arcade scores <game>     - Show high scores for a game
//
// Global flags:
//
//	--fps <rate>          - Override tick rate from arcade.yaml
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.arcade/scores.db)
//	--config <dir>        - Directory with arcade.yaml and per-game configs
//	--pose <source>       - Pose source: keyboard, ws://host/path, replay:<file>
//	--log-level <level>   - debug, info, warn, error
//	--difficulty <preset> - easy, normal, hard, fixed
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/motion-arcade/internal/config"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagPose       string
	flagLogLevel   string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Motion Arcade - play games with your body",
	Long: `Motion Arcade runs small games driven by body keypoints.

A pose source (an inference sidecar over websocket, a recording, or the
keyboard standing in for a camera) moves your nose and wrists; games read
them every frame.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  window   - Play in a graphical window
  serve    - Start SSH server for remote play
  scores   - View high scores

Examples:
  arcade list
  arcade play runner
  arcade menu --pose ws://localhost:8765/pose
  arcade window boxing --pose replay:./jab.yaml
  arcade serve --ssh :2222
  arcade scores tennis`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate override (frames per second, 0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Directory with custom config YAML files")
	rootCmd.PersistentFlags().StringVar(&flagPose, "pose", "", "Pose source override: keyboard, ws://..., replay:<file>")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// loadConfig resolves runtime and game settings. Precedence, lowest first:
// defaults, YAML files, .env and environment, command-line flags.
func loadConfig() (config.ArcadeConfig, config.Games, error) {
	if err := config.LoadDotEnv(); err != nil {
		return config.ArcadeConfig{}, config.Games{}, err
	}
	cfg, err := config.LoadArcade(flagConfig)
	if err != nil {
		return cfg, config.Games{}, err
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return cfg, config.Games{}, err
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	if flagPose != "" {
		cfg.Pose.Source = flagPose
	}
	if err := cfg.Validate(); err != nil {
		return cfg, config.Games{}, err
	}

	games, err := config.LoadGames(flagConfig, config.ParsePreset(flagDifficulty))
	return cfg, games, err
}

// newLogger builds the process logger. Terminal modes own the screen, so
// their logs go to ~/.arcade/arcade.log; the returned closer releases it.
func newLogger(toFile bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	opts := log.Options{
		ReportTimestamp: true,
		Prefix:          "arcade",
		Level:           level,
	}
	if !toFile {
		return log.NewWithOptions(os.Stderr, opts), func() {}, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, nil, fmt.Errorf("cannot get home directory: %w", err)
	}
	dir := filepath.Join(home, ".arcade")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create %s: %w", dir, err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "arcade.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	//nolint:errcheck // Log file close on exit
	return log.NewWithOptions(f, opts), func() { f.Close() }, nil
}

func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
