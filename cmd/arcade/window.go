package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/motion-arcade/internal/platform/gfx"
	"github.com/vovakirdan/motion-arcade/internal/runtime"
)

var windowCmd = &cobra.Command{
	Use:   "window [game]",
	Short: "Play in a graphical window",
	Long: `Open a window and run the arcade there. The window's frame loop
drives the games, so they advance at the configured tick rate.

Without a game argument the window opens on the menu.

Controls:
  Up/Down, Enter - Pick a game
  Arrows/WASD    - Move the active wrist (keyboard pose source)
  Tab            - Switch the active wrist
  Space          - Jump
  Esc            - Back to menu

Examples:
  arcade window
  arcade window boxing --pose ws://localhost:8765/pose`,
	Args: cobra.MaximumNArgs(1),
	Run:  runWindow,
}

func runWindow(_ *cobra.Command, args []string) {
	if len(args) == 1 && !isBuiltin(args[0]) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", args[0])
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(false)
	if err != nil {
		exitf("%v", err)
	}
	defer closeLog()

	clock := runtime.NewChanClock()
	arcade, closeArcade, err := openArcade(logger, clock)
	if err != nil {
		exitf("%v", err)
	}
	defer closeArcade()

	w := gfx.NewWindow(arcade, clock)
	if len(args) == 1 {
		w.Launch(args[0])
	}
	if err := gfx.Run(w, "Motion Arcade"); err != nil {
		exitf("running window: %v", err)
	}
}
