package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/motion-arcade/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or w/s to navigate, Enter to select a game.
After a game ends, you return to the menu to play again.

Controls:
  Up/Down/W/S  - Navigate menu
  Enter/Space  - Select game
  Tab          - Scoreboard
  Q            - Quit

Examples:
  arcade menu
  arcade menu --fps 30
  arcade menu --pose replay:./demo.yaml`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
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

	width, height := terminalSize()
	if err := tui.Run(arcade, width, height); err != nil {
		exitf("running arcade: %v", err)
	}
}
