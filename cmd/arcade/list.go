package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/motion-arcade/internal/config"
	"github.com/vovakirdan/motion-arcade/internal/games"
	"github.com/vovakirdan/motion-arcade/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows a list of all games built into the arcade, in menu order.`,
	Run:   runList,
}

// builtinEntries returns the built-in games as registry entries.
func builtinEntries() []registry.Entry {
	reg := registry.New()
	//nolint:errcheck // Built-in table is always well formed
	games.RegisterAll(reg, config.DefaultGames(), 0)
	return reg.List()
}

func runList(_ *cobra.Command, _ []string) {
	entries := builtinEntries()

	if len(entries) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, e := range entries {
		if len(e.ID) > maxIDLen {
			maxIDLen = len(e.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %-8s  %s\n", maxIDLen, "ID", "Camera", "Title")
	fmt.Printf("  %-*s  %-8s  %s\n", maxIDLen, "--", "------", "-----")

	// Print games
	for _, e := range entries {
		camera := fmt.Sprintf("%.0f%%", e.Descriptor.CamOpacity*100)
		fmt.Printf("  %-*s  %-8s  %s %s\n", maxIDLen, e.ID, camera, e.Descriptor.Icon, e.Descriptor.Name)
	}

	fmt.Println()
	fmt.Println("Run 'arcade play <id>' to play a game.")
}
