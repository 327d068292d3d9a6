package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/motion-arcade/internal/platform/tui"
	"github.com/vovakirdan/motion-arcade/internal/registry"
	"github.com/vovakirdan/motion-arcade/internal/storage"
)

var flagScoresTUI bool

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores for a game",
	Long: `Display the top 10 high scores for the specified game.

With --tui an interactive scoreboard for every game is shown instead.

Examples:
  arcade scores runner
  arcade scores boxing
  arcade scores --tui`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Open the interactive scoreboard")
}

func runScores(_ *cobra.Command, args []string) {
	entries := builtinEntries()

	if flagScoresTUI {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			exitf("opening scores database: %v", err)
		}
		defer store.Close()

		width, height := terminalSize()
		if _, err := tui.RunScoreboard(store, entries, width, height); err != nil {
			exitf("%v", err)
		}
		return
	}

	if len(args) == 0 {
		exitf("a game id is required without --tui")
	}
	gameID := args[0]

	entry, ok := findEntry(entries, gameID)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitf("opening scores database: %v", err)
	}
	defer store.Close()

	// Get top scores
	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		exitf("retrieving scores: %v", err)
	}

	// Display scores
	fmt.Printf("High Scores - %s %s\n", entry.Descriptor.Icon, entry.Descriptor.Name)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to set the first high score!\n", gameID)
		return
	}

	// Print header
	fmt.Printf("  %-5s  %-10s  %-12s  %s\n", "Rank", "Score", "Player", "When")
	fmt.Printf("  %-5s  %-10s  %-12s  %s\n", "----", "-----", "------", "----")

	// Print scores
	for i, e := range scores {
		player := e.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-5s  %-10s  %-12s  %s\n",
			humanize.Ordinal(i+1),
			humanize.Comma(int64(e.Score)),
			player,
			humanize.Time(e.CreatedAt),
		)
	}

	// Show stats
	fmt.Println()
	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Printf("Best: %s over %s games\n",
			humanize.Comma(int64(stats.HighScore)),
			humanize.Comma(int64(stats.GamesCount)),
		)
	}
}

func findEntry(entries []registry.Entry, id string) (registry.Entry, bool) {
	for _, e := range entries {
		if e.ID == id {
			return e, true
		}
	}
	return registry.Entry{}, false
}
