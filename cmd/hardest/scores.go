package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-hardest/internal/platform/tui"
	"github.com/vovakirdan/tui-hardest/internal/storage"
)

var (
	flagBrowse bool
	flagClear  bool
	flagAll    bool
	flagPlayer string
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the fewest-deaths board",
	Long: `Display the top 10 completed runs, fewest deaths first.

Examples:
  hardest scores
  hardest scores --browse    # scrollable board with every run
  hardest scores --all
  hardest scores --player ann
  hardest scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Open the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded run")
	scoresCmd.Flags().BoolVar(&flagAll, "all", false, "List every run instead of the top 10")
	scoresCmd.Flags().StringVar(&flagPlayer, "player", "", "List the runs of one player")
}

func runScores(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr)

	cfg, err := loadConfig()
	exitOnError(logger, "invalid configuration", err)

	store, err := storage.Open(cfg.Storage.DBPath)
	exitOnError(logger, "cannot open scores database", err)
	defer store.Close()

	if flagClear {
		exitOnError(logger, "cannot clear scores", store.ClearScores())
		fmt.Println("Scores cleared.")
		return
	}

	if flagBrowse {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		exitOnError(logger, "scoreboard failed", tui.RunScoreboard(store, width, height))
		return
	}

	var scores []storage.ScoreEntry
	switch {
	case flagPlayer != "":
		scores, err = store.PlayerScores(flagPlayer)
		fmt.Printf("Runs of %s - fewest deaths\n", storage.NormalizeName(flagPlayer))
	case flagAll:
		scores, err = store.AllScores()
		fmt.Println("All runs - fewest deaths")
	default:
		scores, err = store.TopScores(storage.DefaultLimit)
		fmt.Println("Top 10 - fewest deaths")
	}
	exitOnError(logger, "cannot retrieve scores", err)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Finish every level in 'hardest play' to get on the board!")
		return
	}

	fmt.Printf("  %-4s  %-20s  %-6s  %-6s  %s\n", "Rank", "Player", "Deaths", "Levels", "Date")
	fmt.Printf("  %-4s  %-20s  %-6s  %-6s  %s\n", "----", "------", "------", "------", "----")
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-20s  %-6d  %-6d  %s\n", i+1, entry.PlayerName, entry.Deaths, entry.Levels, dateStr)
	}

	stats, err := store.GetStats()
	if err == nil {
		fmt.Println()
		fmt.Printf("Runs: %d  Best: %d  Average: %.1f\n", stats.Runs, stats.BestDeaths, stats.AvgDeaths)
	}
}
