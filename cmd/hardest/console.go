package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-hardest/internal/platform/console"
	"github.com/vovakirdan/tui-hardest/internal/storage"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Play line by line, one tile per command",
	Long: `Play without the full-screen UI. The board is printed after every
command; each command moves the player one tile and then one tick passes.

Commands (followed by Enter):
  w/a/s/d  - Move up/left/down/right
  q        - Quit

After the last level you are asked for a name for the scoreboard; an empty
name is saved as "Anonymous".`,
	Args: cobra.NoArgs,
	Run:  runConsole,
}

func runConsole(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr)

	cfg, err := loadConfig()
	exitOnError(logger, "invalid configuration", err)

	game, _ := newGame(cfg, console.DefaultCols, console.DefaultRows, logger)

	c := &console.Interactive{Game: game, In: os.Stdin, Out: os.Stdout}
	res, err := c.Run()
	exitOnError(logger, "console session failed", err)

	if !res.Completed {
		fmt.Println("Bye!")
		return
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	exitOnError(logger, "cannot open scores database", err)
	defer store.Close()

	best, hadBest, bestErr := store.BestScore()
	if bestErr != nil {
		logger.Warn("could not read best score", "error", bestErr)
	}

	if _, err := store.SaveScore(res.Name, res.Deaths, res.Levels); err != nil {
		logger.Error("could not save score", "error", err)
		return
	}
	rank, err := store.Rank(res.Deaths)
	if err != nil {
		logger.Warn("could not compute rank", "error", err)
		return
	}
	fmt.Printf("Saved %s with %d deaths, rank #%d.\n", res.Name, res.Deaths, rank)
	if bestErr == nil && (!hadBest || res.Deaths < best) {
		fmt.Println("New best run!")
	}
}
