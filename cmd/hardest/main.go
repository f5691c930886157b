// hardest is a terminal take on "The World's Hardest Game": steer a square
// through a maze of bouncing circles, pick up every coin and reach the goal.
//
// Usage:
//
//	hardest play             - Play in the terminal
//	hardest console          - Play one tile per command, line by line
//	hardest simulate         - Run a scripted headless session
//	hardest levels           - List and check the level catalog
//	hardest scores           - Show the fewest-deaths board
//	hardest serve            - Start SSH server for remote play
//	hardest config           - Print the configuration
//
// Global flags:
//
//	--config <path>  - Configuration file (default: search path)
//	--levels <path>  - Level catalog (default: built-in levels)
//	--fps <rate>     - Set tick rate (default: from config, 60)
//	--db <path>      - Set database path (default: ~/.hardest/scores.db)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-hardest/internal/config"
	"github.com/vovakirdan/tui-hardest/internal/storage"
)

var (
	// Global flags
	flagConfig  string
	flagLevels  string
	flagFPS     int
	flagDBPath  string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hardest",
	Short: "The World's Hardest Game in your terminal",
	Long: `hardest is a terminal version of "The World's Hardest Game".

Steer the square past the bouncing circles, collect every coin, grab the key
to open doors and reach the goal. Fewest deaths wins.

Available commands:
  play      - Play in the terminal
  console   - Play line by line, one tile per command
  simulate  - Run a scripted headless session
  levels    - List and check the level catalog
  scores    - View the fewest-deaths board
  serve     - Start SSH server for remote play
  config    - Print the configuration

Examples:
  hardest play
  hardest play --levels ./my-levels.yaml --watch
  hardest simulate --ticks 200
  hardest serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to configuration YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Path to level catalog (YAML or JSON)")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (default ~/.hardest/scores.db)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug messages")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(consoleCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig loads the configuration and applies the global flag overrides.
func loadConfig() (config.HardestConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	if flagFPS > 0 {
		cfg.Gameplay.TickRate = flagFPS
	}
	if flagLevels != "" {
		cfg.Levels.Path = flagLevels
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if cfg.Storage.DBPath == "" {
		cfg.Storage.DBPath = storage.DefaultPath()
	}

	return cfg, cfg.Validate()
}

// newLogger creates the CLI logger writing to w.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "hardest",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// exitOnError logs err and exits when it is not nil.
func exitOnError(logger *log.Logger, msg string, err error) {
	if err != nil {
		logger.Error(msg, "error", err)
		os.Exit(1)
	}
}
