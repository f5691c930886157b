package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-hardest/internal/config"
	"github.com/vovakirdan/tui-hardest/internal/games/hardest"
	"github.com/vovakirdan/tui-hardest/internal/levels"
	"github.com/vovakirdan/tui-hardest/internal/platform/tui"
	"github.com/vovakirdan/tui-hardest/internal/storage"
)

var flagWatch bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a session at the first level of the catalog.

Controls:
  W/A/S/D, arrows  - Move
  P/Space          - Pause
  R                - Restart (after the last level)
  Ctrl+S           - Save a screenshot to ~/.hardest/screenshots
  Q/Ctrl+C         - Quit

Terminals report key presses but not releases, so each press keeps moving
for gameplay.hold_ticks ticks; holding a key repeats it.

With --watch the catalog given by --levels is reloaded whenever it changes on
disk; the current level restarts from the new definition and deaths are kept.
Log output goes to ~/.hardest/hardest.log.

Examples:
  hardest play
  hardest play --fps 30
  hardest play --levels ./levels.yaml --watch`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the level catalog when it changes")
}

func runPlay(_ *cobra.Command, _ []string) {
	stderrLog := newLogger(os.Stderr)

	cfg, err := loadConfig()
	exitOnError(stderrLog, "invalid configuration", err)

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	game, catalog := newGame(cfg, width, height, stderrLog)

	logFile, logger := openLogFile()
	if logFile != nil {
		defer logFile.Close()
	}

	opts := tui.Options{
		Config:      cfg,
		CatalogPath: catalog.Path,
		Logger:      logger,
		PlayerName:  os.Getenv("USER"),
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		stderrLog.Warn("could not open scores database, scores will not be saved", "error", err)
	} else {
		defer store.Close()
		opts.Store = store
	}

	if flagWatch || cfg.Levels.Watch {
		if catalog.Path == "" {
			stderrLog.Warn("--watch needs a level catalog file, ignoring")
		} else {
			watcher, watchErr := levels.NewWatcher(catalog.Path)
			if watchErr != nil {
				stderrLog.Warn("could not watch level catalog", "path", catalog.Path, "error", watchErr)
			} else {
				defer watcher.Close()
				opts.Watcher = watcher
				logger.Info("watching level catalog", "path", catalog.Path)
			}
		}
	}

	exitOnError(stderrLog, "error running game", tui.Run(game, opts))
}

// newGame opens the configured catalog and starts a session on it.
// Broken levels are reported but do not prevent play.
func newGame(cfg config.HardestConfig, screenW, screenH int, logger *log.Logger) (*hardest.Game, *levels.Catalog) {
	catalog, err := levels.Resolve(cfg.Levels.Path)
	exitOnError(logger, "cannot load levels", err)

	if err := catalog.Validate(); err != nil {
		logger.Warn("level catalog has broken levels", "error", err)
	}

	game, err := hardest.New(catalog, cfg.Runtime(screenW, screenH))
	exitOnError(logger, "cannot start game", err)
	return game, catalog
}

// openLogFile opens ~/.hardest/hardest.log for the full-screen UI, falling
// back to discarding log output.
func openLogFile() (*os.File, *log.Logger) {
	dir := config.UserDir()
	if dir == "" {
		return nil, newLogger(io.Discard)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, newLogger(io.Discard)
	}
	f, err := os.OpenFile(filepath.Join(dir, "hardest.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, newLogger(io.Discard)
	}
	return f, newLogger(f)
}
