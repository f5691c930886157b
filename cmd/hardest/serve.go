package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-hardest/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServeWatch  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session over the same level catalog.
Scores are stored per-server (all users share the same board); the SSH user
name is offered as the player name.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.hardest/host_key

Examples:
  hardest serve                           # Listen on :23234 with auto-generated key
  hardest serve --ssh :2222               # Listen on port 2222
  hardest serve --host-key ./my_host_key  # Use specific host key
  hardest serve --levels ./levels.yaml    # Serve a custom catalog
  hardest serve --levels ./levels.yaml --watch  # Reload it on save

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().BoolVar(&flagServeWatch, "watch", false, "Reload the level catalog for new sessions when it changes")
}

func runServe(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr)

	game, err := loadConfig()
	exitOnError(logger, "invalid configuration", err)
	if flagServeWatch {
		game.Levels.Watch = true
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = game.Storage.DBPath
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.Game = game
	cfg.Logger = logger.WithPrefix("hardest-ssh")

	server, err := tui.NewSSHServer(cfg)
	exitOnError(logger, "cannot create server", err)

	fmt.Printf("Starting SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	exitOnError(logger, "server error", server.Serve(ctx))
}
