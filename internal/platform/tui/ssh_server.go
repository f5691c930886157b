package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-hardest/internal/config"
	"github.com/vovakirdan/tui-hardest/internal/games/hardest"
	"github.com/vovakirdan/tui-hardest/internal/levels"
	"github.com/vovakirdan/tui-hardest/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	Address string // host:port, e.g. ":23234"

	// HostKeyPath is the path to the host key file.
	// If empty, a key is generated at ~/.hardest/host_key.
	HostKeyPath string

	DBPath      string
	IdleTimeout time.Duration

	// Game configures every session. Its Levels.Path selects the catalog
	// shared by all sessions; with Levels.Watch set, edits to that file are
	// picked up by sessions started afterwards.
	Game config.HardestConfig

	Logger *log.Logger
}

// DefaultSSHServerConfig returns the configuration used by "hardest serve".
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      storage.DefaultPath(),
		IdleTimeout: 30 * time.Minute,
		Game:        config.DefaultHardestConfig(),
	}
}

// SSHServer serves play sessions over SSH with Wish. All sessions share one
// level catalog and one score database.
type SSHServer struct {
	config  SSHServerConfig
	server  *ssh.Server
	store   *storage.Store
	catalog atomic.Pointer[levels.Catalog]
	watcher *levels.Watcher
	logger  *log.Logger
}

// NewSSHServer loads the catalog, opens the score database and prepares the
// listener. A missing database only disables score saving.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	catalog, err := levels.Resolve(cfg.Game.Levels.Path)
	if err != nil {
		return nil, fmt.Errorf("cannot load levels: %w", err)
	}
	if err := catalog.Validate(); err != nil {
		logger.Warn("level catalog has broken levels", "error", err)
	}

	hostKeyPath, err := resolveHostKey(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	srv := &SSHServer{config: cfg, logger: logger}
	srv.catalog.Store(catalog)

	srv.store, err = storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("scores disabled", "error", err)
		srv.store = nil
	}

	srv.server, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		srv.closeStore()
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	if cfg.Game.Levels.Watch && catalog.Path != "" {
		srv.watcher, err = levels.NewWatcher(catalog.Path)
		if err != nil {
			logger.Warn("not watching level catalog", "path", catalog.Path, "error", err)
			srv.watcher = nil
		}
	}

	return srv, nil
}

func resolveHostKey(path string) (string, error) {
	if path == "" {
		dir := config.UserDir()
		if dir == "" {
			return "", errors.New("cannot get home directory for host key")
		}
		path = filepath.Join(dir, "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("cannot create host key directory: %w", err)
	}
	return path, nil
}

// Catalog returns the catalog new sessions start with.
func (s *SSHServer) Catalog() *levels.Catalog {
	return s.catalog.Load()
}

// ReloadCatalog re-reads the catalog file. Running sessions keep the catalog
// they started with. On failure the current catalog stays in place.
func (s *SSHServer) ReloadCatalog() error {
	path := s.Catalog().Path
	if path == "" {
		return nil
	}
	catalog, err := levels.Open(path)
	if err != nil {
		return err
	}
	s.catalog.Store(catalog)
	return nil
}

func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		return nil, nil
	}

	runtime := s.config.Game.Runtime(pty.Window.Width, pty.Window.Height)
	game, err := hardest.New(s.Catalog(), runtime)
	if err != nil {
		s.logger.Error("cannot start session", "user", sess.User(), "error", err)
		return nil, nil
	}

	opts := Options{
		Config:     s.config.Game,
		Logger:     s.logger.With("user", sess.User()),
		PlayerName: sess.User(),
	}
	if s.store != nil {
		opts.Store = s.store
	}
	return NewModel(game, opts), []tea.ProgramOption{tea.WithAltScreen()}
}

func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		remote := sess.RemoteAddr().String()
		s.logger.Info("session started", "user", sess.User(), "remote", remote)
		next(sess)
		s.logger.Info("session ended", "user", sess.User(), "remote", remote,
			"duration", time.Since(start).Round(time.Second))
	}
}

// Serve accepts connections until ctx is done, then shuts the server down.
func (s *SSHServer) Serve(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "levels", s.Catalog().Count())

	errCh := make(chan error, 1)
	go func() {
		err := s.server.ListenAndServe()
		if errors.Is(err, ssh.ErrServerClosed) {
			err = nil
		}
		errCh <- err
	}()

	if s.watcher != nil {
		go s.watchCatalog(ctx)
	}

	select {
	case err := <-errCh:
		s.Shutdown()
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		return s.Shutdown()
	}
}

func (s *SSHServer) watchCatalog(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if err := s.ReloadCatalog(); err != nil {
				s.logger.Warn("catalog reload failed", "error", err)
				continue
			}
			s.logger.Info("catalog reloaded", "levels", s.Catalog().Count())
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("catalog watch error", "error", err)
		}
	}
}

// Shutdown stops the listener, the catalog watcher and the score database.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.watcher != nil {
		_ = s.watcher.Close()
	}
	s.closeStore()
	return s.server.Shutdown(ctx)
}

func (s *SSHServer) closeStore() {
	if s.store != nil {
		_ = s.store.Close()
	}
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
