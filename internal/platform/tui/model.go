package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-hardest/internal/config"
	"github.com/vovakirdan/tui-hardest/internal/core"
	"github.com/vovakirdan/tui-hardest/internal/games/hardest"
	"github.com/vovakirdan/tui-hardest/internal/levels"
	"github.com/vovakirdan/tui-hardest/internal/storage"
)

// ScoreStore records completed runs.
type ScoreStore interface {
	SaveScore(playerName string, deaths, levels int) (int64, error)
	Rank(deaths int) (int, error)
}

// Options configures a Model.
type Options struct {
	Config config.HardestConfig

	// CatalogPath is reopened whenever Watcher reports a change.
	CatalogPath string
	Watcher     *levels.Watcher

	Store      ScoreStore // Nil disables score saving
	Logger     *log.Logger
	PlayerName string // Prefilled in the name prompt
}

// statusTTL is how long a status line stays on screen.
const statusTTL = 3 * time.Second

// Model is the Bubble Tea model for a play session.
type Model struct {
	game    *hardest.Game
	screen  *core.Screen
	opts    Options
	logger  *log.Logger
	keys    *KeyMapper
	hold    *HoldTracker
	pending core.InputFrame // One-shot actions for the next tick

	nameInput  textinput.Model
	naming     bool
	scoreSaved bool // Whether the current completion has been handled
	rank       int

	status      string
	statusUntil time.Time

	quitting bool
}

// catalogChangedMsg reports a write to the watched catalog.
type catalogChangedMsg struct{ path string }

// watchErrMsg reports a watcher failure.
type watchErrMsg struct{ err error }

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game *hardest.Game, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	ti := textinput.New()
	ti.Placeholder = storage.AnonymousName
	ti.CharLimit = storage.MaxNameLength
	ti.Width = storage.MaxNameLength
	ti.Prompt = "Name: "
	ti.SetValue(opts.PlayerName)

	rt := game.Runtime()
	game.SetEventHandler(func(e hardest.Event) {
		logger.Debug("game event", "event", e.String())
	})

	return Model{
		game:      game,
		screen:    core.NewScreen(rt.ScreenW, rt.ScreenH),
		opts:      opts,
		logger:    logger,
		keys:      NewKeyMapper(),
		hold:      NewHoldTracker(opts.Config.Gameplay.HoldTicks),
		pending:   core.NewInputFrame(),
		nameInput: ti,
	}
}

// Init starts the tick loop and, when configured, the catalog watch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.opts.Config.Gameplay.TickRate), m.watchCmd())
}

// watchCmd waits for the next catalog change, or returns nil without a watcher.
func (m Model) watchCmd() tea.Cmd {
	if m.opts.Watcher == nil {
		return nil
	}
	return waitForCatalog(m.opts.Watcher)
}

// waitForCatalog blocks until the watcher reports a change or an error.
func waitForCatalog(w *levels.Watcher) tea.Cmd {
	return func() tea.Msg {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return nil
			}
			return catalogChangedMsg{path: path}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return watchErrMsg{err: err}
		}
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.naming {
			return m.handleNameKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case catalogChangedMsg:
		m.reloadCatalog()
		return m, m.watchCmd()

	case watchErrMsg:
		m.logger.Warn("level watch failed", "error", msg.err)
		return m, m.watchCmd()
	}

	return m, nil
}

// handleKey processes keyboard input during play.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch {
	case action.IsMovement():
		if !m.game.Paused() {
			m.hold.Press(action)
		}
	case action == core.ActionPause:
		m.pending.Set(core.ActionPause)
		m.hold.Release()
	case action == core.ActionRestart:
		if m.game.GameOver() {
			m.pending.Set(core.ActionRestart)
		} else if m.game.LoadErr() != nil {
			m.restart()
		}
	}

	return m, nil
}

// handleNameKey feeds the name prompt shown after the last level.
func (m Model) handleNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "enter":
		m.saveScore(m.nameInput.Value())
		return m, nil
	case "esc":
		m.naming = false
		m.nameInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

// handleResize only resizes the screen buffer. The simulation works in
// window pixels and is unaffected.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	frame := m.pending.Clone()
	m.pending.Clear()
	if !m.game.Paused() {
		m.hold.Apply(&frame)
	}

	wasOver := m.game.GameOver()
	m.game.Step(frame)

	if wasOver && !m.game.GameOver() {
		m.scoreSaved = false
		m.rank = 0
	}
	if m.game.GameOver() && !m.scoreSaved {
		m.scoreSaved = true
		if m.opts.Store != nil && m.game.TotalLevels() > 0 {
			m.naming = true
			m.nameInput.Focus()
		}
	}

	if !m.statusUntil.IsZero() && now.After(m.statusUntil) {
		m.status = ""
		m.statusUntil = time.Time{}
	}

	return m, tickCmd(m.opts.Config.Gameplay.TickRate)
}

// restart begins a new session after a failed level load.
func (m *Model) restart() {
	if err := m.game.Restart(); err != nil {
		m.setStatus("restart failed: " + err.Error())
		m.logger.Error("restart failed", "error", err)
	}
	m.hold.Release()
}

// reloadCatalog reopens the watched catalog and swaps it into the game.
func (m *Model) reloadCatalog() {
	cat, err := levels.Open(m.opts.CatalogPath)
	if err == nil {
		err = m.game.ReloadCatalog(cat)
	}
	if err != nil {
		m.logger.Warn("level reload failed", "path", m.opts.CatalogPath, "error", err)
		m.setStatus("reload failed: " + err.Error())
		return
	}
	m.logger.Info("levels reloaded", "path", m.opts.CatalogPath, "levels", cat.Count())
	m.setStatus(fmt.Sprintf("levels reloaded (%d)", cat.Count()))
}

// saveScore records the completed run under name.
func (m *Model) saveScore(name string) {
	m.naming = false
	m.nameInput.Blur()

	deaths, total := m.game.Deaths(), m.game.TotalLevels()
	if _, err := m.opts.Store.SaveScore(name, deaths, total); err != nil {
		m.logger.Error("could not save score", "error", err)
		m.setStatus("could not save score")
		return
	}
	if rank, err := m.opts.Store.Rank(deaths); err == nil {
		m.rank = rank
	}
	m.logger.Info("score saved", "name", storage.NormalizeName(name), "deaths", deaths, "rank", m.rank)
	m.setStatus(fmt.Sprintf("saved %s: %d deaths, rank #%d", storage.NormalizeName(name), deaths, m.rank))
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusUntil = time.Now().Add(statusTTL)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(config.UserDir(), "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", hardest.ID, timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.setStatus("screenshot saved to " + path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.status != "" && m.screen.Height() > 0 {
		m.screen.DrawTextColored(0, m.screen.Height()-1, m.status, core.ColorStatus)
	}

	if m.naming {
		return m.namePrompt()
	}
	return RenderScreen(m.screen)
}

// namePrompt renders the name entry dialog over an empty screen.
func (m Model) namePrompt() string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(1, 2)
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	hint := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	body := lipgloss.JoinVertical(lipgloss.Left,
		title.Render("ALL LEVELS COMPLETE!"),
		fmt.Sprintf("Deaths: %d", m.game.Deaths()),
		"",
		m.nameInput.View(),
		"",
		hint.Render("enter save • esc skip"),
	)
	return lipgloss.Place(m.screen.Width(), m.screen.Height(), lipgloss.Center, lipgloss.Center, box.Render(body))
}

// Naming reports whether the name prompt is open.
func (m Model) Naming() bool {
	return m.naming
}

// Status returns the transient status line.
func (m Model) Status() string {
	return m.status
}

// Game returns the driven session.
func (m Model) Game() *hardest.Game {
	return m.game
}

// Run starts the Bubble Tea program for game.
func Run(game *hardest.Game, opts Options) error {
	model := NewModel(game, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
