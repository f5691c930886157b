// Package hardest implements the simulation of a "World's Hardest Game" style
// level: a square steered through a tile maze, circles bouncing along fixed
// tracks, coins that must all be picked up, a key that unlocks doors and a
// goal that leads to the next level.
//
// Game owns the session. Each call to Update advances exactly one tick and
// returns what happened during it. Nothing in this package performs I/O or
// blocks; a single goroutine is expected to drive it.
package hardest

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-hardest/internal/core"
	"github.com/vovakirdan/tui-hardest/internal/levels"
)

// ID is the identifier used for score storage.
const ID = "hardest"

// Game is one play session over a level catalog.
type Game struct {
	catalog levels.Source
	runtime core.RuntimeConfig

	level       *Level // Nil once every level is complete
	levelIndex  int
	totalLevels int
	deaths      int
	tick        uint64
	gameOver    bool
	paused      bool
	loadErr     error // Set when advancing hit a broken level

	lastEvents []Event

	onEvent        func(Event)
	onActivePlayer func(*Player)
}

// New starts a session at the first level of catalog.
// A catalog without levels yields a session that is already complete.
func New(catalog levels.Source, runtime core.RuntimeConfig) (*Game, error) {
	if catalog == nil {
		return nil, errors.New("hardest: nil level catalog")
	}
	if runtime.WindowW <= 0 || runtime.PlayHeight() <= 0 {
		return nil, fmt.Errorf("hardest: invalid window %vx%v (header %v)", runtime.WindowW, runtime.WindowH, runtime.HeaderH)
	}

	g := &Game{catalog: catalog, runtime: runtime}
	if err := g.Restart(); err != nil {
		return nil, err
	}
	return g, nil
}

// SetEventHandler registers a callback invoked synchronously for every event
// as it happens. Events are also returned from Update.
func (g *Game) SetEventHandler(fn func(Event)) {
	g.onEvent = fn
}

// SetActivePlayerHandler registers a callback invoked whenever the current
// player instance changes, including nil on game completion. It is called
// once immediately with the current player.
func (g *Game) SetActivePlayerHandler(fn func(*Player)) {
	g.onActivePlayer = fn
	if fn != nil {
		fn(g.Player())
	}
}

// Restart begins a new session from the first level with no deaths.
func (g *Game) Restart() error {
	g.totalLevels = g.catalog.Count()
	g.deaths = 0
	g.tick = 0
	g.paused = false
	g.gameOver = false
	g.loadErr = nil
	g.lastEvents = nil

	if g.totalLevels == 0 {
		g.finish(0)
		return nil
	}
	return g.LoadLevel(0)
}

// LoadLevel replaces the current level with the one at index.
//
// An index past the end of the catalog completes the game. A level that
// cannot be loaded is reported as an error wrapping levels.ErrMalformedLevel
// and the current level is kept unchanged.
func (g *Game) LoadLevel(index int) error {
	if index < 0 {
		return fmt.Errorf("hardest: negative level index %d", index)
	}

	def, err := g.catalog.Load(index)
	if errors.Is(err, levels.ErrLevelOutOfRange) {
		g.finish(index)
		return nil
	}
	if err != nil {
		return err
	}

	lvl, err := NewLevel(def, g.runtime)
	if err != nil {
		return &levels.LevelError{Index: index, Err: err}
	}

	g.level = lvl
	g.levelIndex = index
	g.gameOver = false
	g.loadErr = nil
	g.setActivePlayer(lvl.player)
	return nil
}

// ReloadCatalog swaps in a new catalog and reloads the current level from it.
// The death count is kept. On failure the previous catalog and level stay.
func (g *Game) ReloadCatalog(catalog levels.Source) error {
	if catalog == nil {
		return errors.New("hardest: nil level catalog")
	}

	prevCatalog, prevTotal := g.catalog, g.totalLevels
	g.catalog = catalog
	g.totalLevels = catalog.Count()
	if g.gameOver {
		return nil
	}

	// After a failed advance the level to retry is the next one.
	index := g.levelIndex
	if g.loadErr != nil {
		index++
	} else if index >= g.totalLevels {
		index = max(g.totalLevels-1, 0)
	}

	if err := g.LoadLevel(index); err != nil {
		g.catalog, g.totalLevels = prevCatalog, prevTotal
		return err
	}
	return nil
}

// Player returns the active player, or nil when no level is loaded.
func (g *Game) Player() *Player {
	if g.level == nil {
		return nil
	}
	return g.level.player
}

// ApplyInput copies the movement actions held in frame onto the player.
func (g *Game) ApplyInput(in core.InputFrame) {
	p := g.Player()
	if p == nil {
		return
	}
	p.SetMovingUp(in.Has(core.ActionUp))
	p.SetMovingDown(in.Has(core.ActionDown))
	p.SetMovingLeft(in.Has(core.ActionLeft))
	p.SetMovingRight(in.Has(core.ActionRight))
}

// Step handles the control actions in frame, applies its movement and runs
// one tick. Events of the tick are available from LastEvents.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) && g.gameOver {
		if err := g.Restart(); err != nil {
			g.loadErr = err
		}
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}

	g.ApplyInput(in)
	g.lastEvents = g.Update()
	return core.StepResult{State: g.State()}
}

// Update runs one simulation tick: obstacles, player, then collisions.
// It does nothing while paused, after completion or after a failed load.
func (g *Game) Update() []Event {
	if g.gameOver || g.paused || g.loadErr != nil || g.level == nil {
		return nil
	}
	g.tick++
	g.level.Update()
	return g.resolveCollisions()
}

// resolveCollisions checks the player against every entity. Touching an
// obstacle ends the tick, so a coin, key or goal reached on the same tick
// does not count.
func (g *Game) resolveCollisions() []Event {
	var events []Event
	emit := func(e Event) {
		events = append(events, e)
		if g.onEvent != nil {
			g.onEvent(e)
		}
	}

	lvl := g.level
	pb := lvl.player.Bounds()

	for _, o := range lvl.obstacles {
		if core.RectIntersectsCircle(pb, o.Circle()) {
			g.deaths++
			lvl.ResetAttempt()
			emit(Event{Kind: EventPlayerDeath})
			return events
		}
	}

	if k := lvl.key; k != nil && !k.Collected && pb.Intersects(k.Rect) {
		k.Collected = true
		lvl.OpenDoors()
		emit(Event{Kind: EventKeyCollected})
	}

	for i, c := range lvl.coins {
		if !c.Collected && core.RectIntersectsCircle(pb, c.Circle()) {
			c.Collected = true
			emit(Event{Kind: EventCoinCollected, Index: i})
		}
	}

	if pb.Intersects(lvl.goal.Rect) && lvl.AreAllCoinsCollected() {
		done := g.levelIndex
		emit(Event{Kind: EventLevelComplete, Index: done})

		if err := g.LoadLevel(done + 1); err != nil {
			g.loadErr = err
			emit(Event{Kind: EventLevelLoadFailed, Index: done + 1, Err: err})
			return events
		}
		if g.gameOver {
			emit(Event{Kind: EventGameComplete})
		}
	}

	return events
}

// finish ends the session. index is where the level counter stops.
func (g *Game) finish(index int) {
	g.levelIndex = index
	g.level = nil
	g.gameOver = true
	g.paused = false
	g.setActivePlayer(nil)
}

func (g *Game) setActivePlayer(p *Player) {
	if g.onActivePlayer != nil {
		g.onActivePlayer(p)
	}
}

// Level returns the current level, or nil after completion.
func (g *Game) Level() *Level { return g.level }

// LevelIndex returns the zero-based index of the current level.
func (g *Game) LevelIndex() int { return g.levelIndex }

// TotalLevels returns the number of levels in the catalog.
func (g *Game) TotalLevels() int { return g.totalLevels }

// Deaths returns the number of deaths this session.
func (g *Game) Deaths() int { return g.deaths }

// GameOver reports whether every level has been completed.
func (g *Game) GameOver() bool { return g.gameOver }

// Paused reports whether the simulation is paused.
func (g *Game) Paused() bool { return g.paused }

// Tick returns the number of ticks simulated this session.
func (g *Game) Tick() uint64 { return g.tick }

// LoadErr returns the error that stopped the session on a broken level.
func (g *Game) LoadErr() error { return g.loadErr }

// LastEvents returns the events of the most recent Step.
func (g *Game) LastEvents() []Event { return g.lastEvents }

// Runtime returns the configuration the session was created with.
func (g *Game) Runtime() core.RuntimeConfig { return g.runtime }

// CoinsCollected returns the coins collected in the current level.
func (g *Game) CoinsCollected() int {
	if g.level == nil {
		return 0
	}
	return g.level.CollectedCoins()
}

// CoinsTotal returns the number of coins in the current level.
func (g *Game) CoinsTotal() int {
	if g.level == nil {
		return 0
	}
	return g.level.TotalCoins()
}

// DoorsOpen reports whether the current level's doors are open.
func (g *Game) DoorsOpen() bool {
	return g.level != nil && g.level.doorsOpen
}

// State returns the session summary.
func (g *Game) State() core.GameState {
	return core.GameState{
		LevelIndex:  g.levelIndex,
		TotalLevels: g.totalLevels,
		Deaths:      g.deaths,
		GameOver:    g.gameOver,
		Paused:      g.paused,
	}
}
