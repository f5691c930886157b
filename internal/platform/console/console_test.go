package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-hardest/internal/core"
	"github.com/vovakirdan/tui-hardest/internal/games/hardest"
	"github.com/vovakirdan/tui-hardest/internal/levels"
	"github.com/vovakirdan/tui-hardest/internal/storage"
)

// openCatalog has one level without tiles; the goal starts at x = 40.
const openCatalog = `
levels:
  - name: Open
    player: {x: 10, y: 10, size: 10, speed: 5}
    goal: {x: 40, y: 0, width: 50, height: 100}
    obstacles: []
`

// farCatalog keeps the goal out of reach.
const farCatalog = `
levels:
  - name: Far
    player: {x: 10, y: 10, size: 10, speed: 5}
    goal: {x: 900, y: 0, width: 50, height: 100}
    obstacles: []
`

// wallCatalog has 10 pixel tiles with a wall in column 2.
const wallCatalog = `
levels:
  - name: Wall
    player: {x: 0, y: 0, size: 10, speed: 5}
    goal: {x: 900, y: 0, width: 50, height: 100}
    obstacles: []
    tileSize: 10
    tileMap:
      - [0, 0, 1, 0, 0]
      - [0, 0, 1, 0, 0]
      - [0, 0, 0, 0, 0]
`

func newGame(t *testing.T, catalog string) *hardest.Game {
	t.Helper()
	cat, err := levels.Parse([]byte(catalog))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	g, err := hardest.New(cat, core.DefaultConfig())
	if err != nil {
		t.Fatalf("hardest.New() failed: %v", err)
	}
	return g
}

func TestInteractiveCompletesAndAsksName(t *testing.T) {
	g := newGame(t, openCatalog)
	var out bytes.Buffer
	c := &Interactive{Game: g, In: strings.NewReader("d\n\nx\nd\nd\n  ann  \n"), Out: &out}

	res, err := c.Run()
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if !res.Completed || res.Deaths != 0 || res.Levels != 1 {
		t.Errorf("result = %+v", res)
	}
	if res.Name != "ann" {
		t.Errorf("name = %q, want ann", res.Name)
	}
	if !strings.Contains(out.String(), `Unknown command "x"`) {
		t.Error("unknown command should be reported")
	}
	if !strings.Contains(out.String(), "GameComplete") {
		t.Error("events of the tick should be printed")
	}
}

func TestInteractiveEmptyNameIsAnonymous(t *testing.T) {
	g := newGame(t, openCatalog)
	c := &Interactive{Game: g, In: strings.NewReader("d\nd\nd\n\n"), Out: &bytes.Buffer{}}

	res, err := c.Run()
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if res.Name != storage.AnonymousName {
		t.Errorf("name = %q, want %q", res.Name, storage.AnonymousName)
	}
}

func TestInteractiveQuit(t *testing.T) {
	g := newGame(t, openCatalog)
	c := &Interactive{Game: g, In: strings.NewReader("d\nq\n"), Out: &bytes.Buffer{}}

	res, err := c.Run()
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if res.Completed || res.Name != "" {
		t.Errorf("quit run = %+v, want incomplete without name", res)
	}
	if g.Tick() != 1 {
		t.Errorf("ticks = %d, want one per move", g.Tick())
	}
}

func TestInteractiveEndOfInput(t *testing.T) {
	g := newGame(t, openCatalog)
	res, err := (&Interactive{Game: g, In: strings.NewReader(""), Out: &bytes.Buffer{}}).Run()
	if err != nil || res.Completed {
		t.Errorf("Run() on empty input = %+v, %v", res, err)
	}
}

func TestStepTile(t *testing.T) {
	g := newGame(t, wallCatalog)
	p := g.Player()

	moved, _ := StepTile(g, 1, 0)
	if !moved || p.X != 10 {
		t.Fatalf("first step: moved %v, X = %v; want true, 10", moved, p.X)
	}

	moved, _ = StepTile(g, 1, 0)
	if moved || p.X != 10 {
		t.Errorf("step into wall: moved %v, X = %v; want false, 10", moved, p.X)
	}
	if g.Tick() != 2 {
		t.Errorf("a refused move still runs a tick, got %d ticks", g.Tick())
	}

	// Left edge clamps instead of leaving the play area
	StepTile(g, -1, 0)
	StepTile(g, -1, 0)
	if p.X != 0 {
		t.Errorf("X = %v, want clamped to 0", p.X)
	}
}

func TestStepTileWithoutTilesUsesPlayerSize(t *testing.T) {
	g := newGame(t, farCatalog)
	StepTile(g, 0, 1)
	if y := g.Player().Y; y != 20 {
		t.Errorf("Y = %v, want 20", y)
	}
}

func TestSimulationSteersThenClimbs(t *testing.T) {
	g := newGame(t, farCatalog)
	var out bytes.Buffer
	sim := &Simulation{Game: g, Out: &out, Ticks: 8, TargetX: 30, TargetY: 20}

	res, err := sim.Run()
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if res.Ticks != 8 || !res.ReachedTarget || res.GameOver {
		t.Errorf("result = %+v", res)
	}

	p := g.Player()
	if p.X != 25 || p.Y != 0 {
		t.Errorf("final position (%v, %v), want (25, 0)", p.X, p.Y)
	}
	if !strings.Contains(out.String(), "target reached") {
		t.Error("reaching the target should be reported")
	}
	if n := strings.Count(out.String(), "\ntick "); n != 8 {
		t.Errorf("printed %d tick lines, want 8", n)
	}
}

func TestSimulationStopsOnCompletion(t *testing.T) {
	g := newGame(t, openCatalog)
	var out bytes.Buffer
	sim := &Simulation{Game: g, Out: &out, Ticks: 100, TargetX: 500, TargetY: 10}

	res, err := sim.Run()
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if !res.GameOver || res.Ticks >= 100 {
		t.Errorf("result = %+v, want early completion", res)
	}
	if !strings.Contains(out.String(), "all levels complete") {
		t.Error("completion should be reported")
	}
}
