package hardest

import (
	"errors"
	"fmt"
	"testing"

	"github.com/vovakirdan/tui-hardest/internal/core"
	"github.com/vovakirdan/tui-hardest/internal/levels"
)

// memCatalog is an in-memory level source. Indexes marked in broken fail to
// load as malformed levels.
type memCatalog struct {
	defs   []levels.Definition
	broken map[int]bool
}

func (c *memCatalog) Count() int { return len(c.defs) }

func (c *memCatalog) Load(index int) (levels.Definition, error) {
	if index < 0 || index >= len(c.defs) {
		return levels.Definition{}, fmt.Errorf("%w: %d", levels.ErrLevelOutOfRange, index)
	}
	if c.broken[index] {
		return levels.Definition{}, &levels.LevelError{Index: index, Field: "player", Err: errors.New("required field missing")}
	}
	return c.defs[index], nil
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{WindowW: 400, WindowH: 240, HeaderH: 40, ScreenW: 80, ScreenH: 24, TickRate: 60}
}

// openLevel is a 400x200 level without tiles. The player spawns at (10, 10)
// and the goal sits at x >= 300.
func openLevel() levels.Definition {
	return levels.Definition{
		Name:   "open",
		Player: levels.PlayerDef{X: 10, Y: 10, Size: 10, Speed: 5},
		Goal:   levels.RectDef{X: 300, Y: 0, Width: 100, Height: 200},
	}
}

func newTestGame(t *testing.T, defs ...levels.Definition) *Game {
	t.Helper()
	g, err := New(&memCatalog{defs: defs}, testRuntime())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return g
}

func countKind(events []Event, kind EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func TestNewStartsAtFirstLevel(t *testing.T) {
	g := newTestGame(t, openLevel(), openLevel())

	if g.LevelIndex() != 0 || g.TotalLevels() != 2 {
		t.Errorf("index %d of %d, want 0 of 2", g.LevelIndex(), g.TotalLevels())
	}
	if g.Level() == nil || g.Player() == nil {
		t.Fatal("first level should be loaded")
	}
	if g.Deaths() != 0 || g.GameOver() {
		t.Error("fresh session should have no deaths and not be over")
	}
	x, y := g.Level().Spawn()
	if x != 10 || y != 10 {
		t.Errorf("spawn = (%v, %v), want (10, 10)", x, y)
	}
}

func TestNewWithEmptyCatalogIsComplete(t *testing.T) {
	g := newTestGame(t)
	if !g.GameOver() || g.Level() != nil {
		t.Error("empty catalog should complete immediately")
	}
	if events := g.Update(); events != nil {
		t.Errorf("Update after completion returned %v", events)
	}
}

func TestNewFailsOnBrokenFirstLevel(t *testing.T) {
	_, err := New(&memCatalog{defs: []levels.Definition{openLevel()}, broken: map[int]bool{0: true}}, testRuntime())
	if !errors.Is(err, levels.ErrMalformedLevel) {
		t.Errorf("New() error = %v, want ErrMalformedLevel", err)
	}

	if _, err := New(nil, testRuntime()); err == nil {
		t.Error("nil catalog should fail")
	}
}

func TestGoalAdvancesWhenAllCoinsCollected(t *testing.T) {
	def := openLevel()
	def.Coins = []levels.CoinDef{{X: 100, Y: 100, Radius: 5}, {X: 150, Y: 100, Radius: 5}}
	g := newTestGame(t, def, openLevel())

	for _, c := range g.Level().Coins() {
		c.Collected = true
	}
	g.Player().MoveTo(310, 50)

	events := g.Update()
	if g.LevelIndex() != 1 {
		t.Fatalf("LevelIndex = %d, want 1", g.LevelIndex())
	}
	if countKind(events, EventLevelComplete) != 1 {
		t.Errorf("events = %v, want one LevelComplete", events)
	}
	if g.Player().X != 10 || g.Player().Y != 10 {
		t.Error("new level should place the player at its spawn")
	}
}

func TestGoalIgnoredWhileCoinsRemain(t *testing.T) {
	def := openLevel()
	def.Coins = []levels.CoinDef{{X: 100, Y: 100, Radius: 5}, {X: 150, Y: 100, Radius: 5}}
	g := newTestGame(t, def, openLevel())

	g.Level().Coins()[0].Collected = true
	g.Player().MoveTo(310, 50)
	lvl := g.Level()

	for i := 0; i < 3; i++ {
		if events := g.Update(); len(events) != 0 {
			t.Fatalf("tick %d: unexpected events %v", i, events)
		}
	}
	if g.LevelIndex() != 0 || g.Level() != lvl {
		t.Error("goal should be inert while coins remain")
	}
	if g.CoinsCollected() != 1 || g.CoinsTotal() != 2 {
		t.Errorf("coins %d/%d, want 1/2", g.CoinsCollected(), g.CoinsTotal())
	}
}

func TestLevelWithoutCoinsIsComplete(t *testing.T) {
	g := newTestGame(t, openLevel())
	if !g.Level().AreAllCoinsCollected() {
		t.Error("level without coins should count as all collected")
	}
}

func TestDeathWinsOverCoin(t *testing.T) {
	def := openLevel()
	def.Coins = []levels.CoinDef{{X: 105, Y: 105, Radius: 3}}
	def.Obstacles = []levels.ObstacleDef{{X: 108, Y: 108, Radius: 4, Speed: 0, Horizontal: true}}
	g := newTestGame(t, def)

	g.Player().MoveTo(100, 100)
	events := g.Update()

	if g.Deaths() != 1 {
		t.Errorf("Deaths = %d, want 1", g.Deaths())
	}
	if len(events) != 1 || events[0].Kind != EventPlayerDeath {
		t.Errorf("events = %v, want only PlayerDeath", events)
	}
	if g.Level().Coins()[0].Collected {
		t.Error("coin must not be collected on the tick the player dies")
	}
}

func TestDeathResetsAttempt(t *testing.T) {
	def := openLevel()
	def.Coins = []levels.CoinDef{{X: 200, Y: 150, Radius: 5}}
	def.Key = &levels.RectDef{X: 250, Y: 150, Width: 10, Height: 10}
	def.Obstacles = []levels.ObstacleDef{{X: 105, Y: 105, Radius: 4, Speed: 2, Horizontal: false}}
	g := newTestGame(t, def)

	lvl := g.Level()
	lvl.Coins()[0].Collected = true
	lvl.Key().Collected = true
	lvl.OpenDoors()
	obstacleY := lvl.Obstacles()[0].Y

	g.Player().MoveTo(100, 100)
	g.Update()

	if lvl.Coins()[0].Collected || lvl.Key().Collected || lvl.DoorsOpen() {
		t.Error("death should reset coins, key and doors")
	}
	if p := g.Player(); p.X != 10 || p.Y != 10 {
		t.Errorf("player at (%v, %v), want spawn (10, 10)", p.X, p.Y)
	}
	if got := lvl.Obstacles()[0].Y; got != obstacleY+2 {
		t.Errorf("obstacle Y = %v, want %v (keeps moving through death)", got, obstacleY+2)
	}
	if g.Level() != lvl {
		t.Error("death should not reload the level")
	}
}

func TestKeyOpensDoors(t *testing.T) {
	def := openLevel()
	def.Key = &levels.RectDef{X: 40, Y: 10, Width: 10, Height: 10}
	def.TileSize = 10
	def.TileMap = make([][]int, 20)
	for r := range def.TileMap {
		def.TileMap[r] = make([]int, 40)
		def.TileMap[r][6] = TileDoor
	}
	g := newTestGame(t, def)

	move := core.NewInputFrame()
	move.Set(core.ActionRight)

	var keyEvents int
	for i := 0; i < 20; i++ {
		g.Step(move)
		keyEvents += countKind(g.LastEvents(), EventKeyCollected)
	}

	if keyEvents != 1 {
		t.Errorf("KeyCollected events = %d, want 1", keyEvents)
	}
	if !g.DoorsOpen() {
		t.Fatal("doors should be open after collecting the key")
	}
	if g.Player().X <= 60 {
		t.Errorf("player X = %v, should have passed the open door", g.Player().X)
	}
}

func TestDoorBlocksWithoutKey(t *testing.T) {
	def := openLevel()
	def.TileSize = 10
	def.TileMap = make([][]int, 20)
	for r := range def.TileMap {
		def.TileMap[r] = make([]int, 40)
		def.TileMap[r][6] = TileDoor
	}
	g := newTestGame(t, def)

	move := core.NewInputFrame()
	move.Set(core.ActionRight)
	for i := 0; i < 20; i++ {
		g.Step(move)
	}
	if g.Player().X != 50 {
		t.Errorf("player X = %v, want 50 (stopped at the door)", g.Player().X)
	}
}

func TestCoinCollection(t *testing.T) {
	def := openLevel()
	def.Coins = []levels.CoinDef{{X: 105, Y: 105, Radius: 3}, {X: 108, Y: 102, Radius: 3}, {X: 200, Y: 200, Radius: 3}}
	g := newTestGame(t, def)

	var got []Event
	g.SetEventHandler(func(e Event) { got = append(got, e) })

	g.Player().MoveTo(100, 100)
	events := g.Update()

	if countKind(events, EventCoinCollected) != 2 {
		t.Fatalf("events = %v, want two CoinCollected", events)
	}
	if events[0].Index != 0 || events[1].Index != 1 {
		t.Errorf("coin indexes = %d, %d, want 0, 1", events[0].Index, events[1].Index)
	}
	if len(got) != len(events) {
		t.Errorf("handler saw %d events, Update returned %d", len(got), len(events))
	}

	// Collected coins are not reported again.
	if events := g.Update(); countKind(events, EventCoinCollected) != 0 {
		t.Errorf("second tick reported %v", events)
	}
}

func TestGameCompletion(t *testing.T) {
	g := newTestGame(t, openLevel())

	var active []*Player
	g.SetActivePlayerHandler(func(p *Player) { active = append(active, p) })

	g.Player().MoveTo(310, 50)
	events := g.Update()

	if !g.GameOver() {
		t.Fatal("finishing the last level should end the game")
	}
	if g.Level() != nil || g.Player() != nil {
		t.Error("no level should remain after completion")
	}
	if g.LevelIndex() != 1 {
		t.Errorf("LevelIndex = %d, want 1", g.LevelIndex())
	}
	if countKind(events, EventLevelComplete) != 1 || countKind(events, EventGameComplete) != 1 {
		t.Errorf("events = %v, want LevelComplete and GameComplete", events)
	}
	if len(active) != 2 || active[0] == nil || active[1] != nil {
		t.Errorf("active player changes = %v, want [player, nil]", active)
	}

	deaths := g.Deaths()
	if events := g.Update(); events != nil || g.Deaths() != deaths || g.Tick() != 1 {
		t.Error("Update after completion should be a no-op")
	}
}

func TestLoadLevel(t *testing.T) {
	second := openLevel()
	second.Name = "second"
	cat := &memCatalog{defs: []levels.Definition{openLevel(), second, openLevel()}, broken: map[int]bool{2: true}}
	g, err := New(cat, testRuntime())
	if err != nil {
		t.Fatal(err)
	}

	if err := g.LoadLevel(1); err != nil {
		t.Fatalf("LoadLevel(1) failed: %v", err)
	}
	if g.Level().Name != "second" || g.LevelIndex() != 1 {
		t.Errorf("loaded %q at %d", g.Level().Name, g.LevelIndex())
	}

	lvl := g.Level()
	err = g.LoadLevel(2)
	if !errors.Is(err, levels.ErrMalformedLevel) {
		t.Fatalf("LoadLevel(2) error = %v, want ErrMalformedLevel", err)
	}
	if g.Level() != lvl || g.LevelIndex() != 1 {
		t.Error("a failed load must leave the current level in place")
	}

	if err := g.LoadLevel(-1); err == nil {
		t.Error("negative index should fail")
	}

	if err := g.LoadLevel(3); err != nil {
		t.Fatalf("LoadLevel past the end failed: %v", err)
	}
	if !g.GameOver() {
		t.Error("loading past the end should complete the game")
	}
}

func TestLoadLevelRejectsInvalidDefinition(t *testing.T) {
	bad := openLevel()
	bad.TileMap = [][]int{{0, 0}, {0}}
	bad.TileSize = 10
	g := newTestGame(t, openLevel(), bad)

	lvl := g.Level()
	err := g.LoadLevel(1)

	var le *levels.LevelError
	if !errors.As(err, &le) || le.Index != 1 {
		t.Fatalf("LoadLevel(1) error = %v, want *LevelError for index 1", err)
	}
	if g.Level() != lvl {
		t.Error("current level should be kept")
	}
}

func TestAdvanceIntoBrokenLevelHalts(t *testing.T) {
	cat := &memCatalog{defs: []levels.Definition{openLevel(), openLevel()}, broken: map[int]bool{1: true}}
	g, err := New(cat, testRuntime())
	if err != nil {
		t.Fatal(err)
	}

	g.Player().MoveTo(310, 50)
	events := g.Update()

	if countKind(events, EventLevelLoadFailed) != 1 {
		t.Fatalf("events = %v, want LevelLoadFailed", events)
	}
	if !errors.Is(g.LoadErr(), levels.ErrMalformedLevel) {
		t.Errorf("LoadErr = %v", g.LoadErr())
	}
	if g.LevelIndex() != 0 || g.Level() == nil || g.GameOver() {
		t.Error("session should stay on the completed level")
	}

	tick := g.Tick()
	if g.Update() != nil || g.Tick() != tick {
		t.Error("a halted session must not retry on its own")
	}

	// Fixing the catalog resumes at the level that failed.
	cat.broken = nil
	if err := g.ReloadCatalog(cat); err != nil {
		t.Fatalf("ReloadCatalog() failed: %v", err)
	}
	if g.LoadErr() != nil || g.LevelIndex() != 1 {
		t.Errorf("after reload: index %d, err %v", g.LevelIndex(), g.LoadErr())
	}
}

func TestReloadCatalogKeepsDeaths(t *testing.T) {
	def := openLevel()
	def.Obstacles = []levels.ObstacleDef{{X: 15, Y: 15, Radius: 4, Speed: 0, Horizontal: true}}
	g := newTestGame(t, def, openLevel())
	g.Update()
	if g.Deaths() != 1 {
		t.Fatalf("Deaths = %d, want 1", g.Deaths())
	}

	if err := g.LoadLevel(1); err != nil {
		t.Fatal(err)
	}
	if err := g.ReloadCatalog(&memCatalog{defs: []levels.Definition{openLevel(), openLevel(), openLevel()}}); err != nil {
		t.Fatalf("ReloadCatalog() failed: %v", err)
	}
	if g.Deaths() != 1 || g.LevelIndex() != 1 || g.TotalLevels() != 3 {
		t.Errorf("deaths %d index %d total %d", g.Deaths(), g.LevelIndex(), g.TotalLevels())
	}

	// A broken replacement is rejected as a whole.
	lvl := g.Level()
	err := g.ReloadCatalog(&memCatalog{defs: []levels.Definition{openLevel(), openLevel()}, broken: map[int]bool{1: true}})
	if err == nil {
		t.Fatal("reload onto a broken level should fail")
	}
	if g.Level() != lvl || g.TotalLevels() != 3 {
		t.Error("failed reload must keep the previous catalog and level")
	}
}

func TestDeathsMonotonic(t *testing.T) {
	def := openLevel()
	// A vertical obstacle sweeping over the spawn point.
	def.Obstacles = []levels.ObstacleDef{{X: 15, Y: 100, Radius: 6, Speed: 7, Horizontal: false}}
	g := newTestGame(t, def)

	prev := 0
	for i := 0; i < 1000; i++ {
		events := g.Update()
		deaths := countKind(events, EventPlayerDeath)
		if g.Deaths() != prev+deaths {
			t.Fatalf("tick %d: deaths %d, want %d", i, g.Deaths(), prev+deaths)
		}
		if deaths > 1 {
			t.Fatalf("tick %d: %d deaths in one tick", i, deaths)
		}
		prev = g.Deaths()
	}
	if prev == 0 {
		t.Error("obstacle never hit the player")
	}
}

func TestPlayerStaysInsideWindow(t *testing.T) {
	g := newTestGame(t, openLevel())
	maxX := g.Runtime().WindowW - g.Player().Size
	maxY := g.Runtime().PlayHeight() - g.Player().Size

	dirs := []core.Action{core.ActionUp, core.ActionLeft, core.ActionDown, core.ActionRight}
	for i := 0; i < 400 && !g.GameOver(); i++ {
		in := core.NewInputFrame()
		in.Set(dirs[(i/50)%len(dirs)])
		in.Set(dirs[(i/30)%len(dirs)])
		g.Step(in)

		p := g.Player()
		if p == nil {
			break
		}
		if p.X < 0 || p.X > maxX || p.Y < 0 || p.Y > maxY {
			t.Fatalf("tick %d: player at (%v, %v) outside [0,%v]x[0,%v]", i, p.X, p.Y, maxX, maxY)
		}
	}
}

func TestDeterminism(t *testing.T) {
	cat := levels.Default()
	run := func() Snapshot {
		g, err := New(cat, core.DefaultConfig())
		if err != nil {
			t.Fatalf("New() failed: %v", err)
		}
		for i := 0; i < 600; i++ {
			in := core.NewInputFrame()
			switch {
			case i%90 < 40:
				in.Set(core.ActionRight)
			case i%90 < 60:
				in.Set(core.ActionDown)
			default:
				in.Set(core.ActionUp)
			}
			g.Step(in)
		}
		return g.Snapshot()
	}

	snap1 := run()
	snap2 := run()

	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}
	if snap1.Deaths != snap2.Deaths || snap1.PlayerX != snap2.PlayerX {
		t.Errorf("runs diverged: %+v vs %+v", snap1, snap2)
	}
}

func TestStepPauseAndRestart(t *testing.T) {
	g := newTestGame(t, openLevel())

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	if res := g.Step(pause); !res.State.Paused {
		t.Fatal("pause action should pause")
	}

	move := core.NewInputFrame()
	move.Set(core.ActionRight)
	g.Step(move)
	if g.Player().X != 10 {
		t.Error("paused game should not move")
	}

	g.Step(pause)
	g.Step(move)
	if g.Player().X != 15 {
		t.Errorf("X = %v after unpause, want 15", g.Player().X)
	}

	g.Player().MoveTo(310, 50)
	g.Update()
	if !g.GameOver() {
		t.Fatal("game should be complete")
	}

	restart := core.NewInputFrame()
	restart.Set(core.ActionRestart)
	res := g.Step(restart)
	if res.State.GameOver || res.State.LevelIndex != 0 || g.Player() == nil {
		t.Errorf("restart state = %+v", res.State)
	}
}

func TestRender(t *testing.T) {
	g, err := New(levels.Default(), core.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	for _, want := range []rune{WallChar, PlayerChar, ObstacleChar, GoalChar} {
		found := false
		for _, r := range out {
			if r == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("rendered screen has no %q", want)
		}
	}

	if row := screen.Row(0); len(row) == 0 || row[0] != 'L' {
		t.Errorf("HUD row = %q", row)
	}

	small := core.NewScreen(10, 5)
	g.Render(small)
	if small.Row(0)[:6] != "Window" {
		t.Errorf("small screen row = %q", small.Row(0))
	}
}

func TestObstacleBottomEdgeIsPlayHeight(t *testing.T) {
	def := openLevel()
	def.Obstacles = []levels.ObstacleDef{{X: 200, Y: 185, Radius: 10, Speed: 10}}
	g := newTestGame(t, def)

	g.Update()

	// Play height is 240 - 40; the header band is not reachable.
	o := g.Level().Obstacles()[0]
	if o.Y != 190 || o.Speed != -10 {
		t.Errorf("obstacle Y = %v Speed = %v, want 190 and -10", o.Y, o.Speed)
	}
	if _, h := g.Level().Size(); h != 200 {
		t.Errorf("play height = %v, want 200", h)
	}
}
