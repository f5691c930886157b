package hardest

import "math"

// Snapshot contains the mutable session state for replay and determinism
// checks. Static level data (tiles, goal, barriers) is not included.
type Snapshot struct {
	Tick       uint64
	LevelIndex int
	Deaths     int
	GameOver   bool
	DoorsOpen  bool

	PlayerX, PlayerY float64

	// Obstacle state (each obstacle is 3 floats: X, Y, Speed)
	ObstacleData []float64

	CoinsCollected []bool
	KeyCollected   bool
}

// Snapshot returns the current session state.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:       g.tick,
		LevelIndex: g.levelIndex,
		Deaths:     g.deaths,
		GameOver:   g.gameOver,
	}

	lvl := g.level
	if lvl == nil {
		return snap
	}

	snap.DoorsOpen = lvl.doorsOpen
	snap.PlayerX = lvl.player.X
	snap.PlayerY = lvl.player.Y

	snap.ObstacleData = make([]float64, 0, len(lvl.obstacles)*3)
	for _, o := range lvl.obstacles {
		snap.ObstacleData = append(snap.ObstacleData, o.X, o.Y, o.Speed)
	}

	snap.CoinsCollected = make([]bool, len(lvl.coins))
	for i, c := range lvl.coins {
		snap.CoinsCollected[i] = c.Collected
	}
	if lvl.key != nil {
		snap.KeyCollected = lvl.key.Collected
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.LevelIndex) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Deaths)     //#nosec G115 -- hash computation
	h = h*31 + boolBits(snap.GameOver)
	h = h*31 + boolBits(snap.DoorsOpen)
	h = h*31 + math.Float64bits(snap.PlayerX)
	h = h*31 + math.Float64bits(snap.PlayerY)

	for _, v := range snap.ObstacleData {
		h = h*31 + math.Float64bits(v)
	}
	for _, c := range snap.CoinsCollected {
		h = h*31 + boolBits(c)
	}
	h = h*31 + boolBits(snap.KeyCollected)

	return h
}

func boolBits(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
