package hardest

import (
	"errors"

	"github.com/vovakirdan/tui-hardest/internal/core"
	"github.com/vovakirdan/tui-hardest/internal/levels"
)

// Level is one loaded level and all of its mutable entity state.
type Level struct {
	Name string

	grid      *TileGrid
	player    *Player
	obstacles []*Obstacle
	coins     []*Coin
	key       *Key
	goal      Goal
	doorsOpen bool

	spawnX, spawnY float64
	width, height  float64 // Play area in pixels
}

// NewLevel builds a level from a definition. The play area is the runtime
// window minus its header band. Either a complete level is returned or an error.
func NewLevel(def levels.Definition, runtime core.RuntimeConfig) (*Level, error) {
	if def.Player.Size <= 0 {
		return nil, errors.New("hardest: player size must be positive")
	}

	grid, err := NewTileGrid(def.TileMap, def.TileSize)
	if err != nil {
		return nil, err
	}

	l := &Level{
		Name:   def.Name,
		grid:   grid,
		player: NewPlayer(def.Player.X, def.Player.Y, def.Player.Size, def.Player.Speed),
		goal:   Goal{Rect: rectFromDef(def.Goal)},
		spawnX: def.Player.X,
		spawnY: def.Player.Y,
		width:  runtime.WindowW,
		height: runtime.PlayHeight(),
	}

	l.obstacles = make([]*Obstacle, 0, len(def.Obstacles))
	for _, od := range def.Obstacles {
		barriers := make([]core.Rect, 0, len(od.Barriers))
		for _, b := range od.Barriers {
			barriers = append(barriers, rectFromDef(b))
		}
		l.obstacles = append(l.obstacles, &Obstacle{
			X:          od.X,
			Y:          od.Y,
			Radius:     od.Radius,
			Speed:      od.Speed,
			Horizontal: od.Horizontal,
			Barriers:   barriers,
		})
	}

	l.coins = make([]*Coin, 0, len(def.Coins))
	for _, cd := range def.Coins {
		l.coins = append(l.coins, &Coin{X: cd.X, Y: cd.Y, Radius: cd.Radius})
	}

	if def.Key != nil {
		l.key = &Key{Rect: rectFromDef(*def.Key)}
	}

	return l, nil
}

func rectFromDef(r levels.RectDef) core.Rect {
	return core.NewRect(r.X, r.Y, r.Width, r.Height)
}

// Update advances obstacles, then the player.
func (l *Level) Update() {
	for _, o := range l.obstacles {
		o.Update(l.grid, l.doorsOpen, l.width, l.height)
	}
	l.player.Update(l.grid, l.doorsOpen, l.width, l.height)
}

// Grid returns the tile grid. It is never nil.
func (l *Level) Grid() *TileGrid { return l.grid }

// Player returns the level's player.
func (l *Level) Player() *Player { return l.player }

// Obstacles returns the level's obstacles.
func (l *Level) Obstacles() []*Obstacle { return l.obstacles }

// Coins returns the level's coins.
func (l *Level) Coins() []*Coin { return l.coins }

// Key returns the level's key, or nil when it has none.
func (l *Level) Key() *Key { return l.key }

// Goal returns the level's goal.
func (l *Level) Goal() Goal { return l.goal }

// Size returns the play area in pixels.
func (l *Level) Size() (width, height float64) { return l.width, l.height }

// Spawn returns the player's starting position.
func (l *Level) Spawn() (x, y float64) { return l.spawnX, l.spawnY }

// DoorsOpen reports whether the key has been collected this attempt.
func (l *Level) DoorsOpen() bool { return l.doorsOpen }

// OpenDoors unlocks every door for the rest of the attempt.
func (l *Level) OpenDoors() { l.doorsOpen = true }

// TotalCoins returns the number of coins in the level.
func (l *Level) TotalCoins() int { return len(l.coins) }

// CollectedCoins returns how many coins have been collected.
func (l *Level) CollectedCoins() int {
	n := 0
	for _, c := range l.coins {
		if c.Collected {
			n++
		}
	}
	return n
}

// AreAllCoinsCollected reports whether no coin is left. A level without
// coins is always complete.
func (l *Level) AreAllCoinsCollected() bool {
	for _, c := range l.coins {
		if !c.Collected {
			return false
		}
	}
	return true
}

// ResetAttempt puts coins, key and doors back to their initial state and
// returns the player to spawn. Obstacles are left where they are.
func (l *Level) ResetAttempt() {
	for _, c := range l.coins {
		c.Collected = false
	}
	if l.key != nil {
		l.key.Collected = false
	}
	l.doorsOpen = false
	l.player.MoveTo(l.spawnX, l.spawnY)
}
