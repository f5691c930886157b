// Package levels provides the level catalog: the data shapes a level file
// describes, parsing of YAML/JSON catalogs and change watching.
// This package does not depend on the simulation; the simulation consumes
// Definition values produced here.
package levels

// Tile codes used in tile maps.
const (
	TileGround = 0
	TileWall   = 1
	TileDoor   = 2
)

// RectDef is an axis-aligned rectangle in window pixels.
type RectDef struct {
	X, Y          float64
	Width, Height float64
}

// PlayerDef is the spawn point and dimensions of the player square.
type PlayerDef struct {
	X, Y  float64
	Size  float64
	Speed float64 // Pixels per tick
}

// ObstacleDef describes a moving circular obstacle.
type ObstacleDef struct {
	X, Y       float64
	Radius     float64
	Speed      float64 // Signed; the sign gives the initial direction
	Horizontal bool
	Barriers   []RectDef // Extra bounce surfaces besides tiles and window edges
}

// CoinDef describes a collectible coin.
type CoinDef struct {
	X, Y   float64
	Radius float64
}

// Definition is one fully validated level as read from a catalog.
type Definition struct {
	Name      string
	Player    PlayerDef
	Goal      RectDef
	Key       *RectDef // Nil when the level has no key
	Obstacles []ObstacleDef
	Coins     []CoinDef
	TileMap   [][]int // Nil for an open level with no tile collision
	TileSize  int
}

// HasTileMap reports whether the level defines a tile map.
func (d Definition) HasTileMap() bool {
	return len(d.TileMap) > 0
}
