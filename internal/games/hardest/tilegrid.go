package hardest

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-hardest/internal/core"
	"github.com/vovakirdan/tui-hardest/internal/levels"
)

// Tile codes.
const (
	TileGround = levels.TileGround
	TileWall   = levels.TileWall
	TileDoor   = levels.TileDoor
)

// TileGrid is the immutable tile layout of a level.
// A nil or empty grid never blocks anything.
type TileGrid struct {
	tiles [][]int
	size  int
}

// NewTileGrid copies rows into a new grid. All rows must have the same length.
func NewTileGrid(rows [][]int, size int) (*TileGrid, error) {
	if len(rows) == 0 {
		return &TileGrid{size: size}, nil
	}
	if size <= 0 {
		return nil, fmt.Errorf("hardest: tile size must be positive, got %d", size)
	}

	cols := len(rows[0])
	tiles := make([][]int, len(rows))
	for r, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("hardest: tile row %d has %d tiles, expected %d", r, len(row), cols)
		}
		tiles[r] = append([]int(nil), row...)
	}
	return &TileGrid{tiles: tiles, size: size}, nil
}

// IsBlocking reports whether a tile code blocks movement.
// Doors block only while locked.
func IsBlocking(code int, doorsOpen bool) bool {
	return code == TileWall || (code == TileDoor && !doorsOpen)
}

// Rows returns the number of tile rows.
func (g *TileGrid) Rows() int {
	if g == nil {
		return 0
	}
	return len(g.tiles)
}

// Cols returns the number of tile columns.
func (g *TileGrid) Cols() int {
	if g == nil || len(g.tiles) == 0 {
		return 0
	}
	return len(g.tiles[0])
}

// Size returns the tile edge length in pixels.
func (g *TileGrid) Size() int {
	if g == nil {
		return 0
	}
	return g.size
}

// At returns the tile code at (row, col), or TileGround outside the grid.
func (g *TileGrid) At(row, col int) int {
	if row < 0 || row >= g.Rows() || col < 0 || col >= g.Cols() {
		return TileGround
	}
	return g.tiles[row][col]
}

// TileAt returns the tile code under the pixel (x, y).
func (g *TileGrid) TileAt(x, y float64) int {
	if g.Rows() == 0 || g.size <= 0 {
		return TileGround
	}
	size := float64(g.size)
	return g.At(int(math.Floor(y/size)), int(math.Floor(x/size)))
}

// CellBounds returns the pixel rectangle of a tile cell.
func (g *TileGrid) CellBounds(row, col int) core.Rect {
	size := float64(g.Size())
	return core.NewRect(float64(col)*size, float64(row)*size, size, size)
}

// CollidesWithBlockingTile reports whether bounds overlaps any blocking tile.
// Cells that only touch bounds along an edge do not count.
func (g *TileGrid) CollidesWithBlockingTile(bounds core.Rect, doorsOpen bool) bool {
	rows, cols := g.Rows(), g.Cols()
	if rows == 0 || cols == 0 || g.size <= 0 {
		return false
	}

	size := float64(g.size)
	startRow := core.Clamp(int(math.Floor(bounds.Y/size)), 0, rows-1)
	endRow := core.Clamp(int(math.Floor(bounds.Bottom()/size)), 0, rows-1)
	startCol := core.Clamp(int(math.Floor(bounds.X/size)), 0, cols-1)
	endCol := core.Clamp(int(math.Floor(bounds.Right()/size)), 0, cols-1)

	for row := startRow; row <= endRow; row++ {
		for col := startCol; col <= endCol; col++ {
			if !IsBlocking(g.tiles[row][col], doorsOpen) {
				continue
			}
			if bounds.Intersects(g.CellBounds(row, col)) {
				return true
			}
		}
	}
	return false
}
