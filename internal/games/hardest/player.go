package hardest

import (
	"math"

	"github.com/vovakirdan/tui-hardest/internal/core"
)

// Player is the square the user steers. Its movement flags are written by the
// input side and read once per tick by Update.
type Player struct {
	X, Y  float64 // Top-left corner
	Size  float64
	Speed float64 // Pixels per tick

	up, down, left, right bool
}

// NewPlayer creates a player at (x, y) with no movement intent.
func NewPlayer(x, y, size, speed float64) *Player {
	return &Player{X: x, Y: y, Size: size, Speed: speed}
}

// Bounds returns the player's bounding square.
func (p *Player) Bounds() core.Rect {
	return core.NewRect(p.X, p.Y, p.Size, p.Size)
}

// SetMovingUp sets the up intent flag.
func (p *Player) SetMovingUp(v bool) { p.up = v }

// SetMovingDown sets the down intent flag.
func (p *Player) SetMovingDown(v bool) { p.down = v }

// SetMovingLeft sets the left intent flag.
func (p *Player) SetMovingLeft(v bool) { p.left = v }

// SetMovingRight sets the right intent flag.
func (p *Player) SetMovingRight(v bool) { p.right = v }

// Update moves the player one tick against the static geometry.
// Each axis is tried on its own so that diagonal input slides along walls.
// The result is clamped to [0, maxX-Size] x [0, maxY-Size].
func (p *Player) Update(grid *TileGrid, doorsOpen bool, maxX, maxY float64) {
	var dx, dy float64
	if p.left {
		dx -= p.Speed
	}
	if p.right {
		dx += p.Speed
	}
	if p.up {
		dy -= p.Speed
	}
	if p.down {
		dy += p.Speed
	}

	if dx != 0 {
		next := core.NewRect(p.X+dx, p.Y, p.Size, p.Size)
		if !grid.CollidesWithBlockingTile(next, doorsOpen) {
			p.X += dx
		}
	}
	if dy != 0 {
		next := core.NewRect(p.X, p.Y+dy, p.Size, p.Size)
		if !grid.CollidesWithBlockingTile(next, doorsOpen) {
			p.Y += dy
		}
	}

	p.X = core.Clamp(p.X, 0, math.Max(0, maxX-p.Size))
	p.Y = core.Clamp(p.Y, 0, math.Max(0, maxY-p.Size))
}

// MoveTo places the player at (x, y) without collision checks.
func (p *Player) MoveTo(x, y float64) {
	p.X, p.Y = x, y
}
