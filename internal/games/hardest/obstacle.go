package hardest

import "github.com/vovakirdan/tui-hardest/internal/core"

// Obstacle is a circle that moves back and forth along one axis.
// The sign of Speed is its direction.
type Obstacle struct {
	X, Y       float64 // Center
	Radius     float64
	Speed      float64
	Horizontal bool
	Barriers   []core.Rect // Extra bounce surfaces
}

// Circle returns the obstacle's shape.
func (o *Obstacle) Circle() core.Circle {
	return core.Circle{X: o.X, Y: o.Y, R: o.Radius}
}

// Update advances the obstacle one tick.
//
// The obstacle reverses when its next position would hit a blocking tile, a
// barrier or the window edge on its axis. On an edge hit it is placed
// flush against the edge. On a tile or barrier hit it keeps its position for
// this tick and leaves in the new direction on the next one.
func (o *Obstacle) Update(grid *TileGrid, doorsOpen bool, width, height float64) {
	nx, ny := o.X, o.Y
	pos, limit := &nx, width
	if o.Horizontal {
		nx += o.Speed
	} else {
		ny += o.Speed
		pos, limit = &ny, height
	}

	bounds := core.Circle{X: nx, Y: ny, R: o.Radius}.Bounds()
	if grid.CollidesWithBlockingTile(bounds, doorsOpen) || o.hitsBarrier(bounds) {
		o.Speed = -o.Speed
		return
	}

	switch {
	case *pos-o.Radius < 0:
		o.Speed = -o.Speed
		*pos = o.Radius
	case *pos+o.Radius > limit:
		o.Speed = -o.Speed
		*pos = limit - o.Radius
	}

	o.X, o.Y = nx, ny
}

func (o *Obstacle) hitsBarrier(bounds core.Rect) bool {
	for _, b := range o.Barriers {
		if bounds.Intersects(b) {
			return true
		}
	}
	return false
}
