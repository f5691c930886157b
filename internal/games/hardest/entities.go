package hardest

import "github.com/vovakirdan/tui-hardest/internal/core"

// Coin must be collected before the goal accepts the player.
type Coin struct {
	X, Y      float64 // Center
	Radius    float64
	Collected bool
}

// Circle returns the coin's shape.
func (c *Coin) Circle() core.Circle {
	return core.Circle{X: c.X, Y: c.Y, R: c.Radius}
}

// Key opens the level's doors when collected.
type Key struct {
	Rect      core.Rect
	Collected bool
}

// Goal is the exit of a level.
type Goal struct {
	Rect core.Rect
}
