package core

// Color names the role of a screen cell. The platform layer decides how each
// role looks on a given terminal.
type Color uint8

const (
	ColorDefault Color = iota
	ColorText          // HUD and overlay body
	ColorTitle         // Overlay headline
	ColorStatus        // Transient status line
	ColorWall
	ColorDoor
	ColorGoal
	ColorKey
	ColorCoin
	ColorObstacle
	ColorPlayer
)
