package core

// RuntimeConfig contains configuration passed to the game at initialization.
// The simulation works in window pixels; the screen size is only used by
// renderers that project the play field onto a character grid.
type RuntimeConfig struct {
	WindowW  float64 // Play window width in pixels
	WindowH  float64 // Play window height in pixels, header included
	HeaderH  float64 // Header band height in pixels (not playable)
	ScreenW  int     // Screen width in characters
	ScreenH  int     // Screen height in characters
	TickRate int     // Simulation ticks per second (default 60)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		WindowW:  1000,
		WindowH:  630,
		HeaderH:  40,
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// PlayHeight returns the height of the playable area below the header.
func (c RuntimeConfig) PlayHeight() float64 {
	return c.WindowH - c.HeaderH
}

// GameState represents the current state of a game session.
// Returned by the game to communicate status to the platform.
type GameState struct {
	LevelIndex  int  // Zero-based index of the current level
	TotalLevels int  // Number of levels in the catalog
	Deaths      int  // Deaths so far in this session
	GameOver    bool // Whether every level has been completed
	Paused      bool // Whether the game is paused
}

// StepResult is returned by Step() after each simulation tick.
type StepResult struct {
	State GameState
}
