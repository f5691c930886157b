package hardest

import "fmt"

// EventKind identifies what happened during a tick.
type EventKind int

const (
	EventPlayerDeath EventKind = iota
	EventCoinCollected
	EventKeyCollected
	EventLevelComplete
	EventGameComplete
	EventLevelLoadFailed
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventPlayerDeath:
		return "PlayerDeath"
	case EventCoinCollected:
		return "CoinCollected"
	case EventKeyCollected:
		return "KeyCollected"
	case EventLevelComplete:
		return "LevelComplete"
	case EventGameComplete:
		return "GameComplete"
	case EventLevelLoadFailed:
		return "LevelLoadFailed"
	default:
		return "Unknown"
	}
}

// Event is one entry of the per-tick event log.
type Event struct {
	Kind  EventKind
	Index int   // Coin index for CoinCollected, level index for LevelComplete and LevelLoadFailed
	Err   error // Set for LevelLoadFailed
}

// String formats the event for logs, with its index or error when it has one.
func (e Event) String() string {
	switch e.Kind {
	case EventCoinCollected, EventLevelComplete:
		return fmt.Sprintf("%s(%d)", e.Kind, e.Index)
	case EventLevelLoadFailed:
		return fmt.Sprintf("%s(%d): %v", e.Kind, e.Index, e.Err)
	default:
		return e.Kind.String()
	}
}
