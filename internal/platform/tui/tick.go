// Package tui runs a play session in the terminal with Bubble Tea: the tick
// loop, key hold emulation, the score prompt and scoreboard, and the Wish SSH
// server that serves sessions remotely.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg advances the simulation by one step.
type TickMsg time.Time

const fallbackTickRate = 60

// tickCmd schedules the next TickMsg tickRate times per second.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = fallbackTickRate
	}
	return tea.Tick(time.Second/time.Duration(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
