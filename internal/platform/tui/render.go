package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vovakirdan/tui-hardest/internal/core"
)

// colorStyles maps each cell role to a terminal color.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:  lipgloss.NewStyle(),
	core.ColorText:     lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorTitle:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.ColorStatus:   lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWall:     lipgloss.NewStyle().Foreground(lipgloss.Color("183")),
	core.ColorDoor:     lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorGoal:     lipgloss.NewStyle().Foreground(lipgloss.Color("157")),
	core.ColorKey:      lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorCoin:     lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	core.ColorObstacle: lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	core.ColorPlayer:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells of one color share a single styled run.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y, h := 0, s.Height(); y < h; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
