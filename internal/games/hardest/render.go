package hardest

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-hardest/internal/core"
)

// Glyphs used by the character renderer.
const (
	WallChar     = '█'
	DoorChar     = '▒'
	OpenDoorChar = '·'
	GoalChar     = '░'
	KeyChar      = 'k'
	CoinChar     = 'o'
	ObstacleChar = '●'
	PlayerChar   = '■'
)

const (
	minRenderCols  = 20
	minRenderRows  = 8
	hudHeight      = 1
	overlayPadding = 4
)

// Render projects the current level onto dst: a one-line HUD followed by the
// play area scaled to the remaining cells.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	w, h := dst.Width(), dst.Height()
	if w < minRenderCols || h < minRenderRows {
		dst.DrawText(0, 0, "Window too small")
		return
	}

	g.renderHUD(dst)

	if g.level != nil {
		v := newViewport(g.level, w, h-hudHeight)
		g.renderLevel(dst, v)
	}

	g.renderOverlays(dst)
}

func (g *Game) renderHUD(dst *core.Screen) {
	level := min(g.levelIndex+1, g.totalLevels)
	left := fmt.Sprintf("Level %d/%d", level, g.totalLevels)
	if g.level != nil && g.level.Name != "" {
		left += "  " + g.level.Name
	}
	dst.DrawTextColored(0, 0, left, core.ColorText)

	right := fmt.Sprintf("Coins %d/%d  Deaths %d", g.CoinsCollected(), g.CoinsTotal(), g.deaths)
	dst.DrawTextColored(dst.Width()-len(right), 0, right, core.ColorText)
}

// viewport maps pixel coordinates of the play area onto screen cells.
type viewport struct {
	cellW, cellH float64
	cols, rows   int
}

func newViewport(l *Level, cols, rows int) viewport {
	width, height := l.Size()
	return viewport{
		cellW: width / float64(cols),
		cellH: height / float64(rows),
		cols:  cols,
		rows:  rows,
	}
}

// cellRange returns the cells covered by r, always at least one.
func (v viewport) cellRange(r core.Rect) (x0, y0, x1, y1 int) {
	x0 = int(math.Floor(r.X / v.cellW))
	y0 = int(math.Floor(r.Y / v.cellH))
	x1 = max(x0, int(math.Ceil(r.Right()/v.cellW))-1)
	y1 = max(y0, int(math.Ceil(r.Bottom()/v.cellH))-1)
	return x0, y0 + hudHeight, x1, y1 + hudHeight
}

func (v viewport) cellOf(x, y float64) (int, int) {
	return int(math.Floor(x / v.cellW)), int(math.Floor(y/v.cellH)) + hudHeight
}

func (v viewport) fill(dst *core.Screen, r core.Rect, ch rune, c core.Color) {
	x0, y0, x1, y1 := v.cellRange(r)
	dst.FillRect(x0, y0, x1-x0+1, y1-y0+1, ch, c)
}

func (g *Game) renderLevel(dst *core.Screen, v viewport) {
	lvl := g.level

	// Tiles are sampled at cell centers.
	grid := lvl.grid
	if grid.Rows() > 0 {
		for row := 0; row < v.rows; row++ {
			for col := 0; col < v.cols; col++ {
				px := (float64(col) + 0.5) * v.cellW
				py := (float64(row) + 0.5) * v.cellH
				switch grid.TileAt(px, py) {
				case TileWall:
					dst.SetColored(col, row+hudHeight, WallChar, core.ColorWall)
				case TileDoor:
					if lvl.doorsOpen {
						dst.SetColored(col, row+hudHeight, OpenDoorChar, core.ColorDoor)
					} else {
						dst.SetColored(col, row+hudHeight, DoorChar, core.ColorDoor)
					}
				}
			}
		}
	}

	v.fill(dst, lvl.goal.Rect, GoalChar, core.ColorGoal)

	if k := lvl.key; k != nil && !k.Collected {
		x, y := v.cellOf(k.Rect.Center())
		dst.SetColored(x, y, KeyChar, core.ColorKey)
	}

	for _, c := range lvl.coins {
		if c.Collected {
			continue
		}
		x, y := v.cellOf(c.X, c.Y)
		dst.SetColored(x, y, CoinChar, core.ColorCoin)
	}

	for _, o := range lvl.obstacles {
		x, y := v.cellOf(o.X, o.Y)
		dst.SetColored(x, y, ObstacleChar, core.ColorObstacle)
	}

	v.fill(dst, lvl.player.Bounds(), PlayerChar, core.ColorPlayer)
}

func (g *Game) renderOverlays(dst *core.Screen) {
	switch {
	case g.loadErr != nil:
		drawOverlay(dst, "LEVEL FAILED TO LOAD", g.loadErr.Error(), "Press R to retry, Q to quit")
	case g.gameOver:
		drawOverlay(dst, "ALL LEVELS COMPLETE!",
			fmt.Sprintf("Deaths: %d", g.deaths),
			"Press R to play again")
	case g.paused:
		drawOverlay(dst, "PAUSED", "Press P to resume", g.Controls())
	}
}

// drawOverlay draws a boxed message in the middle of the screen.
func drawOverlay(dst *core.Screen, lines ...string) {
	maxLen := 0
	for i, line := range lines {
		r := []rune(line)
		if limit := dst.Width() - overlayPadding; len(r) > limit {
			r = r[:limit]
			lines[i] = string(r)
		}
		maxLen = max(maxLen, len(r))
	}

	boxW := min(maxLen+overlayPadding, dst.Width())
	boxH := len(lines) + 2
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.FillRect(boxX, boxY, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH)
	for i, line := range lines {
		color := core.ColorText
		if i == 0 {
			color = core.ColorTitle
		}
		x := (dst.Width() - len([]rune(line))) / 2
		dst.DrawTextColored(x, boxY+1+i, line, color)
	}
}

// Controls returns the control hints shown while paused.
func (g *Game) Controls() string {
	return "Arrows/WASD move  P pause  Q quit"
}
