// Package console drives a session without a full-screen UI: an interactive
// mode that reads one command per line and a scripted headless simulation.
package console

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/vovakirdan/tui-hardest/internal/core"
	"github.com/vovakirdan/tui-hardest/internal/games/hardest"
	"github.com/vovakirdan/tui-hardest/internal/storage"
)

// Board size used when printing the level.
const (
	DefaultCols = 60
	DefaultRows = 22
)

// Result summarizes an interactive session.
type Result struct {
	Completed bool
	Deaths    int
	Levels    int
	Name      string // Normalized; set only for completed runs
}

// Interactive runs a session where each command moves the player one tile
// and then exactly one tick passes. Commands are w, a, s, d and q to quit.
// After the last level the player is asked for a name.
type Interactive struct {
	Game       *hardest.Game
	In         io.Reader
	Out        io.Writer
	Cols, Rows int
}

// Run plays until completion, quit or end of input.
func (c *Interactive) Run() (Result, error) {
	cols, rows := c.Cols, c.Rows
	if cols <= 0 || rows <= 0 {
		cols, rows = DefaultCols, DefaultRows
	}
	screen := core.NewScreen(cols, rows)
	in := bufio.NewScanner(c.In)

	for !c.Game.GameOver() {
		c.Game.Render(screen)
		fmt.Fprintln(c.Out, screen.String())
		fmt.Fprint(c.Out, "Command (w/a/s/d, q to quit): ")

		if !in.Scan() {
			fmt.Fprintln(c.Out)
			return c.result(), in.Err()
		}
		cmd := strings.ToLower(strings.TrimSpace(in.Text()))
		if cmd == "" {
			continue
		}

		var dx, dy float64
		switch cmd[0] {
		case 'q':
			return c.result(), nil
		case 'w':
			dy = -1
		case 's':
			dy = 1
		case 'a':
			dx = -1
		case 'd':
			dx = 1
		default:
			fmt.Fprintf(c.Out, "Unknown command %q\n", cmd)
			continue
		}

		moved, events := StepTile(c.Game, dx, dy)
		if !moved {
			fmt.Fprintln(c.Out, "Blocked.")
		}
		for _, e := range events {
			fmt.Fprintln(c.Out, e.String())
		}
		if err := c.Game.LoadErr(); err != nil {
			return c.result(), err
		}
	}

	c.Game.Render(screen)
	fmt.Fprintln(c.Out, screen.String())
	fmt.Fprintf(c.Out, "Game over with %d deaths! Enter your name for the top 10: ", c.Game.Deaths())

	res := c.result()
	name := ""
	if in.Scan() {
		name = in.Text()
	}
	res.Name = storage.NormalizeName(name)
	return res, in.Err()
}

func (c *Interactive) result() Result {
	return Result{
		Completed: c.Game.GameOver() && c.Game.TotalLevels() > 0,
		Deaths:    c.Game.Deaths(),
		Levels:    c.Game.TotalLevels(),
	}
}

// StepTile moves the player one tile in direction (dx, dy), clamped to the
// play area, then runs one tick. Levels without a tile map step by the player
// size. A move into a blocking tile is refused but the tick still runs.
// Returns whether the move happened and the events of the tick.
func StepTile(game *hardest.Game, dx, dy float64) (bool, []hardest.Event) {
	lvl := game.Level()
	if lvl == nil {
		return false, nil
	}
	p := lvl.Player()

	step := float64(lvl.Grid().Size())
	if step == 0 {
		step = p.Size
	}
	w, h := lvl.Size()
	x := core.Clamp(p.X+dx*step, 0, math.Max(0, w-p.Size))
	y := core.Clamp(p.Y+dy*step, 0, math.Max(0, h-p.Size))

	moved := !lvl.Grid().CollidesWithBlockingTile(core.NewRect(x, y, p.Size, p.Size), lvl.DoorsOpen())
	if moved {
		p.MoveTo(x, y)
	}

	game.ApplyInput(core.NewInputFrame())
	return moved, game.Update()
}
