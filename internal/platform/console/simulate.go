package console

import (
	"fmt"
	"io"
	"math"

	"github.com/vovakirdan/tui-hardest/internal/core"
	"github.com/vovakirdan/tui-hardest/internal/games/hardest"
)

// Default scripted run.
const (
	DefaultTicks   = 50
	DefaultTargetX = 300
	DefaultTargetY = 250
)

// Simulation is a headless scripted run. The player steers to the target,
// horizontally first, and once there keeps moving up.
type Simulation struct {
	Game    *hardest.Game
	Out     io.Writer
	Ticks   int
	TargetX float64
	TargetY float64
}

// SimResult summarizes a simulation.
type SimResult struct {
	Ticks         int // Ticks actually run
	ReachedTarget bool
	Deaths        int
	GameOver      bool
}

// Run prints the state after every tick. It stops early when the game is
// complete or a level fails to load.
func (s *Simulation) Run() (SimResult, error) {
	ticks := s.Ticks
	if ticks <= 0 {
		ticks = DefaultTicks
	}

	var res SimResult
	if p := s.Game.Player(); p != nil {
		fmt.Fprintf(s.Out, "start: level %d/%d pos (%.1f, %.1f) coins %d/%d deaths %d\n",
			s.Game.LevelIndex()+1, s.Game.TotalLevels(), p.X, p.Y,
			s.Game.CoinsCollected(), s.Game.CoinsTotal(), s.Game.Deaths())
	}

	for res.Ticks < ticks && !s.Game.GameOver() {
		p := s.Game.Player()
		if p == nil {
			break
		}

		frame := core.NewInputFrame()
		if !res.ReachedTarget {
			res.ReachedTarget = steer(&frame, p, s.TargetX, s.TargetY)
			if res.ReachedTarget {
				fmt.Fprintln(s.Out, "target reached, heading up")
			}
		}
		if res.ReachedTarget {
			frame.Set(core.ActionUp)
		}

		s.Game.Step(frame)
		res.Ticks++

		for _, e := range s.Game.LastEvents() {
			fmt.Fprintf(s.Out, "  %s\n", e)
		}
		if err := s.Game.LoadErr(); err != nil {
			res.Deaths, res.GameOver = s.Game.Deaths(), s.Game.GameOver()
			return res, err
		}

		if p := s.Game.Player(); p != nil {
			fmt.Fprintf(s.Out, "tick %d: level %d/%d pos (%.1f, %.1f) coins %d/%d deaths %d\n",
				res.Ticks, s.Game.LevelIndex()+1, s.Game.TotalLevels(), p.X, p.Y,
				s.Game.CoinsCollected(), s.Game.CoinsTotal(), s.Game.Deaths())
		}
	}

	res.Deaths, res.GameOver = s.Game.Deaths(), s.Game.GameOver()
	if res.GameOver {
		fmt.Fprintf(s.Out, "all levels complete with %d deaths\n", res.Deaths)
	}
	return res, nil
}

// steer sets the movement toward (tx, ty) in frame. Reports true once the
// player is within one step of the target on both axes.
func steer(frame *core.InputFrame, p *hardest.Player, tx, ty float64) bool {
	switch {
	case math.Abs(p.X-tx) > p.Speed:
		if p.X < tx {
			frame.Set(core.ActionRight)
		} else {
			frame.Set(core.ActionLeft)
		}
	case math.Abs(p.Y-ty) > p.Speed:
		if p.Y < ty {
			frame.Set(core.ActionDown)
		} else {
			frame.Set(core.ActionUp)
		}
	default:
		return true
	}
	return false
}
