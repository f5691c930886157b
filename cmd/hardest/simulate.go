package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-hardest/internal/platform/console"
)

var (
	flagTicks   int
	flagTargetX float64
	flagTargetY float64
	flagLevel   int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a scripted headless session",
	Long: `Run the simulation without a display. The player steers to the target
point, horizontally first, then keeps moving up. Position, coins and deaths
are printed after every tick along with the events of the tick.

Examples:
  hardest simulate
  hardest simulate --ticks 300 --target-x 500 --target-y 100
  hardest simulate --level 2`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagTicks, "ticks", console.DefaultTicks, "Number of ticks to run")
	simulateCmd.Flags().Float64Var(&flagTargetX, "target-x", console.DefaultTargetX, "Target X in play area pixels")
	simulateCmd.Flags().Float64Var(&flagTargetY, "target-y", console.DefaultTargetY, "Target Y in play area pixels")
	simulateCmd.Flags().IntVar(&flagLevel, "level", 1, "Level to start at (1-based)")
}

func runSimulate(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr)

	cfg, err := loadConfig()
	exitOnError(logger, "invalid configuration", err)

	game, _ := newGame(cfg, console.DefaultCols, console.DefaultRows, logger)
	if flagLevel > 1 {
		exitOnError(logger, "cannot load level", game.LoadLevel(flagLevel-1))
	}

	sim := &console.Simulation{
		Game:    game,
		Out:     os.Stdout,
		Ticks:   flagTicks,
		TargetX: flagTargetX,
		TargetY: flagTargetY,
	}
	res, err := sim.Run()
	exitOnError(logger, "simulation stopped", err)

	logger.Info("simulation finished",
		"ticks", res.Ticks,
		"reached_target", res.ReachedTarget,
		"deaths", res.Deaths,
		"complete", res.GameOver,
	)
}
