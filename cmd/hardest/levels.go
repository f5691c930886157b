package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-hardest/internal/levels"
)

var flagCheck bool

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List and check the level catalog",
	Long: `Show every level of the catalog with its contents. With --check the
command exits with an error when any level fails to load.

Examples:
  hardest levels
  hardest levels --levels ./my-levels.yaml --check`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func init() {
	levelsCmd.Flags().BoolVar(&flagCheck, "check", false, "Fail if any level is malformed")
}

func runLevels(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr)

	cfg, err := loadConfig()
	exitOnError(logger, "invalid configuration", err)

	catalog, err := levels.Resolve(cfg.Levels.Path)
	exitOnError(logger, "cannot load levels", err)

	source := catalog.Path
	if source == "" {
		source = "built-in"
	}
	fmt.Printf("Levels (%s):\n\n", source)

	if catalog.Count() == 0 {
		fmt.Println("  No levels.")
		return
	}

	names := catalog.Names()
	fmt.Printf("  %-3s  %-20s  %-9s  %-5s  %-3s  %s\n", "#", "Name", "Obstacles", "Coins", "Key", "Tiles")
	fmt.Printf("  %-3s  %-20s  %-9s  %-5s  %-3s  %s\n", "-", "----", "---------", "-----", "---", "-----")
	for i, n := 0, catalog.Count(); i < n; i++ {
		def, loadErr := catalog.Load(i)
		if loadErr != nil {
			fmt.Printf("  %-3d  %-20s  error: %v\n", i+1, names[i], loadErr)
			continue
		}
		key := "no"
		if def.Key != nil {
			key = "yes"
		}
		tiles := "none"
		if def.HasTileMap() {
			tiles = fmt.Sprintf("%dx%d @%d", len(def.TileMap[0]), len(def.TileMap), def.TileSize)
		}
		fmt.Printf("  %-3d  %-20s  %-9d  %-5d  %-3s  %s\n", i+1, def.Name, len(def.Obstacles), len(def.Coins), key, tiles)
	}

	if flagCheck {
		exitOnError(logger, "catalog check failed", catalog.Validate())
		fmt.Println()
		fmt.Println("All levels load.")
	}
}
