package main

import (
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-hardest/internal/config"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the configuration",
	Long: `Print the effective configuration as YAML: the built-in defaults merged
with the config file and command line overrides. With --defaults the embedded
default file is printed as is, ready to be saved to ~/.hardest/configs/hardest.yaml.

Examples:
  hardest config
  hardest config --defaults > ~/.hardest/configs/hardest.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the built-in default file")
}

func runConfig(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr)

	if flagDefaults {
		_, err := os.Stdout.Write(config.GetDefaultYAML())
		exitOnError(logger, "cannot write defaults", err)
		return
	}

	cfg, err := loadConfig()
	exitOnError(logger, "invalid configuration", err)

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	exitOnError(logger, "cannot encode configuration", enc.Encode(cfg))
	exitOnError(logger, "cannot encode configuration", enc.Close())
}
