package config

import (
	_ "embed"
)

//go:embed defaults/hardest.yaml
var defaultHardestYAML []byte

// DefaultHardestConfig returns the built-in configuration.
func DefaultHardestConfig() HardestConfig {
	return HardestConfig{
		Window: WindowConfig{
			Width:        1000,
			Height:       630,
			HeaderHeight: 40,
		},
		Gameplay: GameplayConfig{
			TickRate:  60,
			HoldTicks: 8,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultHardestYAML
}
