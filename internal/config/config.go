// Package config provides YAML-based configuration loading for the game:
// window geometry, tick rate, input hold emulation, level catalog location
// and score storage.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-hardest/internal/core"
)

// HardestConfig contains all configuration for the game.
type HardestConfig struct {
	Window   WindowConfig   `yaml:"window"`
	Gameplay GameplayConfig `yaml:"gameplay"`
	Levels   LevelsConfig   `yaml:"levels"`
	Storage  StorageConfig  `yaml:"storage"`
}

// WindowConfig defines the simulated window in pixels.
type WindowConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	HeaderHeight float64 `yaml:"header_height"`
}

// GameplayConfig defines timing parameters.
type GameplayConfig struct {
	TickRate  int `yaml:"tick_rate"`
	HoldTicks int `yaml:"hold_ticks"` // Ticks a key press stays held
}

// LevelsConfig locates the level catalog.
type LevelsConfig struct {
	Path  string `yaml:"path"` // Empty selects the built-in catalog
	Watch bool   `yaml:"watch"`
}

// StorageConfig locates the score database.
type StorageConfig struct {
	DBPath string `yaml:"db_path"` // Empty selects the default path
}

// Validate checks that the configuration describes a usable window.
func (c HardestConfig) Validate() error {
	var errs []error
	if c.Window.Width <= 0 {
		errs = append(errs, fmt.Errorf("window.width must be positive, got %v", c.Window.Width))
	}
	if c.Window.HeaderHeight < 0 {
		errs = append(errs, fmt.Errorf("window.header_height must not be negative, got %v", c.Window.HeaderHeight))
	}
	if c.Window.Height <= c.Window.HeaderHeight {
		errs = append(errs, fmt.Errorf("window.height (%v) must exceed header_height (%v)", c.Window.Height, c.Window.HeaderHeight))
	}
	if c.Gameplay.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("gameplay.tick_rate must be positive, got %d", c.Gameplay.TickRate))
	}
	if c.Gameplay.HoldTicks < 1 {
		errs = append(errs, fmt.Errorf("gameplay.hold_ticks must be at least 1, got %d", c.Gameplay.HoldTicks))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Runtime returns the simulation config for a screen of the given size.
func (c HardestConfig) Runtime(screenW, screenH int) core.RuntimeConfig {
	return core.RuntimeConfig{
		WindowW:  c.Window.Width,
		WindowH:  c.Window.Height,
		HeaderH:  c.Window.HeaderHeight,
		ScreenW:  screenW,
		ScreenH:  screenH,
		TickRate: c.Gameplay.TickRate,
	}
}
