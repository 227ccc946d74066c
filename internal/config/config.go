// Package config provides YAML-based configuration loading for OverMove.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/overmove/internal/core"
)

// Config contains all configuration for the game and its tools.
type Config struct {
	Pacing  PacingConfig  `yaml:"pacing"`
	Display DisplayConfig `yaml:"display"`
	Levels  LevelsConfig  `yaml:"levels"`
	Solver  SolverConfig  `yaml:"solver"`
}

// PacingConfig defines the animation delays of a run. None of them
// affect the outcome.
type PacingConfig struct {
	HalfTurnDelayMs int `yaml:"half_turn_delay_ms"`
	VictoryHoldMs   int `yaml:"victory_hold_ms"`
	DefeatHoldMs    int `yaml:"defeat_hold_ms"`
}

// DisplayConfig defines terminal refresh parameters.
type DisplayConfig struct {
	TickRate int `yaml:"tick_rate"`
}

// LevelsConfig selects the level pack.
type LevelsConfig struct {
	Dir string `yaml:"dir"` // Empty means the built-in pack
}

// SolverConfig defines auto-solver defaults for the CLI.
type SolverConfig struct {
	Attempts int   `yaml:"attempts"`
	Seed     int64 `yaml:"seed"`
}

// Validate rejects settings the game cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Display.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("display.tick_rate must be positive, got %d", c.Display.TickRate))
	}
	if c.Pacing.HalfTurnDelayMs < 0 {
		errs = append(errs, fmt.Errorf("pacing.half_turn_delay_ms must not be negative, got %d", c.Pacing.HalfTurnDelayMs))
	}
	if c.Pacing.VictoryHoldMs < 0 {
		errs = append(errs, fmt.Errorf("pacing.victory_hold_ms must not be negative, got %d", c.Pacing.VictoryHoldMs))
	}
	if c.Pacing.DefeatHoldMs < 0 {
		errs = append(errs, fmt.Errorf("pacing.defeat_hold_ms must not be negative, got %d", c.Pacing.DefeatHoldMs))
	}
	if c.Solver.Attempts < 1 {
		errs = append(errs, fmt.Errorf("solver.attempts must be at least 1, got %d", c.Solver.Attempts))
	}
	return errors.Join(errs...)
}

// Runtime builds the game runtime configuration for a screen size.
func (c Config) Runtime(screenW, screenH int, seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:       screenW,
		ScreenH:       screenH,
		TickRate:      c.Display.TickRate,
		Seed:          seed,
		HalfTurnDelay: time.Duration(c.Pacing.HalfTurnDelayMs) * time.Millisecond,
		VictoryHold:   time.Duration(c.Pacing.VictoryHoldMs) * time.Millisecond,
		DefeatHold:    time.Duration(c.Pacing.DefeatHoldMs) * time.Millisecond,
	}
}
