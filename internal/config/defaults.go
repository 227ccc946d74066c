package config

import (
	_ "embed"
)

//go:embed defaults/overmove.yaml
var defaultYAML []byte

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Pacing: PacingConfig{
			HalfTurnDelayMs: 300,
			VictoryHoldMs:   1500,
			DefeatHoldMs:    600,
		},
		Display: DisplayConfig{
			TickRate: 60,
		},
		Solver: SolverConfig{
			Attempts: 1,
		},
	}
}
