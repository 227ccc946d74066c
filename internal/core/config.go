package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay

	// Pacing between half-turns and the length of the end-of-run holds.
	HalfTurnDelay time.Duration
	VictoryHold   time.Duration
	DefeatHold    time.Duration
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:       80,
		ScreenH:       24,
		TickRate:      60,
		Seed:          0, // 0 means use current time in platform layer
		HalfTurnDelay: 300 * time.Millisecond,
		VictoryHold:   1500 * time.Millisecond,
		DefeatHold:    600 * time.Millisecond,
	}
}

// Ticks converts a duration to a whole number of simulation ticks,
// rounding up so that any non-zero delay lasts at least one tick.
func (c RuntimeConfig) Ticks(d time.Duration) int {
	if d <= 0 || c.TickRate <= 0 {
		return 0
	}
	scaled := d * time.Duration(c.TickRate)
	return int((scaled + time.Second - 1) / time.Second)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Attempts int  // Runs started on the current level
	Won      bool // The level has been beaten
	GameOver bool // The game is finished and the platform should leave it
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
