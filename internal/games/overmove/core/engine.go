package core

import (
	"errors"
	"fmt"
)

// Phase is the engine state.
type Phase uint8

const (
	PhaseAwaitingPlayer Phase = iota // Next advance moves the player
	PhaseAwaitingCells               // Next advance moves the goal and hazards
	PhaseWon
	PhaseLost
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseAwaitingPlayer:
		return "AwaitingPlayerHalfTurn"
	case PhaseAwaitingCells:
		return "AwaitingCellHalfTurn"
	case PhaseWon:
		return "Won"
	case PhaseLost:
		return "Lost"
	default:
		return "Unknown"
	}
}

// Terminal reports whether the phase ends the run.
func (p Phase) Terminal() bool {
	return p == PhaseWon || p == PhaseLost
}

// Outcome is the signal reported after every half-turn.
type Outcome uint8

const (
	OutcomeContinue Outcome = iota
	OutcomeWon
	OutcomeLost
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeContinue:
		return "continue"
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	default:
		return "unknown"
	}
}

// LossCause explains why a run was lost.
type LossCause uint8

const (
	CauseNone LossCause = iota
	CauseHazard
	CauseOutOfBounds
	CauseMovesExhausted
)

// String returns the cause name.
func (c LossCause) String() string {
	switch c {
	case CauseNone:
		return "none"
	case CauseHazard:
		return "hazard"
	case CauseOutOfBounds:
		return "out of bounds"
	case CauseMovesExhausted:
		return "moves exhausted"
	default:
		return "unknown"
	}
}

// HalfTurnKind identifies which half of a step was executed.
type HalfTurnKind uint8

const (
	HalfTurnNone   HalfTurnKind = iota // Engine was already terminal
	HalfTurnPlayer                     // Player moved
	HalfTurnCells                      // Goal and hazards advanced
	HalfTurnIdle                       // Empty queue: start cell evaluated in place
)

// String returns the half-turn name.
func (k HalfTurnKind) String() string {
	switch k {
	case HalfTurnPlayer:
		return "player"
	case HalfTurnCells:
		return "cells"
	case HalfTurnIdle:
		return "idle"
	default:
		return "none"
	}
}

// HalfTurn records what happened during one Advance call.
type HalfTurn struct {
	Kind    HalfTurnKind
	Step    int // Step after the half-turn
	Move    Dir // Move applied (player half-turns only)
	Player  Pos
	Outcome Outcome
	Cause   LossCause
}

// Report summarizes a finished (or in-progress) run.
type Report struct {
	Outcome     Outcome
	Cause       LossCause
	Step        int
	MovesPlayed int
	Player      Pos
}

// Engine runs one playthrough of a level as an explicit state machine.
// Each Advance call executes exactly one half-turn; the caller decides the
// pacing between calls. An Engine must not be shared between goroutines.
type Engine struct {
	level  *Level
	moves  []Dir
	phase  Phase
	step   int
	player Pos
	played int
	cause  LossCause
}

// NewEngine creates an engine for the given level and complete move queue.
func NewEngine(level *Level, moves []Dir) (*Engine, error) {
	if level == nil {
		return nil, errors.New("engine: nil level")
	}
	if len(moves) > MaxMoves {
		return nil, fmt.Errorf("engine: %w: %d moves, max %d", ErrInputOverflow, len(moves), MaxMoves)
	}
	for i, d := range moves {
		if !d.Valid() {
			return nil, fmt.Errorf("engine: invalid direction %d at move %d", d, i)
		}
	}

	queue := make([]Dir, len(moves))
	copy(queue, moves)

	return &Engine{
		level:  level,
		moves:  queue,
		phase:  PhaseAwaitingPlayer,
		player: level.Start(),
	}, nil
}

// Advance executes the next half-turn. Once the engine is terminal it takes
// no further action and reports the final outcome with Kind HalfTurnNone.
func (e *Engine) Advance() HalfTurn {
	switch e.phase {
	case PhaseAwaitingPlayer:
		return e.playerHalfTurn()
	case PhaseAwaitingCells:
		return e.cellHalfTurn()
	default:
		return HalfTurn{
			Kind:    HalfTurnNone,
			Step:    e.step,
			Player:  e.player,
			Outcome: e.Outcome(),
			Cause:   e.cause,
		}
	}
}

// playerHalfTurn applies the move at index step, then checks the goal,
// hazards and bounds against trajectory index step-1.
func (e *Engine) playerHalfTurn() HalfTurn {
	if e.step >= len(e.moves) {
		return e.idleHalfTurn()
	}

	move := e.moves[e.step]
	e.player = e.player.Move(move)
	e.played++

	switch {
	case e.level.isGoal(e.player, e.step-1):
		e.phase = PhaseWon
	case e.level.isHazard(e.player, e.step-1):
		e.lose(CauseHazard)
	case !e.level.bounds.Contains(e.player):
		e.lose(CauseOutOfBounds)
	default:
		e.phase = PhaseAwaitingCells
	}

	return e.report(HalfTurnPlayer, move)
}

// idleHalfTurn handles an empty queue: nothing moves and the start cell is
// compared against the goal at index step-1.
func (e *Engine) idleHalfTurn() HalfTurn {
	if e.level.isGoal(e.player, e.step-1) {
		e.phase = PhaseWon
	} else {
		e.lose(CauseMovesExhausted)
	}
	return e.report(HalfTurnIdle, 0)
}

// cellHalfTurn advances the step, which moves the goal and hazards to their
// next tracked cell, and re-evaluates the player's cell.
func (e *Engine) cellHalfTurn() HalfTurn {
	e.step++

	switch {
	case e.level.isGoal(e.player, e.step-1):
		e.phase = PhaseWon
	case e.level.isHazard(e.player, e.step-1):
		e.lose(CauseHazard)
	case e.step == len(e.moves):
		e.lose(CauseMovesExhausted)
	default:
		e.phase = PhaseAwaitingPlayer
	}

	return e.report(HalfTurnCells, 0)
}

func (e *Engine) lose(cause LossCause) {
	e.phase = PhaseLost
	e.cause = cause
}

func (e *Engine) report(kind HalfTurnKind, move Dir) HalfTurn {
	return HalfTurn{
		Kind:    kind,
		Step:    e.step,
		Move:    move,
		Player:  e.player,
		Outcome: e.Outcome(),
		Cause:   e.cause,
	}
}

// Run advances until the engine is terminal and returns the final report.
// It is the headless form of the paced loop.
func (e *Engine) Run() Report {
	for !e.phase.Terminal() {
		e.Advance()
	}
	return e.Report()
}

// Report returns the current run summary.
func (e *Engine) Report() Report {
	return Report{
		Outcome:     e.Outcome(),
		Cause:       e.cause,
		Step:        e.step,
		MovesPlayed: e.played,
		Player:      e.player,
	}
}

// Outcome returns continue, won or lost for the current phase.
func (e *Engine) Outcome() Outcome {
	switch e.phase {
	case PhaseWon:
		return OutcomeWon
	case PhaseLost:
		return OutcomeLost
	default:
		return OutcomeContinue
	}
}

// Phase returns the current state.
func (e *Engine) Phase() Phase {
	return e.phase
}

// Step returns the current step.
func (e *Engine) Step() int {
	return e.step
}

// Player returns the player position.
func (e *Engine) Player() Pos {
	return e.player
}

// Goal returns the goal cell for the current step (trajectory index step-1).
func (e *Engine) Goal() Pos {
	return e.level.GoalAt(e.step - 1)
}

// Hazards returns the hazard cells for the current step.
func (e *Engine) Hazards() []Pos {
	return e.level.HazardsAt(e.step - 1)
}

// Cause returns why the run was lost, or CauseNone.
func (e *Engine) Cause() LossCause {
	return e.cause
}

// MovesPlayed returns how many queued moves have been applied.
func (e *Engine) MovesPlayed() int {
	return e.played
}

// LastMove returns the index of the last applied move, or -1 if none.
func (e *Engine) LastMove() int {
	return e.played - 1
}

// Moves returns a copy of the move queue.
func (e *Engine) Moves() []Dir {
	out := make([]Dir, len(e.moves))
	copy(out, e.moves)
	return out
}

// Replay runs a path through a fresh engine with no pacing.
func Replay(level *Level, path Path) (Report, error) {
	e, err := NewEngine(level, path)
	if err != nil {
		return Report{}, err
	}
	return e.Run(), nil
}
