package core

import (
	"errors"
	"fmt"
)

// Validation error codes.
const (
	CodeBadGrid         = "BAD_GRID"
	CodeEmptyTrajectory = "EMPTY_TRAJECTORY"
	CodeShortTrajectory = "SHORT_TRAJECTORY"
	CodeOutOfBounds     = "OUT_OF_BOUNDS"
)

// ErrInputOverflow is returned when a move queue is longer than MaxMoves.
var ErrInputOverflow = errors.New("move queue overflow")

// ValidationError describes a malformed level definition.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Trajectory is the step-indexed track of a moving cell.
type Trajectory []Pos

// At returns the position at index i. Negative indices count from the end,
// so At(-1) is the last entry: the step 0 lookup of "step - 1" resolves there.
// Out-of-range indices return false.
func (t Trajectory) At(i int) (Pos, bool) {
	if i < 0 {
		i += len(t)
	}
	if i < 0 || i >= len(t) {
		return Pos{}, false
	}
	return t[i], true
}

// Hits reports whether p equals the entry at index i.
func (t Trajectory) Hits(p Pos, i int) bool {
	q, ok := t.At(i)
	return ok && q == p
}

// Clone returns a copy of the trajectory.
func (t Trajectory) Clone() Trajectory {
	out := make(Trajectory, len(t))
	copy(out, t)
	return out
}

// Level is an immutable level definition.
type Level struct {
	bounds  Bounds
	start   Pos
	goal    Trajectory
	hazards []Trajectory
}

// LevelOption customizes a level.
type LevelOption func(*Level)

// WithBounds overrides the default 10x5 grid.
func WithBounds(b Bounds) LevelOption {
	return func(l *Level) {
		l.bounds = b
	}
}

// NewLevel builds and validates a level definition.
// Trajectories are copied, so later changes by the caller are not observed.
func NewLevel(start Pos, goal Trajectory, hazards []Trajectory, opts ...LevelOption) (*Level, error) {
	l := &Level{
		bounds:  DefaultBounds(),
		start:   start,
		goal:    goal.Clone(),
		hazards: make([]Trajectory, len(hazards)),
	}
	for i, h := range hazards {
		l.hazards[i] = h.Clone()
	}
	for _, opt := range opts {
		opt(l)
	}

	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

// Validate checks that every trajectory can be indexed for a full run
// and that every cell lies inside the grid.
func (l *Level) Validate() error {
	if l.bounds.Cols <= 0 || l.bounds.Rows <= 0 {
		return ValidationError{
			Code:    CodeBadGrid,
			Message: fmt.Sprintf("grid size %dx%d must be positive", l.bounds.Cols, l.bounds.Rows),
		}
	}
	if !l.bounds.Contains(l.start) {
		return ValidationError{
			Code:    CodeOutOfBounds,
			Message: fmt.Sprintf("player start %s outside %dx%d grid", l.start, l.bounds.Cols, l.bounds.Rows),
		}
	}
	if err := l.validateTrajectory("goal", l.goal); err != nil {
		return err
	}
	for i, h := range l.hazards {
		if err := l.validateTrajectory(fmt.Sprintf("hazard %d", i), h); err != nil {
			return err
		}
	}
	return nil
}

func (l *Level) validateTrajectory(name string, t Trajectory) error {
	if len(t) == 0 {
		return ValidationError{
			Code:    CodeEmptyTrajectory,
			Message: name + " trajectory is empty",
		}
	}
	if len(t) < MaxMoves {
		return ValidationError{
			Code:    CodeShortTrajectory,
			Message: fmt.Sprintf("%s trajectory has %d entries, need at least %d", name, len(t), MaxMoves),
		}
	}
	for i, p := range t {
		if !l.bounds.Contains(p) {
			return ValidationError{
				Code:    CodeOutOfBounds,
				Message: fmt.Sprintf("%s trajectory entry %d %s outside grid", name, i, p),
			}
		}
	}
	return nil
}

// Bounds returns the grid bounds.
func (l *Level) Bounds() Bounds {
	return l.bounds
}

// Start returns the player start position.
func (l *Level) Start() Pos {
	return l.start
}

// Goal returns a copy of the goal trajectory.
func (l *Level) Goal() Trajectory {
	return l.goal.Clone()
}

// Hazards returns copies of the hazard trajectories.
func (l *Level) Hazards() []Trajectory {
	out := make([]Trajectory, len(l.hazards))
	for i, h := range l.hazards {
		out[i] = h.Clone()
	}
	return out
}

// HazardCount returns the number of hazard cells.
func (l *Level) HazardCount() int {
	return len(l.hazards)
}

// GoalAt returns the goal cell at trajectory index i.
func (l *Level) GoalAt(i int) Pos {
	p, _ := l.goal.At(i)
	return p
}

// HazardsAt returns every hazard cell at trajectory index i.
func (l *Level) HazardsAt(i int) []Pos {
	out := make([]Pos, 0, len(l.hazards))
	for _, h := range l.hazards {
		if p, ok := h.At(i); ok {
			out = append(out, p)
		}
	}
	return out
}

// isGoal reports whether p is on the goal at index i.
func (l *Level) isGoal(p Pos, i int) bool {
	return l.goal.Hits(p, i)
}

// isHazard reports whether p is on any hazard at index i.
func (l *Level) isHazard(p Pos, i int) bool {
	for _, h := range l.hazards {
		if h.Hits(p, i) {
			return true
		}
	}
	return false
}
