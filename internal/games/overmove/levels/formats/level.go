package formats

import (
	"strings"

	"github.com/vovakirdan/overmove/internal/games/overmove/core"
)

// Level represents a parsed level ready for validation.
type Level struct {
	ID           string
	Name         string
	Bounds       core.Bounds
	Start        core.Pos
	Goal         core.Trajectory
	Hazards      []core.Trajectory
	GoalStart    core.Pos   // Display only
	HazardStarts []core.Pos // Display only, parallel to Hazards
	Hints        []Hint
	Metadata     map[string]string
}

// Definition validates the parsed data and builds the immutable core level.
func (l *Level) Definition() (*core.Level, error) {
	return core.NewLevel(l.Start, l.Goal, l.Hazards, core.WithBounds(l.Bounds))
}

// Side places a hint glyph off-center inside its cell.
type Side uint8

const (
	SideCenter Side = iota
	SideLeft
	SideRight
	SideUp
	SideDown
)

// ParseSide parses a hint side; unknown values center the glyph.
func ParseSide(s string) Side {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left":
		return SideLeft
	case "right":
		return SideRight
	case "up":
		return SideUp
	case "down":
		return SideDown
	default:
		return SideCenter
	}
}

// String returns the side name.
func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	case SideUp:
		return "up"
	case SideDown:
		return "down"
	default:
		return "center"
	}
}

// Hint is a display-only arrow that foreshadows a cell's movement.
// Hints never influence the simulation.
type Hint struct {
	Pos   core.Pos
	Glyph string
	Color string
	Side  Side
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".json"}
}
