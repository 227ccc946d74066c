// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"

	"github.com/vovakirdan/overmove/internal/games/overmove/core"
	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level file.
// All coordinates are in cell units.
type YAMLLevel struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Size     *YAMLSize         `yaml:"size,omitempty"`
	Start    YAMLPoint         `yaml:"start"`
	Goal     YAMLTrack         `yaml:"goal"`
	Hazards  []YAMLTrack       `yaml:"hazards,omitempty"`
	Hints    []YAMLHint        `yaml:"hints,omitempty"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// YAMLSize represents grid dimensions.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// YAMLPoint is a position written as a two-element flow sequence: [x, y].
type YAMLPoint []int

// YAMLTrack is the trajectory of a moving cell.
// With Cycle set, Path repeats until it holds MaxMoves entries.
type YAMLTrack struct {
	From  YAMLPoint   `yaml:"from,omitempty"` // Position drawn before the run starts
	Path  []YAMLPoint `yaml:"path"`
	Cycle bool        `yaml:"cycle,omitempty"`
}

// YAMLHint is a display-only arrow drawn in a cell.
type YAMLHint struct {
	X     int    `yaml:"x"`
	Y     int    `yaml:"y"`
	Glyph string `yaml:"glyph"`
	Color string `yaml:"color,omitempty"`
	Side  string `yaml:"side,omitempty"`
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	bounds := core.DefaultBounds()
	if yl.Size != nil {
		bounds = core.Bounds{Cols: yl.Size.W, Rows: yl.Size.H}
	}

	start, err := yl.Start.pos()
	if err != nil {
		return Level{}, fmt.Errorf("start: %w", err)
	}

	goal, goalFrom, err := yl.Goal.trajectory()
	if err != nil {
		return Level{}, fmt.Errorf("goal: %w", err)
	}

	level := Level{
		ID:        yl.ID,
		Name:      yl.Name,
		Bounds:    bounds,
		Start:     start,
		Goal:      goal,
		GoalStart: goalFrom,
		Metadata:  yl.Metadata,
	}

	for i, h := range yl.Hazards {
		t, from, err := h.trajectory()
		if err != nil {
			return Level{}, fmt.Errorf("hazard %d: %w", i, err)
		}
		level.Hazards = append(level.Hazards, t)
		level.HazardStarts = append(level.HazardStarts, from)
	}

	for i, h := range yl.Hints {
		pos := core.P(h.X, h.Y)
		if !bounds.Contains(pos) {
			return Level{}, fmt.Errorf("hint %d: position %v is outside the %dx%d grid", i, pos, bounds.Cols, bounds.Rows)
		}
		level.Hints = append(level.Hints, Hint{
			Pos:   pos,
			Glyph: h.Glyph,
			Color: h.Color,
			Side:  ParseSide(h.Side),
		})
	}

	return level, nil
}

func (p YAMLPoint) pos() (core.Pos, error) {
	if len(p) != 2 {
		return core.Pos{}, fmt.Errorf("position must be [x, y], got %v", []int(p))
	}
	return core.P(p[0], p[1]), nil
}

// trajectory expands the track and resolves its display start.
// Without an explicit from, the cell is drawn where the engine first
// evaluates it: the last trajectory entry.
func (t YAMLTrack) trajectory() (core.Trajectory, core.Pos, error) {
	points := make([]core.Pos, 0, len(t.Path))
	for i, p := range t.Path {
		pos, err := p.pos()
		if err != nil {
			return nil, core.Pos{}, fmt.Errorf("path entry %d: %w", i, err)
		}
		points = append(points, pos)
	}

	traj := core.Trajectory(points)
	if t.Cycle {
		traj = Cycle(points, core.MaxMoves)
	}

	var from core.Pos
	if t.From != nil {
		p, err := t.From.pos()
		if err != nil {
			return nil, core.Pos{}, fmt.Errorf("from: %w", err)
		}
		from = p
	} else if last, ok := traj.At(-1); ok {
		from = last
	}
	return traj, from, nil
}

// Cycle repeats pattern until the result holds at least n entries.
// A pattern longer than n is kept whole. An empty pattern yields nil.
func Cycle(pattern []core.Pos, n int) core.Trajectory {
	if len(pattern) == 0 {
		return nil
	}
	size := n
	if len(pattern) > size {
		size = len(pattern)
	}
	out := make(core.Trajectory, size)
	for i := range out {
		out[i] = pattern[i%len(pattern)]
	}
	return out
}
