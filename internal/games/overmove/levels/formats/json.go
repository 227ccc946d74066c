package formats

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/overmove/internal/games/overmove/core"
)

// JSONLevel is the legacy level layout. Positions are raw pixel
// coordinates, one cell being core.CellUnits wide; arrow hints are
// already in cell units. The player start and the goal track are
// required; pointers tell a missing key from a zero value.
type JSONLevel struct {
	PlayerStart  *[2]int    `json:"Player_Starter_Coo"`
	GoalMove     *[][2]int  `json:"Victory_Cell_Move"`
	HazardMoves  [][][2]int `json:"Red_Cells_Move"`
	GoalStart    *[2]int    `json:"Victory_Cell_Starting_Coo"`
	HazardStarts [][2]int   `json:"Red_Cells_Starter_Coo"`
	Arrows       [][]any    `json:"Arrow"`
}

// ParseJSON parses a legacy JSON level file. The ID and name are left
// empty; the loader derives them from the file name.
func ParseJSON(data []byte) (Level, error) {
	var jl JSONLevel
	if err := json.Unmarshal(data, &jl); err != nil {
		return Level{}, fmt.Errorf("json unmarshal: %w", err)
	}
	if jl.PlayerStart == nil {
		return Level{}, errors.New("Player_Starter_Coo: missing")
	}
	if jl.GoalMove == nil {
		return Level{}, errors.New("Victory_Cell_Move: missing")
	}

	start, err := fromRaw(*jl.PlayerStart)
	if err != nil {
		return Level{}, fmt.Errorf("Player_Starter_Coo: %w", err)
	}
	goal, err := trackFromRaw(*jl.GoalMove)
	if err != nil {
		return Level{}, fmt.Errorf("Victory_Cell_Move: %w", err)
	}
	goalStart, err := displayStart(jl.GoalStart, goal)
	if err != nil {
		return Level{}, fmt.Errorf("Victory_Cell_Starting_Coo: %w", err)
	}

	level := Level{
		Bounds:    core.DefaultBounds(),
		Start:     start,
		Goal:      goal,
		GoalStart: goalStart,
	}

	for i, raw := range jl.HazardMoves {
		t, err := trackFromRaw(raw)
		if err != nil {
			return Level{}, fmt.Errorf("Red_Cells_Move[%d]: %w", i, err)
		}
		level.Hazards = append(level.Hazards, t)

		var listed *[2]int
		if i < len(jl.HazardStarts) {
			listed = &jl.HazardStarts[i]
		}
		from, err := displayStart(listed, t)
		if err != nil {
			return Level{}, fmt.Errorf("Red_Cells_Starter_Coo[%d]: %w", i, err)
		}
		level.HazardStarts = append(level.HazardStarts, from)
	}

	for i, a := range jl.Arrows {
		h, err := hintFromArrow(a, level.Bounds)
		if err != nil {
			return Level{}, fmt.Errorf("Arrow[%d]: %w", i, err)
		}
		level.Hints = append(level.Hints, h)
	}

	return level, nil
}

// displayStart resolves where a tracked cell is drawn before the run.
// Without a listed start it is the last trajectory entry, where the
// engine first evaluates the cell.
func displayStart(listed *[2]int, t core.Trajectory) (core.Pos, error) {
	if listed != nil {
		return fromRaw(*listed)
	}
	last, _ := t.At(-1)
	return last, nil
}

// fromRaw converts raw pixel coordinates to a cell position.
func fromRaw(raw [2]int) (core.Pos, error) {
	if raw[0]%core.CellUnits != 0 || raw[1]%core.CellUnits != 0 {
		return core.Pos{}, fmt.Errorf("coordinate (%d,%d) is not a multiple of %d", raw[0], raw[1], core.CellUnits)
	}
	return core.P(raw[0]/core.CellUnits, raw[1]/core.CellUnits), nil
}

func trackFromRaw(raw [][2]int) (core.Trajectory, error) {
	t := make(core.Trajectory, len(raw))
	for i, r := range raw {
		p, err := fromRaw(r)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		t[i] = p
	}
	return t, nil
}

// hintFromArrow decodes [x, y, glyph, color] with an optional side.
// The coordinates must be whole cells inside the grid.
func hintFromArrow(a []any, bounds core.Bounds) (Hint, error) {
	if len(a) < 4 {
		return Hint{}, fmt.Errorf("expected at least 4 fields, got %d", len(a))
	}
	x, okX := a[0].(float64)
	y, okY := a[1].(float64)
	glyph, okG := a[2].(string)
	color, okC := a[3].(string)
	if !okX || !okY || !okG || !okC {
		return Hint{}, fmt.Errorf("malformed arrow %v", a)
	}

	if x != math.Trunc(x) || y != math.Trunc(y) {
		return Hint{}, fmt.Errorf("arrow position (%v,%v) is not a whole cell", x, y)
	}
	pos := core.P(int(x), int(y))
	if !bounds.Contains(pos) {
		return Hint{}, fmt.Errorf("arrow position %v is outside the %dx%d grid", pos, bounds.Cols, bounds.Rows)
	}

	h := Hint{Pos: pos, Glyph: glyph, Color: color}
	if len(a) >= 5 {
		if side, ok := a[len(a)-1].(string); ok {
			h.Side = ParseSide(side)
		}
	}
	return h, nil
}
