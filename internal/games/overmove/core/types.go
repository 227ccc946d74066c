// Package core provides the deterministic rules of OverMove: level definitions,
// the half-turn simulation engine and the randomized auto-solver.
// This package is UI-agnostic and performs no I/O.
package core

import (
	"fmt"
	"strings"
)

// Grid and rule constants.
const (
	GridCols = 10 // Default number of columns
	GridRows = 5  // Default number of rows
	MaxMoves = 15 // Maximum queued moves, and maximum solver depth + 1

	// CellUnits is the size of one cell in the legacy raw coordinate space.
	CellUnits = 75
)

// Dir is a player move direction.
type Dir uint8

const (
	DirUp Dir = iota
	DirDown
	DirLeft
	DirRight
	dirCount
)

// AllDirs lists every direction in declaration order.
var AllDirs = [...]Dir{DirUp, DirDown, DirLeft, DirRight}

// dirTable is the total lookup from direction to delta, glyph and code.
var dirTable = [dirCount]struct {
	dx, dy int
	glyph  rune
	code   byte
	name   string
}{
	DirUp:    {0, -1, '⮝', 'U', "Up"},
	DirDown:  {0, 1, '⮟', 'D', "Down"},
	DirLeft:  {-1, 0, '⮜', 'L', "Left"},
	DirRight: {1, 0, '⮞', 'R', "Right"},
}

// Valid reports whether d is one of the four directions.
func (d Dir) Valid() bool {
	return d < dirCount
}

// String returns the direction name.
func (d Dir) String() string {
	if !d.Valid() {
		return "Unknown"
	}
	return dirTable[d].name
}

// Delta returns the (dx, dy) cell offset of the direction.
// Up decreases Y, Down increases Y (screen coordinates).
func (d Dir) Delta() (dx, dy int) {
	if !d.Valid() {
		return 0, 0
	}
	return dirTable[d].dx, dirTable[d].dy
}

// Glyph returns the arrow glyph shown in the move rows.
func (d Dir) Glyph() rune {
	if !d.Valid() {
		return '?'
	}
	return dirTable[d].glyph
}

// Code returns the single-letter code (U, D, L, R).
func (d Dir) Code() byte {
	if !d.Valid() {
		return '?'
	}
	return dirTable[d].code
}

// ParseDir parses a direction from a code, a name or a glyph.
// Matching is case-insensitive.
func ParseDir(s string) (Dir, error) {
	s = strings.TrimSpace(s)
	for d := DirUp; d < dirCount; d++ {
		e := dirTable[d]
		if strings.EqualFold(s, e.name) || strings.EqualFold(s, string(e.code)) || s == string(e.glyph) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// Pos is a grid position in cell units.
// X increases to the right, Y increases downward.
type Pos struct {
	X int
	Y int
}

// P is a convenience constructor for Pos.
func P(x, y int) Pos {
	return Pos{X: x, Y: y}
}

// String returns a string representation of the position.
func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Move returns the position one cell away in the given direction.
func (p Pos) Move(d Dir) Pos {
	dx, dy := d.Delta()
	return Pos{X: p.X + dx, Y: p.Y + dy}
}

// Bounds is the playable area, [0,Cols) x [0,Rows).
type Bounds struct {
	Cols int
	Rows int
}

// DefaultBounds returns the standard 10x5 grid.
func DefaultBounds() Bounds {
	return Bounds{Cols: GridCols, Rows: GridRows}
}

// Contains reports whether p lies inside the grid.
func (b Bounds) Contains(p Pos) bool {
	return p.X >= 0 && p.X < b.Cols && p.Y >= 0 && p.Y < b.Rows
}
