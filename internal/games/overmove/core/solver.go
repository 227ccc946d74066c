package core

import (
	"math/rand"

	"github.com/zyedidia/generic/mapset"
)

// SolveResult is the outcome of one solver invocation.
// Found is false when the search was exhausted; that is a normal result,
// not an error, and the caller decides whether to try again.
type SolveResult struct {
	Path     Path
	Found    bool
	Explored int // Search frames evaluated
}

// Solver searches for a winning path with randomized depth-bounded
// backtracking. It shares no state with any Engine.
type Solver struct {
	level    *Level
	rng      *rand.Rand
	visited  [MaxMoves]mapset.Set[Pos]
	trail    []Dir
	explored int
}

// NewSolver creates a solver. The rng drives the branch order; a fixed seed
// makes the search reproducible.
func NewSolver(level *Level, rng *rand.Rand) *Solver {
	return &Solver{
		level: level,
		rng:   rng,
		trail: make([]Dir, 0, MaxMoves),
	}
}

// Solve runs one complete search from the level start.
func (s *Solver) Solve() SolveResult {
	for i := range s.visited {
		s.visited[i] = mapset.New[Pos]()
	}
	s.trail = s.trail[:0]
	s.explored = 0

	if !s.root() {
		return SolveResult{Explored: s.explored}
	}

	path := make(Path, len(s.trail))
	copy(path, s.trail)
	return SolveResult{Path: path, Found: true, Explored: s.explored}
}

// root evaluates the start cell before any move, at trajectory index -1.
// A start already on the goal is an empty winning path. Only index -1
// counts: the idle half-turn that replays an empty queue checks no other.
func (s *Solver) root() bool {
	start := s.level.Start()
	s.explored++

	if s.level.isGoal(start, -1) {
		return true
	}
	if s.level.isHazard(start, -2) || s.level.isHazard(start, -1) {
		return false
	}
	return s.expand(start, 0)
}

// frame evaluates the cell reached by the move taken at depth d.
//
// The search has no half-turns, so both adjacent trajectory indices are
// tested: index d-1 is where the cells sit during the player's move, index d
// is where they sit after the cells advance.
func (s *Solver) frame(pos Pos, d int) bool {
	s.explored++

	// Reaching the goal after the cells advance only counts if the player
	// survived its own half-turn first.
	if s.level.isGoal(pos, d-1) || (s.level.isGoal(pos, d) && !s.level.isHazard(pos, d-1)) {
		return true
	}

	if d >= MaxMoves-1 ||
		!s.level.bounds.Contains(pos) ||
		s.level.isHazard(pos, d-1) ||
		s.level.isHazard(pos, d) ||
		s.visited[d].Has(pos) {
		return false
	}

	s.visited[d].Put(pos)
	return s.expand(pos, d+1)
}

// expand tries the four moves from pos in uniformly random order,
// stopping at the first child that reaches the goal.
func (s *Solver) expand(pos Pos, d int) bool {
	var buf [4]Dir
	remaining := append(buf[:0], DirDown, DirUp, DirRight, DirLeft)

	for len(remaining) > 0 {
		i := 0
		if len(remaining) > 1 {
			i = s.rng.Intn(len(remaining))
		}
		move := remaining[i]
		remaining = append(remaining[:i], remaining[i+1:]...)

		s.trail = append(s.trail, move)
		if s.frame(pos.Move(move), d) {
			return true
		}
		s.trail = s.trail[:len(s.trail)-1]
	}
	return false
}

// Solve is a convenience wrapper creating a one-shot solver.
func Solve(level *Level, rng *rand.Rand) SolveResult {
	return NewSolver(level, rng).Solve()
}
