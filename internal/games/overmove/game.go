// Package overmove provides the playable OverMove level: move queue editing,
// the paced half-turn run, the memory row and the auto-solve display.
package overmove

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	platformcore "github.com/vovakirdan/overmove/internal/core"
	"github.com/vovakirdan/overmove/internal/games/overmove/core"
	"github.com/vovakirdan/overmove/internal/games/overmove/levels"
	"github.com/vovakirdan/overmove/internal/storage"
)

// Mode is the phase of the level session.
type Mode uint8

const (
	ModeInput   Mode = iota // Player edits the move queue
	ModeRunning             // Engine advances one half-turn per delay
	ModeVictory             // Victory overlay, then back to the menu
	ModeDefeat              // Defeat flash, then back to input
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeInput:
		return "input"
	case ModeRunning:
		return "running"
	case ModeVictory:
		return "victory"
	case ModeDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// NoPathNote is shown in the memory row when the solver finds nothing.
const NoPathNote = "no path found"

// Recorder persists finished runs and solver invocations.
// *storage.Store satisfies it.
type Recorder interface {
	SaveRun(storage.RunRecord) (int64, error)
	SaveSolve(storage.SolveRecord) (int64, error)
}

// Option configures a Game.
type Option func(*Game)

// WithRecorder stores every finished run and solve.
func WithRecorder(r Recorder) Option {
	return func(g *Game) {
		g.recorder = r
	}
}

// Game is one level session.
type Game struct {
	level    levels.Level
	recorder Recorder
	cfg      platformcore.RuntimeConfig
	rng      *rand.Rand

	attemptID string
	attempts  int

	mode   Mode
	queue  core.Path
	engine *core.Engine
	last   core.HalfTurn
	wait   int // Ticks left before the next transition

	// Memory row: the moves of the last lost run or the solver's path.
	memory    core.Path
	highlight int // Index into memory of the failed move, -1 for none
	note      string

	won      bool
	gameOver bool

	layout layout
}

// New creates a game for a loaded level.
func New(level levels.Level, opts ...Option) *Game {
	g := &Game{
		level:     level,
		highlight: -1,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.Reset(platformcore.DefaultConfig())
	return g
}

// ID returns the level identifier.
func (g *Game) ID() string {
	return g.level.ID
}

// Title returns the level name.
func (g *Game) Title() string {
	return g.level.Name
}

// Reset starts a fresh session of the level with a new attempt ID.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.cfg = cfg
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.attemptID = uuid.NewString()
	g.attempts = 0
	g.mode = ModeInput
	g.queue = nil
	g.engine = nil
	g.last = core.HalfTurn{}
	g.wait = 0
	g.memory = nil
	g.highlight = -1
	g.note = ""
	g.won = false
	g.gameOver = false
	g.layout = computeLayout(g.level.Def.Bounds(), cfg.ScreenW, cfg.ScreenH)
}

// Resize adapts the layout to a new screen size without losing progress.
func (g *Game) Resize(w, h int) {
	g.cfg.ScreenW = w
	g.cfg.ScreenH = h
	g.layout = computeLayout(g.level.Def.Bounds(), w, h)
}

// Step advances the session by one tick.
func (g *Game) Step(input platformcore.InputFrame) platformcore.StepResult {
	if g.gameOver {
		return platformcore.StepResult{State: g.State()}
	}

	if input.Has(platformcore.ActionBack) {
		g.gameOver = true
		return platformcore.StepResult{State: g.State()}
	}

	switch g.mode {
	case ModeInput:
		for _, a := range input.Actions {
			g.handleInput(a)
			if g.mode != ModeInput {
				break
			}
		}
	case ModeRunning:
		if g.wait > 0 {
			g.wait--
			break
		}
		g.advance()
	case ModeVictory:
		if g.wait > 0 {
			g.wait--
			break
		}
		g.gameOver = true
	case ModeDefeat:
		if g.wait > 0 {
			g.wait--
			break
		}
		g.mode = ModeInput
		g.engine = nil
		g.last = core.HalfTurn{}
	}

	return platformcore.StepResult{State: g.State()}
}

// handleInput applies one action while the queue is being edited.
func (g *Game) handleInput(a platformcore.Action) {
	switch a {
	case platformcore.ActionUp:
		g.enqueue(core.DirUp)
	case platformcore.ActionDown:
		g.enqueue(core.DirDown)
	case platformcore.ActionLeft:
		g.enqueue(core.DirLeft)
	case platformcore.ActionRight:
		g.enqueue(core.DirRight)
	case platformcore.ActionDelete:
		if len(g.queue) > 0 {
			g.queue = g.queue[:len(g.queue)-1]
		}
	case platformcore.ActionRestart:
		g.queue = nil
		g.memory = nil
		g.highlight = -1
		g.note = ""
	case platformcore.ActionSolve:
		g.solve()
	case platformcore.ActionConfirm:
		g.start()
	}
}

// enqueue appends a move; keys beyond the maximum are ignored.
func (g *Game) enqueue(d core.Dir) {
	if len(g.queue) >= core.MaxMoves {
		return
	}
	g.queue = append(g.queue, d)
}

// start begins a run with the current queue. An empty queue is ignored.
func (g *Game) start() {
	if len(g.queue) == 0 {
		return
	}
	engine, err := core.NewEngine(g.level.Def, g.queue)
	if err != nil {
		// The queue is capped at MaxMoves, so this only fires on a broken level.
		g.note = err.Error()
		return
	}
	g.engine = engine
	g.last = core.HalfTurn{}
	g.attempts++
	g.mode = ModeRunning
	g.wait = 0
}

// advance executes one half-turn and handles the end of the run.
func (g *Game) advance() {
	g.last = g.engine.Advance()

	switch g.last.Outcome {
	case core.OutcomeWon:
		g.won = true
		g.record()
		g.mode = ModeVictory
		g.hold(g.cfg.VictoryHold)
	case core.OutcomeLost:
		g.record()
		g.memory = g.queue
		g.highlight = g.engine.LastMove()
		g.note = ""
		g.queue = nil
		g.mode = ModeDefeat
		g.hold(g.cfg.DefeatHold)
	default:
		g.hold(g.cfg.HalfTurnDelay)
	}
}

// hold waits d before the next transition. The current tick counts as one.
func (g *Game) hold(d time.Duration) {
	g.wait = platformcore.Max(g.cfg.Ticks(d)-1, 0)
}

// solve runs the auto-solver once and shows the result in the memory row.
// A failed search is reported, never retried.
func (g *Game) solve() {
	seed := g.rng.Int63()
	started := time.Now()
	res := core.NewSolver(g.level.Def, rand.New(rand.NewSource(seed))).Solve()
	elapsed := time.Since(started)

	g.highlight = -1
	if res.Found {
		g.memory = res.Path
		g.note = ""
	} else {
		g.memory = nil
		g.note = NoPathNote
	}

	if g.recorder != nil {
		//nolint:errcheck // Best-effort save, game continues regardless
		g.recorder.SaveSolve(storage.SolveRecord{
			AttemptID: g.attemptID,
			LevelID:   g.level.ID,
			Seed:      seed,
			Found:     res.Found,
			Path:      res.Path.Codes(),
			Explored:  res.Explored,
			Duration:  elapsed,
		})
	}
}

// record stores the finished run.
func (g *Game) record() {
	if g.recorder == nil {
		return
	}
	report := g.engine.Report()
	cause := ""
	if report.Outcome == core.OutcomeLost {
		cause = report.Cause.String()
	}
	//nolint:errcheck // Best-effort save, game continues regardless
	g.recorder.SaveRun(storage.RunRecord{
		AttemptID:   g.attemptID,
		LevelID:     g.level.ID,
		Outcome:     report.Outcome.String(),
		Cause:       cause,
		Step:        report.Step,
		MovesPlayed: report.MovesPlayed,
		Moves:       g.queue.Codes(),
	})
}

// State returns the current session state.
func (g *Game) State() platformcore.GameState {
	return platformcore.GameState{
		Attempts: g.attempts,
		Won:      g.won,
		GameOver: g.gameOver,
	}
}

// Mode returns the session phase.
func (g *Game) Mode() Mode {
	return g.mode
}

// Queue returns a copy of the moves being edited.
func (g *Game) Queue() core.Path {
	return append(core.Path(nil), g.queue...)
}

// Memory returns the memory row, the index of the highlighted move
// (-1 for none) and the note shown instead of moves, if any.
func (g *Game) Memory() (core.Path, int, string) {
	return append(core.Path(nil), g.memory...), g.highlight, g.note
}

// AttemptID identifies this session in the history store.
func (g *Game) AttemptID() string {
	return g.attemptID
}

// LastHalfTurn returns the most recent half-turn of the current run.
func (g *Game) LastHalfTurn() core.HalfTurn {
	return g.last
}

// cells returns the goal and hazard positions to draw. Before a run starts
// they sit at their display-only starting cells.
func (g *Game) cells() (core.Pos, []core.Pos, core.Pos) {
	if g.engine == nil {
		return g.level.GoalStart, g.level.HazardStarts, g.level.Def.Start()
	}
	return g.engine.Goal(), g.engine.Hazards(), g.engine.Player()
}
