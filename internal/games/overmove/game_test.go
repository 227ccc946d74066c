package overmove

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	platformcore "github.com/vovakirdan/overmove/internal/core"
	"github.com/vovakirdan/overmove/internal/games/overmove/core"
	"github.com/vovakirdan/overmove/internal/games/overmove/levels"
	"github.com/vovakirdan/overmove/internal/games/overmove/levels/formats"
	"github.com/vovakirdan/overmove/internal/storage"
)

type fakeRecorder struct {
	runs   []storage.RunRecord
	solves []storage.SolveRecord
}

func (f *fakeRecorder) SaveRun(r storage.RunRecord) (int64, error) {
	f.runs = append(f.runs, r)
	return int64(len(f.runs)), nil
}

func (f *fakeRecorder) SaveSolve(r storage.SolveRecord) (int64, error) {
	f.solves = append(f.solves, r)
	return int64(len(f.solves)), nil
}

func stationary(p core.Pos) core.Trajectory {
	t := make(core.Trajectory, core.MaxMoves)
	for i := range t {
		t[i] = p
	}
	return t
}

// rowLevel is a 5x1 grid with the player at x=0 and a stationary goal.
func rowLevel(t *testing.T, goalX int, hazardXs ...int) levels.Level {
	t.Helper()
	var hazards []core.Trajectory
	var starts []core.Pos
	for _, x := range hazardXs {
		hazards = append(hazards, stationary(core.P(x, 0)))
		starts = append(starts, core.P(x, 0))
	}
	def, err := core.NewLevel(core.P(0, 0), stationary(core.P(goalX, 0)), hazards,
		core.WithBounds(core.Bounds{Cols: 5, Rows: 1}))
	if err != nil {
		t.Fatalf("NewLevel failed: %v", err)
	}
	return levels.Level{
		ID:           "row",
		Name:         "Row",
		Def:          def,
		GoalStart:    core.P(goalX, 0),
		HazardStarts: starts,
	}
}

// testConfig has no pacing, so every tick executes one transition.
func testConfig() platformcore.RuntimeConfig {
	return platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
}

func newGame(t *testing.T, lvl levels.Level, opts ...Option) *Game {
	t.Helper()
	g := New(lvl, opts...)
	g.Reset(testConfig())
	return g
}

func frame(actions ...platformcore.Action) platformcore.InputFrame {
	f := platformcore.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func steps(g *Game, n int) {
	for i := 0; i < n; i++ {
		g.Step(frame())
	}
}

func TestGameQueueEditing(t *testing.T) {
	g := newGame(t, rowLevel(t, 2))

	g.Step(frame(platformcore.ActionRight, platformcore.ActionDown, platformcore.ActionLeft))
	if got := g.Queue().Codes(); got != "R,D,L" {
		t.Errorf("expected R,D,L, got %s", got)
	}

	g.Step(frame(platformcore.ActionDelete))
	if got := g.Queue().Codes(); got != "R,D" {
		t.Errorf("expected R,D after delete, got %s", got)
	}

	g.Step(frame(platformcore.ActionDelete, platformcore.ActionDelete, platformcore.ActionDelete))
	if len(g.Queue()) != 0 {
		t.Errorf("delete on empty queue should be a no-op, got %v", g.Queue())
	}
}

func TestGameQueueCapped(t *testing.T) {
	g := newGame(t, rowLevel(t, 2))

	for i := 0; i < core.MaxMoves+5; i++ {
		g.Step(frame(platformcore.ActionUp))
	}
	if len(g.Queue()) != core.MaxMoves {
		t.Errorf("expected queue capped at %d, got %d", core.MaxMoves, len(g.Queue()))
	}
}

func TestGameConfirmNeedsMoves(t *testing.T) {
	g := newGame(t, rowLevel(t, 2))

	g.Step(frame(platformcore.ActionConfirm))
	if g.Mode() != ModeInput {
		t.Errorf("empty queue should not start a run, mode %v", g.Mode())
	}
	if g.State().Attempts != 0 {
		t.Errorf("expected no attempts, got %d", g.State().Attempts)
	}
}

func TestGameWinReturnsToMenu(t *testing.T) {
	rec := &fakeRecorder{}
	g := newGame(t, rowLevel(t, 2), WithRecorder(rec))

	g.Step(frame(platformcore.ActionRight, platformcore.ActionRight, platformcore.ActionConfirm))
	if g.Mode() != ModeRunning {
		t.Fatalf("expected running, got %v", g.Mode())
	}

	// Player, cells, player: the second move lands on the goal.
	steps(g, 3)
	if g.Mode() != ModeVictory {
		t.Fatalf("expected victory, got %v", g.Mode())
	}
	if !g.State().Won || g.State().GameOver {
		t.Errorf("expected won but not over yet, got %+v", g.State())
	}

	steps(g, 1)
	if !g.State().GameOver {
		t.Error("expected game over after the victory hold")
	}

	if len(rec.runs) != 1 {
		t.Fatalf("expected 1 recorded run, got %d", len(rec.runs))
	}
	run := rec.runs[0]
	if run.Outcome != "won" || run.Cause != "" || run.MovesPlayed != 2 || run.Moves != "R,R" || run.LevelID != "row" {
		t.Errorf("unexpected run record %+v", run)
	}
	if _, err := uuid.Parse(run.AttemptID); err != nil || run.AttemptID != g.AttemptID() {
		t.Errorf("expected attempt id %s, got %q", g.AttemptID(), run.AttemptID)
	}
}

func TestGameLossFillsMemoryRow(t *testing.T) {
	tests := []struct {
		name      string
		level     func(*testing.T) levels.Level
		moves     []platformcore.Action
		cause     string
		highlight int
	}{
		{
			name:      "out of bounds",
			level:     func(t *testing.T) levels.Level { return rowLevel(t, 2) },
			moves:     []platformcore.Action{platformcore.ActionUp},
			cause:     "out of bounds",
			highlight: 0,
		},
		{
			name:      "hazard",
			level:     func(t *testing.T) levels.Level { return rowLevel(t, 3, 2) },
			moves:     []platformcore.Action{platformcore.ActionRight, platformcore.ActionRight},
			cause:     "hazard",
			highlight: 1,
		},
		{
			name:      "moves exhausted",
			level:     func(t *testing.T) levels.Level { return rowLevel(t, 4) },
			moves:     []platformcore.Action{platformcore.ActionRight},
			cause:     "moves exhausted",
			highlight: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := &fakeRecorder{}
			g := newGame(t, tc.level(t), WithRecorder(rec))

			g.Step(frame(append(tc.moves, platformcore.ActionConfirm)...))
			for i := 0; i < 10 && g.Mode() == ModeRunning; i++ {
				steps(g, 1)
			}
			if g.Mode() != ModeDefeat {
				t.Fatalf("expected defeat, got %v", g.Mode())
			}

			memory, hl, note := g.Memory()
			if len(memory) != len(tc.moves) || hl != tc.highlight || note != "" {
				t.Errorf("unexpected memory row %v highlight %d note %q", memory, hl, note)
			}
			if len(g.Queue()) != 0 {
				t.Errorf("input row should be cleared, got %v", g.Queue())
			}

			// Defeat hold ends back in input mode
			steps(g, 1)
			if g.Mode() != ModeInput || g.State().GameOver {
				t.Errorf("expected restart in input mode, got %v %+v", g.Mode(), g.State())
			}

			if len(rec.runs) != 1 || rec.runs[0].Outcome != "lost" || rec.runs[0].Cause != tc.cause {
				t.Errorf("unexpected run records %+v", rec.runs)
			}
		})
	}
}

func TestGamePacing(t *testing.T) {
	g := newGame(t, rowLevel(t, 4))
	cfg := testConfig()
	cfg.HalfTurnDelay = 100 * time.Millisecond // 6 ticks at 60 Hz
	g.Reset(cfg)

	g.Step(frame(platformcore.ActionRight, platformcore.ActionRight, platformcore.ActionConfirm))
	steps(g, 1)
	if g.LastHalfTurn().Kind != core.HalfTurnPlayer {
		t.Fatalf("expected player half-turn, got %v", g.LastHalfTurn().Kind)
	}

	steps(g, 5)
	if g.LastHalfTurn().Kind != core.HalfTurnPlayer {
		t.Errorf("cell half-turn came early")
	}

	steps(g, 1)
	if g.LastHalfTurn().Kind != core.HalfTurnCells {
		t.Errorf("expected cell half-turn after 6 ticks, got %v", g.LastHalfTurn().Kind)
	}
}

func TestGameIgnoresInputWhileRunning(t *testing.T) {
	cfg := testConfig()
	cfg.HalfTurnDelay = time.Second
	g := newGame(t, rowLevel(t, 4))
	g.Reset(cfg)

	g.Step(frame(platformcore.ActionRight, platformcore.ActionConfirm))
	g.Step(frame(platformcore.ActionLeft, platformcore.ActionDelete))
	if got := g.Queue().Codes(); got != "R" {
		t.Errorf("queue edited during run: %s", got)
	}
}

func TestGameRestartClearsRows(t *testing.T) {
	g := newGame(t, rowLevel(t, 2))

	g.Step(frame(platformcore.ActionUp, platformcore.ActionConfirm))
	steps(g, 2)
	if mem, _, _ := g.Memory(); len(mem) == 0 {
		t.Fatal("expected memory row after loss")
	}

	g.Step(frame(platformcore.ActionRight, platformcore.ActionRestart))
	mem, hl, note := g.Memory()
	if len(mem) != 0 || hl != -1 || note != "" || len(g.Queue()) != 0 {
		t.Errorf("restart should clear rows, got queue %v memory %v %d %q", g.Queue(), mem, hl, note)
	}
}

func TestGameSolveWritesMemoryRow(t *testing.T) {
	rec := &fakeRecorder{}
	g := newGame(t, rowLevel(t, 3), WithRecorder(rec))

	g.Step(frame(platformcore.ActionSolve))

	path, hl, note := g.Memory()
	if note != "" || hl != -1 || len(path) == 0 {
		t.Fatalf("expected a path in the memory row, got %v %d %q", path, hl, note)
	}
	report, err := core.Replay(g.level.Def, path)
	if err != nil {
		t.Fatalf("Replay failed: %v", err)
	}
	if report.Outcome != core.OutcomeWon {
		t.Errorf("solver path %s does not win: %+v", path.Codes(), report)
	}
	if g.Mode() != ModeInput || len(g.Queue()) != 0 {
		t.Errorf("solve should not touch the queue or start a run")
	}

	if len(rec.solves) != 1 {
		t.Fatalf("expected 1 solve record, got %d", len(rec.solves))
	}
	if s := rec.solves[0]; !s.Found || s.Path != path.Codes() || s.Explored == 0 || s.AttemptID != g.AttemptID() {
		t.Errorf("unexpected solve record %+v", s)
	}
}

func TestGameSolveNoPath(t *testing.T) {
	def, err := core.NewLevel(core.P(0, 0), stationary(core.P(19, 0)), nil,
		core.WithBounds(core.Bounds{Cols: 20, Rows: 1}))
	if err != nil {
		t.Fatalf("NewLevel failed: %v", err)
	}
	rec := &fakeRecorder{}
	g := newGame(t, levels.Level{ID: "far", Name: "Far", Def: def, GoalStart: core.P(19, 0)}, WithRecorder(rec))

	g.Step(frame(platformcore.ActionSolve))

	path, _, note := g.Memory()
	if len(path) != 0 || note != NoPathNote {
		t.Errorf("expected %q, got path %v note %q", NoPathNote, path, note)
	}
	if len(rec.solves) != 1 || rec.solves[0].Found || rec.solves[0].Path != "" {
		t.Errorf("unexpected solve records %+v", rec.solves)
	}
}

func TestGameBackLeaves(t *testing.T) {
	g := newGame(t, rowLevel(t, 2))
	g.Step(frame(platformcore.ActionBack))
	if !g.State().GameOver || g.State().Won {
		t.Errorf("expected game over without a win, got %+v", g.State())
	}
}

func TestGameResetStartsNewAttempt(t *testing.T) {
	g := newGame(t, rowLevel(t, 2))
	first := g.AttemptID()

	g.Step(frame(platformcore.ActionRight, platformcore.ActionConfirm))
	g.Reset(testConfig())

	if g.AttemptID() == first {
		t.Error("expected a fresh attempt id")
	}
	if g.Mode() != ModeInput || g.State().Attempts != 0 || len(g.Queue()) != 0 {
		t.Errorf("unexpected state after reset: %v %+v", g.Mode(), g.State())
	}
}

func TestComputeLayout(t *testing.T) {
	tests := []struct {
		name         string
		bounds       core.Bounds
		w, h         int
		cellW, cellH int
		board        platformcore.Rect
		tooSmall     bool
	}{
		{"default grid", core.DefaultBounds(), 80, 24, 6, 3, platformcore.NewRect(9, 2, 62, 17), false},
		{"narrow terminal", core.DefaultBounds(), 44, 24, 4, 3, platformcore.NewRect(1, 2, 42, 17), false},
		{"short terminal", core.DefaultBounds(), 80, 15, 6, 1, platformcore.NewRect(9, 2, 62, 7), false},
		{"too small", core.DefaultBounds(), 20, 10, 0, 0, platformcore.Rect{}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := computeLayout(tc.bounds, tc.w, tc.h)
			if l.tooSmall != tc.tooSmall {
				t.Fatalf("tooSmall = %v, want %v", l.tooSmall, tc.tooSmall)
			}
			if tc.tooSmall {
				return
			}
			if l.cellW != tc.cellW || l.cellH != tc.cellH || l.board != tc.board {
				t.Errorf("got cell %dx%d board %+v", l.cellW, l.cellH, l.board)
			}
		})
	}
}

func TestRenderDisplayStart(t *testing.T) {
	lvl := rowLevel(t, 2, 3)
	lvl.GoalStart = core.P(4, 0)
	lvl.HazardStarts = []core.Pos{core.P(1, 0)}
	g := newGame(t, lvl)

	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)

	at := func(p core.Pos) platformcore.Cell {
		x, y := g.layout.cellRect(p).Center()
		return screen.GetCell(x, y)
	}

	if c := at(core.P(0, 0)); c.Rune != '█' || c.Color != colorPlayer {
		t.Errorf("expected player at start, got %+v", c)
	}
	if c := at(core.P(4, 0)); c.Color != colorGoal {
		t.Errorf("expected goal at its display start, got %+v", c)
	}
	if c := at(core.P(1, 0)); c.Color != colorHazard {
		t.Errorf("expected hazard at its display start, got %+v", c)
	}
	if c := at(core.P(2, 0)); c.Rune != '·' {
		t.Errorf("goal track cell should be empty before the run, got %+v", c)
	}
	if !strings.Contains(screen.Row(0), "OverMove | Row") {
		t.Errorf("missing HUD, got %q", screen.Row(0))
	}
}

func TestRenderHint(t *testing.T) {
	lvl := rowLevel(t, 2)
	lvl.Hints = []formats.Hint{{Pos: core.P(3, 0), Glyph: "⮜", Color: "red", Side: formats.SideLeft}}
	g := newGame(t, lvl)

	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)

	rect := g.layout.cellRect(core.P(3, 0))
	_, cy := rect.Center()
	c := screen.GetCell(rect.X, cy)
	if c.Rune != '⮜' || c.Color != platformcore.ColorRed {
		t.Errorf("expected red hint on the left edge, got %+v", c)
	}
}

func TestRenderMemoryHighlight(t *testing.T) {
	g := newGame(t, rowLevel(t, 3, 2))

	g.Step(frame(platformcore.ActionRight, platformcore.ActionRight, platformcore.ActionConfirm))
	steps(g, 3)

	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Run lost") {
		t.Error("expected defeat overlay")
	}

	steps(g, 1)
	g.Render(screen)

	y := g.layout.board.Bottom() + 2
	x := g.layout.board.X + 8
	if c := screen.GetCell(x, y); c.Rune != '⮞' || c.Reverse {
		t.Errorf("first memory move should be plain, got %+v", c)
	}
	if c := screen.GetCell(x+2, y); c.Rune != '⮞' || !c.Reverse || c.Color != platformcore.ColorRed {
		t.Errorf("failed move should be highlighted, got %+v", c)
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := newGame(t, rowLevel(t, 2))
	g.Resize(6, 6)

	screen := platformcore.NewScreen(30, 8)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Errorf("expected too-small overlay, got\n%s", screen.String())
	}
}
