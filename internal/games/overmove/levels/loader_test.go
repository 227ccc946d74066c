package levels_test

import (
	"math/rand"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/vovakirdan/overmove/internal/games/overmove/core"
	"github.com/vovakirdan/overmove/internal/games/overmove/levels"
	"github.com/vovakirdan/overmove/internal/games/overmove/levels/formats"
)

// getTestdataPath returns path to testdata/levels.
func getTestdataPath() string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "testdata", "levels")
}

func TestLoaderLoadAll(t *testing.T) {
	loader := levels.NewLoader(getTestdataPath())

	lvls, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	if len(lvls) != 2 {
		t.Fatalf("expected 2 levels, got %d", len(lvls))
	}
	if lvls[0].ID != "bonus" || lvls[1].ID != "corridor" {
		t.Errorf("unexpected order: %s, %s", lvls[0].ID, lvls[1].ID)
	}
}

func TestLoaderLegacyJSON(t *testing.T) {
	loader := levels.NewLoader(getTestdataPath())

	lvl, err := loader.LoadByID("corridor")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}

	if lvl.Name != "corridor" {
		t.Errorf("expected name from file, got %q", lvl.Name)
	}
	if lvl.Def.Start() != core.P(0, 2) {
		t.Errorf("expected start (0,2), got %v", lvl.Def.Start())
	}
	if lvl.Def.GoalAt(0) != core.P(5, 2) {
		t.Errorf("expected goal (5,2), got %v", lvl.Def.GoalAt(0))
	}
	if len(lvl.HazardStarts) != 1 || lvl.HazardStarts[0] != core.P(3, 1) {
		t.Errorf("unexpected hazard starts %v", lvl.HazardStarts)
	}
	if len(lvl.Hints) != 2 {
		t.Fatalf("expected 2 hints, got %d", len(lvl.Hints))
	}
	if lvl.Hints[0].Side != formats.SideDown || lvl.Hints[1].Side != formats.SideCenter {
		t.Errorf("unexpected hint sides %v, %v", lvl.Hints[0].Side, lvl.Hints[1].Side)
	}

	r, err := core.Replay(lvl.Def, core.Path{core.DirRight, core.DirRight, core.DirRight, core.DirRight, core.DirRight})
	if err != nil {
		t.Fatalf("Replay failed: %v", err)
	}
	if r.Outcome != core.OutcomeWon {
		t.Errorf("expected won, got %v (%v)", r.Outcome, r.Cause)
	}
}

func TestLoaderYAMLWithSize(t *testing.T) {
	loader := levels.NewLoader(getTestdataPath())

	lvl, err := loader.LoadByID("bonus")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}

	if lvl.Name != "Bonus Room" {
		t.Errorf("expected name 'Bonus Room', got %q", lvl.Name)
	}
	if b := lvl.Def.Bounds(); b.Cols != 6 || b.Rows != 3 {
		t.Errorf("expected 6x3, got %dx%d", b.Cols, b.Rows)
	}
	if n := len(lvl.Def.Goal()); n != core.MaxMoves {
		t.Errorf("expected cycled goal of %d entries, got %d", core.MaxMoves, n)
	}
	if lvl.GoalStart != core.P(4, 2) {
		t.Errorf("expected goal drawn at last entry (4,2), got %v", lvl.GoalStart)
	}
	if lvl.Metadata["author"] != "test" {
		t.Errorf("expected metadata author, got %v", lvl.Metadata)
	}
	if !strings.HasSuffix(lvl.FilePath, filepath.Join("extra", "bonus.yaml")) {
		t.Errorf("unexpected file path %q", lvl.FilePath)
	}
}

func TestLoaderIdempotent(t *testing.T) {
	loader := levels.NewLoader(getTestdataPath())

	a, err := loader.LoadByID("bonus")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}
	b, err := loader.LoadByID("bonus")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}

	if a.Def.Start() != b.Def.Start() || a.Def.Bounds() != b.Def.Bounds() {
		t.Error("start or bounds differ between loads")
	}
	ga, gb := a.Def.Goal(), b.Def.Goal()
	for i := range ga {
		if ga[i] != gb[i] {
			t.Errorf("goal entry %d differs: %v vs %v", i, ga[i], gb[i])
		}
	}
}

func TestLoaderRejectsMalformed(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    string
	}{
		{
			name:    "short goal",
			file:    "short.yaml",
			content: "id: short\nstart: [0, 0]\ngoal:\n  path: [[1, 0], [2, 0]]\n",
			want:    core.CodeShortTrajectory,
		},
		{
			name:    "goal outside grid",
			file:    "outside.yaml",
			content: "id: outside\nstart: [0, 0]\ngoal:\n  path: [[10, 0]]\n  cycle: true\n",
			want:    core.CodeOutOfBounds,
		},
		{
			name:    "bad point",
			file:    "point.yaml",
			content: "id: point\nstart: [0]\ngoal:\n  path: [[1, 0]]\n  cycle: true\n",
			want:    "position must be",
		},
		{
			name:    "raw coordinate off grid",
			file:    "raw.json",
			content: `{"Player_Starter_Coo": [10, 0], "Victory_Cell_Move": [], "Red_Cells_Move": []}`,
			want:    "not a multiple of 75",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, tc.file), []byte(tc.content), 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}

			_, err := levels.NewLoader(dir).LoadAll()
			if err == nil {
				t.Fatal("expected load error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestLoaderRejectsDuplicateIDs(t *testing.T) {
	dir := t.TempDir()
	content := "id: same\nstart: [0, 0]\ngoal:\n  path: [[1, 0]]\n  cycle: true\n"
	for _, name := range []string{"a.yaml", "b.yml"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	if _, err := levels.NewLoader(dir).LoadAll(); err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("expected duplicate id error, got %v", err)
	}
}

func TestLoaderIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not a level"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	ids, err := levels.NewLoader(dir).ListIDs()
	if err != nil {
		t.Fatalf("ListIDs failed: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("expected no levels, got %v", ids)
	}
}

func TestLoaderLoadFile(t *testing.T) {
	path := filepath.Join(getTestdataPath(), "corridor.json")

	lvl, err := levels.Builtin().LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if lvl.ID != "corridor" {
		t.Errorf("expected ID 'corridor', got %q", lvl.ID)
	}

	if _, err := levels.Builtin().LoadFile(filepath.Join(getTestdataPath(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoaderLoadByIDMissing(t *testing.T) {
	if _, err := levels.NewLoader(getTestdataPath()).LoadByID("nope"); err == nil {
		t.Error("expected not found error")
	}
}

func TestBuiltinPack(t *testing.T) {
	lvls, err := levels.Builtin().LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	want := []string{"01", "02", "03", "04", "05", "06"}
	if len(lvls) != len(want) {
		t.Fatalf("expected %d built-in levels, got %d", len(want), len(lvls))
	}

	for i, lvl := range lvls {
		t.Run(lvl.ID, func(t *testing.T) {
			if lvl.ID != want[i] {
				t.Errorf("expected ID %s, got %s", want[i], lvl.ID)
			}
			if lvl.Name == lvl.ID {
				t.Errorf("level %s has no display name", lvl.ID)
			}
			if len(lvl.HazardStarts) != lvl.Def.HazardCount() {
				t.Errorf("hazard starts %d, hazards %d", len(lvl.HazardStarts), lvl.Def.HazardCount())
			}

			res := core.Solve(lvl.Def, rand.New(rand.NewSource(1)))
			if !res.Found {
				t.Fatalf("level %s is not solvable", lvl.ID)
			}
			r, err := core.Replay(lvl.Def, res.Path)
			if err != nil {
				t.Fatalf("Replay failed: %v", err)
			}
			if r.Outcome != core.OutcomeWon {
				t.Errorf("solver path %s does not win level %s", res.Path.Codes(), lvl.ID)
			}
		})
	}
}

func TestBuiltinFirstLevelStraightRun(t *testing.T) {
	lvl, err := levels.Builtin().LoadByID("01")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}

	path, err := core.ParsePath("RRRRR")
	if err != nil {
		t.Fatalf("ParsePath failed: %v", err)
	}
	r, err := core.Replay(lvl.Def, path)
	if err != nil {
		t.Fatalf("Replay failed: %v", err)
	}
	if r.Outcome != core.OutcomeWon || r.MovesPlayed != 5 {
		t.Errorf("expected win after 5 moves, got %v after %d", r.Outcome, r.MovesPlayed)
	}
}
