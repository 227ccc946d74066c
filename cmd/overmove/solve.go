package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/overmove/internal/games/overmove/core"
	"github.com/vovakirdan/overmove/internal/storage"
)

var (
	flagAttempts      int
	flagSolveNoRecord bool
)

var solveCmd = &cobra.Command{
	Use:   "solve <level>",
	Short: "Run the auto-solver on a level",
	Long: `Search for a winning move queue. Each attempt draws a fresh seed
from --seed, so a fixed seed reproduces the whole sequence. A found
path is replayed through the engine before it is printed.

Examples:
  overmove solve 01
  overmove solve 05 --attempts 5
  overmove solve 05 --attempts 5 --seed 42`,
	Args: cobra.ExactArgs(1),
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().IntVar(&flagAttempts, "attempts", 0, "Solver attempts (0 = config value)")
	solveCmd.Flags().BoolVar(&flagSolveNoRecord, "no-record", false, "Do not store the solves in the history")
}

func runSolve(_ *cobra.Command, args []string) error {
	level, err := loadLevel(args[0])
	if err != nil {
		return err
	}

	attempts := flagAttempts
	if attempts <= 0 {
		attempts = cfg.Solver.Attempts
	}
	seed := flagSeed
	if seed == 0 {
		seed = cfg.Solver.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var store *storage.Store
	if !flagSolveNoRecord {
		store = openStore()
		defer closeStore(store)
	}

	theme := outputTheme()
	attemptID := uuid.NewString()
	seeds := rand.New(rand.NewSource(seed))

	fmt.Printf("%s - %s (seed %d)\n\n", level.ID, level.Name, seed)

	for i := 1; i <= attempts; i++ {
		attemptSeed := seeds.Int63()
		start := time.Now()
		res := core.NewSolver(level.Def, rand.New(rand.NewSource(attemptSeed))).Solve()
		elapsed := time.Since(start)

		logger.Debug("solve attempt", "level", level.ID, "attempt", i, "seed", attemptSeed,
			"found", res.Found, "explored", res.Explored, "duration", elapsed)

		if store != nil {
			if _, err := store.SaveSolve(storage.SolveRecord{
				AttemptID: attemptID,
				LevelID:   level.ID,
				Seed:      attemptSeed,
				Found:     res.Found,
				Path:      res.Path.Codes(),
				Explored:  res.Explored,
				Duration:  elapsed,
			}); err != nil {
				logger.Warn("could not record solve", "level", level.ID, "error", err)
			}
		}

		if !res.Found {
			fmt.Printf("attempt %d: %s (%d frames)\n", i, theme.Lost.Render("no path found"), res.Explored)
			continue
		}

		report, err := core.Replay(level.Def, res.Path)
		if err != nil {
			return fmt.Errorf("replay solver path: %w", err)
		}
		if report.Outcome != core.OutcomeWon {
			return fmt.Errorf("solver path %s does not win: %s at step %d", res.Path.Codes(), report.Cause, report.Step)
		}

		fmt.Printf("attempt %d: %s (%d frames, %s)\n", i, theme.Won.Render("found"), res.Explored, elapsed.Round(time.Microsecond))
		fmt.Printf("\n  %s\n  %s\n", theme.Move.Render(res.Path.String()), res.Path.Codes())
		return nil
	}

	return fmt.Errorf("no path found after %d attempts", attempts)
}
