package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/overmove/internal/games/overmove/core"
	"github.com/vovakirdan/overmove/internal/platform/tui"
	"github.com/vovakirdan/overmove/internal/storage"
)

var (
	flagMoves    string
	flagNoRecord bool
)

var runCmd = &cobra.Command{
	Use:   "run <level>",
	Short: "Play a move queue without the UI",
	Long: `Run a queue of moves through the level with no pacing and print
every half-turn. Moves may be letter codes, words or arrow glyphs.

Examples:
  overmove run 01 --moves R,R,D,D
  overmove run 02 --moves "up up right"
  overmove run 03 --moves RRDD --no-record`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagMoves, "moves", "", "Moves to play, e.g. R,R,D")
	runCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not store the run in the history")
}

func runRun(_ *cobra.Command, args []string) error {
	level, err := loadLevel(args[0])
	if err != nil {
		return err
	}

	moves, err := core.ParsePath(flagMoves)
	if err != nil {
		return err
	}

	engine, err := core.NewEngine(level.Def, moves)
	if err != nil {
		return err
	}

	theme := outputTheme()
	fmt.Printf("%s - %s\n", level.ID, level.Name)
	fmt.Printf("Moves: %s (%d)\n\n", theme.Move.Render(moves.String()), len(moves))

	for {
		ht := engine.Advance()
		if ht.Kind == core.HalfTurnNone {
			break
		}
		fmt.Println(formatHalfTurn(ht, engine, theme))
		if ht.Outcome != core.OutcomeContinue {
			break
		}
	}

	report := engine.Report()
	fmt.Println()
	fmt.Println(formatReport(report, theme))

	logger.Debug("run finished", "level", level.ID, "outcome", report.Outcome, "step", report.Step)

	if flagNoRecord {
		return nil
	}
	store := openStore()
	defer closeStore(store)
	if store == nil {
		return nil
	}

	cause := ""
	if report.Outcome == core.OutcomeLost {
		cause = report.Cause.String()
	}
	if _, err := store.SaveRun(storage.RunRecord{
		AttemptID:   uuid.NewString(),
		LevelID:     level.ID,
		Outcome:     report.Outcome.String(),
		Cause:       cause,
		Step:        report.Step,
		MovesPlayed: report.MovesPlayed,
		Moves:       moves.Codes(),
	}); err != nil {
		logger.Warn("could not record run", "level", level.ID, "error", err)
	}
	return nil
}

// formatHalfTurn renders one half-turn as a line of the run log.
func formatHalfTurn(ht core.HalfTurn, e *core.Engine, theme tui.Theme) string {
	var what string
	switch ht.Kind {
	case core.HalfTurnPlayer:
		what = fmt.Sprintf("player %c to %s", ht.Move.Glyph(), theme.Player.Render(ht.Player.String()))
	case core.HalfTurnCells:
		what = fmt.Sprintf("goal to %s, hazards to %s",
			theme.Goal.Render(e.Goal().String()), theme.Hazard.Render(fmt.Sprint(e.Hazards())))
	case core.HalfTurnIdle:
		what = fmt.Sprintf("no moves, player stays at %s", theme.Player.Render(ht.Player.String()))
	}

	line := fmt.Sprintf("step %2d  %-6s  %s", ht.Step, ht.Kind, what)
	if ht.Outcome != core.OutcomeContinue {
		line += "  " + theme.OutcomeStyle(ht.Outcome.String()).Render(ht.Outcome.String())
	}
	return line
}

// formatReport renders the final outcome.
func formatReport(r core.Report, theme tui.Theme) string {
	style := theme.OutcomeStyle(r.Outcome.String())
	switch r.Outcome {
	case core.OutcomeWon:
		return style.Render(fmt.Sprintf("Won in %d moves", r.MovesPlayed))
	case core.OutcomeLost:
		return style.Render(fmt.Sprintf("Lost at step %d: %s", r.Step, r.Cause))
	default:
		return style.Render("Unfinished")
	}
}
