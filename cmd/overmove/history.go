package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/overmove/internal/storage"
)

var (
	flagLimit  int
	flagSolves bool
)

var historyCmd = &cobra.Command{
	Use:   "history [level]",
	Short: "Show run and solve history",
	Long: `Without a level, summarize every level that has history.
With a level, list its most recent runs (or solves with --solves).

Examples:
  overmove history
  overmove history 03
  overmove history 03 --solves --limit 5`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of entries to show")
	historyCmd.Flags().BoolVar(&flagSolves, "solves", false, "List solver invocations instead of runs")
}

func runHistory(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer closeStore(store)

	if len(args) == 0 {
		return printSummary(store)
	}

	levelID := args[0]
	stats, err := store.LevelStats(levelID)
	if err != nil {
		return err
	}

	fmt.Printf("History - level %s\n", levelID)
	fmt.Println(formatStats(stats))
	fmt.Println()

	if flagSolves {
		return printSolves(store, levelID)
	}
	return printRuns(store, levelID)
}

func printSummary(store *storage.Store) error {
	ids, err := store.PlayedLevels()
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Println("No history recorded yet.")
		fmt.Println()
		fmt.Println("Play 'overmove play' to start one!")
		return nil
	}

	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		s, err := store.LevelStats(id)
		if err != nil {
			return err
		}
		rows = append(rows, []string{
			id,
			strconv.Itoa(s.Runs),
			strconv.Itoa(s.Wins),
			bestLabel(s),
			fmt.Sprintf("%d/%d", s.SolvesFound, s.Solves),
			lastPlayedLabel(s),
		})
	}

	fmt.Println(historyTable([]string{"Level", "Runs", "Wins", "Best", "Solves", "Last played"}, rows, nil).Render())
	return nil
}

func printRuns(store *storage.Store, levelID string) error {
	runs, err := store.RecentRuns(levelID, flagLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	theme := outputTheme()
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		result := r.Outcome
		if r.Cause != "" {
			result += ": " + r.Cause
		}
		rows = append(rows, []string{
			r.CreatedAt.Format("2006-01-02 15:04"),
			result,
			strconv.Itoa(r.Step),
			r.Moves,
			shortID(r.AttemptID),
		})
	}

	styleRow := func(row int) lipgloss.Style {
		if row < 0 || row >= len(runs) {
			return lipgloss.NewStyle()
		}
		return theme.OutcomeStyle(runs[row].Outcome)
	}
	fmt.Println(historyTable([]string{"When", "Result", "Step", "Moves", "Attempt"}, rows, styleRow).Render())
	return nil
}

func printSolves(store *storage.Store, levelID string) error {
	solves, err := store.RecentSolves(levelID, flagLimit)
	if err != nil {
		return err
	}
	if len(solves) == 0 {
		fmt.Println("No solves recorded yet.")
		return nil
	}

	theme := outputTheme()
	rows := make([][]string, 0, len(solves))
	for _, s := range solves {
		path := s.Path
		if !s.Found {
			path = "no path found"
		}
		rows = append(rows, []string{
			s.CreatedAt.Format("2006-01-02 15:04"),
			strconv.FormatInt(s.Seed, 10),
			path,
			strconv.Itoa(s.Explored),
			s.Duration.String(),
		})
	}

	styleRow := func(row int) lipgloss.Style {
		if row < 0 || row >= len(solves) {
			return lipgloss.NewStyle()
		}
		if solves[row].Found {
			return theme.Won
		}
		return theme.Lost
	}
	fmt.Println(historyTable([]string{"When", "Seed", "Path", "Frames", "Took"}, rows, styleRow).Render())
	return nil
}

// historyTable builds a bordered table; rowStyle colors the data rows.
func historyTable(headers []string, rows [][]string, rowStyle func(row int) lipgloss.Style) *table.Table {
	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("51")).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		BorderRow(false).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case col == 1 && rowStyle != nil:
				return rowStyle(row).Padding(0, 1)
			default:
				return cell
			}
		})
}

func formatStats(s *storage.LevelStats) string {
	return fmt.Sprintf("runs %d  wins %d  best %s  solves %d/%d  last played %s",
		s.Runs, s.Wins, bestLabel(s), s.SolvesFound, s.Solves, lastPlayedLabel(s))
}

func bestLabel(s *storage.LevelStats) string {
	if s.Wins == 0 {
		return "-"
	}
	return fmt.Sprintf("%d moves", s.BestMoves)
}

func lastPlayedLabel(s *storage.LevelStats) string {
	if s.LastPlayed.IsZero() {
		return "never"
	}
	return s.LastPlayed.Format("2006-01-02 15:04")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
