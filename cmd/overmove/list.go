package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all levels",
	Long:  `Shows every level of the current pack, sorted by ID.`,
	RunE:  runList,
}

func runList(_ *cobra.Command, _ []string) error {
	lvls, err := loadLevels()
	if err != nil {
		return err
	}

	if len(lvls) == 0 {
		fmt.Println("No levels available.")
		return nil
	}

	rows := make([][]string, 0, len(lvls))
	for _, l := range lvls {
		b := l.Def.Bounds()
		rows = append(rows, []string{
			l.ID,
			l.Name,
			fmt.Sprintf("%dx%d", b.Cols, b.Rows),
			strconv.Itoa(l.Def.HazardCount()),
			l.Metadata["difficulty"],
		})
	}

	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("51"))
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		BorderRow(false).
		Headers("ID", "Name", "Grid", "Hazards", "Difficulty").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	fmt.Println(t.Render())
	fmt.Println()
	fmt.Println("Run 'overmove play <id>' to play a level.")
	return nil
}
