package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains the lipgloss styles shared by the menu, the history
// board and the CLI output.
type Theme struct {
	// Board cell styles, matching the colors the game draws with
	Player lipgloss.Style
	Goal   lipgloss.Style
	Hazard lipgloss.Style

	// Outcome styles
	Won     lipgloss.Style
	Lost    lipgloss.Style
	Neutral lipgloss.Style

	// Move glyphs
	Move       lipgloss.Style
	MoveFailed lipgloss.Style

	// HUD styles
	HUDTitle    lipgloss.Style
	HUDControls lipgloss.Style

	// Level picker styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuDescription lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Player: lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Goal:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Hazard: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),

		Won:     lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
		Lost:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Neutral: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),

		Move:       lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		MoveFailed: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Reverse(true),

		HUDTitle:    lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		HUDControls: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),

		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// MonochromeTheme returns a grayscale theme for terminals without color.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.Player = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	theme.Goal = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	theme.Hazard = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	theme.Won = lipgloss.NewStyle().Bold(true)
	theme.Lost = lipgloss.NewStyle().Underline(true)
	theme.MoveFailed = lipgloss.NewStyle().Reverse(true)
	return theme
}

// OutcomeStyle returns the style for a recorded outcome name.
func (t Theme) OutcomeStyle(outcome string) lipgloss.Style {
	switch outcome {
	case "won":
		return t.Won
	case "lost":
		return t.Lost
	default:
		return t.Neutral
	}
}
