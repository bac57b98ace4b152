package ui

import "github.com/charmbracelet/lipgloss"

// Styles holds the Lipgloss styles used by the panel.
type Styles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Danger  lipgloss.Style
	Busy    lipgloss.Style
	Help    lipgloss.Style
	Panel   lipgloss.Style
}

func defaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true),

		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),

		Value: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),

		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),

		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true),

		Danger: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),

		Busy: lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")),

		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1),
	}
}
