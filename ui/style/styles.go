package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles holds all the lipgloss styles for the TUI.
type Styles struct {
	// Layout
	App       lipgloss.Style
	Title     lipgloss.Style
	StatusBar lipgloss.Style

	// Exercise
	Prompt      lipgloss.Style
	Translation lipgloss.Style
	Hint        lipgloss.Style
	Option      lipgloss.Style

	// Feedback
	Correct     lipgloss.Style
	Wrong       lipgloss.Style
	Solution    lipgloss.Style
	Explanation lipgloss.Style

	// Tables
	TableHeader lipgloss.Style
	TableCell   lipgloss.Style
	TableBorder lipgloss.Style

	// Misc
	Note  lipgloss.Style
	Muted lipgloss.Style
	Error lipgloss.Style
}

// DefaultStyles returns the default style configuration.
func DefaultStyles() Styles {
	return Styles{
		App: lipgloss.NewStyle().
			Padding(1, 2),
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1),
		StatusBar: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),

		Prompt: lipgloss.NewStyle().
			Bold(true),
		Translation: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true),
		Hint: lipgloss.NewStyle().
			Foreground(lipgloss.Color("179")), // muted yellow
		Option: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			PaddingLeft(2),

		Correct: lipgloss.NewStyle().
			Foreground(lipgloss.Color("71")). // muted green
			Bold(true),
		Wrong: lipgloss.NewStyle().
			Foreground(lipgloss.Color("167")).
			Bold(true),
		Solution: lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")),
		Explanation: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),

		TableHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Padding(0, 1),
		TableCell: lipgloss.NewStyle().
			Padding(0, 1),
		TableBorder: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),

		Note: lipgloss.NewStyle().
			Foreground(lipgloss.Color("111")),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),
	}
}
