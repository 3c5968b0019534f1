package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/drake/oefen/drill"
)

// Run starts the full-screen front end and blocks until the learner quits.
func Run(s *drill.Session, notes *Notes, opts ...tea.ProgramOption) (drill.Score, error) {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	p := tea.NewProgram(NewModel(s, notes), opts...)
	if _, err := p.Run(); err != nil {
		return s.Score(), err
	}
	return s.Score(), nil
}
