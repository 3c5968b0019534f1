package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Placeholder is the hint shown in an empty answer box.
const Placeholder = "antwoord"

// maxAnswer bounds what a learner can type; the longest answers are a
// few words.
const maxAnswer = 80

// Model is the answer box. Checking and advancing belong in the parent.
type Model struct {
	textinput textinput.Model
}

// New creates a focused answer box.
func New() Model {
	ti := textinput.New()
	ti.Placeholder = Placeholder
	ti.Prompt = "› "
	ti.CharLimit = maxAnswer
	ti.Width = 40
	ti.Focus()
	return Model{textinput: ti}
}

// SetWidth updates the input width.
func (m *Model) SetWidth(w int) {
	if w > 4 {
		m.textinput.Width = w - 4 // prompt and padding
	}
}

// Value returns the current input text.
func (m *Model) Value() string {
	return m.textinput.Value()
}

// SetValue sets the input text.
func (m *Model) SetValue(s string) {
	m.textinput.SetValue(s)
	m.textinput.CursorEnd()
}

// SetPlaceholder sets the text shown while the input is empty.
func (m *Model) SetPlaceholder(s string) {
	m.textinput.Placeholder = s
}

// Reset clears the input.
func (m *Model) Reset() {
	m.textinput.Reset()
}

// Update handles tea messages for the input.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.textinput, cmd = m.textinput.Update(msg)
	return cmd
}

// View renders the input line.
func (m *Model) View() string {
	return m.textinput.View()
}
