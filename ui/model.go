package ui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/drake/oefen/catalog"
	"github.com/drake/oefen/drill"
	"github.com/drake/oefen/ui/components/input"
	"github.com/drake/oefen/ui/components/status"
	"github.com/drake/oefen/ui/style"
)

// maxNotes is how many script messages stay on screen.
const maxNotes = 3

const (
	helpText       = "enter check/next · tab hint · ctrl+s skip · ctrl+f filter · esc quit"
	filterHelpText = "enter apply · esc cancel"
)

// Model is the Bubble Tea model of a practice session.
type Model struct {
	session *drill.Session
	notes   *Notes
	styles  style.Styles
	title   string

	input  input.Model
	status status.Bar

	prompt    drill.Prompt
	result    *drill.Result
	showHint  bool
	filtering bool
	err       error
	messages  []string
}

// NewModel creates the model and shows the first exercise.
func NewModel(s *drill.Session, notes *Notes) Model {
	styles := style.DefaultStyles()
	title := s.Category()
	if cat, ok := catalog.Lookup(s.Category()); ok {
		title = cat.Title
	}
	m := Model{
		session: s,
		notes:   notes,
		styles:  styles,
		title:   title,
		input:   input.New(),
		status:  status.New(styles, s.Category()),
	}
	m.advance()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.input.SetWidth(msg.Width)
		m.status.SetWidth(msg.Width)

	case tea.KeyMsg:
		if m.filtering {
			cmd = m.updateFilter(msg)
			break
		}
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyCtrlF:
			m.filtering = true
			m.input.Reset()
			m.input.SetPlaceholder("dimension values...")
		case tea.KeyTab:
			m.showHint = true
		case tea.KeyCtrlS:
			m.advance()
		case tea.KeyEnter:
			if m.result != nil || errors.Is(m.err, drill.ErrNoExercises) {
				m.advance()
			} else {
				m.check()
			}
		default:
			if m.result == nil {
				cmd = m.input.Update(msg)
			}
		}

	default:
		cmd = m.input.Update(msg)
	}

	m.collectNotes()
	m.status.Update(m.session.PoolSize(), m.session.Score())
	return m, cmd
}

// updateFilter handles keys while the filter line is open.
func (m *Model) updateFilter(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyCtrlC:
		return tea.Quit
	case tea.KeyEsc:
		m.closeFilter()
	case tea.KeyEnter:
		line := m.input.Value()
		m.closeFilter()
		m.applyFilter(line)
	default:
		return m.input.Update(msg)
	}
	return nil
}

func (m *Model) closeFilter() {
	m.filtering = false
	m.input.Reset()
	m.input.SetPlaceholder(input.Placeholder)
}

func (m *Model) applyFilter(line string) {
	regenerated, err := applyFilter(m.session, line)
	switch {
	case errors.Is(err, drill.ErrNoExercises):
		m.err, m.result = err, nil
		return
	case err != nil:
		m.err = err
		return
	}

	cur, ok := m.session.Current()
	if !ok {
		m.advance()
		return
	}
	if regenerated {
		m.prompt = cur
		m.result, m.showHint = nil, false
	}
	m.err = nil
	m.messages = append(m.messages, fmt.Sprintf("Filters updated: %d exercises.", m.session.PoolSize()))
}

func (m *Model) advance() {
	p, err := m.session.Next()
	m.prompt = p
	m.err = err
	m.result = nil
	m.showHint = false
	m.input.Reset()
	m.status.Update(m.session.PoolSize(), m.session.Score())
}

func (m *Model) check() {
	res, err := m.session.Check(m.input.Value())
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.result = &res
}

func (m *Model) collectNotes() {
	m.messages = append(m.messages, m.notes.Drain()...)
	if len(m.messages) > maxNotes {
		m.messages = m.messages[len(m.messages)-maxNotes:]
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	s := m.styles

	b.WriteString(s.Title.Render(m.title))
	b.WriteString("\n\n")

	if m.filtering {
		b.WriteString(s.Prompt.Render("Filters"))
		b.WriteString("\n")
		for _, line := range describeFilters(m.session.Prefs()) {
			b.WriteString(s.Option.Render(line) + "\n")
		}
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(s.Muted.Render(filterHelpText))
		return s.App.Render(b.String())
	}

	if errors.Is(m.err, drill.ErrNoExercises) {
		b.WriteString(s.Error.Render("No exercises match the current filters."))
		b.WriteString("\n")
		b.WriteString(s.Muted.Render("Press ctrl+f to change them."))
		b.WriteString("\n\n")
		b.WriteString(m.status.View())
		return s.App.Render(b.String())
	}

	b.WriteString(s.Prompt.Render(m.prompt.Text))
	b.WriteString("\n")
	if m.prompt.Translation != "" {
		b.WriteString(s.Translation.Render(m.prompt.Translation))
		b.WriteString("\n")
	}
	for i, o := range m.prompt.Options {
		b.WriteString(s.Option.Render(fmt.Sprintf("%d) %s", i+1, o)))
		b.WriteString("\n")
	}
	if m.showHint && m.prompt.Exercise.Hint != "" {
		b.WriteString(s.Hint.Render("hint: " + m.prompt.Exercise.Hint))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case m.result != nil && m.result.Correct:
		b.WriteString(s.Correct.Render("Goed!"))
		b.WriteString(" " + m.result.Sentence + "\n")
	case m.result != nil:
		b.WriteString(s.Wrong.Render("Fout."))
		b.WriteString(" Answer: " + s.Solution.Render(m.result.Expected) + "\n")
		b.WriteString(s.Muted.Render(m.result.Sentence) + "\n")
	case errors.Is(m.err, drill.ErrEmptyAnswer):
		b.WriteString(s.Error.Render("Type an answer first.") + "\n")
	case m.err != nil:
		b.WriteString(s.Error.Render(m.err.Error()) + "\n")
	default:
		b.WriteString("\n")
	}
	if m.result != nil && m.result.Explanation != "" {
		b.WriteString(s.Explanation.Render(m.result.Explanation) + "\n")
	}

	for _, note := range m.messages {
		b.WriteString(s.Note.Render(note) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(m.status.View())
	b.WriteString("\n")
	b.WriteString(s.Muted.Render(helpText))
	return s.App.Render(b.String())
}
