package ui

import (
	"bytes"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drake/oefen/catalog"
	"github.com/drake/oefen/drill"
	"github.com/drake/oefen/filters"
	"github.com/drake/oefen/history"
	"github.com/drake/oefen/kv"
	"github.com/drake/oefen/ui/components/status"
	"github.com/drake/oefen/ui/style"
)

func sessionFor(t *testing.T, store kv.Store, category string, pool []catalog.Exercise) *drill.Session {
	t.Helper()
	r := rand.New(rand.NewPCG(9, 9))
	h, err := history.New(store, category, 10, history.WithRand(r.IntN))
	require.NoError(t, err)
	s, err := drill.New(drill.Config{
		Category:  category,
		Exercises: pool,
		History:   h,
		Filters:   filters.NewManager(store, nil),
		Rand:      r.IntN,
	})
	require.NoError(t, err)
	return s
}

func articleSession(t *testing.T, pool []catalog.Exercise) *drill.Session {
	t.Helper()
	return sessionFor(t, kv.NewMemory(), "articles", pool)
}

func conjugations() []catalog.Exercise {
	attrs := func(tense string) map[string]string {
		return map[string]string{"tense": tense, "level": "A1", "verb_type": "regular", "separable": "non-separable"}
	}
	return []catalog.Exercise{
		{ID: "werken_ik_present", Prompt: "ik ___ (werken, present)", Answers: []string{"werk"}, Attrs: attrs("present")},
		{ID: "werken_ik_past", Prompt: "ik ___ (werken, past)", Answers: []string{"werkte"}, Attrs: attrs("past")},
	}
}

func negation() []catalog.Exercise {
	return []catalog.Exercise{{
		ID:          "Ik heb ___ tijd.",
		Prompt:      "Ik heb ___ tijd.",
		Answers:     []string{"geen"},
		Options:     []string{"geen", "niet"},
		Explanation: "Geen negates a noun without an article.",
	}}
}

func huis() []catalog.Exercise {
	return []catalog.Exercise{{
		ID:          "huis",
		Prompt:      "___ huis",
		Translation: "the house",
		Hint:        "de or het",
		Answers:     []string{"het"},
	}}
}

func TestConsole_Session(t *testing.T) {
	notes := &Notes{}
	notes.Print("welkom")
	in := strings.NewReader(":hint\n\nhet\nde\n:score\n:skip\n:q\n")
	var out bytes.Buffer

	score, err := NewConsole(articleSession(t, huis()), notes, in, &out).Run()
	require.NoError(t, err)
	assert.Equal(t, drill.Score{Correct: 1, Total: 2}, score)

	text := out.String()
	assert.Contains(t, text, "Practising articles.")
	assert.Contains(t, text, "welkom")
	assert.Contains(t, text, "___ huis")
	assert.Contains(t, text, "(the house)")
	assert.Contains(t, text, "hint: de or het")
	assert.Contains(t, text, "Type an answer, or :skip.")
	assert.Contains(t, text, "Goed! het huis")
	assert.Contains(t, text, "Fout. Answer: het")
	assert.Contains(t, text, "Score: 1/2 (50%)")
}

func TestConsole_EndOfInput(t *testing.T) {
	var out bytes.Buffer
	score, err := NewConsole(articleSession(t, huis()), nil, strings.NewReader("het\n"), &out).Run()
	require.NoError(t, err)
	assert.Equal(t, 1, score.Correct)
	assert.Contains(t, out.String(), "Score: 1/1 (100%)")
}

func TestConsole_NoExercises(t *testing.T) {
	var out bytes.Buffer
	_, err := NewConsole(articleSession(t, nil), nil, strings.NewReader("het\n"), &out).Run()
	require.NoError(t, err)
	assert.Contains(t, out.String(), "No exercises match")
}

func TestConsole_Filter(t *testing.T) {
	store := kv.NewMemory()
	in := strings.NewReader(":filters\n:filter colour blauw\n:filter tense past\nwerkte\n:filter tense\nwerk\n:q\n")
	var out bytes.Buffer

	score, err := NewConsole(sessionFor(t, store, "verb_conjugation", conjugations()), nil, in, &out).Run()
	require.NoError(t, err)
	assert.Equal(t, drill.Score{Correct: 1, Total: 1}, score)

	text := out.String()
	assert.Contains(t, text, "ik ___ (werken, present)")
	assert.Contains(t, text, "  tense: present")
	assert.Contains(t, text, `no "colour" filter`)
	assert.Contains(t, text, "Filters updated: 1 exercises.")
	assert.Contains(t, text, "ik ___ (werken, past)")
	assert.Contains(t, text, "Goed! ik werkte (werken, past)")
	assert.Contains(t, text, "No exercises match the current filters.")
	assert.Contains(t, text, "Change them with :filter.")

	saved := filters.NewManager(store, nil).Load("verb_conjugation")
	assert.Empty(t, saved["tense"])
	assert.Equal(t, []string{"A1", "A2"}, saved["level"])
}

func TestConsole_FilterWithoutDimensions(t *testing.T) {
	var out bytes.Buffer
	_, err := NewConsole(articleSession(t, huis()), nil, strings.NewReader(":filter\n:filter gender de\n:q\n"), &out).Run()
	require.NoError(t, err)
	assert.Contains(t, out.String(), filterUsage)
	assert.Contains(t, out.String(), "articles has no filters")
}

func TestConsole_MultipleChoice(t *testing.T) {
	s := sessionFor(t, kv.NewMemory(), "negation", negation())
	p, ok := s.Current()
	assert.False(t, ok)
	assert.Empty(t, p.Options)

	var out bytes.Buffer
	score, err := NewConsole(s, nil, strings.NewReader(":q\n"), &out).Run()
	require.NoError(t, err)
	assert.Equal(t, 0, score.Total)

	p, ok = s.Current()
	require.True(t, ok)
	text := out.String()
	assert.Contains(t, text, "  1) "+p.Options[0])
	assert.Contains(t, text, "  2) "+p.Options[1])
}

func TestConsole_MultipleChoiceExplanation(t *testing.T) {
	var out bytes.Buffer
	s := sessionFor(t, kv.NewMemory(), "negation", negation())
	score, err := NewConsole(s, nil, strings.NewReader("geen\n:q\n"), &out).Run()
	require.NoError(t, err)
	assert.Equal(t, drill.Score{Correct: 1, Total: 1}, score)
	assert.Contains(t, out.String(), "Goed! Ik heb geen tijd.")
	assert.Contains(t, out.String(), "  Geen negates a noun without an article.")
}

func key(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func TestModel_CheckThenAdvance(t *testing.T) {
	s := articleSession(t, huis())
	m := NewModel(s, &Notes{})
	assert.Contains(t, m.View(), "De of het")
	assert.Contains(t, m.View(), "___ huis")

	m, _ = update(t, m, key(tea.KeyEnter))
	assert.ErrorIs(t, m.err, drill.ErrEmptyAnswer)
	assert.Contains(t, m.View(), "Type an answer first.")

	m, _ = update(t, m, key(tea.KeyTab))
	assert.Contains(t, m.View(), "hint: de or het")

	m.input.SetValue("het")
	m, _ = update(t, m, key(tea.KeyEnter))
	require.NotNil(t, m.result)
	assert.True(t, m.result.Correct)
	assert.Contains(t, m.View(), "Goed!")
	assert.Contains(t, m.View(), "1/1")

	m, _ = update(t, m, key(tea.KeyEnter))
	assert.Nil(t, m.result)
	assert.False(t, m.showHint)
	assert.Empty(t, m.input.Value())
}

func TestModel_WrongAnswerShowsSolution(t *testing.T) {
	m := NewModel(articleSession(t, huis()), &Notes{})
	m.input.SetValue("de")
	m, _ = update(t, m, key(tea.KeyEnter))
	require.NotNil(t, m.result)
	assert.False(t, m.result.Correct)
	assert.Contains(t, m.View(), "Fout.")
	assert.Contains(t, m.View(), "het huis")
}

func TestModel_SkipAndQuit(t *testing.T) {
	s := articleSession(t, huis())
	m := NewModel(s, &Notes{})
	m, _ = update(t, m, key(tea.KeyCtrlS))
	assert.Equal(t, drill.Score{}, s.Score())

	_, cmd := update(t, m, key(tea.KeyEsc))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_ShowsNotes(t *testing.T) {
	notes := &Notes{}
	m := NewModel(articleSession(t, huis()), notes)
	for _, n := range []string{"een", "twee", "drie", "vier"} {
		notes.Print(n)
	}
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	view := m.View()
	assert.NotContains(t, view, "een")
	assert.Contains(t, view, "vier")
}

func TestModel_NoExercises(t *testing.T) {
	m := NewModel(articleSession(t, nil), &Notes{})
	assert.Contains(t, m.View(), "No exercises match")
	m, _ = update(t, m, key(tea.KeyEnter))
	assert.ErrorIs(t, m.err, drill.ErrNoExercises)
}

func TestModel_Filter(t *testing.T) {
	s := sessionFor(t, kv.NewMemory(), "verb_conjugation", conjugations())
	m := NewModel(s, &Notes{})
	assert.Equal(t, "werken_ik_present", m.prompt.Exercise.ID)

	m, _ = update(t, m, key(tea.KeyCtrlF))
	assert.True(t, m.filtering)
	view := m.View()
	assert.Contains(t, view, "Filters")
	assert.Contains(t, view, "tense: present")
	assert.Contains(t, view, filterHelpText)

	m.input.SetValue("tense past")
	m, _ = update(t, m, key(tea.KeyEnter))
	assert.False(t, m.filtering)
	require.NoError(t, m.err)
	assert.Equal(t, "werken_ik_past", m.prompt.Exercise.ID)
	assert.Contains(t, m.View(), "Filters updated: 1 exercises.")
	assert.Empty(t, m.input.Value())

	m, _ = update(t, m, key(tea.KeyCtrlF))
	m.input.SetValue("tense present")
	m, cmd := update(t, m, key(tea.KeyEsc))
	assert.Nil(t, cmd, "esc closes the filter line without quitting")
	assert.False(t, m.filtering)
	assert.Equal(t, []string{"past"}, s.Prefs()["tense"])

	m, _ = update(t, m, key(tea.KeyCtrlF))
	m.input.SetValue("tense")
	m, _ = update(t, m, key(tea.KeyEnter))
	assert.ErrorIs(t, m.err, drill.ErrNoExercises)
	assert.Contains(t, m.View(), "Press ctrl+f")

	m, _ = update(t, m, key(tea.KeyCtrlF))
	m.input.SetValue("tense present")
	m, _ = update(t, m, key(tea.KeyEnter))
	require.NoError(t, m.err)
	assert.Equal(t, "werken_ik_present", m.prompt.Exercise.ID)
}

func TestModel_FilterUnknownDimension(t *testing.T) {
	m := NewModel(sessionFor(t, kv.NewMemory(), "verb_conjugation", conjugations()), &Notes{})
	m, _ = update(t, m, key(tea.KeyCtrlF))
	m.input.SetValue("colour blauw")
	m, _ = update(t, m, key(tea.KeyEnter))
	require.Error(t, m.err)
	assert.Contains(t, m.View(), `no "colour" filter`)
	assert.Equal(t, "werken_ik_present", m.prompt.Exercise.ID)
}

func TestModel_MultipleChoice(t *testing.T) {
	m := NewModel(sessionFor(t, kv.NewMemory(), "negation", negation()), &Notes{})
	require.Len(t, m.prompt.Options, 2)
	view := m.View()
	assert.Contains(t, view, "Niet of geen")
	assert.Contains(t, view, "1) "+m.prompt.Options[0])
	assert.Contains(t, view, "2) "+m.prompt.Options[1])

	m.input.SetValue(strconv.Itoa(slices.Index(m.prompt.Options, "geen") + 1))
	m, _ = update(t, m, key(tea.KeyEnter))
	require.NotNil(t, m.result)
	assert.True(t, m.result.Correct)
	assert.Contains(t, m.View(), "Ik heb geen tijd.")
	assert.Contains(t, m.View(), "Geen negates a noun without an article.")
}

func TestStatusBar(t *testing.T) {
	bar := status.New(style.DefaultStyles(), "verb_conjugation")
	bar.Update(12, drill.Score{Correct: 2, Total: 3})
	assert.Equal(t, "verb_conjugation · 12 exercises · 2/3 · 67%", bar.Text())

	bar.SetWidth(20)
	assert.LessOrEqual(t, len([]rune(bar.Text())), 20)
	assert.True(t, strings.HasSuffix(bar.Text(), "…"))
}

func TestNotes_Drain(t *testing.T) {
	var nilNotes *Notes
	assert.Nil(t, nilNotes.Drain())

	n := &Notes{}
	n.Print("a")
	assert.Equal(t, []string{"a"}, n.Drain())
	assert.Empty(t, n.Drain())
}
