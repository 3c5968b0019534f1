// Package drill runs a practice session for one exercise category: it
// picks exercises through the repetition window, checks answers and keeps
// the score.
package drill

import (
	"errors"
	"math"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/drake/oefen/catalog"
	"github.com/drake/oefen/filters"
	"github.com/drake/oefen/history"
)

var (
	// ErrNoExercises is returned when the filtered pool is empty.
	ErrNoExercises = errors.New("no exercises match the current filters")
	// ErrEmptyAnswer is returned by Check for a blank answer.
	ErrEmptyAnswer = errors.New("empty answer")
	// ErrAlreadyAnswered is returned by Check once the current exercise is scored.
	ErrAlreadyAnswered = errors.New("exercise already answered")
)

// Hooks lets user scripts take part in answer checking.
type Hooks interface {
	// Normalize is applied to both the given and the accepted answers
	// after the built-in normalization.
	Normalize(s string) string
	// OnAnswer is called after every scored answer.
	OnAnswer(r Result)
}

// Config holds what a Session needs.
type Config struct {
	Category  string
	Exercises []catalog.Exercise
	History   *history.History
	Filters   *filters.Manager // optional; without it the pool is unfiltered
	Hooks     Hooks            // optional
	Logger    *zap.Logger
	Rand      func(n int) int // variant and option order; defaults to math/rand/v2
}

// Prompt is the exercise currently shown.
type Prompt struct {
	Exercise    catalog.Exercise
	Text        string
	Translation string
	Options     []string // shuffled choices of a multiple-choice exercise
}

// Score counts answers in this session.
type Score struct {
	Correct int
	Total   int
}

// Accuracy returns the percentage of correct answers, rounded.
func (s Score) Accuracy() int {
	if s.Total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(s.Correct) / float64(s.Total)))
}

// Result describes one checked answer.
type Result struct {
	ExerciseID  string
	Category    string
	Answer      string
	Expected    string
	Correct     bool
	Sentence    string // prompt with the gap filled in
	Explanation string
	Score       Score
}

// Session is a practice run over one category.
type Session struct {
	mu       sync.Mutex
	id       string
	category string
	all      []catalog.Exercise
	pool     []catalog.Exercise
	prefs    filters.Prefs
	hist     *history.History
	filters  *filters.Manager
	hooks    Hooks
	intn     func(n int) int
	log      *zap.Logger

	current  *Prompt
	answered bool
	score    Score
}

// New creates a session. The first exercise is chosen by the first call
// to Next.
func New(cfg Config) (*Session, error) {
	if cfg.History == nil {
		return nil, errors.New("drill: history is required")
	}
	if cfg.Category == "" {
		cfg.Category = cfg.History.Category()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.IntN
	}

	s := &Session{
		id:       uuid.NewString(),
		category: cfg.Category,
		all:      cfg.Exercises,
		hist:     cfg.History,
		filters:  cfg.Filters,
		hooks:    cfg.Hooks,
		intn:     cfg.Rand,
	}
	s.log = cfg.Logger.With(zap.String("session", s.id), zap.String("category", s.category))

	if s.filters != nil && s.filters.Known(s.category) {
		s.prefs = s.filters.Load(s.category)
	}
	s.pool = catalog.Filter(s.all, s.prefs)
	s.log.Debug("session started", zap.Int("exercises", len(s.all)), zap.Int("pool", len(s.pool)))
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Category returns the category being practised.
func (s *Session) Category() string { return s.category }

// PoolSize returns the number of exercises passing the current filters.
func (s *Session) PoolSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pool)
}

// Prefs returns a copy of the active filter selection.
func (s *Session) Prefs() filters.Prefs {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs.Clone()
}

// Score returns the running score.
func (s *Session) Score() Score {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

// Current returns the exercise being shown, if any.
func (s *Session) Current() (Prompt, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return Prompt{}, false
	}
	return *s.current, true
}

// Answered reports whether the current exercise has been checked.
func (s *Session) Answered() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answered
}

// Next moves to a new exercise, avoiding those in the repetition window.
// The choice is recorded in the window only when an earlier exercise was
// shown, so the first exercise of a session is never recorded.
func (s *Session) Next() (Prompt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next()
}

func (s *Session) next() (Prompt, error) {
	ex, ok := history.Select(s.hist, s.pool, exerciseID)
	if !ok {
		s.current = nil
		return Prompt{}, ErrNoExercises
	}
	if s.current != nil {
		s.hist.Record(ex.ID)
	}

	p := Prompt{Exercise: ex, Text: ex.Prompt, Translation: ex.Translation}
	if n := len(ex.Variants); n > 0 {
		v := ex.Variants[s.intn(n)]
		p.Text, p.Translation = v.Prompt, v.Translation
	}
	if ex.MultipleChoice() {
		p.Options = slices.Clone(ex.Options)
		for i := len(p.Options) - 1; i > 0; i-- {
			j := s.intn(i + 1)
			p.Options[i], p.Options[j] = p.Options[j], p.Options[i]
		}
	}
	s.current = &p
	s.answered = false
	s.log.Debug("next exercise", zap.String("exercise", ex.ID))
	return p, nil
}

// Check scores answer against the current exercise. For a
// multiple-choice exercise the answer may also be the 1-based number of
// one of the prompt's options.
func (s *Session) Check(answer string) (Result, error) {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return Result{}, ErrNoExercises
	}
	if strings.TrimSpace(answer) == "" {
		s.mu.Unlock()
		return Result{}, ErrEmptyAnswer
	}
	if s.answered {
		s.mu.Unlock()
		return Result{}, ErrAlreadyAnswered
	}

	ex := s.current.Exercise
	answer = s.current.choice(answer)
	given := s.normalize(answer)
	correct := false
	for _, a := range ex.Answers {
		if s.normalize(a) == given {
			correct = true
			break
		}
	}

	s.answered = true
	s.score.Total++
	if correct {
		s.score.Correct++
	}
	res := Result{
		ExerciseID:  ex.ID,
		Category:    s.category,
		Answer:      answer,
		Expected:    ex.Solution(),
		Correct:     correct,
		Sentence:    ex.Complete(s.current.Text),
		Explanation: ex.Explanation,
		Score:       s.score,
	}
	hooks := s.hooks
	s.mu.Unlock()

	s.log.Debug("answer checked", zap.String("exercise", ex.ID), zap.Bool("correct", correct))
	if hooks != nil {
		hooks.OnAnswer(res)
	}
	return res, nil
}

// Hint returns the hint of the current exercise.
func (s *Session) Hint() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ""
	}
	return s.current.Exercise.Hint
}

// SetFilters stores prefs for the category and rebuilds the pool. When
// the current exercise no longer matches, a new one is chosen and
// regenerated is true.
func (s *Session) SetFilters(prefs filters.Prefs) (regenerated bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.filters != nil {
		s.filters.Save(s.category, prefs)
	}
	s.prefs = prefs.Clone()
	s.pool = catalog.Filter(s.all, s.prefs)
	s.log.Debug("filters changed", zap.Int("pool", len(s.pool)))

	if s.current == nil || s.current.Exercise.Matches(s.prefs) {
		return false, nil
	}
	if _, err := s.next(); err != nil {
		return true, err
	}
	return true, nil
}

// normalize collapses whitespace and lowercases, then applies the hook.
func (s *Session) normalize(v string) string {
	v = strings.ToLower(strings.Join(strings.Fields(v), " "))
	if s.hooks != nil {
		v = s.hooks.Normalize(v)
	}
	return v
}

// choice maps an option number to the option it names.
func (p *Prompt) choice(answer string) string {
	n, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil || n < 1 || n > len(p.Options) {
		return answer
	}
	return p.Options[n-1]
}

func exerciseID(e catalog.Exercise) string { return e.ID }
