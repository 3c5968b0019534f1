// Package catalog holds the static Dutch exercise data and turns it into
// uniform Exercise records that can be filtered into a practice pool.
package catalog

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/drake/oefen/filters"
)

//go:embed data/*.json
var embedded embed.FS

// Blank marks the gap the learner fills in a prompt.
const Blank = "___"

// Exercise is one drillable item.
type Exercise struct {
	ID          string
	Category    string
	Prompt      string
	Translation string
	Hint        string
	Explanation string            // shown once the exercise is answered
	Answers     []string          // accepted answers; the first is shown as the solution
	Options     []string          // choices for multiple-choice drills; empty when typed
	Attrs       map[string]string // filterable attributes (level, tense, ...)
	Variants    []Variant         // alternative example sentences
}

// MultipleChoice reports whether the answer is picked from Options.
func (e Exercise) MultipleChoice() bool {
	return len(e.Options) > 0
}

// Variant is an alternative prompt for the same exercise.
type Variant struct {
	Prompt      string
	Translation string
}

// Solution returns the canonical answer.
func (e Exercise) Solution() string {
	if len(e.Answers) == 0 {
		return ""
	}
	return e.Answers[0]
}

// Complete returns prompt with the gaps filled by the solution. A prompt
// with several gaps and a solution of as many words, such as a split
// separable verb, gets one word per gap.
func (e Exercise) Complete(prompt string) string {
	gaps := strings.Count(prompt, Blank)
	if gaps == 0 {
		return prompt
	}
	words := strings.Fields(e.Solution())
	if gaps > 1 && len(words) == gaps {
		for _, w := range words {
			prompt = strings.Replace(prompt, Blank, w, 1)
		}
		return prompt
	}
	return strings.Replace(prompt, Blank, e.Solution(), 1)
}

// Matches reports whether e passes every dimension in prefs. An exercise
// without an attribute for a filtered dimension does not match.
func (e Exercise) Matches(prefs filters.Prefs) bool {
	for dim, allowed := range prefs {
		v, ok := e.Attrs[dim]
		if !ok || !slices.Contains(allowed, v) {
			return false
		}
	}
	return true
}

// Filter returns the exercises of pool that match prefs, in pool order.
func Filter(pool []Exercise, prefs filters.Prefs) []Exercise {
	out := make([]Exercise, 0, len(pool))
	for _, e := range pool {
		if e.Matches(prefs) {
			out = append(out, e)
		}
	}
	return out
}

// Category describes one drill.
type Category struct {
	Name        string
	Title       string
	Description string
	Capacity    int // default history window
	load        func(c *Catalog) ([]Exercise, error)
}

var categories = []Category{
	{
		Name:        "articles",
		Title:       "De of het",
		Description: "Pick the article of common nouns",
		Capacity:    10,
		load:        (*Catalog).articles,
	},
	{
		Name:        "verb_conjugation",
		Title:       "Verb conjugation",
		Description: "Conjugate verbs across present, past, perfect and future",
		Capacity:    10,
		load:        (*Catalog).conjugations,
	},
	{
		Name:        "adverbs",
		Title:       "Adverbs",
		Description: "Complete sentences with the right adverb",
		Capacity:    10,
		load:        (*Catalog).adverbs,
	},
	{
		Name:        "conjunctions",
		Title:       "Conjunctions",
		Description: "Find the conjunction that links the clauses",
		Capacity:    3,
		load:        (*Catalog).conjunctions,
	},
	{
		Name:        "separable_verbs",
		Title:       "Separable verbs",
		Description: "Split separable verbs in main clauses",
		Capacity:    3,
		load:        (*Catalog).separableVerbs,
	},
	{
		Name:        "reflexive_verbs",
		Title:       "Reflexive verbs",
		Description: "Choose the reflexive pronoun",
		Capacity:    3,
		load:        (*Catalog).reflexiveVerbs,
	},
	{
		Name:        "comparative",
		Title:       "Comparatives",
		Description: "Form comparatives and superlatives",
		Capacity:    3,
		load:        (*Catalog).comparatives,
	},
	{
		Name:        "verb_prepositions",
		Title:       "Verbs with fixed prepositions",
		Description: "Type the preposition that belongs to the verb",
		Capacity:    3,
		load:        (*Catalog).verbPrepositions,
	},
	{
		Name:        "adjectives",
		Title:       "Adjective endings",
		Description: "Choose the adjective with or without -e",
		Capacity:    3,
		load:        (*Catalog).adjectives,
	},
	{
		Name:        "negation",
		Title:       "Niet of geen",
		Description: "Choose between niet and geen",
		Capacity:    3,
		load:        (*Catalog).negation,
	},
	{
		Name:        "object_pronouns",
		Title:       "Object pronouns",
		Description: "Fill in the object form of the pronoun",
		Capacity:    3,
		load:        (*Catalog).objectPronouns,
	},
	{
		Name:        "pronominal_adverbs",
		Title:       "Pronominal adverbs",
		Description: "Build er-, waar- and hier- words with prepositions",
		Capacity:    3,
		load:        (*Catalog).pronominalAdverbs,
	},
}

// Categories returns every drill in display order.
func Categories() []Category {
	return slices.Clone(categories)
}

// Lookup finds a category by name.
func Lookup(name string) (Category, bool) {
	for _, c := range categories {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

// Names returns the category names in display order.
func Names() []string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
	}
	return names
}

// Catalog reads exercise data from the embedded files, optionally
// shadowed by files of the same name in an overlay directory.
type Catalog struct {
	overlay string
	files   fs.FS
}

// New returns a catalog. overlay may be empty.
func New(overlay string) *Catalog {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err) // embedded layout is fixed at build time
	}
	return &Catalog{overlay: overlay, files: sub}
}

// Exercises loads every exercise of the named category.
func (c *Catalog) Exercises(category string) ([]Exercise, error) {
	cat, ok := Lookup(category)
	if !ok {
		return nil, fmt.Errorf("unknown category: %s", category)
	}
	exercises, err := cat.load(c)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", category, err)
	}
	for i := range exercises {
		exercises[i].Category = category
	}
	return exercises, nil
}

// ReadFile returns a data file, preferring the overlay directory.
func (c *Catalog) ReadFile(name string) ([]byte, error) {
	if c.overlay != "" {
		data, err := os.ReadFile(filepath.Join(c.overlay, name))
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return fs.ReadFile(c.files, name)
}

func (c *Catalog) decode(name string, v any) error {
	data, err := c.ReadFile(name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	return nil
}
