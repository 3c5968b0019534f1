package catalog

import (
	"regexp"
	"strconv"
	"strings"
)

// Noun is an entry of nouns.json.
type Noun struct {
	Name        string `json:"name"`
	Article     string `json:"article"`
	Translation string `json:"translation"`
	Category    string `json:"category"`
}

type nounFile struct {
	Nouns []Noun `json:"dutch_nouns"`
}

// Nouns loads nouns.json.
func (c *Catalog) Nouns() ([]Noun, error) {
	var f nounFile
	if err := c.decode("nouns.json", &f); err != nil {
		return nil, err
	}
	return f.Nouns, nil
}

func (c *Catalog) articles() ([]Exercise, error) {
	nouns, err := c.Nouns()
	if err != nil {
		return nil, err
	}
	out := make([]Exercise, 0, len(nouns))
	for _, n := range nouns {
		out = append(out, Exercise{
			ID:          NounKey(n.Name),
			Prompt:      Blank + " " + n.Name,
			Translation: "the " + n.Translation,
			Hint:        "de or het",
			Answers:     []string{n.Article},
			Attrs:       map[string]string{"topic": n.Category},
		})
	}
	return out, nil
}

type adverb struct {
	ID               int      `json:"id"`
	Adverb           string   `json:"adverb"`
	English          string   `json:"english"`
	Category         string   `json:"category"`
	Difficulty       string   `json:"difficulty"`
	Frequency        string   `json:"frequency"`
	DutchSentences   []string `json:"dutch_sentences"`
	EnglishSentences []string `json:"english_sentences"`
	CorrectAnswer    string   `json:"correct_answer"`
}

type adverbFile struct {
	Adverbs []adverb `json:"adverbs"`
}

func (c *Catalog) adverbs() ([]Exercise, error) {
	var f adverbFile
	if err := c.decode("adverbs.json", &f); err != nil {
		return nil, err
	}
	out := make([]Exercise, 0, len(f.Adverbs))
	for _, a := range f.Adverbs {
		variants := pairVariants(a.DutchSentences, a.EnglishSentences)
		if len(variants) == 0 {
			continue
		}
		answer := a.CorrectAnswer
		if answer == "" {
			answer = a.Adverb
		}
		out = append(out, Exercise{
			ID:          strconv.Itoa(a.ID),
			Prompt:      variants[0].Prompt,
			Translation: variants[0].Translation,
			Hint:        a.English,
			Answers:     []string{answer},
			Attrs: map[string]string{
				"difficulty": a.Difficulty,
				"category":   a.Category,
				"frequency":  a.Frequency,
			},
			Variants: variants,
		})
	}
	return out, nil
}

type conjunction struct {
	Conjunction         string   `json:"conjunction"`
	Category            string   `json:"category"`
	Examples            []string `json:"examples"`
	ExamplesTranslation []string `json:"examples_translation"`
}

func (c *Catalog) conjunctions() ([]Exercise, error) {
	var list []conjunction
	if err := c.decode("conjunctions.json", &list); err != nil {
		return nil, err
	}
	out := make([]Exercise, 0, len(list))
	for _, cj := range list {
		main := ConjunctionAnswer(cj.Conjunction)
		var sentences []string
		for _, ex := range cj.Examples {
			sentences = append(sentences, blankWord(ex, main))
		}
		variants := pairVariants(sentences, cj.ExamplesTranslation)
		if len(variants) == 0 {
			continue
		}
		out = append(out, Exercise{
			ID:          NounKey(cj.Conjunction),
			Prompt:      variants[0].Prompt,
			Translation: variants[0].Translation,
			Hint:        cj.Category + " conjunction",
			Answers:     []string{main},
			Attrs:       map[string]string{"type": cj.Category},
			Variants:    variants,
		})
	}
	return out, nil
}

// ConjunctionAnswer returns the word a learner types for a conjunction.
// Correlative conjunctions such as "noch ... noch" are answered with
// their first word.
func ConjunctionAnswer(conj string) string {
	if i := strings.Index(conj, "..."); i >= 0 {
		return strings.TrimSpace(conj[:i])
	}
	return strings.TrimSpace(conj)
}

type sentenceExercise struct {
	Question      string `json:"question"`
	Sentence      string `json:"sentence"`
	DutchSentence string `json:"dutch_sentence"`
	Answer        string `json:"answer"`
	CorrectAnswer string `json:"correct_answer"`
	MissingWords  string `json:"missing_words"`
	Translation   string `json:"translation"`
	Verb          string `json:"verb"`
	Word          string `json:"word"`
	Type          string `json:"type"`
	Level         string `json:"level"`
	Explanation   string `json:"explanation"`
}

func (s sentenceExercise) text() string {
	return QuestionKey(s.Question, s.Sentence, s.DutchSentence)
}

func (s sentenceExercise) answer() string {
	return firstNonEmpty(s.MissingWords, s.CorrectAnswer, s.Answer)
}

func (s sentenceExercise) exercise(id string) Exercise {
	attrs := map[string]string{}
	if s.Level != "" {
		attrs["level"] = s.Level
	}
	if s.Type != "" {
		attrs["type"] = s.Type
	}
	return Exercise{
		ID:          id,
		Prompt:      s.text(),
		Translation: s.Translation,
		Hint:        firstNonEmpty(s.Verb, s.Word),
		Explanation: s.Explanation,
		Answers:     []string{s.answer()},
		Attrs:       attrs,
	}
}

func (c *Catalog) sentences(file string) ([]sentenceExercise, error) {
	var list []sentenceExercise
	if err := c.decode(file, &list); err != nil {
		return nil, err
	}
	out := list[:0]
	for _, s := range list {
		if s.text() != "" && s.answer() != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

func (c *Catalog) questionBased(file string) ([]Exercise, error) {
	list, err := c.sentences(file)
	if err != nil {
		return nil, err
	}
	out := make([]Exercise, 0, len(list))
	for _, s := range list {
		out = append(out, s.exercise(QuestionKey(s.Question, s.Sentence, s.DutchSentence)))
	}
	return out, nil
}

func (c *Catalog) separableVerbs() ([]Exercise, error) {
	return c.questionBased("separable_verbs.json")
}

func (c *Catalog) reflexiveVerbs() ([]Exercise, error) {
	return c.questionBased("reflexive_verbs.json")
}

func (c *Catalog) comparatives() ([]Exercise, error) {
	return c.questionBased("comparatives.json")
}

func (c *Catalog) verbPrepositions() ([]Exercise, error) {
	list, err := c.sentences("verb_prepositions.json")
	if err != nil {
		return nil, err
	}
	out := make([]Exercise, 0, len(list))
	for _, s := range list {
		out = append(out, s.exercise(CompositeKey(s.text(), s.Verb, "verb_preposition")))
	}
	return out, nil
}

// pairVariants zips Dutch prompts with their translations. Missing
// translations are left empty.
func pairVariants(prompts, translations []string) []Variant {
	out := make([]Variant, 0, len(prompts))
	for i, p := range prompts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		v := Variant{Prompt: p}
		if i < len(translations) {
			v.Translation = translations[i]
		}
		out = append(out, v)
	}
	return out
}

// blankWord replaces the first whole-word, case-insensitive occurrence
// of word in sentence with Blank.
func blankWord(sentence, word string) string {
	if word == "" || strings.Contains(sentence, Blank) {
		return sentence
	}
	re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
	if err != nil {
		return sentence
	}
	loc := re.FindStringIndex(sentence)
	if loc == nil {
		return sentence
	}
	return sentence[:loc[0]] + Blank + sentence[loc[1]:]
}
