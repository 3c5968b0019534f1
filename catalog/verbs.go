package catalog

import (
	"fmt"
	"maps"
)

// Pronouns in the order they are drilled.
var Pronouns = []string{"ik", "jij", "hij/zij", "wij", "jullie", "zij"}

// Tenses in the order they are drilled.
var Tenses = []string{"present", "past", "perfect", "future"}

// tenseFields maps tense names to their keys in the compressed data.
var tenseFields = map[string]string{
	"present": "pr",
	"past":    "pa",
	"perfect": "pe",
	"future":  "fu",
}

// futureAuxiliary holds the form of "zullen" per pronoun.
var futureAuxiliary = map[string]string{
	"ik":      "zal",
	"jij":     "zult",
	"hij/zij": "zal",
	"wij":     "zullen",
	"jullie":  "zullen",
	"zij":     "zullen",
}

// VerbData is the top level of verbs.json.
type VerbData struct {
	Verbs []CompressedVerb `json:"v"`
}

// CompressedVerb is a verb as stored on disk, with short field names.
type CompressedVerb struct {
	Infinitive string                     `json:"i"`
	English    string                     `json:"e"`
	Stem       string                     `json:"s"`
	Level      string                     `json:"l"`
	Separable  bool                       `json:"sp"`
	Irregular  bool                       `json:"ir"`
	Tenses     map[string]CompressedTense `json:"t"`
}

// CompressedTense holds the pronoun forms of one tense.
type CompressedTense struct {
	Conjugations map[string]string `json:"c"`
}

// Verb is a verb with full field names and every tense filled in.
type Verb struct {
	Infinitive   string
	English      string
	Stem         string
	Level        string
	Separable    bool
	Irregular    bool
	Conjugations map[string]map[string]string // tense -> pronoun -> form
}

// ExpandVerb converts the compressed form. The future tense is generated
// from "zullen" when the data does not carry it.
func ExpandVerb(cv CompressedVerb) Verb {
	v := Verb{
		Infinitive:   cv.Infinitive,
		English:      cv.English,
		Stem:         cv.Stem,
		Level:        cv.Level,
		Separable:    cv.Separable,
		Irregular:    cv.Irregular,
		Conjugations: make(map[string]map[string]string, len(Tenses)),
	}
	for _, tense := range Tenses {
		if t, ok := cv.Tenses[tenseFields[tense]]; ok && len(t.Conjugations) > 0 {
			v.Conjugations[tense] = maps.Clone(t.Conjugations)
		}
	}
	if _, ok := v.Conjugations["future"]; !ok {
		v.Conjugations["future"] = FutureForms(cv.Infinitive)
	}
	return v
}

// FutureForms returns "zullen + infinitive" for every pronoun.
func FutureForms(infinitive string) map[string]string {
	forms := make(map[string]string, len(Pronouns))
	for _, p := range Pronouns {
		forms[p] = futureAuxiliary[p] + " " + infinitive
	}
	return forms
}

// Conjugation returns the form of the verb for tense and pronoun.
func (v Verb) Conjugation(tense, pronoun string) (string, bool) {
	form, ok := v.Conjugations[tense][pronoun]
	return form, ok && form != ""
}

// VerbType returns "regular" or "irregular".
func (v Verb) VerbType() string {
	if v.Irregular {
		return "irregular"
	}
	return "regular"
}

// SeparableLabel returns "separable" or "non-separable".
func (v Verb) SeparableLabel() string {
	if v.Separable {
		return "separable"
	}
	return "non-separable"
}

// Verbs loads and expands verbs.json.
func (c *Catalog) Verbs() ([]Verb, error) {
	var data VerbData
	if err := c.decode("verbs.json", &data); err != nil {
		return nil, err
	}
	verbs := make([]Verb, 0, len(data.Verbs))
	for _, cv := range data.Verbs {
		if cv.Infinitive == "" {
			continue
		}
		verbs = append(verbs, ExpandVerb(cv))
	}
	return verbs, nil
}

func (c *Catalog) conjugations() ([]Exercise, error) {
	verbs, err := c.Verbs()
	if err != nil {
		return nil, err
	}

	var out []Exercise
	for _, v := range verbs {
		for _, tense := range Tenses {
			for _, pronoun := range Pronouns {
				form, ok := v.Conjugation(tense, pronoun)
				if !ok {
					continue
				}
				answers := []string{form}
				if tense == "future" && pronoun == "jij" {
					answers = append(answers, "zal "+v.Infinitive)
				}
				out = append(out, Exercise{
					ID:          ConjugationKey(v.Infinitive, pronoun, tense),
					Prompt:      fmt.Sprintf("%s %s (%s, %s)", pronoun, Blank, v.Infinitive, tense),
					Translation: v.English,
					Hint:        "stem: " + v.Stem,
					Answers:     answers,
					Attrs: map[string]string{
						"tense":     tense,
						"level":     v.Level,
						"verb_type": v.VerbType(),
						"separable": v.SeparableLabel(),
					},
				})
			}
		}
	}
	return out, nil
}
