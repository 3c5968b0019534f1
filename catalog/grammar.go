package catalog

import "strings"

type adjective struct {
	Sentence      string   `json:"sentence"`
	Translation   string   `json:"translation"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

type adjectiveFile struct {
	Adjectives []adjective `json:"dutch_adjectives"`
}

func (c *Catalog) adjectives() ([]Exercise, error) {
	var f adjectiveFile
	if err := c.decode("adjectives.json", &f); err != nil {
		return nil, err
	}
	out := make([]Exercise, 0, len(f.Adjectives))
	for _, a := range f.Adjectives {
		if a.Sentence == "" || a.CorrectAnswer == "" {
			continue
		}
		out = append(out, Exercise{
			ID:          QuestionKey(a.Sentence),
			Prompt:      a.Sentence,
			Translation: a.Translation,
			Explanation: a.Explanation,
			Answers:     []string{a.CorrectAnswer},
			Options:     withAnswer(a.Options, a.CorrectAnswer),
		})
	}
	return out, nil
}

type negation struct {
	Question            string `json:"question"`
	QuestionTranslation string `json:"question_translation"`
	CorrectAnswer       string `json:"correct_answer"`
	IncorrectAnswer     string `json:"incorrect_answer"`
	CorrectTranslation  string `json:"correct_translation"`
	Explanation         string `json:"explanation"`
}

func (c *Catalog) negation() ([]Exercise, error) {
	var list []negation
	if err := c.decode("negation.json", &list); err != nil {
		return nil, err
	}
	out := make([]Exercise, 0, len(list))
	for _, n := range list {
		if n.Question == "" || n.CorrectAnswer == "" {
			continue
		}
		explanation := n.Explanation
		if n.CorrectTranslation != "" {
			explanation = strings.TrimSpace(explanation + " (" + n.CorrectTranslation + ")")
		}
		out = append(out, Exercise{
			ID:          QuestionKey(n.Question),
			Prompt:      n.Question,
			Translation: n.QuestionTranslation,
			Explanation: explanation,
			Answers:     []string{n.CorrectAnswer},
			Options:     withAnswer([]string{n.IncorrectAnswer}, n.CorrectAnswer),
		})
	}
	return out, nil
}

type objectPronoun struct {
	Sentence      string   `json:"sentence"`
	Translation   string   `json:"translation"`
	CorrectAnswer string   `json:"correct_answer"`
	Alternatives  []string `json:"alternatives"`
	Context       string   `json:"context"`
	PronounType   string   `json:"pronoun_type"`
	Explanation   string   `json:"explanation"`
}

type objectPronounFile struct {
	Pronouns []objectPronoun `json:"dutch_object_pronouns"`
}

func (c *Catalog) objectPronouns() ([]Exercise, error) {
	var f objectPronounFile
	if err := c.decode("object_pronouns.json", &f); err != nil {
		return nil, err
	}
	out := make([]Exercise, 0, len(f.Pronouns))
	for _, p := range f.Pronouns {
		if p.Sentence == "" || p.CorrectAnswer == "" {
			continue
		}
		attrs := map[string]string{}
		if p.PronounType != "" {
			attrs["pronoun_type"] = p.PronounType
		}
		out = append(out, Exercise{
			ID:          QuestionKey(p.Sentence),
			Prompt:      p.Sentence,
			Translation: p.Translation,
			Hint:        strings.ReplaceAll(p.Context, "_", " "),
			Explanation: p.Explanation,
			Answers:     append([]string{p.CorrectAnswer}, p.Alternatives...),
			Attrs:       attrs,
		})
	}
	return out, nil
}

type pronominalAdverb struct {
	Sentence        string `json:"sentence"`
	Translation     string `json:"translation"`
	CorrectAnswer   string `json:"correct_answer"`
	VerbPreposition string `json:"verb_preposition"`
	Explanation     string `json:"explanation"`
}

type pronominalAdverbFile struct {
	Adverbs []pronominalAdverb `json:"dutch_pronominal_adverbs"`
}

func (c *Catalog) pronominalAdverbs() ([]Exercise, error) {
	var f pronominalAdverbFile
	if err := c.decode("pronominal_adverbs.json", &f); err != nil {
		return nil, err
	}
	out := make([]Exercise, 0, len(f.Adverbs))
	for _, a := range f.Adverbs {
		if a.Sentence == "" || a.CorrectAnswer == "" {
			continue
		}
		var hint string
		if a.VerbPreposition != "" {
			hint = "verb + preposition: " + a.VerbPreposition
		}
		out = append(out, Exercise{
			ID:          QuestionKey(a.Sentence),
			Prompt:      a.Sentence,
			Translation: a.Translation,
			Hint:        hint,
			Explanation: a.Explanation,
			Answers:     []string{a.CorrectAnswer},
		})
	}
	return out, nil
}

// withAnswer returns options with answer added when it is missing, and
// with blanks and duplicates dropped.
func withAnswer(options []string, answer string) []string {
	out := make([]string, 0, len(options)+1)
	seen := map[string]bool{}
	for _, o := range append([]string{answer}, options...) {
		o = strings.TrimSpace(o)
		if o == "" || seen[o] {
			continue
		}
		seen[o] = true
		out = append(out, o)
	}
	return out
}
