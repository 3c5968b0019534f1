package catalog

import (
	"encoding/json"
	"hash/fnv"
	"strconv"
	"strings"
)

// Identity keys decide which exercises count as "the same" for the
// repetition window. Records with the same semantic identity must map
// to the same key; records that share a key are treated as one exercise.

// ConjugationKey identifies one verb/pronoun/tense combination.
func ConjugationKey(infinitive, pronoun, tense string) string {
	return infinitive + "_" + pronoun + "_" + tense
}

// NounKey identifies a word by the first non-empty spelling given.
func NounKey(spellings ...string) string {
	return firstNonEmpty(spellings...)
}

// QuestionKey identifies a sentence exercise by the first non-empty
// of its question or sentence texts.
func QuestionKey(texts ...string) string {
	return firstNonEmpty(texts...)
}

// CompositeKey hashes question, word and kind into a stable decimal key
// for exercises that have no single identifying field.
func CompositeKey(question, word, kind string) string {
	doc, _ := json.Marshal(struct {
		Question string `json:"question"`
		Word     string `json:"word"`
		Type     string `json:"type"`
	}{question, word, kind})

	h := fnv.New32a()
	h.Write(doc)
	return strconv.FormatUint(uint64(h.Sum32()), 10)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
