package catalog

import "time"

// WordOfTheDay returns the noun for the day of year of t. The choice is
// the same for everyone on a given day and ok is false when nouns is empty.
func WordOfTheDay(nouns []Noun, t time.Time) (n Noun, ok bool) {
	if len(nouns) == 0 {
		return n, false
	}
	return nouns[t.YearDay()%len(nouns)], true
}
