package catalog

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// csvColumns is the width of a verb export row: six descriptive fields
// followed by six pronoun forms for each of present, past and perfect.
const csvColumns = 6 + 3*6

// ImportStats summarises an ImportVerbsCSV run.
type ImportStats struct {
	Rows    int
	Skipped int
	ByLevel map[string]int
}

// ImportVerbsCSV reads verb rows starting at the 1-based row startRow
// (2 skips a header). Rows with an empty infinitive are skipped.
// Future forms are never read; they are generated on expansion.
func ImportVerbsCSV(r io.Reader, startRow int) ([]CompressedVerb, ImportStats, error) {
	if startRow < 1 {
		startRow = 1
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	stats := ImportStats{ByLevel: map[string]int{}}
	var verbs []CompressedVerb
	for row := 1; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("row %d: %w", row, err)
		}
		if row < startRow {
			continue
		}
		stats.Rows++
		if len(rec) == 0 || strings.TrimSpace(rec[0]) == "" {
			stats.Skipped++
			continue
		}
		v := verbFromRecord(rec)
		verbs = append(verbs, v)
		stats.ByLevel[v.Level]++
	}
	return verbs, stats, nil
}

func verbFromRecord(rec []string) CompressedVerb {
	if len(rec) < csvColumns {
		rec = append(rec, make([]string, csvColumns-len(rec))...)
	}
	forms := func(offset int) CompressedTense {
		c := make(map[string]string, len(Pronouns))
		for i, p := range Pronouns {
			c[p] = rec[offset+i]
		}
		return CompressedTense{Conjugations: c}
	}
	return CompressedVerb{
		Infinitive: strings.TrimSpace(rec[0]),
		English:    rec[1],
		Stem:       rec[2],
		Level:      rec[3],
		Separable:  rec[4] == "true",
		Irregular:  rec[5] == "true",
		Tenses: map[string]CompressedTense{
			"pr": forms(6),
			"pa": forms(12),
			"pe": forms(18),
		},
	}
}

// AppendVerbs adds verbs to the verb file at path. A backup holding the
// updated data is written next to it first, named with the current time.
// It returns the backup path.
func AppendVerbs(path string, verbs []CompressedVerb, now time.Time) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var data VerbData
	if err := json.Unmarshal(raw, &data); err != nil {
		return "", fmt.Errorf("parsing %s: %w", path, err)
	}
	data.Verbs = append(data.Verbs, verbs...)

	pretty, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	backup := path + ".backup-" + strings.ReplaceAll(now.UTC().Format("2006-01-02T15:04:05"), ":", "-")
	if err := os.WriteFile(backup, pretty, 0644); err != nil {
		return "", fmt.Errorf("writing backup: %w", err)
	}

	compact, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, compact, 0644); err != nil {
		return backup, err
	}
	return backup, nil
}
