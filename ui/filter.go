package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/drake/oefen/drill"
	"github.com/drake/oefen/filters"
)

const filterUsage = "usage: <dimension> [values...]"

// applyFilter parses "dimension value..." and narrows the session to the
// given values of that dimension. Values may be separated by spaces or
// commas; none excludes every exercise with the attribute.
func applyFilter(s *drill.Session, line string) (regenerated bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, errors.New(filterUsage)
	}

	prefs := s.Prefs()
	dim := fields[0]
	if _, ok := prefs[dim]; !ok {
		if len(prefs) == 0 {
			return false, fmt.Errorf("%s has no filters", s.Category())
		}
		return false, fmt.Errorf("no %q filter (available: %s)", dim, strings.Join(prefs.Dimensions(), ", "))
	}

	prefs[dim] = filters.ParseValues(fields[1:])
	return s.SetFilters(prefs)
}

// describeFilters renders prefs one dimension per line.
func describeFilters(prefs filters.Prefs) []string {
	if len(prefs) == 0 {
		return []string{"no filters"}
	}
	lines := make([]string, 0, len(prefs))
	for _, dim := range prefs.Dimensions() {
		lines = append(lines, dim+": "+strings.Join(prefs[dim], ", "))
	}
	return lines
}
