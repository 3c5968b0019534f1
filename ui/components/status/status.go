package status

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	"github.com/drake/oefen/drill"
	"github.com/drake/oefen/ui/style"
)

// Bar shows the category, the size of the filtered pool and the score.
type Bar struct {
	category string
	pool     int
	score    drill.Score
	width    int
	styles   style.Styles
}

// New creates a new status bar.
func New(styles style.Styles, category string) Bar {
	return Bar{category: category, styles: styles}
}

// SetWidth updates the status bar width. Zero disables truncation.
func (s *Bar) SetWidth(w int) {
	s.width = w
}

// Update refreshes the counters.
func (s *Bar) Update(pool int, score drill.Score) {
	s.pool = pool
	s.score = score
}

// Text returns the unstyled status line, truncated to the bar width.
func (s *Bar) Text() string {
	line := fmt.Sprintf("%s · %d exercises · %d/%d · %d%%",
		s.category, s.pool, s.score.Correct, s.score.Total, s.score.Accuracy())
	if s.width > 0 && runewidth.StringWidth(line) > s.width {
		line = runewidth.Truncate(line, s.width, "…")
	}
	return line
}

// View renders the status bar.
func (s *Bar) View() string {
	return s.styles.StatusBar.Render(s.Text())
}
