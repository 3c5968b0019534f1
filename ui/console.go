package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/drake/oefen/drill"
)

// Console is the line-based front end used with --simple or when stdin
// is not a terminal.
type Console struct {
	session *drill.Session
	notes   *Notes
	in      *bufio.Scanner
	out     io.Writer
}

// NewConsole creates a console reading answers from in.
func NewConsole(s *drill.Session, notes *Notes, in io.Reader, out io.Writer) *Console {
	return &Console{
		session: s,
		notes:   notes,
		in:      bufio.NewScanner(in),
		out:     out,
	}
}

// Run drills until :q or end of input and returns the final score.
func (c *Console) Run() (drill.Score, error) {
	fmt.Fprintf(c.out, "Practising %s. Commands: :hint :skip :filter :filters :score :q\n", c.session.Category())

	c.next()
	for c.in.Scan() {
		line := strings.TrimSpace(c.in.Text())

		switch {
		case line == ":q" || line == ":quit":
			c.showScore()
			return c.session.Score(), nil
		case line == ":hint":
			if hint := c.session.Hint(); hint != "" {
				fmt.Fprintln(c.out, "hint:", hint)
			} else {
				fmt.Fprintln(c.out, "No hint for this one.")
			}
		case line == ":score":
			c.showScore()
		case line == ":skip":
			c.next()
			continue
		case line == ":filters":
			for _, l := range describeFilters(c.session.Prefs()) {
				fmt.Fprintln(c.out, "  "+l)
			}
		case line == ":filter" || strings.HasPrefix(line, ":filter "):
			if c.filter(strings.TrimPrefix(line, ":filter")) {
				continue
			}
		default:
			advanced, err := c.check(line)
			if err != nil {
				return c.session.Score(), err
			}
			if advanced {
				continue
			}
		}
		fmt.Fprint(c.out, "> ")
	}
	c.showScore()
	return c.session.Score(), c.in.Err()
}

// check scores line and moves on. It reports whether a new prompt was
// shown.
func (c *Console) check(line string) (bool, error) {
	res, err := c.session.Check(line)
	switch {
	case errors.Is(err, drill.ErrEmptyAnswer):
		fmt.Fprintln(c.out, "Type an answer, or :skip.")
		return false, nil
	case errors.Is(err, drill.ErrNoExercises):
		fmt.Fprintln(c.out, "No exercises match the current filters. Change them with :filter.")
		return false, nil
	case err != nil:
		return false, err
	}

	if res.Correct {
		fmt.Fprintln(c.out, "Goed!", res.Sentence)
	} else {
		fmt.Fprintf(c.out, "Fout. Answer: %s\n  %s\n", res.Expected, res.Sentence)
	}
	if res.Explanation != "" {
		fmt.Fprintln(c.out, "  "+res.Explanation)
	}
	c.next()
	return true, nil
}

// filter applies a :filter command. It reports whether a new prompt was
// shown.
func (c *Console) filter(args string) bool {
	regenerated, err := applyFilter(c.session, args)
	switch {
	case errors.Is(err, drill.ErrNoExercises):
		fmt.Fprintln(c.out, "No exercises match the current filters.")
		return false
	case err != nil:
		fmt.Fprintln(c.out, err)
		return false
	}

	fmt.Fprintf(c.out, "Filters updated: %d exercises.\n", c.session.PoolSize())
	p, ok := c.session.Current()
	switch {
	case !ok:
		c.next()
		return true
	case regenerated:
		c.showPrompt(p)
		return true
	}
	return false
}

func (c *Console) next() {
	p, err := c.session.Next()
	if err != nil {
		c.flushNotes()
		fmt.Fprintln(c.out, "No exercises match the current filters. Change them with :filter.")
		fmt.Fprint(c.out, "> ")
		return
	}
	c.showPrompt(p)
}

func (c *Console) showPrompt(p drill.Prompt) {
	c.flushNotes()
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, p.Text)
	if p.Translation != "" {
		fmt.Fprintf(c.out, "  (%s)\n", p.Translation)
	}
	for i, o := range p.Options {
		fmt.Fprintf(c.out, "  %d) %s\n", i+1, o)
	}
	fmt.Fprint(c.out, "> ")
}

func (c *Console) showScore() {
	s := c.session.Score()
	fmt.Fprintf(c.out, "Score: %d/%d (%d%%)\n", s.Correct, s.Total, s.Accuracy())
}

func (c *Console) flushNotes() {
	for _, line := range c.notes.Drain() {
		fmt.Fprintln(c.out, line)
	}
}
