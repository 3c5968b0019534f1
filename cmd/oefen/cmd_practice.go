package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/drake/oefen/drill"
	"github.com/drake/oefen/ui"
)

var practiceCmd = &cobra.Command{
	Use:   "practice [category]",
	Short: "Practise a category",
	Long: `Starts a drill. Without a category the configured default_category
is used. The full-screen UI is used when stdin is a terminal, unless
--simple is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPractice,
}

func runPractice(cmd *cobra.Command, args []string) error {
	category := cfg.DefaultCategory
	if len(args) > 0 {
		category = args[0]
	}

	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	s, err := a.session(category)
	if err != nil {
		return err
	}
	a.log.Info("practice started", zap.String("category", category), zap.String("session", s.ID()))

	var score drill.Score
	if simple || !stdinIsTerminal(cmd) {
		score, err = ui.NewConsole(s, a.notes, cmd.InOrStdin(), cmd.OutOrStdout()).Run()
	} else {
		score, err = ui.Run(s, a.notes)
		if err == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Score: %d/%d (%d%%)\n", score.Correct, score.Total, score.Accuracy())
		}
	}
	a.log.Info("practice finished",
		zap.String("session", s.ID()),
		zap.Int("correct", score.Correct),
		zap.Int("total", score.Total))
	return err
}

// stdinIsTerminal reports whether the command reads from a real terminal.
func stdinIsTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.InOrStdin().(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
