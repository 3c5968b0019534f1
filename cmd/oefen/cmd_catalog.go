package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/drake/oefen/catalog"
	"github.com/drake/oefen/ui/style"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the drills",
	Args:  cobra.NoArgs,
	RunE:  runCategories,
}

var wordCmd = &cobra.Command{
	Use:   "word",
	Short: "Show the noun of the day",
	Args:  cobra.NoArgs,
	RunE:  runWord,
}

var (
	importStartRow int
	importTarget   string
)

var importVerbsCmd = &cobra.Command{
	Use:   "import-verbs <csv>",
	Short: "Append verbs from a spreadsheet export",
	Long: `Reads verbs from a CSV file with 24 columns:

  infinitive, english, stem, level, is_separable, is_irregular,
  six present forms, six past forms, six perfect forms
  (pronoun order: ik, jij, hij/zij, wij, jullie, zij)

and appends them to verbs.json in data_dir (or --target). Future forms are
generated and never imported. A timestamped backup is written first.`,
	Args: cobra.ExactArgs(1),
	RunE: runImportVerbs,
}

func init() {
	importVerbsCmd.Flags().IntVar(&importStartRow, "start-row", 2, "first CSV row to import (1-based; 2 skips the header)")
	importVerbsCmd.Flags().StringVar(&importTarget, "target", "", "verbs.json to update (default <data_dir>/verbs.json)")
}

func runCategories(cmd *cobra.Command, args []string) error {
	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	styles := style.DefaultStyles()
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.TableBorder).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.TableHeader
			}
			return styles.TableCell
		}).
		Headers("NAME", "WINDOW", "DESCRIPTION")
	for _, c := range catalog.Categories() {
		t.Row(c.Name, strconv.Itoa(a.capacity(c)), c.Description)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), t.Render())
	return err
}

func runWord(cmd *cobra.Command, args []string) error {
	nouns, err := catalog.New(cfg.DataDir).Nouns()
	if err != nil {
		return err
	}
	n, ok := catalog.WordOfTheDay(nouns, time.Now())
	if !ok {
		return errors.New("no nouns available")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n", n.Article, n.Name, n.Translation)
	return nil
}

func runImportVerbs(cmd *cobra.Command, args []string) error {
	target := importTarget
	if target == "" {
		if cfg.DataDir == "" {
			return errors.New("set data_dir in the config or pass --target")
		}
		target = filepath.Join(cfg.DataDir, "verbs.json")
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	verbs, stats, err := catalog.ImportVerbsCSV(f, importStartRow)
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}
	if len(verbs) == 0 {
		return errors.New("no valid verbs found to import")
	}

	if err := seedVerbFile(target); err != nil {
		return err
	}
	backup, err := catalog.AppendVerbs(target, verbs, time.Now())
	if err != nil {
		return err
	}
	logger.Info("verbs imported",
		zap.String("target", target),
		zap.Int("added", len(verbs)),
		zap.Int("skipped", stats.Skipped))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Added %d verbs to %s (skipped %d rows)\n", len(verbs), target, stats.Skipped)
	fmt.Fprintf(out, "Backup: %s\n", backup)
	levels := make([]string, 0, len(stats.ByLevel))
	for l := range stats.ByLevel {
		levels = append(levels, l)
	}
	slices.Sort(levels)
	for _, l := range levels {
		fmt.Fprintf(out, "  %s: %d\n", l, stats.ByLevel[l])
	}
	return nil
}

// seedVerbFile copies the built-in verbs to path when it does not exist.
func seedVerbFile(path string) error {
	if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	data, err := catalog.New("").ReadFile("verbs.json")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
