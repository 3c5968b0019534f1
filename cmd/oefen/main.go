// Command oefen drills Dutch grammar in the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/drake/oefen/config"
	"github.com/drake/oefen/logging"
)

var (
	cfgPath string
	logDest string
	verbose bool
	simple  bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "oefen",
	Short: "Dutch grammar drills in the terminal",
	Long: `oefen drills Dutch grammar: articles, verb conjugation, adverbs,
conjunctions, separable and reflexive verbs, comparatives, verbs with
fixed prepositions, adjective endings, negation, object pronouns and
pronominal adverbs.

Recently shown exercises are remembered per category so that nothing
repeats too soon, across runs. Run without arguments to practise the
default category.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := configPath()
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		if err := loaded.Validate(); err != nil {
			return fmt.Errorf("invalid config %s: %w", path, err)
		}
		cfg = loaded

		logger, err = logging.New(cfg.Logging, verbose, logDest)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	Args: cobra.NoArgs,
	RunE: runPractice,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default <config dir>/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logDest, "log", "", "log destination: a file, stderr or stdout (default logging.file or <config dir>/oefen.log)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().BoolVar(&simple, "simple", false, "line-based console instead of the full-screen UI")

	rootCmd.AddCommand(
		practiceCmd,
		categoriesCmd,
		historyCmd,
		filtersCmd,
		wordCmd,
		importVerbsCmd,
		configCmd,
	)
}

// configPath is the config file in use.
func configPath() string {
	if cfgPath != "" {
		return cfgPath
	}
	return config.File()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
