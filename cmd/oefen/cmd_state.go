package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/drake/oefen/catalog"
	"github.com/drake/oefen/filters"
)

// =============================================================================
// HISTORY
// =============================================================================

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect or clear the recently shown exercises",
}

var historyShowCmd = &cobra.Command{
	Use:   "show [category]",
	Short: "List the repetition window, most recent first",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistoryShow,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear [category]",
	Short: "Forget recently shown exercises (all categories when none is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistoryClear,
}

func init() {
	historyCmd.AddCommand(historyShowCmd, historyClearCmd)
}

func categoryArgs(args []string) ([]string, error) {
	if len(args) == 0 {
		return catalog.Names(), nil
	}
	if _, ok := catalog.Lookup(args[0]); !ok {
		return nil, unknownCategory(args[0])
	}
	return args[:1], nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	names, err := categoryArgs(args)
	if err != nil {
		return err
	}
	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	for _, name := range names {
		h, err := a.history(name)
		if err != nil {
			return err
		}
		recent := h.Peek()
		fmt.Fprintf(out, "%s (%d/%d)\n", name, len(recent), h.Capacity())
		for i, id := range recent {
			fmt.Fprintf(out, "  %d. %s\n", i+1, id)
		}
	}
	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	names, err := categoryArgs(args)
	if err != nil {
		return err
	}
	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	for _, name := range names {
		h, err := a.history(name)
		if err != nil {
			return err
		}
		h.Clear()
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Cleared history for %s\n", strings.Join(names, ", "))
	return nil
}

// =============================================================================
// FILTERS
// =============================================================================

var filtersCmd = &cobra.Command{
	Use:   "filters",
	Short: "Show or change the filters that narrow each drill",
}

var filtersShowCmd = &cobra.Command{
	Use:   "show [kind]",
	Short: "Show the active filters",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFiltersShow,
}

var filtersSetCmd = &cobra.Command{
	Use:   "set <kind> <dimension> [values...]",
	Short: "Replace the allowed values of one dimension",
	Long: `Replaces the allowed values of one filter dimension and saves them.
Values may be separated by spaces or commas. Giving no values excludes
every exercise that has that attribute.

Example:
  oefen filters set verb_conjugation tense present past`,
	Args: cobra.MinimumNArgs(2),
	RunE: runFiltersSet,
}

var filtersResetCmd = &cobra.Command{
	Use:   "reset <kind>",
	Short: "Return to the default filters",
	Args:  cobra.ExactArgs(1),
	RunE:  runFiltersReset,
}

func init() {
	filtersCmd.AddCommand(filtersShowCmd, filtersSetCmd, filtersResetCmd)
}

func runFiltersShow(cmd *cobra.Command, args []string) error {
	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	kinds := a.filters.Kinds()
	if len(args) > 0 {
		if !a.filters.Known(args[0]) {
			return unknownCategory(args[0])
		}
		kinds = args[:1]
	}

	out := cmd.OutOrStdout()
	for _, kind := range kinds {
		prefs := a.filters.Load(kind)
		source := "default"
		if a.filters.Has(kind) {
			source = "saved"
		}
		fmt.Fprintf(out, "%s (%s)\n", kind, source)
		if len(prefs) == 0 {
			fmt.Fprintln(out, "  no filters")
		}
		for _, dim := range prefs.Dimensions() {
			fmt.Fprintf(out, "  %s: %s\n", dim, strings.Join(prefs[dim], ", "))
		}
	}
	return nil
}

func runFiltersSet(cmd *cobra.Command, args []string) error {
	kind, dim := args[0], args[1]

	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	if !a.filters.Known(kind) {
		return unknownCategory(kind)
	}
	defaults := a.filters.Defaults(kind)
	if _, ok := defaults[dim]; !ok {
		return fmt.Errorf("%s has no %q filter (available: %s)",
			kind, dim, strings.Join(defaults.Dimensions(), ", "))
	}

	values := filters.ParseValues(args[2:])
	prefs := a.filters.Load(kind)
	prefs[dim] = values
	a.filters.Save(kind, prefs)

	fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n", kind, dim, strings.Join(values, ", "))
	return nil
}

func runFiltersReset(cmd *cobra.Command, args []string) error {
	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	if !a.filters.Known(args[0]) {
		return unknownCategory(args[0])
	}
	a.filters.Clear(args[0])
	fmt.Fprintf(cmd.OutOrStdout(), "Reset filters for %s\n", args[0])
	return nil
}
