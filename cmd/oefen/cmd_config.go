package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or write the configuration file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the effective configuration to the config file",
	Long: `Writes the effective configuration (defaults, the config file and
OEFEN_* environment overrides) to the config file so it can be edited.
An existing file is kept unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing config file")
	configCmd.AddCommand(configShowCmd, configInitCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	data, err := cfg.YAML()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", configPath(), data)
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configPath()
	if !configForce {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	if err := cfg.Save(path); err != nil {
		return err
	}
	logger.Info("config written", zap.String("path", path))
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
