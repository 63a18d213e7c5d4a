package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/screenbadge/internal/config"
)

var configOpts struct {
	format string
	force  bool
}

// configCmd prints the effective configuration.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective badge configuration",
	Long: `Print the badge configuration after defaults, the config file and
flags have been applied. This is what 'screenbadge show' would display.`,
	Example: `  screenbadge config
  screenbadge config --format json --color red`,
	RunE: runConfig,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := globalOpts.configPath
		if path == "" {
			path = config.Path()
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with default values",
	RunE:  runConfigInit,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)

	configCmd.Flags().StringVarP(&configOpts.format, "format", "f", string(config.FormatTOML),
		fmt.Sprintf("Output format %v", config.ValidFormats()))
	addBadgeFlags(configCmd)

	configInitCmd.Flags().BoolVar(&configOpts.force, "force", false,
		"Overwrite an existing config file")
}

func runConfig(cmd *cobra.Command, args []string) error {
	badgeCfg, err := applyFlagOverrides(cmd, cfg)
	if err != nil {
		return err
	}
	return config.Encode(cmd.OutOrStdout(), badgeCfg, config.Format(configOpts.format))
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := globalOpts.configPath
	if path == "" {
		path = config.Path()
	}

	if _, err := os.Stat(path); err == nil && !configOpts.force {
		return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
	}

	if err := config.Default().Save(path); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "wrote", path)
	return nil
}
