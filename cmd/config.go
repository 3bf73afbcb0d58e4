package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/alexiusacademia/gotruss/internal/config"
	"github.com/spf13/cobra"
)

var (
	configInitPreset string
	configInitForce  bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage gotruss configuration files",
	Long: `Manage YAML configuration files for the analyze and sweep commands.

Subcommands:
  init  - Write a config file from a preset`,
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a config file from a preset",
	Long: `Write a YAML config file holding every setting of a preset, ready to
edit and pass to 'gotruss analyze -f'.

Examples:
  gotruss config init
  gotruss config init catalog.yaml --preset catalog`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)

	configInitCmd.Flags().StringVar(&configInitPreset, "preset", config.DefaultPreset, "Preset to write ("+strings.Join(config.ListPresets(), "|")+")")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := "gotruss.yaml"
	if len(args) == 1 {
		path = args[0]
	}

	f := config.Preset(configInitPreset)
	if f == nil {
		return fmt.Errorf("unknown preset %q (available: %s)", configInitPreset, strings.Join(config.ListPresets(), ", "))
	}

	if !configInitForce {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	if err := config.Save(path, f); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s preset to %s\n", configInitPreset, path)
	return nil
}
