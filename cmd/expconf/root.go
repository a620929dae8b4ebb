package main

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags (available to all commands)
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "expconf",
	Short: "Load, validate and inspect experiment configuration files",
	Long: `expconf resolves experiment configuration files into their final form.

It parses INI-style configuration files with [train], [model] and
[tasks.*] sections, expands environment placeholders and ${section:key}
references, coerces values to their natural types, overlays the canonical
training defaults and any command-line overrides, and validates the
result.

Overrides use the form section.key:value and always win over file values:

  expconf validate experiment.conf train.batch_size:128`,
}

func init() {
	// Global flags available to all subcommands
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	// Add subcommands to root
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(versionCmd)
}
