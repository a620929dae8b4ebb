package main

import (
	"github.com/spf13/cobra"

	"github.com/nauticalab/expconf/internal/cli"
)

var (
	// Validate command flags
	validateStrict bool
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate <config-file> [overrides...]",
	Short: "Validate an experiment configuration file",
	Long: `Validate an experiment configuration file for common issues.

This command checks for:
- Missing [train] or [model] sections
- Section names outside [train], [model] and [tasks.*]
- Section nesting deeper than one dot
- Duplicate keys within a section
- Unknown [train] options, with fuzzy "did you mean" suggestions
- Overrides addressed to sections that do not exist

Overrides given after the file path are applied before validation, so a
typo in an override is caught the same way as one in the file.

Examples:
  expconf validate experiment.conf
  expconf validate experiment.conf train.batch_size:128
  expconf validate --strict experiment.conf`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := cli.ValidateOptions{
			Strict:  validateStrict,
			Verbose: verbose,
		}
		cli.ValidateRun(args[0], args[1:], opts)
	},
}

func init() {
	// Validate command specific flags
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "Also run semantic validation of the [train] hyperparameters")
}
