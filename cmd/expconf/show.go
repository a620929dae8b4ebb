package main

import (
	"github.com/spf13/cobra"

	"github.com/nauticalab/expconf/internal/cli"
)

var (
	// Show command flags
	showSection      string
	showFromSnapshot bool
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <config-file> [overrides...]",
	Short: "Print a fully resolved configuration",
	Long: `Print a fully resolved configuration: defaults, file values and
overrides merged, every value coerced and every path expanded.

By default the whole configuration is printed as an aligned, deterministic
dump suitable for logs. With --section a single section is printed as
YAML; a parent prefix such as "tasks" prints all of its children.

Examples:
  expconf show experiment.conf
  expconf show experiment.conf train.batch_size:128
  expconf show --section tasks experiment.conf
  expconf show --from-snapshot run1.yaml`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := cli.ShowOptions{
			Section:      showSection,
			FromSnapshot: showFromSnapshot,
		}
		cli.ShowRun(args[0], args[1:], opts)
	},
}

func init() {
	// Show command specific flags
	showCmd.Flags().StringVar(&showSection, "section", "", "Print a single section (or parent prefix) as YAML")
	showCmd.Flags().BoolVar(&showFromSnapshot, "from-snapshot", false, "Treat the input as a YAML snapshot instead of a config file")
}
