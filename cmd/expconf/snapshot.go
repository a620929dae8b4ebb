package main

import (
	"github.com/spf13/cobra"

	"github.com/nauticalab/expconf/internal/cli"
)

var (
	// Snapshot command flags
	snapshotOut string
)

// snapshotCmd represents the snapshot command
var snapshotCmd = &cobra.Command{
	Use:   "snapshot <config-file> [overrides...]",
	Short: "Write a resolved configuration as a reproducible YAML snapshot",
	Long: `Resolve a configuration file and write its serialized form to a YAML
snapshot. A snapshot restores the exact configuration of a run without
re-reading the original file, and accepts fresh overrides on restore:

  expconf snapshot experiment.conf -o run1.yaml
  expconf show --from-snapshot run1.yaml train.eval_batch_size:8`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cli.SnapshotRun(args[0], snapshotOut, args[1:])
	},
}

func init() {
	// Snapshot command specific flags
	snapshotCmd.Flags().StringVarP(&snapshotOut, "out", "o", "snapshot.yaml", "Output path for the YAML snapshot")
}
