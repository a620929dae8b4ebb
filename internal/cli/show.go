package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nauticalab/expconf/internal/config"
)

// ShowOptions holds configuration for the show command.
type ShowOptions struct {
	// Section selects a single section (or a parent prefix such as
	// "tasks") to print as YAML instead of the full dump.
	Section string
	// FromSnapshot restores the configuration from a YAML snapshot
	// instead of parsing a config file.
	FromSnapshot bool
}

// ShowRun prints a configuration: the full aligned dump by default, or a
// single section (or parent prefix) as YAML.
func ShowRun(path string, overrides []string, opts ShowOptions) {
	cfg := mustLoad(path, overrides, opts.FromSnapshot)

	if opts.Section == "" {
		fmt.Print(cfg.String())
		return
	}

	data, err := yaml.Marshal(cfg.Get(opts.Section))
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to render section %q: %v\n", opts.Section, err)
		os.Exit(1)
	}
	fmt.Print(string(data))
}

// SnapshotRun loads a configuration and writes its serialized form to out
// as YAML.
func SnapshotRun(path, out string, overrides []string) {
	cfg := mustLoad(path, overrides, false)

	if err := cfg.SaveSnapshot(out); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ Snapshot written to %s\n", out)
}

func mustLoad(path string, overrides []string, fromSnapshot bool) *config.Config {
	var cfg *config.Config
	var err error
	if fromSnapshot {
		cfg, err = config.LoadSnapshot(path, overrides)
	} else {
		cfg, err = config.Load(path, overrides)
	}
	if err != nil {
		reportLoadError(err)
		os.Exit(1)
	}
	return cfg
}
