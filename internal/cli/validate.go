// Package cli implements the expconf command logic: loading
// configurations, printing user-facing diagnostics, and deciding exit
// status. The config package never exits; that policy lives here.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/nauticalab/expconf/internal/config"
)

// ValidateOptions holds configuration for the validate command.
type ValidateOptions struct {
	// Strict additionally decodes [train] into its typed form and runs
	// semantic range/enum validation on the hyperparameters.
	Strict  bool
	Verbose bool
}

// ValidateRun loads and validates a configuration file, printing every
// diagnostic before exiting non-zero on failure.
func ValidateRun(path string, overrides []string, opts ValidateOptions) {
	fmt.Printf("🔍 Validating configuration: %s\n", path)

	cfg, err := config.Load(path, overrides)
	if err != nil {
		reportLoadError(err)
		os.Exit(1)
	}

	if opts.Strict {
		if _, err := cfg.TrainSettings(); err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			os.Exit(1)
		}
	}

	if opts.Verbose {
		fmt.Printf("   Sections: %v\n", cfg.Sections())
	}
	fmt.Println("✅ Configuration is valid!")
}

// reportLoadError prints a load failure. Unknown-key results carry one
// diagnostic per offending key and are printed line by line, the way the
// collect-all validator intends; everything else is a single fatal line.
func reportLoadError(err error) {
	var result *config.ValidationResult
	if errors.As(err, &result) {
		for _, diagnostic := range result.Diagnostics {
			fmt.Fprintln(os.Stderr, diagnostic.Message())
		}
		fmt.Fprintf(os.Stderr, "❌ Validation failed with %d unknown option(s)\n", len(result.Diagnostics))
		return
	}
	fmt.Fprintf(os.Stderr, "❌ %v\n", err)
}
