// Package config implements the hierarchical experiment-configuration
// system: a layered, typed, override-able, validated key/value store built
// from an INI-style text file.
//
// A configuration file holds a [train] section, a [model] section, and any
// number of [tasks.<id>] sections. Values are plain text in the file and
// are coerced to typed values (bool, none, int, float, string, sequence,
// mapping) at load time; path-like strings are expanded to absolute
// filesystem paths. Values may reference each other with ${section:key}
// placeholders, and the whitelisted environment variables $HOME, $USER,
// $LOCAL and $SCRATCH are substituted before parsing.
//
// # Basic Usage
//
// The main entry point is [Load], which reads a file, overlays the [train]
// defaults, applies CLI-style overrides and validates the result:
//
//	cfg, err := config.Load("experiment.conf", []string{"train.batch_size:128"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	train := cfg.Section("train")   // fully resolved values
//	tasks := cfg.Children("tasks")  // {"en-de": ..., "en-fr": ...}
//
// Precedence is always override > file value > default.
//
// # Defaults and Validation
//
// The [train] section is checked against a canonical table of recognized
// keys ([TrainDefaults]). Keys the file omits take their default value;
// keys outside the table abort the load with a [ValidationResult] that
// carries a diagnostic per unknown key, including a fuzzy "did you mean"
// suggestion for likely typos:
//
//	experiment.conf:train: Unknown option 'lr_decya'.  Did you mean 'lr_decay' ?
//
// Structural problems (a missing [train] or [model] section, a section
// nested deeper than one dot, a duplicate key, a malformed override) fail
// fast with sentinel errors; match them with errors.Is.
//
// # Reproducibility
//
// A resolved configuration serializes to a plain mapping with [Config.ToMap]
// and reconstructs with [FromMap], optionally with fresh overrides — for
// example to rerun an experiment with a different batch size at inference
// time. [Config.SaveSnapshot] and [LoadSnapshot] persist that mapping as
// YAML.
//
// Loading is single-threaded and touches no shared state, so concurrent
// Load calls are safe without locking.
package config
