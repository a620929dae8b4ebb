package config

import "errors"

// Sentinel errors for structural configuration failures. All of these are
// fail-fast: Load aborts on the first one it encounters. Callers match them
// with errors.Is.
var (
	// ErrMissingFile indicates the configuration path does not exist.
	ErrMissingFile = errors.New("configuration file not found")

	// ErrMissingSection indicates a required section ([train] or [model])
	// is absent from the configuration file.
	ErrMissingSection = errors.New("required section missing")

	// ErrInvalidSectionName indicates a top-level section other than
	// [train] and [model] that is not prefixed with "tasks.".
	ErrInvalidSectionName = errors.New("invalid section name")

	// ErrNestingTooDeep indicates a section name with two or more dots.
	// Section names support at most one level of grouping (tasks.<id>).
	ErrNestingTooDeep = errors.New("section nesting too deep")

	// ErrDuplicateKey indicates a key defined twice within one section.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrMalformedOverride indicates an override string that does not
	// match the section.key:value form.
	ErrMalformedOverride = errors.New("malformed override")
)
