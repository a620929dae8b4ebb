package config

import (
	"fmt"
	"strings"
)

// Overrides is a two-level mapping section -> key -> coerced value, built
// from CLI-style "section.key:value" strings. Overrides are applied after
// file values and defaults, so they always win.
type Overrides map[string]map[string]any

// ParseOverrides parses a flat list of "section.key:value" entries. The
// section/key split happens once on the first '.', and the remainder must
// contain exactly one ':'; anything else is a fatal ErrMalformedOverride.
// Values go through the same path resolution and coercion as file values.
// Entries targeting the same section accumulate; the last write for a
// given (section, key) pair wins.
func ParseOverrides(entries []string) (Overrides, error) {
	overrides := make(Overrides)
	for _, entry := range entries {
		dot := strings.IndexByte(entry, '.')
		if dot <= 0 {
			return nil, fmt.Errorf("%w: %q (expected section.key:value)", ErrMalformedOverride, entry)
		}
		section := entry[:dot]
		rest := entry[dot+1:]
		if strings.Count(rest, ":") != 1 {
			return nil, fmt.Errorf("%w: %q (expected section.key:value)", ErrMalformedOverride, entry)
		}
		colon := strings.IndexByte(rest, ':')
		key := strings.ToLower(strings.TrimSpace(rest[:colon]))
		if key == "" {
			return nil, fmt.Errorf("%w: %q (expected section.key:value)", ErrMalformedOverride, entry)
		}
		value := ResolvePaths(Coerce(rest[colon+1:]))

		if overrides[section] == nil {
			overrides[section] = make(map[string]any)
		}
		overrides[section][key] = value
	}
	return overrides, nil
}
