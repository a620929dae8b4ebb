package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Section is a named group of key/value settings. Values are always fully
// coerced and path-resolved; no raw text leaks through.
type Section map[string]any

// Config is the fully merged, validated view of a configuration file.
// Once built it is never mutated; every accessor returns a copy, and the
// only way to change values is to rebuild through FromMap with a fresh
// override list.
type Config struct {
	filename string
	names    []string
	sections map[string]Section
	keyOrder map[string][]string
}

// Load reads and resolves a configuration file. The pipeline is: stat and
// read, whitelist environment expansion, section parse with interpolation,
// structural checks, per-value coercion and path resolution, [train]
// defaults overlay, override overlay, unknown-key validation. Overrides
// win over file values, which win over defaults.
//
// Unknown [train] keys and overrides addressed to nonexistent sections are
// collected into a *ValidationResult and returned as the error, so callers
// can report every typo at once.
func Load(path string, overrides []string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMissingFile, path)
		}
		return nil, fmt.Errorf("failed to stat config file %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	parsed, err := ParseOverrides(overrides)
	if err != nil {
		return nil, err
	}

	sf, err := parseSections(expandEnvVars(strings.TrimSpace(string(data))))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := checkSectionNames(sf.names); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	cfg := &Config{
		filename: path,
		sections: make(map[string]Section, len(sf.names)),
		keyOrder: make(map[string][]string, len(sf.names)),
	}

	// [train] always renders first, matching the defaults-first load order.
	cfg.names = append(cfg.names, "train")
	for _, name := range sf.names {
		if name != "train" {
			cfg.names = append(cfg.names, name)
		}
	}

	for _, name := range cfg.names {
		fileVals := make(Section, len(sf.sections[name]))
		for key, raw := range sf.sections[name] {
			fileVals[key] = ResolvePaths(Coerce(raw))
		}

		var section Section
		var order []string
		if name == "train" {
			section = TrainDefaults()
			order = TrainDefaultKeys()
			for _, key := range sf.keyOrder[name] {
				if _, known := section[key]; !known {
					order = append(order, key)
				}
				section[key] = fileVals[key]
			}
		} else {
			section = fileVals
			order = append(order, sf.keyOrder[name]...)
		}

		order = applyOverrides(section, order, parsed[name])
		cfg.sections[name] = section
		cfg.keyOrder[name] = order
	}

	diagnostics := validateOverrideSections(path, cfg.names, parsed)
	if result := validateTrainKeys(path, cfg.sections["train"]); result != nil {
		diagnostics = append(diagnostics, result.Diagnostics...)
	}
	if len(diagnostics) > 0 {
		return nil, &ValidationResult{Diagnostics: diagnostics}
	}
	return cfg, nil
}

// FromMap reconstructs a Config from a previously serialized mapping (the
// ToMap form), without touching the filesystem. Overrides, if given, are
// re-applied on top so a prior run can be reproduced with targeted changes
// such as a different batch size.
func FromMap(m map[string]any, overrides []string) (*Config, error) {
	rawNames, ok := m["sections"]
	if !ok {
		return nil, fmt.Errorf("serialized config is missing the 'sections' list")
	}
	names, err := toSectionNames(rawNames)
	if err != nil {
		return nil, err
	}
	filename, _ := m["filename"].(string)

	cfg := &Config{
		filename: filename,
		names:    names,
		sections: make(map[string]Section, len(names)),
		keyOrder: make(map[string][]string, len(names)),
	}
	for _, name := range names {
		section, err := toSection(m[name])
		if err != nil {
			return nil, fmt.Errorf("section [%s]: %w", name, err)
		}
		cfg.sections[name] = section
		cfg.keyOrder[name] = canonicalKeyOrder(name, section)
	}

	if overrides != nil {
		parsed, err := ParseOverrides(overrides)
		if err != nil {
			return nil, err
		}
		if diagnostics := validateOverrideSections(filename, names, parsed); len(diagnostics) > 0 {
			return nil, &ValidationResult{Diagnostics: diagnostics}
		}
		for _, name := range names {
			cfg.keyOrder[name] = applyOverrides(cfg.sections[name], cfg.keyOrder[name], parsed[name])
		}
	}
	return cfg, nil
}

// LoadSnapshot restores a Config from a YAML snapshot written by
// SaveSnapshot, re-applying overrides if given.
func LoadSnapshot(path string, overrides []string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMissingFile, path)
		}
		return nil, fmt.Errorf("failed to stat snapshot %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", path, err)
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot %s: %w", path, err)
	}
	return FromMap(m, overrides)
}

// SaveSnapshot writes the serialized form to path as YAML, for exact
// reproduction of this configuration at test or inference time.
func (c *Config) SaveSnapshot(path string) error {
	data, err := yaml.Marshal(c.ToMap())
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", path, err)
	}
	return nil
}

// ToMap serializes the Config as a plain mapping: the source filename, the
// ordered section name list, and one deep-copied entry per section. The
// result round-trips through FromMap.
func (c *Config) ToMap() map[string]any {
	m := make(map[string]any, len(c.names)+2)
	m["filename"] = c.filename
	m["sections"] = append([]string(nil), c.names...)
	for name, section := range c.sections {
		plain := make(map[string]any, len(section))
		for key, value := range section {
			plain[key] = deepCopyValue(value)
		}
		m[name] = plain
	}
	return m
}

// Filename returns the path the configuration was loaded from.
func (c *Config) Filename() string {
	return c.filename
}

// Sections returns the section names in their defined order.
func (c *Config) Sections() []string {
	return append([]string(nil), c.names...)
}

// Section returns a copy of the named section, or nil when it does not
// exist.
func (c *Config) Section(name string) Section {
	section, ok := c.sections[name]
	if !ok {
		return nil
	}
	return deepCopySection(section)
}

// Children treats name as a hierarchical parent prefix and returns every
// stored section under it, keyed by the child suffix: with sections
// tasks.en-de and tasks.en-fr, Children("tasks") returns {"en-de": ...,
// "en-fr": ...}. A prefix with no children yields an empty map.
func (c *Config) Children(name string) map[string]Section {
	children := make(map[string]Section)
	prefix := name + "."
	for stored, section := range c.sections {
		if strings.HasPrefix(stored, prefix) {
			children[strings.TrimPrefix(stored, prefix)] = deepCopySection(section)
		}
	}
	return children
}

// Get looks up an exact section first and falls back to a parent-prefix
// lookup. A name that is neither returns an empty map, never an error.
func (c *Config) Get(name string) any {
	if _, ok := c.sections[name]; ok {
		return c.Section(name)
	}
	return c.Children(name)
}

// String renders a deterministic, human-readable dump of every section,
// aligned for log output. Section order follows the file; key order is
// the defaults table first for [train] and file order elsewhere.
func (c *Config) String() string {
	var b strings.Builder
	for _, name := range c.names {
		rule := strings.Repeat("-", len(name)+2)
		fmt.Fprintf(&b, "%s\n[%s]\n%s\n", rule, name, rule)
		for _, key := range c.keyOrder[name] {
			switch value := c.sections[name][key].(type) {
			case []any:
				fmt.Fprintf(&b, "%20s:\n", key)
				for _, elem := range value {
					fmt.Fprintf(&b, "%22s\n", formatValue(elem))
				}
			case map[string]any:
				fmt.Fprintf(&b, "%20s:\n", key)
				for _, k := range sortedKeys(value) {
					fmt.Fprintf(&b, "%22s:%s\n", k, formatValue(value[k]))
				}
			default:
				fmt.Fprintf(&b, "%20s:%s\n", key, formatValue(value))
			}
		}
	}
	b.WriteString(strings.Repeat("-", 70))
	b.WriteString("\n")
	return b.String()
}

// checkSectionNames enforces the structural invariants on section names:
// [train] and [model] must exist, every other top-level section must be
// prefixed "tasks.", and no name may nest deeper than one dot.
func checkSectionNames(names []string) error {
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		seen[name] = true
	}
	for _, required := range []string{"train", "model"} {
		if !seen[required] {
			return fmt.Errorf("%w: [%s]", ErrMissingSection, required)
		}
	}
	for _, name := range names {
		if name == "train" || name == "model" {
			continue
		}
		if !strings.HasPrefix(name, "tasks.") {
			return fmt.Errorf("%w: [%s] (expected [train], [model] or [tasks.*])", ErrInvalidSectionName, name)
		}
	}
	for _, name := range names {
		if strings.Count(name, ".") >= 2 {
			return fmt.Errorf("%w: [%s]", ErrNestingTooDeep, name)
		}
	}
	return nil
}

// applyOverrides writes the override values for one section in place and
// returns the updated key order. Override keys new to the section are
// appended in sorted order to keep rendering deterministic.
func applyOverrides(section Section, order []string, values map[string]any) []string {
	if len(values) == 0 {
		return order
	}
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if _, exists := section[key]; !exists {
			order = append(order, key)
		}
		section[key] = values[key]
	}
	return order
}

func toSectionNames(v any) ([]string, error) {
	switch t := v.(type) {
	case []string:
		return append([]string(nil), t...), nil
	case []any:
		names := make([]string, len(t))
		for i, elem := range t {
			name, ok := elem.(string)
			if !ok {
				return nil, fmt.Errorf("serialized 'sections' entry %d is not a string", i)
			}
			names[i] = name
		}
		return names, nil
	default:
		return nil, fmt.Errorf("serialized 'sections' must be a list of names, got %T", v)
	}
}

func toSection(v any) (Section, error) {
	switch t := v.(type) {
	case map[string]any:
		return deepCopySection(t), nil
	case Section:
		return deepCopySection(t), nil
	case nil:
		return nil, fmt.Errorf("section data missing")
	default:
		return nil, fmt.Errorf("section data must be a mapping, got %T", v)
	}
}

// canonicalKeyOrder picks a deterministic key order for a deserialized
// section: the defaults table order (plus sorted extras) for [train],
// sorted keys elsewhere. The original insertion order is not part of the
// serialized form.
func canonicalKeyOrder(name string, section Section) []string {
	if name == "train" {
		order := make([]string, 0, len(section))
		inOrder := make(map[string]bool, len(section))
		for _, key := range TrainDefaultKeys() {
			if _, ok := section[key]; ok {
				order = append(order, key)
				inOrder[key] = true
			}
		}
		var extras []string
		for key := range section {
			if !inOrder[key] {
				extras = append(extras, key)
			}
		}
		sort.Strings(extras)
		return append(order, extras...)
	}
	keys := make([]string, 0, len(section))
	for key := range section {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func deepCopySection(section map[string]any) Section {
	out := make(Section, len(section))
	for key, value := range section {
		out[key] = deepCopyValue(value)
	}
	return out
}

func deepCopyValue(v any) any {
	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		for i, elem := range t {
			out[i] = deepCopyValue(elem)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, elem := range t {
			out[k] = deepCopyValue(elem)
		}
		return out
	case Section:
		return map[string]any(deepCopySection(t))
	default:
		return v
	}
}

// formatValue renders a coerced value as text, both for the dump and for
// interpolation against defaults. The forms chosen coerce back to the
// same typed value.
func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "none"
	case string:
		return t
	case float64:
		s := strconv.FormatFloat(t, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			// keep whole floats coercing back to float, not int
			s += ".0"
		}
		return s
	default:
		return fmt.Sprintf("%v", v)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
