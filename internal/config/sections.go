package config

import (
	"fmt"
	"strings"
)

// maxInterpolationDepth bounds ${...} chains so mutually recursive
// references fail instead of looping.
const maxInterpolationDepth = 10

// sectionFile is the raw parse of a configuration file: ordered sections of
// ordered key -> raw text pairs, before coercion. Interpolation runs on the
// raw text so coercion always sees final values.
type sectionFile struct {
	names    []string
	sections map[string]map[string]string
	keyOrder map[string][]string
}

// parseSections parses INI-style text: [section] headers (dotted names
// allowed), key = value or key: value lines, # or ; comment lines, and
// indented continuation lines that extend the previous value. Keys are
// lowercased. A key repeated within one section is a fatal ErrDuplicateKey.
func parseSections(data string) (*sectionFile, error) {
	sf := &sectionFile{
		sections: make(map[string]map[string]string),
		keyOrder: make(map[string][]string),
	}

	var current, lastKey string
	for n, line := range strings.Split(data, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			lastKey = ""

		case strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, ";"):
			// comment line

		case strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"):
			name := strings.TrimSpace(trimmed[1 : len(trimmed)-1])
			if name == "" {
				return nil, fmt.Errorf("line %d: empty section name", n+1)
			}
			if _, ok := sf.sections[name]; ok {
				return nil, fmt.Errorf("line %d: section [%s] defined twice", n+1, name)
			}
			sf.names = append(sf.names, name)
			sf.sections[name] = make(map[string]string)
			current, lastKey = name, ""

		case (line[0] == ' ' || line[0] == '\t') && lastKey != "":
			// continuation of the previous value
			sf.sections[current][lastKey] += "\n" + trimmed

		default:
			if current == "" {
				return nil, fmt.Errorf("line %d: key/value pair before any [section] header", n+1)
			}
			key, value, err := splitKeyValue(trimmed)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", n+1, err)
			}
			if _, ok := sf.sections[current][key]; ok {
				return nil, fmt.Errorf("%w: %q in section [%s]", ErrDuplicateKey, key, current)
			}
			sf.sections[current][key] = value
			sf.keyOrder[current] = append(sf.keyOrder[current], key)
			lastKey = key
		}
	}

	if err := sf.interpolate(); err != nil {
		return nil, err
	}
	return sf, nil
}

// splitKeyValue splits a single line on the earliest of '=' or ':'.
func splitKeyValue(line string) (key, value string, err error) {
	pos := strings.IndexByte(line, '=')
	if colon := strings.IndexByte(line, ':'); pos < 0 || (colon >= 0 && colon < pos) {
		pos = colon
	}
	if pos <= 0 {
		return "", "", fmt.Errorf("expected 'key = value' or 'key: value', got %q", line)
	}
	key = strings.ToLower(strings.TrimSpace(line[:pos]))
	if key == "" {
		return "", "", fmt.Errorf("expected 'key = value' or 'key: value', got %q", line)
	}
	return key, strings.TrimSpace(line[pos+1:]), nil
}

// interpolate resolves every ${section:key} and same-section ${key}
// placeholder across the file. References against [train] fall back to the
// defaults table when the file itself does not set the key.
func (sf *sectionFile) interpolate() error {
	done := make(map[string]bool)
	for _, name := range sf.names {
		for _, key := range sf.keyOrder[name] {
			if _, err := sf.resolve(name, key, 0, done); err != nil {
				return fmt.Errorf("key %q in section [%s]: %w", key, name, err)
			}
		}
	}
	return nil
}

// resolve expands one key in place, at most once. A key whose value has
// already been expanded is returned as stored, so text produced by a "$$"
// escape is never processed a second time through a chained reference.
func (sf *sectionFile) resolve(section, key string, depth int, done map[string]bool) (string, error) {
	id := section + "\x00" + key
	if done[id] {
		return sf.sections[section][key], nil
	}
	expanded, err := sf.expand(section, sf.sections[section][key], depth, done)
	if err != nil {
		return "", err
	}
	sf.sections[section][key] = expanded
	done[id] = true
	return expanded, nil
}

func (sf *sectionFile) expand(section, value string, depth int, done map[string]bool) (string, error) {
	if depth > maxInterpolationDepth {
		return "", fmt.Errorf("interpolation depth exceeded (max %d)", maxInterpolationDepth)
	}
	if !strings.Contains(value, "$") {
		return value, nil
	}

	var b strings.Builder
	for i := 0; i < len(value); i++ {
		c := value[i]
		if c != '$' {
			b.WriteByte(c)
			continue
		}
		// "$$" escapes a literal dollar sign.
		if i+1 < len(value) && value[i+1] == '$' {
			b.WriteByte('$')
			i++
			continue
		}
		if i+1 < len(value) && value[i+1] == '{' {
			end := strings.IndexByte(value[i+2:], '}')
			if end < 0 {
				return "", fmt.Errorf("unterminated ${...} placeholder")
			}
			ref := value[i+2 : i+2+end]
			expanded, err := sf.lookup(section, ref, depth+1, done)
			if err != nil {
				return "", err
			}
			b.WriteString(expanded)
			i += end + 2
			continue
		}
		// A lone '$' stays literal, e.g. an unset environment placeholder.
		b.WriteByte(c)
	}
	return b.String(), nil
}

// lookup resolves a placeholder reference to its fully expanded text.
// "section:key" references cross sections; a bare "key" resolves within
// the current one. Defaults text is literal and needs no expansion.
func (sf *sectionFile) lookup(section, ref string, depth int, done map[string]bool) (string, error) {
	owner, key := section, ref
	if idx := strings.IndexByte(ref, ':'); idx >= 0 {
		owner, key = strings.TrimSpace(ref[:idx]), ref[idx+1:]
	}
	key = strings.ToLower(strings.TrimSpace(key))

	if sec, ok := sf.sections[owner]; ok {
		if _, ok := sec[key]; ok {
			return sf.resolve(owner, key, depth, done)
		}
	}
	if owner == "train" {
		if v, ok := trainDefaultText(key); ok {
			return v, nil
		}
	}
	return "", fmt.Errorf("undefined interpolation reference ${%s}", ref)
}
