package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Coerce converts a raw text token into a typed value. The chain is ordered
// and the first match wins:
//
//  1. the literal keywords true/false/none (full-token, case-insensitive)
//  2. a quoted string ('...' or "...")
//  3. an integer, then a float
//  4. a bracket/brace literal ([...] or {...}), parsed as YAML flow syntax
//
// Anything that matches none of the above is kept as a plain string. Coerce
// never fails: ill-formed tokens silently degrade to their text form.
func Coerce(raw string) any {
	tok := strings.TrimSpace(raw)
	if tok == "" {
		return tok
	}

	// Keywords match the whole token only. "Falsey" or "Nonetheless" must
	// stay plain strings.
	switch strings.ToLower(tok) {
	case "true":
		return true
	case "false":
		return false
	case "none":
		return nil
	}

	if n := len(tok); n >= 2 {
		if tok[0] == '"' && tok[n-1] == '"' {
			if s, err := strconv.Unquote(tok); err == nil {
				return s
			}
			return tok[1 : n-1]
		}
		if tok[0] == '\'' && tok[n-1] == '\'' {
			return tok[1 : n-1]
		}
	}

	// Base 0 accepts hex, octal, binary and underscore separators, but it
	// would also read a zero-padded decimal like "064" as octal. Those
	// tokens stay plain strings instead.
	if !leadingZeroInt(tok) {
		if i, err := strconv.ParseInt(tok, 0, 64); err == nil {
			return int(i)
		}
		if looksNumeric(tok) {
			if f, err := strconv.ParseFloat(tok, 64); err == nil {
				return f
			}
		}
	}

	if tok[0] == '[' || tok[0] == '{' {
		var v any
		if err := yaml.Unmarshal([]byte(tok), &v); err == nil {
			switch v.(type) {
			case []any, map[string]any:
				return normalizeLiteral(v)
			}
		}
	}

	return tok
}

// leadingZeroInt reports whether tok is a zero-padded decimal integer such
// as "064" or "-08". These are neither octal (no 0o prefix) nor valid
// decimal literals, so coercion keeps them as strings. Prefixed forms
// (0x, 0o, 0b) and floats like "0.5" or "08.5" are unaffected.
func leadingZeroInt(tok string) bool {
	s := tok
	if s[0] == '+' || s[0] == '-' {
		s = s[1:]
	}
	if len(s) < 2 || s[0] != '0' {
		return false
	}
	for _, c := range s[1:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// looksNumeric reports whether the token starts like a number. It keeps
// ParseFloat from swallowing special spellings such as "inf" or "nan",
// which config files mean as plain strings.
func looksNumeric(tok string) bool {
	s := strings.TrimLeft(tok, "+-")
	if s == "" {
		return false
	}
	return (s[0] >= '0' && s[0] <= '9') || s[0] == '.'
}

// normalizeLiteral walks a parsed bracket/brace literal and maps the bare
// keyword "none" (any casing) back to a nil value, which YAML flow syntax
// does not recognize on its own.
func normalizeLiteral(v any) any {
	switch t := v.(type) {
	case string:
		if strings.EqualFold(t, "none") {
			return nil
		}
		return t
	case []any:
		out := make([]any, len(t))
		for i, elem := range t {
			out[i] = normalizeLiteral(elem)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, elem := range t {
			out[k] = normalizeLiteral(elem)
		}
		return out
	default:
		return v
	}
}

// ResolvePaths recursively walks a coerced value and expands every
// path-like string (prefix ~, /, ./ or ../) to an absolute, user-expanded
// filesystem path. Sequences and mappings are walked so nested paths
// resolve too. Symlinks are not followed.
func ResolvePaths(v any) any {
	switch t := v.(type) {
	case string:
		if isPathLike(t) {
			return resolvePath(t)
		}
		return t
	case []any:
		out := make([]any, len(t))
		for i, elem := range t {
			out[i] = ResolvePaths(elem)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, elem := range t {
			out[k] = ResolvePaths(elem)
		}
		return out
	default:
		return v
	}
}

func isPathLike(s string) bool {
	return strings.HasPrefix(s, "~") ||
		strings.HasPrefix(s, "/") ||
		strings.HasPrefix(s, "./") ||
		strings.HasPrefix(s, "../")
}

func resolvePath(s string) string {
	if s == "~" || strings.HasPrefix(s, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			s = filepath.Join(home, strings.TrimPrefix(s, "~"))
		}
	}
	abs, err := filepath.Abs(s)
	if err != nil {
		return filepath.Clean(s)
	}
	return abs
}
