package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerce(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want any
	}{
		{"bool true", "True", true},
		{"bool false", "False", false},
		{"bool lowercase", "true", true},
		{"bool uppercase", "FALSE", false},
		{"bool mixed case", "tRUE", true},
		{"none", "None", nil},
		{"none lowercase", "none", nil},
		{"int", "32", 32},
		{"negative int", "-5", -5},
		{"large int", "1000000", 1000000},
		{"float", "0.0004", 0.0004},
		{"scientific float", "1e-4", 0.0001},
		{"float with sign", "-2.5", -2.5},
		{"plain string", "adam", "adam"},
		{"comma string", "loss,bleu", "loss,bleu"},
		{"single quoted", "'adam'", "adam"},
		{"double quoted", `"plateau"`, "plateau"},
		{"empty", "", ""},
		{"list of ints", "[2, 4]", []any{2, 4}},
		{"list of mixed", "[1, 2.5, 'a']", []any{1, 2.5, "a"}},
		{"nested list", "[[1, 2], [3]]", []any{[]any{1, 2}, []any{3}}},
		{"mapping", "{'dropout': 0.3, 'dim': 256}", map[string]any{"dropout": 0.3, "dim": 256}},
		{"list with none", "[None, 1]", []any{nil, 1}},
		{"unclosed bracket", "[1, 2", "[1, 2"},
		{"whitespace trimmed", "  64  ", 64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Coerce(tt.raw))
		})
	}

	t.Run("keywords match the whole token only", func(t *testing.T) {
		// Prefix lookalikes must stay plain strings.
		assert.Equal(t, "Falsey", Coerce("Falsey"))
		assert.Equal(t, "Truest", Coerce("Truest"))
		assert.Equal(t, "Nonetheless", Coerce("Nonetheless"))
	})

	t.Run("numeric lookalikes stay strings", func(t *testing.T) {
		assert.Equal(t, "inf", Coerce("inf"))
		assert.Equal(t, "nan", Coerce("nan"))
		assert.Equal(t, "1.2.3", Coerce("1.2.3"))
	})

	t.Run("zero-padded integers stay strings", func(t *testing.T) {
		// "064" must not parse as octal 52, and "08" must not fall
		// through to the float parser.
		assert.Equal(t, "064", Coerce("064"))
		assert.Equal(t, "08", Coerce("08"))
		assert.Equal(t, "-08", Coerce("-08"))
		assert.Equal(t, "007", Coerce("007"))
	})

	t.Run("prefixed bases and zero-led floats still parse", func(t *testing.T) {
		assert.Equal(t, 31, Coerce("0x1f"))
		assert.Equal(t, 8, Coerce("0o10"))
		assert.Equal(t, 5, Coerce("0b101"))
		assert.Equal(t, 0, Coerce("0"))
		assert.Equal(t, 0.5, Coerce("0.5"))
		assert.Equal(t, 8.5, Coerce("08.5"))
	})
}

func TestResolvePaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cwd, err := os.Getwd()
	require.NoError(t, err)

	t.Run("home expansion", func(t *testing.T) {
		assert.Equal(t, filepath.Join(home, "exp1"), ResolvePaths("~/exp1"))
		assert.Equal(t, home, ResolvePaths("~"))
	})

	t.Run("relative paths become absolute", func(t *testing.T) {
		assert.Equal(t, filepath.Join(cwd, "data"), ResolvePaths("./data"))
		assert.Equal(t, filepath.Join(filepath.Dir(cwd), "data"), ResolvePaths("../data"))
	})

	t.Run("absolute paths are cleaned", func(t *testing.T) {
		assert.Equal(t, "/data/corpus", ResolvePaths("/data//corpus/"))
	})

	t.Run("non-path strings untouched", func(t *testing.T) {
		assert.Equal(t, "adam", ResolvePaths("adam"))
		assert.Equal(t, "a/b", ResolvePaths("a/b"))
		assert.Equal(t, 42, ResolvePaths(42))
	})

	t.Run("recurses into sequences and mappings", func(t *testing.T) {
		got := ResolvePaths([]any{"~/a", map[string]any{"src": "./b", "n": 1}})
		want := []any{
			filepath.Join(home, "a"),
			map[string]any{"src": filepath.Join(cwd, "b"), "n": 1},
		}
		assert.Equal(t, want, got)
	})
}
