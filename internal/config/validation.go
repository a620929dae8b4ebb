package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agext/levenshtein"
)

// suggestionThreshold is the minimum levenshtein.Match similarity for a
// canonical key to be offered as a "did you mean" suggestion.
const suggestionThreshold = 0.6

// Diagnostic describes one unrecognized name, with the closest known one
// when it is similar enough. An empty Key means the section itself is
// unknown (an override addressed to a section that does not exist).
type Diagnostic struct {
	File       string
	Section    string
	Key        string
	Suggestion string
}

// Message renders the diagnostic the way it is printed to the user.
func (d Diagnostic) Message() string {
	var msg string
	if d.Key == "" {
		msg = fmt.Sprintf("%s: Unknown section '%s' in overrides.", d.File, d.Section)
	} else {
		msg = fmt.Sprintf("%s:%s: Unknown option '%s'.", d.File, d.Section, d.Key)
	}
	if d.Suggestion != "" {
		msg += fmt.Sprintf("  Did you mean '%s' ?", d.Suggestion)
	}
	return msg
}

// ValidationResult collects every unknown-key diagnostic found in a load.
// Unlike the structural checks, which fail fast, unknown keys are gathered
// across the whole [train] section before the load aborts, so the user
// sees all of their typos at once. It implements error so Load can return
// it directly; callers unwrap it with errors.As.
type ValidationResult struct {
	Diagnostics []Diagnostic
}

func (r *ValidationResult) Error() string {
	messages := make([]string, len(r.Diagnostics))
	for i, d := range r.Diagnostics {
		messages[i] = d.Message()
	}
	return strings.Join(messages, "\n")
}

// validateTrainKeys checks the fully merged [train] section against the
// canonical defaults table. It returns nil when every key is recognized.
func validateTrainKeys(filename string, section Section) *ValidationResult {
	known := make(map[string]bool, len(trainDefaults))
	for _, entry := range trainDefaults {
		known[entry.key] = true
	}

	var unknown []string
	for key := range section {
		if !known[key] {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)

	result := &ValidationResult{}
	for _, key := range unknown {
		result.Diagnostics = append(result.Diagnostics, Diagnostic{
			File:       filename,
			Section:    "train",
			Key:        key,
			Suggestion: closestTrainKey(key),
		})
	}
	return result
}

// validateOverrideSections reports overrides addressed to sections that do
// not exist in the configuration, so a section typo such as
// "modle.dropout:0.5" is surfaced instead of silently dropped.
func validateOverrideSections(filename string, names []string, overrides Overrides) []Diagnostic {
	known := make(map[string]bool, len(names))
	for _, name := range names {
		known[name] = true
	}

	var unknown []string
	for name := range overrides {
		if !known[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)

	diagnostics := make([]Diagnostic, 0, len(unknown))
	for _, name := range unknown {
		diagnostics = append(diagnostics, Diagnostic{
			File:       filename,
			Section:    name,
			Suggestion: closestName(name, names),
		})
	}
	return diagnostics
}

// closestTrainKey returns the canonical key most similar to the unknown
// one, or "" when nothing clears the suggestion threshold.
func closestTrainKey(key string) string {
	return closestName(key, TrainDefaultKeys())
}

func closestName(name string, candidates []string) string {
	best := ""
	bestScore := suggestionThreshold
	for _, candidate := range candidates {
		if score := levenshtein.Match(name, candidate, nil); score > bestScore {
			bestScore, best = score, candidate
		}
	}
	return best
}
