package config

import (
	"os"
	"strings"
)

// envWhitelist lists the only environment placeholders substituted in raw
// configuration text. Substitution order matters: $HOME is replaced before
// the shorter variables so overlapping text cannot be split mid-name.
var envWhitelist = []string{"HOME", "USER", "LOCAL", "SCRATCH"}

// expandEnvVars replaces whitelisted $VAR placeholders with their values
// from the process environment. Variables that are unset are left as
// literal text; no other variables are special.
func expandEnvVars(data string) string {
	for _, name := range envWhitelist {
		placeholder := "$" + name
		if !strings.Contains(data, placeholder) {
			continue
		}
		if value, ok := os.LookupEnv(name); ok {
			data = strings.ReplaceAll(data, placeholder, value)
		}
	}
	return data
}
