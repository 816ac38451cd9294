package model

import (
	"strings"
	"unicode"
)

// ParseList splits a comma-separated list of model names, trimming
// whitespace around each entry. Empty entries (e.g. from a trailing
// comma) are dropped.
func ParseList(s string) []string {
	var models []string
	for _, part := range strings.Split(s, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		models = append(models, name)
	}
	return models
}

// ID creates a clean model ID from a model name.
// This handles models with version tags like "gemma:2b".
func ID(name string) string {
	// Replace colons and dots with hyphens, then any remaining special characters
	name = strings.ReplaceAll(name, ":", "-")
	name = strings.ReplaceAll(name, ".", "-")

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}
