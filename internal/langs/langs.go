// Package langs validates and describes the language tags accepted on
// translation orders.
package langs

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

var namer = display.English.Languages()

// Normalize parses a BCP-47 tag and returns its canonical form.
func Normalize(tag string) (string, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return "", fmt.Errorf("language tag is required")
	}
	parsed, err := language.Parse(tag)
	if err != nil {
		return "", fmt.Errorf("invalid language tag %q", tag)
	}
	return parsed.String(), nil
}

// NormalizeAll canonicalizes a target-language list, rejecting empty lists
// and dropping duplicates while preserving order.
func NormalizeAll(tags []string) ([]string, error) {
	if len(tags) == 0 {
		return nil, fmt.Errorf("at least one target language is required")
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		normalized, err := Normalize(tag)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	return out, nil
}

// DisplayName returns the English display name for a tag, falling back to
// the tag itself when it cannot be parsed.
func DisplayName(tag string) string {
	parsed, err := language.Parse(tag)
	if err != nil {
		return tag
	}
	if name := namer.Name(parsed); name != "" {
		return name
	}
	return tag
}
