package slug

import (
	"regexp"
	"strings"
)

var nonAlphaNum = regexp.MustCompile(`[^a-z0-9]+`)

// Make lowercases input and joins its alphanumeric runs with dashes.
// fallback is returned when nothing is left.
func Make(input, fallback string) string {
	s := nonAlphaNum.ReplaceAllString(strings.ToLower(input), "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return fallback
	}
	return s
}
