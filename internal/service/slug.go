package service

import (
	"strconv"
	"strings"
)

// Slugify lowercases name and replaces every space with an underscore.
// No other character is touched.
func Slugify(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

// NextSlug returns the first free slug for candidate given the slugs already
// stored. A stored slug takes part only when it is candidate itself (suffix
// 0) or candidate followed by decimal digits; the result continues after the
// highest suffix found: x, x1, x2, ..., x10, x11.
func NextSlug(existing []string, candidate string) string {
	highest := -1
	for _, slug := range existing {
		suffix, ok := strings.CutPrefix(slug, candidate)
		if !ok {
			continue
		}
		if suffix == "" {
			highest = max(highest, 0)
			continue
		}
		if !isDigits(suffix) {
			continue
		}
		n, err := strconv.Atoi(suffix)
		if err != nil {
			continue
		}
		highest = max(highest, n)
	}

	if highest < 0 {
		return candidate
	}
	return candidate + strconv.Itoa(highest+1)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
