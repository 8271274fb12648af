package arch

import (
	"regexp"
	"sort"
	"strings"
)

// UnsupportedPattern builds a case-insensitive regular expression matching
// any path tagged with an architecture of known that declared does not
// support. It returns "" when nothing is unsupported, which Filter treats as
// "exclude nothing".
func UnsupportedPattern(declared, known []string) string {
	return TagPattern(Unsupported(declared, known))
}

// TagPattern builds the tag-matching alternation for archs
func TagPattern(archs []string) string {
	if len(archs) == 0 {
		return ""
	}

	quoted := make([]string, 0, len(archs))
	for _, a := range archs {
		quoted = append(quoted, regexp.QuoteMeta(Normalize(a)))
	}
	// Longest first keeps the alternation readable for overlapping names
	sort.SliceStable(quoted, func(i, j int) bool {
		return len(quoted[i]) > len(quoted[j])
	})

	return `(?i)(?:^|[^a-z0-9])(?:` + strings.Join(quoted, "|") + `)(?:[^a-z0-9]|$)`
}
