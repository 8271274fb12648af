package arch

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Filter removes every source matching pattern. Surviving entries keep their
// relative order. An empty pattern returns a copy of sources.
func Filter(pattern string, sources []string) ([]string, error) {
	return filter(pattern, sources, func(s string) string { return s })
}

// FilterRelative is like Filter but matches absolute sources that live under
// root by their path relative to root, so directories above the library never
// carry tags. Returned entries are the original strings.
func FilterRelative(pattern, root string, sources []string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving library root %s: %w", root, err)
	}

	return filter(pattern, sources, func(s string) string {
		if !filepath.IsAbs(s) {
			return s
		}
		rel, err := filepath.Rel(absRoot, s)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return s
		}
		return filepath.ToSlash(rel)
	})
}

func filter(pattern string, sources []string, key func(string) string) ([]string, error) {
	out := make([]string, 0, len(sources))
	if pattern == "" {
		return append(out, sources...), nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compiling unsupported architecture pattern: %w", err)
	}

	for _, s := range sources {
		if re.MatchString(key(s)) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}
