package arch

import "strings"

// IsAgnostic reports whether declared contains the wildcard
func IsAgnostic(declared []string) bool {
	for _, a := range declared {
		if Normalize(a) == Wildcard {
			return true
		}
	}
	return false
}

// IsSupported reports whether platform is covered by declared. The wildcard
// covers everything; an empty list covers nothing.
func IsSupported(declared []string, platform string) bool {
	if IsAgnostic(declared) {
		return true
	}

	p := Normalize(platform)
	if p == "" {
		return false
	}

	for _, a := range declared {
		if Normalize(a) == p {
			return true
		}
	}
	return false
}

// Unsupported returns the entries of known that declared does not cover, in
// the order of known. It is empty for arch-agnostic libraries.
//
// A known name that is an underscore prefix of a declared name (mbed for a
// library declaring mbed_nano) is left out, since its tag would also match
// the declared architecture's files.
func Unsupported(declared, known []string) []string {
	if IsAgnostic(declared) {
		return nil
	}

	supported := make(map[string]bool, len(declared))
	for _, a := range declared {
		supported[Normalize(a)] = true
	}

	var out []string
	seen := make(map[string]bool)
	for _, k := range known {
		k = Normalize(k)
		if k == "" || k == Wildcard || supported[k] || seen[k] {
			continue
		}
		seen[k] = true
		if prefixOfSupported(k, supported) {
			continue
		}
		out = append(out, k)
	}
	return out
}

func prefixOfSupported(name string, supported map[string]bool) bool {
	for s := range supported {
		if strings.HasPrefix(s, name+"_") {
			return true
		}
	}
	return false
}
