package arch

import (
	"errors"
	"fmt"
	"strings"
)

// Wildcard in an architectures list marks a library as arch-agnostic
const Wildcard = "*"

var (
	// ErrMetadataNotFound indicates a library root without library.properties
	ErrMetadataNotFound = errors.New("library metadata not found")

	// ErrUnsupported is wrapped by every UnsupportedError
	ErrUnsupported = errors.New("unsupported architecture")
)

// UnsupportedError is returned when the target architecture is not among the
// architectures a library declares.
type UnsupportedError struct {
	Library      string
	Architecture string
	Declared     []string
}

func (e *UnsupportedError) Error() string {
	declared := "none"
	if len(e.Declared) > 0 {
		declared = strings.Join(e.Declared, ", ")
	}
	return fmt.Sprintf("library %s does not support architecture %q (supports: %s)",
		e.Library, e.Architecture, declared)
}

func (e *UnsupportedError) Unwrap() error {
	return ErrUnsupported
}

// Normalize lowercases and trims an architecture identifier
func Normalize(a string) string {
	return strings.ToLower(strings.TrimSpace(a))
}
