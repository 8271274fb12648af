// errors.go
package libarch

import (
	"fmt"

	"github.com/arc-language/libarch/pkg/archive"
	"github.com/arc-language/libarch/pkg/arch"
	"github.com/arc-language/libarch/pkg/properties"
	"github.com/arc-language/libarch/pkg/registry"
)

var (
	// ErrMetadataNotFound indicates the library has no library.properties.
	// The resolver recovers from it and only logs a warning.
	ErrMetadataNotFound = arch.ErrMetadataNotFound

	// ErrMalformedMetadata indicates library.properties could not be used
	ErrMalformedMetadata = properties.ErrMalformed

	// ErrUnsupportedArchitecture indicates the library does not support the target
	ErrUnsupportedArchitecture = arch.ErrUnsupported

	// ErrUnknownArchitecture indicates an architecture missing from the registry
	ErrUnknownArchitecture = registry.ErrUnknown

	// ErrInvalidArchive indicates a library archive could not be unpacked
	ErrInvalidArchive = archive.ErrInvalid
)

type (
	// MalformedMetadataError carries the file and line that was rejected
	MalformedMetadataError = properties.MalformedError
	// UnsupportedArchitectureError names the library and the rejected architecture
	UnsupportedArchitectureError = arch.UnsupportedError
)

// Error wraps an error with additional context
type Error struct {
	Op      string // Operation that failed
	Library string // Library root if applicable
	Err     error  // Underlying error
}

func (e *Error) Error() string {
	if e.Library != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Library, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
