// pkg/properties/types.go
package properties

import (
	"errors"
	"fmt"
)

// FileName is the conventional name of the library descriptor
const FileName = "library.properties"

// Well-known library.properties keys
const (
	KeyName          = "name"
	KeyVersion       = "version"
	KeyAuthor        = "author"
	KeyMaintainer    = "maintainer"
	KeySentence      = "sentence"
	KeyParagraph     = "paragraph"
	KeyCategory      = "category"
	KeyURL           = "url"
	KeyArchitectures = "architectures"
	KeyDepends       = "depends"
	KeyIncludes      = "includes"
)

// ErrMalformed is wrapped by every MalformedError
var ErrMalformed = errors.New("malformed library metadata")

// MalformedError describes why a library.properties file was rejected.
// Line is zero when the problem is not tied to a single line.
type MalformedError struct {
	Path   string
	Line   int
	Reason string
}

func (e *MalformedError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

func (e *MalformedError) Unwrap() error {
	return ErrMalformed
}

// Metadata is the parsed content of a library.properties file
type Metadata struct {
	Path       string // File the metadata was read from
	Name       string
	Version    string
	Author     string
	Maintainer string
	Sentence   string
	Paragraph  string
	Category   string
	URL        string
	Depends    []string
	Includes   []string

	// Architectures holds the lowercased identifiers in declared order.
	// HasArchitectures distinguishes a missing key from an empty value.
	Architectures    []string
	HasArchitectures bool

	// Values holds every key of the file, including unknown ones
	Values map[string]string
}
