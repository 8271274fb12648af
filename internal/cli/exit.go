package cli

import (
	"errors"

	"github.com/arc-language/libarch"
)

// Process exit codes
const (
	ExitOK          = 0
	ExitError       = 1
	ExitUnsupported = 2
)

// ExitCode maps an Execute error to a process exit status. An unsupported
// architecture gets its own status so build scripts can tell it apart.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, libarch.ErrUnsupportedArchitecture):
		return ExitUnsupported
	default:
		return ExitError
	}
}
