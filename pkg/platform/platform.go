// pkg/platform/platform.go
package platform

import (
	"errors"
	"fmt"

	"github.com/arc-language/libarch/pkg/arch"
	"github.com/arc-language/libarch/pkg/registry"
)

// ErrNoArchitecture is returned when no target architecture was configured
var ErrNoArchitecture = errors.New("no target architecture configured")

// Where a Platform's architecture came from
const (
	SourceFlag   = "flag"
	SourceEnv    = "env"
	SourceConfig = "config"
)

// Platform is the build target libraries are resolved against
type Platform struct {
	Arch   string // Normalized architecture identifier, e.g. avr, esp32
	Source string // flag, env or config
}

// New creates a Platform for arch
func New(arch string) (*Platform, error) {
	return newPlatform(arch, SourceFlag)
}

func newPlatform(a, source string) (*Platform, error) {
	n := arch.Normalize(a)
	if n == "" {
		return nil, ErrNoArchitecture
	}
	if n == arch.Wildcard {
		return nil, fmt.Errorf("%q is not a valid target architecture", a)
	}
	return &Platform{Arch: n, Source: source}, nil
}

// Detect picks the target architecture from, in order, the command line
// flag, the environment value and the config file value.
func Detect(flag, env, config string) (*Platform, error) {
	switch {
	case flag != "":
		return newPlatform(flag, SourceFlag)
	case env != "":
		return newPlatform(env, SourceEnv)
	case config != "":
		return newPlatform(config, SourceConfig)
	default:
		return nil, ErrNoArchitecture
	}
}

// Validate checks the architecture against reg
func (p *Platform) Validate(reg *registry.Registry) error {
	if !reg.Known(p.Arch) {
		return fmt.Errorf("%w: %s", registry.ErrUnknown, p.Arch)
	}
	return nil
}

// String returns a string representation of the platform
func (p *Platform) String() string {
	return fmt.Sprintf("%s (from %s)", p.Arch, p.Source)
}
