package registry

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed archs.toml
var defaultArchs string

// ErrUnknown is returned when an architecture is not in the registry
var ErrUnknown = errors.New("unknown architecture")

// Architecture is a single [[arch]] entry of a registry file
type Architecture struct {
	Name        string `toml:"name"`
	Vendor      string `toml:"vendor"`
	Description string `toml:"description"`
}

type file struct {
	Arch []Architecture `toml:"arch"`
}

// Registry is the universe of known architectures. Names are kept lowercase
// and in the order they were first added.
type Registry struct {
	archs []Architecture
	index map[string]int
}

// New creates a Registry holding archs
func New(archs ...Architecture) *Registry {
	r := &Registry{index: make(map[string]int)}
	r.Add(archs...)
	return r
}

// Default returns the registry built from the embedded archs.toml
func Default() *Registry {
	archs, err := Decode(defaultArchs)
	if err != nil {
		panic(fmt.Sprintf("registry: embedded archs.toml: %v", err))
	}
	return New(archs...)
}

// Load returns the default registry extended with the entries of path.
// An empty path yields the default registry.
func Load(path string) (*Registry, error) {
	r := Default()
	if path == "" {
		return r, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("registry: reading %s: %w", path, err)
	}

	archs, err := Decode(string(data))
	if err != nil {
		return nil, fmt.Errorf("registry: failed to parse '%s': %w", path, err)
	}

	r.Add(archs...)
	return r, nil
}

// Decode parses registry TOML
func Decode(data string) ([]Architecture, error) {
	var f file
	if _, err := toml.Decode(data, &f); err != nil {
		return nil, err
	}

	for i, a := range f.Arch {
		if strings.TrimSpace(a.Name) == "" {
			return nil, fmt.Errorf("arch entry %d has no name", i+1)
		}
	}

	return f.Arch, nil
}

// Add inserts archs. An entry whose name is already present replaces the
// existing description in place.
func (r *Registry) Add(archs ...Architecture) {
	for _, a := range archs {
		a.Name = strings.ToLower(strings.TrimSpace(a.Name))
		if a.Name == "" || a.Name == "*" {
			continue
		}
		if i, ok := r.index[a.Name]; ok {
			r.archs[i] = a
			continue
		}
		r.index[a.Name] = len(r.archs)
		r.archs = append(r.archs, a)
	}
}

// Names returns every known architecture name
func (r *Registry) Names() []string {
	names := make([]string, len(r.archs))
	for i, a := range r.archs {
		names[i] = a.Name
	}
	return names
}

// All returns a copy of every entry
func (r *Registry) All() []Architecture {
	return append([]Architecture(nil), r.archs...)
}

// Known reports whether name is in the registry
func (r *Registry) Known(name string) bool {
	_, ok := r.index[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Lookup returns the entry for name
func (r *Registry) Lookup(name string) (*Architecture, error) {
	i, ok := r.index[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknown, name)
	}
	a := r.archs[i]
	return &a, nil
}
