// pkg/env/env.go
package env

import (
	"os"
	"path/filepath"

	"github.com/arc-language/libarch/pkg/sources"
)

// Environment describes the build environment contributed by one library
type Environment struct {
	Root   string         // Library root
	Layout sources.Layout // Detected source layout
}

// CompilerFlags holds compiler flags
type CompilerFlags struct {
	IncludeFlags []string // -I flags
}

// New creates an Environment for the library at root
func New(root string) *Environment {
	return &Environment{
		Root:   root,
		Layout: sources.DetectLayout(root),
	}
}

// GetIncludePaths returns the existing include directories of the library
func (e *Environment) GetIncludePaths() []string {
	var candidates []string
	switch e.Layout {
	case sources.LayoutRecursive:
		candidates = []string{filepath.Join(e.Root, "src")}
	default:
		candidates = []string{e.Root, filepath.Join(e.Root, "utility")}
	}

	var paths []string
	for _, p := range candidates {
		if dirExists(p) {
			paths = append(paths, p)
		}
	}
	return paths
}

// GetCompilerFlags returns the flags needed to compile against the library
func (e *Environment) GetCompilerFlags() *CompilerFlags {
	flags := &CompilerFlags{}
	for _, p := range e.GetIncludePaths() {
		flags.IncludeFlags = append(flags.IncludeFlags, "-I"+p)
	}
	return flags
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
