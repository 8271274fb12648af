// Package libarch resolves which source files of an Arduino-style library
// apply to a target architecture, based on the architectures the library
// declares in its library.properties.
package libarch

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/arc-language/libarch/pkg/arch"
	"github.com/arc-language/libarch/pkg/archive"
	"github.com/arc-language/libarch/pkg/config"
	"github.com/arc-language/libarch/pkg/env"
	"github.com/arc-language/libarch/pkg/platform"
	"github.com/arc-language/libarch/pkg/properties"
	"github.com/arc-language/libarch/pkg/registry"
	"github.com/arc-language/libarch/pkg/sources"
)

// Re-export types for convenience
type (
	Config       = config.Config
	Platform     = platform.Platform
	Metadata     = properties.Metadata
	Registry     = registry.Registry
	Architecture = registry.Architecture
)

// Wildcard marks a library as supporting every architecture
const Wildcard = arch.Wildcard

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return config.DefaultConfig()
}

// NewPlatform returns the platform for a target architecture
func NewPlatform(architecture string) (*Platform, error) {
	return platform.New(architecture)
}

// Options configures a Resolver
type Options struct {
	Registry         *registry.Registry // Known architectures; default registry if nil
	Logger           *log.Logger        // Discards output if nil
	SourceExtensions []string           // Used when discovering sources
}

// Resolver filters library sources for a single target platform. It holds no
// mutable state and may be reused for any number of libraries.
type Resolver struct {
	platform   *platform.Platform
	registry   *registry.Registry
	logger     *log.Logger
	extensions []string
}

// NewResolver creates a resolver targeting p
func NewResolver(p *platform.Platform, opts *Options) (*Resolver, error) {
	if p == nil || p.Arch == "" {
		return nil, platform.ErrNoArchitecture
	}
	if opts == nil {
		opts = &Options{}
	}

	r := &Resolver{
		platform:   p,
		registry:   opts.Registry,
		logger:     opts.Logger,
		extensions: opts.SourceExtensions,
	}
	if r.registry == nil {
		r.registry = registry.Default()
	}
	if r.logger == nil {
		r.logger = log.New(io.Discard)
	}
	if len(r.extensions) == 0 {
		r.extensions = config.DefaultSourceExtensions
	}

	return r, nil
}

// Platform returns the target platform
func (r *Resolver) Platform() *Platform {
	return r.platform
}

// Registry returns the known architectures
func (r *Resolver) Registry() *Registry {
	return r.registry
}

// Request describes one library to resolve
type Request struct {
	LibraryRoot    string   // Library directory
	PropertiesFile string   // Overrides <LibraryRoot>/library.properties
	Sources        []string // Candidate sources
	Discover       bool     // Discover sources from LibraryRoot instead
	Include        []string // Discovery include globs
	Exclude        []string // Discovery exclude globs
}

// Result is the outcome of a successful resolution
type Result struct {
	Library       string   // Library name from metadata, else the root's base name
	Root          string   // Absolute library root
	MetadataPath  string   // Empty when no metadata was found
	Architectures []string // Declared architectures; nil without metadata
	Pattern       string   // Unsupported-architecture pattern; "" excludes nothing
	Sources       []string // Kept sources in input order
	Excluded      []string // Dropped sources in input order
	Includes      []string // Include directories the library contributes
}

// MetadataFound reports whether the library had a properties file
func (res *Result) MetadataFound() bool {
	return res.MetadataPath != ""
}

// Resolve runs the pipeline for req: locate metadata, extract the declared
// architectures, check the target, then filter sources. A library the target
// does not support yields an *UnsupportedArchitectureError and no result.
func (r *Resolver) Resolve(ctx context.Context, req *Request) (*Result, error) {
	if req == nil || req.LibraryRoot == "" {
		return nil, &Error{Op: "resolve", Err: fmt.Errorf("library root is required")}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root, err := filepath.Abs(req.LibraryRoot)
	if err != nil {
		return nil, &Error{Op: "resolve", Library: req.LibraryRoot, Err: err}
	}

	res := &Result{
		Library:  filepath.Base(root),
		Root:     root,
		Includes: env.New(root).GetIncludePaths(),
	}

	metaPath := req.PropertiesFile
	if metaPath == "" {
		p, found, err := arch.LocateMetadata(root)
		if err != nil {
			return nil, &Error{Op: "locate metadata", Library: root, Err: err}
		}
		if found {
			metaPath = p
		}
	}

	candidates, err := r.candidates(root, req)
	if err != nil {
		return nil, err
	}

	if metaPath == "" {
		r.logger.Warn("library.properties not found, assuming all architectures are supported",
			"library", root)
		res.Sources = append([]string{}, candidates...)
		return res, nil
	}
	res.MetadataPath = metaPath

	md, err := properties.ParseFile(metaPath)
	if err != nil {
		return nil, &Error{Op: "read metadata", Library: root, Err: err}
	}
	if md.Name != "" {
		res.Library = md.Name
	}

	declared, err := arch.FromMetadata(md)
	if err != nil {
		return nil, &Error{Op: "read metadata", Library: res.Library, Err: err}
	}
	res.Architectures = declared

	for _, a := range declared {
		if a != arch.Wildcard && !r.registry.Known(a) {
			r.logger.Debug("library declares an architecture missing from the registry",
				"library", res.Library, "arch", a)
		}
	}

	if !arch.IsSupported(declared, r.platform.Arch) {
		return nil, &arch.UnsupportedError{
			Library:      res.Library,
			Architecture: r.platform.Arch,
			Declared:     declared,
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res.Pattern = arch.UnsupportedPattern(declared, r.registry.Names())

	kept, err := arch.FilterRelative(res.Pattern, root, candidates)
	if err != nil {
		return nil, &Error{Op: "filter sources", Library: res.Library, Err: err}
	}
	res.Sources = kept
	res.Excluded = difference(candidates, kept)

	r.logger.Debug("resolved library sources",
		"library", res.Library,
		"arch", r.platform.Arch,
		"kept", len(res.Sources),
		"excluded", len(res.Excluded))

	return res, nil
}

// Check reports whether the target supports the library without touching
// its sources. Missing metadata counts as supported.
func (r *Resolver) Check(ctx context.Context, libraryRoot, propertiesFile string) (*Result, error) {
	return r.Resolve(ctx, &Request{LibraryRoot: libraryRoot, PropertiesFile: propertiesFile})
}

func (r *Resolver) candidates(root string, req *Request) ([]string, error) {
	if !req.Discover {
		return req.Sources, nil
	}

	found, err := sources.Discover(root, sources.Options{
		Extensions: r.extensions,
		Include:    req.Include,
		Exclude:    req.Exclude,
	})
	if err != nil {
		return nil, &Error{Op: "discover sources", Library: root, Err: err}
	}
	return found, nil
}

// OpenLibrary returns a directory for path. Directories are returned as is;
// tarballs are unpacked below cacheDir.
func OpenLibrary(path, cacheDir string) (string, error) {
	if !archive.IsArchive(path) {
		return path, nil
	}
	root, err := archive.ExtractLibrary(path, cacheDir)
	if err != nil {
		return "", &Error{Op: "unpack", Library: path, Err: err}
	}
	return root, nil
}

// ReadMetadata parses the library.properties of the library at root
func ReadMetadata(root, propertiesFile string) (*Metadata, error) {
	path := propertiesFile
	if path == "" {
		p, found, err := arch.LocateMetadata(root)
		if err != nil {
			return nil, &Error{Op: "locate metadata", Library: root, Err: err}
		}
		if !found {
			return nil, &Error{Op: "locate metadata", Library: root, Err: ErrMetadataNotFound}
		}
		path = p
	}

	md, err := properties.ParseFile(path)
	if err != nil {
		return nil, &Error{Op: "read metadata", Library: root, Err: err}
	}
	return md, nil
}

// difference returns the entries of all missing from kept, relying on kept
// being an order-preserving subsequence of all.
func difference(all, kept []string) []string {
	var out []string
	j := 0
	for _, s := range all {
		if j < len(kept) && kept[j] == s {
			j++
			continue
		}
		out = append(out, s)
	}
	return out
}
