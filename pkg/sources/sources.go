// Package sources discovers the compilable files of an Arduino library.
//
// Two layouts exist. Libraries in the 1.5 format keep their code under src/,
// which is searched recursively. Legacy libraries keep it in the root
// directory and an optional utility/ directory, neither searched recursively.
package sources

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// Layout of a library source tree
type Layout string

const (
	LayoutRecursive Layout = "recursive" // 1.5 format, src/
	LayoutFlat      Layout = "flat"      // legacy, root + utility/
)

// Options configures discovery
type Options struct {
	Extensions []string // e.g. ".cpp"; matched case-sensitively
	Include    []string // globs relative to the library root; empty means all
	Exclude    []string // globs relative to the library root
}

// DetectLayout reports which layout root uses
func DetectLayout(root string) Layout {
	if info, err := os.Stat(filepath.Join(root, "src")); err == nil && info.IsDir() {
		return LayoutRecursive
	}
	return LayoutFlat
}

// Discover lists the source files of the library at root in lexical order.
// Returned paths are root joined with the path inside the library.
func Discover(root string, opts Options) ([]string, error) {
	include, err := compileAll(opts.Include)
	if err != nil {
		return nil, err
	}
	exclude, err := compileAll(opts.Exclude)
	if err != nil {
		return nil, err
	}

	m := &matcher{
		extensions: opts.Extensions,
		include:    include,
		exclude:    exclude,
	}

	var files []string
	switch DetectLayout(root) {
	case LayoutRecursive:
		files, err = walk(root, "src", m)
	default:
		files, err = listDir(root, ".", m)
		if err == nil {
			var utility []string
			utility, err = listDir(root, "utility", m)
			files = append(files, utility...)
		}
	}
	if err != nil {
		return nil, err
	}

	return files, nil
}

type matcher struct {
	extensions []string
	include    []glob.Glob
	exclude    []glob.Glob
}

func (m *matcher) match(rel string) bool {
	if !m.hasExtension(rel) {
		return false
	}
	if len(m.include) > 0 && !anyMatch(m.include, rel) {
		return false
	}
	return !anyMatch(m.exclude, rel)
}

func (m *matcher) hasExtension(rel string) bool {
	ext := filepath.Ext(rel)
	for _, e := range m.extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func walk(root, dir string, m *matcher) ([]string, error) {
	var files []string
	err := filepath.WalkDir(filepath.Join(root, dir), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if strings.HasPrefix(name, ".") && path != filepath.Join(root, dir) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if m.match(filepath.ToSlash(rel)) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}
	return files, nil
}

func listDir(root, dir string, m *matcher) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(root, dir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		rel := filepath.ToSlash(filepath.Join(dir, e.Name()))
		if m.match(rel) {
			files = append(files, filepath.Join(root, dir, e.Name()))
		}
	}
	return files, nil
}

func compileAll(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid glob %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

func anyMatch(globs []glob.Glob, s string) bool {
	for _, g := range globs {
		if g.Match(s) {
			return true
		}
	}
	return false
}
