// Package fetch clones git-hosted libraries into the local cache.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Options configures a fetch
type Options struct {
	URL      string    // Repository URL or local path
	Ref      string    // Branch, tag or full reference name; default branch if empty
	CacheDir string    // Libraries are cloned below <CacheDir>/libraries
	Depth    int       // History depth; 0 clones everything
	Force    bool      // Re-clone even if the library is already cached
	Progress io.Writer // Optional clone progress output
}

// Dir returns the directory a library from url is cloned into
func Dir(cacheDir, url, ref string) string {
	name := strings.TrimSuffix(path.Base(strings.TrimRight(filepath.ToSlash(url), "/")), ".git")
	if ref != "" {
		name += "@" + path.Base(ref)
	}
	return filepath.Join(cacheDir, "libraries", name)
}

// Fetch clones the library and returns its local path. A cached copy is
// reused unless opts.Force is set.
func Fetch(ctx context.Context, opts Options) (string, error) {
	if opts.URL == "" {
		return "", fmt.Errorf("repository url is required")
	}
	if opts.CacheDir == "" {
		return "", fmt.Errorf("cache directory is required")
	}

	dest := Dir(opts.CacheDir, opts.URL, opts.Ref)

	if _, err := git.PlainOpen(dest); err == nil {
		if !opts.Force {
			return dest, nil
		}
		if err := os.RemoveAll(dest); err != nil {
			return "", fmt.Errorf("removing cached clone: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return "", fmt.Errorf("creating cache dir: %w", err)
	}

	var lastErr error
	for _, ref := range candidateRefs(opts.Ref) {
		_, err := git.PlainCloneContext(ctx, dest, false, &git.CloneOptions{
			URL:           opts.URL,
			ReferenceName: ref,
			SingleBranch:  ref != "",
			Depth:         opts.Depth,
			Progress:      opts.Progress,
		})
		if err == nil {
			return dest, nil
		}

		os.RemoveAll(dest)
		lastErr = err
		if !errors.Is(err, plumbing.ErrReferenceNotFound) && !isNoMatchingRef(err) {
			break
		}
	}

	return "", fmt.Errorf("git clone failed: %w", lastErr)
}

// candidateRefs expands a short ref into branch and tag names
func candidateRefs(ref string) []plumbing.ReferenceName {
	switch {
	case ref == "":
		return []plumbing.ReferenceName{""}
	case strings.HasPrefix(ref, "refs/"):
		return []plumbing.ReferenceName{plumbing.ReferenceName(ref)}
	default:
		return []plumbing.ReferenceName{
			plumbing.NewBranchReferenceName(ref),
			plumbing.NewTagReferenceName(ref),
		}
	}
}

func isNoMatchingRef(err error) bool {
	var nmr git.NoMatchingRefSpecError
	return errors.As(err, &nmr) || strings.Contains(err.Error(), "couldn't find remote ref")
}
