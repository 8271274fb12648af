// pkg/archive/archive.go
package archive

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// ErrInvalid indicates a library archive could not be unpacked
var ErrInvalid = errors.New("invalid library archive")

// Format is the compression of a tarball
type Format string

const (
	FormatTar  Format = "tar"
	FormatGzip Format = "gzip"
	FormatXz   Format = "xz"
	FormatZstd Format = "zstd"
)

var suffixes = []struct {
	suffix string
	format Format
}{
	{".tar.gz", FormatGzip},
	{".tgz", FormatGzip},
	{".tar.xz", FormatXz},
	{".txz", FormatXz},
	{".tar.zst", FormatZstd},
	{".tzst", FormatZstd},
	{".tar", FormatTar},
}

// DetectFormat infers the format from the file name
func DetectFormat(name string) (Format, bool) {
	lower := strings.ToLower(name)
	for _, s := range suffixes {
		if strings.HasSuffix(lower, s.suffix) {
			return s.format, true
		}
	}
	return "", false
}

// IsArchive reports whether path names a regular file in a known format
func IsArchive(path string) bool {
	if _, ok := DetectFormat(path); !ok {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Name strips the archive suffix from the base name of path
func Name(path string) string {
	base := filepath.Base(path)
	lower := strings.ToLower(base)
	for _, s := range suffixes {
		if strings.HasSuffix(lower, s.suffix) {
			return base[:len(base)-len(s.suffix)]
		}
	}
	return base
}

// ExtractLibrary unpacks the archive at src below <cacheDir>/unpacked and
// returns the library root inside it. A previous extraction of the same
// archive name is replaced.
func ExtractLibrary(src, cacheDir string) (string, error) {
	name := Name(src)
	if name == "" || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %s has no library name", ErrInvalid, filepath.Base(src))
	}

	dest := filepath.Join(cacheDir, "unpacked", name)
	if err := os.RemoveAll(dest); err != nil {
		return "", fmt.Errorf("clearing %s: %w", dest, err)
	}
	if err := os.MkdirAll(dest, 0755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dest, err)
	}

	if err := Extract(src, dest); err != nil {
		os.RemoveAll(dest)
		return "", err
	}

	return LibraryRoot(dest), nil
}

// Extract unpacks src into dest. Only directories and regular files are
// written; links and devices are skipped.
func Extract(src, dest string) error {
	format, ok := DetectFormat(src)
	if !ok {
		return fmt.Errorf("%w: unrecognised format %s", ErrInvalid, filepath.Base(src))
	}

	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	var r io.Reader
	switch format {
	case FormatGzip:
		gz, err := gzip.NewReader(f)
		if err != nil {
			return fmt.Errorf("%w: gzip: %v", ErrInvalid, err)
		}
		defer gz.Close()
		r = gz
	case FormatXz:
		x, err := xz.NewReader(f)
		if err != nil {
			return fmt.Errorf("%w: xz: %v", ErrInvalid, err)
		}
		r = x
	case FormatZstd:
		zs, err := zstd.NewReader(f)
		if err != nil {
			return fmt.Errorf("%w: zstd: %v", ErrInvalid, err)
		}
		defer zs.Close()
		r = zs
	default:
		r = f
	}

	return extractTar(tar.NewReader(r), dest)
}

func extractTar(tr *tar.Reader, dest string) error {
	base := filepath.Clean(dest) + string(filepath.Separator)

	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: reading tar entry: %v", ErrInvalid, err)
		}

		// Clean the path (remove leading ./)
		cleanPath := strings.TrimPrefix(header.Name, "./")
		if cleanPath == "" || cleanPath == "." {
			continue
		}

		target := filepath.Join(dest, filepath.FromSlash(cleanPath))
		if !strings.HasPrefix(target, base) {
			return fmt.Errorf("%w: entry %s escapes destination", ErrInvalid, header.Name)
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("creating directory %s: %w", target, err)
			}

		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return fmt.Errorf("creating parent directory: %w", err)
			}

			out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
			if err != nil {
				return fmt.Errorf("creating file %s: %w", target, err)
			}

			written, err := io.Copy(out, tr)
			out.Close()
			if err != nil {
				return fmt.Errorf("writing file %s: %w", target, err)
			}
			if written != header.Size {
				return fmt.Errorf("%w: size mismatch for %s: expected %d, got %d", ErrInvalid, cleanPath, header.Size, written)
			}
		}
	}

	return nil
}

// LibraryRoot returns the single top-level directory of dir when that is all
// dir contains, which is how release tarballs are usually laid out.
// Otherwise it returns dir.
func LibraryRoot(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) != 1 || !entries[0].IsDir() {
		return dir
	}
	return filepath.Join(dir, entries[0].Name())
}
