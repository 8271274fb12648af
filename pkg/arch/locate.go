package arch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arc-language/libarch/pkg/properties"
)

// LocateMetadata looks for library.properties directly under root. Relative
// roots are resolved against the working directory. A missing file is not an
// error: found is false and the caller decides how loudly to complain. An
// error is returned only when root itself cannot be used.
func LocateMetadata(root string) (path string, found bool, err error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", false, fmt.Errorf("resolving library root %s: %w", root, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", false, fmt.Errorf("library root: %w", err)
	}
	if !info.IsDir() {
		return "", false, fmt.Errorf("library root %s is not a directory", abs)
	}

	path = filepath.Join(abs, properties.FileName)
	fi, err := os.Stat(path)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("checking %s: %w", path, err)
	}
	if fi.IsDir() {
		return "", false, nil
	}

	return path, true, nil
}

// ExtractArchitectures parses path and returns its declared architectures
func ExtractArchitectures(path string) ([]string, error) {
	md, err := properties.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return FromMetadata(md)
}

// FromMetadata returns the declared architectures of already parsed metadata.
// A file without an architectures key is malformed.
func FromMetadata(md *properties.Metadata) ([]string, error) {
	if !md.HasArchitectures {
		return nil, &properties.MalformedError{
			Path:   md.Path,
			Reason: "missing " + properties.KeyArchitectures + " field",
		}
	}
	return md.Architectures, nil
}
