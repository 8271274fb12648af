// pkg/properties/parser.go
package properties

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Parse reads key=value pairs from r. Blank lines and lines starting with
// '#' are skipped. name is only used in error messages.
func Parse(r io.Reader, name string) (map[string]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024) // Long paragraphs

	values := make(map[string]string)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		key, value, ok := strings.Cut(trimmed, "=")
		if !ok {
			return nil, &MalformedError{Path: name, Line: lineNo, Reason: "expected key=value"}
		}

		key = strings.TrimSpace(key)
		if key == "" {
			return nil, &MalformedError{Path: name, Line: lineNo, Reason: "empty key"}
		}

		values[key] = strings.TrimSpace(value)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", name, err)
	}

	return values, nil
}

// ParseMetadata parses a library.properties stream into Metadata
func ParseMetadata(r io.Reader, name string) (*Metadata, error) {
	values, err := Parse(r, name)
	if err != nil {
		return nil, err
	}

	md := &Metadata{
		Path:       name,
		Name:       values[KeyName],
		Version:    values[KeyVersion],
		Author:     values[KeyAuthor],
		Maintainer: values[KeyMaintainer],
		Sentence:   values[KeySentence],
		Paragraph:  values[KeyParagraph],
		Category:   values[KeyCategory],
		URL:        values[KeyURL],
		Depends:    parseList(values[KeyDepends]),
		Includes:   parseList(values[KeyIncludes]),
		Values:     values,
	}

	if raw, ok := values[KeyArchitectures]; ok {
		md.HasArchitectures = true
		md.Architectures = ParseArchitectures(raw)
	}

	return md, nil
}

// ParseFile opens path and parses it as library.properties
func ParseFile(path string) (*Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	return ParseMetadata(f, path)
}

// ParseArchitectures splits an architectures value into lowercased identifiers.
// Empty items are dropped, duplicates keep their first position.
func ParseArchitectures(value string) []string {
	archs := []string{}
	seen := make(map[string]bool)
	for _, a := range parseList(value) {
		a = strings.ToLower(a)
		if seen[a] {
			continue
		}
		seen[a] = true
		archs = append(archs, a)
	}
	return archs
}

// parseList parses a comma-separated list
func parseList(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}
