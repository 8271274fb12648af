package libarch

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/libarch/pkg/registry"
)

func newResolver(t *testing.T, target string, logger *log.Logger) *Resolver {
	t.Helper()
	p, err := NewPlatform(target)
	require.NoError(t, err)

	r, err := NewResolver(p, &Options{Logger: logger})
	require.NoError(t, err)
	return r
}

func library(t *testing.T, props string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "Servo")
	require.NoError(t, os.MkdirAll(dir, 0755))
	if props != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "library.properties"), []byte(props), 0644))
	}
	return dir
}

func TestResolve_MissingMetadata(t *testing.T) {
	var buf bytes.Buffer
	r := newResolver(t, "avr", log.New(&buf))

	res, err := r.Resolve(context.Background(), &Request{
		LibraryRoot: library(t, ""),
		Sources:     []string{"a.cpp", "b.cpp"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"a.cpp", "b.cpp"}, res.Sources)
	assert.False(t, res.MetadataFound())
	assert.Empty(t, res.Pattern)
	assert.Equal(t, 1, strings.Count(buf.String(), "WARN"))
	assert.Contains(t, buf.String(), "library.properties not found")
}

func TestResolve_FiltersUnsupported(t *testing.T) {
	r := newResolver(t, "avr", nil)

	res, err := r.Resolve(context.Background(), &Request{
		LibraryRoot: library(t, "name=Servo\narchitectures=avr\n"),
		Sources:     []string{"core_avr.cpp", "core_esp32.cpp", "shared.cpp"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"core_avr.cpp", "shared.cpp"}, res.Sources)
	assert.Equal(t, []string{"core_esp32.cpp"}, res.Excluded)
	assert.Equal(t, "Servo", res.Library)
	assert.Equal(t, []string{"avr"}, res.Architectures)
	assert.True(t, res.MetadataFound())
	assert.NotEmpty(t, res.Pattern)
}

func TestResolve_KeepsOwnUnderscoreTaggedSources(t *testing.T) {
	r := newResolver(t, "mbed_nano", nil)

	res, err := r.Resolve(context.Background(), &Request{
		LibraryRoot: library(t, "name=Servo\narchitectures=mbed_nano\n"),
		Sources:     []string{"src/mbed_nano/pins.cpp", "core_mbed_nano.cpp", "shared.cpp", "core_mbed_portenta.cpp"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"src/mbed_nano/pins.cpp", "core_mbed_nano.cpp", "shared.cpp"}, res.Sources)
	assert.Equal(t, []string{"core_mbed_portenta.cpp"}, res.Excluded)
}

func TestResolve_UnsupportedArchitecture(t *testing.T) {
	r := newResolver(t, "esp32", nil)

	res, err := r.Resolve(context.Background(), &Request{
		LibraryRoot: library(t, "name=Servo\narchitectures=avr\n"),
		Sources:     []string{"a.cpp"},
	})
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, ErrUnsupportedArchitecture))

	var uerr *UnsupportedArchitectureError
	require.True(t, errors.As(err, &uerr))
	assert.Equal(t, "Servo", uerr.Library)
	assert.Equal(t, "esp32", uerr.Architecture)
	assert.Equal(t, []string{"avr"}, uerr.Declared)
}

func TestResolve_WildcardKeepsEverything(t *testing.T) {
	r := newResolver(t, "esp32", nil)

	res, err := r.Resolve(context.Background(), &Request{
		LibraryRoot: library(t, "architectures=*\n"),
		Sources:     []string{"a.cpp", "b_avr.cpp"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.cpp", "b_avr.cpp"}, res.Sources)
	assert.Empty(t, res.Excluded)
	assert.Empty(t, res.Pattern)
}

func TestResolve_EmptyArchitecturesIsUnsupported(t *testing.T) {
	r := newResolver(t, "avr", nil)

	_, err := r.Resolve(context.Background(), &Request{
		LibraryRoot: library(t, "name=Empty\narchitectures=\n"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedArchitecture))
}

func TestResolve_MalformedMetadata(t *testing.T) {
	r := newResolver(t, "avr", nil)

	for name, props := range map[string]string{
		"missing key": "name=Servo\nversion=1.0\n",
		"bad line":    "name=Servo\nnot a property\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := r.Resolve(context.Background(), &Request{
				LibraryRoot: library(t, props),
				Sources:     []string{"a.cpp"},
			})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedMetadata))

			var merr *MalformedMetadataError
			assert.True(t, errors.As(err, &merr))
		})
	}
}

func TestResolve_PropertiesOverride(t *testing.T) {
	r := newResolver(t, "esp32", nil)

	override := filepath.Join(t.TempDir(), "custom.properties")
	require.NoError(t, os.WriteFile(override, []byte("architectures=esp32\n"), 0644))

	res, err := r.Resolve(context.Background(), &Request{
		LibraryRoot:    library(t, "architectures=avr\n"),
		PropertiesFile: override,
		Sources:        []string{"x_avr.cpp", "x_esp32.cpp"},
	})
	require.NoError(t, err)
	assert.Equal(t, override, res.MetadataPath)
	assert.Equal(t, []string{"x_esp32.cpp"}, res.Sources)
}

func TestResolve_Discover(t *testing.T) {
	root := library(t, "name=Servo\narchitectures=avr,samd\n")
	for _, rel := range []string{"src/Servo.cpp", "src/avr/Timers.cpp", "src/samd/Timers.cpp", "src/esp32/Timers.cpp", "src/Servo.h"} {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, nil, 0644))
	}

	r := newResolver(t, "samd", nil)
	res, err := r.Resolve(context.Background(), &Request{LibraryRoot: root, Discover: true})
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "src", "Servo.cpp"),
		filepath.Join(root, "src", "avr", "Timers.cpp"),
		filepath.Join(root, "src", "samd", "Timers.cpp"),
	}, res.Sources)
	assert.Equal(t, []string{filepath.Join(root, "src", "esp32", "Timers.cpp")}, res.Excluded)
	assert.Equal(t, []string{filepath.Join(root, "src")}, res.Includes)
}

func TestResolve_CustomRegistry(t *testing.T) {
	p, err := NewPlatform("ch32v")
	require.NoError(t, err)

	r, err := NewResolver(p, &Options{Registry: registry.New(
		registry.Architecture{Name: "ch32v"},
		registry.Architecture{Name: "avr"},
	)})
	require.NoError(t, err)

	res, err := r.Resolve(context.Background(), &Request{
		LibraryRoot: library(t, "architectures=ch32v\n"),
		Sources:     []string{"a_ch32v.c", "a_avr.c", "a_esp32.c"},
	})
	require.NoError(t, err)
	// esp32 is not in this registry, so its files are not recognised as tagged
	assert.Equal(t, []string{"a_ch32v.c", "a_esp32.c"}, res.Sources)
}

func TestResolve_Validation(t *testing.T) {
	r := newResolver(t, "avr", nil)

	_, err := r.Resolve(context.Background(), &Request{})
	require.Error(t, err)

	_, err = r.Resolve(context.Background(), &Request{LibraryRoot: filepath.Join(t.TempDir(), "missing")})
	require.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Resolve(ctx, &Request{LibraryRoot: library(t, "architectures=*\n")})
	assert.True(t, errors.Is(err, context.Canceled))

	_, err = NewResolver(nil, nil)
	require.Error(t, err)
}

func TestCheck(t *testing.T) {
	r := newResolver(t, "avr", nil)

	res, err := r.Check(context.Background(), library(t, "architectures=avr,sam\n"), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"avr", "sam"}, res.Architectures)
	assert.Empty(t, res.Sources)
}

func TestReadMetadata(t *testing.T) {
	md, err := ReadMetadata(library(t, "name=Servo\nversion=1.2.1\narchitectures=avr\n"), "")
	require.NoError(t, err)
	assert.Equal(t, "Servo", md.Name)
	assert.Equal(t, "1.2.1", md.Version)

	_, err = ReadMetadata(library(t, ""), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMetadataNotFound))
}

func TestOpenLibrary_Directory(t *testing.T) {
	dir := library(t, "architectures=*\n")
	root, err := OpenLibrary(dir, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, dir, root)
}

func TestDifference(t *testing.T) {
	assert.Equal(t, []string{"b", "d"}, difference([]string{"a", "b", "c", "d"}, []string{"a", "c"}))
	assert.Nil(t, difference([]string{"a"}, []string{"a"}))
}

func TestError(t *testing.T) {
	err := &Error{Op: "resolve", Library: "Servo", Err: ErrMetadataNotFound}
	assert.Equal(t, "resolve Servo: library metadata not found", err.Error())
	assert.True(t, errors.Is(err, ErrMetadataNotFound))

	err = &Error{Op: "resolve", Err: ErrInvalidArchive}
	assert.Equal(t, "resolve: invalid library archive", err.Error())
}

func TestOpenLibrary_Archive(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for name, body := range map[string]string{
		"Servo/library.properties": "name=Servo\narchitectures=avr\n",
		"Servo/src/Servo.cpp":      "",
	} {
		require.NoError(t, tw.WriteHeader(&tar.Header{Name: name, Mode: 0644, Size: int64(len(body)), Typeflag: tar.TypeReg}))
		_, err := tw.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())

	path := filepath.Join(t.TempDir(), "Servo-1.2.1.tar.gz")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	cache := t.TempDir()
	root, err := OpenLibrary(path, cache)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cache, "unpacked", "Servo-1.2.1", "Servo"), root)

	r := newResolver(t, "avr", nil)
	res, err := r.Resolve(context.Background(), &Request{LibraryRoot: root, Discover: true})
	require.NoError(t, err)
	assert.Equal(t, "Servo", res.Library)
	assert.Equal(t, []string{filepath.Join(root, "src", "Servo.cpp")}, res.Sources)
}

func TestOpenLibrary_CorruptArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.tar.xz")
	require.NoError(t, os.WriteFile(path, []byte("nope"), 0644))

	_, err := OpenLibrary(path, t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArchive))
}
