package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/libarch/pkg/sources"
)

func TestRecursiveLayout(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0755))

	e := New(root)
	assert.Equal(t, sources.LayoutRecursive, e.Layout)
	assert.Equal(t, []string{filepath.Join(root, "src")}, e.GetIncludePaths())
	assert.Equal(t, []string{"-I" + filepath.Join(root, "src")}, e.GetCompilerFlags().IncludeFlags)
}

func TestFlatLayout(t *testing.T) {
	root := t.TempDir()

	e := New(root)
	assert.Equal(t, sources.LayoutFlat, e.Layout)
	assert.Equal(t, []string{root}, e.GetIncludePaths())

	require.NoError(t, os.MkdirAll(filepath.Join(root, "utility"), 0755))
	assert.Equal(t, []string{root, filepath.Join(root, "utility")}, New(root).GetIncludePaths())
}

func TestMissingRoot(t *testing.T) {
	e := New(filepath.Join(t.TempDir(), "missing"))
	assert.Empty(t, e.GetIncludePaths())
	assert.Empty(t, e.GetCompilerFlags().IncludeFlags)
}
