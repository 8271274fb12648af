package fetch

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// initRepo creates a repository with a library.properties commit and a tag
func initRepo(t *testing.T) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "Servo")
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "library.properties"), []byte("name=Servo\narchitectures=avr\n"), 0644))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("library.properties")
	require.NoError(t, err)

	hash, err := wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	_, err = repo.CreateTag("1.0.0", hash, nil)
	require.NoError(t, err)

	return dir
}

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

func TestDir(t *testing.T) {
	assert.Equal(t, filepath.Join("/cache", "libraries", "Servo"), Dir("/cache", "https://github.com/arduino-libraries/Servo.git", ""))
	assert.Equal(t, filepath.Join("/cache", "libraries", "Servo@1.2.1"), Dir("/cache", "https://github.com/arduino-libraries/Servo/", "1.2.1"))
}

func TestFetch(t *testing.T) {
	requireGit(t)

	src := initRepo(t)
	cache := t.TempDir()

	dest, err := Fetch(context.Background(), Options{URL: src, CacheDir: cache})
	require.NoError(t, err)
	assert.Equal(t, Dir(cache, src, ""), dest)

	data, err := os.ReadFile(filepath.Join(dest, "library.properties"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "architectures=avr")

	// second fetch reuses the cached clone
	again, err := Fetch(context.Background(), Options{URL: src, CacheDir: cache})
	require.NoError(t, err)
	assert.Equal(t, dest, again)
}

func TestFetch_Tag(t *testing.T) {
	requireGit(t)

	src := initRepo(t)
	dest, err := Fetch(context.Background(), Options{URL: src, Ref: "1.0.0", CacheDir: t.TempDir()})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dest, "library.properties"))
	assert.NoError(t, err)
}

func TestFetch_Validation(t *testing.T) {
	_, err := Fetch(context.Background(), Options{CacheDir: t.TempDir()})
	require.Error(t, err)

	_, err = Fetch(context.Background(), Options{URL: "https://example.com/x.git"})
	require.Error(t, err)
}

func TestFetch_MissingRepository(t *testing.T) {
	requireGit(t)

	_, err := Fetch(context.Background(), Options{
		URL:      filepath.Join(t.TempDir(), "does-not-exist"),
		CacheDir: t.TempDir(),
	})
	require.Error(t, err)
}
