package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
}

// TestFindFilesByExtension_Recursive validates the recursive walk with
// multiple extensions.
func TestFindFilesByExtension_Recursive(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "defaults.yaml"))
	touch(t, filepath.Join(dir, "sub", "finetune.hcl"))
	touch(t, filepath.Join(dir, "sub", "notes.txt"))
	touch(t, filepath.Join(dir, "train.yml"))

	// --- Act ---
	files, err := FindFilesByExtension(dir, ".yaml", ".yml", ".hcl")

	// --- Assert ---
	require.NoError(t, err)
	require.ElementsMatch(t, []string{
		filepath.Join(dir, "defaults.yaml"),
		filepath.Join(dir, "sub", "finetune.hcl"),
		filepath.Join(dir, "train.yml"),
	}, files)
}

// TestFindFilesByExtension_SingleFileRoot validates the root-is-a-file
// shortcut.
func TestFindFilesByExtension_SingleFileRoot(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	dir := t.TempDir()
	path := filepath.Join(dir, "solo.yaml")
	touch(t, path)

	// --- Act ---
	files, err := FindFilesByExtension(path, ".yaml")
	require.NoError(t, err)
	require.Equal(t, []string{path}, files)

	none, err := FindFilesByExtension(path, ".hcl")
	require.NoError(t, err)
	require.Empty(t, none)
}

// TestFindFilesByExtension_MissingRoot validates the error for a bad path.
func TestFindFilesByExtension_MissingRoot(t *testing.T) {
	t.Parallel()
	_, err := FindFilesByExtension(filepath.Join(t.TempDir(), "ghost"), ".yaml")
	require.Error(t, err)
}

// TestFindFilesByExtension_NoExtensions validates the programmer-error
// guard.
func TestFindFilesByExtension_NoExtensions(t *testing.T) {
	t.Parallel()
	require.Panics(t, func() {
		_, _ = FindFilesByExtension(t.TempDir())
	})
}
