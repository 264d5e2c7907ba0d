package vault

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nbvault/nbvault/internal/pathing"
	"github.com/nbvault/nbvault/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHandler() *Handler {
	return NewHandler(&schema.OS{}, &schema.Unix{})
}

// TestEstablishVault_Success tests establishment against an existing root
// directory.
func TestEstablishVault_Success(t *testing.T) {
	t.Parallel()
	handler := testHandler()

	dir := t.TempDir()

	vault, err := handler.EstablishVault(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Base(dir), vault.Name)
	assert.Equal(t, dir+"/", vault.Root.Path())
}

// TestEstablishVault_NoRoot tests rejection of an empty root configuration.
func TestEstablishVault_NoRoot(t *testing.T) {
	t.Parallel()
	handler := testHandler()

	_, err := handler.EstablishVault("")
	require.ErrorIs(t, err, ErrNoRootConfigured)
}

// TestEstablishVault_Missing tests rejection of a non-existing root.
func TestEstablishVault_Missing(t *testing.T) {
	t.Parallel()
	handler := testHandler()

	_, err := handler.EstablishVault(filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, ErrRootNotFound)
}

// TestEstablishVault_NotDirectory tests rejection of a file as root.
func TestEstablishVault_NotDirectory(t *testing.T) {
	t.Parallel()
	handler := testHandler()

	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	_, err := handler.EstablishVault(file)
	require.ErrorIs(t, err, ErrRootNotDirectory)

	// A file as a parent component of the root is the same misconfiguration.
	_, err = handler.EstablishVault(filepath.Join(file, "sub"))
	require.ErrorIs(t, err, ErrRootNotDirectory)
}

// TestExists tests the existence probe for present and absent paths.
func TestExists(t *testing.T) {
	t.Parallel()
	handler := testHandler()

	dir := t.TempDir()
	vault, err := handler.EstablishVault(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.ipynb"), []byte("{}"), 0o600))

	p, err := pathing.FromRelative("a.ipynb", false, vault.Root)
	require.NoError(t, err)

	exists, err := handler.Exists(p)
	require.NoError(t, err)
	assert.True(t, exists)

	p, err = pathing.FromRelative("missing.ipynb", false, vault.Root)
	require.NoError(t, err)

	exists, err = handler.Exists(p)
	require.NoError(t, err)
	assert.False(t, exists)
}

// TestNotebooks tests vault walking: notebooks in nested folders are found,
// hidden folders and foreign extensions are skipped.
func TestNotebooks(t *testing.T) {
	t.Parallel()
	handler := testHandler()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Notes", "Deep"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".hidden"), 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "top.ipynb"), []byte("{}"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Notes", "a.ipynb"), []byte("{}"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Notes", "Deep", "b.ipynb"), []byte("{}"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Notes", "note.md"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden", "c.ipynb"), []byte("{}"), 0o600))

	vault, err := handler.EstablishVault(dir)
	require.NoError(t, err)

	entries, err := handler.Notebooks(vault)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	rels := make([]string, 0, len(entries))
	for _, e := range entries {
		rel, ok := e.Path.Relative()
		require.True(t, ok)
		rels = append(rels, rel)

		assert.False(t, e.Path.IsDir())
		assert.Positive(t, e.Size)
		assert.False(t, e.ModTime.IsZero())
	}

	assert.ElementsMatch(t, []string{"top.ipynb", "Notes/a.ipynb", "Notes/Deep/b.ipynb"}, rels)
}

// TestUsage tests that filesystem usage statistics are reported.
func TestUsage(t *testing.T) {
	t.Parallel()
	handler := testHandler()

	vault, err := handler.EstablishVault(t.TempDir())
	require.NoError(t, err)

	stats, err := handler.Usage(vault)
	require.NoError(t, err)
	assert.Positive(t, stats.TotalSize)
}
