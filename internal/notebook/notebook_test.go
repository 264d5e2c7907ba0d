package notebook

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nbvault/nbvault/internal/pathing"
	"github.com/nbvault/nbvault/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFolder(t *testing.T) (string, pathing.VaultPath) {
	t.Helper()

	dir := t.TempDir()

	root, err := pathing.NewRoot(dir)
	require.NoError(t, err)

	folder, err := pathing.FromRelative("", true, root)
	require.NoError(t, err)

	return dir, folder
}

// TestSkeleton tests the minimal document skeleton: empty cell sequence,
// placeholder metadata and fixed format version markers.
func TestSkeleton(t *testing.T) {
	t.Parallel()

	doc := Skeleton(0)

	assert.Empty(t, doc.Cells)
	assert.NotNil(t, doc.Cells)
	assert.Equal(t, FormatMajor, doc.NBFormat)
	assert.Equal(t, FormatMinor, doc.NBFormatMinor)
	assert.Equal(t, "python3", doc.Metadata.Kernelspec.Name)
	assert.Equal(t, "python", doc.Metadata.LanguageInfo.Name)

	data, err := doc.Marshal()
	require.NoError(t, err)

	// The cell sequence must serialize as an empty array, not null.
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.JSONEq(t, "[]", string(raw["cells"]))
	assert.JSONEq(t, "4", string(raw["nbformat"]))
	assert.JSONEq(t, "5", string(raw["nbformat_minor"]))
}

// TestSkeleton_WithCells tests that requested empty code cells carry unique
// ids and empty outputs.
func TestSkeleton_WithCells(t *testing.T) {
	t.Parallel()

	doc := Skeleton(3)
	require.Len(t, doc.Cells, 3)

	seen := map[string]bool{}
	for _, cell := range doc.Cells {
		assert.Equal(t, CellTypeCode, cell.CellType)
		assert.NotEmpty(t, cell.ID)
		assert.False(t, seen[cell.ID])
		seen[cell.ID] = true

		assert.Empty(t, cell.Source)
		assert.NotNil(t, cell.Outputs)
		assert.JSONEq(t, "null", string(cell.ExecutionCount))
	}

	data, err := doc.Marshal()
	require.NoError(t, err)

	// Code cells must serialize both output fields, not drop them.
	assert.Contains(t, string(data), `"outputs": []`)
	assert.Contains(t, string(data), `"execution_count": null`)
}

// TestDefaultBasename tests the timestamped default filename.
func TestDefaultBasename(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 3, 9, 14, 30, 5, 0, time.UTC)
	assert.Equal(t, "Untitled-20240309-143005.ipynb", DefaultBasename(ts))
}

// TestParse_Invalid tests that malformed documents are rejected.
func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("not json"))
	require.ErrorIs(t, err, ErrBadDocument)
}

// TestCreate_Success tests creating a notebook and reading it back.
func TestCreate_Success(t *testing.T) {
	t.Parallel()
	handler := NewHandler(&schema.OS{})

	dir, folder := testFolder(t)

	target, err := handler.Create(folder, "Log", 0)
	require.NoError(t, err)

	assert.Equal(t, "Log.ipynb", target.Base())
	assert.FileExists(t, filepath.Join(dir, "Log.ipynb"))

	doc, err := handler.Load(target)
	require.NoError(t, err)
	assert.Equal(t, FormatMajor, doc.NBFormat)
	assert.Empty(t, doc.Cells)

	// No temporary file is left behind.
	leftover, err := filepath.Glob(filepath.Join(dir, "*.nbvault"))
	require.NoError(t, err)
	assert.Empty(t, leftover)
}

// TestCreate_DefaultName tests creation with the generated default filename.
func TestCreate_DefaultName(t *testing.T) {
	t.Parallel()
	handler := NewHandler(&schema.OS{})

	_, folder := testFolder(t)

	target, err := handler.Create(folder, "", 1)
	require.NoError(t, err)

	assert.Contains(t, target.Base(), "Untitled-")
	assert.Contains(t, target.Base(), Extension)

	doc, err := handler.Load(target)
	require.NoError(t, err)
	assert.Len(t, doc.Cells, 1)
}

// TestCreate_AlreadyExists tests that creation aborts on an occupied path
// instead of overwriting.
func TestCreate_AlreadyExists(t *testing.T) {
	t.Parallel()
	handler := NewHandler(&schema.OS{})

	dir, folder := testFolder(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Log.ipynb"), []byte("occupied"), 0o600))

	_, err := handler.Create(folder, "Log.ipynb", 0)
	require.ErrorIs(t, err, ErrAlreadyExists)

	// The occupant is untouched.
	data, err := os.ReadFile(filepath.Join(dir, "Log.ipynb"))
	require.NoError(t, err)
	assert.Equal(t, "occupied", string(data))
}

// TestCreate_OnFile tests that creating inside a file-flagged path fails
// with an invalid-operation error.
func TestCreate_OnFile(t *testing.T) {
	t.Parallel()
	handler := NewHandler(&schema.OS{})

	_, folder := testFolder(t)

	file, err := folder.Append("some.ipynb", false)
	require.NoError(t, err)

	_, err = handler.Create(file, "other", 0)
	require.ErrorIs(t, err, pathing.ErrNotADirectory)
}

// TestLoad_NotANotebook tests extension checking on load.
func TestLoad_NotANotebook(t *testing.T) {
	t.Parallel()
	handler := NewHandler(&schema.OS{})

	_, folder := testFolder(t)

	file, err := folder.Append("note.md", false)
	require.NoError(t, err)

	_, err = handler.Load(file)
	require.ErrorIs(t, err, ErrNotANotebook)
}
