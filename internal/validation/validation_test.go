package validation

import (
	"os"
	"testing"

	"github.com/nbvault/nbvault/internal/convert"
	"github.com/nbvault/nbvault/internal/notebook"
	"github.com/nbvault/nbvault/internal/pathing"
	"github.com/nbvault/nbvault/internal/queue"
	"github.com/nbvault/nbvault/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testVault(t *testing.T) pathing.Root {
	t.Helper()

	root, err := pathing.NewRoot(t.TempDir())
	require.NoError(t, err)

	return root
}

func writeNotebook(t *testing.T, root pathing.Root, rel string, data []byte) pathing.VaultPath {
	t.Helper()

	p, err := pathing.FromRelative(rel, false, root)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(p.Absolute(), data, 0o600))

	return p
}

func validDocument(t *testing.T) []byte {
	t.Helper()

	data, err := notebook.Skeleton(0).Marshal()
	require.NoError(t, err)

	return data
}

// TestValidateTask_Success tests validation of a well-formed export task.
func TestValidateTask_Success(t *testing.T) {
	t.Parallel()
	handler := NewHandler(&schema.OS{})

	root := testVault(t)
	nb := writeNotebook(t, root, "doc.ipynb", validDocument(t))

	task := &queue.ExportTask{Notebook: nb, Format: convert.FormatHTML}

	require.NoError(t, handler.validateTask(task, root))
}

// TestValidateTask_Failures tests the structural failure modes of task
// validation.
func TestValidateTask_Failures(t *testing.T) {
	t.Parallel()
	handler := NewHandler(&schema.OS{})

	root := testVault(t)

	nb := writeNotebook(t, root, "doc.ipynb", validDocument(t))

	noFormat := &queue.ExportTask{Notebook: nb}
	require.ErrorIs(t, handler.validateTask(noFormat, root), ErrNoFormat)

	folder, err := pathing.FromRelative("folder/", true, root)
	require.NoError(t, err)
	isDir := &queue.ExportTask{Notebook: folder, Format: convert.FormatHTML}
	require.ErrorIs(t, handler.validateTask(isDir, root), ErrIsDirectory)

	otherRoot, err := pathing.NewRoot("/somewhere/else")
	require.NoError(t, err)
	outside, err := pathing.FromAbsolute(nb.Absolute(), false, otherRoot)
	require.NoError(t, err)
	outsideTask := &queue.ExportTask{Notebook: outside, Format: convert.FormatHTML}
	require.ErrorIs(t, handler.validateTask(outsideTask, root), ErrOutsideVault)

	md, err := pathing.FromRelative("note.md", false, root)
	require.NoError(t, err)
	wrongExt := &queue.ExportTask{Notebook: md, Format: convert.FormatHTML}
	require.ErrorIs(t, handler.validateTask(wrongExt, root), ErrWrongExtension)

	missing, err := pathing.FromRelative("missing.ipynb", false, root)
	require.NoError(t, err)
	unreadable := &queue.ExportTask{Notebook: missing, Format: convert.FormatHTML}
	require.ErrorIs(t, handler.validateTask(unreadable, root), ErrNotReadable)

	garbled := writeNotebook(t, root, "garbled.ipynb", []byte("not json"))
	badDoc := &queue.ExportTask{Notebook: garbled, Format: convert.FormatHTML}
	require.ErrorIs(t, handler.validateTask(badDoc, root), notebook.ErrBadDocument)

	oldDoc := writeNotebook(t, root, "old.ipynb", []byte(`{"cells":[],"metadata":{},"nbformat":3,"nbformat_minor":0}`))
	oldTask := &queue.ExportTask{Notebook: oldDoc, Format: convert.FormatHTML}
	require.ErrorIs(t, handler.validateTask(oldTask, root), ErrUnsupportedVersion)
}

// TestValidateTasks_Filtering tests that failing tasks are dropped and
// passing tasks are kept in order.
func TestValidateTasks_Filtering(t *testing.T) {
	t.Parallel()
	handler := NewHandler(&schema.OS{})

	root := testVault(t)

	good := writeNotebook(t, root, "good.ipynb", validDocument(t))
	bad := writeNotebook(t, root, "bad.ipynb", []byte("{"))

	tasks := []*queue.ExportTask{
		{Notebook: good, Format: convert.FormatHTML},
		{Notebook: bad, Format: convert.FormatHTML},
	}

	filtered := handler.ValidateTasks(tasks, root)
	require.Len(t, filtered, 1)
	assert.Equal(t, good, filtered[0].Notebook)
}
