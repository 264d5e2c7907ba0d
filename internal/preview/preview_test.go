package preview

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nbvault/nbvault/internal/convert"
	"github.com/nbvault/nbvault/internal/pathing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockConverter struct {
	mock.Mock
}

func (m *mockConverter) Convert(ctx context.Context, nb pathing.VaultPath, format convert.Format) (string, error) {
	callArgs := m.Called(ctx, nb, format)

	return callArgs.String(0), callArgs.Error(1)
}

func (m *mockConverter) ReadResult(outPath string) ([]byte, error) {
	callArgs := m.Called(outPath)

	output, _ := callArgs.Get(0).([]byte)

	return output, callArgs.Error(1)
}

func testNotebookPath(t *testing.T, dir string) pathing.VaultPath {
	t.Helper()

	root, err := pathing.NewRoot(dir)
	require.NoError(t, err)

	nb, err := pathing.FromRelative("doc.ipynb", false, root)
	require.NoError(t, err)

	return nb
}

// TestRender_Success tests conversion plus terminal rendering of the
// resulting markdown.
func TestRender_Success(t *testing.T) {
	t.Parallel()

	nb := testNotebookPath(t, t.TempDir())

	mockConv := new(mockConverter)
	mockConv.On("Convert", mock.Anything, nb, convert.FormatMarkdown).Return("/cache/abc.md", nil)
	mockConv.On("ReadResult", "/cache/abc.md").Return([]byte("# Heading\n\nbody text\n"), nil)

	handler := NewHandler(mockConv)

	rendered, err := handler.Render(context.Background(), nb, 0)
	require.NoError(t, err)

	assert.Contains(t, rendered, "Heading")
	assert.Contains(t, rendered, "body text")

	mockConv.AssertExpectations(t)
}

// TestRender_ConverterFailure tests that a converter failure propagates and
// yields no content.
func TestRender_ConverterFailure(t *testing.T) {
	t.Parallel()

	nb := testNotebookPath(t, t.TempDir())

	mockConv := new(mockConverter)
	mockConv.On("Convert", mock.Anything, nb, convert.FormatMarkdown).
		Return("", errors.New("exit status 1"))

	handler := NewHandler(mockConv)

	rendered, err := handler.Render(context.Background(), nb, 80)
	require.Error(t, err)
	assert.Empty(t, rendered)
}

// TestWatch_SignalsChange tests that writing the watched notebook signals a
// change.
func TestWatch_SignalsChange(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	nb := testNotebookPath(t, dir)
	require.NoError(t, os.WriteFile(nb.Absolute(), []byte("{}"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan struct{}, 1)

	handler := NewHandler(new(mockConverter))
	require.NoError(t, handler.Watch(ctx, nb, changes))

	require.Eventually(t, func() bool {
		_ = os.WriteFile(nb.Absolute(), []byte(`{"cells":[]}`), 0o600)

		select {
		case <-changes:
			return true
		default:
			return false
		}
	}, 5*time.Second, 100*time.Millisecond)
}

// TestWatch_IgnoresSiblings tests that changes to sibling files do not
// signal.
func TestWatch_IgnoresSiblings(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	nb := testNotebookPath(t, dir)
	require.NoError(t, os.WriteFile(nb.Absolute(), []byte("{}"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan struct{}, 1)

	handler := NewHandler(new(mockConverter))
	require.NoError(t, handler.Watch(ctx, nb, changes))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.md"), []byte("x"), 0o600))

	select {
	case <-changes:
		t.Fatal("unexpected change signal for sibling file")
	case <-time.After(500 * time.Millisecond):
	}
}

// TestWatch_MissingFolder tests watch establishment failure.
func TestWatch_MissingFolder(t *testing.T) {
	t.Parallel()

	root, err := pathing.NewRoot("/nonexistent-nbvault-root")
	require.NoError(t, err)

	nb, err := pathing.FromRelative("doc.ipynb", false, root)
	require.NoError(t, err)

	handler := NewHandler(new(mockConverter))

	err = handler.Watch(context.Background(), nb, make(chan struct{}))
	require.ErrorIs(t, err, ErrWatchFailed)
}
