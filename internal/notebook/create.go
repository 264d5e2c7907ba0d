package notebook

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/nbvault/nbvault/internal/pathing"
	"github.com/zeebo/blake3"
)

type osProvider interface {
	Stat(name string) (os.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	OpenFile(name string, flag int, perm os.FileMode) (*os.File, error)
	Remove(name string) error
	Rename(oldpath, newpath string) error
}

// Handler is the principal implementation for notebook document handling.
type Handler struct {
	osHandler osProvider
}

// NewHandler returns a pointer to a new notebook [Handler].
func NewHandler(osHandler osProvider) *Handler {
	return &Handler{
		osHandler: osHandler,
	}
}

// Create writes a new minimal notebook document into the given folder and
// returns its path. An empty name yields the timestamped default filename;
// a missing extension is added. Creation is aborted with [ErrAlreadyExists]
// when the target path is already occupied.
func (n *Handler) Create(folder pathing.VaultPath, name string, cells int) (pathing.VaultPath, error) {
	if name == "" {
		name = DefaultBasename(time.Now())
	}
	if !strings.HasSuffix(name, Extension) {
		name += Extension
	}

	target, err := folder.Append(name, false)
	if err != nil {
		return pathing.VaultPath{}, fmt.Errorf("(notebook-create) %w", err)
	}

	if _, err := n.osHandler.Stat(target.Absolute()); err == nil {
		return pathing.VaultPath{}, fmt.Errorf("(notebook-create) %w: %s", ErrAlreadyExists, target.Absolute())
	} else if !errors.Is(err, fs.ErrNotExist) {
		return pathing.VaultPath{}, fmt.Errorf("(notebook-create) failed to stat: %w", err)
	}

	data, err := Skeleton(cells).Marshal()
	if err != nil {
		return pathing.VaultPath{}, fmt.Errorf("(notebook-create) %w", err)
	}

	if err := n.writeFileAtomic(target.Absolute(), data); err != nil {
		return pathing.VaultPath{}, fmt.Errorf("(notebook-create) %w", err)
	}

	return target, nil
}

// Load reads and parses an existing notebook document.
func (n *Handler) Load(p pathing.VaultPath) (*Document, error) {
	if !strings.HasSuffix(p.Absolute(), Extension) {
		return nil, fmt.Errorf("(notebook-load) %w: %s", ErrNotANotebook, p.Absolute())
	}

	data, err := n.osHandler.ReadFile(p.Absolute())
	if err != nil {
		return nil, fmt.Errorf("(notebook-load) failed to read: %w", err)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("(notebook-load) %w", err)
	}

	return doc, nil
}

// writeFileAtomic writes a document payload to a temporary file, verifies the
// written bytes against the payload checksum and only then renames onto the
// final path.
func (n *Handler) writeFileAtomic(path string, data []byte) error {
	var writeComplete bool

	tmpPath := path + ".nbvault"
	defer func() {
		if !writeComplete {
			n.osHandler.Remove(tmpPath) //nolint:errcheck
		}
	}()

	dstFile, err := n.osHandler.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open temporary file %s: %w", tmpPath, err)
	}
	defer dstFile.Close()

	hasher := blake3.New()
	multiWriter := io.MultiWriter(dstFile, hasher)

	if _, err := multiWriter.Write(data); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := dstFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync destination fs: %w", err)
	}

	written, err := n.osHandler.ReadFile(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to read back temporary file: %w", err)
	}

	srcChecksum := hex.EncodeToString(hasher.Sum(nil))
	dstChecksum := hex.EncodeToString(checksum(written))

	if srcChecksum != dstChecksum {
		return fmt.Errorf("%w: %s (src) != %s (dst)", ErrHashMismatch, srcChecksum, dstChecksum)
	}

	if _, err := n.osHandler.Stat(path); err == nil {
		return ErrRenameExists
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to check rename destination existence: %w", err)
	}

	if err := n.osHandler.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temporary file to destination file: %w", err)
	}

	writeComplete = true

	return nil
}

// checksum returns the blake3 digest of a payload.
func checksum(data []byte) []byte {
	hasher := blake3.New()
	_, _ = hasher.Write(data)

	return hasher.Sum(nil)
}
