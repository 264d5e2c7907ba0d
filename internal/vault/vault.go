// Package vault implements establishment of and access to the sandboxed
// document root ("vault") that holds all notebook files. All filesystem
// operations are scoped to that root; locations are handed around as
// [pathing.VaultPath] values.
package vault

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/nbvault/nbvault/internal/notebook"
	"github.com/nbvault/nbvault/internal/pathing"
	"golang.org/x/sys/unix"
)

type osProvider interface {
	Stat(name string) (os.FileInfo, error)
	ReadDir(name string) ([]os.DirEntry, error)
}

type unixProvider interface {
	Statfs(path string, buf *unix.Statfs_t) error
}

// Vault is an established document root.
type Vault struct {
	Name string
	Root pathing.Root
}

// Entry is a notebook file discovered inside a [Vault].
type Entry struct {
	Path    pathing.VaultPath
	Size    int64
	ModTime time.Time
}

// Stats holds disk usage information for the filesystem housing a [Vault].
// It is meant to be passed by value.
type Stats struct {
	TotalSize uint64
	FreeSpace uint64
}

// Handler is the principal implementation for vault access.
type Handler struct {
	osHandler   osProvider
	unixHandler unixProvider
}

// NewHandler returns a pointer to a new vault [Handler].
func NewHandler(osHandler osProvider, unixHandler unixProvider) *Handler {
	return &Handler{
		osHandler:   osHandler,
		unixHandler: unixHandler,
	}
}

// EstablishVault verifies the configured root path and returns a pointer to
// an established [Vault]. The root must exist and be a directory; a stat
// failure other than non-existence is treated as missing filesystem access.
func (v *Handler) EstablishVault(rootPath string) (*Vault, error) {
	if rootPath == "" {
		return nil, fmt.Errorf("(vault) %w", ErrNoRootConfigured)
	}

	root, err := pathing.NewRoot(rootPath)
	if err != nil {
		return nil, fmt.Errorf("(vault) %w", err)
	}

	// Stat without the trailing separator; with it, a regular file at the
	// root path reports ENOTDIR instead of resolving to the file itself.
	statPath := strings.TrimSuffix(root.Path(), pathing.Separator)
	if statPath == "" {
		statPath = root.Path()
	}

	info, err := v.osHandler.Stat(statPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("(vault) %w: %s", ErrRootNotFound, root.Path())
		}
		if errors.Is(err, unix.ENOTDIR) {
			return nil, fmt.Errorf("(vault) %w: %s", ErrRootNotDirectory, root.Path())
		}

		return nil, fmt.Errorf("(vault) %w: %w", ErrNoFilesystemAccess, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("(vault) %w: %s", ErrRootNotDirectory, root.Path())
	}

	vault := &Vault{
		Name: rootBase(root),
		Root: root,
	}

	return vault, nil
}

// Exists checks whether a [pathing.VaultPath] exists on the filesystem.
func (v *Handler) Exists(p pathing.VaultPath) (bool, error) {
	if _, err := v.osHandler.Stat(p.Absolute()); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}

		return false, fmt.Errorf("(vault-exists) failed to stat: %w", err)
	}

	return true, nil
}

// Notebooks walks the vault and returns all notebook files as [Entry] values,
// in directory traversal order. Unreadable subdirectories are logged and
// skipped; hidden directories are not descended into.
func (v *Handler) Notebooks(vault *Vault) ([]*Entry, error) {
	base, err := pathing.FromRelative("", true, vault.Root)
	if err != nil {
		return nil, fmt.Errorf("(vault-walk) %w", err)
	}

	var entries []*Entry
	v.walkNotebooks(base, &entries)

	return entries, nil
}

// walkNotebooks recursively collects notebook [Entry] values below a
// directory path.
func (v *Handler) walkNotebooks(dir pathing.VaultPath, entries *[]*Entry) {
	dirEntries, err := v.osHandler.ReadDir(dir.Absolute())
	if err != nil {
		slog.Warn("Skipped folder: not readable.",
			"path", dir.Absolute(),
			"err", err,
		)

		return
	}

	for _, de := range dirEntries {
		name := de.Name()

		if de.IsDir() {
			if strings.HasPrefix(name, ".") {
				continue
			}

			child, err := dir.Append(name, true)
			if err != nil {
				slog.Warn("Skipped folder: cannot derive path.",
					"name", name,
					"err", err,
				)

				continue
			}
			v.walkNotebooks(child, entries)

			continue
		}

		if !strings.HasSuffix(name, notebook.Extension) {
			continue
		}

		child, err := dir.Append(name, false)
		if err != nil {
			slog.Warn("Skipped notebook: cannot derive path.",
				"name", name,
				"err", err,
			)

			continue
		}

		entry := &Entry{Path: child}
		if info, err := de.Info(); err == nil {
			entry.Size = info.Size()
			entry.ModTime = info.ModTime()
		}

		*entries = append(*entries, entry)
	}
}

// Usage gets the [Stats] for the filesystem housing a [Vault] from the OS.
func (v *Handler) Usage(vault *Vault) (Stats, error) {
	var stat unix.Statfs_t
	if err := v.unixHandler.Statfs(vault.Root.Path(), &stat); err != nil {
		return Stats{}, fmt.Errorf("(vault-usage) failed to statfs: %w", err)
	}

	stats := Stats{
		TotalSize: stat.Blocks * blockSize(stat.Bsize),
		FreeSpace: stat.Bavail * blockSize(stat.Bsize),
	}

	return stats, nil
}

// blockSize converts a reported filesystem block size to an unsigned value.
func blockSize(bsize int64) uint64 {
	if bsize < 0 {
		return 0
	}

	return uint64(bsize)
}

// rootBase returns the final element of a [pathing.Root] path, used as the
// vault's display name.
func rootBase(root pathing.Root) string {
	trimmed := strings.TrimSuffix(root.Path(), pathing.Separator)
	if trimmed == "" {
		return pathing.Separator
	}

	if idx := strings.LastIndex(trimmed, pathing.Separator); idx >= 0 {
		return trimmed[idx+1:]
	}

	return trimmed
}
