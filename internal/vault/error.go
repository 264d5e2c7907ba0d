package vault

import "errors"

var (
	// ErrNoRootConfigured occurs when no vault root path was configured.
	ErrNoRootConfigured = errors.New("no vault root configured")

	// ErrRootNotFound occurs when the configured vault root does not exist on
	// the filesystem.
	ErrRootNotFound = errors.New("vault root does not exist")

	// ErrRootNotDirectory occurs when the configured vault root exists but is
	// not a directory.
	ErrRootNotDirectory = errors.New("vault root is not a directory")

	// ErrNoFilesystemAccess occurs when the environment provides no working
	// filesystem access for the vault root.
	ErrNoFilesystemAccess = errors.New("no filesystem access to vault root")
)
