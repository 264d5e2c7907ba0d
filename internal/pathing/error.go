package pathing

import "errors"

var (
	// ErrNotAbsolute occurs when a path that must be absolute is provided as
	// relative.
	ErrNotAbsolute = errors.New("path is not absolute")

	// ErrNotADirectory occurs when a directory-only operation is attempted on
	// a file-flagged path.
	ErrNotADirectory = errors.New("path is not a directory")

	// ErrEmptySegment occurs when an empty child segment is appended to a
	// directory path.
	ErrEmptySegment = errors.New("child segment is empty")

	// ErrEscapesRoot occurs when a vault-relative path would resolve to a
	// location outside the vault root.
	ErrEscapesRoot = errors.New("relative path escapes the vault root")
)
