package notebook

import "errors"

var (
	// ErrAlreadyExists occurs when a notebook is created at a path that is
	// already occupied.
	ErrAlreadyExists = errors.New("notebook already exists")

	// ErrBadDocument occurs when a file does not parse as a notebook
	// document.
	ErrBadDocument = errors.New("not a parseable notebook document")

	// ErrNotANotebook occurs when a file does not carry the notebook
	// extension.
	ErrNotANotebook = errors.New("not a notebook file")

	// ErrHashMismatch occurs when a written document does not read back with
	// the checksum of its payload.
	ErrHashMismatch = errors.New("checksum mismatch after write")

	// ErrRenameExists occurs when the final destination of an atomic write
	// was occupied between the existence check and the rename.
	ErrRenameExists = errors.New("rename destination already exists")
)
