package validation

import "errors"

var (
	// ErrNoFormat occurs when an export task carries no output format.
	ErrNoFormat = errors.New("no output format")

	// ErrIsDirectory occurs when an export task points at a folder instead
	// of a notebook file.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrPathRelative occurs when an export task path is relative rather
	// than absolute.
	ErrPathRelative = errors.New("path is relative")

	// ErrOutsideVault occurs when an export task points outside the vault
	// root.
	ErrOutsideVault = errors.New("path is outside the vault")

	// ErrWrongExtension occurs when an export task does not point at a
	// notebook file.
	ErrWrongExtension = errors.New("not a notebook file")

	// ErrNotReadable occurs when a notebook document cannot be read.
	ErrNotReadable = errors.New("notebook not readable")

	// ErrUnsupportedVersion occurs when a notebook document carries an
	// unsupported nbformat major version.
	ErrUnsupportedVersion = errors.New("unsupported nbformat version")
)
