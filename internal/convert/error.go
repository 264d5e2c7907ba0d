package convert

import "errors"

var (
	// ErrUnknownFormat occurs when an unsupported output format is requested.
	ErrUnknownFormat = errors.New("unknown output format")

	// ErrConverterNotFound occurs when the configured converter executable
	// cannot be resolved in the environment.
	ErrConverterNotFound = errors.New("converter executable not found")

	// ErrConverterFailed occurs when the converter process exits non-zero or
	// cannot be run.
	ErrConverterFailed = errors.New("converter process failed")

	// ErrNoOutput occurs when the converter exits successfully but the
	// expected output document is unreadable.
	ErrNoOutput = errors.New("converter produced no readable output")
)
