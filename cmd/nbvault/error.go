package main

import "errors"

var (
	// ErrNotebookNotFound occurs when a given notebook does not exist inside
	// the vault.
	ErrNotebookNotFound = errors.New("notebook does not exist in the vault")

	// ErrNothingToExport occurs when no notebooks remain for exporting, after
	// argument resolution and pre-export validation.
	ErrNothingToExport = errors.New("no notebooks to export")

	// ErrExportsSkipped occurs when one or more notebooks were skipped during
	// a batch export.
	ErrExportsSkipped = errors.New("one or more exports were skipped")
)
