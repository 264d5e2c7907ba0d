// Package validation implements pre-export validation of queued notebook
// export tasks. Tasks failing validation are logged and dropped; validation
// never fails a whole batch.
package validation

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/nbvault/nbvault/internal/notebook"
	"github.com/nbvault/nbvault/internal/pathing"
	"github.com/nbvault/nbvault/internal/queue"
)

type osProvider interface {
	ReadFile(name string) ([]byte, error)
}

// Handler is the principal implementation for export validation.
type Handler struct {
	osHandler osProvider
}

// NewHandler returns a pointer to a new validation [Handler].
func NewHandler(osHandler osProvider) *Handler {
	return &Handler{
		osHandler: osHandler,
	}
}

// ValidateTasks filters export tasks down to the processable ones. Tasks
// failing validation are logged and dropped from the returned slice.
func (v *Handler) ValidateTasks(tasks []*queue.ExportTask, root pathing.Root) []*queue.ExportTask {
	var filtered []*queue.ExportTask

	for _, task := range tasks {
		if err := v.validateTask(task, root); err != nil {
			slog.Warn("Skipped export: failed pre-export validation.",
				"err", err,
				"notebook", task.Notebook.Absolute(),
			)

			continue
		}

		filtered = append(filtered, task)
	}

	return filtered
}

// validateTask checks a single [queue.ExportTask] against the structural
// requirements of an export.
func (v *Handler) validateTask(task *queue.ExportTask, root pathing.Root) error {
	if task.Format == "" {
		return ErrNoFormat
	}

	if task.Notebook.IsDir() {
		return ErrIsDirectory
	}

	absPath := task.Notebook.Absolute()

	if !filepath.IsAbs(absPath) {
		return fmt.Errorf("%w: %s", ErrPathRelative, absPath)
	}

	if !task.Notebook.InVault() || !root.Contains(absPath) {
		return fmt.Errorf("%w: %s", ErrOutsideVault, absPath)
	}

	if !strings.HasSuffix(absPath, notebook.Extension) {
		return fmt.Errorf("%w: %s", ErrWrongExtension, absPath)
	}

	data, err := v.osHandler.ReadFile(absPath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotReadable, err)
	}

	doc, err := notebook.Parse(data)
	if err != nil {
		return err
	}

	if doc.NBFormat != notebook.FormatMajor {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, doc.NBFormat)
	}

	return nil
}
