// Package ui implements a command-line user interface using [tea]. The same
// program serves two surfaces: a scrollable preview of a rendered notebook
// with live reloading, and a progress display for batch exports.
package ui

import (
	"context"
	"fmt"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nbvault/nbvault/internal/queue"
)

// Handler is the principal implementation of a user interface [Handler].
type Handler struct {
	queueManager *queue.Manager
	program      *tea.Program

	LogWriter *TeaLogWriter

	// ReloadRequests receives a signal for each manual reload request made
	// inside the UI.
	ReloadRequests chan struct{}

	Ready  atomic.Bool
	Failed atomic.Bool
}

// NewHandler returns a pointer to a new user interface [Handler].
func NewHandler(ctx context.Context, cancel context.CancelFunc, title string, queueManager *queue.Manager) *Handler {
	handler := &Handler{
		queueManager:   queueManager,
		ReloadRequests: make(chan struct{}, 1),
	}

	model := NewTeaModel(handler, title, queueManager, cancel)
	handler.program = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	handler.LogWriter = NewTeaLogWriter(handler.program)

	return handler
}

// Launch starts the command-line user interface (the [tea.Program]).
func (uiHandler *Handler) Launch() error {
	defer uiHandler.LogWriter.Stop()

	if _, err := uiHandler.program.Run(); err != nil {
		uiHandler.Failed.Store(true)

		return fmt.Errorf("(ui) %w", err)
	}

	return nil
}

// Quit asks the running program to terminate gracefully.
func (uiHandler *Handler) Quit() {
	uiHandler.program.Quit()
}

// ShowPreview sends rendered preview content into the running program.
func (uiHandler *Handler) ShowPreview(content string) {
	uiHandler.program.Send(PreviewFrameMsg{Content: content})
}

// ShowPreviewFailure signals a failed render into the running program; the
// preview panel shows no content in that case.
func (uiHandler *Handler) ShowPreviewFailure(err error) {
	uiHandler.program.Send(PreviewFailedMsg{Err: err})
}

// requestReload signals a manual reload request without blocking the UI.
func (uiHandler *Handler) requestReload() {
	select {
	case uiHandler.ReloadRequests <- struct{}{}:
	default:
	}
}
