// Package preview implements terminal preview of notebook documents. A
// notebook is converted to markdown through the external converter and
// rendered with [glamour]; a filesystem watch re-signals changes of the
// previewed document for live reloading.
package preview

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/fsnotify/fsnotify"
	"github.com/nbvault/nbvault/internal/convert"
	"github.com/nbvault/nbvault/internal/pathing"
)

const (
	// DefaultWidth is the word-wrap width used when none is known yet.
	DefaultWidth = 80
)

type converterProvider interface {
	Convert(ctx context.Context, nb pathing.VaultPath, format convert.Format) (string, error)
	ReadResult(outPath string) ([]byte, error)
}

// Handler is the principal implementation for notebook previewing.
type Handler struct {
	convertHandler converterProvider
}

// NewHandler returns a pointer to a new preview [Handler].
func NewHandler(convertHandler converterProvider) *Handler {
	return &Handler{
		convertHandler: convertHandler,
	}
}

// Render converts a notebook to markdown and renders it for terminal
// display at the given word-wrap width. Converter failures propagate to the
// caller; the caller decides between showing no content and aborting.
func (p *Handler) Render(ctx context.Context, nb pathing.VaultPath, width int) (string, error) {
	if width <= 0 {
		width = DefaultWidth
	}

	outPath, err := p.convertHandler.Convert(ctx, nb, convert.FormatMarkdown)
	if err != nil {
		return "", fmt.Errorf("(preview) %w", err)
	}

	data, err := p.convertHandler.ReadResult(outPath)
	if err != nil {
		return "", fmt.Errorf("(preview) %w", err)
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("(preview) %w: %w", ErrRenderFailed, err)
	}

	rendered, err := renderer.Render(string(data))
	if err != nil {
		return "", fmt.Errorf("(preview) %w: %w", ErrRenderFailed, err)
	}

	return rendered, nil
}

// Watch establishes a filesystem watch on the previewed notebook and signals
// each content change on the given channel, until the [context.Context] is
// canceled. The containing folder is watched rather than the file itself, so
// that editors replacing the file by rename are still observed.
func (p *Handler) Watch(ctx context.Context, nb pathing.VaultPath, changes chan<- struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("(preview-watch) %w: %w", ErrWatchFailed, err)
	}

	if err := watcher.Add(filepath.Dir(nb.Absolute())); err != nil {
		watcher.Close()

		return fmt.Errorf("(preview-watch) %w: %w", ErrWatchFailed, err)
	}

	go func() {
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != nb.Absolute() {
					continue
				}
				if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
					continue
				}

				select {
				case changes <- struct{}{}:
				default:
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Warn("Notebook watch error.",
					"notebook", nb.Absolute(),
					"err", err,
				)
			}
		}
	}()

	return nil
}
