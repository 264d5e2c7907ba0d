package main

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nbvault/nbvault/internal/pathing"
	"github.com/nbvault/nbvault/internal/preview"
	"github.com/nbvault/nbvault/internal/ui"
	"github.com/spf13/cobra"
)

func registerPreviewCmd(rootCmd *cobra.Command) {
	previewCmd := &cobra.Command{
		Use:   "preview <notebook>",
		Short: "Preview a notebook in the terminal",
		Long:  "Render a vault notebook to the terminal and live-reload the preview as the file changes on disk.",
		Args:  cobra.ExactArgs(1),
		RunE:  runPreview,
	}

	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}

	nb, err := pathing.FromRelative(args[0], false, app.vault.Root)
	if err != nil {
		return fmt.Errorf("(preview) %w", err)
	}

	exists, err := app.vaultHandler.Exists(nb)
	if err != nil {
		return fmt.Errorf("(preview) %w", err)
	}
	if !exists {
		return fmt.Errorf("(preview) %w: %s", ErrNotebookNotFound, args[0])
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	app.uiHandler = ui.NewHandler(ctx, cancel, nb.Base(), app.queueManager)

	changes := make(chan struct{}, 1)
	if err := app.previewHandler.Watch(ctx, nb, changes); err != nil {
		return fmt.Errorf("(preview) %w", err)
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer cancel()
		defer setupLogging(nil)

		setupLogging(app.uiHandler.LogWriter)

		if err := app.uiHandler.Launch(); err != nil {
			setupLogging(nil)
			slog.Error("UI failure: shutting down preview.",
				"err", err,
			)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		previewLoop(ctx, app, nb, changes)
	}()

	wg.Wait()

	return nil
}

// previewLoop renders the notebook once the UI is ready and re-renders it on
// every filesystem change or manual reload request, until shutdown.
func previewLoop(ctx context.Context, app *App, nb pathing.VaultPath, changes <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		if app.uiHandler.Ready.Load() || app.uiHandler.Failed.Load() {
			break
		}
	}

	if app.uiHandler.Failed.Load() {
		return
	}

	renderPreview(ctx, app, nb)

	for {
		select {
		case <-ctx.Done():
			return

		case <-changes:
			renderPreview(ctx, app, nb)

		case <-app.uiHandler.ReloadRequests:
			renderPreview(ctx, app, nb)
		}
	}
}

// renderPreview renders the notebook and sends the result into the UI. A
// failed render keeps the previous content on screen and is logged instead.
func renderPreview(ctx context.Context, app *App, nb pathing.VaultPath) {
	rel, _ := nb.Relative()

	content, err := app.previewHandler.Render(ctx, nb, preview.DefaultWidth)
	if err != nil {
		slog.Warn("Skipped preview refresh: render failed.",
			"notebook", rel,
			"err", err,
		)
		app.uiHandler.ShowPreviewFailure(err)

		return
	}

	app.uiHandler.ShowPreview(content)

	slog.Debug("Preview refreshed.",
		"notebook", rel,
	)
}
