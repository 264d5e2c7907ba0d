package main

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nbvault/nbvault/internal/convert"
	"github.com/nbvault/nbvault/internal/pathing"
	"github.com/nbvault/nbvault/internal/queue"
	"github.com/nbvault/nbvault/internal/ui"
	"github.com/spf13/cobra"
)

const defaultExportWorkers = 4

func registerExportCmd(rootCmd *cobra.Command) {
	exportCmd := &cobra.Command{
		Use:   "export [notebook]",
		Short: "Export notebooks through the external converter",
		Long:  "Export a vault notebook (or all vault notebooks) to a rendered output format through the external converter.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runExport,
	}

	exportCmd.Flags().String("format", "", "output format (\"html\" or \"markdown\"; defaults to the configured format)")
	exportCmd.Flags().Bool("all", false, "export all notebooks in the vault")
	exportCmd.Flags().Int("jobs", defaultExportWorkers, "maximum concurrent conversions")
	exportCmd.Flags().Bool("ui", false, "show export progress in the terminal UI")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}

	formatStr, _ := cmd.Flags().GetString("format")
	if formatStr == "" {
		formatStr = app.config.ExportFormat
	}

	format, err := convert.ParseFormat(formatStr)
	if err != nil {
		return fmt.Errorf("(export) %w", err)
	}

	exportAll, _ := cmd.Flags().GetBool("all")
	jobs, _ := cmd.Flags().GetInt("jobs")
	withUI, _ := cmd.Flags().GetBool("ui")

	tasks, err := collectExportTasks(app, args, exportAll, format)
	if err != nil {
		return err
	}

	tasks = app.validationHandler.ValidateTasks(tasks, app.vault.Root)
	if len(tasks) == 0 {
		return fmt.Errorf("(export) %w", ErrNothingToExport)
	}

	app.queueManager.ExportQueue.Enqueue(tasks...)

	if !withUI {
		return processExports(cmd.Context(), app, jobs)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	app.uiHandler = ui.NewHandler(ctx, cancel, "batch export", app.queueManager)

	var wg sync.WaitGroup
	var exportErr error

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer cancel()
		defer setupLogging(nil)

		setupLogging(app.uiHandler.LogWriter)

		if err := app.uiHandler.Launch(); err != nil {
			setupLogging(nil)
			slog.Error("UI failure: shutting down export.",
				"err", err,
			)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()

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

		// The UI stays open showing the final counters until quit.
		exportErr = processExports(ctx, app, jobs)
	}()

	wg.Wait()

	return exportErr
}

// processExports drains the export queue through the converter and reports
// the final counters. Conversion failures skip the notebook, never the
// batch; a batch with skipped notebooks is reported as failed.
func processExports(ctx context.Context, app *App, jobs int) error {
	err := app.queueManager.ExportQueue.DequeueAndProcessConc(ctx, jobs, func(task *queue.ExportTask) int {
		rel, _ := task.Notebook.Relative()

		result, err := app.convertHandler.Convert(ctx, task.Notebook, task.Format)
		if err != nil {
			slog.Warn("Skipped export: conversion failed.",
				"notebook", rel,
				"err", err,
			)

			return queue.DecisionSkipped
		}

		task.Result = result

		slog.Info("Exported notebook.",
			"notebook", rel,
			"result", result,
		)

		return queue.DecisionSuccess
	})
	if err != nil {
		return fmt.Errorf("(export) %w", err)
	}

	progress := app.queueManager.Progress()

	slog.Info("Finished exporting.",
		"exported", progress.SuccessItems,
		"skipped", progress.SkippedItems,
		"total", progress.TotalItems,
	)

	if progress.SkippedItems > 0 {
		return fmt.Errorf("(export) %w", ErrExportsSkipped)
	}

	return nil
}

// collectExportTasks resolves the command arguments into export tasks, one
// per notebook to be converted.
func collectExportTasks(app *App, args []string, exportAll bool, format convert.Format) ([]*queue.ExportTask, error) {
	if exportAll {
		entries, err := app.vaultHandler.Notebooks(app.vault)
		if err != nil {
			return nil, fmt.Errorf("(export) %w", err)
		}

		tasks := make([]*queue.ExportTask, 0, len(entries))
		for _, entry := range entries {
			tasks = append(tasks, &queue.ExportTask{
				Notebook: entry.Path,
				Format:   format,
			})
		}

		return tasks, nil
	}

	if len(args) == 0 {
		return nil, fmt.Errorf("(export) %w", ErrNothingToExport)
	}

	nb, err := pathing.FromRelative(args[0], false, app.vault.Root)
	if err != nil {
		return nil, fmt.Errorf("(export) %w", err)
	}

	return []*queue.ExportTask{{Notebook: nb, Format: format}}, nil
}
