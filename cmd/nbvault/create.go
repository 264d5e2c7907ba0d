package main

import (
	"fmt"
	"log/slog"

	"github.com/nbvault/nbvault/internal/pathing"
	"github.com/spf13/cobra"
)

func registerCreateCmd(rootCmd *cobra.Command) {
	createCmd := &cobra.Command{
		Use:   "create [folder]",
		Short: "Create a new notebook inside the vault",
		Long:  "Create a new notebook inside the vault, in the given vault-relative folder (or the vault root).",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCreate,
	}

	createCmd.Flags().String("name", "", "basename for the new notebook (defaults to a timestamped name)")
	createCmd.Flags().Int("cells", 1, "number of empty code cells in the new notebook")

	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}

	folderRel := ""
	if len(args) > 0 {
		folderRel = args[0]
	}

	folder, err := pathing.FromRelative(folderRel, true, app.vault.Root)
	if err != nil {
		return fmt.Errorf("(create) %w", err)
	}

	if err := app.osHandler.MkdirAll(folder.Absolute(), 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("(create) %w", err)
	}

	name, _ := cmd.Flags().GetString("name")
	cells, _ := cmd.Flags().GetInt("cells")

	created, err := app.notebookHandler.Create(folder, name, cells)
	if err != nil {
		return fmt.Errorf("(create) %w", err)
	}

	rel, _ := created.Relative()

	slog.Info("Created notebook.",
		"notebook", rel,
		"path", created.Absolute(),
	)

	return nil
}
