package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func registerListCmd(rootCmd *cobra.Command) {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all notebooks in the vault",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}

	entries, err := app.vaultHandler.Notebooks(app.vault)
	if err != nil {
		return fmt.Errorf("(list) %w", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0) //nolint:mnd

	for _, entry := range entries {
		rel, _ := entry.Path.Relative()
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			rel,
			humanize.Bytes(uint64(entry.Size)), //nolint:gosec
			humanize.Time(entry.ModTime),
		)
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("(list) %w", err)
	}

	return nil
}
