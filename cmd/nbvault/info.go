package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func registerInfoCmd(rootCmd *cobra.Command) {
	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "Show vault location and disk usage",
		Args:  cobra.NoArgs,
		RunE:  runInfo,
	}

	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, _ []string) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}

	entries, err := app.vaultHandler.Notebooks(app.vault)
	if err != nil {
		return fmt.Errorf("(info) %w", err)
	}

	stats, err := app.vaultHandler.Usage(app.vault)
	if err != nil {
		return fmt.Errorf("(info) %w", err)
	}

	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Vault:       %s\n", app.vault.Name)
	fmt.Fprintf(out, "Root:        %s\n", app.vault.Root.Path())
	fmt.Fprintf(out, "Notebooks:   %d\n", len(entries))
	fmt.Fprintf(out, "Disk size:   %s\n", humanize.IBytes(stats.TotalSize))
	fmt.Fprintf(out, "Disk free:   %s\n", humanize.IBytes(stats.FreeSpace))
	fmt.Fprintf(out, "Converter:   %s\n", app.config.Converter)
	fmt.Fprintf(out, "Cache:       %s\n", app.config.CacheDir)

	return nil
}
