package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "nbvault",
		Short:         "A sandboxed notebook vault",
		Long:          "A tool that creates, previews and exports Jupyter notebooks inside a sandboxed document root.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				logLevel = slog.LevelDebug
				setupLogging(nil)
			}
		},
	}

	rootCmd.PersistentFlags().String("env-file", "", "environment file to read configuration from (e.g. \".env\")")
	rootCmd.PersistentFlags().String("root", "", "absolute vault root path (overrides any configuration)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")

	registerCreateCmd(rootCmd)
	registerPreviewCmd(rootCmd)
	registerExportCmd(rootCmd)
	registerListCmd(rootCmd)
	registerInfoCmd(rootCmd)

	return rootCmd
}
