package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nbvault/nbvault/internal/configuration"
	"github.com/nbvault/nbvault/internal/convert"
	"github.com/nbvault/nbvault/internal/notebook"
	"github.com/nbvault/nbvault/internal/preview"
	"github.com/nbvault/nbvault/internal/queue"
	"github.com/nbvault/nbvault/internal/schema"
	"github.com/nbvault/nbvault/internal/ui"
	"github.com/nbvault/nbvault/internal/validation"
	"github.com/nbvault/nbvault/internal/vault"
	"github.com/spf13/cobra"
)

// App is the principal structure wiring together all application handlers
// for a single command invocation.
type App struct {
	config *configuration.AppConfiguration
	vault  *vault.Vault

	osHandler         *schema.OS
	vaultHandler      *vault.Handler
	notebookHandler   *notebook.Handler
	convertHandler    *convert.Handler
	previewHandler    *preview.Handler
	validationHandler *validation.Handler
	queueManager      *queue.Manager

	uiHandler *ui.Handler
}

// newApp establishes the configuration and the vault, and returns a pointer
// to a new [App] with all handlers wired up.
func newApp(cmd *cobra.Command) (*App, error) {
	osProvider := &schema.OS{}
	unixProvider := &schema.Unix{}
	execProvider := &schema.Exec{}
	configProvider := &configuration.GodotenvProvider{}

	envFile, _ := cmd.Flags().GetString("env-file")
	rootOverride, _ := cmd.Flags().GetString("root")

	configHandler := configuration.NewHandler(configProvider, osProvider)
	config := configHandler.EstablishConfiguration(envFile)

	if rootOverride != "" {
		config.VaultRoot = rootOverride
	}

	vaultHandler := vault.NewHandler(osProvider, unixProvider)

	vlt, err := vaultHandler.EstablishVault(config.VaultRoot)
	if err != nil {
		return nil, fmt.Errorf("(app) %w", err)
	}

	if config.CacheDir == "" {
		config.CacheDir = fallbackCacheDir(osProvider)
	}

	convertHandler := convert.NewHandler(osProvider, execProvider, config.Converter, config.CacheDir, config.Timeout)

	app := &App{
		config:            config,
		vault:             vlt,
		osHandler:         osProvider,
		vaultHandler:      vaultHandler,
		notebookHandler:   notebook.NewHandler(osProvider),
		convertHandler:    convertHandler,
		previewHandler:    preview.NewHandler(convertHandler),
		validationHandler: validation.NewHandler(osProvider),
		queueManager:      queue.NewManager(),
	}

	return app, nil
}

// fallbackCacheDir returns the render cache location used when none is
// configured.
func fallbackCacheDir(osProvider *schema.OS) string {
	if base, err := osProvider.UserCacheDir(); err == nil {
		return filepath.Join(base, "nbvault")
	}

	return filepath.Join(os.TempDir(), "nbvault")
}
