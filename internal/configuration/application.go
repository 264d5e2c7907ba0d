package configuration

import (
	"log/slog"
	"time"
)

const (
	// SettingVaultRoot is the key holding the absolute vault root path.
	SettingVaultRoot = "NBVAULT_ROOT"

	// SettingConverter is the key holding the external converter executable.
	SettingConverter = "NBVAULT_CONVERTER"

	// SettingCacheDir is the key holding the render cache directory.
	SettingCacheDir = "NBVAULT_CACHE_DIR"

	// SettingTimeoutSecs is the key holding the converter timeout in seconds.
	SettingTimeoutSecs = "NBVAULT_TIMEOUT_SECS"

	// SettingExportFormat is the key holding the default export format.
	SettingExportFormat = "NBVAULT_EXPORT_FORMAT"

	// DefaultConverter is the converter executable used when none is
	// configured; it is resolved through the process environment's PATH.
	DefaultConverter = "jupyter-nbconvert"

	// DefaultExportFormat is the export format used when none is configured.
	DefaultExportFormat = "html"
)

// AppConfiguration is the principal structure holding the application
// configuration.
type AppConfiguration struct {
	VaultRoot    string
	Converter    string
	CacheDir     string
	Timeout      time.Duration
	ExportFormat string
}

// EstablishConfiguration returns a pointer to a new [AppConfiguration], read
// from the given environment file (when present) with process environment
// overrides applied. Unset optional settings fall back to their defaults; an
// unreadable environment file is logged and treated as empty.
func (c *Handler) EstablishConfiguration(envFile string) *AppConfiguration {
	envMap := map[string]string{}

	if envFile != "" {
		data, err := c.ReadGeneric(envFile)
		if err != nil {
			slog.Warn("Ignored configuration file: not readable.",
				"path", envFile,
				"err", err,
			)
		} else {
			envMap = data
		}
	}

	config := &AppConfiguration{
		VaultRoot:    c.MapKeyToString(envMap, SettingVaultRoot),
		Converter:    c.MapKeyToString(envMap, SettingConverter),
		CacheDir:     c.MapKeyToString(envMap, SettingCacheDir),
		ExportFormat: c.MapKeyToString(envMap, SettingExportFormat),
	}

	if config.Converter == "" {
		config.Converter = DefaultConverter
	}
	if config.ExportFormat == "" {
		config.ExportFormat = DefaultExportFormat
	}

	if secs := c.MapKeyToInt(envMap, SettingTimeoutSecs); secs > 0 {
		config.Timeout = time.Duration(secs) * time.Second
	}

	return config
}
