package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// GlobalConfig holds the global configuration instance.
var GlobalConfig *Config        //nolint:gochecknoglobals // Singleton pattern for configuration
var globalConfigMu sync.RWMutex //nolint:gochecknoglobals // Protects globalConfigInit flag
var globalConfigInit bool       //nolint:gochecknoglobals // Tracks if global config has been initialized

// InitGlobalConfig initializes the global configuration.
func InitGlobalConfig() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()

	if globalConfigInit {
		return
	}

	GlobalConfig = New()
	globalConfigInit = true
}

// InitGlobalConfigWithWorkspace initializes the global configuration with a
// workspace-local overlay merged on top of the global config file. Unlike
// InitGlobalConfig it always replaces the current instance, so the CLI can
// re-resolve after flag parsing.
func InitGlobalConfigWithWorkspace(ctx context.Context, workspaceDir string) {
	cfg := NewWithWorkspaceDir(ctx, workspaceDir)

	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()

	GlobalConfig = cfg
	globalConfigInit = true
}

// ResetGlobalConfigForTest resets the global config for testing purposes.
func ResetGlobalConfigForTest() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()

	GlobalConfig = nil
	globalConfigInit = false
}

// GetGlobalConfig returns the global configuration, initializing it if needed.
func GetGlobalConfig() *Config {
	InitGlobalConfig()
	return GlobalConfig
}

// GetDefaultOutputFormat returns the configured default output format.
func GetDefaultOutputFormat() string {
	cfg := GetGlobalConfig()
	return cfg.GetOutputFormat()
}

// GetLogLevel returns the configured log level.
func GetLogLevel() string {
	cfg := GetGlobalConfig()
	return cfg.Logging.Level
}

// GetLogFile returns the configured log file path.
func GetLogFile() string {
	cfg := GetGlobalConfig()
	return cfg.Logging.File
}

// GetAPIBaseURL returns the configured API base URL.
func GetAPIBaseURL() string {
	cfg := GetGlobalConfig()
	return cfg.API.BaseURL
}

// GetAPIToken returns the API token, preferring the COTSTUDIO_TOKEN
// environment variable over the configured value so tokens can be kept out
// of config files.
func GetAPIToken() string {
	if env := os.Getenv("COTSTUDIO_TOKEN"); env != "" {
		return env
	}
	cfg := GetGlobalConfig()
	return cfg.API.Token
}

// GetPageSize returns the configured list page size.
func GetPageSize() int {
	cfg := GetGlobalConfig()
	return cfg.UI.PageSize
}

// GetStrictServerCompatibility reports whether strict server compatibility is
// enabled. When true, commands fail if the server version is outside the
// supported range; when false (default), a warning is logged and the command
// continues. The COTSTUDIO_STRICT_COMPATIBILITY environment variable takes
// precedence if it parses as a boolean.
func GetStrictServerCompatibility() bool {
	if env := os.Getenv("COTSTUDIO_STRICT_COMPATIBILITY"); env != "" {
		if val, err := strconv.ParseBool(env); err == nil {
			return val
		}
	}
	cfg := GetGlobalConfig()
	return cfg.API.StrictCompatibility
}

// EnsureConfigDir ensures the cotstudio configuration directory exists.
// It returns an error if the configuration directory path cannot be determined
// or if creating the directory (and any necessary parents) fails.
func EnsureConfigDir() error {
	dir, err := GetConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// EnsureLogDir ensures the directory for the configured log file exists.
// It reads the global configuration and, if a log file is configured, creates
// its parent directory with permission 0700. If no log file is configured, it
// does nothing.
func EnsureLogDir() error {
	cfg := GetGlobalConfig()
	if cfg.Logging.File == "" {
		return nil
	}
	logDir := filepath.Dir(cfg.Logging.File)
	if err := os.MkdirAll(logDir, 0700); err != nil {
		return fmt.Errorf("failed to create log directory %q: %w", logDir, err)
	}
	return nil
}

// GetConfigDir returns the path to the cotstudio configuration directory.
func GetConfigDir() (string, error) {
	if csHome := os.Getenv("COTSTUDIO_HOME"); csHome != "" {
		return csHome, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".cotstudio"), nil
}

// GetCacheDir returns the path to the response cache directory under the
// user's configuration directory (for example, ~/.cotstudio/cache).
// It returns an error if the base configuration directory cannot be determined.
func GetCacheDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "cache"), nil
}

// GetExportDir returns the path to the exports directory under the user's
// config directory (typically ~/.cotstudio/exports). It returns an error if
// the base config directory cannot be determined.
func GetExportDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "exports"), nil
}

// EnsureSubDirs creates the standard configuration subdirectories under the
// user's config directory and ensures the log directory exists.
//
// It ensures the base config directory exists, creates the "cache" and
// "exports" subdirectories with permission 0700, and then ensures the
// configured log directory exists.
func EnsureSubDirs() error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}

	cacheDir, err := GetCacheDir()
	if err != nil {
		return fmt.Errorf("failed to get cache directory: %w", err)
	}
	if mkdirErr := os.MkdirAll(cacheDir, 0700); mkdirErr != nil {
		return fmt.Errorf("failed to create cache directory %q: %w", cacheDir, mkdirErr)
	}

	exportDir, err := GetExportDir()
	if err != nil {
		return fmt.Errorf("failed to get export directory: %w", err)
	}
	if mkdirErr := os.MkdirAll(exportDir, 0700); mkdirErr != nil {
		return fmt.Errorf("failed to create export directory %q: %w", exportDir, mkdirErr)
	}

	return EnsureLogDir()
}
