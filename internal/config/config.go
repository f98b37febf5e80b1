// Package config manages COT Studio CLI configuration: loading and saving
// ~/.cotstudio/config.yaml, workspace overlays, and the global logger
// bootstrap.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Output format names accepted by --output and output.default_format.
const (
	FormatTable  = "table"
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
	FormatYAML   = "yaml"
)

// Color mode names accepted by output.color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Theme names accepted by ui.theme.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// outputTypeFile is the logging output type used when a log file is configured.
const outputTypeFile = "file"

// Defaults applied by New when no value is configured.
const (
	DefaultBaseURL         = "https://api.cotstudio.io"
	DefaultTimeoutSeconds  = 30
	DefaultCacheTTLSeconds = 900
	DefaultPageSize        = 50
	DefaultBufferSize      = 5

	// MaxPageSize matches the server's per_page ceiling.
	MaxPageSize = 200
)

// configFileName is the name of the configuration file inside the config dir.
const configFileName = "config.yaml"

// validOutputFormats lists the accepted output.default_format values.
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var validOutputFormats = map[string]bool{
	FormatTable:  true,
	FormatJSON:   true,
	FormatNDJSON: true,
	FormatYAML:   true,
}

// validColorModes lists the accepted output.color values.
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var validColorModes = map[string]bool{
	ColorAuto:   true,
	ColorAlways: true,
	ColorNever:  true,
}

// validThemes lists the accepted ui.theme values.
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var validThemes = map[string]bool{
	ThemeDark:  true,
	ThemeLight: true,
}

// Config is the root configuration for the cot CLI. It is persisted as YAML
// at ~/.cotstudio/config.yaml (COTSTUDIO_HOME overrides the directory) and
// may be overlaid by a workspace-local .cotstudio/config.yaml.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Output  OutputConfig  `yaml:"output"`
	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`

	// configPath is the file this Config was loaded from (or will be saved
	// to). Not serialized.
	configPath string
}

// APIConfig configures the COT Studio API client.
type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	Token          string `yaml:"token,omitempty"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`

	// CacheEnabled and CacheTTLSeconds control the file-backed response
	// cache for GET requests.
	CacheEnabled    bool `yaml:"cache_enabled"`
	CacheTTLSeconds int  `yaml:"cache_ttl_seconds"`

	// StrictCompatibility fails commands when the server version is outside
	// the supported range instead of logging a warning.
	StrictCompatibility bool `yaml:"strict_compatibility,omitempty"`
}

// OutputConfig configures non-interactive command output.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	Color         string `yaml:"color"`
}

// UIConfig configures the interactive TUI browsers.
type UIConfig struct {
	Theme string `yaml:"theme"`

	// PageSize is the per_page used when fetching list pages.
	PageSize int `yaml:"page_size"`

	// BufferSize is the number of rows rendered above and below the visible
	// window in virtualized lists.
	BufferSize int `yaml:"buffer_size"`
}

// AuditConfig configures the append-only audit log.
type AuditConfig struct {
	Enabled bool   `yaml:"enabled"`
	File    string `yaml:"file,omitempty"`
}

// LoggingConfig configures diagnostic logging.
type LoggingConfig struct {
	Level  string      `yaml:"level"`
	Format string      `yaml:"format"`
	File   string      `yaml:"file,omitempty"`
	Audit  AuditConfig `yaml:"audit,omitempty"`
}

// DefaultConfig returns a Config populated with default values and the
// default config path. It never reads the filesystem.
func DefaultConfig() *Config {
	cfg := &Config{
		API: APIConfig{
			BaseURL:         DefaultBaseURL,
			TimeoutSeconds:  DefaultTimeoutSeconds,
			CacheEnabled:    true,
			CacheTTLSeconds: DefaultCacheTTLSeconds,
		},
		Output: OutputConfig{
			DefaultFormat: FormatTable,
			Color:         ColorAuto,
		},
		UI: UIConfig{
			Theme:      ThemeDark,
			PageSize:   DefaultPageSize,
			BufferSize: DefaultBufferSize,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}

	if dir, err := GetConfigDir(); err == nil {
		cfg.configPath = filepath.Join(dir, configFileName)
	}

	return cfg
}

// New returns the global configuration: defaults overlaid with the contents
// of the config file, if one exists. Load failures fall back to defaults
// with a warning so the CLI stays usable with a damaged config file.
func New() *Config {
	cfg := DefaultConfig()

	if cfg.configPath == "" {
		return cfg
	}

	if _, err := os.Stat(cfg.configPath); err != nil {
		// Missing config file is the normal first-run state.
		return cfg
	}

	if err := cfg.loadFrom(cfg.configPath); err != nil {
		logger := GetLogger()
		logger.Warn().
			Str("component", "config").
			Err(err).
			Str("config_path", cfg.configPath).
			Msg("failed to load config file, using defaults")
		return DefaultConfig()
	}

	return cfg
}

// loadFrom reads the YAML file at path into c.
func (c *Config) loadFrom(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	return nil
}

// Save writes the configuration as YAML to ConfigPath, creating the parent
// directory if needed.
func (c *Config) Save() error {
	if c.configPath == "" {
		return fmt.Errorf("config path not set")
	}

	if err := os.MkdirAll(filepath.Dir(c.configPath), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	if err := os.WriteFile(c.configPath, data, 0o600); err != nil {
		return fmt.Errorf("writing config file %s: %w", c.configPath, err)
	}

	return nil
}

// ConfigPath returns the file path this Config loads from and saves to.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// SetConfigPath overrides the file path used by Save. Used for
// workspace-local config files.
func (c *Config) SetConfigPath(path string) {
	c.configPath = path
}

// Validate checks the configuration for semantic errors.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url must not be empty")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api.base_url %q is not a valid http(s) URL", c.API.BaseURL)
	}

	if c.API.TimeoutSeconds <= 0 {
		return fmt.Errorf("api.timeout_seconds must be positive, got %d", c.API.TimeoutSeconds)
	}

	if c.API.CacheTTLSeconds < 0 {
		return fmt.Errorf("api.cache_ttl_seconds must not be negative, got %d", c.API.CacheTTLSeconds)
	}

	if !validOutputFormats[c.Output.DefaultFormat] {
		return fmt.Errorf("output.default_format %q is not one of table, json, ndjson, yaml", c.Output.DefaultFormat)
	}

	if !validColorModes[c.Output.Color] {
		return fmt.Errorf("output.color %q is not one of auto, always, never", c.Output.Color)
	}

	if !validThemes[c.UI.Theme] {
		return fmt.Errorf("ui.theme %q is not one of dark, light", c.UI.Theme)
	}

	if c.UI.PageSize < 1 || c.UI.PageSize > MaxPageSize {
		return fmt.Errorf("ui.page_size must be between 1 and %d, got %d", MaxPageSize, c.UI.PageSize)
	}

	if c.UI.BufferSize < 0 {
		return fmt.Errorf("ui.buffer_size must not be negative, got %d", c.UI.BufferSize)
	}

	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level %q is not a valid level: %w", c.Logging.Level, err)
	}

	if c.Logging.Format != "console" && c.Logging.Format != "json" {
		return fmt.Errorf("logging.format %q is not one of console, json", c.Logging.Format)
	}

	return nil
}

// GetOutputFormat returns the configured default output format, falling back
// to table when unset.
func (c *Config) GetOutputFormat() string {
	if c.Output.DefaultFormat == "" {
		return FormatTable
	}
	return c.Output.DefaultFormat
}
