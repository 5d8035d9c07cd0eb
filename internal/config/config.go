// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Backend modes.
const (
	ModeLocal  = "local"
	ModeRemote = "remote"
)

// Config is the root configuration structure.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Backend    BackendConfig    `yaml:"backend"`
	Translator TranslatorConfig `yaml:"translator"`
	Logging    LoggingConfig    `yaml:"logging"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	OpenAPI    OpenAPIConfig    `yaml:"openapi"`
	Preview    PreviewConfig    `yaml:"preview"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	BasePath        string        `yaml:"base_path"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// BackendConfig selects where definitions come from and where submissions go.
// Use "local" for definition files plus SQLite or "remote" to call the CMS.
type BackendConfig struct {
	Mode     string         `yaml:"mode"`
	FormsDir string         `yaml:"forms_dir"`
	Watch    bool           `yaml:"watch"`
	Database DatabaseConfig `yaml:"database"`
	Remote   RemoteConfig   `yaml:"remote,omitempty"`
}

// DatabaseConfig configures the local submission store.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// RemoteConfig configures a remote CMS endpoint.
type RemoteConfig struct {
	URL     string            `yaml:"url"`
	APIKey  string            `yaml:"api_key,omitempty"`
	Timeout time.Duration     `yaml:"timeout,omitempty"`
	Headers map[string]string `yaml:"headers,omitempty"`
}

// TranslatorConfig configures the schema translator.
type TranslatorConfig struct {
	StripMarkup bool `yaml:"strip_markup"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "console"
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// OpenAPIConfig configures the API description endpoint.
type OpenAPIConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// PreviewConfig configures the HTML preview page.
type PreviewConfig struct {
	Enabled bool   `yaml:"enabled"`
	Theme   string `yaml:"theme"`
	Variant string `yaml:"variant"`
}

// Default returns a configuration with every optional surface enabled.
func Default() Config {
	cfg := Config{
		Backend: BackendConfig{Watch: true},
		Metrics: MetricsConfig{Enabled: true},
		OpenAPI: OpenAPIConfig{Enabled: true},
		Preview: PreviewConfig{Enabled: true},
	}
	setDefaults(&cfg)
	return cfg
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	data = []byte(os.ExpandEnv(string(data)))

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// LoadFromEnv creates configuration entirely from environment variables.
//
// Environment variables:
//
//	WEBFORMVUE_SERVER_HOST        - Server host (default: 0.0.0.0)
//	WEBFORMVUE_SERVER_PORT        - Server port (default: 8080)
//	WEBFORMVUE_SERVER_BASE_PATH   - Mount path for the adapter routes (default: /)
//	WEBFORMVUE_BACKEND_MODE       - local or remote (default: local)
//	WEBFORMVUE_FORMS_DIR          - Definition directory (default: forms)
//	WEBFORMVUE_FORMS_WATCH        - Reload definitions on change (default: true)
//	WEBFORMVUE_DATABASE_DSN       - SQLite path (default: webformvue.db)
//	WEBFORMVUE_REMOTE_URL         - CMS base URL (remote mode)
//	WEBFORMVUE_REMOTE_API_KEY     - CMS API key (remote mode)
//	WEBFORMVUE_REMOTE_TIMEOUT     - CMS request timeout (default: 10s)
//	WEBFORMVUE_STRIP_MARKUP       - Strip HTML from labels (default: false)
//	WEBFORMVUE_LOG_LEVEL          - debug, info, warn, error (default: info)
//	WEBFORMVUE_LOG_FORMAT         - json or console (default: json)
//	WEBFORMVUE_METRICS_ENABLED    - Enable /metrics (default: true)
//	WEBFORMVUE_OPENAPI_ENABLED    - Enable /openapi.json (default: true)
//	WEBFORMVUE_PREVIEW_ENABLED    - Enable the preview page (default: true)
func LoadFromEnv() (*Config, error) {
	cfg := Default()

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// LoadWithFallback loads path when it exists and falls back to environment
// variables otherwise.
func LoadWithFallback(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return LoadFromEnv()
}

// applyEnvOverrides applies WEBFORMVUE_* environment variables to the config.
// Environment variables always override file-based configuration.
func applyEnvOverrides(cfg *Config) {
	// Server configuration
	if v := os.Getenv("WEBFORMVUE_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("WEBFORMVUE_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("WEBFORMVUE_SERVER_BASE_PATH"); v != "" {
		cfg.Server.BasePath = v
	}

	// Backend configuration
	if v := os.Getenv("WEBFORMVUE_BACKEND_MODE"); v != "" {
		cfg.Backend.Mode = v
	}
	if v := os.Getenv("WEBFORMVUE_FORMS_DIR"); v != "" {
		cfg.Backend.FormsDir = v
	}
	if v := os.Getenv("WEBFORMVUE_FORMS_WATCH"); v != "" {
		cfg.Backend.Watch = parseBool(v)
	}
	if v := os.Getenv("WEBFORMVUE_DATABASE_DSN"); v != "" {
		cfg.Backend.Database.DSN = v
	}
	if v := os.Getenv("WEBFORMVUE_REMOTE_URL"); v != "" {
		cfg.Backend.Remote.URL = v
	}
	if v := os.Getenv("WEBFORMVUE_REMOTE_API_KEY"); v != "" {
		cfg.Backend.Remote.APIKey = v
	}
	if v := os.Getenv("WEBFORMVUE_REMOTE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Backend.Remote.Timeout = d
		}
	}

	if v := os.Getenv("WEBFORMVUE_STRIP_MARKUP"); v != "" {
		cfg.Translator.StripMarkup = parseBool(v)
	}

	// Logging configuration
	if v := os.Getenv("WEBFORMVUE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("WEBFORMVUE_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}

	if v := os.Getenv("WEBFORMVUE_METRICS_ENABLED"); v != "" {
		cfg.Metrics.Enabled = parseBool(v)
	}
	if v := os.Getenv("WEBFORMVUE_OPENAPI_ENABLED"); v != "" {
		cfg.OpenAPI.Enabled = parseBool(v)
	}
	if v := os.Getenv("WEBFORMVUE_PREVIEW_ENABLED"); v != "" {
		cfg.Preview.Enabled = parseBool(v)
	}
}

// parseBool parses a boolean from common string values.
func parseBool(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "true" || v == "1" || v == "yes" || v == "on"
}

func setDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.BasePath == "" {
		cfg.Server.BasePath = "/"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 30 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 60 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 15 * time.Second
	}

	if cfg.Backend.Mode == "" {
		cfg.Backend.Mode = ModeLocal
	}
	if cfg.Backend.FormsDir == "" {
		cfg.Backend.FormsDir = "forms"
	}
	if cfg.Backend.Database.DSN == "" {
		cfg.Backend.Database.DSN = "webformvue.db"
	}
	if cfg.Backend.Remote.Timeout == 0 {
		cfg.Backend.Remote.Timeout = 10 * time.Second
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}

	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.OpenAPI.Path == "" {
		cfg.OpenAPI.Path = "/openapi.json"
	}
	if cfg.Preview.Theme == "" {
		cfg.Preview.Theme = "default"
	}
	if cfg.Preview.Variant == "" {
		cfg.Preview.Variant = "light"
	}
}

func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", cfg.Server.Port)
	}

	switch cfg.Backend.Mode {
	case ModeLocal:
		if strings.TrimSpace(cfg.Backend.FormsDir) == "" {
			return fmt.Errorf("backend.forms_dir is required when backend.mode is 'local'")
		}
	case ModeRemote:
		if cfg.Backend.Remote.URL == "" {
			return fmt.Errorf("backend.remote.url is required when backend.mode is 'remote'")
		}
	default:
		return fmt.Errorf("backend.mode must be 'local' or 'remote', got %q", cfg.Backend.Mode)
	}

	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("logging.format must be 'json' or 'console', got %q", cfg.Logging.Format)
	}

	return nil
}
