// =============================================================================
// Quota Data Transformer - Configuration Module
// =============================================================================
//
// This module loads the application configuration.
//
// SOURCES (later sources win):
//   1. Built-in defaults
//   2. The YAML file (config.yaml by default, optional)
//   3. Environment variables prefixed with QDT_, also read from a .env file
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/quota-data-transformer/internal/converter"
	"github.com/ginjaninja78/quota-data-transformer/internal/csvparser"
	"github.com/ginjaninja78/quota-data-transformer/internal/export"
	"github.com/ginjaninja78/quota-data-transformer/internal/labels"
)

// DefaultConfigPath is the configuration file read when no path is given.
const DefaultConfigPath = "config.yaml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "QDT_"

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
type Config struct {
	// =========================================================================
	// PARSING SETTINGS
	// =========================================================================

	// HeaderDetection is "robust" or "legacy".
	// Default: "robust"
	HeaderDetection string `yaml:"header_detection"`

	// HeaderFallback retries with the legacy strategy when robust detection
	// fails.
	// Default: true
	HeaderFallback *bool `yaml:"header_fallback"`

	// BannerSignatures must all appear in the first line of an export for it
	// to be dropped as boilerplate.
	// Default: ["project:", "server:", "query:"]
	BannerSignatures []string `yaml:"banner_signatures"`

	// StripTitlePrefix removes a leading "Title:" from every line.
	// Default: true
	StripTitlePrefix *bool `yaml:"strip_title_prefix"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputFormat is the default export format.
	// Default: "tsv"
	OutputFormat string `yaml:"output_format"`

	// Locale is the display language, "en-US" or "pt-BR".
	// Default: "en-US"
	Locale string `yaml:"locale"`

	// OutputDir is where exports are written when --out is given without a
	// directory.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// OutputFileFormat is the export file name template.
	// Placeholders: {category}, {locale}, {uuid}, {timestamp}, {date}, {time}
	// Default: "{category}_{timestamp}_{uuid}"
	OutputFileFormat string `yaml:"output_file_format"`

	// =========================================================================
	// SERVER SETTINGS
	// =========================================================================

	// ServerAddr is the listen address of the HTTP layer.
	// Default: ":8080"
	ServerAddr string `yaml:"server_addr"`

	// MaxUploadMB limits request bodies.
	// Default: 32
	MaxUploadMB int `yaml:"max_upload_mb"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel is one of "debug", "info", "warn", "error".
	// Default: "info"
	LogLevel string `yaml:"log_level"`
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration at path. A missing file is not an error: the
// defaults and environment overrides still apply. An empty path means
// DefaultConfigPath.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	if path == "" {
		path = DefaultConfigPath
	}

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, fmt.Errorf("invalid environment override: %w", err)
	}
	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.HeaderDetection == "" {
		cfg.HeaderDetection = string(csvparser.StrategyRobust)
	}
	if cfg.HeaderFallback == nil {
		cfg.HeaderFallback = boolPtr(true)
	}
	if cfg.BannerSignatures == nil {
		cfg.BannerSignatures = append([]string(nil), csvparser.DefaultBannerSignatures...)
	}
	if cfg.StripTitlePrefix == nil {
		cfg.StripTitlePrefix = boolPtr(true)
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = string(export.FormatTSV)
	}
	if cfg.Locale == "" {
		cfg.Locale = string(labels.English)
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./output"
	}
	if cfg.OutputFileFormat == "" {
		cfg.OutputFileFormat = "{category}_{timestamp}_{uuid}"
	}
	if cfg.ServerAddr == "" {
		cfg.ServerAddr = ":8080"
	}
	if cfg.MaxUploadMB == 0 {
		cfg.MaxUploadMB = 32
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

func validate(cfg *Config) error {
	if _, err := csvparser.ParseHeaderStrategy(cfg.HeaderDetection); err != nil {
		return err
	}
	if _, err := export.ParseFormat(cfg.OutputFormat); err != nil {
		return err
	}
	if _, err := labels.ParseLocale(cfg.Locale); err != nil {
		return err
	}
	if _, err := zap.ParseAtomicLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	if cfg.MaxUploadMB < 0 {
		return fmt.Errorf("max_upload_mb must not be negative, got %d", cfg.MaxUploadMB)
	}
	return nil
}

// =============================================================================
// ENVIRONMENT
// =============================================================================

func applyEnvOverrides(cfg *Config) error {
	if v, ok := lookupEnv("HEADER_DETECTION"); ok {
		cfg.HeaderDetection = v
	}
	if v, ok := lookupEnv("HEADER_FALLBACK"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sHEADER_FALLBACK: %w", EnvPrefix, err)
		}
		cfg.HeaderFallback = &b
	}
	if v, ok := lookupEnv("BANNER_SIGNATURES"); ok {
		cfg.BannerSignatures = splitList(v)
	}
	if v, ok := lookupEnv("STRIP_TITLE_PREFIX"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sSTRIP_TITLE_PREFIX: %w", EnvPrefix, err)
		}
		cfg.StripTitlePrefix = &b
	}
	if v, ok := lookupEnv("OUTPUT_FORMAT"); ok {
		cfg.OutputFormat = v
	}
	if v, ok := lookupEnv("LOCALE"); ok {
		cfg.Locale = v
	}
	if v, ok := lookupEnv("OUTPUT_DIR"); ok {
		cfg.OutputDir = v
	}
	if v, ok := lookupEnv("OUTPUT_FILE_FORMAT"); ok {
		cfg.OutputFileFormat = v
	}
	if v, ok := lookupEnv("SERVER_ADDR"); ok {
		cfg.ServerAddr = v
	}
	if v, ok := lookupEnv("MAX_UPLOAD_MB"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sMAX_UPLOAD_MB: %w", EnvPrefix, err)
		}
		cfg.MaxUploadMB = n
	}
	if v, ok := lookupEnv("LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	return nil
}

func lookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + key)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(v), true
}

// splitList splits a comma-separated list, dropping empty items.
func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func boolPtr(b bool) *bool { return &b }

// =============================================================================
// DERIVED SETTINGS
// =============================================================================

// PipelineOptions converts the parsing settings into converter options.
func (c *Config) PipelineOptions(logger *zap.Logger) converter.Options {
	strategy, _ := csvparser.ParseHeaderStrategy(c.HeaderDetection)
	return converter.Options{
		HeaderStrategy:   strategy,
		DisableFallback:  c.HeaderFallback != nil && !*c.HeaderFallback,
		BannerSignatures: c.BannerSignatures,
		StripTitlePrefix: c.StripTitlePrefix == nil || *c.StripTitlePrefix,
		Logger:           logger,
	}
}

// ExportFormat returns the configured default export format.
func (c *Config) ExportFormat() export.Format {
	f, err := export.ParseFormat(c.OutputFormat)
	if err != nil {
		return export.FormatTSV
	}
	return f
}

// DisplayLocale returns the configured locale.
func (c *Config) DisplayLocale() labels.Locale {
	l, err := labels.ParseLocale(c.Locale)
	if err != nil {
		return labels.English
	}
	return l
}

// MaxUploadBytes is MaxUploadMB in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}
