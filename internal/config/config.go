// Package config loads htmldicts configuration from defaults, YAML files and
// HTMLDICTS_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	herrors "github.com/setia/htmldicts/internal/errors"
	"github.com/setia/htmldicts/internal/search"
)

// CurrentVersion is the config schema version written by WriteYAML.
const CurrentVersion = 1

// ProjectConfigName is the per-directory config file.
const ProjectConfigName = ".htmldicts.yaml"

// Config is the complete htmldicts configuration.
type Config struct {
	Version int           `yaml:"version" json:"version"`
	Index   IndexConfig   `yaml:"index" json:"index"`
	Search  SearchConfig  `yaml:"search" json:"search"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// IndexConfig locates the dictionary index.
type IndexConfig struct {
	// Path is the bleve index directory. Defaults to ~/.htmldicts/index.bleve
	Path string `yaml:"path" json:"path"`
}

// SearchConfig holds request defaults and merger tuning.
type SearchConfig struct {
	Limit           int    `yaml:"limit" json:"limit"`
	LimitPerSource  int    `yaml:"limit_per_source" json:"limit_per_source"`
	Transliteration bool   `yaml:"transliteration" json:"transliteration"`
	ContextSize     string `yaml:"context_size" json:"context_size"`

	// OnVariantError is "abort" (fail the search) or "skip" (merge the rest).
	OnVariantError string `yaml:"on_variant_error" json:"on_variant_error"`

	// Parallelism bounds concurrent variant sub-queries.
	Parallelism int `yaml:"parallelism" json:"parallelism"`

	// VariantCacheSize memoises variant expansion. 0 disables the cache.
	VariantCacheSize int `yaml:"variant_cache_size" json:"variant_cache_size"`
}

// LoggingConfig configures file logging.
type LoggingConfig struct {
	Level     string `yaml:"level" json:"level"`
	File      string `yaml:"file" json:"file"`
	MaxSizeMB int    `yaml:"max_size_mb" json:"max_size_mb"`
	MaxFiles  int    `yaml:"max_files" json:"max_files"`
}

// NewConfig returns a Config with all defaults applied.
func NewConfig() *Config {
	return &Config{
		Version: CurrentVersion,
		Index: IndexConfig{
			Path: defaultIndexPath(),
		},
		Search: SearchConfig{
			Limit:            search.DefaultLimit,
			LimitPerSource:   search.DefaultLimitPerSource,
			Transliteration:  true,
			ContextSize:      string(search.ContextDefault),
			OnVariantError:   string(search.FailAbort),
			Parallelism:      min(runtime.NumCPU(), 8),
			VariantCacheSize: 1024,
		},
		Logging: LoggingConfig{
			Level:     "info",
			MaxSizeMB: 10,
			MaxFiles:  5,
		},
	}
}

func defaultIndexPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".htmldicts", "index.bleve")
	}
	return filepath.Join(home, ".htmldicts", "index.bleve")
}

// GetUserConfigPath returns the user configuration file:
//   - $XDG_CONFIG_HOME/htmldicts/config.yaml (if XDG_CONFIG_HOME is set)
//   - ~/.config/htmldicts/config.yaml (default)
func GetUserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "htmldicts", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config", "htmldicts", "config.yaml")
	}
	return filepath.Join(home, ".config", "htmldicts", "config.yaml")
}

// GetUserConfigDir returns the directory containing the user configuration.
func GetUserConfigDir() string {
	return filepath.Dir(GetUserConfigPath())
}

// UserConfigExists reports whether the user configuration file exists.
func UserConfigExists() bool {
	return fileExists(GetUserConfigPath())
}

// Load builds the configuration for dir in order of increasing precedence:
//  1. Defaults
//  2. User config (~/.config/htmldicts/config.yaml)
//  3. Project config (.htmldicts.yaml in dir)
//  4. Environment variables (HTMLDICTS_*)
//
// Each file only overrides the keys it sets, so an explicit false or zero in
// a file is honoured.
func Load(dir string) (*Config, error) {
	cfg := NewConfig()

	if userPath := GetUserConfigPath(); fileExists(userPath) {
		if err := cfg.loadYAML(userPath); err != nil {
			return nil, err
		}
	}

	if dir != "" {
		if projectPath := filepath.Join(dir, ProjectConfigName); fileExists(projectPath) {
			if err := cfg.loadYAML(projectPath); err != nil {
				return nil, err
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadYAML layers the keys present in path over c.
func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return herrors.ConfigError(fmt.Sprintf("failed to read config file %s", path), err)
	}

	layered := *c
	if err := yaml.Unmarshal(data, &layered); err != nil {
		return herrors.ConfigError(fmt.Sprintf("failed to parse config file %s", path), err).
			WithDetail("path", path)
	}
	*c = layered
	return nil
}

// applyEnvOverrides applies HTMLDICTS_* variables. A malformed number or
// boolean is a config error rather than being ignored.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("HTMLDICTS_INDEX_PATH"); v != "" {
		c.Index.Path = v
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"HTMLDICTS_SEARCH_LIMIT", &c.Search.Limit},
		{"HTMLDICTS_LIMIT_PER_SOURCE", &c.Search.LimitPerSource},
		{"HTMLDICTS_PARALLELISM", &c.Search.Parallelism},
		{"HTMLDICTS_VARIANT_CACHE_SIZE", &c.Search.VariantCacheSize},
		{"HTMLDICTS_LOG_MAX_SIZE_MB", &c.Logging.MaxSizeMB},
		{"HTMLDICTS_LOG_MAX_FILES", &c.Logging.MaxFiles},
	}
	for _, e := range ints {
		v := os.Getenv(e.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return herrors.ConfigError(fmt.Sprintf("%s must be an integer, got %q", e.name, v), err)
		}
		*e.dst = n
	}

	if v := os.Getenv("HTMLDICTS_TRANSLITERATION"); v != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return herrors.ConfigError(fmt.Sprintf("HTMLDICTS_TRANSLITERATION must be a boolean, got %q", v), err)
		}
		c.Search.Transliteration = b
	}
	if v := os.Getenv("HTMLDICTS_CONTEXT_SIZE"); v != "" {
		c.Search.ContextSize = v
	}
	if v := os.Getenv("HTMLDICTS_ON_VARIANT_ERROR"); v != "" {
		c.Search.OnVariantError = v
	}
	if v := os.Getenv("HTMLDICTS_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("HTMLDICTS_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
	return nil
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Index.Path) == "" {
		return herrors.ConfigError("index.path must not be empty", nil)
	}
	if c.Search.Limit < 1 || c.Search.Limit > search.MaxLimit {
		return herrors.ConfigError(fmt.Sprintf("search.limit must be between 1 and %d, got %d", search.MaxLimit, c.Search.Limit), nil)
	}
	if c.Search.LimitPerSource < 1 || c.Search.LimitPerSource > search.MaxLimit {
		return herrors.ConfigError(fmt.Sprintf("search.limit_per_source must be between 1 and %d, got %d", search.MaxLimit, c.Search.LimitPerSource), nil)
	}
	if _, err := search.ParseContextSize(c.Search.ContextSize); err != nil {
		return herrors.ConfigError("search.context_size must be 'default', 'expanded', or 'full', got "+c.Search.ContextSize, err)
	}
	if _, err := search.ParseFailurePolicy(c.Search.OnVariantError); err != nil {
		return herrors.ConfigError("search.on_variant_error must be 'abort' or 'skip', got "+c.Search.OnVariantError, err)
	}
	if c.Search.Parallelism < 1 {
		return herrors.ConfigError(fmt.Sprintf("search.parallelism must be positive, got %d", c.Search.Parallelism), nil)
	}
	if c.Search.VariantCacheSize < 0 {
		return herrors.ConfigError(fmt.Sprintf("search.variant_cache_size must be non-negative, got %d", c.Search.VariantCacheSize), nil)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return herrors.ConfigError(fmt.Sprintf("logging.level must be 'debug', 'info', 'warn', or 'error', got %s", c.Logging.Level), nil)
	}
	if c.Logging.MaxSizeMB < 1 {
		return herrors.ConfigError(fmt.Sprintf("logging.max_size_mb must be positive, got %d", c.Logging.MaxSizeMB), nil)
	}
	if c.Logging.MaxFiles < 1 {
		return herrors.ConfigError(fmt.Sprintf("logging.max_files must be positive, got %d", c.Logging.MaxFiles), nil)
	}
	return nil
}

// SearcherOptions returns the merger options this configuration selects.
func (c *Config) SearcherOptions() []search.Option {
	policy, _ := search.ParseFailurePolicy(c.Search.OnVariantError)
	return []search.Option{
		search.WithParallelism(c.Search.Parallelism),
		search.WithFailurePolicy(policy),
	}
}

// WriteYAML writes the configuration to path, creating parent directories.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
