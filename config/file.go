package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pevans/patternsfeed/scraper"
)

// HTTPConfig controls outgoing page fetches.
type HTTPConfig struct {
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

// CacheConfig controls the result cache.
type CacheConfig struct {
	Enabled *bool         `yaml:"enabled"`
	DSN     string        `yaml:"dsn"`
	TTL     time.Duration `yaml:"ttl"`
}

// IsEnabled reports whether caching is on. Caching is on unless explicitly
// disabled.
func (c CacheConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// ServerConfig controls the feed HTTP server.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// FileConfig represents the structure of ~/.patternsfeed/config.yaml.
type FileConfig struct {
	Lang   string             `yaml:"lang"`
	HTTP   HTTPConfig         `yaml:"http"`
	Cache  CacheConfig        `yaml:"cache"`
	Server ServerConfig       `yaml:"server"`
	Log    LogConfig          `yaml:"log"`
	Site   scraper.SiteConfig `yaml:"site"`
}

// Default returns the configuration used when no file is present.
func Default() *FileConfig {
	cfg := &FileConfig{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills in every unset field.
func (c *FileConfig) ApplyDefaults() {
	if c.Lang == "" {
		c.Lang = "fr"
	}
	if c.HTTP.Timeout <= 0 {
		c.HTTP.Timeout = scraper.DefaultTimeout
	}
	if c.HTTP.UserAgent == "" {
		c.HTTP.UserAgent = scraper.DefaultUserAgent
	}
	if c.Cache.DSN == "" {
		c.Cache.DSN = DefaultCachePath()
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = 12 * time.Hour
	}
	if c.Server.Addr == "" {
		c.Server.Addr = "localhost:8080"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	c.Site = c.Site.WithDefaults()
}

// ConfigDir returns ~/.patternsfeed, or the working directory if the home
// directory is unknown.
func ConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(homeDir, ".patternsfeed")
}

// DefaultConfigPath returns the default config file location.
func DefaultConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// DefaultCachePath returns the default cache database location.
func DefaultCachePath() string {
	return filepath.Join(ConfigDir(), "cache.db")
}

// LoadConfigFile loads configuration from ~/.patternsfeed/config.yaml.
// Returns nil if the file doesn't exist (not an error).
func LoadConfigFile() (*FileConfig, error) {
	return LoadConfigFileFrom(DefaultConfigPath())
}

// LoadConfigFileFrom loads configuration from configPath. Returns nil if the
// file doesn't exist (not an error). Returns error if the file exists but
// cannot be parsed.
func LoadConfigFileFrom(configPath string) (*FileConfig, error) {
	// Check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// Load reads configPath (or the default location when empty) and applies
// defaults. A missing file yields the default configuration.
func Load(configPath string) (*FileConfig, error) {
	if configPath == "" {
		configPath = DefaultConfigPath()
	}

	cfg, err := LoadConfigFileFrom(configPath)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = &FileConfig{}
	}

	cfg.ApplyDefaults()
	return cfg, nil
}
