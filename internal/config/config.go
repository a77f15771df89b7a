// Package config loads the optional YAML file that points noor at its remote APIs and cache.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/noor/internal/constants"
	"github.com/julianstephens/noor/internal/models"
)

// DefaultPath is where the config file is looked up when --config is not given.
const DefaultPath = "~/.config/noor/config.yaml"

// Config holds infrastructure settings. User preferences live in the settings table.
type Config struct {
	API      APIConfig      `yaml:"api"`
	Cache    CacheConfig    `yaml:"cache"`
	Location LocationConfig `yaml:"location"`
	// LogLevel is debug, info, warn or error. --debug overrides it.
	LogLevel string `yaml:"log_level"`
}

// APIConfig configures the remote REST clients
type APIConfig struct {
	QuranBaseURL   string `yaml:"quran_base_url"`
	AladhanBaseURL string `yaml:"aladhan_base_url"`
	Timeout        string `yaml:"timeout"`
}

// CacheConfig configures response caching. An empty RedisAddr selects the in-process cache.
type CacheConfig struct {
	Enabled       bool   `yaml:"enabled"`
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
	KeyPrefix     string `yaml:"key_prefix"`
}

// LocationConfig overrides the stored prayer-time location when set.
type LocationConfig struct {
	City    string `yaml:"city"`
	Country string `yaml:"country"`
	Method  int    `yaml:"method"`
}

func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			QuranBaseURL:   constants.DefaultQuranBaseURL,
			AladhanBaseURL: constants.DefaultAladhanBaseURL,
			Timeout:        constants.DefaultHTTPTimeout.String(),
		},
		Cache: CacheConfig{
			Enabled:   true,
			KeyPrefix: constants.AppName + ":http:",
		},
	}
}

// Load reads path, falling back to defaults when the file does not exist.
// Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEnvFile exports the variables in dir/.env that are not already set. A missing file is not an error.
// Flags bound to the environment (NOOR_DB, NOOR_CONFIG) are parsed before this runs and are not affected.
func LoadEnvFile(dir string) error {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if addr := os.Getenv("NOOR_REDIS_ADDR"); addr != "" {
		c.Cache.RedisAddr = addr
	}
	if city := os.Getenv("NOOR_CITY"); city != "" {
		c.Location.City = city
	}
	if country := os.Getenv("NOOR_COUNTRY"); country != "" {
		c.Location.Country = country
	}
	if method := os.Getenv("NOOR_METHOD"); method != "" {
		if m, err := strconv.Atoi(method); err == nil {
			c.Location.Method = m
		}
	}
}

// Validate checks fields that would otherwise fail later at request time.
func (c *Config) Validate() error {
	if c.API.QuranBaseURL == "" || c.API.AladhanBaseURL == "" {
		return fmt.Errorf("api base URLs must not be empty")
	}
	if c.API.Timeout != "" {
		if _, err := time.ParseDuration(c.API.Timeout); err != nil {
			return fmt.Errorf("invalid api.timeout %q: %w", c.API.Timeout, err)
		}
	}
	if c.Location.Method < 0 {
		return fmt.Errorf("invalid location.method %d", c.Location.Method)
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q, expected debug, info, warn or error", c.LogLevel)
	}
	return nil
}

// HTTPTimeout returns the API timeout, falling back to the default on a bad value.
func (c *Config) HTTPTimeout() time.Duration {
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil || d <= 0 {
		return constants.DefaultHTTPTimeout
	}
	return d
}

// ApplyLocation overrides the stored location with any configured values.
func (c *Config) ApplyLocation(s *models.Settings) {
	if c.Location.City != "" {
		s.City = c.Location.City
	}
	if c.Location.Country != "" {
		s.Country = c.Location.Country
	}
	if c.Location.Method > 0 {
		s.Method = c.Location.Method
	}
}
