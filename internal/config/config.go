// Package config loads placekeeper configuration from YAML with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all placekeeper configuration.
type Config struct {
	// Storage paths
	Storage StorageConfig `yaml:"storage"`

	// Remote authentication endpoint
	Auth AuthConfig `yaml:"auth"`

	// Reverse geocoding
	Geocoding GeocodingConfig `yaml:"geocoding"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// StorageConfig configures on-device storage.
type StorageConfig struct {
	// DataDir is the root for all durable files.
	DataDir string `yaml:"data_dir"`
	// DatabaseFile is the SQLite file name inside DataDir.
	DatabaseFile string `yaml:"database_file"`
	// SlotFile is the key-value slot file name inside DataDir.
	SlotFile string `yaml:"slot_file"`
}

// AuthConfig configures the remote auth endpoint.
type AuthConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

// GeocodingConfig configures optional reverse geocoding.
type GeocodingConfig struct {
	Enabled bool   `yaml:"enabled"`
	BaseURL string `yaml:"base_url"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the default configuration. The data directory
// defaults to ~/.placekeeper.
func DefaultConfig() *Config {
	dataDir := ".placekeeper"
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".placekeeper")
	}

	return &Config{
		Storage: StorageConfig{
			DataDir:      dataDir,
			DatabaseFile: "places.db",
			SlotFile:     "storage.json",
		},
		Auth: AuthConfig{
			BaseURL: "http://localhost:8090",
			Timeout: "30s",
		},
		Geocoding: GeocodingConfig{
			Enabled: false,
			BaseURL: "https://nominatim.openstreetmap.org",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file, falling back to defaults
// when the file does not exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if dir := os.Getenv("PLACEKEEPER_DATA_DIR"); dir != "" {
		c.Storage.DataDir = dir
	}
	if db := os.Getenv("PLACEKEEPER_DB"); db != "" {
		c.Storage.DatabaseFile = db
	}
	if url := os.Getenv("PLACEKEEPER_AUTH_URL"); url != "" {
		c.Auth.BaseURL = url
	}
}

// DatabasePath returns the absolute path of the SQLite database file.
func (c *Config) DatabasePath() string {
	if filepath.IsAbs(c.Storage.DatabaseFile) {
		return c.Storage.DatabaseFile
	}
	return filepath.Join(c.Storage.DataDir, c.Storage.DatabaseFile)
}

// SlotPath returns the absolute path of the key-value slot file.
func (c *Config) SlotPath() string {
	if filepath.IsAbs(c.Storage.SlotFile) {
		return c.Storage.SlotFile
	}
	return filepath.Join(c.Storage.DataDir, c.Storage.SlotFile)
}

// AuthTimeout parses the auth timeout, defaulting to 30s.
func (c *Config) AuthTimeout() time.Duration {
	d, err := time.ParseDuration(c.Auth.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}
