package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Store backends understood by kv.Open.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Config holds all oefen configuration.
type Config struct {
	// Durable state (history, filter preferences)
	Store StoreConfig `yaml:"store"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`

	// DataDir shadows the embedded exercise data when set.
	DataDir string `yaml:"data_dir"`

	// Capacities overrides the history window per category.
	Capacities map[string]int `yaml:"capacities"`

	// DefaultCategory is practiced when no category is given.
	DefaultCategory string `yaml:"default_category"`
}

// StoreConfig configures the key-value store.
type StoreConfig struct {
	Backend   string `yaml:"backend"` // sqlite, file, memory
	Path      string `yaml:"path"`
	CacheSize int    `yaml:"cache_size"` // 0 disables the LRU front
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // empty = <config dir>/oefen.log
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend:   BackendSQLite,
			Path:      filepath.Join(Dir(), "state.db"),
			CacheSize: 64,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Capacities:      map[string]int{},
		DefaultCategory: "verb_conjugation",
	}
}

// Load loads configuration from a YAML file.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}
	if cfg.Capacities == nil {
		cfg.Capacities = map[string]int{}
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// YAML returns the configuration as written by Save.
func (c *Config) YAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := c.YAML()
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("OEFEN_STORE_BACKEND"); v != "" {
		c.Store.Backend = v
	}
	if v := os.Getenv("OEFEN_STORE_PATH"); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv("OEFEN_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("OEFEN_DATA_DIR"); v != "" {
		c.DataDir = v
	}
}

// ValidBackends lists the supported store backends.
var ValidBackends = []string{BackendSQLite, BackendFile, BackendMemory}

// Validate validates the configuration.
func (c *Config) Validate() error {
	valid := false
	for _, b := range ValidBackends {
		if c.Store.Backend == b {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid store backend: %s (valid: %v)", c.Store.Backend, ValidBackends)
	}
	if c.Store.Backend != BackendMemory && c.Store.Path == "" {
		return fmt.Errorf("store path required for %s backend", c.Store.Backend)
	}
	if c.Store.CacheSize < 0 {
		return fmt.Errorf("store cache_size must not be negative")
	}
	for name, n := range c.Capacities {
		if n < 1 {
			return fmt.Errorf("capacity for %s must be positive, got %d", name, n)
		}
	}
	return nil
}

// CapacityFor returns the configured history capacity for a category,
// or fallback when none is set.
func (c *Config) CapacityFor(category string, fallback int) int {
	if n, ok := c.Capacities[category]; ok && n > 0 {
		return n
	}
	return fallback
}

// SetCapacity overrides the history capacity for a category.
func (c *Config) SetCapacity(category string, n int) {
	if c.Capacities == nil {
		c.Capacities = map[string]int{}
	}
	c.Capacities[category] = n
}
