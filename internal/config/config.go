package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Assignment policies accepted by default_policy.
const (
	PolicyFIFO       = "fifo"
	PolicyLeastDelay = "least-delay"
)

// HomeEnv overrides the base directory, ~/.homesolution by default.
const HomeEnv = "HOMESOLUTION_HOME"

type Config struct {
	DefaultPolicy string `toml:"default_policy"`
	DatabasePath  string `toml:"database_path,omitempty"`
	Journal       bool   `toml:"journal"`
}

func DefaultConfig() *Config {
	return &Config{
		DefaultPolicy: PolicyFIFO,
		Journal:       true,
	}
}

func HomeSolutionDir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".homesolution"), nil
}

func ConfigPath() (string, error) {
	dir, err := HomeSolutionDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func DefaultDatabasePath() (string, error) {
	dir, err := HomeSolutionDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "db", "homesolution.sqlite"), nil
}

func ErrorLogPath() (string, error) {
	dir, err := HomeSolutionDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "errors.log"), nil
}

func EnsureDirectories() error {
	dir, err := HomeSolutionDir()
	if err != nil {
		return err
	}

	// Create main directory
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	// Create db subdirectory
	dbDir := filepath.Join(dir, "db")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return err
	}

	return nil
}

func Load() (*Config, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()

	// If config file doesn't exist, create it with defaults
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := EnsureDirectories(); err != nil {
			return nil, err
		}
		if err := Save(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(configPath, cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", configPath, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.DatabasePath = expandPath(cfg.DatabasePath)
	return cfg, nil
}

func Save(cfg *Config) error {
	configPath, err := ConfigPath()
	if err != nil {
		return err
	}

	f, err := os.Create(configPath)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// Validate rejects unknown assignment policies.
func (c *Config) Validate() error {
	switch c.DefaultPolicy {
	case PolicyFIFO, PolicyLeastDelay:
		return nil
	default:
		return fmt.Errorf("default_policy must be %q or %q, got %q", PolicyFIFO, PolicyLeastDelay, c.DefaultPolicy)
	}
}

// LeastDelay reports whether plain assignments should use the least-delay
// policy instead of FIFO.
func (c *Config) LeastDelay() bool {
	return c.DefaultPolicy == PolicyLeastDelay
}

// ResolvedDatabasePath is the configured database path, or the default one.
func (c *Config) ResolvedDatabasePath() (string, error) {
	if c.DatabasePath != "" {
		return c.DatabasePath, nil
	}
	return DefaultDatabasePath()
}

func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, path[1:])
	}
	return path
}
