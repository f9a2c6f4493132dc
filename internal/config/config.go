// Package config resolves where the epistle store lives and how the
// tool logs. The store directory is always passed explicitly into the
// registry constructor; nothing in this package is process-global.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultDirName is the store directory used when neither the --dir
// flag nor EPISTLE_DIR is set, relative to the working directory.
const DefaultDirName = ".epistles"

// ConfigFilename is the optional per-store configuration file.
const ConfigFilename = "config.yaml"

// EnvDir overrides the store directory.
const EnvDir = "EPISTLE_DIR"

// Config holds per-store settings.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig controls the zap logger built at startup.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug/info/warn/error
	Format string `yaml:"format"` // text or json
	File   string `yaml:"file"`   // optional log file, relative to the store dir
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// ResolveDir picks the store directory: the flag wins, then the
// EPISTLE_DIR environment variable, then .epistles under the current
// working directory.
func ResolveDir(flagDir string) string {
	if flagDir != "" {
		return flagDir
	}
	if dir := os.Getenv(EnvDir); dir != "" {
		return dir
	}
	return DefaultDirName
}

// Load reads config.yaml from the store directory. A missing file
// yields the defaults.
func Load(dir string) (*Config, error) {
	cfg := DefaultConfig()

	path := filepath.Join(dir, ConfigFilename)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration back to the store directory.
func (c *Config) Save(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("config: create directory %s: %w", dir, err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	path := filepath.Join(dir, ConfigFilename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
