// Package config provides configuration loading and structs for the pricefeed server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug         bool               `yaml:"debug"`
	Server        ServerConfig       `yaml:"server"`
	Warehouse     WarehouseConfig    `yaml:"warehouse"`
	Watch         WatchConfig        `yaml:"watch"`
	DefaultLayout string             `yaml:"default_layout"`
	Layouts       map[string]*Layout `yaml:"layouts"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// WarehouseConfig holds the target database and table for uploads.
type WarehouseConfig struct {
	DatabasePath string `yaml:"database_path"`
	Table        string `yaml:"table"`
}

// WatchConfig holds drop-directory watch settings.
type WatchConfig struct {
	Directories []string `yaml:"directories"`
	Extensions  []string `yaml:"extensions"`
	Layout      string   `yaml:"layout"`
	Recursive   *bool    `yaml:"recursive"`
}

// RecursiveOrDefault returns whether to watch recursively; defaults to true when unset.
func (w *WatchConfig) RecursiveOrDefault() bool {
	if w.Recursive != nil {
		return *w.Recursive
	}
	return true
}

// Layout returns the named layout family, or the default layout when
// name is empty. Returns an error for an unknown name.
func (c *Config) Layout(name string) (*Layout, error) {
	if name == "" {
		name = c.DefaultLayout
	}
	layout, ok := c.Layouts[name]
	if !ok {
		return nil, fmt.Errorf("unknown layout %q", name)
	}
	return layout, nil
}

// LayoutNames returns the configured layout family names.
func (c *Config) LayoutNames() []string {
	names := make([]string, 0, len(c.Layouts))
	for name := range c.Layouts {
		names = append(names, name)
	}
	return names
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed, or if any layout is invalid.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Warehouse.DatabasePath = expandPath(cfg.Warehouse.DatabasePath, configDir)
	for i := range cfg.Watch.Directories {
		cfg.Watch.Directories[i] = expandPath(cfg.Watch.Directories[i], configDir)
	}

	for name, layout := range cfg.Layouts {
		if err := layout.Validate(); err != nil {
			return nil, fmt.Errorf("layout %q: %w", name, err)
		}
	}
	if _, err := cfg.Layout(""); err != nil {
		return nil, fmt.Errorf("default layout: %w", err)
	}

	return &cfg, nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
