// Package config loads the server configuration from a YAML file.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Config is the full server configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Store  StoreConfig  `yaml:"store"`
	Auth   AuthConfig   `yaml:"auth"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port string `yaml:"port"`
}

// StoreConfig configures the storage engine.
type StoreConfig struct {
	// ExpectedEntries sizes the volatile skip list per flush cycle.
	ExpectedEntries int `yaml:"expected_entries"`
	// FilterFalsePositiveRate is the bloom target for flushed tables.
	FilterFalsePositiveRate float64 `yaml:"filter_false_positive_rate"`
}

// AuthConfig configures token issuing. An empty secret falls back to the
// JWT_SECRET environment variable, then to the built-in development secret.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: ServerConfig{Port: "8080"},
		Store: StoreConfig{
			ExpectedEntries:         2048,
			FilterFalsePositiveRate: 0.001,
		},
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (Config, error) {
	conf := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return conf, fmt.Errorf("failed to read configuration file: %w", err)
	}
	if err := yaml.Unmarshal(data, &conf); err != nil {
		return conf, fmt.Errorf("failed to parse configuration file: %w", err)
	}

	if conf.Store.ExpectedEntries <= 0 {
		return conf, fmt.Errorf("store.expected_entries must be positive, got %d", conf.Store.ExpectedEntries)
	}
	if conf.Store.FilterFalsePositiveRate <= 0 || conf.Store.FilterFalsePositiveRate >= 1 {
		return conf, fmt.Errorf("store.filter_false_positive_rate must be in (0, 1), got %g", conf.Store.FilterFalsePositiveRate)
	}
	return conf, nil
}
