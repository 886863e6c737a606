// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Default values applied when neither file nor environment provides one
const (
	DefaultPort           = 8080
	DefaultCacheSize      = 256
	DefaultRequestTimeout = 60 // seconds
)

// Config represents configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or environment
// variables.
type Config struct {
	APIKey         string `json:"api_key,omitempty"`          // Gemini API key
	Port           int    `json:"port,omitempty"`             // HTTP server port
	CacheSize      int    `json:"cache_size,omitempty"`       // Parse cache entry bound
	RequestTimeout int    `json:"request_timeout,omitempty"`  // Gateway timeout in seconds
	Verbose        bool   `json:"verbose,omitempty"`          // Print detailed scan output
}

// Load loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a Config from environment variables alone.
func FromEnv() *Config {
	cfg := &Config{
		APIKey: os.Getenv("GEMINI_API_KEY"),
	}
	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
		cfg.Port = port
	}
	return cfg
}

// ApplyDefaults fills unset numeric fields and merges environment fallbacks.
func (c *Config) ApplyDefaults() {
	if c.APIKey == "" {
		c.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.CacheSize == 0 {
		c.CacheSize = DefaultCacheSize
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("config error: 'cache_size' must be non-negative")
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("config error: 'request_timeout' must be non-negative")
	}
	return nil
}
