/*
Package config loads server configuration from a YAML file.

PURPOSE:

	Centralizes the deployable knobs of the compliance service: the HTTP
	listen port, the SQLite database path, and the CORS origins allowed to
	call the API. Everything else is code, not configuration.

PRECEDENCE:

	Command-line flags override file values, and the file is optional: a
	missing config file yields the defaults, so `./server` with no
	arguments always starts.

FORMAT:

	server:
	  port: 8080
	  allowed_origins:
	    - "http://localhost:5173"
	database:
	  path: "./compliance.db"

SEE ALSO:
  - cmd/server/main.go: flag handling and startup
*/
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full configuration tree.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// DatabaseConfig holds the SQLite settings. Use ":memory:" for an
// in-memory database.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           8080,
			AllowedOrigins: []string{"http://localhost:5173"},
		},
		Database: DatabaseConfig{
			Path: "compliance.db",
		},
	}
}

// Load reads a YAML config file. Fields left out of the file keep their
// default values.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("config: database.path must be set")
	}
	return nil
}
