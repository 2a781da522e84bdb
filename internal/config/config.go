// Package config loads the service configuration from an optional TOML
// file with environment overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// DefaultPort is the listen port when nothing else is configured.
const DefaultPort = 8080

// Config holds the service configuration.
type Config struct {
	Server ServerConfig `toml:"server"`
	GitHub GitHubConfig `toml:"github"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	// Port is the TCP port to listen on.
	Port int `toml:"port"`

	// StaticDir is the directory served on the catch-all route. Empty
	// disables static serving.
	StaticDir string `toml:"static_dir"`
}

// GitHubConfig configures the upstream API client.
type GitHubConfig struct {
	// Token is a personal access token. Empty means unauthenticated
	// requests under GitHub's anonymous quota.
	Token string `toml:"token"`
}

// Load reads the TOML file at path and applies environment overrides
// (PORT, GITHUB_TOKEN, REPOPRESS_STATIC_DIR). A missing file is not an
// error; an empty path skips the file entirely.
func Load(path string) (*Config, error) {
	cfg := &Config{Server: ServerConfig{Port: DefaultPort}}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults plus environment are enough.
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if port := os.Getenv("PORT"); port != "" {
		val, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		cfg.Server.Port = val
	}
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		cfg.GitHub.Token = token
	}
	if dir := os.Getenv("REPOPRESS_STATIC_DIR"); dir != "" {
		cfg.Server.StaticDir = dir
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return nil, fmt.Errorf("port out of range: %d", cfg.Server.Port)
	}

	return cfg, nil
}
