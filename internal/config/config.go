// Package config loads the gateway's TOML configuration file.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the gateway's static configuration, per spec §6.
type Config struct {
	LogDir             string `toml:"log_dir"`
	DatabaseURL        string `toml:"database_url"`
	RegistryURL        string `toml:"registry_url"`
	RateLimitGlobalRPM int    `toml:"rate_limit_global_rpm"`
	RateLimitPerKeyRPM int    `toml:"rate_limit_per_key_rpm"`

	// Ambient fields the distilled spec is silent on but any deployable
	// binary needs.
	ListenAddr string `toml:"listen_addr"`
	LogLevel   string `toml:"log_level"`
}

// Load reads and parses a TOML config file at path.
func Load(path string) (*Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = ":8080"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.RateLimitGlobalRPM <= 0 {
		c.RateLimitGlobalRPM = 600
	}
	if c.RateLimitPerKeyRPM <= 0 {
		c.RateLimitPerKeyRPM = 120
	}
}

// Validate checks required fields are present.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("database_url is required")
	}
	return nil
}
