// Package config handles configuration for the development API server,
// including defaults, environment, and command-line flags.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds runtime settings for the development auth API.
//
// Fields:
//   - Addr: bind address of the HTTP listener.
//   - Prefix: path the auth routes are mounted under; clients use
//     http://<addr><prefix> as their base URL.
//   - LogLevel: debug, info, warn or error.
//   - SessionTTL: lifetime of a session cookie.
//   - BcryptCost: work factor for stored password hashes. Lower it in tests.
type Config struct {
	Addr       string
	Prefix     string
	LogLevel   string
	SessionTTL time.Duration
	BcryptCost int
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.Addr = ":8090"
	c.Prefix = "/auth"
	c.LogLevel = "info"
	c.SessionTTL = 24 * time.Hour
	c.BcryptCost = 10
}

// LoadConfig builds a Config from the process arguments. See Load.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load applies defaults, then the environment (including a .env file),
// then command-line flags.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}

	if !strings.HasPrefix(cfg.Prefix, "/") {
		cfg.Prefix = "/" + cfg.Prefix
	}
	cfg.Prefix = strings.TrimRight(cfg.Prefix, "/")
	if cfg.Prefix == "" {
		return nil, fmt.Errorf("invalid configuration: prefix cannot be empty")
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("invalid configuration: session ttl must be > 0")
	}
	return cfg, nil
}
