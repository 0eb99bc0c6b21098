package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/authdemo/internal/flagx"
)

// DefaultBaseURL is the hosted auth API the demo was written against.
const DefaultBaseURL = "https://peaceful-chamber-98453-c8b3feb3fc78.herokuapp.com/auth"

// Config holds runtime settings for the authdemo CLI.
//
// Fields:
//   - BaseURL: origin plus path prefix every endpoint is appended to.
//   - DBPath: SQLite file holding the cookie jar and request history.
//   - LogLevel: debug, info, warn or error.
//   - RequestTimeout: per-request timeout; zero means requests may hang.
type Config struct {
	BaseURL        string
	DBPath         string
	LogLevel       string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = DefaultBaseURL
	c.DBPath = "authdemo.db"
	c.LogLevel = "info"
	c.RequestTimeout = 0
}

// LoadConfig builds a Config from the process arguments. See Load.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load constructs a Config, applies defaults, then overlays values from the
// environment (including a .env file), a JSON file (if -c/-config is given)
// and command-line flags. Later sources take precedence over earlier ones.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	if err := parseJson(cfg, flagx.ConfigFilePath(args)); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}

	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that the loaded values are usable.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base url %q: scheme must be http or https", c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("base url %q: host is empty", c.BaseURL)
	}
	if c.DBPath == "" {
		return fmt.Errorf("db path cannot be empty")
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request timeout must be >= 0")
	}
	return nil
}
