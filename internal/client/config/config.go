package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the calcapi CLI.
//
// Fields:
//   - ServerURL: base URL of the calcapi HTTP API.
//   - RequestTimeout: per-request timeout for API calls.
//   - Token: bearer token used by protected commands.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
	Token          string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8000"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config from defaults, then overlays the JSON file
// named in args (if any) and the environment.
func LoadConfig(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseEnv(cfg)
	return cfg
}

// LoadConfigFromOS is LoadConfig over the process arguments.
func LoadConfigFromOS() *Config {
	return LoadConfig(os.Args[1:])
}
