package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// EnvConfig mirrors the environment variables understood by the CLI.
type EnvConfig struct {
	ServerURL      string        `env:"CALC_SERVER_URL"`
	RequestTimeout time.Duration `env:"CALC_TIMEOUT"`
	Token          string        `env:"CALC_TOKEN"`
}

// parseEnv overlays environment variables onto cfg. Malformed values panic.
func parseEnv(cfg *Config) {
	e := &EnvConfig{
		ServerURL:      cfg.ServerURL,
		RequestTimeout: cfg.RequestTimeout,
		Token:          cfg.Token,
	}

	if err := env.Parse(e); err != nil {
		panic(err)
	}

	cfg.ServerURL = e.ServerURL
	cfg.RequestTimeout = e.RequestTimeout
	cfg.Token = e.Token
}
