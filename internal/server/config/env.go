package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// EnvConfig mirrors the environment variables understood by the server.
// Fields are pre-filled from the current Config, so unset variables keep
// whatever the earlier layers produced.
type EnvConfig struct {
	EndpointAddr             string `env:"SERVER_ADDRESS"`
	DatabaseDSN              string `env:"DATABASE_URL"`
	SecretKey                string `env:"SECRET_KEY"`
	AccessTokenExpireMinutes int    `env:"ACCESS_TOKEN_EXPIRE_MINUTES"`
	Env                      string `env:"ENV"`
	BcryptCost               int    `env:"BCRYPT_COST"`
	HashConcurrency          int    `env:"HASH_CONCURRENCY"`
}

// parseEnv overlays environment variables onto config. Malformed values
// (e.g. a non-numeric ACCESS_TOKEN_EXPIRE_MINUTES) cause a panic, the same
// way a broken JSON config file does.
func parseEnv(config *Config) {
	e := &EnvConfig{
		EndpointAddr:             config.EndpointAddr,
		DatabaseDSN:              config.DatabaseDSN,
		SecretKey:                config.SecretKey,
		AccessTokenExpireMinutes: int(config.AccessTokenValidityDuration / time.Minute),
		Env:                      config.Env,
		BcryptCost:               config.BcryptCost,
		HashConcurrency:          config.HashConcurrency,
	}

	if err := env.Parse(e); err != nil {
		panic(err)
	}

	config.EndpointAddr = e.EndpointAddr
	config.DatabaseDSN = e.DatabaseDSN
	config.SecretKey = e.SecretKey
	config.Env = e.Env
	config.BcryptCost = e.BcryptCost
	config.HashConcurrency = e.HashConcurrency

	if e.AccessTokenExpireMinutes != int(config.AccessTokenValidityDuration/time.Minute) {
		config.AccessTokenValidityDuration = time.Duration(e.AccessTokenExpireMinutes) * time.Minute
	}
}
