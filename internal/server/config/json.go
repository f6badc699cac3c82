package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/calcapi/internal/flagx"
	"github.com/dmitrijs2005/calcapi/internal/timex"
)

// JsonConfig is the on-disk shape of the optional JSON config file.
// Durations accept both "30m" strings and integer nanoseconds.
// Zero values mean "not set" and leave the current Config untouched.
type JsonConfig struct {
	EndpointAddr                string         `json:"endpoint_addr"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	Env                         string         `json:"env"`
	BcryptCost                  int            `json:"bcrypt_cost"`
	HashConcurrency             int            `json:"hash_concurrency"`
}

// parseJson loads the file named by -c/-config in args and overlays it onto
// config. Without the flag nothing happens. An unreadable file or invalid
// JSON panics.
func parseJson(config *Config, args []string) {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.Env != "" {
		config.Env = c.Env
	}
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
	if c.HashConcurrency != 0 {
		config.HashConcurrency = c.HashConcurrency
	}
}
