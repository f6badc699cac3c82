// Package config loads runtime configuration for the calcapi CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via -c or -config.
//  3. Environment: CALC_SERVER_URL, CALC_TIMEOUT, CALC_TOKEN.
//  4. Command-line flags registered by the CLI (--server, --timeout, --token).
//
// # JSON schema
//
//	{
//	  "server_url": "http://127.0.0.1:8000",
//	  "request_timeout": "10s",
//	  "token": "<bearer token>"
//	}
package config
