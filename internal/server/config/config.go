// Package config handles configuration for the auth server,
// including defaults, JSON overlay, environment and command-line flags.
package config

import "time"

// Config holds runtime settings for the auth server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the HTTP JSON API.
//   - DatabaseDSN: store DSN. postgres:// (pgx) or sqlite:/file: (modernc).
//     Empty means unconfigured; store-backed handlers then answer 500.
//   - SecretKey: HMAC secret for signing tokens (HS256). Empty keeps the
//     placeholder "demo-token-<millis>" tokens.
//   - TokenValidityDuration: lifetime of signed tokens.
//   - BcryptCost: work factor for password hashing.
//   - RunMigrations: provision the schema eagerly at startup.
type Config struct {
	EndpointAddrHTTP      string
	DatabaseDSN           string
	SecretKey             string
	TokenValidityDuration time.Duration
	BcryptCost            int
	RunMigrations         bool
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.DatabaseDSN = ""
	c.SecretKey = ""
	c.TokenValidityDuration = 60 * time.Minute
	c.BcryptCost = 10
	c.RunMigrations = false
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
