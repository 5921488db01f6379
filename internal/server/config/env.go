package config

import (
	"os"

	"github.com/dmitrijs2005/gophauth/internal/common"
)

// SecretKeyEnv names the environment variable holding the token signing key.
const SecretKeyEnv = "AUTH_SECRET_KEY"

// parseEnv overlays values present in the process environment. Unset
// variables leave the current value untouched; set-but-empty ones clear it.
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv(common.DatabaseURLEnv); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv(SecretKeyEnv); ok {
		config.SecretKey = v
	}
}
