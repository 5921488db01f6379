package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8080", c.EndpointAddrHTTP)
	assert.Equal(t, "", c.DatabaseDSN)
	assert.Equal(t, "", c.SecretKey)
	assert.Equal(t, 60*time.Minute, c.TokenValidityDuration)
	assert.Equal(t, 10, c.BcryptCost)
	assert.False(t, c.RunMigrations)
}

func TestLoadConfig_EnvOverridesDefaults(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	t.Setenv("POSTGRES_URL", "postgres://u:p@db:5432/auth")
	t.Setenv("AUTH_SECRET_KEY", "env-secret")

	c := LoadConfig()
	require.NotNil(t, c)

	assert.Equal(t, ":8080", c.EndpointAddrHTTP)
	assert.Equal(t, "postgres://u:p@db:5432/auth", c.DatabaseDSN)
	assert.Equal(t, "env-secret", c.SecretKey)
	assert.Equal(t, 60*time.Minute, c.TokenValidityDuration)
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin", "-d", "sqlite:auth.db"}

	t.Setenv("POSTGRES_URL", "postgres://from-env")
	t.Setenv("AUTH_SECRET_KEY", "")

	c := LoadConfig()

	assert.Equal(t, "sqlite:auth.db", c.DatabaseDSN)
	assert.Equal(t, "", c.SecretKey)
}
