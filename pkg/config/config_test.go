package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7*24*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, "token", cfg.JWT.CookieName)
	assert.Equal(t, ":3000", cfg.HTTP.Addr())
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.Setup.Enabled())
	assert.False(t, cfg.App.IsProduction())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_TTL_HOURS", "12")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/pos")
	t.Setenv("SETUP_EMAIL", "root@example.com")
	t.Setenv("SETUP_PASSWORD", "pw")
	t.Setenv("SETUP_PIN", "1234")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 12*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, "postgres://u:p@db:5432/pos", cfg.DB.DSN())
	assert.True(t, cfg.Setup.Enabled())
}

func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}
