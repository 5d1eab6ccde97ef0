package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr)
	assert.Equal(t, "data/sourceboard.db", cfg.Database.Path)
	assert.Equal(t, 60, cfg.Auth.SessionTTLMinutes)
	assert.Equal(t, 720, cfg.Auth.RememberTTLHours)
	assert.Empty(t, cfg.Auth.JWTSecret)
	assert.False(t, cfg.Server.SecureCookie)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SOURCEBOARD_SERVER_ADDR", "127.0.0.1:9999")
	t.Setenv("SOURCEBOARD_DATABASE_PATH", "/tmp/test.db")
	t.Setenv("SOURCEBOARD_AUTH_JWTSECRET", "supersecret")
	t.Setenv("SOURCEBOARD_AUTH_SESSIONTTLMINUTES", "15")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9999", cfg.Server.Addr)
	assert.Equal(t, "/tmp/test.db", cfg.Database.Path)
	assert.Equal(t, "supersecret", cfg.Auth.JWTSecret)
	assert.Equal(t, 15, cfg.Auth.SessionTTLMinutes)
}
