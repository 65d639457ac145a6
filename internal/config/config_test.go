package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/BuzzLyutic/task-tracker-api/internal/model"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "JWT_SECRET", "TOKEN_TTL", "SESSION_COOKIE", "BCRYPT_COST", "TASK_EXPIRATION_ON_ABSENT", "DB_MAX_CONNS"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 60*time.Minute, cfg.TokenTTL)
	assert.Equal(t, "token", cfg.SessionCookie)
	assert.Equal(t, bcrypt.DefaultCost, cfg.BcryptCost)
	assert.Equal(t, model.ExpirationClear, cfg.ExpirationOnAbsent)
	assert.Equal(t, int32(0), cfg.DBMaxConns)

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("TOKEN_TTL", "15m")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("DB_MAX_CONNS", "20")
	t.Setenv("TASK_EXPIRATION_ON_ABSENT", "keep")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.TokenTTL)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, int32(20), cfg.DBMaxConns)
	assert.Equal(t, model.ExpirationKeep, cfg.ExpirationOnAbsent)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	valid := Config{
		JWTSecret:          "s",
		TokenTTL:           time.Minute,
		BcryptCost:         bcrypt.DefaultCost,
		SessionCookie:      "token",
		ExpirationOnAbsent: model.ExpirationClear,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "zero ttl", mutate: func(c *Config) { c.TokenTTL = 0 }},
		{name: "bcrypt cost too low", mutate: func(c *Config) { c.BcryptCost = 1 }},
		{name: "empty cookie", mutate: func(c *Config) { c.SessionCookie = "" }},
		{name: "negative pool", mutate: func(c *Config) { c.DBMaxConns = -1 }},
		{name: "unknown policy", mutate: func(c *Config) { c.ExpirationOnAbsent = "forget" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
