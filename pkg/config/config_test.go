package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ciphermind/ciphermind/pkg/model"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/vault")
	t.Setenv("CIPHERMIND_DATA_KEY", "a2V5")
	t.Setenv("CIPHERMIND_CONFIG", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.StoreTimeout)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ciphermind.yml")
	require.NoError(t, os.WriteFile(path, []byte("port: \"9000\"\nlog_level: debug\ntoken_ttl: 1h\n"), 0o600))

	t.Setenv("CIPHERMIND_CONFIG", path)
	t.Setenv("DATABASE_URL", "postgres://localhost/vault")
	t.Setenv("CIPHERMIND_DATA_KEY", "a2V5")
	t.Setenv("PORT", "7000")

	cfg, err := Load()
	require.NoError(t, err)

	// The environment wins over the file, the file over defaults.
	assert.Equal(t, "7000", cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Setenv("CIPHERMIND_CONFIG", filepath.Join(t.TempDir(), "nope.yml"))
	t.Setenv("DATABASE_URL", "postgres://localhost/vault")
	t.Setenv("CIPHERMIND_DATA_KEY", "a2V5")

	_, err := Load()
	assert.ErrorIs(t, err, model.ErrConfig)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		cfg := newDefault()
		cfg.DatabaseURL = "postgres://localhost/vault"
		cfg.DataKey = "a2V5"
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{name: "valid", mutate: func(*Config) {}, ok: true},
		{name: "missing database", mutate: func(c *Config) { c.DatabaseURL = "" }},
		{name: "missing key", mutate: func(c *Config) { c.DataKey = "" }},
		{name: "ephemeral key stands in for data key", mutate: func(c *Config) {
			c.DataKey = ""
			c.EphemeralKey = true
		}, ok: true},
		{name: "zero ttl", mutate: func(c *Config) { c.TokenTTL = 0 }},
		{name: "negative store timeout", mutate: func(c *Config) { c.StoreTimeout = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, model.ErrConfig)
			}
		})
	}
}
