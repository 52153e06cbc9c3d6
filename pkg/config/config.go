package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/ciphermind/ciphermind/pkg/model"
)

// DefaultConfigPath is where Load looks for an optional YAML config
// file when CIPHERMIND_CONFIG is unset.
const DefaultConfigPath = "/etc/ciphermind/ciphermind.yml"

// Config holds every runtime setting of the vault server. Values are
// resolved in precedence order: environment variables override the
// config file, which overrides built-in defaults.
type Config struct {
	// DatabaseURL is the PostgreSQL connection string. Required.
	DatabaseURL string `env:"DATABASE_URL" yaml:"database_url"`

	// DataKey is the base64-encoded master key material secrets are
	// encrypted with. Required unless EphemeralKey is set.
	DataKey string `env:"CIPHERMIND_DATA_KEY" yaml:"-"`

	// EphemeralKey generates a throwaway master key at startup. All
	// stored secrets become unreadable on restart; development only.
	EphemeralKey bool `env:"CIPHERMIND_EPHEMERAL_KEY" yaml:"ephemeral_key"`

	// TokenTTL bounds session token lifetime.
	TokenTTL time.Duration `env:"CIPHERMIND_TOKEN_TTL" yaml:"token_ttl"`

	// BindAddress and Port form the HTTP listen address.
	BindAddress string `env:"CIPHERMIND_BIND_ADDRESS" yaml:"bind_address"`
	Port        string `env:"PORT" yaml:"port"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"CIPHERMIND_LOG_LEVEL" yaml:"log_level"`

	// StoreTimeout bounds each database operation.
	StoreTimeout time.Duration `env:"CIPHERMIND_STORE_TIMEOUT" yaml:"store_timeout"`
}

func newDefault() Config {
	return Config{
		TokenTTL:     8 * time.Hour,
		BindAddress:  "0.0.0.0",
		Port:         "8080",
		LogLevel:     "info",
		StoreTimeout: 5 * time.Second,
	}
}

// Load resolves the configuration from defaults, the optional YAML
// file and the environment, then validates it.
func Load() (*Config, error) {
	cfg := newDefault()

	path := os.Getenv("CIPHERMIND_CONFIG")
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath
	}
	if err := loadFile(&cfg, path, explicit); err != nil {
		return nil, err
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadFile overlays cfg with the YAML file at path. A missing file is
// only an error when the operator named it explicitly.
func loadFile(cfg *Config, path string, explicit bool) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: read config file %s: %v", model.ErrConfig, path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("%w: parse config file %s: %v", model.ErrConfig, path, err)
	}
	return nil
}

// Validate checks settings the server cannot start without.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("%w: DATABASE_URL is required", model.ErrConfig)
	}
	if c.DataKey == "" && !c.EphemeralKey {
		return fmt.Errorf("%w: CIPHERMIND_DATA_KEY is required (or set CIPHERMIND_EPHEMERAL_KEY=true for a throwaway key)", model.ErrConfig)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("%w: token TTL must be positive", model.ErrConfig)
	}
	if c.StoreTimeout <= 0 {
		return fmt.Errorf("%w: store timeout must be positive", model.ErrConfig)
	}
	return nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return c.BindAddress + ":" + c.Port
}
