package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// CredentialsDirName is the directory under the home directory where NEAR tooling keeps key files.
const CredentialsDirName = ".near-credentials"

// Config contains all configuration parameters loaded from the environment.
// Command line flags take precedence over these values.
type Config struct {
	LogLevel        uint32        `envconfig:"LOG_LEVEL" default:"4"`
	Network         string        `envconfig:"NEAR_ENV"`
	CredentialsHome string        `envconfig:"NEAR_CREDENTIALS_HOME"`
	RPCURL          string        `envconfig:"NEAR_RPC_URL"`
	PollInterval    time.Duration `envconfig:"POLL_INTERVAL" default:"2s"`
	PollTimeout     time.Duration `envconfig:"POLL_TIMEOUT" default:"60s"`
	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`
}

var cfg *Config

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return nil, errors.WithMessage(err, "failed to process config")
	}

	if c.CredentialsHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.WithMessage(err, "failed to get home directory")
		}
		c.CredentialsHome = filepath.Join(home, CredentialsDirName)
	}

	if c.PollInterval <= 0 {
		return nil, errors.Errorf("POLL_INTERVAL should be positive, got %v", c.PollInterval)
	}

	if c.PollTimeout <= 0 {
		return nil, errors.Errorf("POLL_TIMEOUT should be positive, got %v", c.PollTimeout)
	}

	return c, nil
}

// Init loads the global configuration instance.
func Init() error {
	c, err := Load()
	if err != nil {
		return err
	}

	cfg = c

	return nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}
