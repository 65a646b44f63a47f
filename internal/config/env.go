package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config contains all configuration parameters for the application.
// Private keys are never part of the configuration: they come from a credential provider at runtime.
type Config struct {
	Port string `envconfig:"PORT" default:"8080"`

	WalletAPIURL     string        `envconfig:"WALLET_API_URL" default:"http://localhost:5000"`
	WalletAPITimeout time.Duration `envconfig:"WALLET_API_TIMEOUT" default:"10s"`

	BreakerMaxFailures uint32        `envconfig:"BREAKER_MAX_FAILURES" default:"5"`
	BreakerOpenTimeout time.Duration `envconfig:"BREAKER_OPEN_TIMEOUT" default:"30s"`

	TransferCooldown time.Duration `envconfig:"TRANSFER_COOLDOWN" default:"0s"`
	SessionTTL       time.Duration `envconfig:"SESSION_TTL" default:"30m"`

	PriceFeedEnabled bool   `envconfig:"PRICE_FEED_ENABLED" default:"false"`
	PriceFeedURL     string `envconfig:"PRICE_FEED_URL" default:"https://api.coingecko.com/api/v3"`

	KeyFilePath string `envconfig:"KEYFILE_PATH"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`
	LogDev    bool   `envconfig:"LOG_DEV" default:"false"`
}

// cfg is the global configuration instance
var cfg *Config

// Load reads an optional .env file and then the process environment.
// Variables already present in the environment win over the .env file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks values envconfig cannot express as tags.
func (c *Config) Validate() error {
	if c.WalletAPIURL == "" {
		return errors.New("WALLET_API_URL must not be empty")
	}
	if c.WalletAPITimeout <= 0 {
		return errors.New("WALLET_API_TIMEOUT must be positive")
	}
	if c.BreakerMaxFailures == 0 {
		return errors.New("BREAKER_MAX_FAILURES must be at least 1")
	}
	if c.TransferCooldown < 0 {
		return errors.New("TRANSFER_COOLDOWN must not be negative")
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	return nil
}

// Init loads configuration into the global instance.
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

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// GetWalletAPIURL returns the WalletService base URL from configuration
func GetWalletAPIURL() string {
	return Get().WalletAPIURL
}

// GetKeyFilePath returns path to the encrypted .cwt keyfile, empty when unset
func GetKeyFilePath() string {
	return Get().KeyFilePath
}
