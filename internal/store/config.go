package store

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Credentials are loaded once from the environment and are immutable
// for the process lifetime.
type Credentials struct {
	APIKey        string
	ClientCode    string
	Password      string
	TOTPSeed      string
	CorrelationID string
}

type Config struct {
	BaseURL            string `yaml:"base_url"`
	Exchange           string `yaml:"exchange"`
	TimeoutSeconds     int    `yaml:"timeout_seconds"`
	DefaultSymbolToken string `yaml:"default_symbol_token"`
	MetricsAddr        string `yaml:"metrics_addr"`

	Credentials Credentials `yaml:"-"`
}

func (c *Config) Validate() error {
	if c.Credentials.APIKey == "" {
		return errors.New("api_key environment variable is required")
	}
	if c.Credentials.ClientCode == "" {
		return errors.New("username environment variable is required")
	}
	if c.Credentials.Password == "" {
		return errors.New("pwd environment variable is required")
	}
	if c.Credentials.TOTPSeed == "" {
		return errors.New("token environment variable is required")
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive, got %d", c.TimeoutSeconds)
	}
	return nil
}

// LoadConfig reads the optional YAML file, applies defaults, and pulls
// credentials from the environment. A missing config file is not an
// error; credentials alone are enough to run.
func LoadConfig(path string) (*Config, error) {
	var c Config

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// defaults only
	default:
		return nil, err
	}

	if c.BaseURL == "" {
		c.BaseURL = "https://apiconnect.angelone.in"
	}
	if c.Exchange == "" {
		c.Exchange = "NSE"
	}
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = 30
	}
	if c.DefaultSymbolToken == "" {
		c.DefaultSymbolToken = "3045"
	}

	c.Credentials = Credentials{
		APIKey:        os.Getenv("api_key"),
		ClientCode:    os.Getenv("username"),
		Password:      os.Getenv("pwd"),
		TOTPSeed:      os.Getenv("token"),
		CorrelationID: os.Getenv("correlation_id"),
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}
