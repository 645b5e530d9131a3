// Package config loads client settings from the environment.
//
// Values come from, in increasing precedence: struct defaults, a .env file,
// and process environment variables. Command-line flags are applied on top by
// the caller.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/creasty/defaults"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/matzehuels/ringapi/pkg/errors"
)

// Config holds the client-level options.
type Config struct {
	BaseURL      string        `mapstructure:"RING_BASE_URL" default:"http://protein.bio.unipd.it/ringws"`
	Timeout      time.Duration `mapstructure:"RING_TIMEOUT" default:"30s"`
	PollInterval time.Duration `mapstructure:"RING_POLL_INTERVAL" default:"5s"`
	LogLevel     string        `mapstructure:"RING_LOG_LEVEL" default:"info"`
}

// Load reads the configuration. envFiles are passed to godotenv; with none
// given, ./.env is read when it exists. Variables already set in the
// environment are never overridden by a file.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		if len(envFiles) > 0 || !os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeInvalidParameter, err, "load env file")
		}
	}

	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "set config defaults")
	}

	v := viper.NewWithOptions(viper.ExperimentalBindStruct())
	v.AutomaticEnv()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidParameter, err, "decode environment")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field.
func (c *Config) Validate() error {
	if err := errors.ValidateURL(c.BaseURL); err != nil {
		return err
	}
	if c.Timeout < 0 {
		return errors.InvalidParameter("timeout", "must not be negative, got %s", c.Timeout)
	}
	if c.PollInterval <= 0 {
		return errors.InvalidParameter("poll_interval", "must be positive, got %s", c.PollInterval)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the parsed log level.
func (c *Config) Level() (log.Level, error) {
	lvl, err := log.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return 0, errors.InvalidParameter("log_level", "%q is not a log level", c.LogLevel)
	}
	return lvl, nil
}
