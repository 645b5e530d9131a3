// Package cli implements the ring command-line interface.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ringapi/internal/config"
	"github.com/matzehuels/ringapi/pkg/observability"
	"github.com/matzehuels/ringapi/pkg/ring"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display and completions.
	appName = "ring"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	flags globalFlags
}

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	baseURL      string
	timeout      time.Duration
	pollInterval time.Duration
	envFile      string
	verbose      bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Client Factory
// =============================================================================

// loadConfig reads the environment and applies flag overrides on top.
func (c *CLI) loadConfig() (*config.Config, error) {
	var files []string
	if c.flags.envFile != "" {
		files = append(files, c.flags.envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return nil, err
	}
	if c.flags.baseURL != "" {
		cfg.BaseURL = c.flags.baseURL
	}
	if c.flags.timeout != 0 {
		cfg.Timeout = c.flags.timeout
	}
	if c.flags.pollInterval != 0 {
		cfg.PollInterval = c.flags.pollInterval
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !c.flags.verbose {
		lvl, _ := cfg.Level()
		c.SetLogLevel(lvl)
	}
	return cfg, nil
}

// newClient creates a RING client from configuration and flags. extra
// options are applied last and win over the defaults.
func (c *CLI) newClient(extra ...ring.Option) (*ring.Client, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	hooks := observability.NewLogHooks(c.Logger)
	opts := []ring.Option{
		ring.WithBaseURL(cfg.BaseURL),
		ring.WithTimeout(cfg.Timeout),
		ring.WithPollInterval(cfg.PollInterval),
		ring.WithLogger(c.Logger),
		ring.WithHTTPHooks(hooks),
		ring.WithJobHooks(hooks),
	}
	c.Logger.Debug("client configured", "base_url", cfg.BaseURL, "timeout", cfg.Timeout, "poll", cfg.PollInterval)
	return ring.New(append(opts, extra...)...)
}
