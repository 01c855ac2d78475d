package vaultprint

import (
	"time"

	"github.com/hashicorp/go-hclog"
)

// printerConfig holds internal configuration for a Printer.
type printerConfig struct {
	chromePath   string
	timeout      time.Duration
	noSandbox    bool
	autoDownload bool
	logger       hclog.Logger
}

func defaultConfig() printerConfig {
	return printerConfig{
		timeout: 30 * time.Second,
		logger:  hclog.NewNullLogger(),
	}
}

// Option configures a [Printer].
type Option func(*printerConfig)

// WithChromePath sets the Chrome or Chromium executable. Without it the
// browser is looked up in the usual install locations.
func WithChromePath(path string) Option {
	return func(c *printerConfig) {
		c.chromePath = path
	}
}

// WithTimeout bounds a single print or theme lookup. Defaults to 30 seconds;
// zero or less disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *printerConfig) {
		c.timeout = d
	}
}

// WithNoSandbox disables the Chrome sandbox, which is needed when running
// as root (Docker, CI).
func WithNoSandbox() Option {
	return func(c *printerConfig) {
		c.noSandbox = true
	}
}

// WithAutoDownload fetches a pinned Chromium build into the user cache when
// no explicit path is configured. It is ignored if [WithChromePath] is set.
func WithAutoDownload() Option {
	return func(c *printerConfig) {
		c.autoDownload = true
	}
}

// WithLogger sets the logger for browser lifecycle messages.
func WithLogger(l hclog.Logger) Option {
	return func(c *printerConfig) {
		if l != nil {
			c.logger = l
		}
	}
}
