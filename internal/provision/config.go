// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"fmt"
	"os"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"

	"github.com/pubpages/pubpages/internal/site"
)

const (
	// PageLibrary is the library segment of every publishing page URL.
	PageLibrary = site.PageLibrary
	// PageExtension is appended to page names that lack it.
	PageExtension = ".aspx"
	// DefaultLayout is the layout reference used by scaffolded templates.
	DefaultLayout = "MyLayout"
	// DefaultPageName is the page name used by scaffolded templates.
	DefaultPageName = "Test.aspx"

	// DefaultMaxAttempts bounds the attempts of a retried remote call.
	DefaultMaxAttempts = 3
	// DefaultBaseBackoff is the delay before the first retry; it doubles per attempt.
	DefaultBaseBackoff = 500 * time.Millisecond
)

type (
	// Config holds configuration for page provisioning.
	Config struct {
		// MaxAttempts bounds the attempts made to delete a page being overwritten.
		MaxAttempts int

		// BaseBackoff is the delay before the second attempt.
		BaseBackoff time.Duration

		// RestoreHomePage points the site home page back at an overwritten page
		// once it has been re-created and published.
		RestoreHomePage bool

		// PagePatterns restricts the run to pages whose normalized name matches
		// one of the doublestar patterns. Empty selects every page.
		PagePatterns []string

		// Logger receives progress and per-page failures.
		Logger *log.Logger
	}

	// Option is a functional option for configuring a Config.
	Option func(*Config)
)

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		MaxAttempts: DefaultMaxAttempts,
		BaseBackoff: DefaultBaseBackoff,
		Logger:      log.NewWithOptions(os.Stderr, log.Options{Prefix: "publishing-pages"}),
	}
}

// WithRetry returns an Option that sets the delete retry policy.
func WithRetry(maxAttempts int, baseBackoff time.Duration) Option {
	return func(c *Config) {
		c.MaxAttempts = maxAttempts
		c.BaseBackoff = baseBackoff
	}
}

// WithRestoreHomePage returns an Option that sets RestoreHomePage on the config.
func WithRestoreHomePage(restore bool) Option {
	return func(c *Config) {
		c.RestoreHomePage = restore
	}
}

// WithPagePatterns returns an Option that sets PagePatterns on the config.
func WithPagePatterns(patterns ...string) Option {
	return func(c *Config) {
		c.PagePatterns = patterns
	}
}

// WithLogger returns an Option that sets Logger on the config.
func WithLogger(logger *log.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// Apply applies the given options to the config.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// Validate checks the page patterns.
func (c *Config) Validate() error {
	for _, pattern := range c.PagePatterns {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid page pattern %q", pattern)
		}
	}
	return nil
}

// selects reports whether a normalized page name is part of the run.
func (c *Config) selects(name string) bool {
	if len(c.PagePatterns) == 0 {
		return true
	}
	for _, pattern := range c.PagePatterns {
		if ok, _ := doublestar.Match(pattern, name); ok { //nolint:errcheck // patterns are validated up front
			return true
		}
	}
	return false
}
