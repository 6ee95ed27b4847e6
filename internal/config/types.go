// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// LogLevel is the minimum level of log messages written to stderr.
	LogLevel string

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// SiteRoot is the local site directory used when no --site flag is given.
		SiteRoot string `json:"site_root" mapstructure:"site_root"`
		// RestoreHomePage points the home page back at an overwritten page.
		RestoreHomePage bool `json:"restore_home_page" mapstructure:"restore_home_page"`
		// Retry configures retries of page deletes.
		Retry RetryConfig `json:"retry" mapstructure:"retry"`
		// Log configures the logger.
		Log LogConfig `json:"log" mapstructure:"log"`
		// UI contains user interface settings
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// RetryConfig configures retries of transient site failures.
	RetryConfig struct {
		MaxAttempts int           `json:"max_attempts" mapstructure:"max_attempts"`
		BaseBackoff time.Duration `json:"base_backoff" mapstructure:"base_backoff"`
	}

	// LogConfig configures logging.
	LogConfig struct {
		Level      LogLevel `json:"level" mapstructure:"level"`
		Timestamps bool     `json:"timestamps" mapstructure:"timestamps"`
	}

	// UIConfig contains UI-related configuration.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		SiteRoot:        "site",
		RestoreHomePage: false,
		Retry: RetryConfig{
			MaxAttempts: 3,
			BaseBackoff: 500 * time.Millisecond,
		},
		Log: LogConfig{
			Level: LogLevelInfo,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
	}
}

// IsValid reports whether the color scheme is recognized.
func (c ColorScheme) IsValid() (bool, []error) {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{fmt.Errorf("%w: %q", ErrInvalidColorScheme, string(c))}
	}
}

// IsValid reports whether the log level is recognized.
func (l LogLevel) IsValid() (bool, []error) {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true, nil
	default:
		return false, []error{fmt.Errorf("%w: %q", ErrInvalidLogLevel, string(l))}
	}
}

// IsValid checks the values that environment overrides can bypass the schema for.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if strings.TrimSpace(c.SiteRoot) == "" {
		errs = append(errs, errors.New("site_root must not be empty"))
	}
	if c.Retry.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("retry.max_attempts must be at least 1, got %d", c.Retry.MaxAttempts))
	}
	if c.Retry.BaseBackoff < 0 {
		errs = append(errs, fmt.Errorf("retry.base_backoff must not be negative, got %s", c.Retry.BaseBackoff))
	}
	if valid, fieldErrs := c.Log.Level.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s): %v", len(e.FieldErrors), errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }
