// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/pubpages/pubpages/internal/config"
	"github.com/pubpages/pubpages/internal/issue"
	"github.com/pubpages/pubpages/internal/site/localsite"
	"github.com/pubpages/pubpages/pkg/pagetemplate"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root for
	// the CLI layer; every Cobra handler receives an App reference.
	App struct {
		Config ConfigProvider
		fs     afero.Fs
		stdout io.Writer
		stderr io.Writer

		// Flag and config state, set by configure before any RunE.
		verbose     bool
		configFile  string
		cfg         *config.Config
		cfgPath     string
		logger      *log.Logger
		installSlog bool
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp.
	Dependencies struct {
		Config ConfigProvider
		Fs     afero.Fs
		Stdout io.Writer
		Stderr io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, string, error)
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Fs == nil {
		deps.Fs = afero.NewOsFs()
	}

	return &App{
		Config: deps.Config,
		fs:     deps.Fs,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
		cfg:    config.DefaultConfig(),
		logger: log.NewWithOptions(deps.Stderr, log.Options{Prefix: config.AppName}),
	}, nil
}

// configure loads the configuration and sets up logging. A configuration
// that fails to load is reported and the defaults are used.
func (a *App) configure(ctx context.Context) error {
	cfg, path, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: a.configFile})
	if err != nil {
		fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, a.verbose))
		cfg = config.DefaultConfig()
		path = ""
	}
	a.cfg = cfg
	a.cfgPath = path

	if !a.verbose {
		a.verbose = cfg.UI.Verbose
	}

	level, err := log.ParseLevel(string(cfg.Log.Level))
	if err != nil {
		level = log.InfoLevel
	}
	if a.verbose {
		level = log.DebugLevel
	}
	a.logger = log.NewWithOptions(a.stderr, log.Options{
		Prefix:          config.AppName,
		Level:           level,
		ReportTimestamp: cfg.Log.Timestamps,
	})
	if a.installSlog {
		slog.SetDefault(slog.New(a.logger))
	}
	return nil
}

// glamourStyle maps the configured color scheme to a glamour style name.
func (a *App) glamourStyle() string {
	if a.cfg != nil && a.cfg.UI.ColorScheme == config.ColorSchemeLight {
		return "light"
	}
	return "dark"
}

// fail renders the catalog entry linked to err, if any, and returns err.
func (a *App) fail(err error) error {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		if linked := ae.Issue(); linked != nil {
			if rendered, renderErr := linked.Render(a.glamourStyle()); renderErr == nil {
				fmt.Fprint(a.stderr, rendered)
			}
		}
	}
	return err
}

// loadTemplate reads and validates a template file.
func (a *App) loadTemplate(path string) (*pagetemplate.Template, error) {
	data, err := afero.ReadFile(a.fs, path)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("load template").
			WithResource(path).
			WithSuggestion("Run 'pubpages template init " + path + "' to create one").
			WithIssue(issue.TemplateNotFoundId).
			Wrap(err).
			Build()
	}
	t, err := pagetemplate.ParseBytes(data, path)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("parse template").
			WithResource(path).
			WithIssue(issue.TemplateParseErrorId).
			Wrap(err).
			Build()
	}
	return t, nil
}

// openSite opens the local site at dir, or the configured site root when dir is empty.
func (a *App) openSite(dir string) (*localsite.Site, error) {
	if dir == "" {
		dir = a.cfg.SiteRoot
	}
	s, err := localsite.Open(a.fs, dir)
	if err != nil {
		ctx := issue.NewErrorContext().
			WithOperation("open site").
			WithResource(dir).
			Wrap(err)
		if errors.Is(err, localsite.ErrNotASite) {
			ctx = ctx.WithSuggestion("Run 'pubpages site init " + dir + "' to create one").
				WithIssue(issue.SiteNotFoundId)
		}
		return nil, ctx.Build()
	}
	return s, nil
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
