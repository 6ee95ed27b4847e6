// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pubpages/pubpages/internal/issue"
	"github.com/pubpages/pubpages/internal/provision"
	"github.com/pubpages/pubpages/internal/watch"
)

type pageFlags struct {
	siteDir         string
	pages           []string
	restoreHomePage bool
}

func (f *pageFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.siteDir, "site", "", "site directory (default is site_root from the config)")
	cmd.Flags().StringSliceVar(&f.pages, "page", nil, "only process pages matching this glob (repeatable)")
}

func newApplyCommand(app *App) *cobra.Command {
	var (
		flags       pageFlags
		watchMode   bool
		watchPeriod time.Duration
	)

	cmd := &cobra.Command{
		Use:   "apply TEMPLATE",
		Short: "Create, replace and publish the pages of a template",
		Long: `Apply reconciles the site with the publishing pages of TEMPLATE.

Missing pages are created. Existing pages are replaced when their
overwrite flag is set and left in place otherwise. Declared web parts
that are not attached yet are added, then every page is checked in and
published.

With --watch the template is applied again every time it changes,
until interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			restore := app.cfg.RestoreHomePage
			if cmd.Flags().Changed("restore-home-page") {
				restore = flags.restoreHomePage
			}
			if watchMode {
				return app.watchApply(cmd.Context(), args[0], watchPeriod, func(ctx context.Context) error {
					return app.runApply(ctx, args[0], flags, restore)
				})
			}
			return app.fail(app.runApply(cmd.Context(), args[0], flags, restore))
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&flags.restoreHomePage, "restore-home-page", false, "point the home page back at an overwritten home page")
	cmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "apply again whenever the template changes")
	cmd.Flags().DurationVar(&watchPeriod, "debounce", watch.DefaultDebounce, "quiet period before a change is applied")

	return cmd
}

// provisioner builds the page provisioner from the loaded configuration.
func (a *App) provisioner(flags pageFlags, restore bool) *provision.PublishingPages {
	cfg := provision.DefaultConfig()
	cfg.Apply(
		provision.WithRetry(a.cfg.Retry.MaxAttempts, a.cfg.Retry.BaseBackoff),
		provision.WithRestoreHomePage(restore),
		provision.WithPagePatterns(flags.pages...),
		provision.WithLogger(a.logger.WithPrefix("publishing-pages")),
	)
	return provision.NewPublishingPages(cfg)
}

func (a *App) runApply(ctx context.Context, templatePath string, flags pageFlags, restore bool) error {
	t, err := a.loadTemplate(templatePath)
	if err != nil {
		return err
	}
	s, err := a.openSite(flags.siteDir)
	if err != nil {
		return err
	}

	p := a.provisioner(flags, restore)
	if !p.WillProvision(t) {
		a.logger.Info("template has no publishing pages", "template", templatePath)
		return nil
	}

	result, err := p.Provision(ctx, s, t, nil)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("apply template").
			WithResource(templatePath).
			WithIssue(classifyError(err)).
			Wrap(err).
			Build()
	}

	renderReport(a.stdout, result.Report, a.verbose)

	failures := result.Report.Failures()
	if len(failures) == 0 {
		return nil
	}
	ec := issue.NewErrorContext().
		WithOperation("apply template").
		WithResource(templatePath).
		WithSuggestion("Run with --verbose to see the error of each failed page").
		WithIssue(classifyError(failures[0].Err))
	for _, o := range failures {
		cause := o.Err
		var pe *provision.PageError
		if errors.As(o.Err, &pe) {
			cause = pe.Err
		}
		ec.WithPageFailure(o.Page, string(o.Stage()), cause)
	}
	return &ExitError{Code: 1, Err: ec.Build()}
}

// watchApply applies once, then again on every change of templatePath until ctx
// is cancelled. Failed runs are reported and do not stop the watch.
func (a *App) watchApply(ctx context.Context, templatePath string, debounce time.Duration, apply func(context.Context) error) error {
	report := func(err error) {
		if err != nil {
			fmt.Fprintln(a.stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, a.verbose))
		}
	}
	report(apply(ctx))

	w, err := watch.New(watch.Config{
		Files:    []string{templatePath},
		Debounce: debounce,
		Logger:   a.logger.WithPrefix("watch"),
		OnChange: func(ctx context.Context, _ []string) error {
			a.logger.Info("template changed, applying", "template", templatePath)
			report(apply(ctx))
			return nil
		},
	})
	if err != nil {
		return err
	}
	a.logger.Info("watching for changes", "template", templatePath)
	return w.Run(ctx)
}
