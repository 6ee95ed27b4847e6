// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pubpages/pubpages/internal/issue"
)

func newPlanCommand(app *App) *cobra.Command {
	var flags pageFlags

	cmd := &cobra.Command{
		Use:   "plan TEMPLATE",
		Short: "Show what apply would do without changing the site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.fail(app.runPlan(cmd, args[0], flags))
		},
	}
	flags.register(cmd)

	return cmd
}

func (a *App) runPlan(cmd *cobra.Command, templatePath string, flags pageFlags) error {
	t, err := a.loadTemplate(templatePath)
	if err != nil {
		return err
	}
	s, err := a.openSite(flags.siteDir)
	if err != nil {
		return err
	}

	plan, err := a.provisioner(flags, false).Plan(cmd.Context(), s, t, nil)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("plan template").
			WithResource(templatePath).
			WithIssue(classifyError(err)).
			Wrap(err).
			Build()
	}

	info, err := s.Info(cmd.Context())
	if err != nil {
		return err
	}
	renderPlan(a.stdout, info.ServerRelativeURL, plan, a.verbose)
	return nil
}
