// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/pubpages/pubpages/internal/provision"
	"github.com/pubpages/pubpages/pkg/pagetemplate"
)

func newTemplateCommand(app *App) *cobra.Command {
	templateCmd := &cobra.Command{
		Use:   "template",
		Short: "Work with page templates",
	}
	templateCmd.AddCommand(newTemplateInitCommand(app), newTemplateValidateCommand(app))
	return templateCmd
}

// scaffoldTemplate is the template written by 'template init'.
func scaffoldTemplate(id string) *pagetemplate.Template {
	t := pagetemplate.New(id)
	t.Version = 1
	t.PublishingPages.Add(pagetemplate.NewPublishingPage(
		provision.DefaultPageName,
		provision.DefaultLayout,
		false,
		[]pagetemplate.WebPart{{
			Title:    "Welcome",
			Contents: "<webParts><title>Welcome to {sitetitle}</title></webParts>",
			Zone:     "Header",
		}},
		nil,
		nil,
	))
	return t
}

func newTemplateInitCommand(app *App) *cobra.Command {
	var force bool
	var id string

	cmd := &cobra.Command{
		Use:   "init FILE",
		Short: "Write a starter template",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path := args[0]
			if exists, err := afero.Exists(app.fs, path); err != nil {
				return err
			} else if exists && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			data, err := pagetemplate.Encode(scaffoldTemplate(id))
			if err != nil {
				return err
			}
			if err := afero.WriteFile(app.fs, path, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			fmt.Fprintln(app.stdout, SuccessStyle.Render("Created template ")+CmdStyle.Render(path))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	cmd.Flags().StringVar(&id, "id", "pages", "template id")

	return cmd
}

func newTemplateValidateCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a template against the template schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			t, err := app.loadTemplate(args[0])
			if err != nil {
				return app.fail(err)
			}
			fmt.Fprintf(app.stdout, "%s %s (%d page(s))\n", SuccessStyle.Render("Valid template"), CmdStyle.Render(t.ID), t.PublishingPages.Len())
			return nil
		},
	}
}
