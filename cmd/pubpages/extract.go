// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/pubpages/pubpages/pkg/pagetemplate"
)

func newExtractCommand(app *App) *cobra.Command {
	var basePath, output string

	cmd := &cobra.Command{
		Use:   "extract TEMPLATE",
		Short: "Drop pages that are unchanged from a base template",
		Long: `Extract removes from TEMPLATE every publishing page equal to a page of
the base template and writes the result. Page layouts are ignored when
comparing. Without --base the template is written unchanged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.loadTemplate(args[0])
			if err != nil {
				return app.fail(err)
			}
			var base *pagetemplate.Template
			if basePath != "" {
				if base, err = app.loadTemplate(basePath); err != nil {
					return app.fail(err)
				}
			}

			p := app.provisioner(pageFlags{}, false)
			app.logger.Debug("extracting", "provisioner", p.Name(), "reads site", p.WillExtract(t))
			before := t.PublishingPages.Len()
			t, err = p.Extract(cmd.Context(), t, base)
			if err != nil {
				return err
			}

			data, err := pagetemplate.Encode(t)
			if err != nil {
				return err
			}
			if output == "" {
				_, err = app.stdout.Write(data)
				return err
			}
			if err := afero.WriteFile(app.fs, output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			app.logger.Info("template extracted", "output", output, "kept", t.PublishingPages.Len(), "dropped", before-t.PublishingPages.Len())
			return nil
		},
	}
	cmd.Flags().StringVar(&basePath, "base", "", "base template to compare against")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the result to this file instead of stdout")

	return cmd
}
