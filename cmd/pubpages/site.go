// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pubpages/pubpages/internal/site/localsite"
)

func newSiteCommand(app *App) *cobra.Command {
	siteCmd := &cobra.Command{
		Use:   "site",
		Short: "Manage local publishing sites",
	}
	siteCmd.AddCommand(newSiteInitCommand(app), newSiteLayoutsCommand(app))
	return siteCmd
}

func newSiteInitCommand(app *App) *cobra.Command {
	var desc localsite.InitOptions

	cmd := &cobra.Command{
		Use:   "init [DIR]",
		Short: "Create a site with the default layout catalog",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			dir := app.cfg.SiteRoot
			if len(args) == 1 {
				dir = args[0]
			}
			if _, err := localsite.Init(app.fs, dir, desc); err != nil {
				return err
			}
			fmt.Fprintln(app.stdout, SuccessStyle.Render("Created site at ")+CmdStyle.Render(dir))
			return nil
		},
	}
	cmd.Flags().StringVar(&desc.URL, "url", "/", "server-relative URL of the site")
	cmd.Flags().StringVar(&desc.Title, "title", "", "site title")
	cmd.Flags().BoolVar(&desc.NonPublishing, "non-publishing", false, "create the site without publishing enabled")

	return cmd
}

func newSiteLayoutsCommand(app *App) *cobra.Command {
	var siteDir string

	cmd := &cobra.Command{
		Use:   "layouts",
		Short: "List the page layouts of a site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := app.openSite(siteDir)
			if err != nil {
				return app.fail(err)
			}
			records, err := s.PageLayouts(cmd.Context())
			if err != nil {
				return err
			}
			renderLayouts(app.stdout, records)
			return nil
		},
	}
	cmd.Flags().StringVar(&siteDir, "site", "", "site directory (default is site_root from the config)")

	return cmd
}
