// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the command tree bound to app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pubpages",
		Short: "Reconcile publishing pages with a site",
		Long: TitleStyle.Render("pubpages") + SubtitleStyle.Render(" - Reconcile publishing pages with a site") + `

pubpages applies a page template to a publishing site. Each page is
created, replaced or left alone according to its overwrite flag, then
its web parts are attached and the page is checked in and published.

Templates and configuration are written in CUE.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Create a site:       pubpages site init site --url /sites/news
  2. Create a template:   pubpages template init pages.cue
  3. Preview the changes: pubpages plan pages.cue
  4. Apply them:          pubpages apply pages.cue

` + SubtitleStyle.Render("Examples:") + `
  pubpages apply pages.cue --page 'Home*'   Apply only matching pages
  pubpages extract current.cue --base base.cue
  pubpages config show                      Show current configuration`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.configure(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.configFile, "config", "", "config file (default is $HOME/.config/pubpages/config.cue)")

	rootCmd.AddCommand(
		newApplyCommand(app),
		newPlanCommand(app),
		newExtractCommand(app),
		newSiteCommand(app),
		newTemplateCommand(app),
		newConfigCommand(app),
	)

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI. This is called by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+err.Error())
		os.Exit(1)
	}
	app.installSlog = true

	// fang overrides rootCmd.Version, so the version goes through WithVersion.
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
