// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pubpages/pubpages/internal/config"
)

// newConfigCommand creates the `pubpages config` command tree.
// show and dump print the configuration loaded before the command ran.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage pubpages configuration",
		Long: `Manage pubpages configuration.

Configuration is stored in:
  - Linux: ~/.config/pubpages/config.cue
  - macOS: ~/Library/Application Support/pubpages/config.cue
  - Windows: %APPDATA%\pubpages\config.cue

Every key can be overridden from the environment with the PUBPAGES_
prefix, for example PUBPAGES_RETRY_MAX_ATTEMPTS=5.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			showConfig(app)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return initConfig(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			path, err := configPath(app)
			if err != nil {
				return err
			}
			fmt.Fprintln(app.stdout, path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output raw configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			fmt.Fprint(app.stdout, config.GenerateCUE(app.cfg))
			return nil
		},
	})

	return cfgCmd
}

func configPath(app *App) (string, error) {
	if app.configFile != "" {
		return app.configFile, nil
	}
	return config.DefaultConfigPath("")
}

func showConfig(app *App) {
	cfg := app.cfg
	w := app.stdout
	row := func(key, value string) {
		fmt.Fprintf(w, "%s %s\n", columnStyle.Render(CmdStyle.Render(key)), SuccessStyle.Render(value))
	}

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)
	if app.cfgPath != "" {
		fmt.Fprintf(w, "%s %s\n", columnStyle.Render(CmdStyle.Render("config file")), app.cfgPath)
	} else {
		fmt.Fprintf(w, "%s %s\n", columnStyle.Render(CmdStyle.Render("config file")), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(w)

	row("site_root", cfg.SiteRoot)
	row("restore_home_page", fmt.Sprint(cfg.RestoreHomePage))
	row("retry.max_attempts", fmt.Sprint(cfg.Retry.MaxAttempts))
	row("retry.base_backoff", cfg.Retry.BaseBackoff.String())
	row("log.level", string(cfg.Log.Level))
	row("log.timestamps", fmt.Sprint(cfg.Log.Timestamps))
	row("ui.color_scheme", string(cfg.UI.ColorScheme))
	row("ui.verbose", fmt.Sprint(cfg.UI.Verbose))
}

func initConfig(app *App) error {
	path, err := configPath(app)
	if err != nil {
		return err
	}
	created, err := config.CreateDefaultConfig(path)
	if err != nil {
		return err
	}
	if !created {
		fmt.Fprintln(app.stdout, WarningStyle.Render("Config file already exists: ")+path)
		return nil
	}
	fmt.Fprintln(app.stdout, SuccessStyle.Render("Created config file: ")+path)
	return nil
}
