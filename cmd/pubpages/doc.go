// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for pubpages.
//
// Commands are built by NewRootCommand around an App, the composition root that
// holds the configuration provider, the filesystem used for templates and local
// sites, and the output writers. Command handlers return errors instead of
// exiting; Execute maps an *ExitError to the process exit code.
package cmd
