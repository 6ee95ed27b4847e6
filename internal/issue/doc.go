// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError names the failed command step and the template or site it
// worked on. Apply failures also list each failed page with the reconciliation
// stage it stopped at. Well-known failures link to an Issue, a Markdown help
// page rendered with glamour by the CLI.
package issue
