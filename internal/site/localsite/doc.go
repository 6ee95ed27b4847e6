// SPDX-License-Identifier: MPL-2.0

// Package localsite implements site.Client over a directory tree.
//
// A local site is a directory holding a site.toml manifest and a page library
// directory with one TOML state file per page. The implementation enforces the
// server rules the provisioner depends on: missing files answer
// site.CodeFileNotFound, creating an existing page or deleting the home page is
// a site.CodeConflict, check-in requires a checked-out file and publishing
// requires a checked-in draft. Every page mutation checks the page out.
package localsite
