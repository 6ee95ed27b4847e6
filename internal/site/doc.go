// SPDX-License-Identifier: MPL-2.0

// Package site defines the capabilities the provisioner needs from a remote
// publishing site, and the classification of the errors such a site returns.
//
// Client is implemented by internal/site/localsite for sites kept on disk;
// tests use hand-written mocks. Remote failures are reported as *ServerError,
// whose Code separates "file not found" from every other failure so callers
// never mistake a permission or throttling error for absence.
package site
