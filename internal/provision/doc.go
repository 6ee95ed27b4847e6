// SPDX-License-Identifier: MPL-2.0

// Package provision reconciles the publishing pages of a template against a
// site.
//
// The main entry point is the Provisioner interface, implemented by
// PublishingPages:
//
//	pages := provision.NewPublishingPages(cfg)
//	result, err := pages.Provision(ctx, client, tmpl, nil)
//	// err is non-nil only when the run could not start (for example the site
//	// is not a publishing site); per-page failures are in result.Report.
//
// Pages are processed one at a time in template order. For each page the name
// is normalized, existence is probed, the page is created, overwritten or left
// alone, declared web parts missing from the page are attached, and the page is
// checked in and published. A failing page is recorded in the report and the
// run continues with the next one.
package provision
