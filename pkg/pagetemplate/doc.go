// SPDX-License-Identifier: MPL-2.0

// Package pagetemplate defines the declarative description of publishing pages.
//
// A Template owns an ordered PageCollection of PublishingPage values. Each page
// names its layout, whether an existing page may be overwritten, the web parts
// that must be attached to it, an optional security descriptor and custom field
// values. Templates are written in CUE and validated against an embedded schema:
//
//	tmpl, err := pagetemplate.Parse("pages.cue")
//	for _, page := range tmpl.PublishingPages.Pages() {
//		fmt.Println(page.Name, page.Layout)
//	}
//
// The model is pure data. Provisioning lives in internal/provision.
package pagetemplate
