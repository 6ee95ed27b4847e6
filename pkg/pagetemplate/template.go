// SPDX-License-Identifier: MPL-2.0

package pagetemplate

import "maps"

// Template is a provisioning template carrying publishing pages.
type Template struct {
	// ID identifies the template in logs and reports.
	ID string
	// Version is an informational template version.
	Version float64
	// Parameters feed {parameter:<name>} tokens during provisioning.
	Parameters map[string]string
	// PublishingPages is the ordered page collection owned by this template.
	PublishingPages *PageCollection
}

// New returns an empty template with the given id.
func New(id string) *Template {
	t := &Template{
		ID:         id,
		Parameters: make(map[string]string),
	}
	t.PublishingPages = newPageCollection(t)
	return t
}

// Clone returns a copy of the template whose page collection holds copies of
// the original pages.
func (t *Template) Clone() *Template {
	out := New(t.ID)
	out.Version = t.Version
	out.Parameters = maps.Clone(t.Parameters)
	if out.Parameters == nil {
		out.Parameters = make(map[string]string)
	}
	for _, page := range t.PublishingPages.Pages() {
		out.PublishingPages.Add(page.Clone())
	}
	return out
}
