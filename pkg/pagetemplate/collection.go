// SPDX-License-Identifier: MPL-2.0

package pagetemplate

import "slices"

// PageCollection is the ordered list of pages of one template.
// Duplicate names are allowed; deciding between them is up to the caller.
type PageCollection struct {
	parent *Template
	items  []*PublishingPage
}

func newPageCollection(parent *Template) *PageCollection {
	return &PageCollection{parent: parent}
}

// Add appends pages and binds them to the collection's template.
func (c *PageCollection) Add(pages ...*PublishingPage) {
	for _, page := range pages {
		if page == nil {
			continue
		}
		page.setParent(c.parent)
		c.items = append(c.items, page)
	}
}

// Pages returns the pages in collection order. The slice is a copy; the pages are not.
func (c *PageCollection) Pages() []*PublishingPage {
	return slices.Clone(c.items)
}

// Len returns the number of pages.
func (c *PageCollection) Len() int {
	return len(c.items)
}

// RemoveFunc removes every page for which drop returns true, detaching it from
// the template, and returns how many were removed.
func (c *PageCollection) RemoveFunc(drop func(*PublishingPage) bool) int {
	kept := c.items[:0]
	removed := 0
	for _, page := range c.items {
		if drop(page) {
			page.setParent(nil)
			removed++
			continue
		}
		kept = append(kept, page)
	}
	clear(c.items[len(kept):])
	c.items = kept
	return removed
}
