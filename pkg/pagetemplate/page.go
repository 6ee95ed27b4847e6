// SPDX-License-Identifier: MPL-2.0

package pagetemplate

import (
	"fmt"
	"maps"
	"slices"

	"github.com/mitchellh/hashstructure"
)

// PublishingPage is the declarative description of one publishing page.
type PublishingPage struct {
	// Name is the page file name. The provisioner resolves tokens in it and
	// appends the page extension, writing the result back here.
	Name string
	// Layout references a page layout by title or display name.
	Layout string
	// Overwrite replaces an existing page of the same name when true.
	Overwrite bool
	// WebParts are attached to the page in declaration order.
	WebParts []WebPart
	// Fields holds custom field values keyed by field name.
	Fields map[string]string

	security *ObjectSecurity
	parent   *Template
}

// pageIdentity is the subset of a page that takes part in equality and hashing.
// Layout is not part of page identity.
type pageIdentity struct {
	Name      string
	Overwrite bool
	WebParts  []WebPart
	Security  *ObjectSecurity
	Fields    map[string]string
}

// NewPublishingPage builds a page. security and fields may be nil.
func NewPublishingPage(name, layout string, overwrite bool, webParts []WebPart, security *ObjectSecurity, fields map[string]string) *PublishingPage {
	p := &PublishingPage{
		Name:      name,
		Layout:    layout,
		Overwrite: overwrite,
		WebParts:  slices.Clone(webParts),
		Fields:    make(map[string]string),
	}
	if fields != nil {
		p.Fields = fields
	}
	if security != nil {
		p.SetSecurity(security)
	}
	return p
}

// Security returns the page's security descriptor, or nil.
func (p *PublishingPage) Security() *ObjectSecurity {
	return p.security
}

// SetSecurity replaces the security descriptor. The previous descriptor is
// detached from the template before the new one is attached.
func (p *PublishingPage) SetSecurity(security *ObjectSecurity) {
	if p.security != nil {
		p.security.parent = nil
	}
	p.security = security
	if p.security != nil {
		p.security.parent = p.parent
	}
}

// ParentTemplate returns the template whose collection holds this page.
func (p *PublishingPage) ParentTemplate() *Template {
	return p.parent
}

func (p *PublishingPage) setParent(t *Template) {
	p.parent = t
	if p.security != nil {
		p.security.parent = t
	}
}

// Equal reports whether two pages have the same name, overwrite flag, web parts
// (order-sensitive), security and fields. Layout is not compared.
func (p *PublishingPage) Equal(other *PublishingPage) bool {
	if p == nil || other == nil {
		return p == nil && other == nil
	}
	return p.Name == other.Name &&
		p.Overwrite == other.Overwrite &&
		slices.Equal(p.WebParts, other.WebParts) &&
		p.security.Equal(other.security) &&
		maps.Equal(p.Fields, other.Fields)
}

// Hash returns a hash consistent with Equal: equal pages hash equally.
// Field order does not matter, web part order does.
func (p *PublishingPage) Hash() (uint64, error) {
	h, err := hashstructure.Hash(p.identity(), nil)
	if err != nil {
		return 0, fmt.Errorf("hash page %q: %w", p.Name, err)
	}
	return h, nil
}

func (p *PublishingPage) identity() pageIdentity {
	return pageIdentity{
		Name:      p.Name,
		Overwrite: p.Overwrite,
		WebParts:  p.WebParts,
		Security:  p.security,
		Fields:    p.Fields,
	}
}

// Clone returns a detached deep copy of the page.
func (p *PublishingPage) Clone() *PublishingPage {
	return NewPublishingPage(p.Name, p.Layout, p.Overwrite, p.WebParts, p.security.Clone(), maps.Clone(p.Fields))
}
