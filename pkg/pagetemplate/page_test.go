// SPDX-License-Identifier: MPL-2.0

package pagetemplate

import "testing"

func samplePage() *PublishingPage {
	return NewPublishingPage(
		"Home",
		"ArticleLeft",
		true,
		[]WebPart{
			{Title: "Intro", Contents: "<wp/>", Zone: "Header", Order: 1},
			{Title: "News", Contents: "<wp/>", Zone: "Body", Order: 2},
		},
		&ObjectSecurity{
			CopyRoleAssignments: true,
			RoleAssignments:     []RoleAssignment{{Principal: "Visitors", RoleDefinition: "Read"}},
		},
		map[string]string{"Title": "Home", "Owner": "Comms"},
	)
}

func mustHash(t *testing.T, p *PublishingPage) uint64 {
	t.Helper()
	h, err := p.Hash()
	if err != nil {
		t.Fatalf("Hash() failed: %v", err)
	}
	return h
}

func TestPublishingPage_EqualAndHash(t *testing.T) {
	t.Parallel()

	a, b := samplePage(), samplePage()
	if !a.Equal(b) {
		t.Fatal("identical pages should be equal")
	}
	if mustHash(t, a) != mustHash(t, b) {
		t.Error("equal pages should hash equally")
	}
}

func TestPublishingPage_FieldOrderIrrelevant(t *testing.T) {
	t.Parallel()

	a := samplePage()
	b := samplePage()
	b.Fields = map[string]string{}
	b.Fields["Owner"] = "Comms"
	b.Fields["Title"] = "Home"

	if !a.Equal(b) {
		t.Fatal("field insertion order must not affect equality")
	}
	if mustHash(t, a) != mustHash(t, b) {
		t.Error("field insertion order must not affect the hash")
	}
}

func TestPublishingPage_LayoutNotPartOfIdentity(t *testing.T) {
	t.Parallel()

	a, b := samplePage(), samplePage()
	b.Layout = "Other"
	if !a.Equal(b) {
		t.Fatal("layout does not take part in equality")
	}
	if mustHash(t, a) != mustHash(t, b) {
		t.Error("hash must stay consistent with equality when only the layout differs")
	}
}

func TestPublishingPage_Inequality(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*PublishingPage)
	}{
		{name: "name", mutate: func(p *PublishingPage) { p.Name = "Other" }},
		{name: "overwrite", mutate: func(p *PublishingPage) { p.Overwrite = false }},
		{name: "web part order", mutate: func(p *PublishingPage) {
			p.WebParts[0], p.WebParts[1] = p.WebParts[1], p.WebParts[0]
		}},
		{name: "web part contents", mutate: func(p *PublishingPage) { p.WebParts[1].Contents = "<other/>" }},
		{name: "security removed", mutate: func(p *PublishingPage) { p.SetSecurity(nil) }},
		{name: "security changed", mutate: func(p *PublishingPage) { p.Security().ClearSubscopes = true }},
		{name: "field value", mutate: func(p *PublishingPage) { p.Fields["Owner"] = "HR" }},
		{name: "extra field", mutate: func(p *PublishingPage) { p.Fields["Extra"] = "x" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a, b := samplePage(), samplePage()
			tt.mutate(b)
			if a.Equal(b) || b.Equal(a) {
				t.Errorf("pages differing in %s should not be equal", tt.name)
			}
			if mustHash(t, a) == mustHash(t, b) {
				t.Errorf("pages differing in %s should hash differently", tt.name)
			}
		})
	}
}

func TestPublishingPage_NilEquality(t *testing.T) {
	t.Parallel()

	var nilPage *PublishingPage
	if !nilPage.Equal(nil) {
		t.Error("two nil pages should be equal")
	}
	if samplePage().Equal(nil) {
		t.Error("a page should not equal nil")
	}

	noSecurity := NewPublishingPage("A", "L", false, nil, nil, nil)
	other := NewPublishingPage("A", "L", false, nil, nil, nil)
	if !noSecurity.Equal(other) {
		t.Error("pages with both security descriptors absent should be equal")
	}
}

func TestPublishingPage_SecurityBackReference(t *testing.T) {
	t.Parallel()

	tmpl := New("tmpl")
	first := &ObjectSecurity{CopyRoleAssignments: true}
	page := NewPublishingPage("A", "L", false, nil, first, nil)

	if first.ParentTemplate() != nil {
		t.Fatal("security of a detached page should have no template")
	}

	tmpl.PublishingPages.Add(page)
	if first.ParentTemplate() != tmpl {
		t.Fatal("adding the page to a template should attach its security descriptor")
	}

	second := &ObjectSecurity{ClearSubscopes: true}
	page.SetSecurity(second)
	if first.ParentTemplate() != nil {
		t.Error("replaced descriptor should be detached")
	}
	if second.ParentTemplate() != tmpl {
		t.Error("new descriptor should reference the page's template")
	}

	other := New("other")
	withOtherParent := second.Clone()
	withOtherParent.parent = other
	if !second.Equal(withOtherParent) {
		t.Error("the template reference must not affect security equality")
	}
}

func TestPublishingPage_CloneIsDetached(t *testing.T) {
	t.Parallel()

	tmpl := New("tmpl")
	page := samplePage()
	tmpl.PublishingPages.Add(page)

	clone := page.Clone()
	if !clone.Equal(page) {
		t.Fatal("clone should equal the original")
	}
	if clone.ParentTemplate() != nil || clone.Security().ParentTemplate() != nil {
		t.Error("clone should not be bound to a template")
	}

	clone.Fields["Owner"] = "HR"
	clone.WebParts[0].Title = "Changed"
	if page.Fields["Owner"] != "Comms" || page.WebParts[0].Title != "Intro" {
		t.Error("mutating the clone changed the original")
	}
}
