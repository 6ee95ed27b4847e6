// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestId_Constants(t *testing.T) {
	ids := []Id{
		TemplateNotFoundId,
		TemplateParseErrorId,
		SiteNotFoundId,
		SiteNotPublishingId,
		LayoutNotFoundId,
		PagesFailedId,
		SiteUnavailableId,
		PermissionDeniedId,
		ConfigLoadFailedId,
	}

	seen := make(map[Id]bool)
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate ID: %d", id)
		}
		seen[id] = true
		if Get(id) == nil {
			t.Errorf("Get(%d) returned nil", id)
		}
	}

	if TemplateNotFoundId != 1 {
		t.Errorf("TemplateNotFoundId = %d, want 1", TemplateNotFoundId)
	}
}

func TestValues_OrderedById(t *testing.T) {
	values := Values()
	if len(values) != len(issues) {
		t.Fatalf("Values() returned %d issues, want %d", len(values), len(issues))
	}
	for i := 1; i < len(values); i++ {
		if values[i-1].Id() >= values[i].Id() {
			t.Errorf("Values() not ordered at %d: %d >= %d", i, values[i-1].Id(), values[i].Id())
		}
	}
}

func TestIssue_MarkdownMsg(t *testing.T) {
	msg := Get(LayoutNotFoundId).MarkdownMsg()
	if !strings.Contains(string(msg), "pubpages site layouts") {
		t.Error("layout issue should point at 'pubpages site layouts'")
	}
}

func TestIssue_LinksAreCopies(t *testing.T) {
	issue := Get(ConfigLoadFailedId)
	links := issue.ExtLinks()
	if len(links) == 0 {
		t.Fatal("ConfigLoadFailed should have external links")
	}
	links[0] = "modified"
	if issue.ExtLinks()[0] == "modified" {
		t.Error("ExtLinks() should return a copy")
	}
}

func TestIssue_Render(t *testing.T) {
	original := render
	defer func() { render = original }()

	var got string
	render = func(in, stylePath string) (string, error) {
		got = in
		return "rendered:" + stylePath, nil
	}

	out, err := Get(ConfigLoadFailedId).Render("dark")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if out != "rendered:dark" {
		t.Errorf("Render() = %q", out)
	}
	if !strings.Contains(got, "## See also") || !strings.Contains(got, "https://cuelang.org/docs/tour/") {
		t.Errorf("rendered markdown missing links:\n%s", got)
	}

	render = func(string, string) (string, error) { return "", errors.New("bad style") }
	if _, err := Get(TemplateNotFoundId).Render("nope"); err == nil {
		t.Error("Render() should return the renderer error")
	}
}
