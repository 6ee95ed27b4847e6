// SPDX-License-Identifier: MPL-2.0

package pagetemplate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleTemplate = `
id:      "intranet-news"
version: 1.2
parameters: {
	Department: "Comms"
}
publishing_pages: [
	{
		name:      "Home"
		layout:    "ArticleLeft"
		overwrite: true
		web_parts: [
			{title: "Intro", zone: "Header", order: 1, contents: "<webParts/>"},
			{title: "News", zone: "Body"},
		]
		security: {
			copy_role_assignments: true
			role_assignments: [{principal: "Visitors", role_definition: "Read"}]
		}
		fields: {
			Owner: "{parameter:Department}"
		}
	},
	{
		name:   "About.aspx"
		layout: "Blank Web Part Page"
	},
]
`

func TestParseBytes(t *testing.T) {
	t.Parallel()

	tmpl, err := ParseBytes([]byte(sampleTemplate), "pages.cue")
	if err != nil {
		t.Fatalf("ParseBytes failed: %v", err)
	}

	if tmpl.ID != "intranet-news" || tmpl.Version != 1.2 {
		t.Errorf("unexpected header: id=%q version=%v", tmpl.ID, tmpl.Version)
	}
	if tmpl.Parameters["Department"] != "Comms" {
		t.Errorf("parameters not decoded: %v", tmpl.Parameters)
	}

	pages := tmpl.PublishingPages.Pages()
	if len(pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(pages))
	}

	home := pages[0]
	if home.Name != "Home" || home.Layout != "ArticleLeft" || !home.Overwrite {
		t.Errorf("unexpected home page: %+v", home)
	}
	if len(home.WebParts) != 2 {
		t.Fatalf("got %d web parts, want 2", len(home.WebParts))
	}
	if home.WebParts[1].Order != 0 || home.WebParts[1].Contents != "" {
		t.Errorf("defaults not applied to web part: %+v", home.WebParts[1])
	}
	if home.Security() == nil || home.Security().ParentTemplate() != tmpl {
		t.Error("security should be decoded and attached to the template")
	}
	if home.Fields["Owner"] != "{parameter:Department}" {
		t.Errorf("fields not decoded: %v", home.Fields)
	}

	about := pages[1]
	if about.Overwrite {
		t.Error("overwrite should default to false")
	}
	if about.Security() != nil {
		t.Error("absent security should decode as nil")
	}
	if about.Fields == nil {
		t.Error("fields should never be nil")
	}
}

func TestParseBytes_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		wantSub string
	}{
		{
			name:    "missing id",
			data:    `publishing_pages: []`,
			wantSub: "id",
		},
		{
			name:    "empty page name",
			data:    `id: "x", publishing_pages: [{name: "", layout: "L"}]`,
			wantSub: "publishing_pages[0].name",
		},
		{
			name:    "negative order",
			data:    `id: "x", publishing_pages: [{name: "A", layout: "L", web_parts: [{title: "T", zone: "Z", order: -1}]}]`,
			wantSub: "order",
		},
		{
			name:    "unknown field",
			data:    `id: "x", publishing_pages: [{name: "A", layout: "L", colour: "red"}]`,
			wantSub: "colour",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseBytes([]byte(tt.data), "bad.cue")
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q should mention %q", err, tt.wantSub)
			}
		})
	}
}

func TestParse_ReadsFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "pages.cue")
	if err := os.WriteFile(path, []byte(sampleTemplate), 0o644); err != nil {
		t.Fatalf("failed to write template: %v", err)
	}

	tmpl, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if tmpl.PublishingPages.Len() != 2 {
		t.Errorf("got %d pages, want 2", tmpl.PublishingPages.Len())
	}

	if _, err := Parse(filepath.Join(t.TempDir(), "missing.cue")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	t.Parallel()

	tmpl, err := ParseBytes([]byte(sampleTemplate), "pages.cue")
	if err != nil {
		t.Fatalf("ParseBytes failed: %v", err)
	}

	out, err := Encode(tmpl)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	again, err := ParseBytes(out, "encoded.cue")
	if err != nil {
		t.Fatalf("encoded template did not parse: %v\n%s", err, out)
	}

	orig, got := tmpl.PublishingPages.Pages(), again.PublishingPages.Pages()
	if len(orig) != len(got) {
		t.Fatalf("page count changed: %d -> %d", len(orig), len(got))
	}
	for i := range orig {
		if !orig[i].Equal(got[i]) || orig[i].Layout != got[i].Layout {
			t.Errorf("page %d changed across encode/parse: %+v -> %+v", i, orig[i], got[i])
		}
	}
}
