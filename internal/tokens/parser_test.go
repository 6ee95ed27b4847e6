// SPDX-License-Identifier: MPL-2.0

package tokens

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newTestParser() *Parser {
	return NewParser(
		SiteInfo{ServerRelativeURL: "/sites/news", Title: "News", PageLibrary: "Pages"},
		map[string]string{"Department": "Comms"},
	)
}

func TestParser_ParseString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "no placeholders", in: "Home", want: "Home"},
		{name: "site", in: "{site}/Pages/Home.aspx", want: "/sites/news/Pages/Home.aspx"},
		{name: "case insensitive", in: "{Site} - {SITETITLE}", want: "/sites/news - News"},
		{name: "parameter", in: "{parameter:Department}-Home", want: "Comms-Home"},
		{name: "parameter name case", in: "{parameter:department}", want: "Comms"},
		{name: "page library", in: "{pagelibrary}", want: "Pages"},
		{name: "unknown left intact", in: "{unknown} and {parameter:Missing}", want: "{unknown} and {parameter:Missing}"},
		{name: "json braces untouched", in: `{"a": 1}`, want: `{"a": 1}`},
		{name: "css block untouched", in: "p { color: red }", want: "p { color: red }"},
		{name: "web part title with spaces", in: "id={webpartid:Content Editor}", want: "id=abc-123"},
		{name: "parameter name with spaces", in: "{parameter:Cost Center}", want: "42"},
	}

	p := newTestParser()
	p.AddToken(WebPartID("Content Editor", "abc-123"))
	p.AddToken(Parameter("Cost Center", "42"))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := p.ParseString(tt.in); got != tt.want {
				t.Errorf("ParseString(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParser_AddToken(t *testing.T) {
	t.Parallel()

	p := newTestParser()
	p.AddToken(WebPartID("News", "id-1"))

	if got := p.ParseString("{webpartid:news}"); got != "id-1" {
		t.Errorf("web part token not resolved, got %q", got)
	}

	p.AddToken(WebPartID("News", "id-2"))
	if got := p.ParseString("{webpartid:News}"); got != "id-2" {
		t.Errorf("later token should win, got %q", got)
	}

	v, ok := p.Lookup("{WEBPARTID:NEWS}")
	if !ok || v != "id-2" {
		t.Errorf("Lookup = %q, %v", v, ok)
	}

	want := []Token{
		{Kind: KindSite, Value: "/sites/news"},
		{Kind: KindSiteTitle, Value: "News"},
		{Kind: KindPageLibrary, Value: "Pages"},
		{Kind: KindParameter, Name: "Department", Value: "Comms"},
		{Kind: KindWebPartID, Name: "News", Value: "id-1"},
		{Kind: KindWebPartID, Name: "News", Value: "id-2"},
	}
	if diff := cmp.Diff(want, p.Tokens()); diff != "" {
		t.Errorf("Tokens() mismatch (-want +got):\n%s", diff)
	}
}

func TestToken_Placeholder(t *testing.T) {
	t.Parallel()

	if got := (Token{Kind: KindSite}).Placeholder(); got != "{site}" {
		t.Errorf("got %q", got)
	}
	if got := Parameter("X", "1").Placeholder(); got != "{parameter:X}" {
		t.Errorf("got %q", got)
	}
}
