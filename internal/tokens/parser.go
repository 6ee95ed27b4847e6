// SPDX-License-Identifier: MPL-2.0

package tokens

import (
	"maps"
	"regexp"
	"slices"
	"strings"
)

// placeholderPattern matches "{kind}" and "{kind:name}". Names may contain
// spaces, since web part titles do.
var placeholderPattern = regexp.MustCompile(`\{[^{}\s:]+(?::[^{}\r\n]+)?\}`)

// SiteInfo is the site data the default tokens are built from.
type SiteInfo struct {
	ServerRelativeURL string
	Title             string
	PageLibrary       string
}

// Parser resolves placeholders. The zero value is not usable; use NewParser.
// A Parser is not safe for concurrent use.
type Parser struct {
	tokens []Token
	index  map[string]string
}

// NewParser returns a parser seeded with the site tokens and the given parameters.
func NewParser(site SiteInfo, parameters map[string]string) *Parser {
	p := &Parser{index: make(map[string]string)}
	p.AddToken(Token{Kind: KindSite, Value: site.ServerRelativeURL})
	p.AddToken(Token{Kind: KindSiteTitle, Value: site.Title})
	if site.PageLibrary != "" {
		p.AddToken(Token{Kind: KindPageLibrary, Value: site.PageLibrary})
	}
	for _, name := range slices.Sorted(maps.Keys(parameters)) {
		p.AddToken(Parameter(name, parameters[name]))
	}
	return p
}

// AddToken appends a token. A later token with the same placeholder
// (compared case-insensitively) replaces the earlier value.
func (p *Parser) AddToken(t Token) {
	p.tokens = append(p.tokens, t)
	p.index[t.key()] = t.Value
}

// ParseString replaces every known placeholder in text. Unknown placeholders
// are left as they are.
func (p *Parser) ParseString(text string) string {
	if !strings.Contains(text, "{") {
		return text
	}
	return placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
		if v, ok := p.index[strings.ToLower(match)]; ok {
			return v
		}
		return match
	})
}

// Tokens returns every token in the order it was added.
func (p *Parser) Tokens() []Token {
	return slices.Clone(p.tokens)
}

// Lookup returns the current value for a placeholder.
func (p *Parser) Lookup(placeholder string) (string, bool) {
	v, ok := p.index[strings.ToLower(placeholder)]
	return v, ok
}
