// SPDX-License-Identifier: MPL-2.0

package tokens

import "strings"

// Token kinds known to the provisioner.
const (
	KindSite        = "site"
	KindSiteTitle   = "sitetitle"
	KindPageLibrary = "pagelibrary"
	KindParameter   = "parameter"
	KindWebPartID   = "webpartid"
)

// Token maps a placeholder to a value.
// The placeholder is "{kind}" when Name is empty and "{kind:name}" otherwise.
type Token struct {
	Kind  string
	Name  string
	Value string
}

// Placeholder returns the text a template uses to reference this token.
func (t Token) Placeholder() string {
	if t.Name == "" {
		return "{" + t.Kind + "}"
	}
	return "{" + t.Kind + ":" + t.Name + "}"
}

func (t Token) key() string {
	return strings.ToLower(t.Placeholder())
}

// WebPartID returns the token that exposes the id of an attached web part by title.
func WebPartID(title, id string) Token {
	return Token{Kind: KindWebPartID, Name: title, Value: id}
}

// Parameter returns the token for a template parameter.
func Parameter(name, value string) Token {
	return Token{Kind: KindParameter, Name: name, Value: value}
}
