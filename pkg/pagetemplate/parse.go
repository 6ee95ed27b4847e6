// SPDX-License-Identifier: MPL-2.0

package pagetemplate

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/pubpages/pubpages/pkg/cueutil"
)

//go:embed template_schema.cue
var templateSchema string

type (
	templateDoc struct {
		ID              string            `json:"id"`
		Version         float64           `json:"version,omitempty"`
		Parameters      map[string]string `json:"parameters,omitempty"`
		PublishingPages []pageDoc         `json:"publishing_pages"`
	}

	pageDoc struct {
		Name      string            `json:"name"`
		Layout    string            `json:"layout"`
		Overwrite bool              `json:"overwrite"`
		WebParts  []WebPart         `json:"web_parts,omitempty"`
		Security  *ObjectSecurity   `json:"security,omitempty"`
		Fields    map[string]string `json:"fields,omitempty"`
	}
)

// Parse reads and parses a template file.
func Parse(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template at %s: %w", path, err)
	}
	return ParseBytes(data, path)
}

// ParseBytes parses template content. path is only used in error messages.
func ParseBytes(data []byte, path string) (*Template, error) {
	result, err := cueutil.ParseAndDecodeString[templateDoc](
		templateSchema,
		data,
		"#Template",
		cueutil.WithFilename(path),
	)
	if err != nil {
		return nil, err
	}

	doc := result.Value
	tmpl := New(doc.ID)
	tmpl.Version = doc.Version
	for k, v := range doc.Parameters {
		tmpl.Parameters[k] = v
	}
	for _, pd := range doc.PublishingPages {
		tmpl.PublishingPages.Add(NewPublishingPage(pd.Name, pd.Layout, pd.Overwrite, pd.WebParts, pd.Security, pd.Fields))
	}
	return tmpl, nil
}

// Encode renders a template as CUE source accepted by ParseBytes.
func Encode(t *Template) ([]byte, error) {
	doc := templateDoc{
		ID:              t.ID,
		Version:         t.Version,
		Parameters:      t.Parameters,
		PublishingPages: make([]pageDoc, 0, t.PublishingPages.Len()),
	}
	for _, page := range t.PublishingPages.Pages() {
		doc.PublishingPages = append(doc.PublishingPages, pageDoc{
			Name:      page.Name,
			Layout:    page.Layout,
			Overwrite: page.Overwrite,
			WebParts:  page.WebParts,
			Security:  page.Security(),
			Fields:    page.Fields,
		})
	}
	return cueutil.Encode(doc)
}
