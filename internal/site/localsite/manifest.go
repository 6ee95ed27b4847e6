// SPDX-License-Identifier: MPL-2.0

package localsite

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"

	"github.com/pubpages/pubpages/internal/layout"
)

const (
	// ManifestFile is the site manifest file name.
	ManifestFile = "site.toml"

	stateExt = ".toml"
)

// ErrNotASite is returned when a directory has no site manifest.
var ErrNotASite = errors.New("not a local site")

type (
	manifest struct {
		URL         string           `toml:"url"`
		Title       string           `toml:"title"`
		Publishing  bool             `toml:"publishing"`
		WelcomePage string           `toml:"welcome_page"`
		Layouts     []layoutManifest `toml:"layouts"`
	}

	layoutManifest struct {
		Title       *string `toml:"title,omitempty"`
		DisplayName string  `toml:"display_name"`
		URL         string  `toml:"url"`
	}

	pageState struct {
		Name     string            `toml:"name"`
		Layout   string            `toml:"layout"`
		Level    string            `toml:"level"`
		Major    int               `toml:"major"`
		Minor    int               `toml:"minor"`
		Comment  string            `toml:"comment,omitempty"`
		Fields   map[string]string `toml:"fields,omitempty"`
		WebParts []webPartState    `toml:"web_parts,omitempty"`
	}

	webPartState struct {
		ID    string `toml:"id"`
		Title string `toml:"title"`
		Zone  string `toml:"zone"`
		Index int    `toml:"index"`
		XML   string `toml:"xml"`
	}
)

func (m *manifest) records() []layout.Record {
	out := make([]layout.Record, 0, len(m.Layouts))
	for _, l := range m.Layouts {
		rec := layout.Record{DisplayName: l.DisplayName, URL: l.URL}
		if l.Title != nil {
			title := *l.Title
			rec.Title = &title
		}
		out = append(out, rec)
	}
	return out
}

func layoutsFromRecords(records []layout.Record) []layoutManifest {
	out := make([]layoutManifest, 0, len(records))
	for _, rec := range records {
		l := layoutManifest{DisplayName: rec.DisplayName, URL: rec.URL}
		if rec.Title != nil {
			title := *rec.Title
			l.Title = &title
		}
		out = append(out, l)
	}
	return out
}

func readManifest(fs afero.Fs, root string) (*manifest, error) {
	data, err := afero.ReadFile(fs, filepath.Join(root, ManifestFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s has no %s", ErrNotASite, root, ManifestFile)
		}
		return nil, fmt.Errorf("read site manifest: %w", err)
	}
	var m manifest
	if err := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(&m); err != nil {
		return nil, fmt.Errorf("parse site manifest %s: %w", filepath.Join(root, ManifestFile), err)
	}
	if m.URL == "" {
		m.URL = "/"
	}
	return &m, nil
}

func writeManifest(fs afero.Fs, root string, m *manifest) error {
	data, err := toml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode site manifest: %w", err)
	}
	if err := afero.WriteFile(fs, filepath.Join(root, ManifestFile), data, 0o644); err != nil {
		return fmt.Errorf("write site manifest: %w", err)
	}
	return nil
}

func readPage(fs afero.Fs, file string) (*pageState, error) {
	data, err := afero.ReadFile(fs, file)
	if err != nil {
		return nil, err
	}
	var p pageState
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse page state %s: %w", file, err)
	}
	return &p, nil
}

func writePage(fs afero.Fs, file string, p *pageState) error {
	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode page state: %w", err)
	}
	return afero.WriteFile(fs, file, data, 0o644)
}
