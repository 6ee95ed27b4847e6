// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"context"
	"fmt"
	"io"
	"maps"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/pubpages/pubpages/internal/layout"
	"github.com/pubpages/pubpages/internal/site"
)

const siteURL = "/sites/news"

type (
	// mockSite is an in-memory site.Client that records every call as
	// "<Method> <argument>".
	mockSite struct {
		info       site.Info
		publishing bool
		layouts    []layout.Record
		home       string
		files      map[string]*mockFile
		calls      []string
		injected   map[string][]error
		always     map[string]error
		nextID     int
	}

	mockFile struct {
		level    site.PublishLevel
		layout   string
		fields   map[string]string
		webParts []site.AttachedWebPart
		xml      map[string]string
	}
)

var _ site.Client = (*mockSite)(nil)

func newMockSite() *mockSite {
	return &mockSite{
		info:       site.Info{ServerRelativeURL: siteURL, Title: "News"},
		publishing: true,
		layouts: []layout.Record{
			layout.NewRecord("Article", "ArticleLeft", "/_catalogs/masterpage/ArticleLeft.aspx"),
			layout.NewRecord("Welcome", "WelcomeSplash", "/_catalogs/masterpage/WelcomeSplash.aspx"),
			{DisplayName: "MyLayout", URL: "/_catalogs/masterpage/MyLayout.aspx"},
		},
		files:    map[string]*mockFile{},
		injected: map[string][]error{},
		always:   map[string]error{},
	}
}

func pageURL(name string) string {
	return siteURL + "/Pages/" + name
}

func quietConfig() *Config {
	cfg := DefaultConfig()
	cfg.Logger = log.New(io.Discard)
	cfg.BaseBackoff = 0
	return cfg
}

// addPage seeds an existing page.
func (m *mockSite) addPage(name string, level site.PublishLevel, webPartTitles ...string) *mockFile {
	f := &mockFile{level: level, fields: map[string]string{}}
	for _, title := range webPartTitles {
		m.nextID++
		f.webParts = append(f.webParts, site.AttachedWebPart{ID: fmt.Sprintf("existing-%d", m.nextID), Title: title, Zone: "Main"})
	}
	m.files[pageURL(name)] = f
	return f
}

// inject queues errors returned by successive calls of "<Method> <argument>".
func (m *mockSite) inject(call string, errs ...error) {
	m.injected[call] = append(m.injected[call], errs...)
}

func (m *mockSite) record(call string) error {
	m.calls = append(m.calls, call)
	if err, ok := m.always[call]; ok {
		return err
	}
	if queue := m.injected[call]; len(queue) > 0 {
		m.injected[call] = queue[1:]
		return queue[0]
	}
	return nil
}

func (m *mockSite) count(method string) int {
	n := 0
	for _, c := range m.calls {
		if c == method || strings.HasPrefix(c, method+" ") {
			n++
		}
	}
	return n
}

func (m *mockSite) callsFor(path string) []string {
	var out []string
	for _, c := range m.calls {
		if strings.HasSuffix(c, " "+path) || strings.Contains(c, " "+path+" ") {
			out = append(out, c)
		}
	}
	return out
}

func (m *mockSite) file(path string) (*mockFile, error) {
	f, ok := m.files[path]
	if !ok {
		return nil, site.NewServerError(site.CodeFileNotFound, path, "file not found")
	}
	return f, nil
}

func (m *mockSite) Info(_ context.Context) (site.Info, error) {
	return m.info, m.record("Info")
}

func (m *mockSite) IsPublishingSite(_ context.Context) (bool, error) {
	return m.publishing, m.record("IsPublishingSite")
}

func (m *mockSite) PageLayouts(_ context.Context) ([]layout.Record, error) {
	return m.layouts, m.record("PageLayouts")
}

func (m *mockSite) GetFile(_ context.Context, path string) (site.File, error) {
	if err := m.record("GetFile " + path); err != nil {
		return site.File{}, err
	}
	f, err := m.file(path)
	if err != nil {
		return site.File{}, err
	}
	return site.File{ServerRelativeURL: path, Level: f.level}, nil
}

func (m *mockSite) HomePage(_ context.Context) (string, error) {
	return m.home, m.record("HomePage")
}

func (m *mockSite) SetHomePage(_ context.Context, relativePath string) error {
	if err := m.record("SetHomePage " + relativePath); err != nil {
		return err
	}
	m.home = relativePath
	return nil
}

func (m *mockSite) ClearHomePage(_ context.Context) error {
	if err := m.record("ClearHomePage"); err != nil {
		return err
	}
	m.home = ""
	return nil
}

func (m *mockSite) DeleteFile(_ context.Context, path string) error {
	if err := m.record("DeleteFile " + path); err != nil {
		return err
	}
	if _, err := m.file(path); err != nil {
		return err
	}
	if m.home != "" && strings.EqualFold(m.home, site.RelativeTo(siteURL, path)) {
		return site.NewServerError(site.CodeConflict, path, "home page can not be deleted")
	}
	delete(m.files, path)
	return nil
}

func (m *mockSite) CreatePublishingPage(_ context.Context, req site.PageCreation) (string, error) {
	path := pageURL(req.Name)
	if err := m.record("CreatePublishingPage " + path + " " + req.Layout.URL); err != nil {
		return "", err
	}
	if _, ok := m.files[path]; ok {
		return "", site.NewServerError(site.CodeConflict, path, "exists")
	}
	m.files[path] = &mockFile{level: site.LevelCheckedOut, layout: req.Layout.URL, fields: map[string]string{}}
	return path, nil
}

func (m *mockSite) SetPageFields(_ context.Context, path string, fields map[string]string) error {
	if err := m.record("SetPageFields " + path); err != nil {
		return err
	}
	f, err := m.file(path)
	if err != nil {
		return err
	}
	maps.Copy(f.fields, fields)
	f.level = site.LevelCheckedOut
	return nil
}

func (m *mockSite) WebParts(_ context.Context, path string) ([]site.AttachedWebPart, error) {
	if err := m.record("WebParts " + path); err != nil {
		return nil, err
	}
	f, err := m.file(path)
	if err != nil {
		return nil, err
	}
	return append([]site.AttachedWebPart(nil), f.webParts...), nil
}

func (m *mockSite) AddWebPart(_ context.Context, path string, def site.WebPartDefinition) error {
	if err := m.record("AddWebPart " + path + " " + def.Title); err != nil {
		return err
	}
	f, err := m.file(path)
	if err != nil {
		return err
	}
	m.nextID++
	f.webParts = append(f.webParts, site.AttachedWebPart{ID: fmt.Sprintf("wp-%d", m.nextID), Title: def.Title, Zone: def.Zone, Index: def.Index})
	if f.xml == nil {
		f.xml = map[string]string{}
	}
	f.xml[def.Title] = def.XML
	f.level = site.LevelCheckedOut
	return nil
}

func (m *mockSite) CheckIn(_ context.Context, path, _ string, kind site.CheckinType) error {
	if err := m.record("CheckIn " + path + " " + kind.String()); err != nil {
		return err
	}
	f, err := m.file(path)
	if err != nil {
		return err
	}
	if f.level != site.LevelCheckedOut {
		return site.NewServerError(site.CodeConflict, path, "not checked out")
	}
	f.level = site.LevelDraft
	return nil
}

func (m *mockSite) Publish(_ context.Context, path, _ string) error {
	if err := m.record("Publish " + path); err != nil {
		return err
	}
	f, err := m.file(path)
	if err != nil {
		return err
	}
	if f.level != site.LevelDraft {
		return site.NewServerError(site.CodeConflict, path, "not a draft")
	}
	f.level = site.LevelPublished
	return nil
}
