// SPDX-License-Identifier: MPL-2.0

package localsite

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/pubpages/pubpages/internal/layout"
	"github.com/pubpages/pubpages/internal/platform"
	"github.com/pubpages/pubpages/internal/site"
)

var _ site.Client = (*Site)(nil)

type (
	// Site is a publishing site stored under a root directory of an afero.Fs.
	// It is safe for concurrent use.
	Site struct {
		mu    sync.Mutex
		fs    afero.Fs
		root  string
		newID func() string
	}

	// Option configures a Site.
	Option func(*Site)

	// InitOptions describes a new site.
	InitOptions struct {
		URL   string
		Title string
		// NonPublishing creates a site without publishing enabled.
		NonPublishing bool
		// Layouts defaults to DefaultLayouts().
		Layouts []layout.Record
	}
)

// WithIDGenerator sets the generator used for web part ids.
func WithIDGenerator(fn func() string) Option {
	return func(s *Site) {
		s.newID = fn
	}
}

// DefaultLayouts returns the layout catalog written by Init.
func DefaultLayouts() []layout.Record {
	return []layout.Record{
		layout.NewRecord("Article page", "ArticleLeft", "/_catalogs/masterpage/ArticleLeft.aspx"),
		layout.NewRecord("Article page", "ArticleRight", "/_catalogs/masterpage/ArticleRight.aspx"),
		layout.NewRecord("Welcome page", "BlankWebPartPage", "/_catalogs/masterpage/BlankWebPartPage.aspx"),
		layout.NewRecord("Welcome page", "WelcomeSplash", "/_catalogs/masterpage/WelcomeSplash.aspx"),
		{DisplayName: "MyLayout", URL: "/_catalogs/masterpage/MyLayout.aspx"},
	}
}

// Open opens the site rooted at root.
func Open(fs afero.Fs, root string, opts ...Option) (*Site, error) {
	if _, err := readManifest(fs, root); err != nil {
		return nil, err
	}
	s := &Site{fs: fs, root: root, newID: uuid.NewString}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Init scaffolds a new site at root and opens it. It fails if root already
// holds a manifest.
func Init(fs afero.Fs, root string, desc InitOptions, opts ...Option) (*Site, error) {
	if exists, err := afero.Exists(fs, filepath.Join(root, ManifestFile)); err != nil {
		return nil, err
	} else if exists {
		return nil, fmt.Errorf("site already initialized at %s", root)
	}

	m := &manifest{
		URL:        desc.URL,
		Title:      desc.Title,
		Publishing: !desc.NonPublishing,
	}
	if m.URL == "" {
		m.URL = "/"
	}
	records := desc.Layouts
	if records == nil {
		records = DefaultLayouts()
	}
	m.Layouts = layoutsFromRecords(records)

	if err := fs.MkdirAll(filepath.Join(root, site.PageLibrary), 0o755); err != nil {
		return nil, fmt.Errorf("create page library: %w", err)
	}
	if err := writeManifest(fs, root, m); err != nil {
		return nil, err
	}
	return Open(fs, root, opts...)
}

// Root returns the site directory.
func (s *Site) Root() string {
	return s.root
}

// Info implements site.Client.
func (s *Site) Info(_ context.Context) (site.Info, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := readManifest(s.fs, s.root)
	if err != nil {
		return site.Info{}, err
	}
	return site.Info{ServerRelativeURL: m.URL, Title: m.Title}, nil
}

// IsPublishingSite implements site.Client.
func (s *Site) IsPublishingSite(_ context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := readManifest(s.fs, s.root)
	if err != nil {
		return false, err
	}
	return m.Publishing, nil
}

// PageLayouts implements site.Client.
func (s *Site) PageLayouts(_ context.Context) ([]layout.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := readManifest(s.fs, s.root)
	if err != nil {
		return nil, err
	}
	return m.records(), nil
}

// HomePage implements site.Client.
func (s *Site) HomePage(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := readManifest(s.fs, s.root)
	if err != nil {
		return "", err
	}
	return m.WelcomePage, nil
}

// SetHomePage implements site.Client.
func (s *Site) SetHomePage(_ context.Context, relativePath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := readManifest(s.fs, s.root)
	if err != nil {
		return err
	}
	m.WelcomePage = strings.TrimPrefix(relativePath, "/")
	return writeManifest(s.fs, s.root, m)
}

// ClearHomePage implements site.Client.
func (s *Site) ClearHomePage(ctx context.Context) error {
	return s.SetHomePage(ctx, "")
}

// GetFile implements site.Client.
func (s *Site) GetFile(_ context.Context, serverRelativeURL string) (site.File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, file, err := s.locate(serverRelativeURL)
	if err != nil {
		return site.File{}, err
	}
	p, err := s.load(file, serverRelativeURL)
	if err != nil {
		return site.File{}, err
	}
	return fileOf(m, p), nil
}

// DeleteFile implements site.Client.
func (s *Site) DeleteFile(_ context.Context, serverRelativeURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, file, err := s.locate(serverRelativeURL)
	if err != nil {
		return err
	}
	if _, err := s.load(file, serverRelativeURL); err != nil {
		return err
	}
	if m.WelcomePage != "" && strings.EqualFold(m.WelcomePage, site.RelativeTo(m.URL, serverRelativeURL)) {
		return site.NewServerError(site.CodeConflict, serverRelativeURL, "the site home page can not be deleted")
	}
	if err := s.fs.Remove(file); err != nil {
		return fmt.Errorf("delete %s: %w", serverRelativeURL, err)
	}
	return nil
}

// CreatePublishingPage implements site.Client. The new page is checked out
// as version 0.1.
func (s *Site) CreatePublishingPage(_ context.Context, req site.PageCreation) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := readManifest(s.fs, s.root)
	if err != nil {
		return "", err
	}
	url := site.PageURL(m.URL, req.Name)
	if !platform.IsPortableFileName(req.Name) {
		return "", site.NewServerError(site.CodeInvalidRequest, url, "invalid page name %q", req.Name)
	}
	_, file, err := s.locate(url)
	if err != nil {
		return "", err
	}
	if exists, err := afero.Exists(s.fs, file); err != nil {
		return "", err
	} else if exists {
		return "", site.NewServerError(site.CodeConflict, url, "a file with the name %s already exists", req.Name)
	}
	if !hasLayout(m, req.Layout.URL) {
		return "", site.NewServerError(site.CodeInvalidRequest, url, "unknown page layout %s", req.Layout.URL)
	}

	p := &pageState{
		Name:   req.Name,
		Layout: req.Layout.URL,
		Level:  string(site.LevelCheckedOut),
		Minor:  1,
	}
	if err := s.fs.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return "", err
	}
	if err := writePage(s.fs, file, p); err != nil {
		return "", err
	}
	return url, nil
}

// SetPageFields implements site.Client.
func (s *Site) SetPageFields(_ context.Context, serverRelativeURL string, fields map[string]string) error {
	return s.mutate(serverRelativeURL, func(p *pageState) error {
		if p.Fields == nil {
			p.Fields = make(map[string]string, len(fields))
		}
		for k, v := range fields {
			p.Fields[k] = v
		}
		return nil
	})
}

// WebParts implements site.Client.
func (s *Site) WebParts(_ context.Context, serverRelativeURL string) ([]site.AttachedWebPart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, file, err := s.locate(serverRelativeURL)
	if err != nil {
		return nil, err
	}
	p, err := s.load(file, serverRelativeURL)
	if err != nil {
		return nil, err
	}
	out := make([]site.AttachedWebPart, 0, len(p.WebParts))
	for _, wp := range p.WebParts {
		out = append(out, site.AttachedWebPart{ID: wp.ID, Title: wp.Title, Zone: wp.Zone, Index: wp.Index})
	}
	return out, nil
}

// AddWebPart implements site.Client.
func (s *Site) AddWebPart(_ context.Context, serverRelativeURL string, def site.WebPartDefinition) error {
	return s.mutate(serverRelativeURL, func(p *pageState) error {
		if def.Zone == "" {
			return site.NewServerError(site.CodeInvalidRequest, serverRelativeURL, "web part %q has no zone", def.Title)
		}
		p.WebParts = append(p.WebParts, webPartState{
			ID:    s.newID(),
			Title: def.Title,
			Zone:  def.Zone,
			Index: def.Index,
			XML:   def.XML,
		})
		return nil
	})
}

// CheckIn implements site.Client.
func (s *Site) CheckIn(_ context.Context, serverRelativeURL, comment string, kind site.CheckinType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, file, err := s.locate(serverRelativeURL)
	if err != nil {
		return err
	}
	p, err := s.load(file, serverRelativeURL)
	if err != nil {
		return err
	}
	if p.Level != string(site.LevelCheckedOut) {
		return site.NewServerError(site.CodeConflict, serverRelativeURL, "the file is not checked out")
	}
	switch kind {
	case site.CheckinMajor:
		p.Major++
		p.Minor = 0
	case site.CheckinMinor:
		p.Minor++
	case site.CheckinOverwrite:
	default:
		return site.NewServerError(site.CodeInvalidRequest, serverRelativeURL, "unknown check-in type %d", int(kind))
	}
	p.Level = string(site.LevelDraft)
	p.Comment = comment
	return writePage(s.fs, file, p)
}

// Publish implements site.Client.
func (s *Site) Publish(_ context.Context, serverRelativeURL, comment string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, file, err := s.locate(serverRelativeURL)
	if err != nil {
		return err
	}
	p, err := s.load(file, serverRelativeURL)
	if err != nil {
		return err
	}
	if p.Level != string(site.LevelDraft) {
		return site.NewServerError(site.CodeConflict, serverRelativeURL, "only a checked in draft can be published (file is %s)", p.Level)
	}
	if p.Minor != 0 {
		p.Major++
		p.Minor = 0
	}
	p.Level = string(site.LevelPublished)
	p.Comment = comment
	return writePage(s.fs, file, p)
}

// mutate loads a page, applies fn and checks the page out.
func (s *Site) mutate(serverRelativeURL string, fn func(*pageState) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, file, err := s.locate(serverRelativeURL)
	if err != nil {
		return err
	}
	p, err := s.load(file, serverRelativeURL)
	if err != nil {
		return err
	}
	if err := fn(p); err != nil {
		return err
	}
	if p.Level != string(site.LevelCheckedOut) {
		p.Level = string(site.LevelCheckedOut)
		p.Minor++
	}
	return writePage(s.fs, file, p)
}

// locate maps a server-relative URL to the page state file. Only files
// directly inside the page library exist.
func (s *Site) locate(serverRelativeURL string) (*manifest, string, error) {
	m, err := readManifest(s.fs, s.root)
	if err != nil {
		return nil, "", err
	}
	rel := site.RelativeTo(m.URL, serverRelativeURL)
	library, name, ok := strings.Cut(rel, "/")
	if !ok || !strings.EqualFold(library, site.PageLibrary) || name == "" || strings.ContainsAny(name, `/\`) || name == ".." {
		return m, "", site.NewServerError(site.CodeFileNotFound, serverRelativeURL, "file not found")
	}
	return m, filepath.Join(s.root, site.PageLibrary, name+stateExt), nil
}

func (s *Site) load(file, serverRelativeURL string) (*pageState, error) {
	p, err := readPage(s.fs, file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, site.NewServerError(site.CodeFileNotFound, serverRelativeURL, "file not found")
		}
		return nil, err
	}
	return p, nil
}

func hasLayout(m *manifest, url string) bool {
	for _, l := range m.Layouts {
		if l.URL == url {
			return true
		}
	}
	return false
}

func fileOf(m *manifest, p *pageState) site.File {
	return site.File{
		ServerRelativeURL: site.PageURL(m.URL, p.Name),
		Name:              p.Name,
		Level:             site.PublishLevel(p.Level),
		MajorVersion:      p.Major,
		MinorVersion:      p.Minor,
	}
}
