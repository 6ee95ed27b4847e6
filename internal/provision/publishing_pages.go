// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"context"
	"fmt"
	"strings"

	"github.com/pubpages/pubpages/internal/layout"
	"github.com/pubpages/pubpages/internal/site"
	"github.com/pubpages/pubpages/internal/tokens"
	"github.com/pubpages/pubpages/pkg/pagetemplate"
)

// Compile-time interface check
var _ Provisioner = (*PublishingPages)(nil)

type (
	// PublishingPages provisions the publishing pages of a template.
	PublishingPages struct {
		config *Config
	}

	// run is the state shared by the pages of one Provision call.
	run struct {
		client  site.Client
		info    site.Info
		layouts []layout.Record
		parser  *tokens.Parser
	}
)

// NewPublishingPages creates a PublishingPages provisioner.
func NewPublishingPages(cfg *Config) *PublishingPages {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Logger == nil {
		cfg.Logger = DefaultConfig().Logger
	}
	return &PublishingPages{config: cfg}
}

// Config returns the provisioner's configuration.
func (p *PublishingPages) Config() *Config {
	return p.config
}

// Name implements Provisioner.
func (p *PublishingPages) Name() string {
	return "Publishing Pages"
}

// WillProvision implements Provisioner.
func (p *PublishingPages) WillProvision(t *pagetemplate.Template) bool {
	return t != nil && t.PublishingPages.Len() > 0
}

// WillExtract implements Provisioner. Pages can not be enumerated from a site,
// so extraction only cleans up against a base template.
func (p *PublishingPages) WillExtract(*pagetemplate.Template) bool {
	return false
}

// Provision implements Provisioner. Page names in t are replaced with their
// normalized form.
func (p *PublishingPages) Provision(ctx context.Context, client site.Client, t *pagetemplate.Template, parser *tokens.Parser) (*Result, error) {
	if err := p.config.Validate(); err != nil {
		return nil, err
	}
	r, err := p.begin(ctx, client, t, parser)
	if err != nil {
		return nil, err
	}

	report := &Report{Site: r.info.ServerRelativeURL}
	for _, page := range t.PublishingPages.Pages() {
		if err := ctx.Err(); err != nil {
			return &Result{Parser: r.parser, Report: report}, fmt.Errorf("provisioning interrupted: %w", err)
		}

		name := normalizeName(r.parser.ParseString(page.Name))
		page.Name = name
		if !p.config.selects(name) {
			p.config.Logger.Debug("page not selected", "page", name)
			continue
		}

		outcome := p.provisionPage(ctx, r, page)
		if outcome.Err != nil {
			p.config.Logger.Error("page failed", "page", outcome.Page, "stage", outcome.Stage(), "err", outcome.Err)
		} else {
			p.config.Logger.Info("page provisioned", "page", outcome.Page, "action", outcome.Action, "path", outcome.Path)
		}
		report.Pages = append(report.Pages, outcome)
	}
	return &Result{Parser: r.parser, Report: report}, nil
}

// begin checks the site precondition and loads the per-run state. The layout
// catalog is fetched once and shared by every page.
func (p *PublishingPages) begin(ctx context.Context, client site.Client, t *pagetemplate.Template, parser *tokens.Parser) (*run, error) {
	info, err := client.Info(ctx)
	if err != nil {
		return nil, fmt.Errorf("load site info: %w", err)
	}
	publishing, err := client.IsPublishingSite(ctx)
	if err != nil {
		return nil, fmt.Errorf("check publishing feature of %s: %w", info.ServerRelativeURL, err)
	}
	if !publishing {
		return nil, &PreconditionError{Site: info.ServerRelativeURL}
	}
	layouts, err := client.PageLayouts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load page layouts: %w", err)
	}
	if parser == nil {
		parser = tokens.NewParser(tokens.SiteInfo{
			ServerRelativeURL: info.ServerRelativeURL,
			Title:             info.Title,
			PageLibrary:       PageLibrary,
		}, t.Parameters)
	}
	return &run{client: client, info: info, layouts: layouts, parser: parser}, nil
}

// provisionPage reconciles one page. Only a failed probe, delete or create
// stops the page early; the lifecycle step runs for every page that exists at
// that point. An existing page without Overwrite still gets web part sync and
// publish.
func (p *PublishingPages) provisionPage(ctx context.Context, r *run, page *pagetemplate.PublishingPage) PageOutcome {
	url := site.PageURL(r.info.ServerRelativeURL, page.Name)
	out := PageOutcome{Page: page.Name, Path: url}
	wasHome := false
	fail := func(stage Stage, err error) PageOutcome {
		out.Err = &PageError{Page: page.Name, Stage: stage, Err: err}
		// A failed delete reclaims the home page itself.
		if wasHome && stage != StageDelete {
			p.config.Logger.Warn("home page left cleared", "page", page.Name, "home", site.RelativeTo(r.info.ServerRelativeURL, url), "stage", stage)
		}
		if out.Action == "" {
			out.Action = ActionError
		}
		return out
	}

	existence, _, err := site.Probe(ctx, r.client, url)
	if err != nil {
		return fail(StageProbe, err)
	}

	switch {
	case existence == site.NotFound:
		out.Action = ActionCreate
	case page.Overwrite:
		out.Action = ActionOverwrite
		if wasHome, err = p.releaseHomePage(ctx, r, url); err != nil {
			return fail(StageHomePage, err)
		}
		if err := p.deletePage(ctx, r.client, url); err != nil {
			if wasHome {
				p.reclaimHomePage(ctx, r, url)
			}
			return fail(StageDelete, err)
		}
	default:
		out.Action = ActionSkip
		p.config.Logger.Debug("page exists, not overwriting", "page", page.Name)
	}

	// Nothing to sync or publish when the create failed.
	if out.Action != ActionSkip {
		created, err := p.createPage(ctx, r, page)
		if err != nil {
			return fail(StageCreate, err)
		}
		out.Path = created
		if err := p.applyFields(ctx, r, page, created); err != nil {
			return fail(StageFields, err)
		}
	}

	added, err := p.syncWebParts(ctx, r, page, out.Path)
	out.WebPartsAdded = added
	if err != nil {
		return fail(StageWebParts, err)
	}

	if out.Published, err = p.checkInAndPublish(ctx, r.client, out.Path); err != nil {
		return fail(StagePublish, err)
	}

	if wasHome && p.config.RestoreHomePage {
		if err := r.client.SetHomePage(ctx, site.RelativeTo(r.info.ServerRelativeURL, out.Path)); err != nil {
			return fail(StageHomePage, err)
		}
		p.config.Logger.Info("home page restored", "page", page.Name)
	}
	return out
}

// releaseHomePage clears the home page setting when it points at url. The
// site refuses to delete its home page, so this must precede the delete.
func (p *PublishingPages) releaseHomePage(ctx context.Context, r *run, url string) (bool, error) {
	home, err := r.client.HomePage(ctx)
	if err != nil {
		return false, err
	}
	if home == "" || !strings.EqualFold(strings.TrimPrefix(home, "/"), site.RelativeTo(r.info.ServerRelativeURL, url)) {
		return false, nil
	}
	if err := r.client.ClearHomePage(ctx); err != nil {
		return false, err
	}
	p.config.Logger.Debug("home page cleared", "path", url)
	return true, nil
}

// reclaimHomePage points the home page back at url after a failed delete.
func (p *PublishingPages) reclaimHomePage(ctx context.Context, r *run, url string) {
	if err := r.client.SetHomePage(ctx, site.RelativeTo(r.info.ServerRelativeURL, url)); err != nil {
		p.config.Logger.Warn("could not restore home page after failed delete", "path", url, "err", err)
	}
}

// deletePage deletes url, retrying transient server errors. A not-found answer
// on a retry means an earlier attempt succeeded.
func (p *PublishingPages) deletePage(ctx context.Context, client site.Client, url string) error {
	return RetryWithBackoff(ctx, p.config.MaxAttempts, p.config.BaseBackoff, func(attempt int) (bool, error) {
		err := client.DeleteFile(ctx, url)
		switch {
		case err == nil:
			return false, nil
		case attempt > 0 && site.IsNotFound(err):
			return false, nil
		case site.IsTransient(err):
			p.config.Logger.Warn("delete failed, retrying", "path", url, "attempt", attempt+1, "err", err)
			return true, err
		default:
			return false, err
		}
	})
}

// createPage resolves the layout and creates the page, returning the path the
// site reports for it.
func (p *PublishingPages) createPage(ctx context.Context, r *run, page *pagetemplate.PublishingPage) (string, error) {
	rec, err := layout.Resolve(r.layouts, page.Layout, page.Name)
	if err != nil {
		return "", err
	}
	path, err := r.client.CreatePublishingPage(ctx, site.PageCreation{Name: page.Name, Layout: rec})
	if err != nil {
		return "", err
	}
	return path, nil
}

func (p *PublishingPages) applyFields(ctx context.Context, r *run, page *pagetemplate.PublishingPage, path string) error {
	if len(page.Fields) == 0 {
		return nil
	}
	fields := make(map[string]string, len(page.Fields))
	for k, v := range page.Fields {
		fields[k] = r.parser.ParseString(v)
	}
	return r.client.SetPageFields(ctx, path, fields)
}

// syncWebParts attaches declared web parts whose title is not on the page yet
// and publishes the id of every attached web part as a token. Existing web
// parts are never removed or moved.
func (p *PublishingPages) syncWebParts(ctx context.Context, r *run, page *pagetemplate.PublishingPage, path string) (int, error) {
	if len(page.WebParts) == 0 {
		return 0, nil
	}

	existing, err := r.client.WebParts(ctx, path)
	if err != nil {
		return 0, err
	}
	titles := make(map[string]struct{}, len(existing))
	for _, wp := range existing {
		titles[wp.Title] = struct{}{}
	}

	added := 0
	for _, wp := range page.WebParts {
		if _, ok := titles[wp.Title]; ok {
			continue
		}
		def := site.WebPartDefinition{
			Title: wp.Title,
			XML:   r.parser.ParseString(strings.Trim(wp.Contents, "\n ")),
			Zone:  wp.Zone,
			Index: wp.Order,
		}
		if err := r.client.AddWebPart(ctx, path, def); err != nil {
			return added, fmt.Errorf("add web part %q: %w", wp.Title, err)
		}
		titles[wp.Title] = struct{}{}
		added++
	}

	all, err := r.client.WebParts(ctx, path)
	if err != nil {
		return added, err
	}
	for _, wp := range all {
		r.parser.AddToken(tokens.WebPartID(wp.Title, wp.ID))
	}
	return added, nil
}

// checkInAndPublish checks the page in as a major version and publishes it.
// Both calls are always made. A conflict answer means the file is not in the
// state the call expects: it is ignored for the check-in, and accepted for the
// publish only when the file turns out to be published already.
func (p *PublishingPages) checkInAndPublish(ctx context.Context, client site.Client, path string) (bool, error) {
	if _, err := client.GetFile(ctx, path); err != nil {
		return false, err
	}
	if err := client.CheckIn(ctx, path, "", site.CheckinMajor); err != nil {
		if !site.IsConflict(err) {
			return false, fmt.Errorf("check in: %w", err)
		}
		p.config.Logger.Debug("check-in refused", "path", path, "err", err)
	}
	if err := client.Publish(ctx, path, ""); err != nil {
		if !site.IsConflict(err) {
			return false, fmt.Errorf("publish: %w", err)
		}
		file, getErr := client.GetFile(ctx, path)
		if getErr != nil {
			return false, getErr
		}
		if file.Level != site.LevelPublished {
			return false, fmt.Errorf("publish: %w", err)
		}
		p.config.Logger.Debug("page already published", "path", path)
	}
	return true, nil
}

// normalizeName appends PageExtension unless name already ends with it in any case.
func normalizeName(name string) string {
	if strings.HasSuffix(strings.ToLower(name), PageExtension) {
		return name
	}
	return name + PageExtension
}
