// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"context"

	"github.com/pubpages/pubpages/internal/layout"
	"github.com/pubpages/pubpages/internal/site"
	"github.com/pubpages/pubpages/internal/tokens"
	"github.com/pubpages/pubpages/pkg/pagetemplate"
)

// PlannedPage is the predicted outcome of provisioning one page.
type PlannedPage struct {
	Name   string
	Path   string
	Exists bool
	Action Action
	// Layout is the URL of the resolved layout for pages that would be created.
	Layout string
	// WebParts lists the declared web parts that would be attached.
	WebParts []string
	Err      error
}

// Plan predicts what Provision would do without changing the site or t.
// Precondition failures are returned as errors, per-page problems are reported
// as ActionError entries.
func (p *PublishingPages) Plan(ctx context.Context, client site.Client, t *pagetemplate.Template, parser *tokens.Parser) ([]PlannedPage, error) {
	if err := p.config.Validate(); err != nil {
		return nil, err
	}
	r, err := p.begin(ctx, client, t, parser)
	if err != nil {
		return nil, err
	}

	var plan []PlannedPage
	for _, page := range t.PublishingPages.Pages() {
		name := normalizeName(r.parser.ParseString(page.Name))
		if !p.config.selects(name) {
			continue
		}
		plan = append(plan, p.planPage(ctx, r, page, name))
	}
	return plan, nil
}

func (p *PublishingPages) planPage(ctx context.Context, r *run, page *pagetemplate.PublishingPage, name string) PlannedPage {
	url := site.PageURL(r.info.ServerRelativeURL, name)
	planned := PlannedPage{Name: name, Path: url}
	fail := func(stage Stage, err error) PlannedPage {
		planned.Action = ActionError
		planned.Err = &PageError{Page: name, Stage: stage, Err: err}
		return planned
	}

	existence, _, err := site.Probe(ctx, r.client, url)
	if err != nil {
		return fail(StageProbe, err)
	}
	planned.Exists = existence == site.Exists

	switch {
	case !planned.Exists:
		planned.Action = ActionCreate
	case page.Overwrite:
		planned.Action = ActionOverwrite
	default:
		planned.Action = ActionSkip
	}

	attached := map[string]struct{}{}
	if planned.Action == ActionSkip && len(page.WebParts) > 0 {
		existing, err := r.client.WebParts(ctx, url)
		if err != nil {
			return fail(StageWebParts, err)
		}
		for _, wp := range existing {
			attached[wp.Title] = struct{}{}
		}
	} else if planned.Action != ActionSkip {
		rec, err := layout.Resolve(r.layouts, page.Layout, name)
		if err != nil {
			return fail(StageCreate, err)
		}
		planned.Layout = rec.URL
	}
	for _, wp := range page.WebParts {
		if _, ok := attached[wp.Title]; ok {
			continue
		}
		attached[wp.Title] = struct{}{}
		planned.WebParts = append(planned.WebParts, wp.Title)
	}
	return planned
}
