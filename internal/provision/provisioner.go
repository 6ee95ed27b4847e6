// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"context"

	"github.com/pubpages/pubpages/internal/site"
	"github.com/pubpages/pubpages/internal/tokens"
	"github.com/pubpages/pubpages/pkg/pagetemplate"
)

type (
	// Provisioner applies one kind of template object to a site and cleans up
	// extracted templates of that kind.
	Provisioner interface {
		// Name identifies the provisioner in logs and reports.
		Name() string

		// WillProvision reports whether Provision has anything to do for t.
		WillProvision(t *pagetemplate.Template) bool

		// Provision reconciles the site with t. parser may be nil, in which case
		// one is built from the site and the template parameters. The returned
		// error is reserved for failures that stop the whole run.
		Provision(ctx context.Context, client site.Client, t *pagetemplate.Template, parser *tokens.Parser) (*Result, error)

		// WillExtract reports whether Extract reads objects from the site.
		WillExtract(t *pagetemplate.Template) bool

		// Extract cleans t against an optional base template.
		Extract(ctx context.Context, t, base *pagetemplate.Template) (*pagetemplate.Template, error)
	}

	// Result contains the output of a provisioning run.
	Result struct {
		// Parser is the token context, including tokens added during the run.
		Parser *tokens.Parser

		// Report holds one outcome per selected page.
		Report *Report
	}
)
