// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"maps"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

type Id int

const (
	TemplateNotFoundId Id = iota + 1
	TemplateParseErrorId
	SiteNotFoundId
	SiteNotPublishingId
	LayoutNotFoundId
	PagesFailedId
	SiteUnavailableId
	PermissionDeniedId
	ConfigLoadFailedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue for a terminal using a glamour style name or path.
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.extLinks {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	templateNotFoundIssue = &Issue{
		id: TemplateNotFoundId,
		mdMsg: `
# Template not found!

The template file passed to the command does not exist or can not be read.

## Things you can try:
- Check the path and try again
- Create a starter template:
~~~
$ pubpages template init site.cue
~~~`,
	}

	templateParseErrorIssue = &Issue{
		id: TemplateParseErrorId,
		mdMsg: `
# Template is not valid!

The template could not be parsed or does not match the template schema.

## Things you can try:
- Look at the field path in the error above
- Every page needs a ` + "`name`" + ` and a ` + "`layout`" + `
- Every web part needs a ` + "`title`" + ` and a ` + "`zone`" + `; ` + "`order`" + ` must not be negative

## Minimal template:
~~~cue
id: "news"
publishing_pages: [{
	name:   "Home"
	layout: "Article page"
	web_parts: [{
		title:    "Hero"
		zone:     "Header"
		contents: "<webPart/>"
	}]
}]
~~~`,
	}

	siteNotFoundIssue = &Issue{
		id: SiteNotFoundId,
		mdMsg: `
# Site not found!

The site directory has no ` + "`site.toml`" + ` manifest.

## Things you can try:
- Point ` + "`--site`" + ` (or ` + "`site_root`" + ` in your config) at an existing site
- Create a new site:
~~~
$ pubpages site init ./site --url /sites/news --title News
~~~`,
	}

	siteNotPublishingIssue = &Issue{
		id: SiteNotPublishingId,
		mdMsg: `
# Site is not a publishing site!

Publishing pages can only be provisioned on sites with publishing enabled.
No page was changed.

## Things you can try:
- Enable publishing on the site (` + "`publishing = true`" + ` in ` + "`site.toml`" + ` for a local site)
- Target a different site with ` + "`--site`" + ``,
	}

	layoutNotFoundIssue = &Issue{
		id: LayoutNotFoundId,
		mdMsg: `
# Page layout not found!

A page references a layout that matches neither the title nor the display
name of any layout in the site catalog. Titles are matched first, then
display names, both case-sensitively.

## Things you can try:
- List the available layouts:
~~~
$ pubpages site layouts
~~~
- Fix the ` + "`layout`" + ` of the page in the template`,
	}

	pagesFailedIssue = &Issue{
		id: PagesFailedId,
		mdMsg: `
# Some pages failed!

Each page is provisioned on its own; the pages listed above failed and the
others were still provisioned and published.

## Things you can try:
- Preview what would happen without changing the site:
~~~
$ pubpages plan site.cue
~~~
- Re-run only the failed pages with ` + "`--page`" + `
- Run with ` + "`--verbose`" + ` to see the full error chain`,
	}

	siteUnavailableIssue = &Issue{
		id: SiteUnavailableId,
		mdMsg: `
# Site is busy or unavailable!

The site throttled the request or could not serve it.

## Things you can try:
- Wait a moment and run the command again
- Raise ` + "`retry.max_attempts`" + ` or ` + "`retry.base_backoff`" + ` in your config`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

The site refused the operation for the current account.

## Things you can try:
- Check that your account can add, delete and publish pages in the page library
- For a local site, check the permissions of the site directory`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file exists but is not valid.

## Things you can try:
- Show where the configuration is read from:
~~~
$ pubpages config path
~~~
- Write a fresh default configuration:
~~~
$ pubpages config init
~~~`,
		extLinks: []HttpLink{"https://cuelang.org/docs/tour/"},
	}

	issues = map[Id]*Issue{
		templateNotFoundIssue.Id():   templateNotFoundIssue,
		templateParseErrorIssue.Id(): templateParseErrorIssue,
		siteNotFoundIssue.Id():       siteNotFoundIssue,
		siteNotPublishingIssue.Id():  siteNotPublishingIssue,
		layoutNotFoundIssue.Id():     layoutNotFoundIssue,
		pagesFailedIssue.Id():        pagesFailedIssue,
		siteUnavailableIssue.Id():    siteUnavailableIssue,
		permissionDeniedIssue.Id():   permissionDeniedIssue,
		configLoadFailedIssue.Id():   configLoadFailedIssue,
	}
)

// Values returns every issue ordered by id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for issue := range maps.Values(issues) {
		out = append(out, issue)
	}
	slices.SortFunc(out, func(a, b *Issue) int {
		return int(a.id) - int(b.id)
	})
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
