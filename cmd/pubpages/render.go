// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pubpages/pubpages/internal/issue"
	"github.com/pubpages/pubpages/internal/layout"
	"github.com/pubpages/pubpages/internal/provision"
	"github.com/pubpages/pubpages/internal/site"
)

// classifyError maps a provisioning failure to the catalog entry that explains it.
func classifyError(err error) issue.Id {
	switch {
	case errors.Is(err, provision.ErrSiteNotPublishing):
		return issue.SiteNotPublishingId
	case errors.Is(err, layout.ErrLayoutNotFound):
		return issue.LayoutNotFoundId
	case site.IsTransient(err):
		return issue.SiteUnavailableId
	}
	if code, ok := site.CodeOf(err); ok && code == site.CodeAccessDenied {
		return issue.PermissionDeniedId
	}
	return issue.PagesFailedId
}

func actionStyle(action provision.Action) string {
	label := string(action)
	switch action {
	case provision.ActionCreate:
		return SuccessStyle.Render(label)
	case provision.ActionOverwrite:
		return WarningStyle.Render(label)
	case provision.ActionError:
		return ErrorStyle.Render(label)
	default:
		return SubtitleStyle.Render(label)
	}
}

func renderReport(w io.Writer, report *provision.Report, verbose bool) {
	fmt.Fprintln(w, TitleStyle.Render("Publishing pages")+SubtitleStyle.Render(" on "+report.Site))
	if len(report.Pages) == 0 {
		fmt.Fprintln(w, SubtitleStyle.Render("  no pages selected"))
		return
	}

	var published, failed int
	for _, o := range report.Pages {
		detail := ""
		switch {
		case o.Failed():
			failed++
			detail = ErrorStyle.Render("failed at " + string(o.Stage()))
			if verbose {
				detail += SubtitleStyle.Render(": " + o.Err.Error())
			}
		case o.Published:
			published++
			detail = SuccessStyle.Render("published")
			if o.WebPartsAdded > 0 {
				detail += SubtitleStyle.Render(fmt.Sprintf(", %d web part(s) added", o.WebPartsAdded))
			}
		}
		fmt.Fprintf(w, "  %s %s %s\n", columnStyle.Render(CmdStyle.Render(o.Page)), actionStyle(o.Action), detail)
	}

	summary := fmt.Sprintf("%d page(s), %d published", len(report.Pages), published)
	if failed > 0 {
		fmt.Fprintln(w, ErrorStyle.Render(summary+fmt.Sprintf(", %d failed", failed)))
		return
	}
	fmt.Fprintln(w, SuccessStyle.Render(summary))
}

func renderPlan(w io.Writer, siteURL string, plan []provision.PlannedPage, verbose bool) {
	fmt.Fprintln(w, TitleStyle.Render("Plan")+SubtitleStyle.Render(" for "+siteURL))
	if len(plan) == 0 {
		fmt.Fprintln(w, SubtitleStyle.Render("  no pages selected"))
		return
	}
	for _, p := range plan {
		var detail []string
		if p.Err != nil {
			detail = append(detail, ErrorStyle.Render(p.Err.Error()))
		}
		if p.Layout != "" && verbose {
			detail = append(detail, SubtitleStyle.Render("layout "+p.Layout))
		}
		if len(p.WebParts) > 0 {
			detail = append(detail, SubtitleStyle.Render("web parts: "+strings.Join(p.WebParts, ", ")))
		}
		fmt.Fprintf(w, "  %s %s %s\n", columnStyle.Render(CmdStyle.Render(p.Name)), actionStyle(p.Action), strings.Join(detail, " "))
	}
}

func renderLayouts(w io.Writer, records []layout.Record) {
	fmt.Fprintln(w, TitleStyle.Render("Page layouts"))
	for _, rec := range records {
		title := SubtitleStyle.Render("(no title)")
		if rec.Title != nil {
			title = *rec.Title
		}
		fmt.Fprintf(w, "  %s %s %s\n", columnStyle.Render(CmdStyle.Render(rec.DisplayName)), columnStyle.Render(title), SubtitleStyle.Render(rec.URL))
	}
}
