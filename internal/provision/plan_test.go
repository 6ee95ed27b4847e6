// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/pubpages/pubpages/internal/layout"
	"github.com/pubpages/pubpages/internal/site"
	"github.com/pubpages/pubpages/pkg/pagetemplate"
)

func TestPlan(t *testing.T) {
	t.Parallel()

	m := newMockSite()
	m.addPage("Existing.aspx", site.LevelPublished, "X")
	m.addPage("Replaced.aspx", site.LevelPublished)
	m.inject("GetFile "+pageURL("Denied.aspx"), site.NewServerError(site.CodeAccessDenied, "", "denied"))

	tmpl := newTemplate(
		pagetemplate.NewPublishingPage("New", "Welcome", false, webParts("Hero", "Hero"), nil, nil),
		pagetemplate.NewPublishingPage("Existing", "Article", false, webParts("X", "Y"), nil, nil),
		pagetemplate.NewPublishingPage("Replaced", "WelcomeSplash", true, nil, nil, nil),
		pagetemplate.NewPublishingPage("Broken", "nope", false, nil, nil, nil),
		pagetemplate.NewPublishingPage("Denied", "Article", false, nil, nil, nil),
	)

	plan, err := NewPublishingPages(quietConfig()).Plan(context.Background(), m, tmpl, nil)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	want := []PlannedPage{
		{Name: "New.aspx", Path: pageURL("New.aspx"), Action: ActionCreate, Layout: "/_catalogs/masterpage/WelcomeSplash.aspx", WebParts: []string{"Hero"}},
		{Name: "Existing.aspx", Path: pageURL("Existing.aspx"), Exists: true, Action: ActionSkip, WebParts: []string{"Y"}},
		{Name: "Replaced.aspx", Path: pageURL("Replaced.aspx"), Exists: true, Action: ActionOverwrite, Layout: "/_catalogs/masterpage/WelcomeSplash.aspx"},
		{Name: "Broken.aspx", Path: pageURL("Broken.aspx"), Action: ActionError},
		{Name: "Denied.aspx", Path: pageURL("Denied.aspx"), Action: ActionError},
	}
	if diff := cmp.Diff(want, plan, cmpopts.IgnoreFields(PlannedPage{}, "Err")); diff != "" {
		t.Errorf("plan mismatch (-want +got):\n%s", diff)
	}
	if !errors.Is(plan[3].Err, layout.ErrLayoutNotFound) {
		t.Errorf("Broken.aspx error = %v, want layout not found", plan[3].Err)
	}
	if code, _ := site.CodeOf(plan[4].Err); code != site.CodeAccessDenied {
		t.Errorf("Denied.aspx error = %v, want access denied", plan[4].Err)
	}

	for _, method := range []string{"DeleteFile", "CreatePublishingPage", "AddWebPart", "SetPageFields", "CheckIn", "Publish", "ClearHomePage", "SetHomePage"} {
		if n := m.count(method); n != 0 {
			t.Errorf("Plan() called %s %d times", method, n)
		}
	}
	if tmpl.PublishingPages.Pages()[0].Name != "New" {
		t.Error("Plan() must not rewrite page names")
	}
}

func TestPlan_NotPublishingSite(t *testing.T) {
	t.Parallel()

	m := newMockSite()
	m.publishing = false
	_, err := NewPublishingPages(quietConfig()).Plan(context.Background(), m, newTemplate(), nil)
	if !errors.Is(err, ErrSiteNotPublishing) {
		t.Errorf("Plan() error = %v, want ErrSiteNotPublishing", err)
	}
}
