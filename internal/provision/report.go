// SPDX-License-Identifier: MPL-2.0

package provision

import "errors"

// Page actions.
const (
	ActionCreate    Action = "create"
	ActionOverwrite Action = "overwrite"
	ActionSkip      Action = "skip"
	ActionError     Action = "error"
)

// Reconciliation stages, in execution order.
const (
	StageProbe    Stage = "probe"
	StageHomePage Stage = "home page"
	StageDelete   Stage = "delete"
	StageCreate   Stage = "create"
	StageFields   Stage = "fields"
	StageWebParts Stage = "web parts"
	StagePublish  Stage = "publish"
)

type (
	// Action is what the provisioner decided to do with an existing or missing page.
	Action string

	// Stage names a step of page reconciliation.
	Stage string

	// PageOutcome is the result of reconciling one page.
	PageOutcome struct {
		// Page is the normalized page name.
		Page string
		// Path is the server-relative URL of the page.
		Path   string
		Action Action
		// WebPartsAdded counts the web parts attached during this run.
		WebPartsAdded int
		// Published is true when the page ended the run published.
		Published bool
		// Err is a *PageError when the page failed.
		Err error
	}

	// Report collects the outcome of every page of a run, in template order.
	Report struct {
		Site  string
		Pages []PageOutcome
	}
)

// Failed reports whether the page failed.
func (o PageOutcome) Failed() bool {
	return o.Err != nil
}

// Stage returns the stage the page failed at, or "" when it succeeded.
func (o PageOutcome) Stage() Stage {
	var pe *PageError
	if errors.As(o.Err, &pe) {
		return pe.Stage
	}
	return ""
}

// Failures returns the outcomes of failed pages.
func (r *Report) Failures() []PageOutcome {
	var out []PageOutcome
	for _, o := range r.Pages {
		if o.Failed() {
			out = append(out, o)
		}
	}
	return out
}

// Err joins the page errors of the run, or returns nil when every page succeeded.
func (r *Report) Err() error {
	var errs []error
	for _, o := range r.Pages {
		if o.Err != nil {
			errs = append(errs, o.Err)
		}
	}
	return errors.Join(errs...)
}
