// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
)

type (
	// ActionableError is a user-facing error. It names the command step that
	// failed, the template or site it worked on, and the pages that failed
	// with the reconciliation stage each stopped at.
	//
	//	err := issue.NewErrorContext().
	//		WithOperation("apply template").
	//		WithResource("site.cue").
	//		WithPageFailure("Home.aspx", "create", createErr).
	//		WithIssue(issue.PagesFailedId).
	//		Build()
	ActionableError struct {
		// Operation is a verb phrase such as "apply template" or "open site".
		Operation string
		// Resource is the template file or site directory involved.
		Resource string
		// Pages lists failed pages in template order.
		Pages []PageFailure
		// Suggestions are printed as bullets below the message.
		Suggestions []string
		// Cause is set for failures that are not tied to one page.
		Cause error
		// IssueID links to a help page in the issue catalog; zero means none.
		IssueID Id
	}

	// PageFailure is one page that could not be provisioned. Err is the
	// page's own error, without the page and stage.
	PageFailure struct {
		Page  string
		Stage string
		Err   error
	}

	// ErrorContext builds an ActionableError step by step.
	ErrorContext struct {
		err ActionableError
	}
)

// NewErrorContext creates a new ErrorContext builder.
func NewErrorContext() *ErrorContext {
	return &ErrorContext{}
}

func (e *ActionableError) Error() string {
	parts := []string{"failed to " + e.Operation}
	if e.Resource != "" {
		parts = append(parts, e.Resource)
	}
	switch {
	case e.Cause != nil:
		parts = append(parts, e.Cause.Error())
	case len(e.Pages) == 1:
		parts = append(parts, e.Pages[0].String())
	case len(e.Pages) > 1:
		parts = append(parts, fmt.Sprintf("%d pages failed", len(e.Pages)))
	}
	return strings.Join(parts, ": ")
}

// Unwrap exposes the cause and every page error to errors.Is and errors.As.
func (e *ActionableError) Unwrap() []error {
	out := make([]error, 0, len(e.Pages)+1)
	if e.Cause != nil {
		out = append(out, e.Cause)
	}
	for _, p := range e.Pages {
		if p.Err != nil {
			out = append(out, p.Err)
		}
	}
	return out
}

// Format renders the error for the terminal. Failed pages are listed one per
// line with their stage; verbose mode adds each page's error and the error
// chain of the cause.
func (e *ActionableError) Format(verbose bool) string {
	var msg strings.Builder
	msg.WriteString(e.Error())

	if len(e.Pages) > 0 {
		msg.WriteString("\n")
		for _, p := range e.Pages {
			fmt.Fprintf(&msg, "\n  %s failed at %s", p.Page, p.Stage)
			if verbose && p.Err != nil {
				fmt.Fprintf(&msg, ": %s", p.Err)
			}
		}
	}

	if len(e.Suggestions) > 0 {
		msg.WriteString("\n")
		for _, s := range e.Suggestions {
			msg.WriteString("\n  • " + s)
		}
	}

	if verbose && e.Cause != nil {
		msg.WriteString("\n\nError chain:")
		for depth, err := 1, e.Cause; err != nil; depth, err = depth+1, errors.Unwrap(err) {
			fmt.Fprintf(&msg, "\n  %d. %s", depth, err)
		}
	}
	return msg.String()
}

// Issue returns the linked catalog entry, or nil.
func (e *ActionableError) Issue() *Issue {
	if e.IssueID == 0 {
		return nil
	}
	return Get(e.IssueID)
}

func (p PageFailure) String() string {
	s := p.Page + " failed at " + p.Stage
	if p.Err != nil {
		s += ": " + p.Err.Error()
	}
	return s
}

// WithOperation sets the command step, a verb phrase like "open site".
func (c *ErrorContext) WithOperation(op string) *ErrorContext {
	c.err.Operation = op
	return c
}

// WithResource sets the template file or site directory involved.
func (c *ErrorContext) WithResource(res string) *ErrorContext {
	c.err.Resource = res
	return c
}

// WithPageFailure records a page that failed at stage.
func (c *ErrorContext) WithPageFailure(page, stage string, err error) *ErrorContext {
	c.err.Pages = append(c.err.Pages, PageFailure{Page: page, Stage: stage, Err: err})
	return c
}

// WithSuggestion adds a fix hint. It can be called more than once.
func (c *ErrorContext) WithSuggestion(sug string) *ErrorContext {
	c.err.Suggestions = append(c.err.Suggestions, sug)
	return c
}

// WithIssue links the error to a catalog entry.
func (c *ErrorContext) WithIssue(id Id) *ErrorContext {
	c.err.IssueID = id
	return c
}

// Wrap sets the underlying cause.
func (c *ErrorContext) Wrap(err error) *ErrorContext {
	c.err.Cause = err
	return c
}

// Build returns the ActionableError, or a nil error when no operation was set.
func (c *ErrorContext) Build() error {
	if c.err.Operation == "" {
		return nil
	}
	ae := c.err
	ae.Pages = append([]PageFailure(nil), c.err.Pages...)
	ae.Suggestions = append([]string(nil), c.err.Suggestions...)
	return &ae
}
