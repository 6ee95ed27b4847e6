// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"errors"
	"fmt"
)

// ErrSiteNotPublishing is returned when the target site does not have
// publishing enabled.
var ErrSiteNotPublishing = errors.New("site is not a publishing site")

type (
	// PreconditionError aborts a whole run before any page is touched.
	PreconditionError struct {
		Site string
	}

	// PageError is the failure of one page at one stage of its reconciliation.
	PageError struct {
		Page  string
		Stage Stage
		Err   error
	}
)

// Error implements the error interface.
func (e *PreconditionError) Error() string {
	return fmt.Sprintf("site '%s' is not a publishing site", e.Site)
}

// Unwrap returns ErrSiteNotPublishing for errors.Is() compatibility.
func (e *PreconditionError) Unwrap() error {
	return ErrSiteNotPublishing
}

// Error implements the error interface.
func (e *PageError) Error() string {
	return fmt.Sprintf("page %s failed at %s: %v", e.Page, e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *PageError) Unwrap() error {
	return e.Err
}
