// SPDX-License-Identifier: MPL-2.0

package site

import (
	"context"
	"fmt"
)

const (
	// NotFound means the site answered that no file exists at the path.
	NotFound Existence = iota
	// Exists means the file was found.
	Exists
)

// Existence is the outcome of a successful probe.
type Existence int

// String returns the existence name.
func (e Existence) String() string {
	if e == Exists {
		return "exists"
	}
	return "not found"
}

// Probe checks whether a file exists. Only a CodeFileNotFound answer counts as
// absence; any other failure is returned as an error so the caller cannot
// mistake it for a missing file.
func Probe(ctx context.Context, c FileGetter, serverRelativeURL string) (Existence, File, error) {
	file, err := c.GetFile(ctx, serverRelativeURL)
	if err == nil {
		return Exists, file, nil
	}
	if IsNotFound(err) {
		return NotFound, File{}, nil
	}
	return NotFound, File{}, fmt.Errorf("probe %s: %w", serverRelativeURL, err)
}
