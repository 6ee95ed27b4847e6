// SPDX-License-Identifier: MPL-2.0

// Package layout resolves page layout references against a layout catalog.
package layout

import (
	"errors"
	"fmt"
)

// ErrLayoutNotFound is the sentinel wrapped by NotFoundError.
var ErrLayoutNotFound = errors.New("layout not found")

type (
	// Record is one entry of the site's layout catalog.
	Record struct {
		// Title is optional; a nil Title never matches.
		Title       *string
		DisplayName string
		// URL is the server-relative location of the layout file.
		URL string
	}

	// Strategy matches a reference against one record.
	Strategy struct {
		Name  string
		Match func(rec Record, reference string) bool
	}

	// NotFoundError reports a reference no strategy could resolve.
	NotFoundError struct {
		Reference string
		Page      string
	}
)

// DefaultStrategies is the lookup order: exact title, then exact display name.
var DefaultStrategies = []Strategy{
	{Name: "title", Match: matchTitle},
	{Name: "display name", Match: matchDisplayName},
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("layout %q for page %s can not be found", e.Reference, e.Page)
}

// Unwrap returns ErrLayoutNotFound for errors.Is() compatibility.
func (e *NotFoundError) Unwrap() error {
	return ErrLayoutNotFound
}

// NewRecord builds a record with a title.
func NewRecord(title, displayName, url string) Record {
	return Record{Title: &title, DisplayName: displayName, URL: url}
}

// Resolve returns the first record matched by DefaultStrategies.
// page is only used in the error.
func Resolve(records []Record, reference, page string) (Record, error) {
	return ResolveWith(DefaultStrategies, records, reference, page)
}

// ResolveWith evaluates strategies in order over the whole catalog; the first
// strategy with any match wins, and within it the first matching record.
func ResolveWith(strategies []Strategy, records []Record, reference, page string) (Record, error) {
	for _, strategy := range strategies {
		for _, rec := range records {
			if strategy.Match(rec, reference) {
				return rec, nil
			}
		}
	}
	return Record{}, &NotFoundError{Reference: reference, Page: page}
}

func matchTitle(rec Record, reference string) bool {
	return rec.Title != nil && *rec.Title == reference
}

func matchDisplayName(rec Record, reference string) bool {
	return rec.DisplayName == reference
}
