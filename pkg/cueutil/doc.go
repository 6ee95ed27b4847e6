// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE parsing utilities.
//
// The package consolidates the 3-step CUE parsing pattern used by the page
// template loader and the config package:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify with schema
//  3. Validate and decode to Go struct
//
// # Usage
//
//	//go:embed template_schema.cue
//	var schema string
//
//	result, err := cueutil.ParseAndDecodeString[templateDoc](
//	    schema,
//	    data,
//	    "#Template",
//	    cueutil.WithFilename("pages.cue"),
//	)
//	if err != nil {
//	    return nil, err // Error includes CUE path for debugging
//	}
//
// Encode goes the other way and renders a Go value as formatted CUE source.
package cueutil
