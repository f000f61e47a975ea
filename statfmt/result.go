// Copyright 2025 The simstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package statfmt parses loosely formatted performance-statistics
// text files.
//
// The format is line oriented: the first whitespace-separated token
// of a line names a metric and a numeric value appears somewhere
// later in the line. The producers of these files are not under our
// control and their formatting varies, so the parser is deliberately
// tolerant: decorative parentheses and colon separators are stripped,
// thousands-separator commas are accepted, invalid UTF-8 is dropped,
// and lines that yield no name/value pair are skipped rather than
// reported.
//
// This package is designed to be used with the higher-level packages
// stattab and statseries.
package statfmt

// A Result holds the metrics parsed from a single stats file.
type Result struct {
	// File is the base name of the file the metrics were read
	// from.
	File string

	// Dim is the dimension extracted from File, typically a
	// problem size embedded before the extension. It is only
	// meaningful if HasDim is true; a name with no digit run has
	// no dimension, which is a normal case, not an error.
	Dim    int
	HasDim bool

	// Metrics maps each metric name to the last value recorded
	// for it in the file. Names that repeat across simulation
	// phases keep only their final value.
	Metrics map[string]float64
}

// Value returns the recorded value of the named metric.
func (r *Result) Value(name string) (float64, bool) {
	v, ok := r.Metrics[name]
	return v, ok
}
