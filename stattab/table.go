// Copyright 2025 The simstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stattab collates per-file stats results into a single wide
// table with a deterministic column schema.
package stattab

import (
	"sort"
	"strconv"

	"simstat/statfmt"
)

// Reserved column names. They are assigned after parsing, so a metric
// that happens to use one of these names is shadowed by the reserved
// value rather than getting its own column.
const (
	ColDim  = "dimension"
	ColFile = "file"
)

// A Table is an ordered sequence of per-file rows sharing one column
// schema.
type Table struct {
	// Cols is the column schema: "dimension", then "file", then
	// the union of the metric names of all rows in code-point
	// order. Given the same inputs the schema is identical across
	// runs, regardless of map iteration order.
	Cols []string

	// Rows holds one parse result per input file, in input order.
	Rows []*statfmt.Result
}

// Collate reads every file in paths, in order, and unifies the
// per-file metric sets into one Table. Unreadable files are reported
// through warn, if non-nil, and still produce a row with only the
// dimension and file cells populated. An empty paths yields an empty
// Table whose schema is just the reserved columns.
func Collate(paths []string, warn func(error)) *Table {
	files := statfmt.Files{Paths: paths, Warn: warn}
	var rows []*statfmt.Result
	for files.Scan() {
		rows = append(rows, files.Result())
	}
	return New(rows)
}

// New builds a Table from rows, deriving the column schema.
func New(rows []*statfmt.Result) *Table {
	names := make(map[string]bool)
	for _, row := range rows {
		for name := range row.Metrics {
			if name == ColDim || name == ColFile {
				// Shadowed by a reserved column; Cell
				// never reads these keys.
				continue
			}
			names[name] = true
		}
	}
	metricCols := make([]string, 0, len(names))
	for name := range names {
		metricCols = append(metricCols, name)
	}
	// Maps iterate in random order; the schema must not.
	sort.Strings(metricCols)

	cols := make([]string, 0, len(metricCols)+2)
	cols = append(cols, ColDim, ColFile)
	cols = append(cols, metricCols...)
	return &Table{Cols: cols, Rows: rows}
}

// Cell returns the string form of one cell: a plain integer for
// "dimension", the base file name for "file", and the metric value
// otherwise. A cell whose column the row did not produce is empty,
// not zero.
func (t *Table) Cell(row *statfmt.Result, col string) string {
	switch col {
	case ColDim:
		if !row.HasDim {
			return ""
		}
		return strconv.Itoa(row.Dim)
	case ColFile:
		return row.File
	}
	v, ok := row.Metrics[col]
	if !ok {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
