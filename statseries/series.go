// Copyright 2025 The simstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package statseries reduces collated stats tables to per-dimension
// series suitable for plotting.
//
// This is the consumer side of the stattab CSV schema: a table must
// carry the reserved "dimension" and "file" columns plus one
// caller-chosen metric column. Rows are grouped by dimension and the
// metric is averaged within each group, yielding one point per
// distinct dimension.
package statseries

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"
)

// A Point is the mean of one metric over all rows that share a
// dimension.
type Point struct {
	Dim  int
	Mean float64
}

// A Series is one plottable line: the per-dimension means of a single
// metric from a single stats table.
type Series struct {
	// Label identifies the source table, e.g. in chart legends.
	Label string

	// Metric is the name of the averaged metric column.
	Metric string

	// Points is sorted by ascending dimension.
	Points []Point
}

// FromCSV reads one collated CSV table from r and reduces it to a
// Series for metric. The table must have "dimension" and "file"
// columns and a column named metric; a missing column is the caller's
// mistake and an error, unlike the parse tolerances below it. Rows
// whose dimension cell is not a plain integer, including the empty
// cells of files without a size suffix, are dropped, as are rows with
// an empty metric cell.
func FromCSV(r io.Reader, metric, label string) (*Series, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", label, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: empty table", label)
	}
	header, rows := records[0], records[1:]

	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[col] = i
	}
	for _, col := range []string{"dimension", "file", metric} {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%s: missing %q column", label, col)
		}
	}

	var dims []int
	var vals []float64
	for _, r := range rows {
		dim, err := strconv.Atoi(r[idx["dimension"]])
		if err != nil {
			// Dimensionless rows can't be grouped.
			continue
		}
		val, err := strconv.ParseFloat(r[idx[metric]], 64)
		if err != nil {
			continue
		}
		dims = append(dims, dim)
		vals = append(vals, val)
	}
	return group(dims, vals, metric, label), nil
}

// group averages vals by dimension and assembles the sorted Series.
func group(dims []int, vals []float64, metric, label string) *Series {
	s := &Series{Label: label, Metric: metric}
	if len(dims) == 0 {
		return s
	}

	t := new(table.Builder).Add("dimension", dims).Add("value", vals).Done()
	g := ggstat.Agg("dimension")(ggstat.AggMean("value")).F(table.SortBy(t, "dimension"))

	out := g.Table(g.Tables()[0])
	outDims := out.MustColumn("dimension").([]int)
	means := out.MustColumn("mean value").([]float64)
	for i, d := range outDims {
		s.Points = append(s.Points, Point{Dim: d, Mean: means[i]})
	}
	return s
}

// Mean returns the mean of the series' per-dimension means, a
// one-number summary for quickly comparing tables.
func (s *Series) Mean() float64 {
	xs := make([]float64, len(s.Points))
	for i, p := range s.Points {
		xs[i] = p.Mean
	}
	return stats.Mean(xs)
}
