// Copyright 2025 The simstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stattab

import (
	"encoding/csv"
	"fmt"
	"io"
)

// ToCSV writes the table in CSV form: a header row with the column
// schema, then one data row per input file, in input order.
//
// Warnings are written to a separate stream so as not to interrupt
// the regular shape of the CSV output. Currently the only warning is
// a metric shadowed by a reserved column name; if an upstream format
// ever uses "dimension" or "file" for a real metric, this is where it
// surfaces.
func (t *Table) ToCSV(w, warnings io.Writer) error {
	o := csv.NewWriter(w)
	if err := o.Write(t.Cols); err != nil {
		return err
	}
	record := make([]string, len(t.Cols))
	for _, row := range t.Rows {
		for i, col := range t.Cols {
			record[i] = t.Cell(row, col)
		}
		if err := o.Write(record); err != nil {
			return err
		}
		for _, col := range []string{ColDim, ColFile} {
			if _, ok := row.Metrics[col]; ok {
				fmt.Fprintf(warnings, "%s: metric %q shadowed by the reserved %s column\n", row.File, col, col)
			}
		}
	}
	o.Flush()
	return o.Error()
}
