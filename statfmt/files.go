// Copyright 2025 The simstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package statfmt

import (
	"fmt"
	"os"
	"path/filepath"
)

// A Files parses a sequence of stats files, producing exactly one
// Result per input path, in input order.
//
// Files is tolerant of broken inputs: a path that cannot be opened or
// read contributes an empty Result, with its file name and dimension
// still populated, plus a warning. One bad file in a batch must never
// cost the rest of the batch its output.
type Files struct {
	// Paths is the list of file names to read, in output row
	// order.
	Paths []string

	// Warn, if non-nil, is called once for each non-fatal
	// per-file failure. If nil, such failures are recovered
	// silently.
	Warn func(err error)

	// inputs is the sequence of remaining paths, or nil if this
	// Files has not started yet. Note that this distinguishes nil
	// from length 0.
	inputs []string

	result Result
}

// Scan advances to the next input file and reports whether one was
// processed. Every path yields a Result, readable or not, so Scan
// returns true exactly len(f.Paths) times.
func (f *Files) Scan() bool {
	if f.inputs == nil {
		f.inputs = f.Paths
		if f.inputs == nil {
			f.inputs = []string{}
		}
	}
	if len(f.inputs) == 0 {
		return false
	}
	path := f.inputs[0]
	f.inputs = f.inputs[1:]

	base := filepath.Base(path)
	f.result = Result{File: base, Metrics: make(map[string]float64)}
	f.result.Dim, f.result.HasDim = Dimension(base)

	if err := f.parseFile(path); err != nil {
		// The file still gets a row; only its metrics are
		// lost.
		f.result.Metrics = make(map[string]float64)
		if f.Warn != nil {
			f.Warn(fmt.Errorf("skipping contents of %s: %w", path, err))
		}
	}
	return true
}

// parseFile folds every metric line of path into f.result.Metrics.
// Later occurrences of a name overwrite earlier ones: formats may
// legitimately repeat a metric across simulation phases and only the
// final value is kept.
func (f *Files) parseFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	r := NewReader(file, path)
	for r.Scan() {
		m := r.Metric()
		f.result.Metrics[m.Name] = m.Value
	}
	return r.Err()
}

// Result returns the Result read by the last call to Scan. The
// returned Result is not reused; it remains valid after further
// Scans.
func (f *Files) Result() *Result {
	res := f.result
	return &res
}
