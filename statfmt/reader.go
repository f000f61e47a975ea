// Copyright 2025 The simstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package statfmt

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// A Metric is a single name/value pair read from a stats file.
type Metric struct {
	Name  string
	Value float64
}

// A Reader reads metric lines from a single stats file.
//
// Its API is modeled on bufio.Scanner: call Scan to advance to the
// next metric line and Metric to retrieve it. Lines that carry no
// metric (blank lines, # comments, lines without both a name and a
// value) are an expected part of the format and are skipped silently.
//
// The Reader yields every occurrence of a repeated metric name, in
// line order; collapsing repeats is left to the caller.
//
// To construct a new Reader, either call NewReader, or call Reset on
// a zeroed Reader.
type Reader struct {
	s        *bufio.Scanner
	fileName string
	line     int

	metric Metric
	err    error // current I/O error
}

// NewReader constructs a Reader that parses stats from r.
// fileName is used in error messages; it is purely diagnostic.
func NewReader(r io.Reader, fileName string) *Reader {
	reader := new(Reader)
	reader.Reset(r, fileName)
	return reader
}

// Reset resets the Reader to begin reading from a new input.
func (r *Reader) Reset(ior io.Reader, fileName string) {
	r.s = bufio.NewScanner(ior)
	if fileName == "" {
		fileName = "<unknown>"
	}
	r.fileName = fileName
	r.line = 0
	r.metric = Metric{}
	r.err = nil
}

// normalizer drops decorative parentheses and turns colon separators
// into plain whitespace, so that tokenization and number matching see
// a uniform line.
var normalizer = strings.NewReplacer("(", "", ")", "", ":", " ")

// Scan advances the Reader to the next metric line and reports
// whether one was found. When Scan returns false the caller should
// use Err to distinguish end of input from an I/O error.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}

	for r.s.Scan() {
		r.line++
		line := r.s.Bytes()
		if !utf8.Valid(line) {
			// Tolerate mis-encoded producers: drop the bad
			// sequences and parse what remains.
			line = bytes.ToValidUTF8(line, nil)
		}
		text := strings.TrimSpace(string(line))
		if text == "" || text[0] == '#' {
			continue
		}
		cleaned := normalizer.Replace(text)
		tokens := strings.Fields(cleaned)
		if len(tokens) < 2 {
			// No name/value pair present.
			continue
		}
		// The metric name is the first token; the value is the
		// first number anywhere in the line, which tolerates
		// descriptive tokens between name and value. A digit
		// run inside the name itself wins over a later value
		// token.
		val, ok := ExtractNumber(cleaned)
		if !ok {
			continue
		}
		r.metric = Metric{Name: tokens[0], Value: val}
		return true
	}

	if err := r.s.Err(); err != nil {
		r.err = fmt.Errorf("%s:%d: %w", r.fileName, r.line, err)
	}
	return false
}

// Metric returns the metric read by the last successful call to Scan.
func (r *Reader) Metric() Metric {
	return r.metric
}

// Err returns the first I/O error encountered by the Reader. Lines
// that fail to parse are not errors; they are skipped.
func (r *Reader) Err() error {
	return r.err
}
