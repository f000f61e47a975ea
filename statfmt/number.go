// Copyright 2025 The simstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package statfmt

import (
	"regexp"
	"strconv"
	"strings"
)

// numberPattern matches a number-like substring of a metric line: an
// optional sign, digits with optional comma thousands separators, an
// optional fraction, and an optional exponent. Units or percent signs
// following the number are left unmatched.
//
// Upstream format drift should be absorbed here; this is the only
// rule that decides what counts as a value.
var numberPattern = regexp.MustCompile(`[-+]?[0-9][0-9,]*\.?[0-9]*(?:[eE][-+]?[0-9]+)?`)

// ExtractNumber returns the first number that appears anywhere in s.
// The match may contain thousands-separator commas, which are removed
// before parsing. ok is false if s contains nothing number-like.
func ExtractNumber(s string) (val float64, ok bool) {
	m := numberPattern.FindString(s)
	if m == "" {
		return 0, false
	}
	val, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", ""), 64)
	if err != nil {
		// The pattern can still produce strings ParseFloat
		// rejects, e.g. an out-of-range exponent.
		return 0, false
	}
	return val, true
}
