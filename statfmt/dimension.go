// Copyright 2025 The simstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package statfmt

import (
	"regexp"
	"strconv"
)

var digitRun = regexp.MustCompile(`[0-9]+`)

// Dimension extracts the problem dimension embedded in a stats file
// name. The dimension is the integer value of the last maximal run of
// decimal digits in name, so version numbers or dates earlier in the
// name do not interfere:
//
//	softmax_N8000.txt  -> 8000
//	stats_v2_65536.txt -> 65536
//
// Names with no digits are normal for files without a size suffix;
// for those ok is false.
func Dimension(name string) (dim int, ok bool) {
	runs := digitRun.FindAllString(name, -1)
	if len(runs) == 0 {
		return 0, false
	}
	dim, err := strconv.Atoi(runs[len(runs)-1])
	if err != nil {
		// Only reachable if the run overflows int.
		return 0, false
	}
	return dim, true
}
