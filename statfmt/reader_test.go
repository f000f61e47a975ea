// Copyright 2025 The simstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package statfmt

import (
	"strings"
	"testing"
)

func checkMetrics(t *testing.T, input string, want ...Metric) {
	t.Helper()
	r := NewReader(strings.NewReader(input), "test")
	var got []Metric
	for r.Scan() {
		got = append(got, r.Metric())
	}
	if err := r.Err(); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("metric %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestReader(t *testing.T) {
	checkMetrics(t, `
# softmax scalar run
throughput_ops 1,234.5 ops/s
latency_ms: 2.3
sim_ticks (ticks) 1,860,000,000
`,
		Metric{"throughput_ops", 1234.5},
		Metric{"latency_ms", 2.3},
		Metric{"sim_ticks", 1.86e9},
	)
}

func TestReaderSkipsNonMetricLines(t *testing.T) {
	checkMetrics(t, `
# comment, even with a value 42
   # indented comment
lonely_token
name_without_value none recorded
words only on this line
total: 7
`,
		// "total: 7" normalizes to "total 7"; everything else
		// lacks either a second token or a number.
		Metric{"total", 7},
	)
}

func TestReaderRepeatedNames(t *testing.T) {
	// The Reader reports every occurrence; collapsing repeats is
	// the caller's policy.
	checkMetrics(t, "phase_time 1.5\nphase_time 2.5\n",
		Metric{"phase_time", 1.5},
		Metric{"phase_time", 2.5},
	)
}

func TestReaderDecoration(t *testing.T) {
	checkMetrics(t, `
(cache_misses) 99
hit_rate:97.5 %
spaces	and	tabs 3
`,
		Metric{"cache_misses", 99},
		Metric{"hit_rate", 97.5},
		Metric{"spaces", 3},
	)
}

func TestReaderInvalidUTF8(t *testing.T) {
	// Invalid byte sequences are dropped, not fatal; the rest of
	// the line still parses.
	checkMetrics(t, "temp_\xffc 41.5\nnext 1\n",
		Metric{"temp_c", 41.5},
		Metric{"next", 1},
	)
}
