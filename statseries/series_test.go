// Copyright 2025 The simstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package statseries

import (
	"math"
	"reflect"
	"strings"
	"testing"
)

const sampleCSV = `dimension,file,latency_ms,throughput_ops
10,run_N10.txt,1.5,100
10,run2_N10.txt,2.5,300
20,run_N20.txt,4,
,warmup.txt,9,9
40,run_N40.txt,8,200
`

func TestFromCSV(t *testing.T) {
	s, err := FromCSV(strings.NewReader(sampleCSV), "latency_ms", "sample")
	if err != nil {
		t.Fatal(err)
	}
	// Rows sharing dimension 10 are averaged; the dimensionless
	// warmup row is dropped.
	want := []Point{{10, 2}, {20, 4}, {40, 8}}
	if !reflect.DeepEqual(s.Points, want) {
		t.Errorf("got points %v, want %v", s.Points, want)
	}
	if got, want := s.Mean(), (2.0+4+8)/3; math.Abs(got-want) > 1e-12 {
		t.Errorf("got mean %v, want %v", got, want)
	}
}

func TestFromCSVEmptyMetricCells(t *testing.T) {
	// The N20 row has no throughput cell; it contributes no point.
	s, err := FromCSV(strings.NewReader(sampleCSV), "throughput_ops", "sample")
	if err != nil {
		t.Fatal(err)
	}
	want := []Point{{10, 200}, {40, 200}}
	if !reflect.DeepEqual(s.Points, want) {
		t.Errorf("got points %v, want %v", s.Points, want)
	}
}

func TestFromCSVUnsorted(t *testing.T) {
	// Points come out in ascending dimension order regardless of
	// row order.
	csv := "dimension,file,m\n30,c.txt,3\n10,a.txt,1\n20,b.txt,2\n"
	s, err := FromCSV(strings.NewReader(csv), "m", "sample")
	if err != nil {
		t.Fatal(err)
	}
	want := []Point{{10, 1}, {20, 2}, {30, 3}}
	if !reflect.DeepEqual(s.Points, want) {
		t.Errorf("got points %v, want %v", s.Points, want)
	}
}

func TestFromCSVMissingColumn(t *testing.T) {
	test := func(metric, wantMissing string) {
		t.Helper()
		_, err := FromCSV(strings.NewReader("dimension,file,m\n1,a,2\n"), metric, "sample")
		if err == nil || !strings.Contains(err.Error(), wantMissing) {
			t.Errorf("metric %q: got err %v, want missing %s", metric, err, wantMissing)
		}
	}
	test("nope", `missing "nope" column`)

	_, err := FromCSV(strings.NewReader("a,b\n1,2\n"), "b", "sample")
	if err == nil || !strings.Contains(err.Error(), `missing "dimension" column`) {
		t.Errorf("got err %v, want missing dimension", err)
	}
}

func TestFromCSVNoUsableRows(t *testing.T) {
	s, err := FromCSV(strings.NewReader("dimension,file,m\n,a.txt,1\n"), "m", "sample")
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Points) != 0 {
		t.Errorf("got points %v, want none", s.Points)
	}
}
