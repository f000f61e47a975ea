// Copyright 2025 The simstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package statdb_test

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"simstat/statdb"
	_ "simstat/statdb/sqlite3"
	"simstat/statfmt"
	"simstat/stattab"
)

// openTestDB opens a file-backed sqlite database. A file, not
// ":memory:": database/sql pools connections and each in-memory
// connection would see its own database.
func openTestDB(t *testing.T) *statdb.DB {
	t.Helper()
	db, err := statdb.OpenSQL("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestArchiveTable(t *testing.T) {
	db := openTestDB(t)

	tab := stattab.New([]*statfmt.Result{
		{File: "run_N10.txt", Dim: 10, HasDim: true, Metrics: map[string]float64{"latency_ms": 1.5}},
		{File: "broken.txt", Metrics: map[string]float64{}},
		{File: "run_N20.txt", Dim: 20, HasDim: true, Metrics: map[string]float64{"latency_ms": 2.5, "throughput_ops": 100}},
	})

	run, err := db.NewRun(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if err := run.InsertTable(tab); err != nil {
		t.Fatal(err)
	}

	rows, err := db.RunRows(run.ID)
	if err != nil {
		t.Fatal(err)
	}
	want := []map[string]string{
		{"dimension": "10", "file": "run_N10.txt", "latency_ms": "1.5"},
		{"file": "broken.txt"},
		{"dimension": "20", "file": "run_N20.txt", "latency_ms": "2.5", "throughput_ops": "100"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("got rows %v, want %v", rows, want)
	}
}

func TestCountRuns(t *testing.T) {
	db := openTestDB(t)

	for i := 1; i <= 3; i++ {
		if _, err := db.NewRun(context.Background()); err != nil {
			t.Fatal(err)
		}
		count, err := db.CountRuns()
		if err != nil {
			t.Fatal(err)
		}
		if count != i {
			t.Errorf("got %d runs, want %d", count, i)
		}
	}
}

func TestRunsIsolated(t *testing.T) {
	db := openTestDB(t)

	tab1 := stattab.New([]*statfmt.Result{
		{File: "a_N1.txt", Dim: 1, HasDim: true, Metrics: map[string]float64{"m": 1}},
	})
	tab2 := stattab.New([]*statfmt.Result{
		{File: "b_N2.txt", Dim: 2, HasDim: true, Metrics: map[string]float64{"m": 2}},
	})

	run1, err := db.NewRun(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	run2, err := db.NewRun(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if run1.ID == run2.ID {
		t.Fatalf("runs share ID %s", run1.ID)
	}
	if err := run1.InsertTable(tab1); err != nil {
		t.Fatal(err)
	}
	if err := run2.InsertTable(tab2); err != nil {
		t.Fatal(err)
	}

	rows, err := db.RunRows(run1.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0]["file"] != "a_N1.txt" {
		t.Errorf("run %s: got rows %v, want only a_N1.txt", run1.ID, rows)
	}
}
