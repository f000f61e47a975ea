// Copyright 2025 The simstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Statcsv collates loosely structured stats files into one CSV table.
//
// Usage:
//
//	statcsv [-o output.csv] [-store driver:dsn] file...
//
// Each input file holds one metric per line: a metric name followed
// by a numeric value somewhere on the line. The file name's last run
// of digits is taken as the file's dimension. Statcsv unifies the
// per-file metrics into a single table with columns "dimension",
// "file", and then every metric name in sorted order, and writes it
// as CSV. Files that cannot be read still get a row, with only the
// dimension and file cells populated, so one bad input never sinks
// the whole collation.
//
// With -store, the table is additionally archived to a SQL database.
// The sqlite3 and mysql drivers are compiled in; for example
// -store sqlite3:stats.db or -store "mysql:user@/statsdb".
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/go-sql-driver/mysql"

	"simstat/statdb"
	_ "simstat/statdb/sqlite3"
	"simstat/stattab"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: statcsv [flags] file...\n")
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	log.SetPrefix("statcsv: ")
	log.SetFlags(0)

	flagOutput := flag.String("o", "", "write CSV to `file` instead of standard output")
	flagStore := flag.String("store", "", "also archive the table to `driver:dsn` (sqlite3 or mysql)")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() == 0 {
		usage()
	}

	t := stattab.Collate(flag.Args(), func(err error) {
		log.Printf("warning: %v", err)
	})

	var out io.Writer = os.Stdout
	if *flagOutput != "" {
		if dir := filepath.Dir(*flagOutput); dir != "." {
			if err := os.MkdirAll(dir, 0777); err != nil {
				log.Fatal(err)
			}
		}
		f, err := os.Create(*flagOutput)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		out = f
	}
	if err := t.ToCSV(out, os.Stderr); err != nil {
		log.Fatal(err)
	}

	if *flagStore != "" {
		if err := store(*flagStore, t); err != nil {
			log.Fatal(err)
		}
	}
}

// store archives t to the database named by spec, which has the form
// driver:dsn.
func store(spec string, t *stattab.Table) error {
	driver, dsn, ok := strings.Cut(spec, ":")
	if !ok {
		return fmt.Errorf("bad -store %q: want driver:dsn", spec)
	}
	db, err := statdb.OpenSQL(driver, dsn)
	if err != nil {
		return err
	}
	defer db.Close()
	run, err := db.NewRun(context.Background())
	if err != nil {
		return err
	}
	if err := run.InsertTable(t); err != nil {
		return err
	}
	log.Printf("archived %d rows as run %s", len(t.Rows), run.ID)
	return nil
}
