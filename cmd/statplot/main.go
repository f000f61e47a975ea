// Copyright 2025 The simstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Statplot charts one metric across collated stats CSV files.
//
// Usage:
//
//	statplot -metric name [-o output.png] stats1.csv [stats2.csv ...]
//
// Each CSV must have the shape statcsv emits: a "dimension" column, a
// "file" column, and one column per metric. Statplot reduces each CSV
// to one line: rows sharing a dimension are averaged, rows without a
// dimension or without the chosen metric are dropped, and the line is
// labeled with the CSV's base name.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot/vg"

	"simstat/statseries"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: statplot -metric name [flags] stats.csv...\n")
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	log.SetPrefix("statplot: ")
	log.SetFlags(0)

	flagMetric := flag.String("metric", "", "chart the metric named `name` (required)")
	flagOutput := flag.String("o", "stats.png", "write the chart to `file`")
	flagWidth := flag.Float64("width", 24, "chart width in `cm`")
	flagHeight := flag.Float64("height", 12, "chart height in `cm`")
	flag.Usage = usage
	flag.Parse()
	if *flagMetric == "" || flag.NArg() == 0 {
		usage()
	}

	var series []*statseries.Series
	for _, path := range flag.Args() {
		f, err := os.Open(path)
		if err != nil {
			log.Fatal(err)
		}
		label := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		s, err := statseries.FromCSV(f, *flagMetric, label)
		f.Close()
		if err != nil {
			log.Fatalf("%s: %v", path, err)
		}
		if len(s.Points) == 0 {
			log.Printf("warning: %s: no usable rows for metric %q", path, *flagMetric)
			continue
		}
		series = append(series, s)
	}
	if len(series) == 0 {
		log.Fatalf("no data to chart for metric %q", *flagMetric)
	}

	pl, err := statseries.Chart(series, *flagMetric)
	if err != nil {
		log.Fatal(err)
	}
	width := vg.Length(*flagWidth) * vg.Centimeter
	height := vg.Length(*flagHeight) * vg.Centimeter
	if err := statseries.SavePNG(pl, *flagOutput, width, height); err != nil {
		log.Fatal(err)
	}
}
