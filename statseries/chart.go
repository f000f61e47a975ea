// Copyright 2025 The simstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package statseries

import (
	"image/color"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Chart renders series as one line-with-points trace each, dimension
// on the X axis and the mean metric on the Y axis.
func Chart(series []*Series, metric string) (*plot.Plot, error) {
	pl := plot.New()
	pl.Title.Text = metric
	pl.X.Label.Text = "dimension"
	pl.Y.Label.Text = metric

	grid := plotter.NewGrid()
	grid.Vertical.Color = color.Gray{0xcc}
	grid.Horizontal.Color = color.Gray{0xcc}
	pl.Add(grid)

	for i, s := range series {
		xys := make(plotter.XYs, len(s.Points))
		for j, p := range s.Points {
			xys[j].X = float64(p.Dim)
			xys[j].Y = p.Mean
		}
		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return nil, err
		}
		line.Color = plotutil.Color(i)
		points.Color = plotutil.Color(i)
		pl.Add(line, points)
		pl.Legend.Add(s.Label, line, points)
	}
	pl.Legend.Top = true
	return pl, nil
}

// SavePNG writes pl to file as a PNG of the given dimensions.
func SavePNG(pl *plot.Plot, file string, width, height vg.Length) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	can := vgimg.PngCanvas{Canvas: vgimg.NewWith(
		vgimg.UseWH(width, height),
		vgimg.UseBackgroundColor(color.White),
	)}
	pl.Draw(draw.New(can))
	if _, err := can.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
