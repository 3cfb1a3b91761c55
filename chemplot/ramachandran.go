/*
 * ramachandran.go, part of gorex.
 *
 * Copyright 2024 The goRex Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package chemplot produces plots of replica-exchange data.
package chemplot

import (
	"fmt"

	rex "github.com/rmera/gorex"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

func basicRamaPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	//Constant axes
	p.X.Min = -180
	p.X.Max = 180
	p.Y.Min = -180
	p.Y.Max = 180
	p.Add(plotter.NewGrid())
	return p
}

// RamaPlot produces a PNG scatter plot of the pair of torsions x and y,
// given in radians as [replica][iteration], on fixed [-180, 180] degree
// axes. Each replica gets its own color and glyph, and at most maxReplicas
// replicas are plotted. The extension is added to plotname.
func RamaPlot(x, y [][]float64, maxReplicas int, title, xlabel, ylabel, plotname string) error {
	if len(x) != len(y) {
		return fmt.Errorf("chemplot.RamaPlot: %d and %d replicas given", len(x), len(y))
	}
	p := basicRamaPlot(title, xlabel, ylabel)
	n := min(len(x), maxReplicas)
	for rep := 0; rep < n; rep++ {
		if len(x[rep]) != len(y[rep]) {
			return fmt.Errorf("chemplot.RamaPlot: replica %d has %d and %d points", rep, len(x[rep]), len(y[rep]))
		}
		pts := make(plotter.XYs, len(x[rep]))
		for i := range pts {
			pts[i].X = rex.Degrees(x[rep][i])
			pts[i].Y = rex.Degrees(y[rep][i])
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf("chemplot.RamaPlot: %w", err)
		}
		s.GlyphStyle.Color = colors(rep, n)
		s.GlyphStyle.Shape = plotutil.Shape(rep)
		s.GlyphStyle.Radius = vg.Points(1.5)
		p.Add(s)
		p.Legend.Add(fmt.Sprintf("replica %d", rep), s)
	}
	filename := fmt.Sprintf("%s.png", plotname)
	if err := p.Save(5*vg.Inch, 5*vg.Inch, filename); err != nil {
		return fmt.Errorf("chemplot.RamaPlot: %w", err)
	}
	return nil
}
