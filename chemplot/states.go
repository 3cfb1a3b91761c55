/*
 * states.go, part of gorex.
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

package chemplot

import (
	"fmt"

	rex "github.com/rmera/gorex"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// StatePlot produces a PNG plot of the state visited by each replica as a
// function of the iteration, for the first maxReplicas replicas of S.
// The extension is added to plotname.
func StatePlot(S rex.States, nstates, maxReplicas int, title, plotname string) error {
	if err := S.Validate(nstates); err != nil {
		return fmt.Errorf("chemplot.StatePlot: %w", err)
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Iteration"
	p.Y.Label.Text = "State"
	p.Y.Min = 0
	p.Y.Max = float64(nstates - 1)
	p.Add(plotter.NewGrid())
	n := min(S.NReplicas(), maxReplicas)
	for rep := 0; rep < n; rep++ {
		pts := make(plotter.XYs, S.NIterations())
		for it, s := range S.Replica(rep) {
			pts[it].X = float64(it)
			pts[it].Y = s
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("chemplot.StatePlot: %w", err)
		}
		l.LineStyle.Color = colors(rep, n)
		l.LineStyle.Width = vg.Points(1)
		p.Add(l)
		p.Legend.Add(fmt.Sprintf("replica %d", rep), l)
	}
	p.Legend.Top = true
	filename := fmt.Sprintf("%s.png", plotname)
	if err := p.Save(8*vg.Inch, 4*vg.Inch, filename); err != nil {
		return fmt.Errorf("chemplot.StatePlot: %w", err)
	}
	return nil
}
