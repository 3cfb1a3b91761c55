/*
 * report_test.go, part of gorex.
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

package report

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	rex "github.com/rmera/gorex"
	"github.com/rmera/gorex/analysis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func est(v, e float64) analysis.Outcome {
	return analysis.Outcome{Estimate: rex.Estimate{Value: v, Mean: v, Err: e}}
}

func undefinedErr(v float64, err error) analysis.Outcome {
	return analysis.Outcome{Estimate: rex.Estimate{Value: v, Mean: v, ErrUndefined: fmt.Errorf("block 0 of 10: %w", err)}}
}

func failed(err error) analysis.Outcome {
	return analysis.Outcome{Err: err}
}

func sample() *analysis.Result {
	return &analysis.Result{
		Name:        "/tmp/run_1.rxf",
		RunID:       "abcd",
		NReplicas:   2,
		NStates:     2,
		NIterations: 4,
		Transition:  mat.NewDense(2, 2, []float64{0.25, 0.75, 0.0001, 0.9999}),
		Mu2:         est(0.8, 0.01),
		Tau2:        est(5, 0.5),
		GStates:     est(3, 0.1),
		TauStates:   est(1, 0.05),
		TauEnd:      failed(fmt.Errorf("no events: %w", rex.ErrInsufficientData)),
		GU:          est(2, 0),
		TauU:        est(0.5, 0),
		Torsions: []analysis.TorsionResult{
			{Name: "phi", TauCos: est(10, 1), TauSin: est(12, 2), Relaxation: est(7, 0), Coverage: 0.5},
			{Name: "psi", Err: fmt.Errorf("no coords: %w", rex.ErrInsufficientData),
				TauCos: failed(rex.ErrInsufficientData), TauSin: failed(rex.ErrInsufficientData)},
		},
	}
}

func TestFormatTransitionMatrix(Te *testing.T) {
	s := FormatTransitionMatrix(mat.NewDense(2, 2, []float64{0.25, 0.75, 0.0001, 0.9999}))
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	require.Len(Te, lines, 3)
	assert.Equal(Te, "           0     1", lines[0])
	assert.Equal(Te, "0      0.250 0.750", lines[1])
	assert.Equal(Te, "1            1.000", lines[2])
}

func TestConsole(Te *testing.T) {
	var b bytes.Buffer
	require.NoError(Te, Console(&b, sample(), true))
	out := b.String()
	assert.Contains(Te, out, "run abcd")
	assert.Contains(Te, out, "Perron eigenvalue is   0.80000+-0.01000; state equilibration timescale is ~ 5.000+-0.500 iterations")
	assert.Contains(Te, out, "tau_end    = undefined (insufficient data)")
	assert.Contains(Te, out, "0.750")
	assert.Contains(Te, out, "50% of bins visited")
	assert.Contains(Te, out, "psi        undefined (insufficient data)")
	assert.NotContains(Te, out, "NaN")
	assert.NotContains(Te, out, "Inf")

	b.Reset()
	r := sample()
	r.Mu2 = failed(fmt.Errorf("block 3: %w", rex.ErrDecomposable))
	r.Tau2 = r.Mu2
	require.NoError(Te, Console(&b, r, false))
	assert.Contains(Te, b.String(), "Perron eigenvalue is unity; Markov chain is decomposable.")
	assert.NotContains(Te, b.String(), "0.750")

	//decomposable in a single block only: the full-data value is still shown.
	b.Reset()
	r = sample()
	r.Mu2 = undefinedErr(-0.348, rex.ErrDecomposable)
	r.Tau2 = undefinedErr(0.742, rex.ErrDecomposable)
	r.Torsions[0].Relaxation = undefinedErr(7, rex.ErrDecomposable)
	require.NoError(Te, Console(&b, r, false))
	out = b.String()
	assert.Contains(Te, out, "Perron eigenvalue is  -0.34800; state equilibration timescale is ~ 0.742 iterations (error undefined: decomposable)")
	assert.Contains(Te, out, "tau_phi       =      7.0 +- undefined (decomposable) iterations")
	assert.NotContains(Te, out, "unity")
}

func TestEscapeLaTeX(Te *testing.T) {
	assert.Equal(Te, `run\_1 \& 50\% \$x\$`, EscapeLaTeX("run_1 & 50% $x$"))
	assert.Equal(Te, "plain", EscapeLaTeX("plain"))
}

func TestLaTeX(Te *testing.T) {
	h := LaTeXHeader("abcd", []string{"phi", "psi"})
	assert.True(Te, strings.HasPrefix(h, "% run abcd\n"))
	assert.Equal(Te, 7, strings.Count(h, "&"))
	row := LaTeXRow(sample())
	assert.True(Te, strings.HasPrefix(row, `run\_1 & `), row)
	assert.True(Te, strings.HasSuffix(row, " \\\\\n"))
	cells := strings.Split(strings.TrimSuffix(row, " \\\\\n"), " & ")
	require.Len(Te, cells, 8)
	assert.Equal(Te, `5.00 $\pm$ 0.50`, cells[1])
	assert.Equal(Te, `1.00 $\pm$ 0.05`, cells[2])
	assert.Equal(Te, "--", cells[3])
	assert.Equal(Te, `10.00 $\pm$ 1.00`, cells[4])
	assert.Equal(Te, "--", cells[6])
	assert.Equal(Te, "--", cells[7])

	r := sample()
	r.Tau2 = undefinedErr(5, rex.ErrDecomposable)
	cells = strings.Split(strings.TrimSuffix(LaTeXRow(r), " \\\n"), " & ")
	require.Len(Te, cells, 8)
	assert.Equal(Te, `5.00 $\pm$ --`, cells[1])
}
