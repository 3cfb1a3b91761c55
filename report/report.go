/*
 * report.go, part of gorex.
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

// Package report formats the results of the analysis of replica-exchange
// archives, as human-readable text and as LaTeX table rows.
package report

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	rex "github.com/rmera/gorex"
	"github.com/rmera/gorex/analysis"
	"gonum.org/v1/gonum/mat"
)

// Cutoff is the smallest transition probability printed by
// FormatTransitionMatrix. Smaller elements are left blank.
const Cutoff = 0.001

// Undefined is printed in place of quantities that could not be computed.
const Undefined = "undefined"

// FormatTransitionMatrix returns the transition matrix T as a table, with
// the state indexes as row and column headers.
func FormatTransitionMatrix(T mat.Matrix) string {
	r, c := T.Dims()
	var b strings.Builder
	fmt.Fprintf(&b, "%6s", "")
	for j := 0; j < c; j++ {
		fmt.Fprintf(&b, "%6d", j)
	}
	b.WriteString("\n")
	for i := 0; i < r; i++ {
		fmt.Fprintf(&b, "%-6d", i)
		for j := 0; j < c; j++ {
			v := T.At(i, j)
			if v >= Cutoff {
				fmt.Fprintf(&b, "%6.3f", v)
			} else {
				fmt.Fprintf(&b, "%6s", "")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// reason returns a short, single-line description of err.
func reason(err error) string {
	switch {
	case errors.Is(err, rex.ErrDecomposable):
		return "decomposable"
	case errors.Is(err, rex.ErrInsufficientData):
		return "insufficient data"
	}
	return err.Error()
}

func withErr(o analysis.Outcome, format string) string {
	if !o.Defined() {
		return fmt.Sprintf("%s (%s)", Undefined, reason(o.Err))
	}
	if !o.StdErrDefined() {
		return fmt.Sprintf(format+" +- %s (%s)", o.Value, Undefined, reason(o.ErrUndefined))
	}
	return fmt.Sprintf(format+" +- "+format, o.Value, o.Estimate.Err)
}

func single(o analysis.Outcome, format string) string {
	if !o.Defined() {
		return fmt.Sprintf("%s (%s)", Undefined, reason(o.Err))
	}
	return fmt.Sprintf(format, o.Value)
}

// Console writes a human-readable report of r to w. If showMatrix is true,
// the state transition matrix is included.
func Console(w io.Writer, r *analysis.Result, showMatrix bool) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Archive %s (run %s)\n", r.Name, r.RunID)
	fmt.Fprintf(&b, "%d iterations, %d replicas, %d states, %d atoms\n", r.NIterations, r.NReplicas, r.NStates, r.NAtoms)
	if showMatrix && r.Transition != nil {
		b.WriteString("Cumulative symmetrized state transition matrix:\n")
		b.WriteString(FormatTransitionMatrix(r.Transition))
	}
	switch {
	case r.Mu2.Defined() && r.Tau2.Defined() && !r.Mu2.StdErrDefined():
		fmt.Fprintf(&b, "Perron eigenvalue is %9.5f; state equilibration timescale is ~ %.3f iterations (error %s: %s)\n",
			r.Mu2.Value, r.Tau2.Value, Undefined, reason(r.Mu2.ErrUndefined))
	case r.Mu2.Defined() && r.Tau2.Defined():
		fmt.Fprintf(&b, "Perron eigenvalue is %9.5f+-%.5f; state equilibration timescale is ~ %.3f+-%.3f iterations\n",
			r.Mu2.Value, r.Mu2.Estimate.Err, r.Tau2.Value, r.Tau2.Estimate.Err)
	case errors.Is(r.Mu2.Err, rex.ErrDecomposable):
		b.WriteString("Perron eigenvalue is unity; Markov chain is decomposable.\n")
	default:
		fmt.Fprintf(&b, "Perron eigenvalue is %s\n", single(r.Mu2, "%9.5f"))
	}
	fmt.Fprintf(&b, "g_states   = %s iterations\n", withErr(r.GStates, "%.3f"))
	fmt.Fprintf(&b, "tau_states = %s iterations\n", withErr(r.TauStates, "%.3f"))
	if r.TauEnd.Defined() {
		fmt.Fprintf(&b, "tau_end    = %s iterations (%d end-to-end events)\n", withErr(r.TauEnd, "%.3f"), len(r.TauEnd.Samples))
	} else {
		fmt.Fprintf(&b, "tau_end    = %s\n", withErr(r.TauEnd, "%.3f"))
	}
	fmt.Fprintf(&b, "g_u        = %s iterations\n", single(r.GU, "%8.1f"))
	fmt.Fprintf(&b, "tau_u      = %s iterations\n", single(r.TauU, "%8.1f"))
	if len(r.Torsions) > 0 {
		b.WriteString("Integrated autocorrelation times of torsions:\n")
		for _, t := range r.Torsions {
			if t.Err != nil {
				fmt.Fprintf(&b, "%-10s %s (%s)\n", t.Name, Undefined, reason(t.Err))
				continue
			}
			fmt.Fprintf(&b, "tau_cos%-6s = %s iterations\n", t.Name, withErr(t.TauCos, "%8.1f"))
			fmt.Fprintf(&b, "tau_sin%-6s = %s iterations\n", t.Name, withErr(t.TauSin, "%8.1f"))
		}
		b.WriteString("Relaxation times for transitions among torsion bins:\n")
		for _, t := range r.Torsions {
			if t.Err != nil {
				continue
			}
			fmt.Fprintf(&b, "tau_%-9s = %s iterations (%.0f%% of bins visited)\n", t.Name, withErr(t.Relaxation, "%8.1f"), 100*t.Coverage)
		}
	}
	for _, p := range r.Plots {
		fmt.Fprintf(&b, "Plot written to %s\n", p)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

var latexEscapes = map[rune]string{
	'\\': `\textbackslash{}`,
	'{':  `\{`,
	'}':  `\}`,
	'$':  `\$`,
	'&':  `\&`,
	'#':  `\#`,
	'%':  `\%`,
	'_':  `\_`,
	'^':  `\textasciicircum{}`,
	'~':  `\textasciitilde{}`,
}

// EscapeLaTeX escapes the characters with a special meaning in LaTeX.
func EscapeLaTeX(s string) string {
	var b strings.Builder
	for _, r := range s {
		if e, ok := latexEscapes[r]; ok {
			b.WriteString(e)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func latexCell(o analysis.Outcome) string {
	if !o.Defined() {
		return "--"
	}
	if !o.StdErrDefined() {
		return fmt.Sprintf("%.2f $\\pm$ --", o.Value)
	}
	return fmt.Sprintf("%.2f $\\pm$ %.2f", o.Value, o.Estimate.Err)
}

// LaTeXHeader returns the header of the LaTeX table whose rows are produced
// by LaTeXRow, for the given torsion names. The run ID goes in a comment.
func LaTeXHeader(runID string, torsions []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%% run %s\n", runID)
	b.WriteString(`archive & $\tau_2$ & $\tau_\mathrm{states}$ & $\tau_\mathrm{end}$`)
	for _, t := range torsions {
		t = EscapeLaTeX(t)
		fmt.Fprintf(&b, ` & $\tau_{\cos %s}$ & $\tau_{\sin %s}$`, t, t)
	}
	b.WriteString(" \\\\\n")
	return b.String()
}

// LaTeXRow returns one line of a LaTeX table with the main results in r.
// Quantities that could not be computed are shown as "--".
func LaTeXRow(r *analysis.Result) string {
	name := filepath.Base(r.Name)
	name = strings.TrimSuffix(name, ".gz")
	name = strings.TrimSuffix(name, filepath.Ext(name))
	cells := []string{
		EscapeLaTeX(name),
		latexCell(r.Tau2),
		latexCell(r.TauStates),
		latexCell(r.TauEnd),
	}
	for _, t := range r.Torsions {
		cells = append(cells, latexCell(t.TauCos), latexCell(t.TauSin))
	}
	return strings.Join(cells, " & ") + " \\\\\n"
}
