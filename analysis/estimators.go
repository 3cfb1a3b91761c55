/*
 * estimators.go, part of gorex.
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

package analysis

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	rex "github.com/rmera/gorex"
	"github.com/rmera/gorex/chemplot"
	"github.com/rmera/gorex/chemstat"
	"github.com/rmera/gorex/histo"
	"go.uber.org/zap"
)

func (A *Analyzer) mixing(res *Result, s *series, log *zap.Logger) {
	T, err := rex.StateTransitionMatrix(s.states, s.nstates)
	if err == nil {
		res.Transition = T
		res.Eigenvalues, err = rex.SortedEigenvalues(T)
	}
	if err != nil {
		log.Warn("transition matrix spectrum not available", zap.Error(err))
	} else {
		log.Debug("transition matrix eigenvalues", zap.Float64s("eigenvalues", res.Eigenvalues))
	}
	est, err := rex.MixingWithError(s.states, s.nstates, A.cfg.NBlocks)
	if err == nil && !est.Mu2.StdErrDefined() {
		log.Warn("Perron eigenvalue error not available", zap.Float64("mu2", est.Mu2.Value), zap.Error(est.Mu2.ErrUndefined))
	}
	res.Mu2 = outcome(est.Mu2, err)
	res.Tau2 = outcome(est.Tau, err)
}

// stateCorrelation obtains the statistical inefficiency of the state index,
// taking the timeseries of all replicas as samples of the same process.
func (A *Analyzer) stateCorrelation(res *Result, s *series) {
	est, err := rex.BlockBootstrapN(s.states.NIterations(), A.cfg.NBlocks, func(start, end int) ([]float64, error) {
		g, err := A.ineff.InefficiencyMultiple(s.states.Slice(start, end).Replicas())
		if err != nil {
			return nil, err
		}
		return []float64{g, chemstat.Tau(g)}, nil
	})
	if err != nil {
		res.GStates = Outcome{Err: err}
		res.TauStates = Outcome{Err: err}
		return
	}
	res.GStates = outcome(est[0], nil)
	res.TauStates = outcome(est[1], nil)
}

func (A *Analyzer) potential(res *Result, s *series) {
	g, err := A.ineff.Inefficiency(s.u)
	res.GU = value(g, err)
	res.TauU = value(chemstat.Tau(g), err)
}

// correlationTime returns the integrated correlation time of the
// [replica][iteration] timeseries x, with its block error.
func (A *Analyzer) correlationTime(x [][]float64) Outcome {
	n := len(x[0])
	return outcome(rex.BlockBootstrap(n, A.cfg.NBlocks, func(start, end int) (float64, error) {
		block := make([][]float64, len(x))
		for rep, v := range x {
			block[rep] = v[start:end]
		}
		g, err := A.ineff.InefficiencyMultiple(block)
		if err != nil {
			return 0, err
		}
		return chemstat.Tau(g), nil
	}))
}

func trig(angles [][]float64) (cos, sin [][]float64) {
	cos = make([][]float64, len(angles))
	sin = make([][]float64, len(angles))
	for rep, v := range angles {
		cos[rep] = make([]float64, len(v))
		sin[rep] = make([]float64, len(v))
		for it, a := range v {
			sin[rep][it], cos[rep][it] = math.Sincos(a)
		}
	}
	return cos, sin
}

// binDividers returns the dividers, in degrees, matching rex.BinAngle.
func binDividers(nbins int) []float64 {
	return histo.EqualDividers(-180, -180+float64(nbins)*rex.BinWidth(nbins), nbins)
}

func (A *Analyzer) torsionResults(s *series, log *zap.Logger) []TorsionResult {
	nbins := A.cfg.NBins
	ret := make([]TorsionResult, len(A.torsions))
	for i, t := range A.torsions {
		tr := TorsionResult{Name: t.Name}
		if s.angles[i] == nil {
			tr.Err = s.torsionErr[i]
			tr.TauCos = Outcome{Err: tr.Err}
			tr.TauSin = Outcome{Err: tr.Err}
			tr.Relaxation = Outcome{Err: tr.Err}
			ret[i] = tr
			log.Warn("torsion not analyzed", zap.String("torsion", t.Name), zap.Error(tr.Err))
			continue
		}
		cos, sin := trig(s.angles[i])
		tr.TauCos = A.correlationTime(cos)
		tr.TauSin = A.correlationTime(sin)
		bins, err := rex.BinAngles(s.angles[i], nbins)
		if err != nil {
			tr.Relaxation = Outcome{Err: err}
			ret[i] = tr
			continue
		}
		tr.Relaxation = outcome(rex.RelaxationTimeWithError(bins, nbins, A.cfg.NBlocks))
		pop := histo.NewData(binDividers(nbins), nil, i)
		for _, row := range bins {
			for _, b := range row {
				pop.AddBin(b, 1)
			}
		}
		tr.Coverage = pop.Occupied()
		tr.Populations = pop
		log.Debug("torsion bin populations", zap.String("torsion", t.Name), zap.Float64s("dividers", pop.Dividers()), zap.Float64s("populations", pop.View()))
		ret[i] = tr
	}
	return ret
}

// plot writes the state plot and, if at least 2 torsions were computed,
// the plot of the first 2 torsions. Failures are only logged.
func (A *Analyzer) plot(res *Result, s *series, log *zap.Logger) []string {
	dir := A.cfg.Plots.Dir
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Warn("can't create plot directory", zap.String("dir", dir), zap.Error(err))
		return nil
	}
	base := filepath.Base(res.Name)
	base = strings.TrimSuffix(base, ".gz")
	base = strings.TrimSuffix(base, filepath.Ext(base))
	var written []string
	name := filepath.Join(dir, base+"-states")
	if err := chemplot.StatePlot(s.states, s.nstates, A.cfg.Plots.MaxReplicas, base+" states", name); err != nil {
		log.Warn("state plot failed", zap.Error(err))
	} else {
		written = append(written, name+".png")
	}
	var idx []int
	for i := range A.torsions {
		if s.angles[i] != nil {
			idx = append(idx, i)
		}
	}
	if len(idx) < 2 {
		return written
	}
	t0, t1 := A.torsions[idx[0]], A.torsions[idx[1]]
	name = filepath.Join(dir, fmt.Sprintf("%s-%s-%s", base, t0.Name, t1.Name))
	err := chemplot.RamaPlot(s.angles[idx[0]], s.angles[idx[1]], A.cfg.Plots.MaxReplicas, base, t0.Name, t1.Name, name)
	if err != nil {
		log.Warn("torsion plot failed", zap.Error(err))
	} else {
		written = append(written, name+".png")
	}
	return written
}
