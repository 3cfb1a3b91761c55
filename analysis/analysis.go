/*
 * analysis.go, part of gorex.
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

// Package analysis runs the complete mixing analysis of replica-exchange
// archives: state mixing, correlation times of the state index, of the
// reduced potential and of a set of torsions, and end-to-end times.
package analysis

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	rex "github.com/rmera/gorex"
	"github.com/rmera/gorex/config"
	"go.uber.org/zap"
)

// Inefficiency estimates statistical inefficiencies of timeseries.
// *chemstat.Estimator implements it.
type Inefficiency interface {
	Inefficiency(a []float64) (float64, error)
	InefficiencyMultiple(a [][]float64) (float64, error)
}

// ErrNoInefficiency is returned by New when no statistical inefficiency
// estimator is given.
var ErrNoInefficiency = errors.New("analysis: no statistical inefficiency estimator given")

// Analyzer analyzes replica-exchange archives with a fixed configuration.
// All the results it produces share a run identifier.
type Analyzer struct {
	cfg      *config.Config
	torsions []rex.Torsion
	log      *zap.Logger
	ineff    Inefficiency
	runID    string
}

// New returns an Analyzer. If cfg is nil, the default configuration is used,
// and if logger is nil, nothing is logged.
func New(cfg *config.Config, logger *zap.Logger, ineff Inefficiency) (*Analyzer, error) {
	if ineff == nil {
		return nil, ErrNoInefficiency
	}
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("analysis: invalid configuration: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{
		cfg:      cfg,
		torsions: cfg.RexTorsions(),
		log:      logger,
		ineff:    ineff,
		runID:    uuid.NewString(),
	}, nil
}

// RunID returns the identifier shared by all the results of A.
func (A *Analyzer) RunID() string {
	return A.runID
}

// Torsions returns the names of the torsions analyzed.
func (A *Analyzer) Torsions() []string {
	ret := make([]string, len(A.torsions))
	for i, t := range A.torsions {
		ret[i] = t.Name
	}
	return ret
}

// Analyze reads the archive name, in a single pass, and computes all the
// quantities. Quantities that can't be computed are marked as undefined
// in the result, with their reason. An error is returned only if the archive
// can't be read.
func (A *Analyzer) Analyze(name string) (*Result, error) {
	log := A.log.With(zap.String("archive", name))
	log.Info("reading archive")
	s, err := A.read(name)
	if err != nil {
		return nil, fmt.Errorf("analysis: reading %s: %w", name, err)
	}
	res := &Result{
		Name:        name,
		RunID:       A.runID,
		NReplicas:   s.states.NReplicas(),
		NStates:     s.nstates,
		NAtoms:      s.natoms,
		NIterations: s.states.NIterations(),
		Header:      s.header,
	}
	log.Info("archive read", zap.Int("iterations", res.NIterations), zap.Int("replicas", res.NReplicas),
		zap.Int("states", res.NStates), zap.Int("atoms", res.NAtoms))

	A.mixing(res, s, log)
	A.stateCorrelation(res, s)
	res.TauEnd = outcome(rex.EndToEnd(s.states, s.nstates))
	A.potential(res, s)
	res.Torsions = A.torsionResults(s, log)
	if A.cfg.Plots.Dir != "" {
		res.Plots = A.plot(res, s, log)
	}
	log.Info("archive analyzed")
	return res, nil
}

// Run analyzes all the archives in names, using up to the configured
// number of workers. The results are returned in the order of names,
// skipping the archives that could not be read. The errors of those are
// returned joined.
func (A *Analyzer) Run(names []string) ([]*Result, error) {
	results := make([]*Result, len(names))
	errs := make([]error, len(names))
	sem := make(chan struct{}, A.cfg.Workers)
	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, name string) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i], errs[i] = A.Analyze(name)
			if errs[i] != nil {
				A.log.Error("archive could not be analyzed", zap.String("archive", name), zap.Error(errs[i]))
			}
		}(i, name)
	}
	wg.Wait()
	ret := make([]*Result, 0, len(names))
	for _, r := range results {
		if r != nil {
			ret = append(ret, r)
		}
	}
	return ret, errors.Join(errs...)
}
