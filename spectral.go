/*
 * spectral.go, part of gorex.
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

package rex

import (
	"sort"

	"gonum.org/v1/gonum/mat"
)

// DecomposableTol is the distance to 1 below which the second eigenvalue
// of a transition matrix is considered to be unity.
const DecomposableTol = 1e-10

// SortedEigenvalues returns the eigenvalues of T sorted in descending order.
// Only the real parts are kept: the transition matrices built in this
// package are similar to symmetric matrices, so their spectra are real.
func SortedEigenvalues(T mat.Matrix) ([]float64, error) {
	r, c := T.Dims()
	if r != c || r == 0 {
		return nil, newError(ErrMalformed, "SortedEigenvalues", "matrix is %dx%d, a non-empty square matrix is needed", r, c)
	}
	var eig mat.Eigen
	if ok := eig.Factorize(T, mat.EigenNone); !ok {
		return nil, newError(ErrEigen, "SortedEigenvalues", "")
	}
	cvals := eig.Values(nil)
	mu := make([]float64, len(cvals))
	for i, v := range cvals {
		mu[i] = real(v)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(mu)))
	return mu, nil
}

// Equilibration returns the second largest eigenvalue of the transition
// matrix T, and the corresponding equilibration time, 1/(1-mu2), in
// iterations. If mu2 is unity the chain is decomposable: the error
// returned wraps ErrDecomposable and tau is 0, but mu2 is still returned.
func Equilibration(T mat.Matrix) (mu2, tau float64, err error) {
	mu, err := SortedEigenvalues(T)
	if err != nil {
		return 0, 0, errDecorate(err, "Equilibration")
	}
	if len(mu) < 2 {
		return 0, 0, newError(ErrMalformed, "Equilibration", "at least 2 states are needed")
	}
	mu2 = mu[1]
	if mu2 >= 1-DecomposableTol {
		return mu2, 0, newError(ErrDecomposable, "Equilibration", "mu2 = %.6f", mu2)
	}
	return mu2, 1.0 / (1.0 - mu2), nil
}

// MixingResult contains the second eigenvalue of the state transition
// matrix and the state equilibration time obtained from it.
type MixingResult struct {
	Mu2 float64
	Tau float64
}

// Mixing estimates how fast replicas mix among the nstates states, from
// the symmetrized empirical transition matrix.
func Mixing(S States, nstates int) (MixingResult, error) {
	T, err := StateTransitionMatrix(S, nstates)
	if err != nil {
		return MixingResult{}, errDecorate(err, "Mixing")
	}
	mu2, tau, err := Equilibration(T)
	if err != nil {
		return MixingResult{Mu2: mu2}, errDecorate(err, "Mixing")
	}
	return MixingResult{Mu2: mu2, Tau: tau}, nil
}

// MixingEstimate holds block-bootstrap estimates of the second eigenvalue
// and of the equilibration time.
type MixingEstimate struct {
	Mu2 Estimate
	Tau Estimate
}

// MixingWithError is like Mixing, but also estimates the statistical error
// of mu2 and tau by splitting the trajectory in nblocks blocks. If the
// chain is decomposable in the full data, the error returned wraps
// ErrDecomposable. If it is decomposable only in some block, the full-data
// values are returned, and the ErrUndefined field of both estimates wraps
// ErrDecomposable.
func MixingWithError(S States, nstates, nblocks int) (MixingEstimate, error) {
	if err := S.Validate(nstates); err != nil {
		return MixingEstimate{}, errDecorate(err, "MixingWithError")
	}
	est, err := BlockBootstrapN(S.NIterations(), nblocks, func(start, end int) ([]float64, error) {
		m, err := Mixing(S.Slice(start, end), nstates)
		if err != nil {
			return nil, err
		}
		return []float64{m.Mu2, m.Tau}, nil
	})
	if err != nil {
		return MixingEstimate{}, errDecorate(err, "MixingWithError")
	}
	return MixingEstimate{Mu2: est[0], Tau: est[1]}, nil
}
