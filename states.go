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

package rex

// States is the state history of a replica-exchange simulation:
// States[iteration][replica] is the state index occupied by the replica
// in that iteration. Functions in this package never modify it.
type States [][]int

// NIterations returns the number of iterations in the trajectory.
func (S States) NIterations() int {
	return len(S)
}

// NReplicas returns the number of replicas, or 0 for an empty trajectory.
func (S States) NReplicas() int {
	if len(S) == 0 {
		return 0
	}
	return len(S[0])
}

// Validate checks that the trajectory is not empty, that all iterations
// have the same number of replicas, that there are at least 2 states and
// that every state index is in [0, nstates).
func (S States) Validate(nstates int) error {
	if nstates < 2 {
		return newError(ErrMalformed, "States.Validate", "%d states given, at least 2 are needed", nstates)
	}
	if len(S) == 0 || len(S[0]) == 0 {
		return newError(ErrMalformed, "States.Validate", "empty state trajectory")
	}
	nrep := len(S[0])
	for it, row := range S {
		if len(row) != nrep {
			return newError(ErrMalformed, "States.Validate", "iteration %d has %d replicas, expected %d", it, len(row), nrep)
		}
		for rep, s := range row {
			if s < 0 || s >= nstates {
				return newError(ErrMalformed, "States.Validate", "state %d of replica %d at iteration %d is not in [0,%d)", s, rep, it, nstates)
			}
		}
	}
	return nil
}

// Slice returns the iterations in [start, end). The returned value shares
// storage with the receiver.
func (S States) Slice(start, end int) States {
	return S[start:end]
}

// Replica returns the timeseries of state indexes visited by replica r,
// as float64, ready to be fed to the statistical inefficiency estimators.
func (S States) Replica(r int) []float64 {
	ret := make([]float64, len(S))
	for i, row := range S {
		ret[i] = float64(row[r])
	}
	return ret
}

// Replicas returns the state timeseries of all replicas (see Replica).
func (S States) Replicas() [][]float64 {
	ret := make([][]float64, S.NReplicas())
	for r := range ret {
		ret[r] = S.Replica(r)
	}
	return ret
}

// Bins is a binned-coordinate trajectory: Bins[replica][iteration] is the
// bin occupied by the replica in that iteration. Note the replica-major
// layout, which differs from States.
type Bins [][]int

// Validate checks that all replicas have the same, non-zero, number of
// iterations, and that every bin index is in [0, nbins).
func (B Bins) Validate(nbins int) error {
	if nbins < 2 {
		return newError(ErrMalformed, "Bins.Validate", "%d bins given, at least 2 are needed", nbins)
	}
	if len(B) == 0 || len(B[0]) == 0 {
		return newError(ErrMalformed, "Bins.Validate", "empty binned trajectory")
	}
	nit := len(B[0])
	for rep, row := range B {
		if len(row) != nit {
			return newError(ErrMalformed, "Bins.Validate", "replica %d has %d iterations, expected %d", rep, len(row), nit)
		}
		for it, b := range row {
			if b < 0 || b >= nbins {
				return newError(ErrMalformed, "Bins.Validate", "bin %d of replica %d at iteration %d is not in [0,%d)", b, rep, it, nbins)
			}
		}
	}
	return nil
}

// Slice returns, for every replica, the iterations in [start, end).
func (B Bins) Slice(start, end int) Bins {
	ret := make(Bins, len(B))
	for i, row := range B {
		ret[i] = row[start:end]
	}
	return ret
}
