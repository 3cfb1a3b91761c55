/*
 * transition.go, part of gorex.
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
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// TransitionCounts returns the symmetric matrix of observed transitions
// between states. For each replica and each pair of consecutive iterations,
// a transition i->j adds 0.5 to both Nij and Nji.
func TransitionCounts(S States, nstates int) (*mat.Dense, error) {
	if err := S.Validate(nstates); err != nil {
		return nil, errDecorate(err, "TransitionCounts")
	}
	N := mat.NewDense(nstates, nstates, nil)
	for it := 0; it < len(S)-1; it++ {
		for rep, istate := range S[it] {
			addTransition(N, istate, S[it+1][rep])
		}
	}
	return N, nil
}

// BinTransitionCounts is the analogous of TransitionCounts for binned
// coordinate trajectories. The counts of all replicas are pooled in one
// nbins x nbins matrix, as all replicas sample the same coordinate.
func BinTransitionCounts(B Bins, nbins int) (*mat.Dense, error) {
	if err := B.Validate(nbins); err != nil {
		return nil, errDecorate(err, "BinTransitionCounts")
	}
	N := mat.NewDense(nbins, nbins, nil)
	for _, row := range B {
		for it := 0; it < len(row)-1; it++ {
			addTransition(N, row[it], row[it+1])
		}
	}
	return N, nil
}

func addTransition(N *mat.Dense, i, j int) {
	N.Set(i, j, N.At(i, j)+0.5)
	N.Set(j, i, N.At(j, i)+0.5)
}

// TransitionMatrix returns a new row-stochastic matrix obtained by
// normalizing each row of the count matrix N. Rows with no counts
// become identity rows (no data, no escape). N is not modified.
func TransitionMatrix(N mat.Matrix) *mat.Dense {
	r, c := N.Dims()
	T := mat.NewDense(r, c, nil)
	row := make([]float64, c)
	for i := 0; i < r; i++ {
		mat.Row(row, i, N)
		total := floats.Sum(row)
		if total <= 0 {
			T.Set(i, i, 1)
			continue
		}
		floats.Scale(1/total, row)
		T.SetRow(i, row)
	}
	return T
}

// StateTransitionMatrix returns the symmetrized, row-normalized transition
// matrix among states for the trajectory S.
func StateTransitionMatrix(S States, nstates int) (*mat.Dense, error) {
	N, err := TransitionCounts(S, nstates)
	if err != nil {
		return nil, errDecorate(err, "StateTransitionMatrix")
	}
	return TransitionMatrix(N), nil
}
