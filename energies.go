/*
 * energies.go, part of gorex.
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

// FrameReducedPotential returns the sum, over all replicas, of the reduced
// potential of each replica evaluated at the state it occupies.
func FrameReducedPotential(states []int, energies [][]float64) (float64, error) {
	if len(states) != len(energies) {
		return 0, newError(ErrMalformed, "FrameReducedPotential", "%d states but %d energy rows", len(states), len(energies))
	}
	var u float64
	for rep, s := range states {
		if s < 0 || s >= len(energies[rep]) {
			return 0, newError(ErrMalformed, "FrameReducedPotential", "state %d of replica %d has no energy", s, rep)
		}
		u += energies[rep][s]
	}
	return u, nil
}

// ReducedPotential returns, for each iteration, the total reduced potential
// of the replicas in the states they occupied. energies is indexed as
// [iteration][replica][state].
func ReducedPotential(S States, energies [][][]float64) ([]float64, error) {
	if len(S) != len(energies) {
		return nil, newError(ErrMalformed, "ReducedPotential", "%d iterations of states but %d of energies", len(S), len(energies))
	}
	u := make([]float64, len(S))
	for it, row := range S {
		var err error
		u[it], err = FrameReducedPotential(row, energies[it])
		if err != nil {
			return nil, errDecorate(err, "ReducedPotential")
		}
	}
	return u, nil
}
