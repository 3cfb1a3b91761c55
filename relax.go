/*
 * relax.go, part of gorex.
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
	"math"
)

// DefaultBins is the default number of bins per torsion.
const DefaultBins = 50

// BinWidth returns the width, in degrees, of each of the nbins bins used to
// discretize an angle. The width is slightly larger than 360/nbins, so an
// angle of exactly 180 degrees still falls in the last bin.
func BinWidth(nbins int) float64 {
	return 360.0 / (float64(nbins) - 0.01)
}

// BinAngle returns the bin, in [0, nbins), of the angle rad, given in radians
// and expected to be in [-pi, pi]. Bins start at -180 degrees.
func BinAngle(rad float64, nbins int) int {
	b := int((Degrees(rad) + 180.0) / BinWidth(nbins))
	if b < 0 {
		return 0
	}
	if b >= nbins {
		return nbins - 1
	}
	return b
}

// BinAngles discretizes a (replica x iteration) angle trajectory, in radians,
// into nbins equal-width bins covering [-180, 180] degrees.
func BinAngles(angles [][]float64, nbins int) (Bins, error) {
	if nbins < 2 {
		return nil, newError(ErrMalformed, "BinAngles", "%d bins requested", nbins)
	}
	ret := make(Bins, len(angles))
	for rep, row := range angles {
		ret[rep] = make([]int, len(row))
		for it, a := range row {
			if math.IsNaN(a) {
				return nil, newError(ErrMalformed, "BinAngles", "NaN angle for replica %d at iteration %d", rep, it)
			}
			ret[rep][it] = BinAngle(a, nbins)
		}
	}
	return ret, nil
}

// RelaxationTime estimates the slowest relaxation time, in iterations, of a
// binned coordinate. Transitions of all replicas are pooled into one
// transition matrix among bins, which is then analyzed as in Equilibration.
func RelaxationTime(B Bins, nbins int) (float64, error) {
	N, err := BinTransitionCounts(B, nbins)
	if err != nil {
		return 0, errDecorate(err, "RelaxationTime")
	}
	_, tau, err := Equilibration(TransitionMatrix(N))
	if err != nil {
		return 0, errDecorate(err, "RelaxationTime")
	}
	return tau, nil
}

// RelaxationTimeWithError returns the relaxation time of the binned
// coordinate B, with a standard error obtained from nblocks consecutive
// blocks of iterations. As in MixingWithError, a block where the relaxation
// time is undefined leaves the full-data value in place, with ErrUndefined set.
func RelaxationTimeWithError(B Bins, nbins, nblocks int) (Estimate, error) {
	if err := B.Validate(nbins); err != nil {
		return Estimate{}, errDecorate(err, "RelaxationTimeWithError")
	}
	return BlockBootstrap(len(B[0]), nblocks, func(start, end int) (float64, error) {
		return RelaxationTime(B.Slice(start, end), nbins)
	})
}
