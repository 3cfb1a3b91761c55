/*
 * timecorr.go, part of gorex.
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

package chemstat

import (
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

func cmplxMulConj(dst, b []complex128) {
	if len(dst) != len(b) {
		panic("chemstat: complex conjugate multiplication of slices of different length")
	}
	for i, v := range b {
		dst[i] *= cmplx.Conj(v)
	}
}

// lagSums returns, for each lag t in [0, len(d)), the sum
// d[0]*d[t] + d[1]*d[t+1] + ... + d[N-1-t]*d[N-1].
// The sums are obtained with an FFT of the zero-padded data.
// If pad has length 2*len(d) it is used as workspace.
func lagSums(d []float64, pad []complex128) []float64 {
	n := len(d)
	if len(pad) != 2*n {
		pad = make([]complex128, 2*n)
	}
	for i := range pad {
		pad[i] = 0
	}
	for i, v := range d {
		pad[i] = complex(v, 0)
	}
	f := fourier.NewCmplxFFT(len(pad))
	f.Coefficients(pad, pad)
	cmplxMulConj(pad, pad)
	f.Sequence(pad, pad)
	ret := make([]float64, n)
	norm := 1 / float64(len(pad)) //the FFT round trip is not normalized
	for i := range ret {
		ret[i] = real(pad[i]) * norm
	}
	return ret
}

func constant(a []float64) bool {
	return floats.Max(a) == floats.Min(a)
}

// fluctuations returns the data minus the given mean.
func fluctuations(a []float64, mean float64) []float64 {
	d := make([]float64, len(a))
	for i, v := range a {
		d[i] = v - mean
	}
	return d
}

// Autocorrelation returns the normalized fluctuation autocorrelation function
// of a, C(t) = <da(0)da(t)>/<da^2>, for the lags t in [0, len(a)-1).
// The average for each lag is taken over the N-t available pairs.
func Autocorrelation(a []float64) ([]float64, error) {
	if len(a) < 2 {
		return nil, errTooShort(len(a))
	}
	if constant(a) {
		return nil, ErrZeroVariance
	}
	mean, variance := stat.PopMeanVariance(a, nil)
	sums := lagSums(fluctuations(a, mean), nil)
	n := len(a)
	ret := make([]float64, n-1)
	for t := range ret {
		ret[t] = sums[t] / (float64(n-t) * variance)
	}
	return ret, nil
}
