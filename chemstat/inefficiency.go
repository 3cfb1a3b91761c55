/*
 * inefficiency.go, part of gorex.
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

// Package chemstat estimates statistical inefficiencies and correlation
// times of timeseries, following the integrated autocorrelation approach
// of Chodera et al. (J. Chem. Theory Comput. 3, 26, 2007).
package chemstat

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/stat"
)

var (
	// ErrZeroVariance means the timeseries is constant, so its
	// autocorrelation is not defined.
	ErrZeroVariance = errors.New("chemstat: sample variance is zero")

	// ErrTooShort means the timeseries has fewer than 2 samples.
	ErrTooShort = errors.New("chemstat: timeseries too short")
)

func errTooShort(n int) error {
	return fmt.Errorf("%w: %d samples", ErrTooShort, n)
}

// DefaultMinTime is the default minimum lag for which a non-positive
// autocorrelation stops the integration.
const DefaultMinTime = 3

// Options for the statistical inefficiency estimators.
type Options struct {
	//If Fast is true, the lag increment grows by one after each
	//evaluation of C(t), and each value is weighted by the increment.
	Fast bool

	//Negative or zero values of C(t) only stop the integration for
	//lags larger than MinTime.
	MinTime int
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{MinTime: DefaultMinTime}
}

// integrate returns g = 1 + 2 sum C(t)(1-t/n), starting from t=1 and
// stopping at the first non-positive C(t) with t > MinTime. g is never
// smaller than 1.
func integrate(C []float64, n float64, opts Options) float64 {
	g := 1.0
	t, inc := 1, 1
	for t < len(C) {
		if C[t] <= 0 && t > opts.MinTime {
			break
		}
		g += 2 * C[t] * (1 - float64(t)/n) * float64(inc)
		t += inc
		if opts.Fast {
			inc++
		}
	}
	if g < 1 {
		g = 1
	}
	return g
}

// StatisticalInefficiency returns the statistical inefficiency g of the
// timeseries a, so that a contains about len(a)/g uncorrelated samples.
func StatisticalInefficiency(a []float64, opts Options) (float64, error) {
	C, err := Autocorrelation(a)
	if err != nil {
		return 0, fmt.Errorf("StatisticalInefficiency: %w", err)
	}
	return integrate(C, float64(len(a)), opts), nil
}

// StatisticalInefficiencyMultiple returns the statistical inefficiency of
// several timeseries of the same observable, possibly of different lengths,
// assumed to sample the same distribution. The mean and variance are taken
// over all the data, and the autocorrelation for each lag is averaged over
// all the available pairs of all the sequences.
func StatisticalInefficiencyMultiple(a [][]float64, opts Options) (float64, error) {
	var all []float64
	maxlen := 0
	for _, v := range a {
		all = append(all, v...)
		if len(v) > maxlen {
			maxlen = len(v)
		}
	}
	if maxlen < 2 {
		return 0, fmt.Errorf("StatisticalInefficiencyMultiple: %w", errTooShort(maxlen))
	}
	if constant(all) {
		return 0, fmt.Errorf("StatisticalInefficiencyMultiple: %w", ErrZeroVariance)
	}
	mean, variance := stat.PopMeanVariance(all, nil)
	num := make([]float64, maxlen-1)
	den := make([]float64, maxlen-1)
	for _, v := range a {
		if len(v) == 0 {
			continue
		}
		sums := lagSums(fluctuations(v, mean), nil)
		for t := 0; t < len(v) && t < len(num); t++ {
			num[t] += sums[t]
			den[t] += float64(len(v) - t)
		}
	}
	C := make([]float64, len(num))
	for t := range C {
		C[t] = num[t] / (den[t] * variance)
	}
	navg := float64(len(all)) / float64(len(a))
	return integrate(C, navg, opts), nil
}

// Tau returns the integrated correlation time, in samples, that
// corresponds to the statistical inefficiency g.
func Tau(g float64) float64 {
	return (g - 1) / 2
}

// Estimator exposes the statistical inefficiency estimators with a
// fixed set of options.
type Estimator struct {
	Options
}

// NewEstimator returns an Estimator that uses opts.
func NewEstimator(opts Options) *Estimator {
	return &Estimator{Options: opts}
}

// Inefficiency returns the statistical inefficiency of a.
func (E *Estimator) Inefficiency(a []float64) (float64, error) {
	return StatisticalInefficiency(a, E.Options)
}

// InefficiencyMultiple returns the statistical inefficiency of the
// sequences in a, taken as samples of the same observable.
func (E *Estimator) InefficiencyMultiple(a [][]float64) (float64, error) {
	return StatisticalInefficiencyMultiple(a, E.Options)
}
