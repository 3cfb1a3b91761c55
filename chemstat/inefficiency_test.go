/*
 * inefficiency_test.go, part of gorex.
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
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

// ar1 returns an AR(1) process with coefficient phi, whose statistical
// inefficiency is (1+phi)/(1-phi).
func ar1(n int, phi float64, r *rand.Rand) []float64 {
	x := make([]float64, n)
	for i := 1; i < n; i++ {
		x[i] = phi*x[i-1] + r.NormFloat64()
	}
	return x
}

func naiveAutocorrelation(a []float64) []float64 {
	mean, variance := stat.PopMeanVariance(a, nil)
	n := len(a)
	ret := make([]float64, n-1)
	for t := range ret {
		var s float64
		for i := 0; i < n-t; i++ {
			s += (a[i] - mean) * (a[i+t] - mean)
		}
		ret[t] = s / (float64(n-t) * variance)
	}
	return ret
}

func TestAutocorrelation(Te *testing.T) {
	r := rand.New(rand.NewSource(5))
	for _, n := range []int{2, 3, 17, 64, 301} {
		a := ar1(n, 0.5, r)
		a[0] = 1 //the series must not be constant for n=2
		got, err := Autocorrelation(a)
		require.NoError(Te, err)
		want := naiveAutocorrelation(a)
		require.Len(Te, got, len(want))
		assert.InDelta(Te, 1.0, got[0], 1e-10)
		for i := range want {
			assert.InDelta(Te, want[i], got[i], 1e-9, "lag %d of %d", i, n)
		}
	}
}

func TestAutocorrelationErrors(Te *testing.T) {
	_, err := Autocorrelation([]float64{1})
	assert.ErrorIs(Te, err, ErrTooShort)
	_, err = Autocorrelation([]float64{0.1, 0.1, 0.1})
	assert.ErrorIs(Te, err, ErrZeroVariance)
}

func TestStatisticalInefficiencyAR1(Te *testing.T) {
	r := rand.New(rand.NewSource(1))
	a := ar1(100000, 0.9, r)
	g, err := StatisticalInefficiency(a, DefaultOptions())
	require.NoError(Te, err)
	assert.InEpsilon(Te, 19.0, g, 0.25)
	assert.InEpsilon(Te, 9.0, Tau(g), 0.3)

	gf, err := StatisticalInefficiency(a, Options{Fast: true, MinTime: DefaultMinTime})
	require.NoError(Te, err)
	assert.InEpsilon(Te, 19.0, gf, 0.35)
}

func TestStatisticalInefficiencyAnticorrelated(Te *testing.T) {
	a := make([]float64, 100)
	for i := range a {
		a[i] = float64(1 - 2*(i%2))
	}
	g, err := StatisticalInefficiency(a, DefaultOptions())
	require.NoError(Te, err)
	assert.Equal(Te, 1.0, g, "g must be clipped to 1")
	assert.Equal(Te, 0.0, Tau(g))
}

func TestStatisticalInefficiencyErrors(Te *testing.T) {
	_, err := StatisticalInefficiency([]float64{2, 2, 2, 2}, DefaultOptions())
	assert.ErrorIs(Te, err, ErrZeroVariance)
	_, err = StatisticalInefficiency(nil, DefaultOptions())
	assert.ErrorIs(Te, err, ErrTooShort)
	_, err = StatisticalInefficiencyMultiple([][]float64{{1}, {2}}, DefaultOptions())
	assert.ErrorIs(Te, err, ErrTooShort)
	_, err = StatisticalInefficiencyMultiple([][]float64{{3, 3}, {3, 3, 3}}, DefaultOptions())
	assert.ErrorIs(Te, err, ErrZeroVariance)
}

func TestMultipleMatchesSingle(Te *testing.T) {
	r := rand.New(rand.NewSource(3))
	a := ar1(2000, 0.7, r)
	g1, err := StatisticalInefficiency(a, DefaultOptions())
	require.NoError(Te, err)
	gm, err := StatisticalInefficiencyMultiple([][]float64{a}, DefaultOptions())
	require.NoError(Te, err)
	assert.InDelta(Te, g1, gm, 1e-9)
}

func TestMultipleAR1(Te *testing.T) {
	r := rand.New(rand.NewSource(9))
	seqs := make([][]float64, 8)
	for i := range seqs {
		seqs[i] = ar1(20000+100*i, 0.8, r)
	}
	e := NewEstimator(DefaultOptions())
	g, err := e.InefficiencyMultiple(seqs)
	require.NoError(Te, err)
	assert.InEpsilon(Te, 9.0, g, 0.25)
	g0, err := e.Inefficiency(seqs[0])
	require.NoError(Te, err)
	assert.False(Te, math.IsNaN(g0))
	assert.GreaterOrEqual(Te, g0, 1.0)
}
