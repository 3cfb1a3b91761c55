/*
 * estimators_test.go, part of gorex.
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
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlocks(Te *testing.T) {
	b, err := Blocks(23, 5)
	require.NoError(Te, err)
	require.Len(Te, b, 5)
	for i, w := range b {
		assert.Equal(Te, 4, w[1]-w[0])
		assert.Equal(Te, 4*i, w[0])
	}
	assert.Equal(Te, 20, b[4][1], "the remainder should be dropped")

	b, err = Blocks(10, 10)
	require.NoError(Te, err)
	assert.Equal(Te, [2]int{9, 10}, b[9])

	_, err = Blocks(9, 10)
	assert.ErrorIs(Te, err, ErrInsufficientData)
	_, err = Blocks(9, 0)
	assert.ErrorIs(Te, err, ErrMalformed)
}

func TestMeanStdErr(Te *testing.T) {
	mean, se := MeanStdErr([]float64{1, 3, 1, 3})
	assert.InDelta(Te, 2.0, mean, 1e-12)
	//population std is 1.
	assert.InDelta(Te, 0.5, se, 1e-12)
	mean, se = MeanStdErr([]float64{4, 4, 4})
	assert.Equal(Te, 4.0, mean)
	assert.Equal(Te, 0.0, se)
}

func TestBlockBootstrap(Te *testing.T) {
	data := make([]float64, 100)
	for i := range data {
		data[i] = float64(i % 2)
	}
	mean := func(start, end int) (float64, error) {
		var s float64
		for _, v := range data[start:end] {
			s += v
		}
		return s / float64(end-start), nil
	}
	var calls int
	est, err := BlockBootstrap(len(data), 5, func(start, end int) (float64, error) {
		calls++
		return mean(start, end)
	})
	require.NoError(Te, err)
	assert.Equal(Te, 6, calls, "one call for the full data and one per block")
	assert.True(Te, est.StdErrDefined())
	assert.InDelta(Te, 0.5, est.Value, 1e-12)
	assert.InDelta(Te, 0.5, est.Mean, 1e-12)
	assert.InDelta(Te, 0.0, est.Err, 1e-12)
	assert.Len(Te, est.Samples, 5)

	//odd-sized blocks have means 0.48 and 0.52.
	est, err = BlockBootstrap(len(data), 4, mean)
	require.NoError(Te, err)
	assert.InDelta(Te, 0.5, est.Mean, 1e-12)
	assert.InDelta(Te, 0.01, est.Err, 1e-12)
}

func TestBlockBootstrapFailingBlock(Te *testing.T) {
	est, err := BlockBootstrap(40, 4, func(start, end int) (float64, error) {
		if start == 20 {
			return 0, newError(ErrInsufficientData, "test", "nothing here")
		}
		return 1, nil
	})
	require.NoError(Te, err, "the full-data value is still valid")
	assert.Equal(Te, 1.0, est.Value)
	assert.False(Te, est.StdErrDefined())
	assert.ErrorIs(Te, est.ErrUndefined, ErrInsufficientData)
	assert.Nil(Te, est.Samples)

	est, err = BlockBootstrap(5, 10, func(start, end int) (float64, error) { return 2, nil })
	require.NoError(Te, err)
	assert.Equal(Te, 2.0, est.Value)
	assert.ErrorIs(Te, est.ErrUndefined, ErrInsufficientData, "too few items for the blocks")

	_, err = BlockBootstrap(40, 4, func(start, end int) (float64, error) {
		if start == 0 && end == 40 {
			return 0, newError(ErrDecomposable, "test", "full data")
		}
		return 1, nil
	})
	assert.ErrorIs(Te, err, ErrDecomposable)
}

// With block statistics that are i.i.d. regardless of the block length,
// the standard error decreases as more blocks are used.
func TestBlockErrorShrinks(Te *testing.T) {
	r := rand.New(rand.NewSource(11))
	first := func(data []float64) func(start, end int) (float64, error) {
		return func(start, end int) (float64, error) { return data[start], nil }
	}
	var few, many float64
	const reps = 20
	for i := 0; i < reps; i++ {
		data := make([]float64, 5000)
		for j := range data {
			data[j] = r.NormFloat64()
		}
		e5, err := BlockBootstrap(len(data), 5, first(data))
		require.NoError(Te, err)
		e500, err := BlockBootstrap(len(data), 500, first(data))
		require.NoError(Te, err)
		few += e5.Err / reps
		many += e500.Err / reps
	}
	assert.Less(Te, many, few)
	assert.InDelta(Te, 1/math.Sqrt(500), many, 0.02)
}

func TestEndToEndAlternating(Te *testing.T) {
	for _, k := range []int{1, 3, 7} {
		S := make(States, 10*k)
		for it := range S {
			lo := (it / k) % 2
			S[it] = []int{lo, 1 - lo}
		}
		ev, err := EndToEndEvents(S, 2)
		require.NoError(Te, err)
		assert.Len(Te, ev, 2*9)
		est, err := EndToEnd(S, 2)
		require.NoError(Te, err)
		assert.InDelta(Te, float64(k), est.Value, 1e-12)
		assert.InDelta(Te, 0.0, est.Err, 1e-12)
	}
}

func TestEndToEndReferenceReset(Te *testing.T) {
	//repeated visits to the same end do not reset the reference.
	S := States{{0}, {1}, {0}, {2}, {1}, {2}, {0}}
	ev, err := EndToEndEvents(S, 3)
	require.NoError(Te, err)
	assert.Equal(Te, []float64{3, 3}, ev)
}

func TestEndToEndNoEvents(Te *testing.T) {
	S := States{{1, 0}, {1, 0}, {1, 1}, {1, 0}}
	ev, err := EndToEndEvents(S, 3)
	require.NoError(Te, err)
	assert.Empty(Te, ev)
	_, err = EndToEnd(S, 3)
	assert.ErrorIs(Te, err, ErrInsufficientData)
}

func TestBinAngle(Te *testing.T) {
	nbins := DefaultBins
	assert.Equal(Te, 0, BinAngle(-math.Pi, nbins))
	assert.Equal(Te, nbins-1, BinAngle(math.Pi, nbins))
	assert.Equal(Te, 24, BinAngle(0, nbins))
	assert.Equal(Te, 0, BinAngle(-4, nbins))
	assert.Equal(Te, nbins-1, BinAngle(4, nbins))
	for a := -math.Pi; a <= math.Pi; a += 0.01 {
		b := BinAngle(a, nbins)
		assert.True(Te, b >= 0 && b < nbins)
	}
	_, err := BinAngles([][]float64{{0, math.NaN()}}, nbins)
	assert.ErrorIs(Te, err, ErrMalformed)
	_, err = BinAngles([][]float64{{0}}, 1)
	assert.ErrorIs(Te, err, ErrMalformed)
}

func TestRelaxationTime(Te *testing.T) {
	tau, err := RelaxationTime(Bins{{0, 1, 0, 1}, {1, 0, 1, 0}}, 2)
	require.NoError(Te, err)
	assert.InDelta(Te, 0.5, tau, 1e-10)

	//2 self-transitions per bin, 1 crossing each way: T = [[2/3 1/3] [1/3 2/3]].
	tau, err = RelaxationTime(Bins{{0, 0, 1, 1}, {1, 1, 0, 0}}, 2)
	require.NoError(Te, err)
	assert.InDelta(Te, 1.5, tau, 1e-10)

	_, err = RelaxationTime(Bins{{0, 0, 0}, {1, 1, 1}}, 2)
	assert.ErrorIs(Te, err, ErrDecomposable)
}

func TestRelaxationTimeWithError(Te *testing.T) {
	B := make(Bins, 2)
	for it := 0; it < 20; it++ {
		b := (it / 2) % 2
		B[0] = append(B[0], b)
		B[1] = append(B[1], 1-b)
	}
	full, err := RelaxationTime(B, 2)
	require.NoError(Te, err)
	block, err := RelaxationTime(B.Slice(0, 4), 2)
	require.NoError(Te, err)
	est, err := RelaxationTimeWithError(B, 2, 5)
	require.NoError(Te, err)
	require.True(Te, est.StdErrDefined())
	assert.InDelta(Te, full, est.Value, 1e-10)
	assert.Len(Te, est.Samples, 5)
	assert.InDelta(Te, block, est.Mean, 1e-10)
	assert.InDelta(Te, 0, est.Err, 1e-10)

	//the first block never leaves its starting bin.
	F := Bins{{0, 0, 0, 0}, {1, 1, 1, 1}}
	for it := 0; it < 16; it++ {
		F[0] = append(F[0], it%2)
		F[1] = append(F[1], 1-it%2)
	}
	full, err = RelaxationTime(F, 2)
	require.NoError(Te, err)
	est, err = RelaxationTimeWithError(F, 2, 5)
	require.NoError(Te, err)
	assert.InDelta(Te, full, est.Value, 1e-10)
	assert.ErrorIs(Te, est.ErrUndefined, ErrDecomposable)

	_, err = RelaxationTimeWithError(Bins{}, 2, 5)
	assert.ErrorIs(Te, err, ErrMalformed)
}

func TestReducedPotential(Te *testing.T) {
	S := States{{0, 1}, {1, 0}}
	E := [][][]float64{
		{{1, 2}, {3, 4}},
		{{5, 6}, {7, 8}},
	}
	u, err := ReducedPotential(S, E)
	require.NoError(Te, err)
	assert.Equal(Te, []float64{1 + 4, 6 + 7}, u)

	_, err = ReducedPotential(S, E[:1])
	assert.ErrorIs(Te, err, ErrMalformed)
	_, err = FrameReducedPotential([]int{0, 2}, E[0])
	assert.ErrorIs(Te, err, ErrMalformed)
}
