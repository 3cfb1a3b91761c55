/*
 * block.go, part of gorex.
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
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// DefaultBlocks is the number of blocks used when none is given.
const DefaultBlocks = 10

// Estimate is a statistic together with its standard error.
type Estimate struct {
	//Value is the statistic computed from the whole data set.
	Value float64

	//Mean is the mean of Samples (the block values, or the events).
	Mean float64

	//Err is the standard error of the statistic.
	Err float64

	//Samples are the per-block values or the individual events the
	//error was obtained from.
	Samples []float64

	//ErrUndefined, if not nil, is the reason why the error could not be
	//estimated. Value is still valid, but Mean, Err and Samples are not.
	ErrUndefined error
}

// StdErrDefined returns true if the standard error of E could be estimated.
func (E Estimate) StdErrDefined() bool {
	return E.ErrUndefined == nil
}

// MeanStdErr returns the mean of the samples and its standard error,
// i.e. the (population) standard deviation divided by sqrt(len(samples)).
func MeanStdErr(samples []float64) (mean, stderr float64) {
	mean, std := stat.PopMeanStdDev(samples, nil)
	return mean, std / math.Sqrt(float64(len(samples)))
}

// Blocks splits n consecutive items in nblocks contiguous windows of
// n/nblocks items each. Each window is given as [start, end). The last
// n%nblocks items are not included in any window.
func Blocks(n, nblocks int) ([][2]int, error) {
	if nblocks < 1 {
		return nil, newError(ErrMalformed, "Blocks", "%d blocks requested", nblocks)
	}
	size := n / nblocks
	if size < 1 {
		return nil, newError(ErrInsufficientData, "Blocks", "%d items can't be split in %d blocks", n, nblocks)
	}
	ret := make([][2]int, nblocks)
	for i := range ret {
		ret[i] = [2]int{i * size, (i + 1) * size}
	}
	return ret, nil
}

// BlockBootstrapN estimates the standard errors of the statistics produced by f.
// f is called once for the whole data, [0, n), and once for each of the
// nblocks blocks. It must return the same number of values every time.
// The standard error of each statistic is the standard deviation of its
// block values divided by sqrt(nblocks). This approximates the error of the
// full-data estimate from the spread of the shorter block estimates.
// An error is returned only if the full-data statistics can't be computed.
// If the data can't be split, or f fails for any block, the full-data values
// are returned with ErrUndefined set to the reason.
func BlockBootstrapN(n, nblocks int, f func(start, end int) ([]float64, error)) ([]Estimate, error) {
	full, err := f(0, n)
	if err != nil {
		return nil, errDecorate(err, "BlockBootstrapN")
	}
	ret := make([]Estimate, len(full))
	for i, v := range full {
		ret[i] = Estimate{Value: v, Mean: v}
	}
	blocks, err := Blocks(n, nblocks)
	if err != nil {
		return undefinedErr(ret, errDecorate(err, "BlockBootstrapN")), nil
	}
	samples := make([][]float64, len(full))
	for i := range samples {
		samples[i] = make([]float64, nblocks)
	}
	for b, w := range blocks {
		vals, err := f(w[0], w[1])
		if err != nil {
			return undefinedErr(ret, fmt.Errorf("block %d of %d: %w", b, nblocks, errDecorate(err, "BlockBootstrapN"))), nil
		}
		if len(vals) != len(full) {
			return nil, newError(ErrMalformed, "BlockBootstrapN", "block %d gave %d values, expected %d", b, len(vals), len(full))
		}
		for i, v := range vals {
			samples[i][b] = v
		}
	}
	for i := range ret {
		ret[i].Samples = samples[i]
		ret[i].Mean, ret[i].Err = MeanStdErr(samples[i])
	}
	return ret, nil
}

func undefinedErr(est []Estimate, reason error) []Estimate {
	for i := range est {
		est[i].ErrUndefined = reason
	}
	return est
}

// BlockBootstrap is BlockBootstrapN for a single statistic.
func BlockBootstrap(n, nblocks int, f func(start, end int) (float64, error)) (Estimate, error) {
	ret, err := BlockBootstrapN(n, nblocks, func(start, end int) ([]float64, error) {
		v, err := f(start, end)
		if err != nil {
			return nil, err
		}
		return []float64{v}, nil
	})
	if err != nil {
		return Estimate{}, err
	}
	return ret[0], nil
}
