/*
 * histo.go, part of gorex.
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

// Package histo implements simple histograms, used to follow the
// population of the bins of a discretized coordinate.
package histo

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Data is a histogram. Bin i contains the values v with
// dividers[i] <= v < dividers[i+1]. Values outside the dividers are
// counted in the total, but in no bin.
type Data struct {
	id         int
	normalized bool
	total      int
	dividers   []float64
	histo      []float64
}

// EqualDividers returns the n+1 dividers for n bins of equal
// width spanning [min, max].
func EqualDividers(min, max float64, n int) []float64 {
	if n < 1 || max <= min {
		panic(fmt.Sprintf("gorex/histo.EqualDividers: can't build %d bins in [%f, %f]", n, min, max))
	}
	return floats.Span(make([]float64, n+1), min, max)
}

// NewData returns a new histogram from the dividers and rawdata given.
// rawdata can be nil. In that case, an empty histogram is created.
// If an ID for the histogram is given, it will be set. If not, the ID will
// be set to -1.
func NewData(dividers []float64, rawdata []float64, ID ...int) *Data {
	if len(dividers) < 2 || !sort.Float64sAreSorted(dividers) {
		panic("gorex/histo.NewData: at least 2 sorted dividers are needed")
	}
	d := new(Data)
	d.dividers = append([]float64(nil), dividers...)
	d.histo = make([]float64, len(dividers)-1)
	if rawdata != nil {
		d.rehisto(rawdata)
	}
	d.id = -1
	if len(ID) > 0 {
		d.id = ID[0]
	}
	return d
}

// rehisto replaces the contents of the histogram with rawdata,
// which is not modified.
func (D *Data) rehisto(rawdata []float64) {
	D.total = len(rawdata)
	s := append([]float64(nil), rawdata...)
	sort.Float64s(s)
	//stat.Histogram doesn't accept values outside the dividers,
	//so they are removed before the call.
	maxi := sort.SearchFloat64s(s, D.dividers[len(D.dividers)-1])
	s = s[:maxi]
	mini := sort.SearchFloat64s(s, D.dividers[0])
	s = s[mini:]
	D.histo = stat.Histogram(nil, D.dividers, s, nil)
}

// ID returns the ID of the histogram.
func (D *Data) ID() int {
	return D.id
}

// AddData adds the given data point(s) to the histogram.
func (D *Data) AddData(point ...float64) {
	norma := D.normalized
	if norma {
		D.UnNormalize()
	}
	last := len(D.dividers) - 1
	for _, v := range point {
		if v < D.dividers[0] || v >= D.dividers[last] {
			continue
		}
		//first divider larger than v.
		j := sort.Search(last+1, func(i int) bool { return D.dividers[i] > v })
		D.histo[j-1]++
	}
	D.total += len(point)
	if norma {
		D.Normalize()
	}
}

// AddBin adds n points to bin i, which must be in range.
func (D *Data) AddBin(i int, n float64) {
	norma := D.normalized
	if norma {
		D.UnNormalize()
	}
	D.histo[i] += n
	D.total += int(n)
	if norma {
		D.Normalize()
	}
}

// Normalized returns true if the histogram is normalized.
func (D *Data) Normalized() bool {
	return D.normalized
}

// Normalize divides each bin by the total number of points added.
func (D *Data) Normalize() {
	D.normaunnorma(true)
}

// UnNormalize reverts Normalize.
func (D *Data) UnNormalize() {
	D.normaunnorma(false)
}

func (D *Data) normaunnorma(normalize bool) {
	if D.total <= 0 || D.normalized == normalize {
		return
	}
	n := float64(D.total)
	if normalize {
		n = 1 / n
	}
	D.normalized = normalize
	floats.Scale(n, D.histo)
}

// Dividers returns a copy of the dividers of the histogram.
func (D *Data) Dividers() []float64 {
	return append([]float64(nil), D.dividers...)
}

// View returns the bins of the histogram, not a copy.
func (D *Data) View() []float64 {
	return D.histo
}

// Sum returns the sum of all the bins.
func (D *Data) Sum() float64 {
	return floats.Sum(D.histo)
}

// Total returns the number of points added to the histogram, including
// those that fell outside the dividers.
func (D *Data) Total() int {
	return D.total
}

// Occupied returns the fraction of bins that contain at least one point.
func (D *Data) Occupied() float64 {
	var n int
	for _, v := range D.histo {
		if v > 0 {
			n++
		}
	}
	return float64(n) / float64(len(D.histo))
}

// String returns a -hopefully- pretty representation of the histogram,
// in 3 lines of text.
func (D *Data) String() string {
	ret := fmt.Sprintf("ID: %d, Normalized: %v, TotalData: %d\n", D.id, D.normalized, D.total)
	d := make([]string, 0, len(D.histo))
	h := make([]string, 0, len(D.histo))
	for i, v := range D.histo {
		d = append(d, fmt.Sprintf("%4.2f-%4.2f", D.dividers[i], D.dividers[i+1]))
		h = append(h, fmt.Sprintf("%9.3f", v))
	}
	return ret + fmt.Sprintf("%s\n%s", strings.Join(d, " "), strings.Join(h, " "))
}
