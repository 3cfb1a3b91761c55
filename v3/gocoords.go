/*
 * gocoords.go, part of gorex.
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

package v3

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const appzero float64 = 0.000000000001 //used to correct floating point
//errors. Everything equal or less than this is considered zero.

// Zeros returns a zero-filled Matrix with vecs vectors and 3 in the other dimension.
func Zeros(vecs int) *Matrix {
	const cols int = 3
	f := make([]float64, cols*vecs)
	return &Matrix{mat.NewDense(vecs, cols, f)}
}

// NVecs return the number of (row) vectors in a v3.Matrix.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return r
}

// Sub puts A-B in the receiver.
func (F *Matrix) Sub(A, B *Matrix) {
	F.Dense.Sub(A.Dense, B.Dense)
}

// Scale multiplies A by the scalar v and puts the result in the receiver.
func (F *Matrix) Scale(v float64, A *Matrix) {
	F.Dense.Scale(v, A.Dense)
}

// Cross puts the cross product of the 1x3 vectors a and b in the receiver,
// which must be a 1x3 vector as well.
func (F *Matrix) Cross(a, b *Matrix) {
	if a.NVecs() != 1 || b.NVecs() != 1 || F.NVecs() != 1 {
		panic(ErrNoCrossProduct)
	}
	a0, a1, a2 := a.At(0, 0), a.At(0, 1), a.At(0, 2)
	b0, b1, b2 := b.At(0, 0), b.At(0, 1), b.At(0, 2)
	F.Set(0, 0, a1*b2-a2*b1)
	F.Set(0, 1, a2*b0-a0*b2)
	F.Set(0, 2, a0*b1-a1*b0)
}

// Dot returns the dot product of the receiver and B, both 1x3 vectors.
func (F *Matrix) Dot(B *Matrix) float64 {
	if F.NVecs() != 1 || B.NVecs() != 1 {
		panic(ErrShape)
	}
	return floats.Dot(F.RawRowView(0)[:3], B.RawRowView(0)[:3])
}

// Norm returns the euclidean norm of a 1x3 vector.
func (F *Matrix) Norm() float64 {
	return math.Sqrt(F.Dot(F))
}

// Unit puts in the receiver the unit vector pointing in the same
// direction as A. It returns an error if A has (almost) zero norm,
// in which case the receiver is not modified.
func (F *Matrix) Unit(A *Matrix) error {
	norm := A.Norm()
	if norm <= appzero {
		return Error{"Can't normalize a zero vector", []string{"Unit"}, false}
	}
	F.Scale(1.0/norm, A)
	return nil
}

func (F *Matrix) String() string {
	r, c := F.Dims()
	v := make([]string, r)
	for i := 0; i < r; i++ {
		row := make([]string, c)
		for j := 0; j < c; j++ {
			row[j] = fmt.Sprintf("%8.3f", F.At(i, j))
		}
		v[i] = strings.Join(row, " ")
	}
	return strings.Join(v, "\n")
}
