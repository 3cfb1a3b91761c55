/*
 * geometric.go, part of gorex.
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

	v3 "github.com/rmera/gorex/v3"
)

// Angles are kept in radians everywhere in this library. Degrees and Radians
// convert at the boundaries (binning, plots, reports).

// Degrees converts an angle in radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180.0 / math.Pi
}

// Radians converts an angle in degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

func cross(a, b *v3.Matrix) *v3.Matrix {
	c := v3.Zeros(1)
	c.Cross(a, b)
	return c
}

// DihedralVecs calculates the dihedral angle, in radians, defined by the points
// a, b, c, d, where the first plane is defined by abc and the second by bcd.
// The normals of both planes are obtained from the cross products of the
// bond vectors, and the sign of the angle is that of the projection of
// n1 x n2 on the b->c bond. Thus, a cis arrangement gives 0, a trans one
// gives pi, and the angle is positive when, looking from b to c, the a-b bond
// must be rotated clockwise to eclipse the c-d bond.
func DihedralVecs(a, b, c, d *v3.Matrix) (float64, error) {
	b1 := v3.Zeros(1)
	b2 := v3.Zeros(1)
	b3 := v3.Zeros(1)
	b1.Sub(b, a)
	b2.Sub(c, b)
	b3.Sub(d, c)
	n1 := v3.Zeros(1)
	n2 := v3.Zeros(1)
	if err := n1.Unit(cross(b1, b2)); err != nil {
		return 0, newError(ErrDegenerateGeometry, "DihedralVecs", "first three points are collinear")
	}
	if err := n2.Unit(cross(b2, b3)); err != nil {
		return 0, newError(ErrDegenerateGeometry, "DihedralVecs", "last three points are collinear")
	}
	cos := math.Max(-1, math.Min(1, n1.Dot(n2)))
	theta := math.Acos(cos)
	if b2.Dot(cross(n1, n2)) < 0 {
		theta = -theta
	}
	return theta, nil
}

// Dihedral returns the dihedral angle, in radians, defined by the atoms
// with indexes i, j, k and l in coords.
func Dihedral(coords *v3.Matrix, i, j, k, l int) (float64, error) {
	n := coords.NVecs()
	for _, v := range [4]int{i, j, k, l} {
		if v < 0 || v >= n {
			return 0, newError(ErrMalformed, "Dihedral", "atom %d out of range (%d atoms)", v, n)
		}
	}
	d, err := DihedralVecs(coords.VecView(i), coords.VecView(j), coords.VecView(k), coords.VecView(l))
	if err != nil {
		return 0, errDecorate(err, "Dihedral")
	}
	return d, nil
}

// Torsion is a named dihedral angle, defined by the indexes of 4 atoms.
type Torsion struct {
	Name  string
	Atoms [4]int
}

// FrameTorsion returns the value of the torsion t, in radians, for each replica
// in the frame f.
func FrameTorsion(f *Frame, t Torsion, dst []float64) ([]float64, error) {
	if len(f.Positions) == 0 {
		return nil, newError(ErrMalformed, "FrameTorsion", "frame has no positions")
	}
	if len(dst) < len(f.Positions) {
		dst = make([]float64, len(f.Positions))
	}
	a := t.Atoms
	for rep, c := range f.Positions {
		var err error
		dst[rep], err = Dihedral(c, a[0], a[1], a[2], a[3])
		if err != nil {
			return nil, errDecorate(err, "FrameTorsion")
		}
	}
	return dst[:len(f.Positions)], nil
}
