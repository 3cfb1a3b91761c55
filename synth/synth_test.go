/*
 * synth_test.go, part of gorex.
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

package synth

import (
	"math"
	"path/filepath"
	"sort"
	"testing"

	rex "github.com/rmera/gorex"
	"github.com/rmera/gorex/traj/rxf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(Te *testing.T) {
	o := Options{NReplicas: 4, NIterations: 50, NAtoms: 6, Acceptance: 0.5, Step: 0.1, Seed: 3}
	name := filepath.Join(Te.TempDir(), "synth.rxf")
	S, err := Generate(name, o)
	require.NoError(Te, err)
	require.Len(Te, S, 50)
	for _, row := range S {
		perm := append([]int(nil), row...)
		sort.Ints(perm)
		assert.Equal(Te, []int{0, 1, 2, 3}, perm, "states must be a permutation")
	}
	D, err := rxf.ReadAll(name, true)
	require.NoError(Te, err)
	assert.Equal(Te, S, D.States)
	assert.Equal(Te, "0.5", D.Header["acceptance"])
	for _, frame := range D.Positions {
		for _, c := range frame {
			phi, err := rex.Dihedral(c, 0, 1, 2, 3)
			require.NoError(Te, err)
			assert.LessOrEqual(Te, math.Abs(phi), math.Pi)
		}
	}
}

func TestGenerateNoExchange(Te *testing.T) {
	o := Options{NReplicas: 3, NIterations: 10, Seed: 1}
	S, err := Generate(filepath.Join(Te.TempDir(), "sticky.rxf.gz"), o)
	require.NoError(Te, err)
	for _, row := range S {
		assert.Equal(Te, []int{0, 1, 2}, row)
	}
}

func TestGenerateErrors(Te *testing.T) {
	dir := Te.TempDir()
	_, err := Generate(filepath.Join(dir, "a.rxf"), Options{NReplicas: 1, NIterations: 10})
	assert.Error(Te, err)
	_, err = Generate(filepath.Join(dir, "b.rxf"), Options{NReplicas: 2, NIterations: 10, NAtoms: 3})
	assert.Error(Te, err)
	_, err = Generate(filepath.Join(dir, "c.rxf"), Options{NReplicas: 2, NIterations: 10, Acceptance: 2})
	assert.Error(Te, err)
}
