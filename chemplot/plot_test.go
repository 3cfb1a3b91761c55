/*
 * plot_test.go, part of gorex.
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

package chemplot

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	rex "github.com/rmera/gorex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatePlot(Te *testing.T) {
	S := rex.States{{0, 1, 2}, {1, 0, 2}, {1, 2, 0}, {2, 1, 0}}
	name := filepath.Join(Te.TempDir(), "states")
	require.NoError(Te, StatePlot(S, 3, 2, "Test states", name))
	fi, err := os.Stat(name + ".png")
	require.NoError(Te, err)
	assert.Greater(Te, fi.Size(), int64(0))

	assert.Error(Te, StatePlot(S, 2, 2, "bad", name))
}

func TestRamaPlot(Te *testing.T) {
	phi := [][]float64{{-math.Pi, 0, 1}, {2, -1, 0.5}}
	psi := [][]float64{{math.Pi, 0.3, -1}, {-2, 1, 0.25}}
	name := filepath.Join(Te.TempDir(), "rama")
	require.NoError(Te, RamaPlot(phi, psi, 8, "Test Ramachandran", "phi", "psi", name))
	_, err := os.Stat(name + ".png")
	require.NoError(Te, err)

	assert.Error(Te, RamaPlot(phi, psi[:1], 8, "bad", "phi", "psi", name))
}

func TestColors(Te *testing.T) {
	for i := 0; i < 10; i++ {
		c := colors(i, 10)
		assert.Equal(Te, uint8(255), c.A)
	}
	assert.NotEqual(Te, colors(0, 10), colors(9, 10))
}
