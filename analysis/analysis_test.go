/*
 * analysis_test.go, part of gorex.
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

package analysis

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	rex "github.com/rmera/gorex"
	"github.com/rmera/gorex/chemstat"
	"github.com/rmera/gorex/config"
	"github.com/rmera/gorex/synth"
	"github.com/rmera/gorex/traj/rxf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(dir string) *config.Config {
	cfg := config.Default()
	cfg.Torsions = []config.TorsionConfig{
		{Name: "rotor", Atoms: [4]int{0, 1, 2, 3}},
		{Name: "reversed", Atoms: [4]int{3, 2, 1, 0}},
		{Name: "missing", Atoms: [4]int{0, 1, 2, 9}},
	}
	cfg.Plots.Dir = dir
	return cfg
}

func newAnalyzer(Te *testing.T, cfg *config.Config) *Analyzer {
	A, err := New(cfg, zap.NewNop(), chemstat.NewEstimator(chemstat.DefaultOptions()))
	require.NoError(Te, err)
	return A
}

func TestNew(Te *testing.T) {
	_, err := New(nil, nil, nil)
	assert.ErrorIs(Te, err, ErrNoInefficiency)

	cfg := config.Default()
	cfg.NBlocks = 0
	_, err = New(cfg, nil, chemstat.NewEstimator(chemstat.DefaultOptions()))
	assert.Error(Te, err)

	A, err := New(nil, nil, chemstat.NewEstimator(chemstat.DefaultOptions()))
	require.NoError(Te, err)
	assert.NotEmpty(Te, A.RunID())
	assert.Equal(Te, []string{"phi", "psi"}, A.Torsions())
}

func TestAnalyze(Te *testing.T) {
	dir := Te.TempDir()
	name := filepath.Join(dir, "mixing.rxf")
	o := synth.Options{NReplicas: 8, NIterations: 2000, NAtoms: 4, Acceptance: 0.3, Step: 0.2, Seed: 5}
	_, err := synth.Generate(name, o)
	require.NoError(Te, err)

	A := newAnalyzer(Te, testConfig(filepath.Join(dir, "plots")))
	res, err := A.Analyze(name)
	require.NoError(Te, err)
	assert.Equal(Te, A.RunID(), res.RunID)
	assert.Equal(Te, 2000, res.NIterations)
	assert.Equal(Te, 8, res.NReplicas)
	assert.Equal(Te, "gorex/synth", res.Header["generator"])

	require.NotNil(Te, res.Transition)
	require.Len(Te, res.Eigenvalues, 8)
	assert.InDelta(Te, 1.0, res.Eigenvalues[0], 1e-10)

	for name, o := range map[string]Outcome{"mu2": res.Mu2, "tau2": res.Tau2, "g_states": res.GStates,
		"tau_states": res.TauStates, "tau_end": res.TauEnd, "g_u": res.GU, "tau_u": res.TauU} {
		assert.True(Te, o.Defined(), "%s: %v", name, o.Err)
	}
	assert.Less(Te, res.Mu2.Value, 1.0)
	assert.Greater(Te, res.Tau2.Value, 0.0)
	assert.Len(Te, res.Tau2.Samples, 10)
	assert.GreaterOrEqual(Te, res.GStates.Value, 1.0)
	assert.InDelta(Te, chemstat.Tau(res.GStates.Value), res.TauStates.Value, 1e-12)
	assert.Greater(Te, res.TauEnd.Value, 0.0)

	require.Len(Te, res.Torsions, 3)
	for _, tr := range res.Torsions[:2] {
		require.NoError(Te, tr.Err, tr.Name)
		assert.True(Te, tr.TauCos.Defined(), "%s: %v", tr.Name, tr.TauCos.Err)
		assert.True(Te, tr.TauSin.Defined(), "%s: %v", tr.Name, tr.TauSin.Err)
		assert.True(Te, tr.Relaxation.Defined(), "%s: %v", tr.Name, tr.Relaxation.Err)
		assert.Equal(Te, 1.0, tr.Coverage)
		assert.Equal(Te, 2000*8, tr.Populations.Total())
	}
	//the same torsion, with the atoms reversed.
	assert.InDelta(Te, res.Torsions[0].TauCos.Value, res.Torsions[1].TauCos.Value, 1e-6)
	missing := res.Torsions[2]
	assert.ErrorIs(Te, missing.Err, rex.ErrMalformed)
	assert.False(Te, missing.TauCos.Defined())
	assert.False(Te, missing.Relaxation.Defined())

	require.Len(Te, res.Plots, 2)
	for _, p := range res.Plots {
		_, err := os.Stat(p)
		assert.NoError(Te, err)
	}
}

func TestAnalyzeNoExchange(Te *testing.T) {
	dir := Te.TempDir()
	name := filepath.Join(dir, "sticky.rxf.gz")
	_, err := synth.Generate(name, synth.Options{NReplicas: 4, NIterations: 100, Seed: 2})
	require.NoError(Te, err)
	cfg := config.Default()
	A := newAnalyzer(Te, cfg)
	res, err := A.Analyze(name)
	require.NoError(Te, err, "undefined quantities must not fail the archive")
	assert.ErrorIs(Te, res.Mu2.Err, rex.ErrDecomposable)
	assert.ErrorIs(Te, res.Tau2.Err, rex.ErrDecomposable)
	assert.ErrorIs(Te, res.TauEnd.Err, rex.ErrInsufficientData)
	assert.True(Te, res.GU.Defined())
	require.Len(Te, res.Torsions, 2)
	for _, tr := range res.Torsions {
		assert.ErrorIs(Te, tr.Err, rex.ErrInsufficientData, "the archive has no coordinates")
	}
	assert.Empty(Te, res.Plots)
}

func TestAnalyzeSkipPositions(Te *testing.T) {
	dir := Te.TempDir()
	name := filepath.Join(dir, "skip.rxf")
	_, err := synth.Generate(name, synth.Options{NReplicas: 4, NIterations: 1000, NAtoms: 4, Acceptance: 0.5, Step: 0.3, Seed: 2})
	require.NoError(Te, err)
	cfg := testConfig("")
	cfg.SkipPositions = true
	res, err := newAnalyzer(Te, cfg).Analyze(name)
	require.NoError(Te, err)
	for _, tr := range res.Torsions {
		assert.Error(Te, tr.Err)
		assert.Nil(Te, tr.Populations)
	}
	assert.True(Te, res.Mu2.Defined())
}

func TestAnalyzeFrozenStart(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "frozen.rxf")
	w, err := rxf.NewWriter(name, 3, 3, 0, nil)
	require.NoError(Te, err)
	F := rex.NewFrame(3, 3, 0)
	for it := 0; it < 100; it++ {
		shift := 0
		if it >= 10 && it%2 == 1 {
			shift = 1
		}
		for r := range F.States {
			F.States[r] = (r + shift) % 3
			for s := range F.Energies[r] {
				F.Energies[r][s] = float64(s) + 0.1*float64((it*7+r)%5)
			}
		}
		require.NoError(Te, w.WNext(F))
	}
	require.NoError(Te, w.Close())

	res, err := newAnalyzer(Te, config.Default()).Analyze(name)
	require.NoError(Te, err)
	//only the first block is decomposable.
	require.True(Te, res.Mu2.Defined(), "%v", res.Mu2.Err)
	require.True(Te, res.Tau2.Defined())
	assert.Less(Te, res.Mu2.Value, 1.0)
	assert.False(Te, res.Mu2.StdErrDefined())
	assert.ErrorIs(Te, res.Mu2.ErrUndefined, rex.ErrDecomposable)
	assert.ErrorIs(Te, res.Tau2.ErrUndefined, rex.ErrDecomposable)
}

func TestAnalyzeEmpty(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "empty.rxf")
	w, err := rxf.NewWriter(name, 2, 2, 0, nil)
	require.NoError(Te, err)
	require.NoError(Te, w.Close())
	_, err = newAnalyzer(Te, nil).Analyze(name)
	assert.ErrorIs(Te, err, rex.ErrInsufficientData)
}

func TestRun(Te *testing.T) {
	dir := Te.TempDir()
	var names []string
	for i, seed := range []int64{1, 2, 3} {
		name := filepath.Join(dir, string(rune('a'+i))+".rxf")
		_, err := synth.Generate(name, synth.Options{NReplicas: 4, NIterations: 1000, Acceptance: 0.4, Seed: seed})
		require.NoError(Te, err)
		names = append(names, name)
	}
	missing := filepath.Join(dir, "missing.rxf")
	names = append(names[:1], append([]string{missing}, names[1:]...)...)
	cfg := config.Default()
	cfg.Workers = 2
	results, err := newAnalyzer(Te, cfg).Run(names)
	require.Error(Te, err)
	assert.Contains(Te, err.Error(), "missing.rxf")
	var aerr rex.ArchiveError
	assert.True(Te, errors.As(err, &aerr))
	require.Len(Te, results, 3)
	assert.Equal(Te, names[0], results[0].Name)
	assert.Equal(Te, names[2], results[1].Name)
	assert.Equal(Te, names[3], results[2].Name)
	for _, r := range results {
		assert.True(Te, r.Tau2.Defined())
	}
}
