/*
 * synth.go, part of gorex.
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

// Package synth writes synthetic replica-exchange archives, to exercise
// the analysis tools. No physical model is sampled: the replicas perform
// neighbor swaps over a ladder of states with a fixed acceptance
// probability, and the first 4 atoms of each replica form a rotor whose
// dihedral performs a random walk, faster at higher states.
package synth

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"

	rex "github.com/rmera/gorex"
	"github.com/rmera/gorex/traj/rxf"
	v3 "github.com/rmera/gorex/v3"
)

// Options for the synthetic archive.
type Options struct {
	NReplicas   int     //Also the number of states.
	NIterations int
	NAtoms      int     //0 or at least 4.
	Acceptance  float64 //Probability of accepting each attempted swap.
	Step        float64 //Dihedral step, in radians, at the lowest state.
	Seed        int64
}

// DefaultOptions returns 8 replicas of a 22-atom system, for 1000 iterations.
func DefaultOptions() Options {
	return Options{NReplicas: 8, NIterations: 1000, NAtoms: 22, Acceptance: 0.3, Step: 0.2, Seed: 1}
}

func (o Options) check() error {
	if o.NReplicas < 2 || o.NIterations < 1 {
		return fmt.Errorf("synth: need at least 2 replicas and 1 iteration, got %d and %d", o.NReplicas, o.NIterations)
	}
	if o.NAtoms != 0 && o.NAtoms < 4 {
		return fmt.Errorf("synth: need 0 or at least 4 atoms, got %d", o.NAtoms)
	}
	if o.Acceptance < 0 || o.Acceptance > 1 {
		return fmt.Errorf("synth: acceptance must be in [0,1], got %f", o.Acceptance)
	}
	return nil
}

// rotor puts in c the coordinates of the rotor atoms with dihedral phi.
func rotor(c *v3.Matrix, phi float64) {
	c.Set(0, 0, 0)
	c.Set(0, 1, 1.5)
	c.Set(0, 2, 0)
	for j := 0; j < 3; j++ {
		c.Set(1, j, 0)
	}
	c.Set(2, 0, 1.5)
	c.Set(2, 1, 0)
	c.Set(2, 2, 0)
	c.Set(3, 0, 1.5)
	c.Set(3, 1, 1.5*math.Cos(phi))
	c.Set(3, 2, 1.5*math.Sin(phi))
}

// Generate writes the synthetic archive name, and returns the states
// visited by the replicas.
func Generate(name string, o Options) (rex.States, error) {
	if err := o.check(); err != nil {
		return nil, err
	}
	n := o.NReplicas
	r := rand.New(rand.NewSource(o.Seed))
	header := map[string]string{
		"generator":  "gorex/synth",
		"acceptance": strconv.FormatFloat(o.Acceptance, 'g', -1, 64),
		"seed":       strconv.FormatInt(o.Seed, 10),
	}
	w, err := rxf.NewWriter(name, n, n, o.NAtoms, header)
	if err != nil {
		return nil, err
	}
	defer w.Close()
	//fixed positions for the non-rotor atoms
	var base *v3.Matrix
	if o.NAtoms > 0 {
		base = v3.Zeros(o.NAtoms)
		for i := 4; i < o.NAtoms; i++ {
			for j := 0; j < 3; j++ {
				base.Set(i, j, r.Float64()*10-5)
			}
		}
	}
	F := rex.NewFrame(n, n, o.NAtoms)
	phi := make([]float64, n)
	energy := make([]float64, n)
	for rep := range F.States {
		F.States[rep] = rep
		phi[rep] = r.Float64()*2*math.Pi - math.Pi
	}
	ret := make(rex.States, 0, o.NIterations)
	for it := 0; it < o.NIterations; it++ {
		for rep, s := range F.States {
			energy[rep] = 10*float64(s) + (1+float64(s))*r.NormFloat64()
			for k := range F.Energies[rep] {
				F.Energies[rep][k] = energy[rep] / (1 + 0.1*float64(k))
			}
			if o.NAtoms == 0 {
				continue
			}
			phi[rep] += o.Step * (1 + float64(s)) * r.NormFloat64()
			phi[rep] = math.Remainder(phi[rep], 2*math.Pi)
			c := F.Positions[rep]
			for i := 4; i < o.NAtoms; i++ {
				for j := 0; j < 3; j++ {
					c.Set(i, j, base.At(i, j)+0.05*r.NormFloat64())
				}
			}
			rotor(c, phi[rep])
		}
		if err := w.WNext(F); err != nil {
			return nil, err
		}
		ret = append(ret, append([]int(nil), F.States...))
		swap(F.States, it%2, o.Acceptance, r)
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return ret, nil
}

// swap attempts exchanges between the pairs of neighbor states
// (first, first+1), (first+2, first+3) ...
func swap(states []int, first int, acc float64, r *rand.Rand) {
	n := len(states)
	who := make([]int, n) //who[state] = replica
	for rep, s := range states {
		who[s] = rep
	}
	for s := first; s+1 < n; s += 2 {
		if r.Float64() >= acc {
			continue
		}
		a, b := who[s], who[s+1]
		states[a], states[b] = s+1, s
	}
}
