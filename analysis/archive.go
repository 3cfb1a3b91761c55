/*
 * archive.go, part of gorex.
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
	"fmt"

	rex "github.com/rmera/gorex"
	"github.com/rmera/gorex/traj/rxf"
)

// series contains the timeseries extracted from an archive.
type series struct {
	header  map[string]string
	nstates int
	natoms  int
	states  rex.States
	u       []float64 //reduced potential

	//angles[torsion][replica][iteration], in radians. nil for the
	//torsions that could not be computed, whose reason is in torsionErr.
	angles     [][][]float64
	torsionErr []error
}

// read extracts, iteration by iteration, the states, the reduced potential
// and the torsions from the archive name. The coordinates are discarded as
// soon as the torsions are computed.
func (A *Analyzer) read(name string) (*series, error) {
	r, header, err := rxf.New(name)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	nrep := r.NReplicas()
	s := &series{
		header:     header,
		nstates:    r.NStates(),
		natoms:     r.Len(),
		angles:     make([][][]float64, len(A.torsions)),
		torsionErr: make([]error, len(A.torsions)),
	}
	natoms := s.natoms
	switch {
	case A.cfg.SkipPositions:
		natoms = 0
		for i := range A.torsions {
			s.torsionErr[i] = errors.New("coordinates not read")
		}
	case natoms == 0:
		for i := range A.torsions {
			s.torsionErr[i] = fmt.Errorf("%w: archive has no coordinates", rex.ErrInsufficientData)
		}
	default:
		for i, t := range A.torsions {
			for _, a := range t.Atoms {
				if a >= natoms {
					s.torsionErr[i] = fmt.Errorf("%w: atom %d out of range, the archive has %d atoms", rex.ErrMalformed, a, natoms)
					break
				}
			}
			if s.torsionErr[i] == nil {
				s.angles[i] = make([][]float64, nrep)
			}
		}
	}
	F := rex.NewFrame(nrep, s.nstates, natoms)
	buf := make([]float64, nrep)
	for {
		err := r.Next(F)
		if err != nil {
			var last rex.LastFrameError
			if errors.As(err, &last) {
				break
			}
			return nil, err
		}
		it := len(s.states)
		s.states = append(s.states, append([]int(nil), F.States...))
		u, err := rex.FrameReducedPotential(F.States, F.Energies)
		if err != nil {
			return nil, err
		}
		s.u = append(s.u, u)
		for i, t := range A.torsions {
			if s.angles[i] == nil {
				continue
			}
			ang, err := rex.FrameTorsion(F, t, buf)
			if err != nil {
				s.torsionErr[i] = fmt.Errorf("iteration %d: %w", it, err)
				s.angles[i] = nil
				continue
			}
			for rep, a := range ang {
				s.angles[i][rep] = append(s.angles[i][rep], a)
			}
		}
	}
	if len(s.states) == 0 {
		return nil, fmt.Errorf("%w: archive has no iterations", rex.ErrInsufficientData)
	}
	return s, nil
}
