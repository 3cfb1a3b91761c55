/*
 * interfaces.go, part of gorex.
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

import v3 "github.com/rmera/gorex/v3"

// Frame holds one iteration of a replica-exchange archive.
type Frame struct {
	//States[r] is the thermodynamic state occupied by replica r.
	States []int

	//Energies[r][s] is the reduced potential of the configuration of
	//replica r evaluated at state s.
	Energies [][]float64

	//Positions[r] holds the coordinates of replica r. If nil, readers
	//parse, but discard, the coordinates.
	Positions []*v3.Matrix
}

// NewFrame allocates a Frame for nreplicas replicas, nstates states and natoms atoms.
// If natoms is 0, no position matrices are allocated.
func NewFrame(nreplicas, nstates, natoms int) *Frame {
	f := &Frame{
		States:   make([]int, nreplicas),
		Energies: make([][]float64, nreplicas),
	}
	for i := range f.Energies {
		f.Energies[i] = make([]float64, nstates)
	}
	if natoms > 0 {
		f.Positions = make([]*v3.Matrix, nreplicas)
		for i := range f.Positions {
			f.Positions[i] = v3.Zeros(natoms)
		}
	}
	return f
}

// Archive is the interface for a replica-exchange archive that can be read
// iteration by iteration.
type Archive interface {

	//Is the archive ready to be read?
	Readable() bool

	//Next reads the next iteration into f. If f is nil, the iteration is
	//read and discarded. At the end of the archive, Next returns an error
	//that implements LastFrameError.
	Next(f *Frame) error

	//NStates returns the number of thermodynamic states
	NStates() int

	//NReplicas returns the number of replicas
	NReplicas() int

	//Len returns the number of atoms per replica (0 if the archive has no positions)
	Len() int

	Close()
}

//Errors

// Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string
}

// ArchiveError is the interface for errors in archives
type ArchiveError interface {
	Error
	Critical() bool
	FileName() string
	Format() string
}

// LastFrameError has a useless function to distinguish the harmless errors (i.e. last frame) so  they can be
// filtered in a typeswith that looks for this interface.
type LastFrameError interface {
	ArchiveError
	NormalLastFrameTermination() //does nothing, just to separate this interface from other ArchiveError's
}
