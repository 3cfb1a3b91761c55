/*
 * readall.go, part of gorex.
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

package rxf

import (
	"errors"

	rex "github.com/rmera/gorex"
	v3 "github.com/rmera/gorex/v3"
)

// Data is the full content of an archive.
type Data struct {
	Header  map[string]string
	NStates int

	//Decimal places kept for the coordinates.
	Prec int

	//States[iteration][replica]
	States rex.States

	//Energies[iteration][replica][state]
	Energies [][][]float64

	//Positions[iteration][replica], nil if the archive has no coordinates
	//or they were not requested.
	Positions [][]*v3.Matrix
}

// ReadAll reads the whole archive name into memory. If positions is false,
// the coordinates are skipped. Only use it for small archives, otherwise,
// read the archive iteration by iteration with New and Next.
func ReadAll(name string, positions bool) (*Data, error) {
	S, m, err := New(name)
	if err != nil {
		return nil, errDecorate(err, "ReadAll")
	}
	defer S.Close()
	D := &Data{Header: m, NStates: S.NStates(), Prec: S.Prec()}
	natoms := S.Len()
	if !positions {
		natoms = 0
	}
	for {
		F := rex.NewFrame(S.NReplicas(), S.NStates(), natoms)
		err := S.Next(F)
		if err != nil {
			var last rex.LastFrameError
			if errors.As(err, &last) {
				break
			}
			return nil, errDecorate(err, "ReadAll")
		}
		D.States = append(D.States, F.States)
		D.Energies = append(D.Energies, F.Energies)
		if F.Positions != nil {
			D.Positions = append(D.Positions, F.Positions)
		}
	}
	return D, nil
}
