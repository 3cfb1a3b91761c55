/*
 * result.go, part of gorex.
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
	rex "github.com/rmera/gorex"
	"github.com/rmera/gorex/histo"
	"gonum.org/v1/gonum/mat"
)

// Outcome is an estimated quantity. If the quantity could not be
// computed, Err holds the reason, and the estimate must be ignored.
type Outcome struct {
	rex.Estimate
	Err error
}

// Defined returns true if the quantity could be computed.
func (O Outcome) Defined() bool {
	return O.Err == nil
}

func outcome(e rex.Estimate, err error) Outcome {
	if err != nil {
		return Outcome{Err: err}
	}
	return Outcome{Estimate: e}
}

// value returns an Outcome with a single value and no error estimate.
func value(v float64, err error) Outcome {
	if err != nil {
		return Outcome{Err: err}
	}
	return Outcome{Estimate: rex.Estimate{Value: v, Mean: v}}
}

// TorsionResult contains the quantities obtained for one torsion.
type TorsionResult struct {
	Name string

	//Integrated correlation times of the cosine and sine of the torsion,
	//over all replicas, in iterations.
	TauCos, TauSin Outcome

	//Relaxation time from the transitions among torsion bins, in iterations.
	Relaxation Outcome

	//Fraction of the bins ever visited by any replica.
	Coverage float64

	//Populations of the torsion bins, nil if the torsion could not be computed.
	Populations *histo.Data

	//Err is not nil if the torsion could not be computed at all.
	Err error
}

// Result contains all the quantities obtained from one archive.
type Result struct {
	Name        string
	RunID       string
	NReplicas   int
	NStates     int
	NAtoms      int
	NIterations int

	//Header of the archive.
	Header map[string]string

	//Symmetrized state transition matrix, and its eigenvalues in
	//descending order. Nil if they could not be obtained.
	Transition  *mat.Dense
	Eigenvalues []float64

	//Second eigenvalue of the transition matrix, and state equilibration time.
	Mu2, Tau2 Outcome

	//Statistical inefficiency and correlation time of the state index.
	GStates, TauStates Outcome

	//Mean end-to-end time.
	TauEnd Outcome

	//Statistical inefficiency and correlation time of the reduced potential.
	GU, TauU Outcome

	Torsions []TorsionResult

	//Plot files written.
	Plots []string
}
