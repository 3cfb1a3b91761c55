/*
 * doc.go, part of gorex.
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

/*
Package rex is the main package of the goRex library. It provides estimators
to assess how well a replica-exchange (parallel tempering) simulation mixes,
from the recorded history of which replica occupied which state.

	**goRex Capabilities**

	Builds the symmetrized empirical transition matrix among states, and
	obtains the state equilibration time from its second eigenvalue.

	Estimates statistical errors by splitting trajectories in contiguous
	blocks (block bootstrap), for any estimator.

	Estimates relaxation times of any binned coordinate (e.g. a dihedral
	angle) from the transitions among bins, pooled over replicas.

	Measures end-to-end times, i.e. how long replicas take to travel from
	the lowest to the highest state and back.

	Reconstructs the reduced potential timeseries, and computes dihedral
	angles from replica coordinates.

The sub-packages provide the statistical inefficiency estimator (chemstat),
a compressed archive format for replica-exchange data (traj/rxf), histograms
(histo), plots (chemplot), reports (report) and the full analysis
pipeline (analysis).

All the estimators are pure functions of data already in memory. Numerical
degeneracies (a decomposable transition matrix, no end-to-end events) are
returned as errors wrapping the sentinels ErrDecomposable and
ErrInsufficientData, never as NaN or Inf values.
*/
package rex
