/*
 * endtoend.go, part of gorex.
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

// EndToEndEvents returns the durations, in iterations, of all the
// end-to-end transitions in S. For each replica, every visit to one of
// the extreme states (0 and nstates-1) is an endpoint. When the replica
// reaches an endpoint in the extreme opposite to the one of the previous
// endpoint, an event lasting the iterations since that previous endpoint is
// recorded, and the current iteration becomes the new reference endpoint.
func EndToEndEvents(S States, nstates int) ([]float64, error) {
	if err := S.Validate(nstates); err != nil {
		return nil, errDecorate(err, "EndToEndEvents")
	}
	last := nstates - 1
	var events []float64
	for rep := 0; rep < S.NReplicas(); rep++ {
		ref := -1 //no endpoint yet
		for it, row := range S {
			s := row[rep]
			if s != 0 && s != last {
				continue
			}
			if ref < 0 {
				ref = it
				continue
			}
			if S[ref][rep] != s {
				events = append(events, float64(it-ref))
				ref = it
			}
		}
	}
	return events, nil
}

// EndToEnd returns the mean end-to-end time and its standard error
// over all the events in S (see EndToEndEvents). If no event is found,
// the error returned wraps ErrInsufficientData.
func EndToEnd(S States, nstates int) (Estimate, error) {
	events, err := EndToEndEvents(S, nstates)
	if err != nil {
		return Estimate{}, errDecorate(err, "EndToEnd")
	}
	if len(events) == 0 {
		return Estimate{}, newError(ErrInsufficientData, "EndToEnd", "no end-to-end events")
	}
	mean, stderr := MeanStdErr(events)
	return Estimate{Value: mean, Mean: mean, Err: stderr, Samples: events}, nil
}
